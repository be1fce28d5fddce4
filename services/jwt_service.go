package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/online-bazar/bazar-backend/config"
)

const tokenIssuer = "online-bazar"

// Claims carried by storefront and admin session tokens.
type Claims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secretKey []byte
	expiry    time.Duration
}

var jwtService *JWTService

func InitJWTService(secretKey string, expiry time.Duration) error {
	if secretKey == "" {
		return errors.New("JWT secret key cannot be empty")
	}
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	jwtService = &JWTService{secretKey: []byte(secretKey), expiry: expiry}
	return nil
}

// GetJWTService falls back to config.App when InitJWTService was not called.
func GetJWTService() *JWTService {
	if jwtService == nil {
		jwtService = &JWTService{secretKey: []byte(config.App.JWTSecret), expiry: config.App.JWTExpiry}
	}
	return jwtService
}

func (j *JWTService) Expiry() time.Duration { return j.expiry }

func (j *JWTService) Generate(userID uuid.UUID, email, name, role string) (string, error) {
	if userID == uuid.Nil || email == "" {
		return "", errors.New("userID and email cannot be empty")
	}

	now := time.Now()
	claims := Claims{
		UserID: userID.String(),
		Email:  email,
		Name:   name,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (j *JWTService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secretKey, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID == "" || claims.Email == "" {
		return nil, errors.New("token missing required claims")
	}
	return claims, nil
}

func GenerateToken(userID uuid.UUID, email, name, role string) (string, error) {
	return GetJWTService().Generate(userID, email, name, role)
}

func VerifyToken(tokenString string) (*Claims, error) {
	return GetJWTService().Verify(tokenString)
}
