package helpers

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
)

const (
	CartSessionCookie = "bazar_cart_sid"
	cartSessionBytes  = 32
	cartSessionMaxAge = 30 * 24 * 60 * 60
)

// NewCartSessionID returns 32 random bytes, base64url encoded (43 chars).
func NewCartSessionID() (string, error) {
	buf := make([]byte, cartSessionBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// ValidCartSessionID reports whether sid has the shape NewCartSessionID makes.
func ValidCartSessionID(sid string) bool {
	if len(sid) != base64.RawURLEncoding.EncodedLen(cartSessionBytes) {
		return false
	}
	raw, err := base64.RawURLEncoding.DecodeString(sid)
	return err == nil && len(raw) == cartSessionBytes
}

// CartSessionID returns the caller's cart session when the cookie is present
// and well formed.
func CartSessionID(c *gin.Context) (string, bool) {
	sid, err := c.Cookie(CartSessionCookie)
	if err != nil || !ValidCartSessionID(sid) {
		return "", false
	}
	return sid, true
}

// SetCartSession (re)binds the cart cookie to sid.
func SetCartSession(c *gin.Context, sid string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CartSessionCookie, sid, cartSessionMaxAge, "/", config.App.CookieDomain, config.App.CookieSecure, true)
}

// EnsureCartSession returns the caller's cart session, issuing a fresh one
// when the cookie is missing or malformed.
func EnsureCartSession(c *gin.Context) (string, error) {
	if sid, ok := CartSessionID(c); ok {
		return sid, nil
	}
	sid, err := NewCartSessionID()
	if err != nil {
		return "", err
	}
	SetCartSession(c, sid)
	return sid, nil
}
