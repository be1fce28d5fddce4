package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
	"gorm.io/gorm"
)

const minPasswordLength = 8

func init() {
	_ = godotenv.Load()
}

// main creates the first admin account, or promotes an existing user.
// Usage:
//
//	go run ./cmd/seed
//	go run ./cmd/seed -email owner@example.com -name Owner -password secret123
func main() {
	emailFlag := flag.String("email", "", "admin email")
	nameFlag := flag.String("name", "", "admin display name")
	passwordFlag := flag.String("password", "", "admin password (prompted when empty)")
	flag.Parse()

	config.InitLogger()
	defer config.Log.Sync()

	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("ONLINE BAZAR - Admin Seeder")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()

	config.InitDB()
	defer config.CloseDB()

	email, name, password := getAdminCredentials(*emailFlag, *nameFlag, *passwordFlag)
	email = services.NormalizeEmail(email)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Existing account: promote it instead of failing
	var user models.User
	err := config.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	switch {
	case err == nil:
		if err := config.DB.WithContext(ctx).Model(&user).Updates(map[string]any{
			"role":   models.RoleAdmin,
			"status": models.UserStatusActive,
		}).Error; err != nil {
			config.Log.Fatal("[seed] failed to promote user", "error", err)
		}
		fmt.Printf("User '%s' already existed and is now an admin\n", email)
		return
	case !errors.Is(err, gorm.ErrRecordNotFound):
		config.Log.Fatal("[seed] database error", "error", err)
	}

	hash, err := services.HashPassword(password)
	if err != nil {
		config.Log.Fatal("[seed] failed to hash password", "error", err)
	}

	admin := models.User{
		Email:        email,
		Name:         name,
		PasswordHash: &hash,
		Provider:     models.ProviderPassword,
		Role:         models.RoleAdmin,
		Status:       models.UserStatusActive,
	}
	if err := config.DB.WithContext(ctx).Create(&admin).Error; err != nil {
		config.Log.Fatal("[seed] failed to create admin", "error", err)
	}

	fmt.Println()
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("Admin created")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Printf("ID:    %s\n", admin.ID)
	fmt.Printf("Email: %s\n", admin.Email)
	fmt.Printf("Name:  %s\n", admin.Name)
	fmt.Println()
	fmt.Println("Sign in with POST /api/v1/auth/login, then use /api/v1/admin/*")
}

// getAdminCredentials fills in whatever the flags left empty from stdin.
func getAdminCredentials(email, name, password string) (string, string, string) {
	for strings.TrimSpace(email) == "" {
		fmt.Print("Email: ")
		fmt.Scanln(&email)
	}
	for strings.TrimSpace(name) == "" {
		fmt.Print("Name: ")
		fmt.Scanln(&name)
	}

	fromFlag := password != ""
	for len(password) < minPasswordLength {
		if fromFlag {
			fmt.Fprintf(os.Stderr, "Password must be at least %d characters\n", minPasswordLength)
			os.Exit(1)
		}
		fmt.Printf("Password (min %d characters): ", minPasswordLength)
		fmt.Scanln(&password)
	}
	if !fromFlag {
		for {
			fmt.Print("Confirm Password: ")
			var confirm string
			fmt.Scanln(&confirm)
			if confirm == password {
				break
			}
			fmt.Println("Passwords do not match")
		}
	}
	return email, strings.TrimSpace(name), password
}
