package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/online-bazar/bazar-backend/logger"
)

// Log is replaced by InitLogger at boot. The no-op default keeps tests quiet.
var Log = logger.Nop()

func InitLogger() {
	l, err := logger.New(getEnv("APP_ENV", "development"))
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}
	Log = l
}

// AppConfig holds every tunable the service reads from the environment.
type AppConfig struct {
	Env         string
	Port        string
	FrontendURL string
	CORSOrigins []string

	JWTSecret    string
	JWTExpiry    time.Duration
	CookieDomain string
	CookieSecure bool

	TaxRate float64

	CartReminderWaves    []time.Duration
	CartReminderInterval time.Duration
	CartExpiry           time.Duration

	RegistrationProgram  string
	RegistrationOpen     bool
	RegistrationDeadline *time.Time

	MetaPixelID     string
	MetaAccessToken string
	MetaTestCode    string

	StripeSecretKey     string
	StripeWebhookSecret string

	ResendAPIKey string
	MailFrom     string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	AutoMigrate bool
}

// App is populated by LoadApp. Tests may overwrite fields directly.
var App = defaultApp()

func defaultApp() AppConfig {
	return AppConfig{
		Env:                  "development",
		Port:                 "8080",
		FrontendURL:          "http://localhost:3000",
		CORSOrigins:          []string{"http://localhost:3000"},
		JWTSecret:            "dev-secret-change-me",
		JWTExpiry:            24 * time.Hour,
		CartReminderWaves:    []time.Duration{time.Hour, 24 * time.Hour, 72 * time.Hour},
		CartReminderInterval: time.Minute,
		CartExpiry:           30 * 24 * time.Hour,
		RegistrationProgram:  "bazar-program",
		RegistrationOpen:     true,
		MailFrom:             "Online Bazar <no-reply@onlinebazar.com.bd>",
	}
}

func LoadApp() {
	a := defaultApp()
	a.Env = getEnv("APP_ENV", a.Env)
	a.Port = getEnv("PORT", a.Port)
	a.FrontendURL = strings.TrimRight(getEnv("FRONTEND_URL", a.FrontendURL), "/")
	a.CORSOrigins = splitList(getEnv("CORS_ORIGINS", strings.Join(a.CORSOrigins, ",")))

	a.JWTSecret = getEnv("JWT_SECRET", "")
	if a.JWTSecret == "" {
		Log.Fatal("[config] JWT_SECRET environment variable not set")
	}
	a.JWTExpiry = getEnvDuration("JWT_EXPIRY", a.JWTExpiry)
	a.CookieDomain = getEnv("COOKIE_DOMAIN", "")
	a.CookieSecure = getEnvBool("COOKIE_SECURE", a.Env == "production")

	if rate, err := strconv.ParseFloat(getEnv("TAX_RATE", "0"), 64); err == nil && rate >= 0 {
		a.TaxRate = rate
	}

	if waves := parseDurations(getEnv("CART_REMINDER_WAVES", "")); len(waves) > 0 {
		a.CartReminderWaves = waves
	}
	a.CartReminderInterval = getEnvDuration("CART_REMINDER_INTERVAL", a.CartReminderInterval)
	a.CartExpiry = getEnvDuration("CART_EXPIRY", a.CartExpiry)

	a.RegistrationProgram = getEnv("REGISTRATION_PROGRAM", a.RegistrationProgram)
	a.RegistrationOpen = getEnvBool("REGISTRATION_OPEN", a.RegistrationOpen)
	if raw := getEnv("REGISTRATION_DEADLINE", ""); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			a.RegistrationDeadline = &t
		} else {
			Log.Warn("[config] ignoring malformed REGISTRATION_DEADLINE", "value", raw)
		}
	}

	a.MetaPixelID = getEnv("META_PIXEL_ID", "")
	a.MetaAccessToken = getEnv("META_ACCESS_TOKEN", "")
	a.MetaTestCode = getEnv("META_TEST_EVENT_CODE", "")

	a.StripeSecretKey = getEnv("STRIPE_SECRET_KEY", "")
	a.StripeWebhookSecret = getEnv("STRIPE_WEBHOOK_SECRET", "")

	a.ResendAPIKey = getEnv("RESEND_API_KEY", "")
	a.MailFrom = getEnv("MAIL_FROM", a.MailFrom)

	a.CloudinaryCloudName = getEnv("CLOUDINARY_CLOUD_NAME", "")
	a.CloudinaryAPIKey = getEnv("CLOUDINARY_API_KEY", "")
	a.CloudinaryAPISecret = getEnv("CLOUDINARY_API_SECRET", "")

	a.AutoMigrate = getEnvBool("AUTO_MIGRATE", false)

	App = a
}

func GetFrontendURL() string {
	return App.FrontendURL
}

func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	switch strings.ToLower(getEnv(key, "")) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDurations(raw string) []time.Duration {
	var out []time.Duration
	for _, part := range splitList(raw) {
		d, err := time.ParseDuration(part)
		if err != nil || d <= 0 {
			return nil
		}
		out = append(out, d)
	}
	return out
}
