package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	// Pool serves the migration runner and the health check.
	Pool *pgxpool.Pool
	// DB is the ORM handle every controller and service uses.
	DB *gorm.DB
)

func InitDB() {
	dsn := databaseURL()
	initPgx(dsn)
	initGORM(dsn)
}

func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	Log.Warn("[db] DATABASE_URL not set, using local default")
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", ""),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "online_bazar"),
	)
}

func initPgx(dsn string) {
	var err error
	Pool, err = pgxpool.New(context.Background(), dsn)
	if err != nil {
		Log.Fatal("[db] unable to create pgx pool", "error", err)
	}

	ctx, cancel := WithTimeout()
	defer cancel()
	if err = Pool.Ping(ctx); err != nil {
		Log.Fatal("[db] pgx ping failed", "error", err)
	}
	Log.Info("[db] database connected (pgx)")
}

func initGORM(dsn string) {
	gormLog := gormlogger.Default.LogMode(gormlogger.Warn)
	if os.Getenv("APP_ENV") == "production" {
		gormLog = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		Log.Fatal("[db] failed to connect with GORM", "error", err)
	}
	if sqlDB, err := DB.DB(); err == nil {
		sqlDB.SetMaxOpenConns(getEnvInt("DB_MAX_OPEN_CONNS", 10))
		sqlDB.SetMaxIdleConns(getEnvInt("DB_MAX_IDLE_CONNS", 4))
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}
	Log.Info("[db] database connected (GORM)")
}

func CloseDB() {
	if Pool != nil {
		Pool.Close()
		Log.Info("[db] pgx pool closed")
	}
	if DB != nil {
		if sqlDB, _ := DB.DB(); sqlDB != nil {
			_ = sqlDB.Close()
			Log.Info("[db] GORM connection closed")
		}
	}
}

// MigrationTimeout bounds a full migration run, lock wait included.
const MigrationTimeout = 5 * time.Minute

// WithTimeout returns a context with a 10s timeout for request-scoped DB work.
func WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func WithCustomTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}
