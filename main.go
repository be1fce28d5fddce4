// @title Online Bazar API
// @version 1.0
// @description Storefront and back-office API for Online Bazar
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/online-bazar/bazar-backend/config"
	_ "github.com/online-bazar/bazar-backend/docs"
	"github.com/online-bazar/bazar-backend/jobs"
	"github.com/online-bazar/bazar-backend/middleware"
	"github.com/online-bazar/bazar-backend/migrations"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/observability"
	"github.com/online-bazar/bazar-backend/realtime"
	"github.com/online-bazar/bazar-backend/routes/cms_routes"
	"github.com/online-bazar/bazar-backend/routes/ecommerce_routes"
	"github.com/online-bazar/bazar-backend/services"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const serviceVersion = "1.0.0"

func init() {
	_ = godotenv.Load()
}

func main() {
	config.InitLogger()
	defer config.Log.Sync()
	config.LoadApp()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel := observability.InitOTel(ctx, config.Log, observability.OtelConfig{
		ServiceName: "bazar-backend",
		Environment: config.App.Env,
		Version:     serviceVersion,
	})

	// ════════════════════════════════════════════════════════════
	// Storage
	// ════════════════════════════════════════════════════════════
	config.InitDB()
	defer config.CloseDB()

	if config.App.AutoMigrate {
		migrateCtx, cancel := config.WithCustomTimeout(config.MigrationTimeout)
		if err := migrations.Run(migrateCtx, config.Pool, config.Log); err != nil {
			cancel()
			config.Log.Fatal("[boot] migrations failed", "error", err)
		}
		cancel()
	}

	config.ConnectRedis()
	defer config.CloseRedis()

	// ════════════════════════════════════════════════════════════
	// Services
	// ════════════════════════════════════════════════════════════
	if err := services.InitJWTService(config.App.JWTSecret, config.App.JWTExpiry); err != nil {
		config.Log.Fatal("[boot] failed to initialize JWT service", "error", err)
	}
	config.InitGoogleOAuth()

	if config.App.ResendAPIKey != "" {
		services.InitMailer(services.NewResendMailer(config.App.ResendAPIKey, config.App.MailFrom, ""))
	} else {
		config.Log.Warn("[boot] RESEND_API_KEY not set, emails are logged only")
		services.InitMailer(services.NewLogMailer())
	}

	var sink services.Sink = services.LogSink{}
	if config.App.MetaPixelID != "" && config.App.MetaAccessToken != "" {
		sink = services.NewMetaSink(config.App.MetaPixelID, config.App.MetaAccessToken, config.App.MetaTestCode, "")
	}
	forwarder := services.NewForwarder(sink, services.DefaultForwarderOptions())
	forwarder.Start()
	services.InitForwarder(forwarder)

	if config.App.StripeSecretKey != "" {
		services.InitPayments(services.NewStripeProvider(config.App.StripeSecretKey, config.App.StripeWebhookSecret))
	} else {
		config.Log.Warn("[boot] STRIPE_SECRET_KEY not set, card payments disabled")
	}

	if config.App.CloudinaryCloudName != "" {
		media, err := services.NewCloudinaryService(config.App.CloudinaryCloudName, config.App.CloudinaryAPIKey, config.App.CloudinaryAPISecret)
		if err != nil {
			config.Log.Fatal("[boot] failed to initialize Cloudinary", "error", err)
		}
		services.InitMedia(media)
	} else {
		config.Log.Warn("[boot] Cloudinary not configured, image uploads disabled")
	}

	// ════════════════════════════════════════════════════════════
	// Realtime
	// ════════════════════════════════════════════════════════════
	hub := realtime.NewHub(config.Log)
	var bus realtime.Bus = realtime.NewLocalBus(hub)
	if config.RedisClient != nil {
		redisBus, err := realtime.NewRedisBus(config.RedisClient, hub, config.Log, realtime.DefaultRedisChannel)
		if err != nil {
			config.Log.Fatal("[boot] failed to create realtime bus", "error", err)
		}
		bus = redisBus
	}
	if err := bus.Start(ctx); err != nil {
		config.Log.Fatal("[boot] failed to start realtime bus", "error", err)
	}
	defer bus.Close()
	services.InitRealtime(hub, realtime.NewBroadcaster(bus, config.Log))

	jobs.NewCartReminderJob(jobs.DefaultCartReminderOptions()).Start(ctx)

	// ════════════════════════════════════════════════════════════
	// HTTP
	// ════════════════════════════════════════════════════════════
	if config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("bazar-backend"))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(config.App.CORSOrigins))

	router.GET("/health", healthCheck)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1")

	// Storefront
	ecommerce_routes.SetupAuthRoutes(api)
	ecommerce_routes.SetupStorefrontRoutes(api)
	ecommerce_routes.SetupCartRoutes(api)
	ecommerce_routes.SetupUserRoutes(api)
	ecommerce_routes.SetupContentRoutes(api)

	// Back office (/api/v1/admin)
	cms_routes.SetupAdminRoutes(api)

	srv := &http.Server{
		Addr:              ":" + config.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	// Shutdown does not cancel in-flight requests; end the SSE streams.
	srv.RegisterOnShutdown(hub.CloseAll)

	go func() {
		config.Log.Info("[boot] server listening", "addr", srv.Addr, "env", config.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Log.Fatal("[boot] server failed", "error", err)
		}
	}()

	<-ctx.Done()
	config.Log.Info("[boot] shutting down")

	httpCtx, cancelHTTP := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelHTTP()
	if err := srv.Shutdown(httpCtx); err != nil {
		config.Log.Error("[boot] http shutdown failed", "error", err)
	}

	// Each component gets its own budget
	drainCtx, cancelDrain := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelDrain()
	if err := forwarder.Stop(drainCtx); err != nil {
		config.Log.Warn("[boot] analytics forwarder did not drain", "error", err)
	}

	otelCtx, cancelOTel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelOTel()
	if err := shutdownOTel(otelCtx); err != nil {
		config.Log.Warn("[boot] otel shutdown failed", "error", err)
	}
}

// healthCheck godoc
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Failure 503 {object} models.ApiResponse
// @Router /health [get]
func healthCheck(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	if err := config.Pool.Ping(ctx); err != nil {
		config.Log.Error("[health] database ping failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Database unavailable"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "OK", gin.H{"status": "ok", "version": serviceVersion}))
}
