package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Keerthan22-sys/Instigar/config"
	"github.com/Keerthan22-sys/Instigar/pkg/api/handlers"
	apimw "github.com/Keerthan22-sys/Instigar/pkg/api/middleware"
	"github.com/Keerthan22-sys/Instigar/pkg/cache"
	"github.com/Keerthan22-sys/Instigar/pkg/jobs"
	"github.com/Keerthan22-sys/Instigar/pkg/logger"
	"github.com/Keerthan22-sys/Instigar/pkg/metrics"
	custommiddleware "github.com/Keerthan22-sys/Instigar/pkg/middleware"
	"github.com/Keerthan22-sys/Instigar/pkg/prefs"
	"github.com/Keerthan22-sys/Instigar/pkg/session"
	"github.com/Keerthan22-sys/Instigar/pkg/upstream"
)

func main() {
	cfg := config.Load()
	applog := logger.New(cfg.LogLevel)
	applog.Info("configuration loaded", "environment", cfg.APIEnvironment)

	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.SentryEnvironment,
			TracesSampleRate: 1.0,
			AttachStacktrace: true,
		})
		if err != nil {
			applog.Warn("failed to initialize sentry", "error", err)
		} else {
			applog.Info("sentry initialized", "environment", cfg.SentryEnvironment)
			defer sentry.Flush(2 * time.Second)
		}
	} else {
		applog.Info("sentry disabled, no DSN configured")
	}

	redisClient, err := cache.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	upstreamClient := upstream.NewClient(cfg.UpstreamURL, cfg.UpstreamTimeout)
	sessions := session.NewManager(time.Duration(cfg.SessionTTLHours) * time.Hour)
	prometheusMetrics := metrics.New()

	assignees := prefs.NewAssignees(redisClient)
	channels := prefs.NewChannels(redisClient)

	e := echo.New()
	e.HideBanner = true

	globalRateLimiter := custommiddleware.NewRateLimiter(cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)
	authRateLimiter := custommiddleware.NewRateLimiter(5, 2)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			applog.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	if cfg.SentryDSN != "" {
		e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	}

	e.Use(prometheusMetrics.Middleware())
	e.Use(middleware.CORSWithConfig(custommiddleware.CORSConfig(cfg.CORSAllowedOrigins)))
	e.Use(middleware.Gzip())
	e.Use(custommiddleware.SecurityHeaders(custommiddleware.DefaultSecurityHeadersConfig()))
	e.Use(globalRateLimiter.RateLimitMiddleware())

	authHandler := handlers.NewAuthHandler(upstreamClient, sessions, prometheusMetrics)
	leadHandler := handlers.NewLeadHandler(sessions, prometheusMetrics, cfg.MaxUploadBytes)
	prefsHandler := handlers.NewPrefsHandler(assignees, channels)

	cronManager := jobs.NewCronManager(sessions, upstreamClient, prometheusMetrics, applog)
	if err := cronManager.SetupJobs(); err != nil {
		log.Fatalf("failed to set up cron jobs: %v", err)
	}
	cronManager.Start()
	defer cronManager.Stop()

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"name":        "Instigar Lead Gateway",
			"status":      "running",
			"environment": cfg.APIEnvironment,
			"timestamp":   time.Now().Unix(),
		})
	})

	e.GET("/health", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		cacheStatus := "up"
		if err := redisClient.Ping(ctx); err != nil {
			cacheStatus = "down"
		}
		upstreamStatus := "up"
		if !cronManager.UpstreamHealthy() {
			upstreamStatus = "down"
		}

		status := http.StatusOK
		overall := "healthy"
		if cacheStatus == "down" || upstreamStatus == "down" {
			status = http.StatusServiceUnavailable
			overall = "unhealthy"
		}
		return c.JSON(status, map[string]any{
			"status":   overall,
			"cache":    cacheStatus,
			"upstream": upstreamStatus,
			"sessions": sessions.Count(),
		})
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/login", authHandler.Login, authRateLimiter.RateLimitMiddleware())
	authGroup.POST("/register", authHandler.Register, authRateLimiter.RateLimitMiddleware())

	protected := api.Group("", apimw.SessionMiddleware(sessions))
	protected.POST("/auth/logout", authHandler.Logout)

	protected.GET("/leads/filter", leadHandler.List)
	protected.POST("/leads", leadHandler.Create)
	protected.PUT("/leads/:id", leadHandler.Update)
	protected.DELETE("/leads/:id", leadHandler.Delete)
	protected.POST("/leads/csv/upload", leadHandler.UploadCSV)

	protected.GET("/assignees", prefsHandler.ListAssignees)
	protected.POST("/assignees", prefsHandler.AddAssignee)
	protected.DELETE("/assignees/:value", prefsHandler.RemoveAssignee)

	protected.GET("/channels", prefsHandler.ListChannels)
	protected.POST("/channels", prefsHandler.AddChannel)
	protected.DELETE("/channels/:value", prefsHandler.RemoveChannel)

	go func() {
		address := cfg.APIHost + ":" + cfg.APIPort
		applog.Info("server starting", "address", address)
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	applog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		applog.Error("forced shutdown", "error", err)
	}
	applog.Info("server stopped")
}
