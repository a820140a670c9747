package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/highburybarber/booking-api/internal/audit"
	"github.com/highburybarber/booking-api/internal/cache"
	"github.com/highburybarber/booking-api/internal/config"
	dbpkg "github.com/highburybarber/booking-api/internal/db"
	"github.com/highburybarber/booking-api/internal/handlers"
	infraRepo "github.com/highburybarber/booking-api/internal/infra/repository"
	"github.com/highburybarber/booking-api/internal/logging"
	"github.com/highburybarber/booking-api/internal/middleware"
	"github.com/highburybarber/booking-api/internal/notify"
	"github.com/highburybarber/booking-api/internal/routes"
	"github.com/highburybarber/booking-api/internal/storage"
	"github.com/highburybarber/booking-api/internal/sweeper"
	"github.com/highburybarber/booking-api/internal/timezone"
	ucAppointment "github.com/highburybarber/booking-api/internal/usecase/appointment"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	db := dbpkg.NewDB(cfg, log)

	if err := handlers.EnsureDefaultAdmin(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin account")
	}

	loc := timezone.Location(cfg.Timezone)

	// ------------------------------
	// Shared infrastructure
	// ------------------------------
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, availability cache disabled")
			redisClient = nil
		}
	}
	availabilityCache := cache.NewAvailabilityCache(redisClient, 60*time.Second)

	mailer := notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.EmailFrom)
	whatsapp := notify.NewWhatsAppGateway(cfg.WhatsAppGatewayURL, cfg.WhatsAppToken)
	notifier := notify.NewNotifier(mailer, whatsapp, cfg.BaseURL, cfg.ShopWhatsAppNumber, log)

	photos, err := storage.NewPhotoStore(context.Background(), cfg)
	if err != nil {
		log.Warn().Err(err).Msg("photo storage unavailable")
	}

	repo := infraRepo.NewAppointmentGormRepository(db)
	salesRepo := infraRepo.NewSalesGormRepository(db)

	auditDispatcher := audit.NewDispatcher(audit.New(db), log)

	// ------------------------------
	// Time-driven jobs
	// ------------------------------
	expirer := ucAppointment.NewExpireAppointments(repo, auditDispatcher, loc, log)
	sw := sweeper.New(repo, notifier, expirer, loc, log)
	if err := sw.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start sweeper")
	}
	defer sw.Stop()

	// ------------------------------
	// HTTP
	// ------------------------------
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, routes.Dependencies{
		Repo:     repo,
		Reports:  salesRepo,
		Cache:    availabilityCache,
		Notifier: notifier,
		Photos:   photos,
		Audit:    auditDispatcher,
		Location: loc,
		Log:      log,
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
