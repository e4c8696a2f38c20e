package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tilecrm-backend/config"
	"tilecrm-backend/routes"
	"tilecrm-backend/services"
	"tilecrm-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	_ "go.uber.org/automaxprocs"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg.LogLevel, cfg.LogFormat)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := config.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}
	log.Info().Str("driver", cfg.DBDriver).Msg("Database connected")

	secret := cfg.JWTSecret
	if secret == "" {
		secret = utils.GenerateJWTSecret()
		log.Warn().Msg("JWT_SECRET not set, sessions will not survive a restart")
	}
	issuer := utils.NewTokenIssuer(secret, cfg.JWTExpiry)

	var passwordHash string
	if cfg.SitePassword == "" {
		log.Warn().Msg("SITE_PASSWORD not set, login is disabled")
	} else if passwordHash, err = utils.HashPassword(cfg.SitePassword); err != nil {
		log.Fatal().Err(err).Msg("Failed to hash site password")
	}

	var sender services.MessageSender
	if cfg.TwilioEnabled() {
		sender = services.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom)
	}
	reminders := services.NewReminderService(db, sender, cfg.ReminderNotifyTo)
	if sender != nil {
		if err := reminders.Start(cfg.ReminderCron); err != nil {
			log.Fatal().Err(err).Msg("Failed to start reminder scheduler")
		}
		defer reminders.Stop()
	} else {
		log.Info().Msg("Twilio not configured, reminder notifications disabled")
	}

	r := routes.SetupRouter(routes.Deps{
		DB:           db,
		Logger:       logger,
		CORSOrigins:  cfg.CORSOrigins,
		Issuer:       issuer,
		PasswordHash: passwordHash,
		SecureCookie: cfg.Env == "production",
		Reminders:    reminders,
	})
	printRoutes(logger, r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

func printRoutes(logger zerolog.Logger, r *gin.Engine) {
	for _, route := range r.Routes() {
		logger.Debug().Str("method", route.Method).Str("path", route.Path).Msg("route")
	}
}
