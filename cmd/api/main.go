package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/apnadr/hospital-api/internal/config"
	"github.com/apnadr/hospital-api/internal/email"
	"github.com/apnadr/hospital-api/internal/escalation"
	"github.com/apnadr/hospital-api/internal/handler"
	appointmentHandler "github.com/apnadr/hospital-api/internal/handler/appointment"
	emergencyHandler "github.com/apnadr/hospital-api/internal/handler/emergency"
	hospitalHandler "github.com/apnadr/hospital-api/internal/handler/hospital"
	"github.com/apnadr/hospital-api/internal/repository/postgres"
	"github.com/apnadr/hospital-api/internal/router"
	appointmentService "github.com/apnadr/hospital-api/internal/service/appointment"
	hospitalService "github.com/apnadr/hospital-api/internal/service/hospital"
	"github.com/apnadr/hospital-api/internal/service/notification"
	"github.com/apnadr/hospital-api/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Setup(cfg.Logging.Level)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	hospitalRepo := postgres.NewHospitalRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)

	// Services
	sender := email.NewSMTPSender(cfg.SMTP)
	notifSvc := notification.NewService(sender)
	hospitalSvc := hospitalService.NewService(hospitalRepo, cfg.Directory.CacheTTL())
	appointmentSvc := appointmentService.NewService(appointmentRepo, hospitalRepo, notifSvc)
	dispatcher := escalation.NewDispatcher(cfg.Dispatch.Countdown(), cfg.Dispatch.CabFallback(), time.Second)
	defer dispatcher.StopAll()

	// Handlers
	healthH := handler.NewHealthHandler(db)
	hospitalH := hospitalHandler.NewHandler(hospitalSvc)
	appointmentH := appointmentHandler.NewHandler(appointmentSvc)
	emergencyH := emergencyHandler.NewHandler(hospitalSvc, dispatcher)

	r := router.NewRouter(router.Config{
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		MetricsPrefix:  "apnadr",
	}, healthH, hospitalH, appointmentH, emergencyH)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
