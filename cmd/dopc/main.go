package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"backend-woltapp-completion/internal/config"
	"backend-woltapp-completion/internal/handler"
	"backend-woltapp-completion/internal/homeapi"
	"backend-woltapp-completion/internal/logger"
	"backend-woltapp-completion/internal/metrics"
	"backend-woltapp-completion/internal/quote"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger, err := logger.New(logger.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		Output:     cfg.LogOutput,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	venues, err := venueSource(cfg, appLogger)
	if err != nil {
		appLogger.WithError(err).Fatal("unable to set up venue source")
	}

	m := metrics.New()
	svc := quote.NewService(venues,
		quote.WithMaxDistance(cfg.MaxDeliveryDistance),
		quote.WithLogger(appLogger),
		quote.WithRecorder(m),
	)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := handler.NewRouter(handler.RouterDeps{
		Price:   handler.NewPriceHandler(svc, cfg.QuoteTimeout),
		Log:     appLogger,
		Metrics: m.Handler(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		appLogger.WithField("port", cfg.Port).Info("DOPC listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.WithError(err).Error("server forced to shutdown")
	}
}

func venueSource(cfg config.Config, l *logger.Log) (quote.VenueSource, error) {
	if cfg.VenueFixtures != "" {
		l.WithField("path", cfg.VenueFixtures).Info("serving venues from fixtures")
		return homeapi.LoadFixtures(cfg.VenueFixtures)
	}
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	return homeapi.New(cfg.APIBaseURL, httpClient,
		homeapi.WithRateLimit(cfg.UpstreamRPS, cfg.UpstreamBurst),
		homeapi.WithLogger(l),
	), nil
}
