package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/costguard/costguard/pkg/handlers/usage"
	costguardmiddleware "github.com/costguard/costguard/pkg/server/middleware"
	"github.com/costguard/costguard/pkg/services/mapping"
	"github.com/costguard/costguard/pkg/services/report"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Reports     report.Controller
	Commitments handlers.CommitmentStore
	Registry    mapping.Registry
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	usageHandler := handlers.NewHandler(
		config.Dependencies.Reports,
		config.Dependencies.Commitments,
		config.Dependencies.Registry,
	)

	router := chi.NewRouter()

	metrics := costguardmiddleware.NewMetrics()
	router.Use(costguardmiddleware.Logger(&logger))
	router.Use(metrics.Collect)
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/services", usageHandler.ListServices)
		r.Get("/services/{service}/usage", usageHandler.GetServiceUsage)
		r.Get("/services/{service}/commitments", usageHandler.ListCommitments)
		r.Put("/services/{service}/commitments", usageHandler.PutCommitments)
		r.Put("/services/{service}/commitments/{dimension}", usageHandler.PutCommitment)
		r.Get("/dimensions/{dimension}/usage", usageHandler.GetDimensionUsage)
	})
	router.Handle("/metrics", promhttp.Handler())

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

// Router exposes the configured mux for tests.
func (w *WebAPI) Router() http.Handler {
	return w.router
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
