package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	handlers "github.com/de-tools/debt-atlas/pkg/handlers/debt"
	debtatlasmiddleware "github.com/de-tools/debt-atlas/pkg/server/middleware"
	"github.com/de-tools/debt-atlas/pkg/services/countries"
)

type Dependencies struct {
	Resolver *countries.Resolver
	Dataset  handlers.DatasetService
	Logger   zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server
}

// ConfigureRouter wires the debt API routes. Exposed separately so tests
// can mount the router on httptest servers.
func ConfigureRouter(config Config) *chi.Mux {
	debtHandler := handlers.NewHandler(config.Dependencies.Resolver, config.Dependencies.Dataset)

	router := chi.NewRouter()
	router.Use(debtatlasmiddleware.Logger(&config.Dependencies.Logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/countries", debtHandler.ListCountries)
		r.Get("/debt", debtHandler.GetRecords)
		r.Get("/debt/summary", debtHandler.GetSummary)
		r.Get("/debt/export", debtHandler.ExportCSV)
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)

	return &WebAPI{
		router: router,
		logger: &config.Dependencies.Logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
	}
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
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
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
