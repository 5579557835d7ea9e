package httpapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"estate_search/internal/config"
	"estate_search/internal/http/httputil"
	"estate_search/internal/http/middleware"
	"estate_search/internal/http/propertyhttp"
	"estate_search/internal/http/searchhttp"
	"estate_search/internal/lib/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// App — HTTP-сервер приложения.
type App struct {
	log    *slog.Logger
	server *http.Server
	port   int
}

// New собирает маршрутизатор и HTTP-сервер.
//
// The root path carries the public search endpoint in all three methods
// the site's frontend generations use: GET with query-string params,
// POST with a JSON body, and OPTIONS for pre-flight. Admin CRUD lives
// under /api/v1 behind bearer auth.
func New(
	log *slog.Logger,
	cfg *config.Config,
	searchHandler *searchhttp.Handler,
	propertyHandler *propertyhttp.Handler,
	m *metrics.SearchMetrics,
) *App {
	router := chi.NewRouter()

	router.Use(chimw.RequestID)
	router.Use(middleware.RecoverJSON(log))

	// Браузерные клиенты ходят с любых origin'ов.
	router.Use(cors.New(cors.Options{
		AllowedOrigins:       []string{"*"},
		AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:       []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type"},
		OptionsSuccessStatus: http.StatusOK,
	}).Handler)

	router.Get("/", searchHandler.HandleGet)
	router.Post("/", searchHandler.HandlePost)
	router.Options("/", searchHandler.HandleOptions)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/stats", func(w http.ResponseWriter, req *http.Request) {
			httputil.RespondJSON(w, http.StatusOK, m.GetStats())
		})

		r.Route("/properties", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.Secret, cfg.DisableAuth, log))

			r.Get("/", propertyHandler.List)
			r.Post("/", propertyHandler.Create)

			r.Route("/{propertyID}", func(r chi.Router) {
				r.Get("/", propertyHandler.Get)
				r.Patch("/", propertyHandler.Update)
				r.Delete("/", propertyHandler.Delete)
				r.Post("/image", propertyHandler.UploadImage)
				r.Get("/jsonld", propertyHandler.JSONLD)
			})
		})
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		log:    log,
		server: server,
		port:   cfg.HTTP.Port,
	}
}

// MustRun запускает сервер и паникует при ошибке.
func (a *App) MustRun() {
	if err := a.Run(); err != nil {
		panic(err)
	}
}

// Run запускает HTTP-сервер.
func (a *App) Run() error {
	const op = "httpapp.Run"

	a.log.Info("http server started", slog.Int("port", a.port))

	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Stop останавливает сервер, дожидаясь активных запросов.
func (a *App) Stop(ctx context.Context) error {
	const op = "httpapp.Stop"

	a.log.Info("stopping http server", slog.Int("port", a.port))

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
