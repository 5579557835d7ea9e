package app

import (
	"context"
	"log/slog"

	"estate_search/internal/app/httpapp"
	"estate_search/internal/config"
	"estate_search/internal/http/propertyhttp"
	"estate_search/internal/http/searchhttp"
	"estate_search/internal/lib/imagestore"
	"estate_search/internal/lib/metrics"
	"estate_search/internal/repository/property_repository"
	"estate_search/internal/services/property"
	"estate_search/internal/services/search"

	"github.com/jackc/pgx/v5/pgxpool"
)

// App — корень композиции: собирает все зависимости приложения.
type App struct {
	HTTPApp *httpapp.App
	pool    *pgxpool.Pool
	log     *slog.Logger
}

func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	m := metrics.GetSearchMetrics(log)

	propertyRepo := property_repository.NewPropertyRepository(pool, log)

	images, err := imagestore.NewClient(cfg.ImageStore, log)
	if err != nil {
		pool.Close()
		return nil, err
	}

	searchService := search.New(log, propertyRepo, m, cfg.Search)
	propertyService := property.New(log, propertyRepo, images, m, cfg.HTTP.BaseURL)

	searchHandler := searchhttp.NewHandler(log, searchService)
	propertyHandler := propertyhttp.NewHandler(log, propertyService)

	httpApp := httpapp.New(log, cfg, searchHandler, propertyHandler, m)

	return &App{
		HTTPApp: httpApp,
		pool:    pool,
		log:     log,
	}, nil
}

// Stop останавливает сервер и закрывает пул соединений.
func (a *App) Stop(ctx context.Context) error {
	err := a.HTTPApp.Stop(ctx)
	a.pool.Close()
	return err
}
