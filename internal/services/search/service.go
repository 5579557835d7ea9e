package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"estate_search/internal/config"
	"estate_search/internal/domain"
	"estate_search/internal/lib/logger/sl"
	"estate_search/internal/lib/metrics"

	"github.com/samber/lo"
)

// PropertyRepository — хранилище, с которым работает поисковый сервис.
type PropertyRepository interface {
	Search(ctx context.Context, req domain.SearchRequest) ([]domain.Property, error)
	SuggestTitles(ctx context.Context, query string, limit int) ([]string, error)
	SuggestLocations(ctx context.Context, query string, limit int) ([]string, error)
}

// Service — the query service behind the public search endpoint. It
// owns no state beyond its collaborators: every call is one
// request/response cycle against the store.
type Service struct {
	log     *slog.Logger
	repo    PropertyRepository
	metrics *metrics.SearchMetrics
	cfg     config.SearchConfig
}

func New(log *slog.Logger, repo PropertyRepository, m *metrics.SearchMetrics, cfg config.SearchConfig) *Service {
	return &Service{
		log:     log,
		repo:    repo,
		metrics: m,
		cfg:     cfg,
	}
}

// GetSuggestions — возвращает подсказки для частично введённого запроса.
//
// Queries shorter than the configured minimum (after trimming) return an
// empty list without touching the store: this bounds query cost and
// keeps single-character noise out of the dropdown. Title suggestions
// come first, then location suggestions deduplicated by exact string
// equality. The two groups are not cross-deduplicated and keep their
// storage order.
func (s *Service) GetSuggestions(ctx context.Context, query string) ([]domain.Suggestion, error) {
	const op = "search.Service.GetSuggestions"
	log := s.log.With(slog.String("op", op))

	trimmed := strings.TrimSpace(query)
	if utf8.RuneCountInString(trimmed) < s.cfg.MinQueryLength {
		return []domain.Suggestion{}, nil
	}

	timer := s.metrics.StartTimer(metrics.OpSuggest)

	titles, err := s.repo.SuggestTitles(ctx, trimmed, s.cfg.SuggestLimit)
	if err != nil {
		timer.Stop(err)
		log.Error("title lookup failed", sl.Err(err))
		return nil, domain.NewQueryError(fmt.Errorf("%s: %w", op, err))
	}

	locations, err := s.repo.SuggestLocations(ctx, trimmed, s.cfg.SuggestLimit)
	if err != nil {
		timer.Stop(err)
		log.Error("location lookup failed", sl.Err(err))
		return nil, domain.NewQueryError(fmt.Errorf("%s: %w", op, err))
	}

	suggestions := lo.Map(titles, func(title string, _ int) domain.Suggestion {
		return domain.Suggestion{Text: title, Type: domain.SuggestionTitle}
	})
	suggestions = append(suggestions, lo.Map(lo.Uniq(locations), func(location string, _ int) domain.Suggestion {
		return domain.Suggestion{Text: location, Type: domain.SuggestionLocation}
	})...)

	timer.Stop(nil)
	log.Debug("suggestions built",
		slog.String("query", trimmed),
		slog.Int("count", len(suggestions)),
	)

	return suggestions, nil
}

// Search — выполняет поиск листингов по нормализованному запросу.
//
// Count is the post-limit row count and HasMore is a full-page
// heuristic; neither is a total match count. See domain.SearchResult.
func (s *Service) Search(ctx context.Context, req domain.SearchRequest) (domain.SearchResult, error) {
	const op = "search.Service.Search"
	log := s.log.With(slog.String("op", op))

	req = req.Normalize()

	timer := s.metrics.StartTimer(metrics.OpSearch)

	properties, err := s.repo.Search(ctx, req)
	if err != nil {
		timer.Stop(err)
		log.Error("search query failed", sl.Err(err))
		return domain.SearchResult{}, domain.NewQueryError(fmt.Errorf("%s: %w", op, err))
	}
	timer.Stop(nil)

	if properties == nil {
		properties = []domain.Property{}
	}

	log.Debug("search completed",
		slog.String("query", req.Query),
		slog.String("sort", string(req.Sort)),
		slog.Int("found", len(properties)),
	)

	return domain.SearchResult{
		Data:    properties,
		Count:   len(properties),
		HasMore: len(properties) == req.Limit,
	}, nil
}
