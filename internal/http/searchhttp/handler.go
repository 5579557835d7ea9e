package searchhttp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"estate_search/internal/domain"
	"estate_search/internal/http/httputil"
	"estate_search/internal/http/middleware"
	"estate_search/internal/lib/logger/sl"
)

// SearchService — бизнес-логика поиска и подсказок.
type SearchService interface {
	Search(ctx context.Context, req domain.SearchRequest) (domain.SearchResult, error)
	GetSuggestions(ctx context.Context, query string) ([]domain.Suggestion, error)
}

// Handler serves the public search endpoint. Two caller generations are
// supported: GET with query-string parameters and POST with a JSON body
// carrying the same fields under "params". Both are normalized into one
// domain.SearchRequest before any business logic runs.
type Handler struct {
	log *slog.Logger
	svc SearchService
}

func NewHandler(log *slog.Logger, svc SearchService) *Handler {
	return &Handler{log: log, svc: svc}
}

// suggestionsResponse — конверт ответа в режиме подсказок.
type suggestionsResponse struct {
	Suggestions []domain.Suggestion `json:"suggestions"`
}

// HandleGet обрабатывает поисковый запрос с параметрами в URL.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, requestFromQueryString(r))
}

// HandlePost обрабатывает поисковый запрос с параметрами в JSON-теле.
func (h *Handler) HandlePost(w http.ResponseWriter, r *http.Request) {
	req, err := requestFromBody(r)
	if err != nil {
		// An unreadable body still gets a well-formed JSON answer, not
		// a crash; the UI renders it as an error state.
		h.log.Warn("malformed search request body", sl.Err(err))
		httputil.RespondError(w, http.StatusInternalServerError, middleware.GenericErrorMessage)
		return
	}
	h.handle(w, r, req)
}

// HandleOptions отвечает на pre-flight запросы пустым телом.
func (h *Handler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, req domain.SearchRequest) {
	h.log.Info("search request received",
		slog.String("query", req.Query),
		slog.String("location", req.Location),
		slog.String("type", req.Type),
		slog.String("sort", string(req.Sort)),
		slog.Bool("auto_suggest", req.AutoSuggest),
	)

	if req.AutoSuggest {
		suggestions, err := h.svc.GetSuggestions(r.Context(), req.Query)
		if err != nil {
			h.respondQueryError(w, err)
			return
		}
		httputil.RespondJSON(w, http.StatusOK, suggestionsResponse{Suggestions: suggestions})
		return
	}

	result, err := h.svc.Search(r.Context(), req)
	if err != nil {
		h.respondQueryError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, result)
}

// respondQueryError maps a storage fault to a 500 with its message;
// anything else stays generic so internals never leak.
func (h *Handler) respondQueryError(w http.ResponseWriter, err error) {
	var qe *domain.QueryError
	if errors.As(err, &qe) {
		h.log.Error("storage query failed", sl.Err(err))
		httputil.RespondError(w, http.StatusInternalServerError, qe.Error())
		return
	}
	h.log.Error("unexpected search failure", sl.Err(err))
	httputil.RespondError(w, http.StatusInternalServerError, middleware.GenericErrorMessage)
}

// requestFromQueryString — адаптер GET-формы запроса.
func requestFromQueryString(r *http.Request) domain.SearchRequest {
	q := r.URL.Query()

	return domain.SearchRequest{
		Query:       q.Get("query"),
		Location:    q.Get("location"),
		MinPrice:    parseOptionalFloat(q.Get("minPrice")),
		MaxPrice:    parseOptionalFloat(q.Get("maxPrice")),
		Type:        q.Get("type"),
		Sort:        domain.SortMode(q.Get("sort")),
		Limit:       parseLimit(q.Get("limit")),
		AutoSuggest: q.Get("autoSuggest") == "true",
	}
}

// bodyEnvelope — тело POST-запроса: { "params": { ... } }.
type bodyEnvelope struct {
	Params bodyParams `json:"params"`
}

// bodyParams mirrors the query-string fields. Numeric fields arrive as
// numbers or as numeric strings depending on the caller generation, so
// they are decoded leniently.
type bodyParams struct {
	Query       string          `json:"query"`
	Location    string          `json:"location"`
	MinPrice    json.RawMessage `json:"minPrice"`
	MaxPrice    json.RawMessage `json:"maxPrice"`
	Type        string          `json:"type"`
	Sort        string          `json:"sort"`
	Limit       json.RawMessage `json:"limit"`
	AutoSuggest json.RawMessage `json:"autoSuggest"`
}

// requestFromBody — адаптер POST-формы запроса.
func requestFromBody(r *http.Request) (domain.SearchRequest, error) {
	var envelope bodyEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		return domain.SearchRequest{}, err
	}
	p := envelope.Params

	return domain.SearchRequest{
		Query:       p.Query,
		Location:    p.Location,
		MinPrice:    rawOptionalFloat(p.MinPrice),
		MaxPrice:    rawOptionalFloat(p.MaxPrice),
		Type:        p.Type,
		Sort:        domain.SortMode(p.Sort),
		Limit:       rawLimit(p.Limit),
		AutoSuggest: rawBoolFlag(p.AutoSuggest),
	}, nil
}

// parseOptionalFloat treats non-numeric values as absent, never as an
// error.
func parseOptionalFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseLimit returns 0 for absent or invalid values; normalization
// turns 0 into the default limit.
func parseLimit(s string) int {
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

func rawOptionalFloat(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return &num
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return parseOptionalFloat(str)
	}
	return nil
}

func rawLimit(raw json.RawMessage) int {
	if v := rawOptionalFloat(raw); v != nil {
		return int(*v)
	}
	return 0
}

// rawBoolFlag accepts JSON true or the string "true"; older callers
// send the flag as a string.
func rawBoolFlag(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s == "true"
	}
	return false
}
