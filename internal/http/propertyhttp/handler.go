package propertyhttp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"estate_search/internal/domain"
	"estate_search/internal/http/httputil"
	"estate_search/internal/lib/logger/sl"
	"estate_search/internal/services/property"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxImageSize — предельный размер загружаемого изображения.
const maxImageSize = 10 << 20 // 10 MiB

// PropertyService — административные операции над листингами.
type PropertyService interface {
	CreateProperty(ctx context.Context, p domain.Property) (uuid.UUID, error)
	GetProperty(ctx context.Context, id uuid.UUID) (domain.Property, error)
	UpdateProperty(ctx context.Context, id uuid.UUID, update domain.PropertyUpdate) (domain.Property, error)
	DeleteProperty(ctx context.Context, id uuid.UUID) error
	ListProperties(ctx context.Context, filter domain.PropertyListFilter) ([]domain.Property, error)
	UploadImage(ctx context.Context, id uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error)
	PropertyJSONLD(ctx context.Context, id uuid.UUID) ([]byte, error)
}

// Handler — REST-адаптер административного CRUD.
type Handler struct {
	log *slog.Logger
	svc PropertyService
}

func NewHandler(log *slog.Logger, svc PropertyService) *Handler {
	return &Handler{log: log, svc: svc}
}

// createRequest — тело запроса на создание листинга.
type createRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
	Type        string  `json:"type"`
	Bedrooms    int32   `json:"bedrooms"`
	Bathrooms   int32   `json:"bathrooms"`
	Area        string  `json:"area"`
	ImageURL    string  `json:"image"`
	Featured    bool    `json:"featured"`
	Status      string  `json:"status"`
}

// updateRequest — частичное обновление; отсутствующие поля не трогаются.
type updateRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Location    *string  `json:"location"`
	Price       *float64 `json:"price"`
	Type        *string  `json:"type"`
	Bedrooms    *int32   `json:"bedrooms"`
	Bathrooms   *int32   `json:"bathrooms"`
	Area        *string  `json:"area"`
	ImageURL    *string  `json:"image"`
	Featured    *bool    `json:"featured"`
	Status      *string  `json:"status"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		httputil.RespondError(w, http.StatusBadRequest, "title is required")
		return
	}

	id, err := h.svc.CreateProperty(r.Context(), domain.Property{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Price:       req.Price,
		Type:        domain.PropertyType(req.Type),
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Area:        req.Area,
		ImageURL:    req.ImageURL,
		Featured:    req.Featured,
		Status:      domain.PropertyStatus(req.Status),
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.propertyID(w, r)
	if !ok {
		return
	}

	p, err := h.svc.GetProperty(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, p)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.propertyID(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update := domain.PropertyUpdate{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Price:       req.Price,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Area:        req.Area,
		ImageURL:    req.ImageURL,
		Featured:    req.Featured,
	}
	if req.Type != nil {
		t := domain.PropertyType(*req.Type)
		update.Type = &t
	}
	if req.Status != nil {
		s := domain.PropertyStatus(*req.Status)
		update.Status = &s
	}

	updated, err := h.svc.UpdateProperty(r.Context(), id, update)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.propertyID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteProperty(r.Context(), id); err != nil {
		h.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.PropertyListFilter{
		Pager: domain.NewPager(parseInt32(q.Get("page")), parseInt32(q.Get("per_page"))),
	}
	if v := q.Get("status"); v != "" && v != domain.FilterAll {
		status := domain.PropertyStatus(v)
		filter.Status = &status
	}
	if v := q.Get("type"); v != "" && v != domain.FilterAll {
		t := domain.PropertyType(v)
		filter.Type = &t
	}

	properties, err := h.svc.ListProperties(r.Context(), filter)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	if properties == nil {
		properties = []domain.Property{}
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"data":  properties,
		"count": len(properties),
	})
}

func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.propertyID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	url, err := h.svc.UploadImage(r.Context(), id, header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"image": url})
}

func (h *Handler) JSONLD(w http.ResponseWriter, r *http.Request) {
	id, ok := h.propertyID(w, r)
	if !ok {
		return
	}

	data, err := h.svc.PropertyJSONLD(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/ld+json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handler) propertyID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "propertyID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid property id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, property.ErrPropertyNotFound):
		httputil.RespondError(w, http.StatusNotFound, "property not found")
	case errors.Is(err, property.ErrNothingToUpdate):
		httputil.RespondError(w, http.StatusBadRequest, "no fields to update")
	default:
		h.log.Error("admin request failed", sl.Err(err))
		httputil.RespondError(w, http.StatusInternalServerError, "internal error")
	}
}

func parseInt32(s string) int32 {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0
	}
	return int32(v)
}
