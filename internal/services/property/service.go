package property

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"

	"estate_search/internal/domain"
	"estate_search/internal/lib/imagestore"
	"estate_search/internal/lib/jsonld"
	"estate_search/internal/lib/logger/sl"
	"estate_search/internal/lib/metrics"
	"estate_search/internal/repository"

	"github.com/google/uuid"
)

// PropertyRepository — хранилище для административных операций.
type PropertyRepository interface {
	CreateProperty(ctx context.Context, property domain.Property) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Property, error)
	UpdateProperty(ctx context.Context, propertyID uuid.UUID, update domain.PropertyUpdate) error
	DeleteProperty(ctx context.Context, id uuid.UUID) error
	ListProperties(ctx context.Context, filter domain.PropertyListFilter) ([]domain.Property, error)
	UpdateImage(ctx context.Context, propertyID uuid.UUID, imageURL string) error
}

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrNothingToUpdate  = errors.New("nothing to update")
)

// Service — admin CRUD over the properties table plus image upload and
// JSON-LD markup for a listing. Search never goes through here.
type Service struct {
	log     *slog.Logger
	repo    PropertyRepository
	images  imagestore.Client
	jsonld  *jsonld.Generator
	metrics *metrics.SearchMetrics
	baseURL string
}

func New(log *slog.Logger, repo PropertyRepository, images imagestore.Client, m *metrics.SearchMetrics, baseURL string) *Service {
	return &Service{
		log:     log,
		repo:    repo,
		images:  images,
		jsonld:  jsonld.NewGenerator(),
		metrics: m,
		baseURL: baseURL,
	}
}

// CreateProperty — создаёт новый листинг.
func (s *Service) CreateProperty(ctx context.Context, property domain.Property) (uuid.UUID, error) {
	const op = "property.Service.CreateProperty"
	log := s.log.With(slog.String("op", op), slog.String("title", property.Title))

	if property.Status == domain.PropertyStatusUnspecified {
		property.Status = domain.PropertyStatusDraft
	}

	timer := s.metrics.StartTimer(metrics.OpAdmin)
	id, err := s.repo.CreateProperty(ctx, property)
	timer.Stop(err)
	if err != nil {
		log.Error("failed to create property", sl.Err(err))
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("property created", slog.String("property_id", id.String()))
	return id, nil
}

// GetProperty — получает листинг по ID.
func (s *Service) GetProperty(ctx context.Context, id uuid.UUID) (domain.Property, error) {
	const op = "property.Service.GetProperty"

	property, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			s.log.Warn("property not found", slog.String("property_id", id.String()))
			return domain.Property{}, fmt.Errorf("%s: %w", op, ErrPropertyNotFound)
		}
		s.log.Error("failed to get property", sl.Err(err))
		return domain.Property{}, fmt.Errorf("%s: %w", op, err)
	}

	return property, nil
}

// UpdateProperty — частичное обновление листинга, возвращает свежую версию.
func (s *Service) UpdateProperty(ctx context.Context, propertyID uuid.UUID, update domain.PropertyUpdate) (domain.Property, error) {
	const op = "property.Service.UpdateProperty"

	timer := s.metrics.StartTimer(metrics.OpAdmin)
	err := s.repo.UpdateProperty(ctx, propertyID, update)
	timer.Stop(err)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPropertyNotFound):
			return domain.Property{}, fmt.Errorf("%s: %w", op, ErrPropertyNotFound)
		case errors.Is(err, repository.ErrNoFieldsToUpdate):
			return domain.Property{}, fmt.Errorf("%s: %w", op, ErrNothingToUpdate)
		}
		return domain.Property{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.repo.GetByID(ctx, propertyID)
	if err != nil {
		return domain.Property{}, fmt.Errorf("%s: failed to fetch updated property: %w", op, err)
	}

	return updated, nil
}

// DeleteProperty — удаляет листинг.
func (s *Service) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	const op = "property.Service.DeleteProperty"

	timer := s.metrics.StartTimer(metrics.OpAdmin)
	err := s.repo.DeleteProperty(ctx, id)
	timer.Stop(err)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return fmt.Errorf("%s: %w", op, ErrPropertyNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("property deleted", slog.String("property_id", id.String()))
	return nil
}

// ListProperties — возвращает листинги по фильтру.
func (s *Service) ListProperties(ctx context.Context, filter domain.PropertyListFilter) ([]domain.Property, error) {
	const op = "property.Service.ListProperties"

	properties, err := s.repo.ListProperties(ctx, filter)
	if err != nil {
		s.log.Error("failed to list properties", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return properties, nil
}

// UploadImage — загружает изображение листинга и сохраняет его URL.
func (s *Service) UploadImage(ctx context.Context, propertyID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	const op = "property.Service.UploadImage"
	log := s.log.With(slog.String("op", op), slog.String("property_id", propertyID.String()))

	// Existence check first so a missing listing doesn't leave an
	// orphaned object in the bucket.
	if _, err := s.GetProperty(ctx, propertyID); err != nil {
		return "", err
	}

	objectName := propertyID.String() + path.Ext(filename)
	url, err := s.images.Upload(ctx, objectName, reader, size, contentType)
	if err != nil {
		log.Error("image upload failed", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.UpdateImage(ctx, propertyID, url); err != nil {
		log.Error("failed to persist image url", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("image uploaded", slog.String("url", url))
	return url, nil
}

// PropertyJSONLD — schema.org разметка листинга для SEO.
func (s *Service) PropertyJSONLD(ctx context.Context, id uuid.UUID) ([]byte, error) {
	const op = "property.Service.PropertyJSONLD"

	property, err := s.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := s.jsonld.GeneratePropertyJSONLDBytes(property, s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return data, nil
}
