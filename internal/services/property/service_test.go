package property

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"estate_search/internal/domain"
	"estate_search/internal/lib/metrics"
	"estate_search/internal/repository"

	"github.com/google/uuid"
)

// MockPropertyRepository
type MockPropertyRepository struct {
	CreatePropertyFunc func(ctx context.Context, property domain.Property) (uuid.UUID, error)
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (domain.Property, error)
	UpdatePropertyFunc func(ctx context.Context, propertyID uuid.UUID, update domain.PropertyUpdate) error
	DeletePropertyFunc func(ctx context.Context, id uuid.UUID) error
	UpdateImageFunc    func(ctx context.Context, propertyID uuid.UUID, imageURL string) error
}

func (m *MockPropertyRepository) CreateProperty(ctx context.Context, property domain.Property) (uuid.UUID, error) {
	if m.CreatePropertyFunc != nil {
		return m.CreatePropertyFunc(ctx, property)
	}
	return uuid.Nil, nil
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Property, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return domain.Property{}, nil
}

func (m *MockPropertyRepository) UpdateProperty(ctx context.Context, propertyID uuid.UUID, update domain.PropertyUpdate) error {
	if m.UpdatePropertyFunc != nil {
		return m.UpdatePropertyFunc(ctx, propertyID, update)
	}
	return nil
}

func (m *MockPropertyRepository) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	if m.DeletePropertyFunc != nil {
		return m.DeletePropertyFunc(ctx, id)
	}
	return nil
}

func (m *MockPropertyRepository) ListProperties(ctx context.Context, filter domain.PropertyListFilter) ([]domain.Property, error) {
	return nil, nil
}

func (m *MockPropertyRepository) UpdateImage(ctx context.Context, propertyID uuid.UUID, imageURL string) error {
	if m.UpdateImageFunc != nil {
		return m.UpdateImageFunc(ctx, propertyID, imageURL)
	}
	return nil
}

// MockImageClient
type MockImageClient struct {
	UploadFunc func(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
}

func (m *MockImageClient) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, objectName, reader, size, contentType)
	}
	return "", nil
}

func (m *MockImageClient) IsEnabled() bool { return true }

func newTestService(repo *MockPropertyRepository, images *MockImageClient) *Service {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return New(log, repo, images, &metrics.SearchMetrics{}, "https://estates.example.com")
}

func TestService_CreateProperty_DefaultsToDraft(t *testing.T) {
	created := uuid.New()
	repo := &MockPropertyRepository{
		CreatePropertyFunc: func(ctx context.Context, property domain.Property) (uuid.UUID, error) {
			if property.Status != domain.PropertyStatusDraft {
				t.Errorf("expected draft status, got %q", property.Status)
			}
			return created, nil
		},
	}
	svc := newTestService(repo, &MockImageClient{})

	id, err := svc.CreateProperty(context.Background(), domain.Property{Title: "New Listing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != created {
		t.Errorf("expected id %s, got %s", created, id)
	}
}

func TestService_CreateProperty_KeepsExplicitStatus(t *testing.T) {
	repo := &MockPropertyRepository{
		CreatePropertyFunc: func(ctx context.Context, property domain.Property) (uuid.UUID, error) {
			if property.Status != domain.PropertyStatusActive {
				t.Errorf("expected active status, got %q", property.Status)
			}
			return uuid.New(), nil
		},
	}
	svc := newTestService(repo, &MockImageClient{})

	_, err := svc.CreateProperty(context.Background(), domain.Property{
		Title:  "New Listing",
		Status: domain.PropertyStatusActive,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestService_GetProperty_NotFound(t *testing.T) {
	repo := &MockPropertyRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Property, error) {
			return domain.Property{}, repository.ErrPropertyNotFound
		},
	}
	svc := newTestService(repo, &MockImageClient{})

	_, err := svc.GetProperty(context.Background(), uuid.New())
	if !errors.Is(err, ErrPropertyNotFound) {
		t.Errorf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestService_UpdateProperty_ReturnsFreshVersion(t *testing.T) {
	propertyID := uuid.New()
	newTitle := "Renovated Villa"

	repo := &MockPropertyRepository{
		UpdatePropertyFunc: func(ctx context.Context, id uuid.UUID, update domain.PropertyUpdate) error {
			if id != propertyID {
				t.Errorf("expected propertyID %s, got %s", propertyID, id)
			}
			if update.Title == nil || *update.Title != newTitle {
				t.Errorf("expected title update %q, got %v", newTitle, update.Title)
			}
			return nil
		},
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Property, error) {
			return domain.Property{ID: propertyID, Title: newTitle}, nil
		},
	}
	svc := newTestService(repo, &MockImageClient{})

	updated, err := svc.UpdateProperty(context.Background(), propertyID, domain.PropertyUpdate{Title: &newTitle})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != newTitle {
		t.Errorf("expected fresh title %q, got %q", newTitle, updated.Title)
	}
}

func TestService_UpdateProperty_NothingToUpdate(t *testing.T) {
	repo := &MockPropertyRepository{
		UpdatePropertyFunc: func(ctx context.Context, id uuid.UUID, update domain.PropertyUpdate) error {
			return repository.ErrNoFieldsToUpdate
		},
	}
	svc := newTestService(repo, &MockImageClient{})

	_, err := svc.UpdateProperty(context.Background(), uuid.New(), domain.PropertyUpdate{})
	if !errors.Is(err, ErrNothingToUpdate) {
		t.Errorf("expected ErrNothingToUpdate, got %v", err)
	}
}

func TestService_DeleteProperty_NotFound(t *testing.T) {
	repo := &MockPropertyRepository{
		DeletePropertyFunc: func(ctx context.Context, id uuid.UUID) error {
			return repository.ErrPropertyNotFound
		},
	}
	svc := newTestService(repo, &MockImageClient{})

	err := svc.DeleteProperty(context.Background(), uuid.New())
	if !errors.Is(err, ErrPropertyNotFound) {
		t.Errorf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestService_UploadImage(t *testing.T) {
	propertyID := uuid.New()
	var persistedURL string

	repo := &MockPropertyRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Property, error) {
			return domain.Property{ID: propertyID}, nil
		},
		UpdateImageFunc: func(ctx context.Context, id uuid.UUID, imageURL string) error {
			persistedURL = imageURL
			return nil
		},
	}
	images := &MockImageClient{
		UploadFunc: func(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
			// Имя объекта строится из ID листинга и расширения файла
			if objectName != propertyID.String()+".jpg" {
				t.Errorf("unexpected object name %q", objectName)
			}
			return "https://cdn.example.com/" + objectName, nil
		},
	}
	svc := newTestService(repo, images)

	url, err := svc.UploadImage(context.Background(), propertyID, "front.jpg", strings.NewReader("img"), 3, "image/jpeg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != persistedURL {
		t.Errorf("returned url %q differs from persisted %q", url, persistedURL)
	}
}

func TestService_UploadImage_MissingProperty(t *testing.T) {
	uploads := 0
	repo := &MockPropertyRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Property, error) {
			return domain.Property{}, repository.ErrPropertyNotFound
		},
	}
	images := &MockImageClient{
		UploadFunc: func(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
			uploads++
			return "", nil
		},
	}
	svc := newTestService(repo, images)

	_, err := svc.UploadImage(context.Background(), uuid.New(), "front.jpg", strings.NewReader("img"), 3, "image/jpeg")
	if !errors.Is(err, ErrPropertyNotFound) {
		t.Errorf("expected ErrPropertyNotFound, got %v", err)
	}
	if uploads != 0 {
		t.Errorf("expected no upload for missing listing, got %d", uploads)
	}
}

func TestService_PropertyJSONLD(t *testing.T) {
	propertyID := uuid.New()
	repo := &MockPropertyRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Property, error) {
			return domain.Property{
				ID:    propertyID,
				Title: "Luxury Villa",
				Price: 35000000,
				Type:  domain.PropertyTypeResidential,
			}, nil
		},
	}
	svc := newTestService(repo, &MockImageClient{})

	data, err := svc.PropertyJSONLD(context.Background(), propertyID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	payload := string(data)
	if !strings.Contains(payload, `"@context": "https://schema.org"`) {
		t.Errorf("expected schema.org context, got: %s", payload)
	}
	if !strings.Contains(payload, "Luxury Villa") {
		t.Errorf("expected listing title in markup, got: %s", payload)
	}
}
