package property_repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"estate_search/internal/domain"
	"estate_search/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PropertyRepository struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewPropertyRepository(db *pgxpool.Pool, log *slog.Logger) *PropertyRepository {
	return &PropertyRepository{db: db, log: log}
}

const propertyColumns = `
	id, title, description, location, price, type,
	bedrooms, bathrooms, area, image, featured, status,
	created_at, updated_at
`

func scanProperty(row pgx.Row) (domain.Property, error) {
	var p domain.Property
	var typeStr, statusStr string
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Location,
		&p.Price,
		&typeStr,
		&p.Bedrooms,
		&p.Bathrooms,
		&p.Area,
		&p.ImageURL,
		&p.Featured,
		&statusStr,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return domain.Property{}, err
	}
	p.Type = domain.PropertyType(typeStr)
	p.Status = domain.PropertyStatus(statusStr)
	return p, nil
}

// Search — returns listings matching a normalized request, sorted and
// capped at the requested limit.
func (r *PropertyRepository) Search(ctx context.Context, req domain.SearchRequest) ([]domain.Property, error) {
	const op = "PropertyRepository.Search"

	query, args := buildSearchQuery(req)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan failed: %w", op, err)
		}
		properties = append(properties, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return properties, nil
}

// SuggestTitles — titles containing the query as a case-insensitive
// substring, capped at limit rows.
func (r *PropertyRepository) SuggestTitles(ctx context.Context, query string, limit int) ([]string, error) {
	const op = "PropertyRepository.SuggestTitles"
	return r.suggestColumn(ctx, op, "title", query, limit)
}

// SuggestLocations — locations containing the query as a case-insensitive
// substring, capped at limit rows. Duplicates are NOT removed here; the
// service deduplicates after the cap.
func (r *PropertyRepository) SuggestLocations(ctx context.Context, query string, limit int) ([]string, error) {
	const op = "PropertyRepository.SuggestLocations"
	return r.suggestColumn(ctx, op, "location", query, limit)
}

func (r *PropertyRepository) suggestColumn(ctx context.Context, op, column, query string, limit int) ([]string, error) {
	// column is one of two compile-time constants, never user input
	sql := fmt.Sprintf("SELECT %s FROM properties WHERE %s ILIKE $1 LIMIT $2", column, column)

	rows, err := r.db.Query(ctx, sql, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("%s: scan failed: %w", op, err)
		}
		values = append(values, v)
	}

	return values, rows.Err()
}

// CreateProperty — создаёт новый объект недвижимости.
func (r *PropertyRepository) CreateProperty(ctx context.Context, property domain.Property) (uuid.UUID, error) {
	const op = "PropertyRepository.CreateProperty"

	query := `
		INSERT INTO properties (
			title, description, location, price, type,
			bedrooms, bathrooms, area, image, featured, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		property.Title,
		property.Description,
		property.Location,
		property.Price,
		property.Type.String(),
		property.Bedrooms,
		property.Bathrooms,
		property.Area,
		property.ImageURL,
		property.Featured,
		property.Status.String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// GetByID — получает объект недвижимости по ID.
func (r *PropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Property, error) {
	const op = "PropertyRepository.GetByID"

	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`

	p, err := scanProperty(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Property{}, fmt.Errorf("%s: %w", op, repository.ErrPropertyNotFound)
		}
		return domain.Property{}, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

// UpdateProperty — частичное обновление данных объекта недвижимости.
func (r *PropertyRepository) UpdateProperty(ctx context.Context, propertyID uuid.UUID, update domain.PropertyUpdate) error {
	const op = "PropertyRepository.UpdateProperty"

	setClauses := []string{}
	params := []interface{}{}
	paramCount := 1

	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, paramCount))
		params = append(params, value)
		paramCount++
	}

	if update.Title != nil {
		addSet("title", *update.Title)
	}
	if update.Description != nil {
		addSet("description", *update.Description)
	}
	if update.Location != nil {
		addSet("location", *update.Location)
	}
	if update.Price != nil {
		addSet("price", *update.Price)
	}
	if update.Type != nil {
		addSet("type", (*update.Type).String())
	}
	if update.Bedrooms != nil {
		addSet("bedrooms", *update.Bedrooms)
	}
	if update.Bathrooms != nil {
		addSet("bathrooms", *update.Bathrooms)
	}
	if update.Area != nil {
		addSet("area", *update.Area)
	}
	if update.ImageURL != nil {
		addSet("image", *update.ImageURL)
	}
	if update.Featured != nil {
		addSet("featured", *update.Featured)
	}
	if update.Status != nil {
		addSet("status", (*update.Status).String())
	}

	if len(setClauses) == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNoFieldsToUpdate)
	}

	setClauses = append(setClauses, "updated_at = NOW()")

	query := fmt.Sprintf(`UPDATE properties SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), paramCount)
	params = append(params, propertyID)

	tag, err := r.db.Exec(ctx, query, params...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrPropertyNotFound)
	}

	return nil
}

// DeleteProperty — удаляет объект недвижимости.
func (r *PropertyRepository) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	const op = "PropertyRepository.DeleteProperty"

	tag, err := r.db.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrPropertyNotFound)
	}

	return nil
}

// ListProperties — admin listing with optional status/type filters and
// offset pagination, newest first.
func (r *PropertyRepository) ListProperties(ctx context.Context, filter domain.PropertyListFilter) ([]domain.Property, error) {
	const op = "PropertyRepository.ListProperties"

	whereClauses := []string{}
	params := []interface{}{}
	paramCount := 1

	if filter.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", paramCount))
		params = append(params, (*filter.Status).String())
		paramCount++
	}
	if filter.Type != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("type = $%d", paramCount))
		params = append(params, (*filter.Type).String())
		paramCount++
	}

	query := `SELECT ` + propertyColumns + ` FROM properties`
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", paramCount, paramCount+1)
	params = append(params, filter.Pager.Limit(), filter.Pager.Offset())

	rows, err := r.db.Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan failed: %w", op, err)
		}
		properties = append(properties, p)
	}

	return properties, rows.Err()
}

// UpdateImage — записывает URL загруженного изображения.
func (r *PropertyRepository) UpdateImage(ctx context.Context, propertyID uuid.UUID, imageURL string) error {
	const op = "PropertyRepository.UpdateImage"

	tag, err := r.db.Exec(ctx,
		`UPDATE properties SET image = $1, updated_at = NOW() WHERE id = $2`,
		imageURL, propertyID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrPropertyNotFound)
	}

	return nil
}
