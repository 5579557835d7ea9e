package property_repository

import (
	"fmt"
	"strings"

	"estate_search/internal/domain"
)

// searchQueryBuilder accumulates parameterized WHERE/ORDER BY/LIMIT
// fragments for the properties search. User input only ever travels
// through the args slice, never into the SQL text itself.
type searchQueryBuilder struct {
	conditions []string
	args       []interface{}
	argID      int
}

func newSearchQueryBuilder() *searchQueryBuilder {
	return &searchQueryBuilder{argID: 1}
}

func (qb *searchQueryBuilder) addCondition(format string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(format, qb.argID))
	qb.args = append(qb.args, arg)
	qb.argID++
}

// addTextFilter applies the free-text matching policy.
//
// A single token is matched against title, description and location. A
// multi-word query matches if ANY token appears in EITHER title or
// description (location excluded) — a broad, recall-favoring OR so that
// informal queries like "3BHK lake view" don't come back empty.
func (qb *searchQueryBuilder) addTextFilter(tokens []string) {
	switch len(tokens) {
	case 0:
		return
	case 1:
		pattern := "%" + tokens[0] + "%"
		qb.conditions = append(qb.conditions, fmt.Sprintf(
			"(title ILIKE $%d OR description ILIKE $%d OR location ILIKE $%d)",
			qb.argID, qb.argID, qb.argID))
		qb.args = append(qb.args, pattern)
		qb.argID++
	default:
		parts := make([]string, 0, len(tokens))
		for _, token := range tokens {
			pattern := "%" + token + "%"
			parts = append(parts, fmt.Sprintf(
				"title ILIKE $%d OR description ILIKE $%d", qb.argID, qb.argID))
			qb.args = append(qb.args, pattern)
			qb.argID++
		}
		qb.conditions = append(qb.conditions, "("+strings.Join(parts, " OR ")+")")
	}
}

// orderClause maps a sort mode to its ORDER BY expression. Created-at is
// the tiebreak for the popularity sort so featured listings still come
// back newest-first within each group.
func orderClause(sort domain.SortMode) string {
	switch sort {
	case domain.SortPriceAsc:
		return "ORDER BY price ASC"
	case domain.SortPriceDesc:
		return "ORDER BY price DESC"
	case domain.SortPopular:
		return "ORDER BY featured DESC, created_at DESC"
	default:
		return "ORDER BY created_at DESC"
	}
}

// buildSearchQuery assembles the full SELECT for a normalized request.
func buildSearchQuery(req domain.SearchRequest) (string, []interface{}) {
	qb := newSearchQueryBuilder()

	qb.addTextFilter(req.QueryTokens())

	if req.Location != "" {
		qb.addCondition("location ILIKE $%d", "%"+req.Location+"%")
	}
	if req.MinPrice != nil {
		qb.addCondition("price >= $%d", *req.MinPrice)
	}
	if req.MaxPrice != nil {
		qb.addCondition("price <= $%d", *req.MaxPrice)
	}
	if req.Type != "" {
		qb.addCondition("type = $%d", req.Type)
	}

	query := `
		SELECT
			id, title, description, location, price, type,
			bedrooms, bathrooms, area, image, featured, status,
			created_at, updated_at
		FROM properties
	`
	if len(qb.conditions) > 0 {
		query += " WHERE " + strings.Join(qb.conditions, " AND ")
	}

	query += " " + orderClause(req.Sort)

	query += fmt.Sprintf(" LIMIT $%d", qb.argID)
	qb.args = append(qb.args, req.Limit)

	return query, qb.args
}
