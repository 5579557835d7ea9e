package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Property — a single listing row from the properties table. The search
// service only ever reads these; mutations happen through the admin CRUD.
type Property struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Location    string         `json:"location"`
	Price       float64        `json:"price"`
	Type        PropertyType   `json:"type"`
	Bedrooms    int32          `json:"bedrooms"`
	Bathrooms   int32          `json:"bathrooms"`
	Area        string         `json:"area"`
	ImageURL    string         `json:"image"`
	Featured    bool           `json:"featured"`
	Status      PropertyStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// PropertyType — listing category.
type PropertyType string

const (
	PropertyTypeUnspecified PropertyType = ""
	PropertyTypeResidential PropertyType = "residential"
	PropertyTypeCommercial  PropertyType = "commercial"
)

func (t PropertyType) String() string {
	return string(t)
}

// PropertyStatus — admin-managed lifecycle of a listing.
type PropertyStatus string

const (
	PropertyStatusUnspecified PropertyStatus = ""
	PropertyStatusActive      PropertyStatus = "active"
	PropertyStatusPending     PropertyStatus = "pending"
	PropertyStatusSold        PropertyStatus = "sold"
	PropertyStatusDraft       PropertyStatus = "draft"
)

func (s PropertyStatus) String() string {
	return string(s)
}

// SortMode — mutually exclusive result orderings.
type SortMode string

const (
	SortNewest    SortMode = "newest"
	SortPriceAsc  SortMode = "price_asc"
	SortPriceDesc SortMode = "price_desc"
	SortPopular   SortMode = "popular"
)

// NormalizeSortMode maps any unrecognized value to the default ordering.
func NormalizeSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortPriceAsc, SortPriceDesc, SortPopular, SortNewest:
		return SortMode(s)
	}
	return SortNewest
}

// DefaultSearchLimit — результатов поиска по умолчанию, если лимит не задан.
const DefaultSearchLimit = 10

// FilterAll is the sentinel callers send to explicitly mean "no filter".
const FilterAll = "all"

// SearchRequest — one search or auto-suggest call. All fields are
// optional; an absent field imposes no filter. Callers historically use
// absent, empty string and the "all" sentinel interchangeably, so
// Normalize collapses every no-op representation into one unset value
// before any query is built.
type SearchRequest struct {
	Query       string
	Location    string
	MinPrice    *float64
	MaxPrice    *float64
	Type        string
	Sort        SortMode
	Limit       int
	AutoSuggest bool
}

// Normalize returns the canonical form of the request: trimmed query,
// sentinels removed, limit and sort defaulted. Filter-building code can
// then test plain zero values instead of scattering sentinel checks.
func (r SearchRequest) Normalize() SearchRequest {
	out := r

	out.Query = strings.TrimSpace(r.Query)
	if strings.EqualFold(r.Location, FilterAll) {
		out.Location = ""
	}
	if strings.EqualFold(r.Type, FilterAll) {
		out.Type = ""
	}
	out.Sort = NormalizeSortMode(string(r.Sort))
	if out.Limit <= 0 {
		out.Limit = DefaultSearchLimit
	}

	return out
}

// QueryTokens splits the free-text query into whitespace-separated,
// lowercased tokens. An empty query yields nil.
func (r SearchRequest) QueryTokens() []string {
	return strings.Fields(strings.ToLower(strings.TrimSpace(r.Query)))
}

// SearchResult — the search-mode response envelope.
//
// Count is the number of rows returned after the limit, not a total
// match count, and HasMore is true exactly when a full page came back.
// Both are deliberately approximate: HasMore reports a false positive
// when the true match count equals the limit. Callers treat it as
// "probably another page", nothing stronger.
type SearchResult struct {
	Data    []Property `json:"data"`
	Count   int        `json:"count"`
	HasMore bool       `json:"hasMore"`
}

// SuggestionType — which field a suggestion was drawn from.
type SuggestionType string

const (
	SuggestionTitle    SuggestionType = "title"
	SuggestionLocation SuggestionType = "location"
)

// Suggestion — one auto-suggest entry. Ephemeral, never persisted.
type Suggestion struct {
	Text string         `json:"text"`
	Type SuggestionType `json:"type"`
}

// PropertyUpdate — partial update for the admin CRUD. Nil fields are
// left untouched.
type PropertyUpdate struct {
	Title       *string
	Description *string
	Location    *string
	Price       *float64
	Type        *PropertyType
	Bedrooms    *int32
	Bathrooms   *int32
	Area        *string
	ImageURL    *string
	Featured    *bool
	Status      *PropertyStatus
}

// PropertyListFilter — admin listing filter with offset pagination.
type PropertyListFilter struct {
	Status *PropertyStatus
	Type   *PropertyType
	Pager  *Pager
}
