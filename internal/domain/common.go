package domain

const (
	// DefaultPageSize кол-во записей на странице по умолчанию
	DefaultPageSize = 20
	// MaxPageSize максимальное кол-во записей на странице
	MaxPageSize = 100
)

// Pager — offset pagination for the admin listing endpoints.
type Pager struct {
	page, perPage int32
}

func NewPager(page int32, perPage int32) *Pager {
	return &Pager{page: page, perPage: perPage}
}

// Limit вернет SQL LIMIT
func (p *Pager) Limit() int64 {
	if p == nil || p.perPage == 0 {
		return DefaultPageSize
	}

	return min(MaxPageSize, int64(p.perPage))
}

// Offset вернет для SQL OFFSET
func (p *Pager) Offset() int64 {
	if p == nil || p.page == 0 {
		return 0
	}
	return int64((p.page - 1) * p.perPage)
}
