package pagination

const (
	DefaultLimit = 50
	MaxLimit     = 1000
)

// Page is a 1-based offset page request.
type Page struct {
	Page  int
	Limit int
}

// New clamps page and limit into range.
func New(page, limit int) Page {
	if page < 1 {
		page = 1
	}
	return Page{Page: page, Limit: NormalizeLimit(limit)}
}

// Offset is the number of rows to skip.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// HasMore reports whether rows remain after this page.
func (p Page) HasMore(total int64) bool {
	return int64(p.Offset()+p.Limit) < total
}

// NormalizeLimit ensures limit is within bounds
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
