package request

import (
	"fmt"

	"github.com/kailas-cloud/labdex/internal/domain"
	"github.com/kailas-cloud/labdex/internal/domain/search/filter"
	"github.com/kailas-cloud/labdex/internal/domain/search/kind"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	DefaultSize    = 20
	MaxSize        = 100
)

// Request is a validated universal search query.
type Request struct {
	query   string
	page    int
	size    int
	scope   []kind.Kind
	filters filter.Expression
}

// New validates search parameters. A zero size is NOT defaulted here: callers
// that accept an omitted size apply their configured default first, so a
// non-positive size reaching New is a client error (ErrInvalidPageSize).
// Sizes above MaxSize are clamped. An empty query is valid and matches nothing.
func New(query string, page, size int, scope []kind.Kind, filters filter.Expression) (Request, error) {
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars): %w", MaxQueryLength, domain.ErrInvalidInput)
	}
	if size <= 0 {
		return Request{}, fmt.Errorf("size must be positive, got %d: %w", size, domain.ErrInvalidPageSize)
	}
	if page < 0 {
		return Request{}, fmt.Errorf("page must not be negative, got %d: %w", page, domain.ErrInvalidPageSize)
	}
	if size > MaxSize {
		size = MaxSize
	}
	if len(scope) == 0 {
		scope = kind.All
	}
	for _, k := range scope {
		if !k.IsValid() {
			return Request{}, fmt.Errorf("invalid search kind %q: %w", k, domain.ErrInvalidInput)
		}
	}

	return Request{
		query:   query,
		page:    page,
		size:    size,
		scope:   scope,
		filters: filters,
	}, nil
}

// Query returns the raw search text.
func (r *Request) Query() string { return r.query }

// Page returns the zero-based page index.
func (r *Request) Page() int { return r.page }

// Size returns the page size, also used as the per-source match limit.
func (r *Request) Size() int { return r.size }

// Scope returns the record kinds to search, in aggregation order.
func (r *Request) Scope() []kind.Kind { return r.scope }

// Filters returns the attribute filter.
func (r *Request) Filters() filter.Expression { return r.filters }

// Includes reports whether k is in scope.
func (r *Request) Includes(k kind.Kind) bool {
	for _, s := range r.scope {
		if s == k {
			return true
		}
	}
	return false
}

// WithScope returns a copy restricted to the given kinds.
func (r *Request) WithScope(scope ...kind.Kind) Request {
	c := *r
	c.scope = scope
	return c
}
