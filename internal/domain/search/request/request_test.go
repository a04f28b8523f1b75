package request

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/labdex/internal/domain"
	"github.com/kailas-cloud/labdex/internal/domain/search/filter"
	"github.com/kailas-cloud/labdex/internal/domain/search/kind"
)

func emptyFilters() filter.Expression {
	e, _ := filter.NewExpression()
	return e
}

func TestNew_Defaults(t *testing.T) {
	r, err := New("grant", 0, 20, nil, emptyFilters())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Query() != "grant" {
		t.Errorf("Query() = %q", r.Query())
	}
	if r.Page() != 0 || r.Size() != 20 {
		t.Errorf("page/size = %d/%d", r.Page(), r.Size())
	}
	if len(r.Scope()) != len(kind.All) {
		t.Errorf("Scope() = %v, want all kinds", r.Scope())
	}
	for _, k := range kind.All {
		if !r.Includes(k) {
			t.Errorf("expected %q in scope", k)
		}
	}
}

func TestNew_EmptyQueryAllowed(t *testing.T) {
	if _, err := New("", 0, 10, nil, emptyFilters()); err != nil {
		t.Fatalf("empty query should be accepted: %v", err)
	}
}

func TestNew_InvalidPaging(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
	}{
		{"zero size", 0, 0},
		{"negative size", 0, -5},
		{"negative page", -1, 10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New("q", tc.page, tc.size, nil, emptyFilters())
			if !errors.Is(err, domain.ErrInvalidPageSize) {
				t.Errorf("expected ErrInvalidPageSize, got %v", err)
			}
		})
	}
}

func TestNew_ClampsSize(t *testing.T) {
	r, err := New("q", 0, 1000, nil, emptyFilters())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Size() != MaxSize {
		t.Errorf("Size() = %d, want %d", r.Size(), MaxSize)
	}
}

func TestNew_QueryTooLong(t *testing.T) {
	_, err := New(strings.Repeat("a", MaxQueryLength+1), 0, 10, nil, emptyFilters())
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNew_InvalidScope(t *testing.T) {
	_, err := New("q", 0, 10, []kind.Kind{"grant"}, emptyFilters())
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestWithScope(t *testing.T) {
	r, _ := New("q", 1, 10, nil, emptyFilters())
	narrowed := r.WithScope(kind.Project)

	if narrowed.Includes(kind.Document) || !narrowed.Includes(kind.Project) {
		t.Errorf("unexpected scope %v", narrowed.Scope())
	}
	if !r.Includes(kind.Document) {
		t.Error("original request mutated")
	}
	if narrowed.Page() != 1 || narrowed.Query() != "q" {
		t.Error("WithScope lost fields")
	}
}
