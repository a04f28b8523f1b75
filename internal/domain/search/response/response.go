package response

import (
	"fmt"
	"sort"

	"github.com/kailas-cloud/labdex/internal/domain"
	"github.com/kailas-cloud/labdex/internal/domain/search/result"
)

// Facet attribute names.
const (
	FacetType   = "type"
	FacetStatus = "status"
)

// FacetValue is a single bucket of a facet.
type FacetValue struct {
	Value string
	Count int
}

// Facet groups result counts by an attribute value.
type Facet struct {
	Name   string
	Values []FacetValue
}

// Response is one page of aggregated search results.
type Response struct {
	results       []result.Result
	totalElements int
	totalPages    int
	currentPage   int
	pageSize      int
	searchTimeMs  int64
	facets        []Facet
}

// New builds a response page. totalElements is taken as given; totalPages is
// ceil(totalElements/pageSize).
func New(results []result.Result, totalElements, page, pageSize int, searchTimeMs int64, facets []Facet) (Response, error) {
	if pageSize <= 0 {
		return Response{}, fmt.Errorf("page size must be positive, got %d: %w", pageSize, domain.ErrInvalidPageSize)
	}
	if results == nil {
		results = []result.Result{}
	}
	return Response{
		results:       results,
		totalElements: totalElements,
		totalPages:    TotalPages(totalElements, pageSize),
		currentPage:   page,
		pageSize:      pageSize,
		searchTimeMs:  searchTimeMs,
		facets:        facets,
	}, nil
}

// TotalPages returns ceil(total/size). size must be positive.
func TotalPages(total, size int) int {
	return (total + size - 1) / size
}

// Page slices combined results to the requested page. Out-of-range pages yield nil.
func Page(all []result.Result, page, size int) []result.Result {
	// Compare page numbers before multiplying so huge pages cannot overflow.
	if size <= 0 || page < 0 || page >= TotalPages(len(all), size) {
		return nil
	}
	start := page * size
	end := min(start+size, len(all))
	return all[start:end]
}

// Facets counts results by kind and by status metadata. Buckets are ordered by
// count descending, then value.
func Facets(results []result.Result) []Facet {
	byType := make(map[string]int)
	byStatus := make(map[string]int)
	for i := range results {
		byType[string(results[i].Kind())]++
		if s := results[i].Metadata()[FacetStatus]; s != "" {
			byStatus[s]++
		}
	}

	facets := []Facet{{Name: FacetType, Values: buckets(byType)}}
	if len(byStatus) > 0 {
		facets = append(facets, Facet{Name: FacetStatus, Values: buckets(byStatus)})
	}
	return facets
}

func buckets(counts map[string]int) []FacetValue {
	out := make([]FacetValue, 0, len(counts))
	for v, c := range counts {
		out = append(out, FacetValue{Value: v, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

func (r *Response) Results() []result.Result { return r.results }
func (r *Response) TotalElements() int        { return r.totalElements }
func (r *Response) TotalPages() int           { return r.totalPages }
func (r *Response) CurrentPage() int          { return r.currentPage }
func (r *Response) PageSize() int             { return r.pageSize }
func (r *Response) SearchTimeMs() int64       { return r.searchTimeMs }
func (r *Response) Facets() []Facet           { return r.facets }

// HasNext reports whether a page follows the current one.
func (r *Response) HasNext() bool { return r.currentPage < r.totalPages-1 }

// HasPrevious reports whether the current page is past the first.
func (r *Response) HasPrevious() bool { return r.currentPage > 0 }
