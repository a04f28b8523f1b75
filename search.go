package labdex

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/labdex/internal/domain/search/filter"
	"github.com/kailas-cloud/labdex/internal/domain/search/kind"
	"github.com/kailas-cloud/labdex/internal/domain/search/request"
	"github.com/kailas-cloud/labdex/internal/domain/search/response"
)

// Search matches the query against documents, team members and projects.
// An empty query matches nothing.
func (c *Client) Search(ctx context.Context, query string, opts *SearchOptions) (SearchPage, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}
	size := opts.Size
	if size == 0 {
		size = defaultPageSize
	}

	scope, err := kind.Parse(opts.Type)
	if err != nil {
		return SearchPage{}, fmt.Errorf("search: %w", err)
	}
	filters, err := filter.FromParams(opts.Department, opts.Status)
	if err != nil {
		return SearchPage{}, fmt.Errorf("search: %w", err)
	}
	req, err := request.New(query, opts.Page, size, scope, filters)
	if err != nil {
		return SearchPage{}, fmt.Errorf("search: %w", err)
	}

	resp, err := c.search.Universal(ctx, req)
	if err != nil {
		return SearchPage{}, fmt.Errorf("search: %w", err)
	}
	return fromResponse(&resp), nil
}

// Suggest returns up to five document and member names containing the
// partial query.
func (c *Client) Suggest(ctx context.Context, query string) ([]string, error) {
	out, err := c.search.Suggestions(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	return out, nil
}

func fromResponse(r *response.Response) SearchPage {
	results := r.Results()
	page := SearchPage{
		Results:       make([]SearchResult, len(results)),
		TotalElements: r.TotalElements(),
		TotalPages:    r.TotalPages(),
		CurrentPage:   r.CurrentPage(),
		PageSize:      r.PageSize(),
		HasNext:       r.HasNext(),
		HasPrevious:   r.HasPrevious(),
	}
	for i := range results {
		res := &results[i]
		page.Results[i] = SearchResult{
			ID:          res.ID(),
			Type:        string(res.Kind()),
			Title:       res.Title(),
			Description: res.Description(),
			Score:       res.Score(),
			URL:         res.URL(),
			Highlight:   res.Highlight(),
			Metadata:    res.Metadata(),
		}
	}
	return page
}
