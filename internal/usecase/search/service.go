package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/labdex/internal/domain/lexical"
	"github.com/kailas-cloud/labdex/internal/domain/search/kind"
	"github.com/kailas-cloud/labdex/internal/domain/search/request"
	"github.com/kailas-cloud/labdex/internal/domain/search/response"
	"github.com/kailas-cloud/labdex/internal/domain/search/result"
	"github.com/kailas-cloud/labdex/internal/metrics"
)

// Suggestion defaults.
const (
	DefaultSuggestionLimit      = 5
	DefaultSuggestionsPerSource = 3
)

// Service aggregates entity searchers into paged universal search results.
type Service struct {
	searchers []EntitySearcher
	docs      DocumentReader
	members   MemberReader
	logger    *zap.Logger

	suggestionLimit int
	perSource       int
}

// New creates a search service. Searchers run in the given order; universal
// results are concatenated in that order before the stable score sort.
func New(searchers []EntitySearcher, docs DocumentReader, members MemberReader, logger *zap.Logger) *Service {
	return &Service{
		searchers:       searchers,
		docs:            docs,
		members:         members,
		logger:          logger,
		suggestionLimit: DefaultSuggestionLimit,
		perSource:       DefaultSuggestionsPerSource,
	}
}

// WithSuggestionLimits overrides the suggestion caps. Non-positive values keep defaults.
func (s *Service) WithSuggestionLimits(limit, perSource int) *Service {
	if limit > 0 {
		s.suggestionLimit = limit
	}
	if perSource > 0 {
		s.perSource = perSource
	}
	return s
}

// Universal searches every kind in the request scope. Each searcher returns at
// most size matches, so totalElements counts matches after that per-source
// truncation, not the full match set.
func (s *Service) Universal(ctx context.Context, req request.Request) (response.Response, error) {
	start := time.Now()
	scope := scopeLabel(req.Scope())

	active := make([]EntitySearcher, 0, len(s.searchers))
	for _, es := range s.searchers {
		if req.Includes(es.Kind()) {
			active = append(active, es)
		}
	}

	perSource := make([][]result.Result, len(active))
	g, gctx := errgroup.WithContext(ctx)
	for i, es := range active {
		g.Go(func() error {
			res, err := es.Filter(gctx, req.Query(), req.Filters(), req.Size())
			if err != nil {
				return fmt.Errorf("search %s: %w", es.Kind(), err)
			}
			perSource[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(scope, "error").Inc()
		return response.Response{}, err
	}

	var combined []result.Result
	for _, res := range perSource {
		combined = append(combined, res...)
	}
	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].Score() > combined[j].Score()
	})

	elapsed := time.Since(start)
	resp, err := response.New(
		response.Page(combined, req.Page(), req.Size()),
		len(combined), req.Page(), req.Size(),
		elapsed.Milliseconds(), response.Facets(combined),
	)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(scope, "error").Inc()
		return response.Response{}, err
	}

	metrics.SearchRequestsTotal.WithLabelValues(scope, "ok").Inc()
	metrics.SearchDuration.WithLabelValues(scope).Observe(elapsed.Seconds())
	metrics.SearchResults.WithLabelValues(scope).Observe(float64(len(combined)))
	s.logger.Debug("Search completed",
		zap.String("scope", scope),
		zap.Int("matches", len(combined)),
		zap.Duration("duration", elapsed),
	)

	return resp, nil
}

// ByKind searches a single kind of record.
func (s *Service) ByKind(ctx context.Context, k kind.Kind, req request.Request) (response.Response, error) {
	return s.Universal(ctx, req.WithScope(k))
}

// Suggestions returns up to the suggestion limit of distinct document file
// names and member names containing the query, in discovery order.
func (s *Service) Suggestions(ctx context.Context, query string) ([]string, error) {
	out := []string{}
	if strings.TrimSpace(query) == "" {
		return out, nil
	}

	docs, err := s.docs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	members, err := s.members.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	var names []string
	for i := range docs {
		if len(names) == s.perSource {
			break
		}
		if lexical.Contains(query, docs[i].FileName()) {
			names = append(names, docs[i].FileName())
		}
	}
	fromDocs := len(names)
	for i := range members {
		if len(names)-fromDocs == s.perSource {
			break
		}
		if lexical.Contains(query, members[i].Name()) {
			names = append(names, members[i].Name())
		}
	}

	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if len(out) == s.suggestionLimit {
			break
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out, nil
}

func scopeLabel(scope []kind.Kind) string {
	if len(scope) == len(kind.All) {
		return "all"
	}
	parts := make([]string, len(scope))
	for i, k := range scope {
		parts[i] = string(k)
	}
	return strings.Join(parts, ",")
}
