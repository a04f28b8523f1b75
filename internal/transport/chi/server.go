package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/labdex/internal/domain/search/filter"
	"github.com/kailas-cloud/labdex/internal/domain/search/kind"
	"github.com/kailas-cloud/labdex/internal/domain/search/request"
	domusage "github.com/kailas-cloud/labdex/internal/domain/usage"
	healthuc "github.com/kailas-cloud/labdex/internal/usecase/health"
)

const maxBodyBytes = 1 << 20

// DefaultPageSize is the page size used when a search omits it.
const DefaultPageSize = 20

// Server serves the labdex HTTP API.
type Server struct {
	search          SearchService
	retrieval       RetrievalService
	insight         InsightService
	analytics       AnalyticsService
	health          HealthService
	usage           UsageService
	logger          *zap.Logger
	defaultPageSize int
	errorHandlers   []errorHandler
}

// NewServer creates a Server.
func NewServer(
	search SearchService,
	retrieval RetrievalService,
	insight InsightService,
	analytics AnalyticsService,
	health HealthService,
	usage UsageService,
	logger *zap.Logger,
) *Server {
	return &Server{
		search:          search,
		retrieval:       retrieval,
		insight:         insight,
		analytics:       analytics,
		health:          health,
		usage:           usage,
		logger:          logger,
		defaultPageSize: DefaultPageSize,
		errorHandlers:   defaultErrorHandlers(),
	}
}

// WithDefaultPageSize overrides the page size used when a search omits it.
func (s *Server) WithDefaultPageSize(n int) *Server {
	if n > 0 {
		s.defaultPageSize = n
	}
	return s
}

// Register mounts every endpoint on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/search", func(r chi.Router) {
		r.Get("/", s.SearchQuery)
		r.Get("/suggestions", s.Suggestions)
		r.Post("/universal", s.SearchBody(nil))
		r.Post("/documents", s.SearchBody([]kind.Kind{kind.Document}))
		r.Post("/team-members", s.SearchBody([]kind.Kind{kind.TeamMember}))
		r.Post("/projects", s.SearchBody([]kind.Kind{kind.Project}))
	})

	r.Route("/api/rag", func(r chi.Router) {
		r.Post("/search", s.Ask)
		r.Get("/insights/{projectId}", s.Insights)
		r.Post("/documents/{documentId}/process", s.ProcessDocument)
		r.Get("/documents/{documentId}/analysis", s.AnalyzeDocument)
		r.Get("/projects/{projectId}/similar", s.SimilarProjects)
	})

	r.Route("/api/analytics", func(r chi.Router) {
		r.Get("/", s.ListAnalytics)
		r.Get("/project/{projectId}", s.ProjectAnalytics)
		r.Post("/calculate/{projectId}", s.CalculateAnalytics)
		r.Post("/calculate-all", s.RecalculateAll)
	})

	r.Get("/api/usage", s.Usage)
}

// --- Search ---

type searchParams struct {
	query      string
	page       int
	size       int
	typ        string
	department string
	status     string
}

// SearchQuery handles GET /api/search.
func (s *Server) SearchQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := searchParams{page: 0, size: s.defaultPageSize}
	binds := []struct {
		name string
		dest any
	}{
		{"query", &p.query},
		{"page", &p.page},
		{"size", &p.size},
		{"type", &p.typ},
		{"department", &p.department},
		{"status", &p.status},
	}
	for _, b := range binds {
		if err := runtime.BindQueryParameter("form", true, false, b.name, q, b.dest); err != nil {
			writeError(w, http.StatusBadRequest, CodeBadRequest, fmt.Sprintf("invalid parameter %s", b.name))
			return
		}
	}

	scope, err := kind.Parse(p.typ)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}
	s.runSearch(w, r, p, scope, true)
}

// SearchBody returns the handler for a POST search endpoint. A nil scope
// takes the scope from the body type field.
func (s *Server) SearchBody(scope []kind.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body SearchRequest
		if !s.decodeBody(w, r, &body) {
			return
		}
		p := searchParams{
			query:      body.Query,
			page:       0,
			size:       s.defaultPageSize,
			department: body.Department,
			status:     body.Status,
		}
		if body.Page != nil {
			p.page = *body.Page
		}
		if body.Size != nil {
			p.size = *body.Size
		}

		universal := scope == nil
		if universal {
			parsed, err := kind.Parse(body.Type)
			if err != nil {
				writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
				return
			}
			scope = parsed
		}
		s.runSearch(w, r, p, scope, universal)
	}
}

func (s *Server) runSearch(w http.ResponseWriter, r *http.Request, p searchParams, scope []kind.Kind, universal bool) {
	filters, err := filter.FromParams(p.department, p.status)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}
	req, err := request.New(p.query, p.page, p.size, scope, filters)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	ctx := r.Context()
	if !universal && len(scope) == 1 {
		resp, err := s.search.ByKind(ctx, scope[0], req)
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toSearchResponse(resp))
		return
	}

	resp, err := s.search.Universal(ctx, req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSearchResponse(resp))
}

// Suggestions handles GET /api/search/suggestions.
func (s *Server) Suggestions(w http.ResponseWriter, r *http.Request) {
	out, err := s.search.Suggestions(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if out == nil {
		out = []string{}
	}
	writeJSON(w, http.StatusOK, out)
}

// --- Retrieval ---

// Ask handles POST /api/rag/search.
func (s *Server) Ask(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := strings.TrimSpace(q.Get("query"))
	projectID := strings.TrimSpace(q.Get("projectId"))
	if query == "" || projectID == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "query and projectId are required")
		return
	}

	res, err := s.retrieval.Ask(r.Context(), query, projectID)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAskResponse(res))
}

// Insights handles GET /api/rag/insights/{projectId}.
func (s *Server) Insights(w http.ResponseWriter, r *http.Request) {
	in, err := s.retrieval.Insights(r.Context(), chi.URLParam(r, "projectId"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toInsightsResponse(in))
}

// ProcessDocument handles POST /api/rag/documents/{documentId}/process.
func (s *Server) ProcessDocument(w http.ResponseWriter, r *http.Request) {
	ok, err := s.retrieval.ProcessDocument(r.Context(), chi.URLParam(r, "documentId"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ProcessResponse{Processed: ok})
}

// AnalyzeDocument handles GET /api/rag/documents/{documentId}/analysis.
func (s *Server) AnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	a, err := s.insight.AnalyzeDocument(r.Context(), chi.URLParam(r, "documentId"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAnalysisResponse(a))
}

// SimilarProjects handles GET /api/rag/projects/{projectId}/similar.
func (s *Server) SimilarProjects(w http.ResponseWriter, r *http.Request) {
	similar, err := s.insight.SimilarProjects(r.Context(), chi.URLParam(r, "projectId"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSimilarResponse(similar))
}

// --- Analytics ---

// ListAnalytics handles GET /api/analytics.
func (s *Server) ListAnalytics(w http.ResponseWriter, r *http.Request) {
	records, err := s.analytics.All(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAnalyticsList(records))
}

// ProjectAnalytics handles GET /api/analytics/project/{projectId}.
func (s *Server) ProjectAnalytics(w http.ResponseWriter, r *http.Request) {
	records, err := s.analytics.History(r.Context(), chi.URLParam(r, "projectId"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAnalyticsList(records))
}

// CalculateAnalytics handles POST /api/analytics/calculate/{projectId}.
// An unknown project yields 204 with no body.
func (s *Server) CalculateAnalytics(w http.ResponseWriter, r *http.Request) {
	rec, ok, err := s.analytics.Calculate(r.Context(), chi.URLParam(r, "projectId"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, toAnalyticsResponse(rec))
}

// RecalculateAll handles POST /api/analytics/calculate-all.
func (s *Server) RecalculateAll(w http.ResponseWriter, r *http.Request) {
	summary, err := s.analytics.RecalculateAll(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.logger.Info("analytics recalculated",
		zap.Int("calculated", summary.Calculated),
		zap.Int("failed", summary.Failed),
		zap.Int("skipped", summary.Skipped),
	)
	w.WriteHeader(http.StatusNoContent)
}

// --- Usage ---

// Usage handles GET /api/usage?period=day|month.
func (s *Server) Usage(w http.ResponseWriter, r *http.Request) {
	period, err := domusage.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUsageResponse(s.usage.GetReport(r.Context(), period)))
}

// --- Health ---

// Health handles GET /health. Only an unreachable store reports unhealthy.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for name, res := range report.Checks {
		checks[name] = string(res)
	}
	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{Status: string(report.Status), Checks: checks})
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, CodeBadRequest, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid request body")
		return false
	}
	return true
}

