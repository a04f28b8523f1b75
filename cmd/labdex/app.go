package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/labdex/internal/config"
	"github.com/kailas-cloud/labdex/internal/db"
	dbRedis "github.com/kailas-cloud/labdex/internal/db/redis"
	dbSQLite "github.com/kailas-cloud/labdex/internal/db/sqlite"
	"github.com/kailas-cloud/labdex/internal/domain"
	"github.com/kailas-cloud/labdex/internal/metrics"
	analyticsrepo "github.com/kailas-cloud/labdex/internal/repository/analytics"
	budgetrepo "github.com/kailas-cloud/labdex/internal/repository/budget"
	documentrepo "github.com/kailas-cloud/labdex/internal/repository/document"
	memberrepo "github.com/kailas-cloud/labdex/internal/repository/member"
	projectrepo "github.com/kailas-cloud/labdex/internal/repository/project"
	genaiTransport "github.com/kailas-cloud/labdex/internal/transport/genai"
	openaiTransport "github.com/kailas-cloud/labdex/internal/transport/openai"
	analyticsuc "github.com/kailas-cloud/labdex/internal/usecase/analytics"
	answeruc "github.com/kailas-cloud/labdex/internal/usecase/answer"
	healthuc "github.com/kailas-cloud/labdex/internal/usecase/health"
	insightuc "github.com/kailas-cloud/labdex/internal/usecase/insight"
	retrievaluc "github.com/kailas-cloud/labdex/internal/usecase/retrieval"
	searchuc "github.com/kailas-cloud/labdex/internal/usecase/search"
	usageuc "github.com/kailas-cloud/labdex/internal/usecase/usage"
)

const (
	budgetDailyTTL   = 48 * time.Hour
	budgetMonthlyTTL = 62 * 24 * time.Hour
)

// app holds the wired services shared by every command.
type app struct {
	store db.Store

	projects  *projectrepo.Repo
	documents *documentrepo.Repo
	members   *memberrepo.Repo

	search    *searchuc.Service
	retrieval *retrievaluc.Service
	insight   *insightuc.Service
	analytics *analyticsuc.Service
	health    *healthuc.Service
	usage     *usageuc.Service
}

func (a *app) close() {
	a.store.Close()
}

func openStore(ctx context.Context, cfg config.DatabaseConfig) (db.Store, error) {
	var (
		store db.Store
		err   error
	)
	switch cfg.Driver {
	case "redis":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
	case "sqlite":
		store, err = dbSQLite.NewStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	return store, nil
}

// buildApp is the composition root.
func buildApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	store, err := openStore(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	logger.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

	metrics.RegisterAll()

	prefix := cfg.Storage.KeyPrefix
	projRepo := projectrepo.New(store, prefix)
	docRepo := documentrepo.New(store, prefix)
	memRepo := memberrepo.New(store, prefix)
	recRepo := analyticsrepo.New(store, prefix)

	completer, budget, err := buildCompleter(ctx, cfg.Answer, store, prefix, logger)
	if err != nil {
		store.Close()
		return nil, err
	}

	score := cfg.Search.VisibleScore
	searchSvc := searchuc.New(
		[]searchuc.EntitySearcher{
			searchuc.NewDocumentSearcher(docRepo, score),
			searchuc.NewMemberSearcher(memRepo, score),
			searchuc.NewProjectSearcher(projRepo, score),
		},
		docRepo, memRepo, logger,
	).WithSuggestionLimits(cfg.Search.SuggestionLimit, cfg.Search.SuggestionsPerSource)

	composer := retrievaluc.NewComposer(completer, retrievaluc.ComposerConfig{
		SystemPrompt: cfg.Answer.SystemPrompt,
		MaxTokens:    cfg.Answer.MaxTokens,
		Temperature:  cfg.Answer.Temperature,
		Timeout:      time.Duration(cfg.Answer.TimeoutMs) * time.Millisecond,
	}, logger)
	retrievalSvc := retrievaluc.New(
		retrievaluc.NewContextBuilder(docRepo, cfg.Retrieval.MinRelevance, cfg.Retrieval.TopK),
		composer, projRepo, docRepo, docRepo, memRepo, logger,
	)

	analyticsSvc := analyticsuc.New(
		projRepo, recRepo, analyticsuc.NewCalculator(cfg.Analytics.DefaultWindowDays), logger,
	).WithWorkers(cfg.Analytics.Workers)

	// Nil interfaces, not typed nil pointers, when nothing is configured.
	var answerChecker healthuc.AnswerChecker
	if hc, ok := completer.(domain.HealthChecker); ok {
		answerChecker = hc
	}
	var budgetReader usageuc.BudgetReader
	if budget != nil {
		budgetReader = budget
	}

	return &app{
		store:     store,
		projects:  projRepo,
		documents: docRepo,
		members:   memRepo,
		search:    searchSvc,
		retrieval: retrievalSvc,
		insight:   insightuc.New(docRepo, projRepo),
		analytics: analyticsSvc,
		health:    healthuc.New(store, answerChecker),
		usage:     usageuc.New(budgetReader, cfg.Answer.Provider),
	}, nil
}

// buildCompleter assembles provider -> instrumented (budget + metrics).
// Returns a nil completer for provider "none".
func buildCompleter(
	ctx context.Context,
	cfg config.AnswerConfig,
	store db.Store,
	prefix string,
	logger *zap.Logger,
) (domain.Completer, *answeruc.BudgetTracker, error) {
	var base domain.Completer
	switch cfg.Provider {
	case config.ProviderNone:
		logger.Info("No answer provider configured, answers use the fallback text")
		return nil, nil, nil
	case config.ProviderOpenAI:
		base = openaiTransport.NewCompleter(&openaiTransport.Config{
			APIKey:   cfg.APIKey,
			BaseURL:  cfg.BaseURL,
			Model:    cfg.Model,
			Provider: cfg.Provider,
			Logger:   logger,
		})
	case config.ProviderGemini:
		c, err := genaiTransport.NewCompleter(ctx, &genaiTransport.Config{
			APIKey:   cfg.APIKey,
			BaseURL:  cfg.BaseURL,
			Model:    cfg.Model,
			Provider: cfg.Provider,
			Logger:   logger,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create gemini completer: %w", err)
		}
		base = c
	default:
		return nil, nil, fmt.Errorf("unknown answer provider %q", cfg.Provider)
	}

	var budget *answeruc.BudgetTracker
	if cfg.Budget.DailyTokenLimit > 0 || cfg.Budget.MonthlyTokenLimit > 0 {
		action := answeruc.BudgetActionWarn
		if cfg.Budget.Action == string(answeruc.BudgetActionReject) {
			action = answeruc.BudgetActionReject
		}
		budget = answeruc.NewBudgetTracker(
			cfg.Provider, cfg.Budget.DailyTokenLimit, cfg.Budget.MonthlyTokenLimit, action, logger,
		).WithStore(ctx, budgetrepo.New(store, prefix, budgetDailyTTL, budgetMonthlyTTL))
	}

	var checker answeruc.BudgetChecker
	if budget != nil {
		checker = budget
	}

	logger.Info("Answer provider configured",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model),
		zap.Bool("budget", budget != nil),
	)
	return answeruc.NewInstrumentedCompleter(base, cfg.Provider, cfg.Model, checker, logger), budget, nil
}
