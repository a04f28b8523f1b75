// Package labdex is the embeddable research-project search, answer and
// analytics engine.
package labdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/labdex/internal/config"
	"github.com/kailas-cloud/labdex/internal/db"
	dbRedis "github.com/kailas-cloud/labdex/internal/db/redis"
	dbSQLite "github.com/kailas-cloud/labdex/internal/db/sqlite"
	"github.com/kailas-cloud/labdex/internal/domain"
	analyticsrepo "github.com/kailas-cloud/labdex/internal/repository/analytics"
	documentrepo "github.com/kailas-cloud/labdex/internal/repository/document"
	memberrepo "github.com/kailas-cloud/labdex/internal/repository/member"
	projectrepo "github.com/kailas-cloud/labdex/internal/repository/project"
	analyticsuc "github.com/kailas-cloud/labdex/internal/usecase/analytics"
	retrievaluc "github.com/kailas-cloud/labdex/internal/usecase/retrieval"
	searchuc "github.com/kailas-cloud/labdex/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "labdex:"
	defaultPageSize         = 20
	visibleScore            = 0.8
)

// Client is the labdex SDK entry point.
type Client struct {
	store     db.Store
	projects  *projectrepo.Repo
	documents *documentrepo.Repo
	members   *memberrepo.Repo
	search    *searchuc.Service
	retrieval *retrievaluc.Service
	analytics *analyticsuc.Service
}

// New creates a Client and connects to storage.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{keyPrefix: defaultKeyPrefix, logger: zap.NewNop()}
	for _, o := range opts {
		o(cfg)
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("labdex: database not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "":
		return nil, errors.New("labdex: storage required (use WithRedis or WithSQLite)")
	case "redis":
		if len(cfg.addrs) == 0 {
			return nil, errors.New("labdex: redis address required")
		}
		s, err := dbRedis.NewStore(dbRedis.Config{Addrs: cfg.addrs, Password: cfg.password})
		if err != nil {
			return nil, fmt.Errorf("labdex: create redis store: %w", err)
		}
		return s, nil
	case "sqlite":
		s, err := dbSQLite.NewStore(cfg.path)
		if err != nil {
			return nil, fmt.Errorf("labdex: create sqlite store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("labdex: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	projRepo := projectrepo.New(store, cfg.keyPrefix)
	docRepo := documentrepo.New(store, cfg.keyPrefix)
	memRepo := memberrepo.New(store, cfg.keyPrefix)
	recRepo := analyticsrepo.New(store, cfg.keyPrefix)

	searchSvc := searchuc.New(
		[]searchuc.EntitySearcher{
			searchuc.NewDocumentSearcher(docRepo, visibleScore),
			searchuc.NewMemberSearcher(memRepo, visibleScore),
			searchuc.NewProjectSearcher(projRepo, visibleScore),
		},
		docRepo, memRepo, cfg.logger,
	)

	// Nil interface, not a typed nil adapter, when no completer is set.
	var completer domain.Completer
	if cfg.completer != nil {
		completer = &completerAdapter{inner: cfg.completer}
	}
	composer := retrievaluc.NewComposer(completer, retrievaluc.ComposerConfig{
		SystemPrompt: config.DefaultSystemPrompt,
		MaxTokens:    1000,
		Temperature:  0.7,
	}, cfg.logger)
	retrievalSvc := retrievaluc.New(
		retrievaluc.NewContextBuilder(docRepo, 0.1, 5),
		composer, projRepo, docRepo, docRepo, memRepo, cfg.logger,
	)

	analyticsSvc := analyticsuc.New(projRepo, recRepo, analyticsuc.NewCalculator(cfg.windowDays), cfg.logger)
	if cfg.workers > 0 {
		analyticsSvc = analyticsSvc.WithWorkers(cfg.workers)
	}
	if cfg.now != nil {
		analyticsSvc = analyticsSvc.WithClock(cfg.now)
	}

	return &Client{
		store:     store,
		projects:  projRepo,
		documents: docRepo,
		members:   memRepo,
		search:    searchSvc,
		retrieval: retrievalSvc,
		analytics: analyticsSvc,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks storage connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// completerAdapter wraps the public Completer to satisfy domain.Completer.
type completerAdapter struct {
	inner Completer
}

func (a *completerAdapter) Complete(ctx context.Context, p domain.Prompt) (domain.Completion, error) {
	r, err := a.inner.Complete(ctx, Prompt{
		System:      p.System,
		User:        p.User,
		MaxTokens:   p.MaxTokens,
		Temperature: p.Temperature,
	})
	if err != nil {
		return domain.Completion{}, fmt.Errorf("%w: %w", domain.ErrAnswerProviderError, err)
	}
	return domain.Completion{
		Text:             r.Text,
		PromptTokens:     r.PromptTokens,
		CompletionTokens: r.CompletionTokens,
	}, nil
}
