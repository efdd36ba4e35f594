package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/Koushikchikkond/vouchers/internal/auth"
	"github.com/Koushikchikkond/vouchers/internal/cache"
	"github.com/Koushikchikkond/vouchers/internal/config"
	"github.com/Koushikchikkond/vouchers/internal/events"
	"github.com/Koushikchikkond/vouchers/internal/form"
	"github.com/Koushikchikkond/vouchers/internal/gateway"
	"github.com/Koushikchikkond/vouchers/internal/ledger"
	"github.com/Koushikchikkond/vouchers/internal/log"
	"github.com/Koushikchikkond/vouchers/internal/nodes"
	"github.com/Koushikchikkond/vouchers/internal/session"
	"github.com/Koushikchikkond/vouchers/internal/storage"
)

// App holds the services one command invocation works with.
type App struct {
	Config    *config.Config
	Logger    *log.Logger
	Sessions  *session.Manager
	Nodes     *nodes.Registry
	Ledger    *ledger.Service
	Submitter *form.Submitter
	Reset     *auth.ResetFlow

	store  *storage.SQLiteRepository
	events events.Publisher
}

// NewApp opens local state and wires the services around gw.
func NewApp(ctx context.Context, cfg *config.Config, gw gateway.Gateway, logger *log.Logger) (*App, error) {
	store, err := InitStateStore(logger, cfg.StateDBPath)
	if err != nil {
		return nil, err
	}

	authn, err := auth.NewAuthenticator(cfg.Username, cfg.DisplayName, cfg.Password)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("configure credentials: %w", err)
	}

	pub, err := events.FromConfig(ctx, cfg)
	if err != nil {
		store.Close()
		return nil, err
	}

	registry := nodes.NewRegistry(gw, store,
		cache.NewLRUCache[[]string](cfg.NodeCacheSize, cfg.NodeCacheTTL), pub, logger)
	sessions := session.NewManager(authn, store, logger)
	sessions.OnLogout(registry.Teardown)

	return &App{
		Config:    cfg,
		Logger:    logger,
		Sessions:  sessions,
		Nodes:     registry,
		Ledger:    ledger.NewService(gw, registry, pub, cfg.CurrencySymbol, logger),
		Submitter: form.NewSubmitter(gw, registry, pub, logger),
		Reset:     auth.NewResetFlow(gw, logger),
		store:     store,
		events:    pub,
	}, nil
}

// Session returns the signed-in user.
func (a *App) Session(ctx context.Context) (session.Session, error) {
	return a.Sessions.Current(ctx)
}

func (a *App) Close() error {
	return errors.Join(a.events.Close(), a.store.Close())
}
