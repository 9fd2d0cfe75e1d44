package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/AntonStoeckl/library-lending-go/library/catalog"
	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/features/activeloans"
	"github.com/AntonStoeckl/library-lending-go/library/features/bookcatalog"
	"github.com/AntonStoeckl/library-lending-go/library/features/loanhistory"
	"github.com/AntonStoeckl/library-lending-go/library/features/renewloan"
	"github.com/AntonStoeckl/library-lending-go/library/ledger"
	"github.com/AntonStoeckl/library-lending-go/library/session"
	"github.com/AntonStoeckl/library-lending-go/library/shell"
	"github.com/AntonStoeckl/library-lending-go/library/shell/config"
	"github.com/AntonStoeckl/library-lending-go/library/shell/storage"
	"github.com/AntonStoeckl/library-lending-go/loanstore/textfile"
)

// app bundles the use cases the console offers.
type app struct {
	sessions    session.Service
	activeLoans activeloans.QueryHandler
	loanHistory loanhistory.QueryHandler
	bookCatalog bookcatalog.QueryHandler
	renewals    renewloan.CommandHandler
	policy      core.Policy
	now         func() time.Time
}

// buildApp loads the text records, opens the configured loan store and wires the use cases.
func buildApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (app, storage.Closer, error) {
	policy := cfg.Policy.Policy()
	if err := policy.Validate(); err != nil {
		return app{}, nil, err
	}

	records, err := textfile.NewLoader(cfg.Data.Dir, textfile.WithLogger(logger)).Load()
	if err != nil {
		return app{}, nil, err
	}

	var store storage.LoanStore
	var closeStore storage.Closer

	if cfg.UsesPostgres() {
		store, closeStore, err = storage.OpenPostgres(ctx, cfg.Database, logger)
	} else {
		store, closeStore, err = storage.OpenMemory(ctx, records.Loans, logger)
	}

	if err != nil {
		return app{}, nil, err
	}

	authenticator, err := authenticatorFor(cfg.Auth.Strategy)
	if err != nil {
		closeStore()
		return app{}, nil, err
	}

	cat := catalog.Build(records.Users, records.Books, records.Statuses)

	return newApp(cat, store, policy, authenticator, logger, time.Now), closeStore, nil
}

func newApp(
	cat *catalog.Catalog,
	store storage.LoanStore,
	policy core.Policy,
	authenticator session.Authenticator,
	logger *slog.Logger,
	now func() time.Time,
) app {

	loans := ledger.New(store)

	return app{
		sessions:    session.NewService(cat, authenticator),
		activeLoans: activeloans.NewQueryHandler(loans, cat, policy, activeloans.WithContextualLogger(logger)),
		loanHistory: loanhistory.NewQueryHandler(loans, cat, loanhistory.WithContextualLogger(logger)),
		bookCatalog: bookcatalog.NewQueryHandler(loans, cat, bookcatalog.WithContextualLogger(logger)),
		renewals: renewloan.NewCommandHandler(
			loans,
			policy,
			renewloan.WithJournal(store),
			renewloan.WithContextualLogger(logger),
			renewloan.WithRetryOptions(shell.WithRetryLogger(logger, renewloan.Command{}.CommandType())),
		),
		policy: policy,
		now:    now,
	}
}

var errUnknownAuthStrategy = errors.New("unknown auth strategy")

func authenticatorFor(strategy string) (session.Authenticator, error) {
	switch strategy {
	case config.AuthStrategyPlaintext:
		return session.PlaintextAuthenticator{}, nil
	case config.AuthStrategyBcrypt:
		return session.BcryptAuthenticator{}, nil
	default:
		return nil, errUnknownAuthStrategy
	}
}
