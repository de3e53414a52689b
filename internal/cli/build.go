package cli

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"docmatch/internal/config"
	"docmatch/internal/corpus"
	"docmatch/internal/domain"
	"docmatch/internal/extract"
	"docmatch/internal/logger"
	"docmatch/internal/metrics"
	"docmatch/internal/service"
	"docmatch/internal/store/sqlite"
	"docmatch/internal/text"
)

// app bundles the matcher with the resources that must be released after a run.
type app struct {
	matcher   *service.Matcher
	tokenizer *text.Tokenizer
	store     domain.MatchStore
	shutdown  func(context.Context) error
}

func newApp(cfg *config.AppConfig) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	registry, err := extract.NewRegistry().Restrict(cfg.Training.Extensions)
	if err != nil {
		return nil, err
	}
	tok := text.NewTokenizer(
		text.WithStemming(cfg.Tokenizer.Stem),
		text.WithExtraStopwords(cfg.Tokenizer.ExtraStopwords...),
	)
	loader := corpus.NewLoader(registry, cfg.Training.Workers, logger.WithComponent("loader"))

	a := &app{tokenizer: tok}
	opts := []service.Option{
		service.WithWorkers(cfg.Training.Workers),
		service.WithLogger(logger.WithComponent("matcher")),
	}
	if cfg.Metrics.Enabled {
		m := metrics.New()
		a.shutdown = m.StartServer(cfg.Metrics.Port)
		opts = append(opts, service.WithMetrics(m))
	}
	if cfg.Store.Type == "sqlite" {
		st, err := sqlite.Open(cfg.Store.SQLite.Path)
		if err != nil {
			a.close()
			return nil, err
		}
		a.store = st
		opts = append(opts, service.WithStore(st))
	}
	a.matcher = service.NewMatcher(loader, tok, opts...)
	return a, nil
}

func (a *app) close() {
	var errs []error
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	if a.shutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		errs = append(errs, a.shutdown(ctx))
	}
	if err := errors.Join(errs...); err != nil {
		slog.Warn("shutdown", "error", err)
	}
}
