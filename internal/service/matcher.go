package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"docmatch/internal/corpus"
	"docmatch/internal/domain"
	"docmatch/internal/engine"
	"docmatch/internal/metrics"
	"docmatch/internal/text"
)

// BuildReport describes a successful training build. Skipped documents mean
// degraded coverage, not failure.
type BuildReport struct {
	TrainDir   string
	Loaded     int
	Skipped    []corpus.Skipped
	Vocabulary int
	Elapsed    time.Duration
}

// Matcher builds an engine from a training directory and matches query
// documents against it.
type Matcher struct {
	loader    *corpus.Loader
	tokenizer *text.Tokenizer
	metrics   *metrics.Metrics
	store     domain.MatchStore
	workers   int
	logger    *slog.Logger

	engine   *engine.Engine
	training *domain.Corpus
	trainDir string
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithMetrics records build and query metrics.
func WithMetrics(m *metrics.Metrics) Option { return func(s *Matcher) { s.metrics = m } }

// WithStore persists every MatchDir run.
func WithStore(st domain.MatchStore) Option { return func(s *Matcher) { s.store = st } }

// WithLogger overrides the default component logger.
func WithLogger(l *slog.Logger) Option { return func(s *Matcher) { s.logger = l } }

// WithWorkers bounds the number of queries ranked in parallel by MatchDir.
func WithWorkers(n int) Option { return func(s *Matcher) { s.workers = n } }

// NewMatcher wires a loader and tokenizer into a matcher. Train must be
// called before any query.
func NewMatcher(loader *corpus.Loader, tok *text.Tokenizer, opts ...Option) *Matcher {
	s := &Matcher{
		loader:    loader,
		tokenizer: tok,
		workers:   4,
		logger:    slog.Default().With("component", "matcher"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers < 1 {
		s.workers = 1
	}
	return s
}

// Train loads dir and builds the engine. On failure the matcher keeps no engine.
func (s *Matcher) Train(ctx context.Context, dir string) (*BuildReport, error) {
	start := time.Now()
	res, err := s.loader.Load(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("load training documents: %w", err)
	}
	s.countLoad("train", res)
	if res.Corpus.Len() == 0 {
		return nil, fmt.Errorf("no valid data found in training directory %s: %w", dir, engine.ErrEmptyCorpus)
	}
	eng, err := engine.New(res.Corpus, engine.WithTokenizer(s.tokenizer), engine.WithLogger(s.logger))
	if err != nil {
		var ev *engine.EmptyVocabularyError
		if errors.As(err, &ev) {
			s.logger.Error("vectorization failed", "documents", ev.Documents, "sample", ev.Sample)
		}
		return nil, fmt.Errorf("build engine: %w", err)
	}
	s.engine = eng
	s.training = res.Corpus
	s.trainDir = dir

	report := &BuildReport{
		TrainDir:   dir,
		Loaded:     res.Corpus.Len(),
		Skipped:    res.Skipped,
		Vocabulary: eng.VocabularySize(),
		Elapsed:    time.Since(start),
	}
	if s.metrics != nil {
		s.metrics.VocabularySize.Set(float64(report.Vocabulary))
		s.metrics.IndexedDocuments.Set(float64(report.Loaded))
		s.metrics.BuildDuration.Observe(report.Elapsed.Seconds())
	}
	s.logger.Info("training corpus indexed",
		"dir", dir, "documents", report.Loaded, "skipped", len(report.Skipped),
		"vocabulary", report.Vocabulary, "elapsed", report.Elapsed)
	return report, nil
}

// Query ranks the training documents against raw query text.
func (s *Matcher) Query(query string, topN int) ([]domain.Match, error) {
	if s.engine == nil {
		return nil, errors.New("matcher not trained")
	}
	start := time.Now()
	matches, err := s.engine.Query(query, topN)
	if s.metrics != nil {
		s.metrics.QueryLatency.Observe(time.Since(start).Seconds())
		s.metrics.QueriesTotal.WithLabelValues(outcome(matches, err)).Inc()
	}
	return matches, err
}

// MatchDir loads every document of dir and ranks each one. Cases follow the
// file-name order of dir regardless of how the parallel queries finish.
// Query documents that fail to load are skipped with a warning.
func (s *Matcher) MatchDir(ctx context.Context, dir string, topN int) (*domain.Run, error) {
	if s.engine == nil {
		return nil, errors.New("matcher not trained")
	}
	if topN < 1 {
		return nil, fmt.Errorf("%w: got %d", engine.ErrInvalidTopN, topN)
	}
	res, err := s.loader.Load(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("load query documents: %w", err)
	}
	s.countLoad("query", res)

	docs := res.Corpus.Documents()
	run := &domain.Run{TrainDir: s.trainDir, TestDir: dir, TopN: topN, Cases: make([]domain.Case, len(docs))}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, d := range docs {
		i, d := i, d
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			matches, err := s.Query(d.Content, topN)
			if err != nil {
				return fmt.Errorf("query %s: %w", d.ID, err)
			}
			run.Cases[i] = domain.Case{QueryID: d.ID, Matches: matches}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if s.store != nil {
		if err := s.store.SaveRun(*run); err != nil {
			return nil, fmt.Errorf("save run: %w", err)
		}
	}
	return run, nil
}

// Document returns a training document by id.
func (s *Matcher) Document(id string) (domain.Document, bool) {
	if s.training == nil {
		return domain.Document{}, false
	}
	return s.training.Get(id)
}

func (s *Matcher) countLoad(role string, res *corpus.Result) {
	if s.metrics == nil {
		return
	}
	s.metrics.DocumentsLoaded.WithLabelValues(role).Add(float64(res.Corpus.Len()))
	s.metrics.DocumentsSkipped.WithLabelValues(role).Add(float64(len(res.Skipped)))
}

func outcome(matches []domain.Match, err error) string {
	if err != nil {
		return "error"
	}
	for _, m := range matches {
		if m.Score > 0 {
			return "ok"
		}
	}
	return "no_terms"
}
