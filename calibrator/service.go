package calibrator

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"yashubustudio/calibrator/generate"
)

// ErrEmptyStatement reports a blank statement.
var ErrEmptyStatement = errors.New("statement is empty")

// Statement-similarity stage tuning.
const (
	similarityMinOverlapRatio = 0.6
	similarityMinTermTokens   = 2
	similarityMinOverlap      = 2
	similarityEscapeRatio     = 0.8
	similarityMinCoverage     = 0.5
)

// Backends are the text-generation providers, consulted hosted first. Nil
// entries are skipped.
type Backends struct {
	Hosted generate.Backend
	Local  generate.Backend
}

// Service runs the calibration pipeline over a fixed corpus and reference
// map.
type Service struct {
	cfgMu sync.RWMutex
	cfg   Config

	corpus *Corpus
	refmap *ReferenceMap

	gen       *generate.Chain
	refmapGen *generate.Chain
	gate      *AlignmentGate
	expander  *Expander
	suggester *Suggester
	notices   *Notices
	closers   []generate.Backend

	logger *zap.Logger
}

// NewService wires the pipeline components.
func NewService(cfg Config, corpus *Corpus, refmap *ReferenceMap, backends Backends, logger *zap.Logger) (*Service, error) {
	if corpus == nil {
		return nil, errors.New("corpus is required")
	}
	if refmap == nil {
		return nil, errors.New("reference map is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.ApplyDefaults()
	notices := NewNotices(logger)

	var all, alignment []generate.Backend
	if backends.Hosted != nil {
		all = append(all, backends.Hosted)
		alignment = append(alignment, backends.Hosted)
	}
	if backends.Local != nil {
		all = append(all, backends.Local)
		if cfg.Pipeline.AlignmentUsesLocal {
			alignment = append(alignment, backends.Local)
		}
	}
	chain := func(list []generate.Backend, purpose Purpose) *generate.Chain {
		onFailure, onSuccess := notices.Hooks(purpose)
		return &generate.Chain{
			Backends:  list,
			Timeout:   cfg.Timeout(),
			OnFailure: onFailure,
			OnSuccess: onSuccess,
		}
	}
	gen := chain(all, PurposeKeywords)

	return &Service{
		cfg:       cfg,
		corpus:    corpus,
		refmap:    refmap,
		gen:       gen,
		refmapGen: chain(all, PurposeReferenceMap),
		gate:      NewAlignmentGate(chain(alignment, PurposeAlignment), logger.Named("alignment")),
		expander:  NewExpander(gen, logger.Named("keywords")),
		suggester: NewSuggester(corpus, chain(all, PurposeSuggestions), cfg.Pipeline.SuggestionConfidence, logger.Named("suggestions")),
		notices:   notices,
		closers:   all,
		logger:    logger,
	}, nil
}

// Close releases backend resources such as a loaded local model.
func (s *Service) Close() error {
	var errs []error
	for _, b := range s.closers {
		if c, ok := b.(interface{ Close() error }); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}

// Config returns a copy of the current configuration.
func (s *Service) Config() Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg.Clone()
}

// SetEarlyReferenceMap switches the stage order used by later runs.
func (s *Service) SetEarlyReferenceMap(early bool) {
	s.cfgMu.Lock()
	s.cfg.Pipeline.EarlyReferenceMap = early
	s.cfgMu.Unlock()
}

// Corpus returns the corpus the service searches.
func (s *Service) Corpus() *Corpus { return s.corpus }

// ReferenceMap returns the fallback hierarchy.
func (s *Service) ReferenceMap() *ReferenceMap { return s.refmap }

// BackendName describes the generation chain, e.g. "hosted:gpt-4o>local".
func (s *Service) BackendName() string { return s.gen.Name() }

// run carries the state of one pipeline run.
type run struct {
	res    Result
	logger *zap.Logger
}

func (r *run) record(st Stage) bool {
	if st.Matches == nil {
		st.Matches = NewMatchSet()
	}
	r.res.Trace = append(r.res.Trace, st)
	r.res.Matches.Union(st.Matches)
	r.logger.Debug("stage finished", zap.String("stage", st.Name), zap.Int("matches", st.Matches.Len()))
	return st.Matches.Len() > 0
}

// Run executes the stages in order and stops at the first one producing a
// match. The run always ends with a reference-map selection if nothing else
// matched.
func (s *Service) Run(ctx context.Context, statement string) (Result, error) {
	statement = strings.TrimSpace(statement)
	if statement == "" {
		return Result{}, ErrEmptyStatement
	}
	cfg := s.Config()
	runID := uuid.NewString()
	r := &run{
		res:    Result{RunID: runID, Statement: statement, Matches: NewMatchSet()},
		logger: s.logger.With(zap.String("run_id", runID)),
	}
	r.logger.Debug("pipeline started", zap.String("backends", s.gen.Name()))
	defer func() {
		r.logger.Info("pipeline finished",
			zap.Int("stages", len(r.res.Trace)),
			zap.Int("matches", r.res.Matches.Len()))
	}()

	if r.record(Stage{Name: StageExact, Matches: s.corpus.SearchExact(statement)}) {
		return r.res, nil
	}
	if r.record(Stage{Name: StageNearExact, Matches: s.corpus.SearchNearExact(statement)}) {
		return r.res, nil
	}
	if r.record(Stage{Name: StageSimilarity, Matches: s.statementSimilarity(ctx, statement)}) {
		return r.res, nil
	}

	r.res.Suggestions = s.suggester.Suggest(ctx, statement)
	names := make([]string, len(r.res.Suggestions))
	for i, sg := range r.res.Suggestions {
		names[i] = sg.Name
	}
	if r.record(Stage{Name: StageSuggestions, Matches: s.corpus.SearchByNames(ctx, names, statement, s.gate)}) {
		return r.res, nil
	}

	if cfg.Pipeline.EarlyReferenceMap {
		hit := s.refmap.Match(ctx, s.refmapGen, statement, []string{statement})
		r.record(Stage{Name: StageReferenceMap, Matches: NewMatchSet(hit)})
		return r.res, nil
	}

	secondary := s.expander.Expand(ctx, statement)
	r.res.SecondaryKeywords = secondary
	matches, matchedTerms := s.corpus.SearchTerms(ctx, secondary, TermSearchOptions{Statement: statement, Gate: s.gate})
	if r.record(Stage{Name: StageSecondary, Matches: matches, Keywords: secondary}) {
		return r.res, nil
	}

	var unmatched []string
	for _, k := range secondary {
		if _, ok := matchedTerms[Normalize(k)]; !ok {
			unmatched = append(unmatched, k)
		}
	}
	tertiary := s.expander.ExpandUnmatched(ctx, unmatched)
	r.res.TertiaryKeywords = tertiary
	matches, _ = s.corpus.SearchTerms(ctx, tertiary, TermSearchOptions{Statement: statement, Gate: s.gate})
	if matches.Len() == 0 {
		extras := append(append([]string{statement}, secondary...), tertiary...)
		matches = NewMatchSet(s.refmap.Match(ctx, s.refmapGen, statement, extras))
	}
	r.record(Stage{Name: StageTertiaryAndMap, Matches: matches, Keywords: tertiary})
	return r.res, nil
}

// statementSimilarity searches with the statement as its own term and keeps
// only entries with strong overlap or a near-identical spelling.
func (s *Service) statementSimilarity(ctx context.Context, statement string) *MatchSet {
	found, _ := s.corpus.SearchTerms(ctx, []string{statement}, TermSearchOptions{
		Statement:       statement,
		Gate:            s.gate,
		MinOverlapRatio: similarityMinOverlapRatio,
		MinTermTokens:   similarityMinTermTokens,
	})
	out := NewMatchSet()
	st := Tokenize(statement)
	if len(st) < similarityMinTermTokens {
		return out
	}
	ns := Normalize(statement)
	for _, m := range found.Matches() {
		ne := Normalize(m.Entry.Text)
		overlap := st.Overlap(Tokenize(ne))
		ratio := CharRatio(ns, ne)
		coverage := float64(overlap) / float64(len(st))
		if overlap < similarityMinOverlap && ratio < similarityEscapeRatio {
			continue
		}
		if coverage < similarityMinCoverage && ratio < similarityEscapeRatio {
			continue
		}
		out.Add(m)
	}
	return out
}
