package calibrator

import (
	"fmt"

	"go.uber.org/zap"

	"yashubustudio/calibrator/generate"
)

// LoadData builds the corpus and reference map named by cfg, falling back to
// the built-in tables when no path is configured.
func LoadData(cfg Config, logger *zap.Logger) (*Corpus, *ReferenceMap, error) {
	entries := DefaultEntries()
	if cfg.Corpus.Path != "" {
		opts, err := cfg.Corpus.Columns.ParseOptions()
		if err != nil {
			return nil, nil, fmt.Errorf("corpus columns: %w", err)
		}
		loaded, err := LoadCorpusFileWithOptions(cfg.Corpus.Path, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("load corpus: %w", err)
		}
		entries = loaded
	}
	corpus, err := NewCorpus(entries, CorpusOptions{StrictIDs: cfg.Corpus.StrictIDs, Logger: logger})
	if err != nil {
		return nil, nil, fmt.Errorf("build corpus: %w", err)
	}

	levels := DefaultLevels()
	if cfg.ReferenceMap.Path != "" {
		loaded, err := LoadReferenceMapFile(cfg.ReferenceMap.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("load reference map: %w", err)
		}
		levels = loaded
	}
	refmap, err := NewReferenceMap(levels)
	if err != nil {
		return nil, nil, fmt.Errorf("build reference map: %w", err)
	}
	return corpus, refmap, nil
}

// Open loads data and backends from cfg and returns a ready service. Callers
// must Close it.
func Open(cfg Config, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.ApplyDefaults()
	corpus, refmap, err := LoadData(cfg, logger)
	if err != nil {
		return nil, err
	}
	backends := Backends{
		Hosted: generate.NewHosted(cfg.HostedBackend()),
		Local:  generate.NewLocal(cfg.LocalBackend()),
	}
	logger.Debug("service configured",
		zap.Int("corpus", corpus.Len()),
		zap.Int("levels", refmap.Len()),
		zap.String("hosted", backends.Hosted.Name()),
		zap.String("local", backends.Local.Name()))
	return NewService(cfg, corpus, refmap, backends, logger)
}
