package generate

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// LocalConfig configures the on-device causal language model.
type LocalConfig struct {
	Enabled           bool
	ORTLibrary        string
	ModelPath         string
	TokenizerPath     string
	ContextSize       int
	EOSTokenID        int
	NoRepeatNgram     int
	InputIDsName      string
	AttentionMaskName string
	LogitsName        string
}

func (c *LocalConfig) applyDefaults() {
	if c.ContextSize <= 0 {
		c.ContextSize = 1024
	}
	if c.EOSTokenID == 0 {
		c.EOSTokenID = 50256
	}
	if c.NoRepeatNgram == 0 {
		c.NoRepeatNgram = 2
	}
	if c.InputIDsName == "" {
		c.InputIDsName = "input_ids"
	}
	if c.LogitsName == "" {
		c.LogitsName = "logits"
	}
}

// logitsModel returns next-token logits for a token sequence.
type logitsModel interface {
	NextLogits(ids []int64) ([]float32, error)
	Close() error
}

type textTokenizer interface {
	Encode(text string) ([]int, error)
	Decode(ids []int) string
}

// Local runs greedy decoding over a causal LM exported to ONNX. The model is
// loaded on first use; a failed load disables the backend for the process.
type Local struct {
	cfg  LocalConfig
	open func(LocalConfig) (logitsModel, textTokenizer, error)

	once    sync.Once
	initErr error
	mu      sync.Mutex
	model   logitsModel
	tok     textTokenizer
}

// NewLocal returns the local backend, or a disabled backend when the
// configuration does not enable one.
func NewLocal(cfg LocalConfig) Backend {
	if !cfg.Enabled {
		return disabled{name: "local", reason: "local model disabled in configuration"}
	}
	if strings.TrimSpace(cfg.ModelPath) == "" || strings.TrimSpace(cfg.TokenizerPath) == "" {
		return disabled{name: "local", reason: "local model requires modelPath and tokenizerPath"}
	}
	cfg.applyDefaults()
	return &Local{cfg: cfg, open: openORT}
}

// Name implements Backend.
func (l *Local) Name() string { return "local" }

// Close releases the model session if it was loaded.
func (l *Local) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.model == nil {
		return nil
	}
	err := l.model.Close()
	l.model = nil
	return err
}

func (l *Local) load() error {
	l.once.Do(func() {
		model, tok, err := l.open(l.cfg)
		if err != nil {
			l.initErr = fmt.Errorf("%w: load local model: %v", ErrUnavailable, err)
			return
		}
		l.model = model
		l.tok = tok
	})
	return l.initErr
}

// Complete implements Backend.
func (l *Local) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if err := l.load(); err != nil {
		return "", err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.model == nil {
		return "", fmt.Errorf("%w: local model closed", ErrUnavailable)
	}
	if maxTokens <= 0 {
		maxTokens = 64
	}

	ids, err := l.tok.Encode(prompt)
	if err != nil {
		return "", fmt.Errorf("encode prompt: %w", err)
	}
	budget := l.cfg.ContextSize - maxTokens
	if budget < 1 {
		budget = 1
	}
	if len(ids) > budget {
		ids = ids[:budget]
	}
	seq := make([]int64, len(ids), len(ids)+maxTokens)
	for i, id := range ids {
		seq[i] = int64(id)
	}

	generated := make([]int, 0, maxTokens)
	for step := 0; step < maxTokens; step++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		logits, err := l.model.NextLogits(seq)
		if err != nil {
			return "", fmt.Errorf("run local model: %w", err)
		}
		next := greedyToken(logits, bannedNgramTokens(seq, l.cfg.NoRepeatNgram))
		if next < 0 || next == l.cfg.EOSTokenID {
			break
		}
		seq = append(seq, int64(next))
		generated = append(generated, next)
	}
	return strings.TrimSpace(l.tok.Decode(generated)), nil
}

func greedyToken(logits []float32, banned map[int64]struct{}) int {
	best := -1
	var bestScore float32
	for i, score := range logits {
		if _, skip := banned[int64(i)]; skip {
			continue
		}
		if best < 0 || score > bestScore {
			best = i
			bestScore = score
		}
	}
	return best
}

// bannedNgramTokens lists tokens that would repeat an n-gram already present
// in seq.
func bannedNgramTokens(seq []int64, n int) map[int64]struct{} {
	if n <= 0 || len(seq) < n {
		return nil
	}
	prefix := seq[len(seq)-n+1:]
	banned := make(map[int64]struct{})
	for i := 0; i+n <= len(seq); i++ {
		match := true
		for j := range prefix {
			if seq[i+j] != prefix[j] {
				match = false
				break
			}
		}
		if match {
			banned[seq[i+n-1]] = struct{}{}
		}
	}
	return banned
}
