package calibrator

import (
	"sync"

	"go.uber.org/zap"
)

// Notices emits operator notices at most once per key.
type Notices struct {
	mu     sync.Mutex
	seen   map[string]struct{}
	logger *zap.Logger
}

// NewNotices returns an empty notice set.
func NewNotices(logger *zap.Logger) *Notices {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notices{seen: make(map[string]struct{}), logger: logger}
}

// Once logs msg at info level unless key was already used. It reports
// whether the notice was emitted.
func (n *Notices) Once(key, msg string, fields ...zap.Field) bool {
	n.mu.Lock()
	if _, ok := n.seen[key]; ok {
		n.mu.Unlock()
		return false
	}
	n.seen[key] = struct{}{}
	n.mu.Unlock()
	n.logger.Info(msg, fields...)
	return true
}

// Purpose names what a generation call was for.
type Purpose string

// Generation purposes, one notice set each.
const (
	PurposeKeywords     Purpose = "keyword expansion"
	PurposeSuggestions  Purpose = "suggestions"
	PurposeAlignment    Purpose = "alignment"
	PurposeReferenceMap Purpose = "reference map selection"
)

var fallbackNotices = map[Purpose]string{
	PurposeKeywords:     "keyword expansion disabled, using fallback keywords",
	PurposeSuggestions:  "model suggestions unavailable, using heuristic suggestions",
	PurposeAlignment:    "alignment model unavailable, using heuristic",
	PurposeReferenceMap: "reference map model unavailable, using heuristic selection",
}

// BackendFailed reports a backend that could not answer for purpose. Each
// distinct reason is reported once per purpose and backend.
func (n *Notices) BackendFailed(purpose Purpose, backend string, err error) {
	reason := err.Error()
	msg, ok := fallbackNotices[purpose]
	if !ok {
		msg = string(purpose) + " unavailable"
	}
	n.Once("disabled|"+string(purpose)+"|"+backend+"|"+reason, msg,
		zap.String("backend", backend), zap.String("reason", reason))
}

// BackendReady reports the first successful answer of a backend for purpose.
func (n *Notices) BackendReady(purpose Purpose, backend string) {
	n.Once("ready|"+string(purpose)+"|"+backend, string(purpose)+" enabled", zap.String("backend", backend))
}

// Hooks returns Chain callbacks that report under purpose.
func (n *Notices) Hooks(purpose Purpose) (onFailure func(string, error), onSuccess func(string)) {
	onFailure = func(backend string, err error) { n.BackendFailed(purpose, backend, err) }
	onSuccess = func(backend string) { n.BackendReady(purpose, backend) }
	return onFailure, onSuccess
}
