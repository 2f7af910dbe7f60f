package calibrator

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ErrDuplicateID reports a corpus with two entries sharing an id while strict
// loading is enabled.
var ErrDuplicateID = errors.New("duplicate corpus id")

// CorpusOptions controls corpus construction.
type CorpusOptions struct {
	// StrictIDs rejects duplicate ids instead of letting the last one win.
	StrictIDs bool
	Logger    *zap.Logger
}

// Corpus is the static reference table with its token index.
type Corpus struct {
	entries      []Entry
	normalized   []string
	tokens       []TokenSet
	byNormalized map[string]int
	byID         map[string]int
	index        *TokenIndex
}

// NewCorpus builds a corpus. Entries are immutable afterwards. A repeated id
// replaces the earlier entry but keeps its position, unless opts.StrictIDs is
// set.
func NewCorpus(entries []Entry, opts CorpusOptions) (*Corpus, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Corpus{
		byNormalized: make(map[string]int),
		byID:         make(map[string]int),
		index:        NewTokenIndex(),
	}
	for i, e := range entries {
		e.ID = strings.TrimSpace(e.ID)
		if e.ID == "" {
			return nil, fmt.Errorf("corpus entry %d: missing id", i+1)
		}
		if e.Kind == "" {
			e.Kind = KindStandard
		}
		if pos, ok := c.byID[e.ID]; ok {
			if opts.StrictIDs {
				return nil, fmt.Errorf("%w %q (%q and %q)", ErrDuplicateID, e.ID, c.entries[pos].Text, e.Text)
			}
			logger.Warn("duplicate corpus id, keeping the later entry",
				zap.String("id", e.ID),
				zap.String("replaced", c.entries[pos].Text),
				zap.String("kept", e.Text))
			c.entries[pos] = e
			continue
		}
		c.byID[e.ID] = len(c.entries)
		c.entries = append(c.entries, e)
	}

	c.normalized = make([]string, len(c.entries))
	c.tokens = make([]TokenSet, len(c.entries))
	for pos, e := range c.entries {
		n := Normalize(e.Text)
		c.normalized[pos] = n
		c.tokens[pos] = Tokenize(n)
		if n != "" {
			c.byNormalized[n] = pos
		}
	}
	c.index.Replace(c.tokens)
	logger.Debug("corpus loaded", zap.Int("entries", len(c.entries)))
	return c, nil
}

// Len returns the number of entries.
func (c *Corpus) Len() int { return len(c.entries) }

// Entries returns a copy of the entries in load order.
func (c *Corpus) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Lookup returns the entry with the given id.
func (c *Corpus) Lookup(id string) (Entry, bool) {
	pos, ok := c.byID[id]
	if !ok {
		return Entry{}, false
	}
	return c.entries[pos], true
}

// LookupText returns the entry whose normalized text equals Normalize(text).
func (c *Corpus) LookupText(text string) (Entry, bool) {
	pos, ok := c.byNormalized[Normalize(text)]
	if !ok {
		return Entry{}, false
	}
	return c.entries[pos], true
}

// CandidatesFor returns the ids of entries sharing a token with tokens, in
// load order. It fails open: no tokens or no hits yields every id.
func (c *Corpus) CandidatesFor(tokens TokenSet) []string {
	positions := c.index.Candidates(tokens)
	ids := make([]string, len(positions))
	for i, pos := range positions {
		ids[i] = c.entries[pos].ID
	}
	return ids
}

func (c *Corpus) match(pos int) Match {
	return Match{Entry: c.entries[pos], Kind: StandardMatch}
}
