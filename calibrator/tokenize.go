package calibrator

import (
	"sort"
	"strings"
)

// TokenSet is a set of matchable tokens.
type TokenSet map[string]struct{}

func newSet(words ...string) TokenSet {
	s := make(TokenSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// Has reports whether token is in the set.
func (s TokenSet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// Overlap counts tokens present in both sets.
func (s TokenSet) Overlap(other TokenSet) int {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	n := 0
	for t := range small {
		if _, ok := large[t]; ok {
			n++
		}
	}
	return n
}

// Intersects reports whether the sets share at least one token.
func (s TokenSet) Intersects(other TokenSet) bool {
	for t := range s {
		if _, ok := other[t]; ok {
			return true
		}
	}
	return false
}

// Without returns a copy of s minus the tokens in drop.
func (s TokenSet) Without(drop TokenSet) TokenSet {
	out := make(TokenSet, len(s))
	for t := range s {
		if _, ok := drop[t]; !ok {
			out[t] = struct{}{}
		}
	}
	return out
}

// Sorted returns the tokens in lexical order.
func (s TokenSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

var stopwords = newSet(
	"a", "an", "and", "are", "as", "at", "be", "but", "by", "do", "does", "for",
	"from", "had", "has", "have", "i", "in", "is", "it", "me", "my", "of", "on",
	"or", "please", "tell", "that", "the", "their", "them", "then", "there",
	"these", "they", "this", "those", "to", "was", "we", "were", "what", "when",
	"where", "which", "who", "why", "will", "with", "would", "you", "your",
)

// bannedGeneric tokens carry too little meaning to count as overlap.
var bannedGeneric = newSet(
	"all", "being", "thing", "people", "person", "world", "life", "good", "bad",
	"make", "making", "having", "provide", "providing", "blessing",
)

// bannedDescriptors are substrings that describe the prompt rather than the
// statement; generated keywords containing them are dropped.
var bannedDescriptors = []string{
	"keyword", "keywords", "statement", "prompt", "instruction", "comma",
	"separate", "separated", "list", "response", "respond", "line",
}

var negationTokens = newSet(
	"not", "no", "never", "none", "neither", "resist", "resisting", "avoid",
	"avoiding", "without", "anti", "against", "denial", "refuse", "refusing",
	"reject", "rejecting", "ban", "bans", "banned", "banning", "banish",
	"banished", "banishing", "prohibit", "prohibits", "prohibited",
	"prohibiting", "prohibition", "forbid", "forbids", "forbidden",
	"forbidding", "oppose", "opposes", "opposed", "opposing", "opposition",
	"abolish", "abolishes", "abolished", "abolishing", "low", "lower",
)

func isStopword(term string) bool {
	n := Normalize(term)
	return n != "" && stopwords.Has(n)
}

// asciiWords extracts maximal runs of ASCII letters from lowercased,
// accent-folded text.
func asciiWords(text string) []string {
	lowered := strings.ToLower(foldAccents(text))
	var words []string
	start := -1
	for i := 0; i < len(lowered); i++ {
		c := lowered[i]
		letter := c >= 'a' && c <= 'z'
		if letter && start < 0 {
			start = i
		} else if !letter && start >= 0 {
			words = append(words, lowered[start:i])
			start = -1
		}
	}
	if start >= 0 {
		words = append(words, lowered[start:])
	}
	return words
}

func tokenVariants(token string, into TokenSet) {
	into[token] = struct{}{}
	if len(token) <= 3 || strings.HasSuffix(token, "ss") {
		return
	}
	if strings.HasSuffix(token, "ies") {
		into[token[:len(token)-3]+"y"] = struct{}{}
	}
	if strings.HasSuffix(token, "es") {
		into[token[:len(token)-2]] = struct{}{}
	}
	if strings.HasSuffix(token, "s") {
		into[token[:len(token)-1]] = struct{}{}
	}
}

// Tokenize returns the overlap tokens of text: alphabetic words minus
// stopwords and generic filler, each with its simple singular variants.
func Tokenize(text string) TokenSet {
	tokens := make(TokenSet)
	for _, w := range asciiWords(text) {
		if stopwords.Has(w) || bannedGeneric.Has(w) {
			continue
		}
		tokenVariants(w, tokens)
	}
	return tokens
}

// HasNegation reports whether text carries negation or opposition vocabulary.
func HasNegation(text string) bool {
	for t := range Tokenize(text) {
		if negationTokens.Has(t) {
			return true
		}
	}
	return false
}
