package reconcile

import (
	"regexp"
	"strings"
)

// suffixRe matches a trailing generational suffix on an already-normalized key
var suffixRe = regexp.MustCompile(`\s+(jr|sr|ii|iii|iv)\.?$`)

// Matcher resolves a player name from one provider against a candidate pool
// from the other. Matching is tiered: exact normalized key, then
// suffix-insensitive, then last-name + first-initial. The first tier that
// produces any hit wins, and within a tier the first candidate in pool order
// wins, so callers control tie-breaks by the order they supply. A name that
// survives no tier is reported unmatched rather than guessed at.
type Matcher struct {
	candidates []candidate
}

type candidate struct {
	name       string // original display name, returned on match
	key        string
	unsuffixed string
	surname    string
	initial    byte
	hasParts   bool
}

// NewMatcher builds a matcher over the candidate pool, preserving pool order.
func NewMatcher(names []string) *Matcher {
	m := &Matcher{candidates: make([]candidate, 0, len(names))}
	for _, name := range names {
		m.candidates = append(m.candidates, newCandidate(name))
	}
	return m
}

func newCandidate(name string) candidate {
	c := candidate{name: name, key: NormalizeName(name)}
	c.unsuffixed = stripSuffix(c.key)
	c.surname, c.initial, c.hasParts = nameParts(c.key)
	return c
}

// Match returns the candidate display name the target resolves to, or
// ("", false) when no tier produces a hit.
func (m *Matcher) Match(target string) (string, bool) {
	key := NormalizeName(target)
	if key == "" {
		return "", false
	}

	for _, c := range m.candidates {
		if c.key == key {
			return c.name, true
		}
	}

	unsuffixed := stripSuffix(key)
	for _, c := range m.candidates {
		if c.unsuffixed == unsuffixed {
			return c.name, true
		}
	}

	surname, initial, ok := nameParts(key)
	if !ok {
		return "", false
	}
	for _, c := range m.candidates {
		if c.hasParts && c.surname == surname && c.initial == initial {
			return c.name, true
		}
	}

	return "", false
}

// MatchName resolves target against candidates in a single call.
func MatchName(target string, candidates []string) (string, bool) {
	return NewMatcher(candidates).Match(target)
}

func stripSuffix(key string) string {
	return suffixRe.ReplaceAllString(key, "")
}

// nameParts splits a normalized key into (surname, first initial). Keys with
// fewer than two tokens have no usable parts and skip the initial tier.
func nameParts(key string) (string, byte, bool) {
	parts := strings.Fields(key)
	if len(parts) < 2 || parts[0] == "" {
		return "", 0, false
	}
	surname := strings.TrimRight(parts[len(parts)-1], ".")
	return surname, parts[0][0], true
}
