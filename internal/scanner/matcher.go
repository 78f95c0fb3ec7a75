package scanner

import (
	"regexp"
	"strings"
)

// Matcher finds the first match of a pattern within a single line.
type Matcher interface {
	// Match returns the byte offset and length of the first match in line,
	// or ok=false when the line does not match.
	Match(line string) (offset, length int, ok bool)
}

type regexMatcher struct {
	re *regexp.Regexp
}

// NewRegexMatcher wraps a compiled regular expression as a Matcher.
// Case folding is handled at compile time via the (?i) flag.
func NewRegexMatcher(re *regexp.Regexp) Matcher {
	return &regexMatcher{re: re}
}

func (m *regexMatcher) Match(line string) (int, int, bool) {
	loc := m.re.FindStringIndex(line)
	if loc == nil {
		return 0, 0, false
	}
	return loc[0], loc[1] - loc[0], true
}

type substringMatcher struct {
	pattern       string
	folded        *regexp.Regexp
	caseSensitive bool
}

// NewSubstringMatcher returns a plain substring Matcher. The case-insensitive
// form matches through the regex engine with the pattern quoted: folding by
// hand shifts byte widths for some runes, so offsets must always be computed
// against the original line, never a lowercased copy.
func NewSubstringMatcher(pattern string, caseSensitive bool) Matcher {
	m := &substringMatcher{pattern: pattern, caseSensitive: caseSensitive}
	if !caseSensitive {
		// QuoteMeta output always compiles.
		m.folded = regexp.MustCompile("(?i)" + regexp.QuoteMeta(pattern))
	}
	return m
}

func (m *substringMatcher) Match(line string) (int, int, bool) {
	if m.caseSensitive {
		idx := strings.Index(line, m.pattern)
		if idx < 0 {
			return 0, 0, false
		}
		return idx, len(m.pattern), true
	}

	loc := m.folded.FindStringIndex(line)
	if loc == nil {
		return 0, 0, false
	}
	return loc[0], loc[1] - loc[0], true
}
