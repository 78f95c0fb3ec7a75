package validate

import (
	"errors"
	"regexp"
)

// MaxPatternLength bounds regex pattern size before any compilation happens,
// keeping worst-case compile cost independent of the engine.
const MaxPatternLength = 500

// maxCapturingGroups is the heuristic ceiling on capturing groups; patterns
// at or above it are rejected as potentially dangerous.
const maxCapturingGroups = 5

// Pattern validation errors, surfaced verbatim to callers.
var (
	ErrPatternTooLong = errors.New("Pattern too long")
	ErrPatternInvalid = errors.New("Invalid regex pattern")
	ErrPatternUnsafe  = errors.New("Potentially dangerous regex pattern")
)

// CompileRegex validates pattern and compiles it into a matcher.
//
// Checks run in order: length cap, structural safety heuristics, then
// compilation. The heuristics reject the common catastrophic-backtracking
// shapes (stacked quantifiers, heavy capturing-group use) before the pattern
// is ever compiled. Go's regexp engine is linear-time so these shapes cannot
// actually blow up here, but the contract rejects them regardless so the
// behavior holds on engines without that guarantee.
func CompileRegex(pattern string, caseSensitive bool) (*regexp.Regexp, error) {
	if len(pattern) > MaxPatternLength {
		return nil, ErrPatternTooLong
	}
	if hasUnsafeShape(pattern) {
		return nil, ErrPatternUnsafe
	}

	if !caseSensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, ErrPatternInvalid
	}
	return re, nil
}

// hasUnsafeShape reports whether pattern matches either rejection heuristic:
// two repetition quantifiers with no literal between them (a closing paren
// does not count as a separator, so "(a+)+" is caught), or too many
// capturing groups. Escaped metacharacters are treated as literals.
func hasUnsafeShape(pattern string) bool {
	groups := 0
	quantifier := false
	escaped := false

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if escaped {
			escaped = false
			quantifier = false
			continue
		}
		switch c {
		case '\\':
			escaped = true
			quantifier = false
		case '*', '+', '{':
			if quantifier {
				return true
			}
			quantifier = true
		case ')':
			// transparent: a quantifier directly after a group closure
			// still stacks on the one inside the group
		case '(':
			if i+1 >= len(pattern) || pattern[i+1] != '?' {
				groups++
			}
			quantifier = false
		default:
			quantifier = false
		}
	}

	return groups >= maxCapturingGroups
}
