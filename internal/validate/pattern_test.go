package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileRegex(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		wantErr error
	}{
		{name: "plain literal", pattern: "foo"},
		{name: "anchored word", pattern: `^func \w+$`},
		{name: "single quantifiers separated by literals", pattern: "a*b+c{2,3}"},
		{name: "alternation", pattern: "foo|bar"},
		{name: "four capturing groups", pattern: "(a)(b)(c)(d)"},
		{name: "non-capturing groups not counted", pattern: "(?:a)(?:b)(?:c)(?:d)(?:e)(?:f)"},
		{name: "escaped metacharacters are literals", pattern: `a\*\+b`},
		{name: "too long", pattern: strings.Repeat("a", MaxPatternLength+1), wantErr: ErrPatternTooLong},
		{name: "nested quantifier", pattern: "(a+)+", wantErr: ErrPatternUnsafe},
		{name: "stacked star plus", pattern: "a*+", wantErr: ErrPatternUnsafe},
		{name: "quantified group then brace", pattern: "(ab)*{2}", wantErr: ErrPatternUnsafe},
		{name: "five capturing groups", pattern: "(a)(b)(c)(d)(e)", wantErr: ErrPatternUnsafe},
		{name: "unclosed bracket", pattern: "[abc", wantErr: ErrPatternInvalid},
		{name: "dangling quantifier", pattern: "*foo", wantErr: ErrPatternInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := CompileRegex(tt.pattern, true)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, re)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, re)
		})
	}
}

func TestCompileRegexErrorMessages(t *testing.T) {
	// The messages surface verbatim through the HTTP error responses.
	assert.EqualError(t, ErrPatternTooLong, "Pattern too long")
	assert.EqualError(t, ErrPatternInvalid, "Invalid regex pattern")
	assert.EqualError(t, ErrPatternUnsafe, "Potentially dangerous regex pattern")
}

func TestCompileRegexCaseFolding(t *testing.T) {
	t.Run("case sensitive", func(t *testing.T) {
		re, err := CompileRegex("foo", true)
		require.NoError(t, err)
		assert.True(t, re.MatchString("foo bar"))
		assert.False(t, re.MatchString("FOO bar"))
	})

	t.Run("case insensitive", func(t *testing.T) {
		re, err := CompileRegex("foo", false)
		require.NoError(t, err)
		assert.True(t, re.MatchString("FOO bar"))
	})
}

func TestCompileRegexLengthCheckedBeforeSafety(t *testing.T) {
	// An oversized pattern that is also unsafe reports TooLong first.
	pattern := "(a+)+" + strings.Repeat("x", MaxPatternLength)
	_, err := CompileRegex(pattern, true)
	require.ErrorIs(t, err, ErrPatternTooLong)
}
