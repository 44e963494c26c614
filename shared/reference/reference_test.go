package reference_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"peakpath/shared/reference"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name       string
		prefix     string
		length     int
		wantPrefix string
		wantLen    int
	}{
		{
			name:       "prefixed reference",
			prefix:     "PP",
			length:     6,
			wantPrefix: "PP-",
			wantLen:    9,
		},
		{
			name:    "no prefix",
			prefix:  "",
			length:  8,
			wantLen: 8,
		},
		{
			name:       "zero length falls back to default",
			prefix:     "PP",
			length:     0,
			wantPrefix: "PP-",
			wantLen:    2 + 1 + reference.DefaultLength,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := reference.Generate(tt.prefix, tt.length)

			assert.NoError(t, err)
			assert.Len(t, ref, tt.wantLen)

			if tt.wantPrefix != "" {
				assert.True(t, strings.HasPrefix(ref, tt.wantPrefix))
			}

			random := strings.TrimPrefix(ref, tt.wantPrefix)
			for _, ch := range random {
				assert.Contains(t, reference.Alphabet, string(ch))
			}
		})
	}
}

func TestGenerateExcludesAmbiguousCharacters(t *testing.T) {
	for range 200 {
		ref, err := reference.Generate("PP", 6)

		assert.NoError(t, err)

		random := strings.TrimPrefix(ref, "PP-")
		assert.NotContains(t, random, "0")
		assert.NotContains(t, random, "O")
		assert.NotContains(t, random, "1")
		assert.NotContains(t, random, "I")
	}
}

func TestGenerateIsNotConstant(t *testing.T) {
	seen := map[string]bool{}

	for range 50 {
		ref, err := reference.Generate("PP", 6)

		assert.NoError(t, err)

		seen[ref] = true
	}

	assert.Greater(t, len(seen), 1)
}
