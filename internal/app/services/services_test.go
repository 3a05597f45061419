package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"lowercases and trims", []string{" Go ", "POSTGRES"}, []string{"go", "postgres"}},
		{"drops empties", []string{"go", "", "  "}, []string{"go"}},
		{"dedupes case-insensitively", []string{"go", "Go", "GO"}, []string{"go"}},
		{"keeps order of first occurrence", []string{"sql", "go", "SQL"}, []string{"sql", "go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeTags(tt.in))
		})
	}

	assert.Empty(t, normalizeTags(nil))
}

func TestMentionPattern(t *testing.T) {
	matches := mentionPattern.FindAllStringSubmatch(
		"thanks @jane_doe, also ping @bob99 and @ab (too short)", -1)

	var names []string
	for _, m := range matches {
		names = append(names, m[1])
	}
	assert.Equal(t, []string{"jane_doe", "bob99"}, names)
}

func TestMentionPatternNoMatches(t *testing.T) {
	matches := mentionPattern.FindAllStringSubmatch("no mentions here", -1)
	assert.Empty(t, matches)
}
