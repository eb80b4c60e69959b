package categories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		content     string
		want        string
	}{
		{
			name:  "title keyword",
			title: "NFL week recap",
			want:  "NFL",
		},
		{
			name:        "description keyword",
			description: "a big night in the mlb playoffs",
			want:        "MLB",
		},
		{
			name:    "content keyword",
			content: "The nba finals continue tonight.",
			want:    "NBA",
		},
		{
			name:    "priority order favors NBA over later leagues",
			content: "trade rumors across the nfl, mlb and nba",
			want:    "NBA",
		},
		{
			name:  "no keyword falls back to default",
			title: "College gymnastics highlights",
			want:  Default,
		},
		{
			name: "empty input falls back to default",
			want: Default,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Categorize(tt.title, tt.description, tt.content)
			assert.Equal(t, tt.want, got)
			// Deterministic: a second call agrees.
			assert.Equal(t, got, Categorize(tt.title, tt.description, tt.content))
		})
	}
}
