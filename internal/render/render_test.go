package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTML(t *testing.T) {
	r := New()

	tests := []struct {
		name     string
		in       string
		contains []string
		excludes []string
	}{
		{
			name:     "paragraph",
			in:       "A sturdy mug.",
			contains: []string{"<p>A sturdy mug.</p>"},
		},
		{
			name:     "markdown list and emphasis",
			in:       "**Features**\n\n- Dishwasher safe\n- 12 oz",
			contains: []string{"<strong>Features</strong>", "<li>Dishwasher safe</li>"},
		},
		{
			name:     "script is removed",
			in:       "Nice mug <script>alert(1)</script>",
			excludes: []string{"<script"},
		},
		{
			name:     "javascript links are neutralized",
			in:       "[click](javascript:alert(1))",
			excludes: []string{"javascript:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.HTML(tt.in)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}
