package summarize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_Headline(t *testing.T) {
	result := Summarize("Acme Corp reported 15% revenue growth this quarter. Margins improved. Guidance was raised.")

	assert.True(t, strings.HasPrefix(result.Headline, "Acme Corp "), "headline: %s", result.Headline)
	assert.Contains(t, result.Headline, "15%")
	assert.True(t, strings.HasSuffix(result.Headline, " in Latest Results"))
}

func TestSummarize_HeadlineWithoutCompanyOrNumbers(t *testing.T) {
	result := Summarize("Sentiment on the sector keeps improving across the board")

	assert.True(t, strings.HasPrefix(result.Headline, "Company "), "headline: %s", result.Headline)
	assert.True(t, strings.HasSuffix(result.Headline, " in Latest Results"))
}

func TestSummarize_Summary(t *testing.T) {
	t.Run("long text keeps first two sentences", func(t *testing.T) {
		result := Summarize("First sentence. Second sentence. Third sentence. Fourth sentence.")
		assert.Equal(t, "First sentence. Second sentence.", result.Summary)
	})

	t.Run("short text is unchanged", func(t *testing.T) {
		text := "Only sentence here. And another."
		result := Summarize(text)
		assert.Equal(t, text, result.Summary)
	})
}

func TestExtractCompanyName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"corp suffix", "Results from Acme Corp look strong", "Acme Corp"},
		{"industries suffix", "Reliance Industries posted gains", "Reliance Industries"},
		{"motors suffix", "Interview with Tata Motors management", "Tata Motors"},
		{"no suffix", "the market rallied broadly today", "Company"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractCompanyName(tt.text))
		})
	}
}
