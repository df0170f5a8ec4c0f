package worker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{"technical keyword", "The app shows an error when I log in", CategoryTechnical},
		{"billing keyword", "I was charged twice, please refund the payment", CategoryBilling},
		{"fallback", "Where can I find the office address?", CategoryGeneral},
		{"case insensitive", "PRINTER will not respond", CategoryTechnical},
		{"technical wins over billing", "Invoice page crashes with an error", CategoryTechnical},
		{"multi word keyword", "The dashboard is not working anymore", CategoryTechnical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.description))
		})
	}
}

func TestSummarizeShortDescription(t *testing.T) {
	got := Summarize(CategoryBilling, "Refund please")
	assert.Equal(t, "User reported a Billing issue: Refund please", got)
}

func TestSummarizeTruncatesLongDescription(t *testing.T) {
	long := strings.Repeat("a", 100)
	got := Summarize(CategoryGeneral, long)

	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Contains(t, got, strings.Repeat("a", 60))
	assert.NotContains(t, got, strings.Repeat("a", 61))
}
