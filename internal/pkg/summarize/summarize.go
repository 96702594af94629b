// Package summarize produces placeholder headlines and summaries for research
// text. It extracts the leading sentences and fills a headline template; a real
// inference backend can replace it behind the same function signature.
package summarize

import (
	"math/rand"
	"regexp"
	"strings"
)

// Result holds the generated headline and summary.
type Result struct {
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
}

var numberPattern = regexp.MustCompile(`\d+(\.\d+)?[%$BMK]?`)

// Corporate suffixes used to guess a company name from free text.
var companySuffixes = []string{"Inc", "Corp", "Ltd", "Company", "Industries", "Electronics", "Motors"}

var headlineActions = []string{"Reports", "Announces", "Reveals", "Posts", "Shows"}

var headlineOutcomes = []string{"Strong Growth", "Record Performance", "Significant Increase", "Major Investment"}

// Summarize generates a placeholder headline and summary for the given text.
func Summarize(text string) Result {
	keyNumbers := numberPattern.FindAllString(text, -1)
	companyName := extractCompanyName(text)

	return Result{
		Headline: generateHeadline(companyName, keyNumbers),
		Summary:  generateSummary(text),
	}
}

// extractCompanyName guesses a company name by looking for a word followed by
// a common corporate suffix. Falls back to "Company".
func extractCompanyName(text string) string {
	words := strings.Fields(text)

	for i := 0; i < len(words)-1; i++ {
		next := words[i+1]
		for _, suffix := range companySuffixes {
			if strings.Contains(next, suffix) {
				return words[i] + " " + next
			}
		}
	}

	return "Company"
}

func generateHeadline(companyName string, numbers []string) string {
	action := headlineActions[rand.Intn(len(headlineActions))]
	outcome := headlineOutcomes[rand.Intn(len(headlineOutcomes))]

	var b strings.Builder
	b.WriteString(companyName)
	b.WriteString(" ")
	b.WriteString(action)
	b.WriteString(" ")
	if len(numbers) > 0 {
		b.WriteString(numbers[0])
		b.WriteString(" ")
	}
	b.WriteString(outcome)
	b.WriteString(" in Latest Results")
	return b.String()
}

// generateSummary keeps the first two sentences of the text; texts of two or
// fewer sentences are returned unchanged.
func generateSummary(text string) string {
	parts := strings.Split(text, ".")
	sentences := make([]string, 0, len(parts))
	for _, s := range parts {
		if strings.TrimSpace(s) != "" {
			sentences = append(sentences, s)
		}
	}

	if len(sentences) <= 2 {
		return text
	}

	return strings.Join(sentences[:2], ".") + "."
}
