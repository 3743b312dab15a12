// Package enricher infers a function summary and a category for each tool
// mention from keyword matches against its title.
package enricher

import (
	"strings"

	"github.com/dtnitsch/blogkit/models"
)

// Enrich returns m with EnhancedDescription and Category filled in.
func Enrich(m models.ToolMention, rules Rules) models.ToolMention {
	m.EnhancedDescription = Describe(m.Title, m.Description, rules)
	m.Category = Categorize(m.Title, rules)
	return m
}

// EnrichAll enriches every mention, keeping order.
func EnrichAll(mentions []models.ToolMention, rules Rules) []models.ToolMention {
	out := make([]models.ToolMention, len(mentions))
	for i, m := range mentions {
		out[i] = Enrich(m, rules)
	}
	return out
}

// Phrases returns the function phrases of every keyword found in the
// lower-cased title, concatenated in table order without deduplication.
func Phrases(title string, rules Rules) []string {
	lower := strings.ToLower(title)
	var phrases []string
	for _, f := range rules.Functions {
		if strings.Contains(lower, f.Keyword) {
			phrases = append(phrases, f.Phrases...)
		}
	}
	return phrases
}

// Describe builds the enhanced description:
//
//	description and phrases: "<description> | <label>: <first MaxAppended phrases>"
//	phrases only:            "<first MaxPhrases phrases>"
//	neither:                 the description, or FallbackDescription when empty
func Describe(title, description string, rules Rules) string {
	phrases := Phrases(title, rules)
	switch {
	case len(phrases) > 0 && description == "":
		return strings.Join(head(phrases, rules.MaxPhrases), rules.Joiner)
	case len(phrases) > 0:
		return description + " | " + rules.FunctionsLabel + ": " + strings.Join(head(phrases, rules.MaxAppended), rules.Joiner)
	case description != "":
		return description
	default:
		return rules.FallbackDescription
	}
}

// Categorize returns the first category whose keywords occur in the
// lower-cased title, or the fallback category.
func Categorize(title string, rules Rules) models.Category {
	lower := strings.ToLower(title)
	for _, c := range rules.Categories {
		for _, k := range c.Keywords {
			if strings.Contains(lower, k) {
				return c.Category
			}
		}
	}
	return rules.Fallback
}

func head(s []string, n int) []string {
	if n < len(s) {
		return s[:n]
	}
	return s
}
