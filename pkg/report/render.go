package report

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// NoToolsFound is the whole report when there are no mentions.
	NoToolsFound = "No related tools found."

	maxURLDisplay = 50
	articleBase   = "/articles/"
)

// Markdown renders the report: one table per category, then category and
// article count tables.
func (r Report) Markdown() string {
	if r.Total == 0 {
		return NoToolsFound
	}

	var lines []string
	add := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	add("# Related Tools in Blog Articles")
	add("")
	add("Found %d tools across %d categories.", r.Total, len(r.Categories))
	add("")

	for _, group := range r.Categories {
		add("## %s (%d)", group.Category, len(group.Mentions))
		add("")
		add("| Tool | Description | Source Article | URL |")
		add("|------|-------------|----------------|-----|")
		for _, m := range group.Mentions {
			add("| **%s** | %s | %s | %s |",
				cell(m.Title), cell(m.EnhancedDescription), articleLink(m.ArticleTitle, m.ArticleSlug), cell(DisplayURL(m.URL)))
		}
		add("")
	}

	add("## Statistics")
	add("")
	add("| Category | Tools |")
	add("|----------|-------|")
	for _, c := range r.CategoryCounts {
		add("| %s | %d |", cell(c.Key), c.Value)
	}

	add("")
	add("## Source Articles")
	add("")
	add("| Article | Tools |")
	add("|---------|-------|")
	for _, c := range r.ArticleCounts {
		add("| %s | %d |", articleLink(c.Key, c.Slug), c.Value)
	}

	return strings.Join(lines, "\n")
}

// DisplayURL shortens URLs longer than 50 characters and shows "-" for none.
func DisplayURL(url string) string {
	if url == "" {
		return "-"
	}
	if utf8.RuneCountInString(url) > maxURLDisplay {
		runes := []rune(url)
		return string(runes[:maxURLDisplay]) + "..."
	}
	return url
}

func articleLink(title, slug string) string {
	return fmt.Sprintf("[%s](%s%s/)", cell(title), articleBase, slug)
}

// cell keeps a value inside its table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
