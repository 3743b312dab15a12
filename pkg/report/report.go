// Package report aggregates enriched tool mentions and renders them as a
// Markdown (and optionally HTML) summary.
package report

import (
	"sort"

	"github.com/dtnitsch/blogkit/models"
)

// CategoryGroup holds the mentions of one category in discovery order.
type CategoryGroup struct {
	Category models.Category
	Mentions []models.ToolMention
}

// Report is the read-only aggregation of a run's mentions.
type Report struct {
	Total int
	// Categories sorted by label.
	Categories []CategoryGroup
	// CategoryCounts sorted by descending count; ties keep first-encounter order.
	CategoryCounts []Count
	// ArticleCounts sorted by descending count; ties keep first-encounter order.
	// Only articles with at least one mention appear.
	ArticleCounts []Count
}

// Build groups mentions by category and by article.
func Build(mentions []models.ToolMention) Report {
	r := Report{Total: len(mentions)}

	byCategory := map[models.Category]int{}
	byArticle := map[string]int{}
	for _, m := range mentions {
		i, ok := byCategory[m.Category]
		if !ok {
			i = len(r.Categories)
			byCategory[m.Category] = i
			r.Categories = append(r.Categories, CategoryGroup{Category: m.Category})
			r.CategoryCounts = append(r.CategoryCounts, Count{Key: string(m.Category)})
		}
		r.Categories[i].Mentions = append(r.Categories[i].Mentions, m)
		r.CategoryCounts[i].Value++

		j, ok := byArticle[m.ArticleTitle]
		if !ok {
			j = len(r.ArticleCounts)
			byArticle[m.ArticleTitle] = j
			r.ArticleCounts = append(r.ArticleCounts, Count{Key: m.ArticleTitle, Slug: m.ArticleSlug})
		}
		r.ArticleCounts[j].Value++
	}

	sort.SliceStable(r.Categories, func(i, j int) bool {
		return r.Categories[i].Category < r.Categories[j].Category
	})
	SortCounts(r.CategoryCounts)
	SortCounts(r.ArticleCounts)
	return r
}

// CategoryTotals returns the per-category counts keyed by label.
func (r Report) CategoryTotals() map[string]int {
	totals := make(map[string]int, len(r.CategoryCounts))
	for _, c := range r.CategoryCounts {
		totals[c.Key] = c.Value
	}
	return totals
}
