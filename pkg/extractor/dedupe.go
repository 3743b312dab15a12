package extractor

import (
	"strings"

	"github.com/dtnitsch/blogkit/models"
)

// Dedupe drops repeated mentions within the same article, keyed by
// case-folded title and URL. The first occurrence wins and order is kept.
func Dedupe(mentions []models.ToolMention) []models.ToolMention {
	seen := make(map[string]struct{}, len(mentions))
	out := make([]models.ToolMention, 0, len(mentions))
	for _, m := range mentions {
		key := m.FilePath + "\x00" + strings.ToLower(strings.TrimSpace(m.Title)) + "\x00" + m.URL
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, m)
	}
	return out
}
