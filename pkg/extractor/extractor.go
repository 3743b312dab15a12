// Package extractor finds developer-tool mentions in Markdown article bodies.
//
// Three rules run independently over the same body and their outputs are
// concatenated: the first "related tools" section's list items, then every
// keyword-bearing "[title](url) - description" link, then every
// "label工具: https://..." pair. Text matching more than one rule is reported
// once per rule; use Dedupe to collapse repeats.
package extractor

import (
	"regexp"
	"strings"

	"github.com/dtnitsch/blogkit/models"
)

// Config holds the keyword sets the rules match against.
type Config struct {
	// Headings are the "related tools" section titles, matched case-insensitively.
	Headings []string
	// LinkKeywords must appear (case-insensitively) in a link title for the
	// content-link rule to keep it.
	LinkKeywords []string
	// PlainKeywords keep an unlinked section list item as a title-only mention.
	// Matched case-sensitively.
	PlainKeywords []string
}

// DefaultConfig returns the keyword sets used by the blog.
func DefaultConfig() Config {
	return Config{
		Headings:      []string{"相关工具", "推荐工具", "工具推荐", "实用工具", "related tools", "recommended tools", "useful tools"},
		LinkKeywords:  []string{"tool", "工具", "util", "editor", "格式化", "formatter", "converter"},
		PlainKeywords: []string{"工具", "tool", "Tool", "Editor", "Converter"},
	}
}

var (
	itemLinkDesc = regexp.MustCompile(`^\[([^\]]+)\]\(([^)]+)\)\s*[-—–]\s*(.+)`)
	itemLink     = regexp.MustCompile(`^\[([^\]]+)\]\(([^)]+)\)`)
	contentLink  = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)\s*[-—–]\s*([^*\n]+)`)
	inlineURL    = regexp.MustCompile(`([^:：\n]+(?:工具?|[Tt]ool))[:：][ \t]*(https?://[^\s，。；、）]+)`)
	bullet       = regexp.MustCompile(`^[ \t]*[-*+][ \t]+(.+?)[ \t]*\r?$`)
)

// Extractor applies the rules with a fixed Config.
type Extractor struct {
	cfg     Config
	heading *regexp.Regexp
}

// New compiles an Extractor for cfg.
func New(cfg Config) *Extractor {
	names := make([]string, 0, len(cfg.Headings))
	for _, h := range cfg.Headings {
		names = append(names, regexp.QuoteMeta(h))
	}
	// Optional markdown heading marks, optional bold, optional colon.
	pattern := `(?im)^[ \t]*(?:#{1,6}[ \t]*)?(?:\*\*)?(?:` + strings.Join(names, "|") +
		`)[ \t]*[:：]?[ \t]*(?:\*\*)?[ \t]*[:：]?[ \t]*\r?$`
	return &Extractor{cfg: cfg, heading: regexp.MustCompile(pattern)}
}

// Default returns an Extractor using DefaultConfig.
func Default() *Extractor {
	return New(DefaultConfig())
}

// Extract returns all raw mentions in body: section items first, then content
// links, then inline URL mentions, each group in document order.
func (e *Extractor) Extract(body string) []models.ToolMention {
	var mentions []models.ToolMention
	mentions = append(mentions, e.sectionItems(body)...)
	mentions = append(mentions, e.contentLinks(body)...)
	mentions = append(mentions, inlineMentions(body)...)
	return mentions
}

// sectionItems parses the list under the first related-tools heading. Blank
// lines between the heading and the list are allowed; the list ends at the
// first line that is not a bullet item.
func (e *Extractor) sectionItems(body string) []models.ToolMention {
	loc := e.heading.FindStringIndex(body)
	if loc == nil {
		return nil
	}

	lines := strings.Split(body[loc[1]:], "\n")
	if len(lines) > 0 {
		lines = lines[1:] // remainder of the heading line
	}

	var mentions []models.ToolMention
	started := false
	for _, line := range lines {
		m := bullet.FindStringSubmatch(line)
		if m == nil {
			if !started && strings.TrimSpace(line) == "" {
				continue
			}
			break
		}
		started = true
		if mention, ok := e.parseItem(m[1]); ok {
			mentions = append(mentions, mention)
		}
	}
	return mentions
}

func (e *Extractor) parseItem(item string) (models.ToolMention, bool) {
	if m := itemLinkDesc.FindStringSubmatch(item); m != nil {
		return models.ToolMention{
			Title:       strings.TrimSpace(m[1]),
			URL:         strings.TrimSpace(m[2]),
			Description: strings.TrimSpace(m[3]),
			Source:      models.SourceSectionList,
		}, true
	}
	if m := itemLink.FindStringSubmatch(item); m != nil {
		return models.ToolMention{
			Title:  strings.TrimSpace(m[1]),
			URL:    strings.TrimSpace(m[2]),
			Source: models.SourceSectionList,
		}, true
	}
	if containsAny(item, e.cfg.PlainKeywords) {
		return models.ToolMention{
			Title:  strings.TrimSpace(item),
			Source: models.SourcePlainText,
		}, true
	}
	return models.ToolMention{}, false
}

func (e *Extractor) contentLinks(body string) []models.ToolMention {
	var mentions []models.ToolMention
	for _, m := range contentLink.FindAllStringSubmatch(body, -1) {
		if !containsAny(strings.ToLower(m[1]), e.cfg.LinkKeywords) {
			continue
		}
		mentions = append(mentions, models.ToolMention{
			Title:       strings.TrimSpace(m[1]),
			URL:         strings.TrimSpace(m[2]),
			Description: strings.TrimSpace(m[3]),
			Source:      models.SourceContentLink,
		})
	}
	return mentions
}

func inlineMentions(body string) []models.ToolMention {
	var mentions []models.ToolMention
	for _, m := range inlineURL.FindAllStringSubmatch(body, -1) {
		title := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(m[1]), "-*+>#"))
		if title == "" {
			continue
		}
		mentions = append(mentions, models.ToolMention{
			Title:  title,
			URL:    trimURL(m[2]),
			Source: models.SourceInlineURL,
		})
	}
	return mentions
}

// trimURL removes punctuation that prose commonly leaves stuck to a bare URL.
func trimURL(raw string) string {
	cleaned := strings.TrimSpace(raw)
	for {
		trimmed := strings.TrimRight(cleaned, ",.;'\">)]}，。；）")
		if trimmed == cleaned {
			return cleaned
		}
		cleaned = trimmed
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
