package models

// Source tags which extraction rule produced a mention.
type Source string

const (
	SourceSectionList Source = "section_list"   // list item under a "related tools" heading
	SourceContentLink Source = "content_link"   // [title](url) - description anywhere in the body
	SourceInlineURL   Source = "inline_mention" // "label工具: https://..."
	SourcePlainText   Source = "text_only"      // bare list item that names a tool
)

// Category is one of a closed set of labels assigned during enrichment.
type Category string

const (
	CategoryTextProcessing  Category = "text-processing"
	CategoryEncoding        Category = "encoding"
	CategoryCodeTooling     Category = "code-tooling"
	CategorySecurity        Category = "security"
	CategoryDateTime        Category = "datetime"
	CategoryGraphics        Category = "graphics"
	CategoryNetworking      Category = "networking"
	CategoryDataGeneration  Category = "data-generation"
	CategoryPatternMatching Category = "pattern-matching"
	CategoryDeveloperMisc   Category = "developer-misc"
	CategoryUncategorized   Category = "uncategorized"
)

// ToolMention is a single detected reference to a developer tool.
type ToolMention struct {
	Title       string `json:"title" yaml:"title"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Source      Source `json:"source" yaml:"source"`

	// Set by enrichment.
	EnhancedDescription string   `json:"enhanced_description,omitempty" yaml:"enhanced_description,omitempty"`
	Category            Category `json:"category,omitempty" yaml:"category,omitempty"`

	// Back-references to the owning article.
	ArticleTitle string `json:"article_title,omitempty" yaml:"article_title,omitempty"`
	ArticleSlug  string `json:"article_slug,omitempty" yaml:"article_slug,omitempty"`
	FilePath     string `json:"file_path,omitempty" yaml:"file_path,omitempty"`
}
