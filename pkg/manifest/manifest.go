package manifest

// SummaryManifest represents the structure of the summary JSON file written
// next to the related-tools report. It gives tooling a machine-readable view
// of the run without parsing the Markdown.
type SummaryManifest struct {
	GeneratedAt       string         `json:"generated_at"`
	RunID             string         `json:"run_id,omitempty"`
	ContentDir        string         `json:"content_dir"`
	Report            string         `json:"report"`
	ArticlesScanned   int            `json:"articles_scanned"`
	ArticlesWithTools int            `json:"articles_with_tools"`
	TotalTools        int            `json:"total_tools"`
	CategoryCounts    map[string]int `json:"category_counts"`
	TopCategories     []string       `json:"top_categories"`
	TopArticles       []string       `json:"top_articles,omitempty"`
	Failed            []FailedFile   `json:"failed,omitempty"`
}

// FailedFile is an article that could not be scanned.
type FailedFile struct {
	Path         string `json:"path"`
	ErrorType    string `json:"error_type,omitempty"`
	ErrorMessage string `json:"error_message"`
}
