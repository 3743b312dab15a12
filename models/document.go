package models

// Metadata is a flat frontmatter mapping. Values are either string or []string;
// nested structures are not modelled.
type Metadata map[string]any

// String returns the scalar value for key, or "" when absent or a list.
func (m Metadata) String(key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// Has reports whether key is present.
func (m Metadata) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// Document is a Markdown file read once per run.
type Document struct {
	Path     string // relative to the content root
	Raw      string
	Metadata Metadata
	Body     string
}
