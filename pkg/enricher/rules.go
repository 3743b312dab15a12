package enricher

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dtnitsch/blogkit/models"
	"gopkg.in/yaml.v3"
)

// FunctionRule maps a title keyword to the functions such tools usually offer.
type FunctionRule struct {
	Keyword string   `yaml:"keyword"`
	Phrases []string `yaml:"phrases"`
}

// CategoryRule assigns Category when any keyword occurs in the title.
type CategoryRule struct {
	Category models.Category `yaml:"category"`
	Keywords []string        `yaml:"keywords"`
}

// Rules is the enrichment configuration. Tables are ordered: phrases are
// collected in Functions order and the first matching CategoryRule wins.
type Rules struct {
	Functions           []FunctionRule  `yaml:"functions"`
	Categories          []CategoryRule  `yaml:"categories"`
	Fallback            models.Category `yaml:"fallback_category"`
	FallbackDescription string          `yaml:"fallback_description"`
	FunctionsLabel      string          `yaml:"functions_label"`
	Joiner              string          `yaml:"joiner"`
	MaxPhrases          int             `yaml:"max_phrases"`
	MaxAppended         int             `yaml:"max_appended"`
}

// DefaultRules returns the built-in tables.
func DefaultRules() Rules {
	return Rules{
		Functions: []FunctionRule{
			{"json", []string{"JSON formatting", "JSON validation", "JSON minification", "JSON escaping", "JSON beautifying", "data conversion"}},
			{"sql", []string{"SQL formatting", "SQL beautifying", "SQL minification", "SQL syntax highlighting", "SQL optimization"}},
			{"markdown", []string{"Markdown editor", "Markdown preview", "Markdown to HTML", "live editing", "syntax highlighting"}},
			{"base64", []string{"Base64 encoding", "Base64 decoding", "character encoding conversion", "data encryption"}},
			{"url", []string{"URL encoding", "URL decoding", "query parameter parsing", "link formatting"}},
			{"regex", []string{"regex testing", "regex validation", "pattern matching", "regex generator"}},
			{"color", []string{"color picker", "color conversion", "HEX to RGB", "palette", "gradient generator"}},
			{"css", []string{"CSS minification", "CSS formatting", "CSS optimization", "stylesheet processing"}},
			{"js", []string{"JavaScript minification", "JS formatting", "code beautifying", "syntax checking"}},
			{"html", []string{"HTML formatting", "HTML minification", "tag cleanup", "markup validation"}},
			{"timestamp", []string{"timestamp conversion", "date formatting", "time zone conversion", "date arithmetic"}},
			{"qr", []string{"QR code generation", "QR code creation", "barcode generation", "mobile scanning"}},
			{"hash", []string{"hash generation", "MD5 checksum", "SHA hashing", "data verification"}},
			{"diff", []string{"text comparison", "difference detection", "merge tool", "version comparison"}},
			{"crontab", []string{"cron expressions", "scheduled jobs", "schedule configuration", "time parsing"}},
			{"jwt", []string{"JWT decoding", "token generation", "signature verification", "claims inspection"}},
			{"yaml", []string{"YAML formatting", "YAML validation", "config file processing", "data serialization"}},
			{"xml", []string{"XML formatting", "XML validation", "data conversion", "document processing"}},
			{"image", []string{"image compression", "format conversion", "resizing", "image processing"}},
			{"password", []string{"password generation", "random passwords", "strength checking", "password management"}},
			{"uuid", []string{"UUID generation", "unique identifiers", "ID generator", "random strings"}},
			{"lorem", []string{"Lorem ipsum text", "placeholder generation", "test data", "content filling"}},
			{"mime", []string{"MIME types", "file types", "format detection", "content types"}},
			{"port", []string{"port scanning", "network checks", "connection testing", "service checks"}},
		},
		Categories: []CategoryRule{
			{models.CategoryTextProcessing, []string{"json", "xml", "yaml", "markdown", "text", "diff"}},
			{models.CategoryEncoding, []string{"base64", "url", "encoding", "decode", "encode"}},
			{models.CategoryCodeTooling, []string{"css", "js", "html", "sql", "formatter", "minifier"}},
			{models.CategorySecurity, []string{"hash", "encrypt", "decrypt", "jwt", "password", "ssl"}},
			{models.CategoryDateTime, []string{"time", "date", "timestamp", "cron"}},
			{models.CategoryGraphics, []string{"image", "color", "qr", "png", "jpg", "svg"}},
			{models.CategoryNetworking, []string{"url", "port", "ip", "http", "api"}},
			{models.CategoryDataGeneration, []string{"uuid", "lorem", "random", "generator"}},
			{models.CategoryPatternMatching, []string{"regex", "pattern", "match"}},
			{models.CategoryDeveloperMisc, []string{"git", "docker", "npm", "package", "dev"}},
		},
		Fallback:            models.CategoryUncategorized,
		FallbackDescription: "developer utility",
		FunctionsLabel:      "main functions",
		Joiner:              ", ",
		MaxPhrases:          5,
		MaxAppended:         3,
	}
}

// LoadRules reads a YAML rules file. Keys present in the file replace the
// matching defaults; absent keys keep them.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Rules{}, fmt.Errorf("failed to read rules file: %w", err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, fmt.Errorf("invalid rules file %s: %w", path, err)
	}
	return rules, nil
}

// Validate rejects rules that would make enrichment ambiguous.
func (r Rules) Validate() error {
	if r.Fallback == "" {
		return fmt.Errorf("fallback_category must not be empty")
	}
	if r.MaxPhrases < 0 || r.MaxAppended < 0 {
		return fmt.Errorf("max_phrases and max_appended must not be negative")
	}
	for i, c := range r.Categories {
		if c.Category == "" {
			return fmt.Errorf("categories[%d] has no category", i)
		}
		if len(c.Keywords) == 0 {
			return fmt.Errorf("category %q has no keywords", c.Category)
		}
	}
	for i, f := range r.Functions {
		if f.Keyword == "" {
			return fmt.Errorf("functions[%d] has no keyword", i)
		}
	}
	return nil
}
