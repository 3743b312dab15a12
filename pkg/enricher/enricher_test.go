package enricher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dtnitsch/blogkit/models"
)

func TestEnrich_JSONFormatter(t *testing.T) {
	got := Enrich(models.ToolMention{Title: "JSON Formatter"}, DefaultRules())

	want := "JSON formatting, JSON validation, JSON minification, JSON escaping, JSON beautifying"
	if got.EnhancedDescription != want {
		t.Errorf("EnhancedDescription = %q, want %q", got.EnhancedDescription, want)
	}
	if got.Category != models.CategoryTextProcessing {
		t.Errorf("Category = %q, want %q", got.Category, models.CategoryTextProcessing)
	}
}

func TestDescribe(t *testing.T) {
	rules := DefaultRules()
	tests := []struct {
		name        string
		title       string
		description string
		want        string
	}{
		{
			name:        "description plus phrases",
			title:       "Base64 Encoder",
			description: "encode files",
			want:        "encode files | main functions: Base64 encoding, Base64 decoding, character encoding conversion",
		},
		{
			name:  "phrases concatenate in table order",
			title: "URL QR",
			want:  "URL encoding, URL decoding, query parameter parsing, link formatting, QR code generation",
		},
		{
			name:        "description without phrases",
			title:       "Something",
			description: "does a thing",
			want:        "does a thing",
		},
		{
			name:  "fallback",
			title: "Something",
			want:  "developer utility",
		},
		{
			name:  "substring match",
			title: "在线工具 Timestamp",
			want:  "timestamp conversion, date formatting, time zone conversion, date arithmetic",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.title, tt.description, rules); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCategorize(t *testing.T) {
	rules := DefaultRules()
	tests := []struct {
		title string
		want  models.Category
	}{
		{"YAML Validator", models.CategoryTextProcessing},
		{"URL Encoder", models.CategoryEncoding},
		{"SQL Beautifier", models.CategoryCodeTooling},
		{"JWT Debugger", models.CategorySecurity},
		{"Cron Helper", models.CategoryDateTime},
		{"SVG Optimizer", models.CategoryGraphics},
		{"Port Scanner", models.CategoryNetworking},
		{"Lorem Generator", models.CategoryDataGeneration},
		{"Regex Tester", models.CategoryPatternMatching},
		{"Docker Cheatsheet", models.CategoryDeveloperMisc},
		{"在线工具", models.CategoryUncategorized},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := Categorize(tt.title, rules); got != tt.want {
				t.Errorf("Categorize(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestCategorize_RuleOrderWins(t *testing.T) {
	rules := Rules{
		Categories: []CategoryRule{
			{Category: "first", Keywords: []string{"foo"}},
			{Category: "second", Keywords: []string{"foo", "bar"}},
		},
		Fallback: "none",
	}
	if got := Categorize("Foo Bar", rules); got != "first" {
		t.Errorf("Categorize() = %q, want first", got)
	}
	if got := Categorize("Bar", rules); got != "second" {
		t.Errorf("Categorize() = %q, want second", got)
	}
	if got := Categorize("Baz", rules); got != "none" {
		t.Errorf("Categorize() = %q, want none", got)
	}
}

func TestLoadRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `fallback_category: misc
joiner: "、"
functions:
  - keyword: json
    phrases: [a, b]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules() error = %v", err)
	}
	if rules.Fallback != "misc" || rules.Joiner != "、" {
		t.Errorf("overrides not applied: %+v", rules)
	}
	if len(rules.Functions) != 1 {
		t.Errorf("functions = %d, want 1 (replaced)", len(rules.Functions))
	}
	if len(rules.Categories) != len(DefaultRules().Categories) {
		t.Errorf("categories should keep defaults")
	}
	if got := Describe("json", "", rules); got != "a、b" {
		t.Errorf("Describe() = %q", got)
	}
}

func TestLoadRules_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("categories:\n  - category: x\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadRules(bad); err == nil {
		t.Error("LoadRules() with keyword-less category should fail")
	}
	if _, err := LoadRules(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadRules() with missing file should fail")
	}
	if rules, err := LoadRules(""); err != nil || rules.Fallback != models.CategoryUncategorized {
		t.Errorf("LoadRules(\"\") = %+v, %v", rules.Fallback, err)
	}
}
