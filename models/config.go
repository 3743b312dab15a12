// Package models defines data structures shared by the blogkit commands.
package models

// ToolsConfig holds runtime configuration for the related-tools report.
// All values come from CLI flags, not external config files.
type ToolsConfig struct {
	ContentDir string
	Output     string
	RulesPath  string // optional YAML override for the enrichment tables
	Dedupe     bool
	HTML       bool
	Summary    bool
}

// RepairConfig holds runtime configuration for frontmatter repair.
type RepairConfig struct {
	ContentDir string
	DryRun     bool
}

// MigrateConfig holds runtime configuration for the posts -> articles migration.
type MigrateConfig struct {
	Source    string
	Dest      string
	BackupDir string // defaults to <Source>/backup
	// DefaultTime is appended to date-only values when building lastmod,
	// e.g. "12:00:00+08:00".
	DefaultTime string
	Overwrite   bool
	DryRun      bool
}
