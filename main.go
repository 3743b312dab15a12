package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dtnitsch/blogkit/internal/migrate"
	"github.com/dtnitsch/blogkit/internal/repair"
	"github.com/dtnitsch/blogkit/internal/runs"
	"github.com/dtnitsch/blogkit/internal/tools"
	"github.com/dtnitsch/blogkit/pkg/help"
	migratepkg "github.com/dtnitsch/blogkit/pkg/migrate"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "blogkit",
		Usage: "Maintenance commands for a Markdown blog's content tree",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "Only log errors",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "Run history database (default: blogkit.db next to the binary)",
			},
			&cli.BoolFlag{
				Name:  "no-history",
				Usage: "Do not record the run in the history database",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "tools",
				Usage:  "Collect related-tool mentions from posts into a Markdown report",
				Action: tools.ToolsAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "content-dir", Value: "content/posts", Usage: "Directory scanned recursively for *.md posts"},
					&cli.StringFlag{Name: "output", Value: "BLOG_RELATED_TOOLS.md", Usage: "Report path"},
					&cli.StringFlag{Name: "rules", Usage: "YAML file overriding the enrichment keyword tables"},
					&cli.BoolFlag{Name: "dedupe", Usage: "Collapse mentions repeated by several extraction rules"},
					&cli.BoolFlag{Name: "html", Usage: "Also render the report as HTML next to --output"},
					&cli.BoolFlag{Name: "summary", Value: true, Usage: "Write a <output>.summary.json manifest"},
				},
			},
			{
				Name:   "repair",
				Usage:  "Rebuild malformed frontmatter and add missing slugs",
				Action: repair.RepairAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "content-dir", Value: "content/articles", Usage: "Directory scanned recursively for *.md files"},
					&cli.BoolFlag{Name: "dry-run", Usage: "Report what would change without writing"},
				},
			},
			{
				Name:   "migrate",
				Usage:  "Move flat posts into <year>/<MM>-<month>/<slug>.md",
				Action: migrate.MigrateAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "source", Value: "content/posts", Usage: "Flat directory of posts"},
					&cli.StringFlag{Name: "dest", Value: "content/articles", Usage: "Root of the dated layout"},
					&cli.StringFlag{Name: "backup-dir", Usage: "Where originals are moved (default: <source>/backup)"},
					&cli.StringFlag{Name: "default-time", Value: migratepkg.DefaultTime, Usage: "Time and offset appended to date-only lastmod values"},
					&cli.BoolFlag{Name: "overwrite", Usage: "Replace existing target files"},
					&cli.BoolFlag{Name: "dry-run", Usage: "Report what would happen without writing"},
				},
			},
			{
				Name:   "runs",
				Usage:  "Show recorded runs",
				Action: runs.ListAction,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: 20, Usage: "Number of runs to list (0 = all)"},
				},
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List recent runs",
						Action: runs.ListAction,
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "limit", Value: 20, Usage: "Number of runs to list (0 = all)"},
						},
					},
					{
						Name:      "show",
						Usage:     "Show a run's file events and mentions as YAML",
						ArgsUsage: "[run-id or prefix]",
						Action:    runs.ShowAction,
					},
				},
			},
			{
				Name:  "quickstart",
				Usage: "Print a quick start guide",
				Action: func(c *cli.Context) error {
					fmt.Print(help.QuickstartYAML)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
