package runs

import (
	"fmt"
	"os"
	"strings"

	"github.com/dtnitsch/blogkit/internal/common"
	"github.com/dtnitsch/blogkit/models"
	dbpkg "github.com/dtnitsch/blogkit/pkg/db"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// RunDetails is the YAML document printed by "runs show".
type RunDetails struct {
	Run      *dbpkg.Run           `yaml:"run"`
	Events   []dbpkg.FileEvent    `yaml:"events,omitempty"`
	Mentions []models.ToolMention `yaml:"mentions,omitempty"`
}

func ListAction(c *cli.Context) error {
	database, err := common.OpenDB(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	// Print table header
	fmt.Printf("%-10s %-20s %-8s %-6s %-7s %-8s %-30s\n",
		"ID", "Started", "Command", "Files", "Changed", "Failures", "Root")
	fmt.Println(strings.Repeat("-", 95))

	for _, r := range runs {
		command := r.Command
		if r.DryRun {
			command += "*"
		}
		fmt.Printf("%-10s %-20s %-8s %-6d %-7d %-8d %-30s\n",
			r.RunID[:8],
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			command,
			r.FilesSeen,
			r.FilesChanged,
			r.Failures,
			r.Root,
		)
	}

	fmt.Printf("\nTotal: %d runs (* = dry run)\n", len(runs))
	fmt.Printf("\nTip: Use 'blogkit runs show <id>' to see details\n")
	return nil
}

// ShowAction prints one run as YAML. Without an argument the latest run is shown.
func ShowAction(c *cli.Context) error {
	database, err := common.OpenDB(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	var run *dbpkg.Run
	if c.NArg() == 0 {
		latest, err := database.ListRuns(1)
		if err != nil {
			return err
		}
		if len(latest) == 0 {
			return cli.Exit("No runs found. Run 'blogkit tools' first", 1)
		}
		run = &latest[0]
	} else {
		run, err = database.GetRun(c.Args().First())
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	details := RunDetails{Run: run}
	if details.Events, err = database.RunEvents(run.RunID); err != nil {
		return err
	}
	if details.Mentions, err = database.RunMentions(run.RunID); err != nil {
		return err
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(details); err != nil {
		return fmt.Errorf("failed to encode run: %w", err)
	}
	return enc.Close()
}
