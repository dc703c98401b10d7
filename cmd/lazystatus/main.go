// Package main is the entry point for the lazystatus application.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazystatus/internal/app"
	"github.com/chmouel/lazystatus/internal/config"
	"github.com/chmouel/lazystatus/internal/git"
	"github.com/chmouel/lazystatus/internal/log"
	"github.com/chmouel/lazystatus/internal/theme"
	urfavecli "github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	cliApp := &urfavecli.App{
		Name:    "lazystatus",
		Usage:   "A TUI presenting git change status as a navigable tree",
		Version: version,

		Flags: globalFlags(),

		Commands: []*urfavecli.Command{
			catCommand(),
		},

		Action: runTUI,
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{Name: "config-file", Aliases: []string{"c"}, Usage: "Path to the configuration file"},
		&urfavecli.StringFlag{Name: "theme", Usage: "Theme name (" + strings.Join(theme.AvailableThemes(), ", ") + ")"},
		&urfavecli.StringFlag{Name: "debug-log", Usage: "Write debug output to this file"},
		&urfavecli.BoolFlag{Name: "flat", Usage: "Start in flat list mode instead of tree mode"},
		&urfavecli.BoolFlag{Name: "no-icons", Usage: "Disable Nerd Font icons"},
	}
}

// runTUI is the default action that launches the TUI when no subcommand is given.
func runTUI(c *urfavecli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	model := app.NewModel(cfg)
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err = p.Run()
	model.Close()
	if err != nil {
		_ = log.Close()
		return fmt.Errorf("running app: %w", err)
	}
	return log.Close()
}

// catCommand prints a file's content at a revision, using the same resolver
// the TUI uses.
func catCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "cat",
		Usage:     "Print a file's content at a revision (default HEAD)",
		ArgsUsage: "<file> [revision]",
		Action: func(c *urfavecli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("usage: lazystatus cat <file> [revision]")
			}
			filePath, err := filepath.Abs(c.Args().Get(0))
			if err != nil {
				return err
			}
			revision := c.Args().Get(1)
			if revision == "" {
				revision = "HEAD"
			}

			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			ctx := context.Background()
			resolver := git.NewResolver(git.NewRunner(cfg.Timeout()))

			gitRoot, err := resolver.GitRoot(ctx, filePath)
			if err != nil {
				return err
			}
			relPath, err := git.RelativePath(filePath, gitRoot)
			if err != nil {
				return err
			}
			hash, err := resolver.ResolveRevision(ctx, revision, gitRoot)
			if err != nil {
				return err
			}
			lines, err := resolver.FileContent(ctx, hash, gitRoot, relPath)
			if err != nil {
				return err
			}
			for _, line := range lines {
				fmt.Println(line)
			}
			return nil
		},
	}
}

// loadConfig loads the YAML config and applies CLI overrides, which take
// precedence, then sets up debug logging.
func loadConfig(c *urfavecli.Context) (*config.AppConfig, error) {
	cfg, err := config.LoadConfig(c.String("config-file"))
	if err != nil {
		return nil, err
	}

	if name := c.String("theme"); name != "" {
		cfg.Theme = name
	}
	if c.Bool("flat") {
		cfg.TreeView = false
	}
	if c.Bool("no-icons") {
		cfg.ShowIcons = false
	}
	if debugLog := c.String("debug-log"); debugLog != "" {
		cfg.DebugLog = debugLog
	}

	path := cfg.DebugLog
	if path != "" {
		if expanded, err := config.ExpandPath(path); err == nil {
			path = expanded
		}
	}
	if err := log.SetFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening debug log file %q: %v\n", path, err)
	}

	return cfg, nil
}
