// Package main provides the gamedata binary for inspecting balance tables,
// previewing player modifiers and running Lua balance scripts.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/darkthrone/darkthrone/internal/config"
	"github.com/darkthrone/darkthrone/internal/game/bonus"
	"github.com/darkthrone/darkthrone/internal/game/ruleset"
	"github.com/darkthrone/darkthrone/internal/observability"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app carries the state every subcommand shares once PersistentPreRunE ran.
type app struct {
	configPath string
	asYAML     bool

	cfg    config.Config
	logger *zap.Logger
	table  *ruleset.BonusTable
	engine *bonus.Engine
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "gamedata",
		Short: "Dark Throne balance tables and formulas",
		Long: `Prints the leveling curve, structure catalogs, unit catalog and bonus
modifiers, and runs Lua balance scripts against the same formulas.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to configuration file (defaults and DARKTHRONE_* env when empty)")
	root.PersistentFlags().BoolVar(&a.asYAML, "yaml", false, "emit YAML instead of tables")

	root.AddCommand(
		a.levelsCmd(),
		a.structuresCmd(),
		a.unitsCmd(),
		a.modifiersCmd(),
		a.attackRangeCmd(),
		a.scriptCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.Load(a.configPath)
	} else {
		a.cfg, err = config.Default()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	a.logger, err = observability.NewLogger(a.cfg.Logging, "gamedata")
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	a.table = ruleset.DefaultBonusTable()
	if path := a.cfg.Content.Bonuses; path != "" {
		a.table, err = ruleset.LoadBonusTable(path)
		if err != nil {
			return fmt.Errorf("loading bonus table: %w", err)
		}
		a.logger.Info("loaded bonus table", zap.String("path", path))
	}
	a.engine = bonus.NewEngine(a.table, a.logger)

	a.logger.Debug("gamedata ready",
		zap.String("command", cmd.Name()),
		zap.Bool("yaml", a.asYAML),
	)
	return nil
}

// render writes v as YAML when --yaml is set, otherwise header and rows as a table.
func (a *app) render(w io.Writer, title string, header []string, rows [][]string, v interface{}) error {
	if a.asYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	}

	if title != "" {
		color.New(color.FgCyan, color.Bold).Fprintln(w, title)
	}
	table := tablewriter.NewTable(w, tablewriter.WithHeader(header))
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("appending row: %w", err)
		}
	}
	return table.Render()
}
