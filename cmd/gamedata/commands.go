package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/darkthrone/darkthrone/internal/game/bonus"
	"github.com/darkthrone/darkthrone/internal/game/character"
	"github.com/darkthrone/darkthrone/internal/game/combat"
	"github.com/darkthrone/darkthrone/internal/game/economy"
	"github.com/darkthrone/darkthrone/internal/game/leveling"
	"github.com/darkthrone/darkthrone/internal/game/ruleset"
	"github.com/darkthrone/darkthrone/internal/game/structure"
	"github.com/darkthrone/darkthrone/internal/game/unit"
	"github.com/darkthrone/darkthrone/internal/scripting"
)

type levelRow struct {
	Level  int `yaml:"level"`
	XP     int `yaml:"xp"`
	ToNext int `yaml:"to_next"`
}

func (a *app) levelsCmd() *cobra.Command {
	var from, to int
	cmd := &cobra.Command{
		Use:   "levels",
		Short: "Print the experience curve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if from > to {
				return fmt.Errorf("--from %d is greater than --to %d", from, to)
			}
			var data []levelRow
			var rows [][]string
			for l := from; l <= to; l++ {
				xp, err := leveling.XPForLevel(l)
				if err != nil {
					return err
				}
				next, err := leveling.XPToNextLevel(float64(xp))
				if err != nil {
					return err
				}
				data = append(data, levelRow{Level: l, XP: xp, ToNext: next})
				rows = append(rows, []string{strconv.Itoa(l), strconv.Itoa(xp), strconv.Itoa(next)})
			}
			return a.render(cmd.OutOrStdout(), "Experience curve", []string{"Level", "XP", "To next"}, rows, data)
		},
	}
	cmd.Flags().IntVar(&from, "from", 1, "first level to print")
	cmd.Flags().IntVar(&to, "to", leveling.MaxLevel, "last level to print")
	return cmd
}

func (a *app) structuresCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "structures [fortification|housing]",
		Short:     "Print the structure upgrade catalogs",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(structure.TypeFortification), string(structure.TypeHousing)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := []structure.Type{structure.TypeFortification, structure.TypeHousing}
			if len(args) == 1 {
				kinds = []structure.Type{structure.Type(args[0])}
			}
			for _, k := range kinds {
				var err error
				switch k {
				case structure.TypeFortification:
					err = a.renderFortifications(cmd)
				case structure.TypeHousing:
					err = a.renderHousings(cmd)
				}
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) renderFortifications(cmd *cobra.Command) error {
	forts := structure.Fortifications()
	rows := make([][]string, 0, len(forts))
	for _, f := range forts {
		rows = append(rows, []string{
			strconv.Itoa(f.Index),
			f.Name,
			strconv.Itoa(f.LevelRequirement),
			strconv.Itoa(f.Cost),
			fmt.Sprintf("%d%%", f.DefenceBonusPercentage),
			strconv.Itoa(f.GoldPerTurn),
		})
	}
	return a.render(cmd.OutOrStdout(), "Fortifications",
		[]string{"Index", "Name", "Level", "Cost", "Defence", "Gold/turn"}, rows, forts)
}

func (a *app) renderHousings(cmd *cobra.Command) error {
	hs := structure.Housings()
	rows := make([][]string, 0, len(hs))
	for _, h := range hs {
		rows = append(rows, []string{
			strconv.Itoa(h.Index),
			h.Name,
			strconv.Itoa(h.RequiredFortificationLevel),
			strconv.Itoa(h.Cost),
			strconv.Itoa(h.CitizensPerDay),
		})
	}
	return a.render(cmd.OutOrStdout(), "Housing",
		[]string{"Index", "Name", "Fortification", "Cost", "Citizens/day"}, rows, hs)
}

func (a *app) unitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "units",
		Short: "Print the unit catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			units := unit.All()
			rows := make([][]string, 0, len(units))
			for _, u := range units {
				rows = append(rows, []string{
					u.ID, u.Name, string(u.Type),
					strconv.Itoa(u.Attack), strconv.Itoa(u.Defense),
					strconv.Itoa(u.Cost), strconv.Itoa(u.GoldPerTurn),
					strconv.FormatBool(u.CanTrain),
				})
			}
			return a.render(cmd.OutOrStdout(), "Units",
				[]string{"ID", "Name", "Type", "Attack", "Defense", "Cost", "Gold/turn", "Trainable"}, rows, units)
		},
	}
}

type preview struct {
	Level       int              `yaml:"level"`
	Modifiers   bonus.Modifiers  `yaml:"modifiers"`
	GoldPerTurn int              `yaml:"gold_per_turn"`
	Offense     float64          `yaml:"offense"`
	Defense     float64          `yaml:"defense"`
	UnitCosts   map[string]int   `yaml:"unit_costs"`
	Structures  structurePreview `yaml:"structures"`
}

type structurePreview struct {
	Fortification string `yaml:"fortification"`
	Housing       string `yaml:"housing"`
}

func (a *app) modifiersCmd() *cobra.Command {
	var (
		race, class string
		xp          int
		prof        ruleset.ProficiencyPoints
		structs     character.Structures
		units       map[string]int
	)
	cmd := &cobra.Command{
		Use:   "modifiers",
		Short: "Preview a player's modifiers, income and army strength",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := ruleset.ParseRace(race)
			if err != nil {
				return err
			}
			c, err := ruleset.ParseClass(class)
			if err != nil {
				return err
			}
			p, err := character.New("preview", r, c)
			if err != nil {
				return err
			}
			p.Experience = xp
			p.Proficiency = prof
			p.Structures = structs
			for id, n := range units {
				if _, ok := unit.Lookup(id); !ok {
					return fmt.Errorf("unit %q: %w", id, unit.ErrUnknownUnit)
				}
				p.Units[id] = n
			}

			out, err := a.buildPreview(p)
			if err != nil {
				return err
			}
			rows := [][]string{
				{"Level", strconv.Itoa(out.Level)},
				{"Fortification", out.Structures.Fortification},
				{"Housing", out.Structures.Housing},
				{"Attack modifier", fmt.Sprintf("%d%%", out.Modifiers.Attack)},
				{"Defence modifier", fmt.Sprintf("%d%%", out.Modifiers.Defence)},
				{"Income modifier", fmt.Sprintf("%d%%", out.Modifiers.Income)},
				{"Cost modifier", fmt.Sprintf("%d%%", out.Modifiers.Cost)},
				{"Gold per turn", strconv.Itoa(out.GoldPerTurn)},
				{"Offense", strconv.FormatFloat(out.Offense, 'f', -1, 64)},
				{"Defense", strconv.FormatFloat(out.Defense, 'f', -1, 64)},
			}
			for _, u := range unit.All() {
				if cost, ok := out.UnitCosts[u.ID]; ok {
					rows = append(rows, []string{u.Name + " cost", strconv.Itoa(cost)})
				}
			}
			return a.render(cmd.OutOrStdout(), fmt.Sprintf("%s %s", r, c), []string{"Stat", "Value"}, rows, out)
		},
	}
	f := cmd.Flags()
	f.StringVar(&race, "race", string(ruleset.RaceHuman), "player race")
	f.StringVar(&class, "class", string(ruleset.ClassFighter), "player class")
	f.IntVar(&xp, "xp", 0, "experience points")
	f.IntVar(&prof.Strength, "strength", 0, "strength proficiency points")
	f.IntVar(&prof.Constitution, "constitution", 0, "constitution proficiency points")
	f.IntVar(&prof.Wealth, "wealth", 0, "wealth proficiency points")
	f.IntVar(&prof.Charisma, "charisma", 0, "charisma proficiency points")
	f.IntVar(&structs.Fortification, "fortification", 0, "fortification catalog index")
	f.IntVar(&structs.Housing, "housing", 0, "housing catalog index")
	f.StringToIntVar(&units, "unit", nil, "unit counts, e.g. --unit worker=10,soldier_1=5")
	return cmd
}

func (a *app) buildPreview(p *character.Player) (preview, error) {
	level, err := p.Level()
	if err != nil {
		return preview{}, err
	}
	out := preview{
		Level:       level,
		Modifiers:   a.engine.Modifiers(p.Snapshot()),
		GoldPerTurn: economy.GoldPerTurn(a.engine, p),
		Offense:     combat.OffensePower(a.engine, p),
		Defense:     combat.DefensePower(a.engine, p),
		UnitCosts:   make(map[string]int),
		Structures: structurePreview{
			Fortification: p.Fortification().Name,
			Housing:       p.Housing().Name,
		},
	}
	for _, u := range unit.All() {
		if !u.CanTrain {
			continue
		}
		cost, err := economy.UnitCost(a.engine, p, u.ID, 1)
		if err != nil {
			return preview{}, err
		}
		out.UnitCosts[u.ID] = cost
	}
	return out, nil
}

type attackRange struct {
	Level int `yaml:"level"`
	Min   int `yaml:"min"`
	Max   int `yaml:"max"`
}

func (a *app) attackRangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attack-range <level>",
		Short: "Print the levels a player may attack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("level %q: %w", args[0], err)
			}
			if _, err := leveling.XPForLevel(level); err != nil {
				return err
			}
			r := attackRange{
				Level: level,
				Min:   combat.MinAttackableLevel(level),
				Max:   combat.MaxAttackableLevel(level),
			}
			rows := [][]string{{strconv.Itoa(r.Level), strconv.Itoa(r.Min), strconv.Itoa(r.Max)}}
			return a.render(cmd.OutOrStdout(), "", []string{"Level", "Min", "Max"}, rows, r)
		},
	}
}

func (a *app) scriptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "script <file.lua>",
		Short: "Run a Lua balance script and print its result",
		Long: `Runs the script in a sandbox with the gamedata module loaded and prints
the value it returns as YAML.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := scripting.NewRunner(a.table, a.logger, a.cfg.Scripting.InstructionLimit)
			result, err := runner.RunFile(args[0])
			if err != nil {
				return err
			}
			a.logger.Info("script finished", zap.String("path", args[0]))

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(result); err != nil {
				return fmt.Errorf("encoding result: %w", err)
			}
			return enc.Close()
		},
	}
}
