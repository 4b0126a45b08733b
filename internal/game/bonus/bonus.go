// Package bonus composes race, class, proficiency and structure bonuses into
// percentage modifiers and applies them to base stats.
package bonus

import (
	"math"

	"go.uber.org/zap"
	"golang.org/x/exp/constraints"

	"github.com/darkthrone/darkthrone/internal/game/ruleset"
	"github.com/darkthrone/darkthrone/internal/game/structure"
)

// Number is any value a bonus can be expressed in.
type Number interface {
	constraints.Integer | constraints.Float
}

// IntBonus sums bonuses and returns the percentage multiplier centred on 100:
// 100 + sum when additive, 100 - sum otherwise.
func IntBonus[N Number](additive bool, bonuses ...N) float64 {
	var total float64
	for _, b := range bonuses {
		total += float64(b)
	}
	if additive {
		return 100 + total
	}
	return 100 - total
}

// ApplyBonus scales stat by the IntBonus multiplier.
// The product is floored before dividing by 100; the order matters.
func ApplyBonus[N Number](additive bool, stat float64, bonuses ...N) float64 {
	return math.Floor(stat*IntBonus(additive, bonuses...)) / 100
}

// Snapshot is the read-only view of a player the engine needs.
type Snapshot struct {
	Race          ruleset.Race
	Class         ruleset.Class
	Proficiency   ruleset.ProficiencyPoints
	Fortification structure.Fortification
}

// Modifiers holds the four summed bonus values for a player.
type Modifiers struct {
	Attack  int `yaml:"attack"`
	Income  int `yaml:"income"`
	Cost    int `yaml:"cost"`
	Defence int `yaml:"defence"`
}

// Engine computes modifiers from a BonusTable.
//
// Engine holds no mutable state and is safe for concurrent use.
type Engine struct {
	table  *ruleset.BonusTable
	logger *zap.Logger
}

// NewEngine creates an Engine over table.
//
// Precondition: table and logger must be non-nil.
func NewEngine(table *ruleset.BonusTable, logger *zap.Logger) *Engine {
	if table == nil {
		panic("bonus.NewEngine: precondition violated: table must be non-nil")
	}
	if logger == nil {
		panic("bonus.NewEngine: precondition violated: logger must be non-nil")
	}
	return &Engine{table: table, logger: logger}
}

// Table returns the bonus table the engine reads.
func (e *Engine) Table() *ruleset.BonusTable {
	return e.table
}

func (e *Engine) raceBonus(r ruleset.Race) ruleset.BonusStats {
	b, ok := e.table.RaceBonus(r)
	if !ok {
		e.logger.Debug("no race bonus entry", zap.String("race", string(r)))
	}
	return b
}

func (e *Engine) classBonus(c ruleset.Class) ruleset.BonusStats {
	b, ok := e.table.ClassBonus(c)
	if !ok {
		e.logger.Debug("no class bonus entry", zap.String("class", string(c)))
	}
	return b
}

// AttackModifier returns race offense + class offense + strength.
func (e *Engine) AttackModifier(s Snapshot) int {
	bonus := 0
	bonus += e.raceBonus(s.Race).Offense
	bonus += e.classBonus(s.Class).Offense
	bonus += s.Proficiency.Strength
	return bonus
}

// IncomeModifier returns race income + class income + wealth.
func (e *Engine) IncomeModifier(s Snapshot) int {
	bonus := 0
	bonus += e.raceBonus(s.Race).Income
	bonus += e.classBonus(s.Class).Income
	bonus += s.Proficiency.Wealth
	return bonus
}

// CostModifier returns charisma. Race and class do not contribute.
func (e *Engine) CostModifier(s Snapshot) int {
	return s.Proficiency.Charisma
}

// DefenceModifier returns race defense + class defense + the fortification
// defence bonus + constitution.
func (e *Engine) DefenceModifier(s Snapshot) int {
	bonus := 0
	bonus += e.raceBonus(s.Race).Defense
	bonus += e.classBonus(s.Class).Defense
	bonus += s.Fortification.DefenceBonusPercentage
	bonus += s.Proficiency.Constitution
	return bonus
}

// Modifiers returns all four modifiers for s.
func (e *Engine) Modifiers(s Snapshot) Modifiers {
	return Modifiers{
		Attack:  e.AttackModifier(s),
		Income:  e.IncomeModifier(s),
		Cost:    e.CostModifier(s),
		Defence: e.DefenceModifier(s),
	}
}
