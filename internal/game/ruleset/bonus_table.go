package ruleset

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BonusStats holds the percentage bonuses a race or class grants.
type BonusStats struct {
	Offense      int `yaml:"offense"`
	Defense      int `yaml:"defense"`
	Income       int `yaml:"income"`
	Intelligence int `yaml:"intelligence"`
}

// ProficiencyPoints are the points a player has spent on each proficiency.
type ProficiencyPoints struct {
	Strength     int `yaml:"strength"`
	Wealth       int `yaml:"wealth"`
	Charisma     int `yaml:"charisma"`
	Constitution int `yaml:"constitution"`
}

// Total returns the number of points spent across all proficiencies.
func (p ProficiencyPoints) Total() int {
	return p.Strength + p.Wealth + p.Charisma + p.Constitution
}

// BonusTable maps races and classes to their BonusStats.
//
// Invariant: a BonusTable is never mutated after construction; lookups are safe
// for concurrent use.
type BonusTable struct {
	races   map[Race]BonusStats
	classes map[Class]BonusStats
}

// DefaultBonusTable returns the built-in race and class bonuses.
//
// Postcondition: Every value of Races() and Classes() has an entry.
func DefaultBonusTable() *BonusTable {
	return &BonusTable{
		races: map[Race]BonusStats{
			RaceHuman:  {Offense: 5},
			RaceElf:    {Defense: 5},
			RaceGoblin: {Defense: 5},
			RaceUndead: {Offense: 5},
		},
		classes: map[Class]BonusStats{
			ClassFighter:  {Offense: 5},
			ClassCleric:   {Defense: 5},
			ClassThief:    {Income: 5},
			ClassAssassin: {Intelligence: 5},
		},
	}
}

// RaceBonus returns the bonus for r and whether r has an entry.
//
// Postcondition: Returns the zero BonusStats and false for an unknown race.
func (t *BonusTable) RaceBonus(r Race) (BonusStats, bool) {
	b, ok := t.races[r]
	return b, ok
}

// ClassBonus returns the bonus for c and whether c has an entry.
//
// Postcondition: Returns the zero BonusStats and false for an unknown class.
func (t *BonusTable) ClassBonus(c Class) (BonusStats, bool) {
	b, ok := t.classes[c]
	return b, ok
}

type bonusFile struct {
	Races   map[string]BonusStats `yaml:"races"`
	Classes map[string]BonusStats `yaml:"classes"`
}

// ErrDuplicateEntry is returned when two keys of a bonus file name the same
// race or class, e.g. "Human" and "human".
var ErrDuplicateEntry = errors.New("duplicate bonus entry")

// LoadBonusTable reads a YAML bonus table from path.
//
// The file holds two maps, races and classes, keyed by race or class name.
// Races or classes absent from the file contribute no bonus.
//
// Precondition: path must name a readable YAML file.
// Postcondition: Returns a table whose keys are all valid and distinct, or a non-nil error.
func LoadBonusTable(path string) (*BonusTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var f bonusFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing bonus table %s: %w", path, err)
	}

	t := &BonusTable{
		races:   make(map[Race]BonusStats, len(f.Races)),
		classes: make(map[Class]BonusStats, len(f.Classes)),
	}
	for name, b := range f.Races {
		r, err := ParseRace(name)
		if err != nil {
			return nil, fmt.Errorf("bonus table %s: %w", path, err)
		}
		if _, dup := t.races[r]; dup {
			return nil, fmt.Errorf("bonus table %s: race %q: %w", path, name, ErrDuplicateEntry)
		}
		t.races[r] = b
	}
	for name, b := range f.Classes {
		c, err := ParseClass(name)
		if err != nil {
			return nil, fmt.Errorf("bonus table %s: %w", path, err)
		}
		if _, dup := t.classes[c]; dup {
			return nil, fmt.Errorf("bonus table %s: class %q: %w", path, name, ErrDuplicateEntry)
		}
		t.classes[c] = b
	}
	return t, nil
}
