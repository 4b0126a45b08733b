// Package character defines the player domain model and its projection onto
// the bonus engine.
package character

import (
	"time"

	"github.com/google/uuid"

	"github.com/darkthrone/darkthrone/internal/game/bonus"
	"github.com/darkthrone/darkthrone/internal/game/leveling"
	"github.com/darkthrone/darkthrone/internal/game/ruleset"
	"github.com/darkthrone/darkthrone/internal/game/structure"
)

// Structures holds the catalog index of each structure a player owns.
type Structures struct {
	Fortification int `yaml:"fortification"`
	Housing       int `yaml:"housing"`
}

// Player is a player's state as owned by the calling service.
//
// The engine never retains a *Player; it reads a Snapshot per call.
type Player struct {
	ID          uuid.UUID
	DisplayName string
	Race        ruleset.Race
	Class       ruleset.Class

	Experience  int
	Gold        int
	GoldInBank  int
	AttackTurns int

	Proficiency ruleset.ProficiencyPoints
	Structures  Structures
	Units       map[string]int // unit ID -> count

	CreatedAt time.Time
}

// Level returns the level the player's experience grants.
//
// Postcondition: Returns a level in [1, leveling.MaxLevel] or a range error
// when Experience is negative.
func (p *Player) Level() (int, error) {
	return leveling.LevelForXP(float64(p.Experience))
}

// Fortification returns the player's fortification tier.
// An index outside the catalog resolves to the baseline tier.
func (p *Player) Fortification() structure.Fortification {
	if f, ok := structure.FortificationAt(p.Structures.Fortification); ok {
		return f
	}
	f, _ := structure.FortificationAt(0)
	return f
}

// Housing returns the player's housing tier.
// An index outside the catalog resolves to the baseline tier.
func (p *Player) Housing() structure.Housing {
	if h, ok := structure.HousingAt(p.Structures.Housing); ok {
		return h
	}
	h, _ := structure.HousingAt(0)
	return h
}

// UnitCount returns how many units of id the player has.
func (p *Player) UnitCount(id string) int {
	return p.Units[id]
}

// Snapshot returns the fields the bonus engine reads.
func (p *Player) Snapshot() bonus.Snapshot {
	return bonus.Snapshot{
		Race:          p.Race,
		Class:         p.Class,
		Proficiency:   p.Proficiency,
		Fortification: p.Fortification(),
	}
}
