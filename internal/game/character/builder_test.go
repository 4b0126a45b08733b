package character_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/darkthrone/darkthrone/internal/game/character"
	"github.com/darkthrone/darkthrone/internal/game/leveling"
	"github.com/darkthrone/darkthrone/internal/game/ruleset"
	"github.com/darkthrone/darkthrone/internal/game/unit"
)

func TestNew_Defaults(t *testing.T) {
	p, err := character.New("  TestPlayer ", ruleset.RaceHuman, ruleset.ClassFighter)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, "TestPlayer", p.DisplayName)
	assert.Equal(t, ruleset.RaceHuman, p.Race)
	assert.Equal(t, ruleset.ClassFighter, p.Class)
	assert.NotNil(t, p.Units)
	assert.False(t, p.CreatedAt.IsZero())

	level, err := p.Level()
	require.NoError(t, err)
	assert.Equal(t, 1, level)
	assert.Equal(t, "Manor", p.Fortification().Name)
	assert.Equal(t, "Hovel", p.Housing().Name)
}

func TestNew_Rejects(t *testing.T) {
	_, err := character.New(" ", ruleset.RaceHuman, ruleset.ClassFighter)
	require.Error(t, err)

	_, err = character.New("x", "dwarf", ruleset.ClassFighter)
	assert.ErrorIs(t, err, ruleset.ErrUnknownRace)

	_, err = character.New("x", ruleset.RaceElf, "paladin")
	assert.ErrorIs(t, err, ruleset.ErrUnknownClass)
}

func TestNew_UniqueIDs(t *testing.T) {
	a, err := character.New("a", ruleset.RaceElf, ruleset.ClassCleric)
	require.NoError(t, err)
	b, err := character.New("b", ruleset.RaceElf, ruleset.ClassCleric)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestPlayer_Level(t *testing.T) {
	p := &character.Player{Experience: 8000}
	level, err := p.Level()
	require.NoError(t, err)
	assert.Equal(t, 3, level)

	p.Experience = -1
	_, err = p.Level()
	assert.ErrorIs(t, err, leveling.ErrOutOfRange)
}

func TestPlayer_StructuresOutOfRangeFallBack(t *testing.T) {
	p := &character.Player{Structures: character.Structures{Fortification: 99, Housing: -1}}
	assert.Equal(t, 0, p.Fortification().Index)
	assert.Equal(t, 0, p.Housing().Index)
}

func TestPlayer_Snapshot(t *testing.T) {
	p := &character.Player{
		Race:        ruleset.RaceGoblin,
		Class:       ruleset.ClassThief,
		Proficiency: ruleset.ProficiencyPoints{Wealth: 3},
		Structures:  character.Structures{Fortification: 2},
	}
	s := p.Snapshot()
	assert.Equal(t, ruleset.RaceGoblin, s.Race)
	assert.Equal(t, ruleset.ClassThief, s.Class)
	assert.Equal(t, 3, s.Proficiency.Wealth)
	assert.Equal(t, "Town", s.Fortification.Name)
	assert.Equal(t, 15, s.Fortification.DefenceBonusPercentage)
}

func TestPlayer_UnitCount(t *testing.T) {
	p := &character.Player{Units: map[string]int{unit.Worker: 12}}
	assert.Equal(t, 12, p.UnitCount(unit.Worker))
	assert.Equal(t, 0, p.UnitCount(unit.Guard))

	var empty character.Player
	assert.Equal(t, 0, empty.UnitCount(unit.Worker))
}

func TestProperty_SnapshotFortificationMatchesIndex(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		idx := rapid.IntRange(0, 23).Draw(rt, "fortification")
		p := &character.Player{Structures: character.Structures{Fortification: idx}}
		if got := p.Snapshot().Fortification.Index; got != idx {
			rt.Fatalf("snapshot fortification index %d, want %d", got, idx)
		}
	})
}
