package character

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/darkthrone/darkthrone/internal/game/ruleset"
)

// New constructs a level-1 player with no structures beyond the baseline tiers.
//
// Precondition: name must be non-blank; race and class must be valid.
// Postcondition: Returns a Player with a fresh ID, or a non-nil error.
func New(name string, race ruleset.Race, class ruleset.Class) (*Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("player display name must not be empty")
	}
	if !race.Valid() {
		return nil, ruleset.ErrUnknownRace
	}
	if !class.Valid() {
		return nil, ruleset.ErrUnknownClass
	}
	return &Player{
		ID:          uuid.New(),
		DisplayName: name,
		Race:        race,
		Class:       class,
		Units:       make(map[string]int),
		CreatedAt:   time.Now().UTC(),
	}, nil
}
