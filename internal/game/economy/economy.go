// Package economy turns catalog values into per-turn income and purchase
// prices through the bonus engine.
package economy

import (
	"errors"
	"fmt"
	"math"

	"github.com/darkthrone/darkthrone/internal/game/bonus"
	"github.com/darkthrone/darkthrone/internal/game/character"
	"github.com/darkthrone/darkthrone/internal/game/structure"
	"github.com/darkthrone/darkthrone/internal/game/unit"
)

// ErrInvalidQuantity is returned for a purchase quantity below 1.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// BaseGoldPerTurn returns the unmodified gold a player earns each turn:
// the fortification's gold per turn plus every unit's gold per turn.
func BaseGoldPerTurn(p *character.Player) int {
	total := p.Fortification().GoldPerTurn
	for _, u := range unit.All() {
		total += p.UnitCount(u.ID) * u.GoldPerTurn
	}
	return total
}

// GoldPerTurn returns BaseGoldPerTurn with the income modifier applied
// additively, truncated to whole gold.
//
// Precondition: e and p must be non-nil.
func GoldPerTurn(e *bonus.Engine, p *character.Player) int {
	base := BaseGoldPerTurn(p)
	return int(math.Floor(bonus.ApplyBonus(true, float64(base), e.IncomeModifier(p.Snapshot()))))
}

// discounted applies the cost modifier subtractively and truncates.
func discounted(e *bonus.Engine, p *character.Player, cost int) int {
	return int(math.Floor(bonus.ApplyBonus(false, float64(cost), e.CostModifier(p.Snapshot()))))
}

// UnitCost returns the price p pays for quantity units of unitID.
//
// Precondition: e and p must be non-nil.
// Postcondition: Returns the discounted price, or an error wrapping
// unit.ErrUnknownUnit or ErrInvalidQuantity.
func UnitCost(e *bonus.Engine, p *character.Player, unitID string, quantity int) (int, error) {
	if quantity < 1 {
		return 0, fmt.Errorf("economy: UnitCost %q x%d: %w", unitID, quantity, ErrInvalidQuantity)
	}
	u, err := unit.Trainable(unitID)
	if err != nil {
		return 0, fmt.Errorf("economy: UnitCost: %w", err)
	}
	return discounted(e, p, u.Cost*quantity), nil
}

// FortificationUpgradeCost returns the price of the player's next
// fortification tier and that tier.
//
// Postcondition: ok is false when the player already holds the last tier.
func FortificationUpgradeCost(e *bonus.Engine, p *character.Player) (cost int, next structure.Fortification, ok bool) {
	next, ok = structure.NextFortification(p.Fortification().Index)
	if !ok {
		return 0, structure.Fortification{}, false
	}
	return discounted(e, p, next.Cost), next, true
}

// HousingUpgradeCost returns the price of the player's next housing tier and
// that tier.
//
// Postcondition: ok is false when the player already holds the last tier.
func HousingUpgradeCost(e *bonus.Engine, p *character.Player) (cost int, next structure.Housing, ok bool) {
	next, ok = structure.NextHousing(p.Housing().Index)
	if !ok {
		return 0, structure.Housing{}, false
	}
	return discounted(e, p, next.Cost), next, true
}

// CitizensPerDay returns the citizens the player's housing produces each day.
func CitizensPerDay(p *character.Player) int {
	return p.Housing().CitizensPerDay
}
