// Package combat holds the rules deciding who may fight whom and how strong
// each side's army is.
package combat

import (
	"errors"
	"fmt"

	"github.com/darkthrone/darkthrone/internal/game/bonus"
	"github.com/darkthrone/darkthrone/internal/game/character"
	"github.com/darkthrone/darkthrone/internal/game/unit"
)

var (
	// ErrSelfAttack is returned when a player targets themself.
	ErrSelfAttack = errors.New("cannot attack yourself")
	// ErrNoAttackTurns is returned when the attacker has no attack turns left.
	ErrNoAttackTurns = errors.New("no attack turns remaining")
	// ErrLevelGap is returned when the level difference exceeds AttackLevelRange.
	ErrLevelGap = errors.New("target level outside attackable range")
)

// CanAttack checks whether attacker may attack defender now.
//
// Precondition: attacker and defender must be non-nil.
// Postcondition: Returns nil, or an error wrapping one of ErrSelfAttack,
// ErrNoAttackTurns, ErrLevelGap, or a leveling range error.
func CanAttack(attacker, defender *character.Player) error {
	if attacker.ID == defender.ID {
		return ErrSelfAttack
	}
	if attacker.AttackTurns < 1 {
		return ErrNoAttackTurns
	}
	al, err := attacker.Level()
	if err != nil {
		return fmt.Errorf("combat: attacker level: %w", err)
	}
	dl, err := defender.Level()
	if err != nil {
		return fmt.Errorf("combat: defender level: %w", err)
	}
	if !Attackable(al, dl) {
		return fmt.Errorf("combat: levels %d and %d: %w", al, dl, ErrLevelGap)
	}
	return nil
}

// baseStat sums count*pick(u) over the unit catalog.
func baseStat(p *character.Player, pick func(unit.Unit) int) int {
	total := 0
	for _, u := range unit.All() {
		total += p.UnitCount(u.ID) * pick(u)
	}
	return total
}

// OffensePower returns the player's total unit attack with the attack modifier
// applied additively.
//
// Precondition: e and p must be non-nil.
func OffensePower(e *bonus.Engine, p *character.Player) float64 {
	base := baseStat(p, func(u unit.Unit) int { return u.Attack })
	return bonus.ApplyBonus(true, float64(base), e.AttackModifier(p.Snapshot()))
}

// DefensePower returns the player's total unit defense with the defence
// modifier applied additively.
//
// Precondition: e and p must be non-nil.
func DefensePower(e *bonus.Engine, p *character.Player) float64 {
	base := baseStat(p, func(u unit.Unit) int { return u.Defense })
	return bonus.ApplyBonus(true, float64(base), e.DefenceModifier(p.Snapshot()))
}
