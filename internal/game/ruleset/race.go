// Package ruleset defines the fixed races and classes of DarkThrone and the
// bonus tables attached to them.
package ruleset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRace is returned by ParseRace for a value outside the race set.
var ErrUnknownRace = errors.New("unknown race")

// ErrUnknownClass is returned by ParseClass for a value outside the class set.
var ErrUnknownClass = errors.New("unknown class")

// Race is a playable race.
type Race string

const (
	RaceHuman  Race = "human"
	RaceElf    Race = "elf"
	RaceGoblin Race = "goblin"
	RaceUndead Race = "undead"
)

// Races returns every playable race in display order.
func Races() []Race {
	return []Race{RaceHuman, RaceElf, RaceGoblin, RaceUndead}
}

// Valid reports whether r is one of the playable races.
func (r Race) Valid() bool {
	switch r {
	case RaceHuman, RaceElf, RaceGoblin, RaceUndead:
		return true
	}
	return false
}

// ParseRace converts s (case-insensitive, surrounding space ignored) to a Race.
//
// Postcondition: Returns a valid Race or an error wrapping ErrUnknownRace.
func ParseRace(s string) (Race, error) {
	r := Race(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("ruleset: ParseRace %q: %w", s, ErrUnknownRace)
	}
	return r, nil
}

// Class is a playable class.
type Class string

const (
	ClassFighter  Class = "fighter"
	ClassCleric   Class = "cleric"
	ClassThief    Class = "thief"
	ClassAssassin Class = "assassin"
)

// Classes returns every playable class in display order.
func Classes() []Class {
	return []Class{ClassFighter, ClassCleric, ClassThief, ClassAssassin}
}

// Valid reports whether c is one of the playable classes.
func (c Class) Valid() bool {
	switch c {
	case ClassFighter, ClassCleric, ClassThief, ClassAssassin:
		return true
	}
	return false
}

// ParseClass converts s (case-insensitive, surrounding space ignored) to a Class.
//
// Postcondition: Returns a valid Class or an error wrapping ErrUnknownClass.
func ParseClass(s string) (Class, error) {
	c := Class(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("ruleset: ParseClass %q: %w", s, ErrUnknownClass)
	}
	return c, nil
}
