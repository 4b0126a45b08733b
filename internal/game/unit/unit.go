// Package unit defines the trainable unit catalog.
package unit

import (
	"errors"
	"fmt"
)

// ErrUnknownUnit is returned for a unit ID that is not in the catalog.
var ErrUnknownUnit = errors.New("unknown unit")

// Type is the battlefield role of a unit.
type Type string

const (
	TypeSupport Type = "support"
	TypeOffense Type = "offense"
	TypeDefense Type = "defense"
)

// Unit describes one unit kind.
type Unit struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Type        Type   `yaml:"type"`
	Attack      int    `yaml:"attack"`
	Defense     int    `yaml:"defense"`
	Cost        int    `yaml:"cost"`
	GoldPerTurn int    `yaml:"gold_per_turn"`
	CanTrain    bool   `yaml:"can_train"`
	CanUntrain  bool   `yaml:"can_untrain"`
}

// Catalog IDs.
const (
	Citizen = "citizen"
	Worker  = "worker"
	Soldier = "soldier_1"
	Guard   = "guard_1"
)

var catalog = []Unit{
	{ID: Citizen, Name: "Citizen", Type: TypeSupport},
	{ID: Worker, Name: "Worker", Type: TypeSupport, Cost: 1000, GoldPerTurn: 50, CanTrain: true, CanUntrain: true},
	{ID: Soldier, Name: "Soldier", Type: TypeOffense, Attack: 3, Cost: 1500, CanTrain: true, CanUntrain: true},
	{ID: Guard, Name: "Guard", Type: TypeDefense, Defense: 3, Cost: 1500, CanTrain: true, CanUntrain: true},
}

var byID = func() map[string]Unit {
	m := make(map[string]Unit, len(catalog))
	for _, u := range catalog {
		m[u.ID] = u
	}
	return m
}()

// All returns a copy of the catalog in display order.
func All() []Unit {
	return append([]Unit(nil), catalog...)
}

// Lookup returns the unit with the given ID.
//
// Postcondition: ok is true iff id is in the catalog.
func Lookup(id string) (u Unit, ok bool) {
	u, ok = byID[id]
	return u, ok
}

// Trainable returns the unit with the given ID if it can be trained.
//
// Postcondition: Returns an error wrapping ErrUnknownUnit for an unknown id,
// or a plain error if the unit cannot be trained.
func Trainable(id string) (Unit, error) {
	u, ok := byID[id]
	if !ok {
		return Unit{}, fmt.Errorf("unit: %q: %w", id, ErrUnknownUnit)
	}
	if !u.CanTrain {
		return Unit{}, fmt.Errorf("unit: %q cannot be trained", id)
	}
	return u, nil
}
