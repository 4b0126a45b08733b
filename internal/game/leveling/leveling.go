// Package leveling maps experience points to player levels and back.
//
// The XP curve is 500L² + 1500L − 1000 for L ≥ 2; level 1 starts at 0 XP.
// LevelForXP inverts the curve with the quadratic formula rather than searching.
package leveling

import (
	"errors"
	"fmt"
	"math"
)

// MaxLevel is the level cap.
const MaxLevel = 100

// Coefficients of the XP curve a·L² + b·L + c.
const (
	coeffA = 500
	coeffB = 1500
	coeffC = -1000
)

// levelTwoXP is CalculateLevelXP(2); any smaller amount is level 1.
const levelTwoXP = 4000

// ErrOutOfRange is matched by every RangeError.
var ErrOutOfRange = errors.New("value out of range")

// RangeError reports an argument outside the domain of a leveling function.
type RangeError struct {
	Op    string
	Value float64
	Msg   string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("leveling: %s(%v): %s", e.Op, e.Value, e.Msg)
}

// Unwrap returns ErrOutOfRange.
func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// CalculateLevelXP returns the XP at which level begins, without range checks.
//
// Postcondition: Returns 0 for level <= 1.
func CalculateLevelXP(level int) int {
	if level <= 1 {
		return 0
	}
	l := float64(level)
	return int(math.Floor(coeffA*l*l + coeffB*l + coeffC))
}

// XPForLevel returns the XP at which level begins.
//
// Precondition: 1 <= level <= MaxLevel.
// Postcondition: Returns the XP threshold or a *RangeError.
func XPForLevel(level int) (int, error) {
	if level < 1 || level > MaxLevel {
		return 0, &RangeError{
			Op:    "XPForLevel",
			Value: float64(level),
			Msg:   fmt.Sprintf("level must be between 1 and %d", MaxLevel),
		}
	}
	return CalculateLevelXP(level), nil
}

// LevelForXP returns the level reached with xp experience points.
// NaN is treated as 0.
//
// Precondition: xp >= 0.
// Postcondition: Returns a level in [1, MaxLevel] or a *RangeError.
func LevelForXP(xp float64) (int, error) {
	if math.IsNaN(xp) {
		xp = 0
	}
	if xp < 0 {
		return 0, &RangeError{Op: "LevelForXP", Value: xp, Msg: "xp must be greater than or equal to 0"}
	}
	if xp < levelTwoXP {
		return 1, nil
	}

	c := coeffC - xp
	discriminant := coeffB*coeffB - 4*coeffA*c
	if discriminant < 0 {
		return 0, &RangeError{Op: "LevelForXP", Value: xp, Msg: "no valid level for the given xp"}
	}

	sqrtD := math.Sqrt(discriminant)
	root1 := (-coeffB + sqrtD) / (2 * coeffA)
	root2 := (-coeffB - sqrtD) / (2 * coeffA)
	level := math.Floor(math.Max(root1, root2))

	if level > MaxLevel {
		return MaxLevel, nil
	}
	return int(level), nil
}

// XPToNextLevel returns how much more XP is needed to reach the level after
// the one xp currently grants.
//
// Precondition: xp >= 0.
// Postcondition: Returns 0 at MaxLevel; otherwise a positive amount.
func XPToNextLevel(xp float64) (int, error) {
	level, err := LevelForXP(xp)
	if err != nil {
		return 0, err
	}
	if level >= MaxLevel {
		return 0, nil
	}
	if math.IsNaN(xp) {
		xp = 0
	}
	return int(math.Ceil(float64(CalculateLevelXP(level+1)) - xp)), nil
}
