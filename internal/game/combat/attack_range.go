package combat

// AttackLevelRange is the widest level gap across which two players may fight.
const AttackLevelRange = 7

// Attackable reports whether players at levels a and b may engage.
//
// Postcondition: Returns true iff |a-b| <= AttackLevelRange.
func Attackable(a, b int) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= AttackLevelRange
}

// MinAttackableLevel returns the lowest level a player at level may attack.
//
// Postcondition: Returns max(1, level-AttackLevelRange).
func MinAttackableLevel(level int) int {
	return max(1, level-AttackLevelRange)
}

// MaxAttackableLevel returns the highest level a player at level may attack.
func MaxAttackableLevel(level int) int {
	return level + AttackLevelRange
}
