package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/darkthrone/darkthrone/internal/game/bonus"
	"github.com/darkthrone/darkthrone/internal/game/combat"
	"github.com/darkthrone/darkthrone/internal/game/leveling"
	"github.com/darkthrone/darkthrone/internal/game/ruleset"
	"github.com/darkthrone/darkthrone/internal/game/structure"
)

// RegisterModules defines the gamedata global table in L.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: gamedata and gamedata.log are defined in L.
func (r *Runner) RegisterModules(L *lua.LState) {
	mod := L.NewTable()
	L.SetFuncs(mod, map[string]lua.LGFunction{
		"xp_for_level":         luaXPForLevel,
		"level_for_xp":         luaLevelForXP,
		"xp_to_next_level":     luaXPToNextLevel,
		"attackable":           luaAttackable,
		"min_attackable_level": luaMinAttackableLevel,
		"max_attackable_level": luaMaxAttackableLevel,
		"int_bonus":            luaIntBonus,
		"apply_bonus":          luaApplyBonus,
		"fortification":        luaFortification,
		"housing":              luaHousing,
		"fortification_count":  luaFortificationCount,
		"housing_count":        luaHousingCount,
		"race_bonus":           r.luaRaceBonus,
		"class_bonus":          r.luaClassBonus,
	})
	L.SetField(mod, "max_level", lua.LNumber(leveling.MaxLevel))
	L.SetField(mod, "attack_level_range", lua.LNumber(combat.AttackLevelRange))

	logTbl := L.NewTable()
	L.SetFuncs(logTbl, map[string]lua.LGFunction{
		"debug": r.luaLog(zap.DebugLevel),
		"info":  r.luaLog(zap.InfoLevel),
		"warn":  r.luaLog(zap.WarnLevel),
		"error": r.luaLog(zap.ErrorLevel),
	})
	L.SetField(mod, "log", logTbl)

	L.SetGlobal("gamedata", mod)
}

// luaXPForLevel range-checks the raw number so a fractional level above the
// cap cannot truncate into range.
func luaXPForLevel(L *lua.LState) int {
	n := float64(L.CheckNumber(1))
	if n < 1 || n > leveling.MaxLevel {
		err := &leveling.RangeError{
			Op:    "XPForLevel",
			Value: n,
			Msg:   fmt.Sprintf("level must be between 1 and %d", leveling.MaxLevel),
		}
		L.RaiseError("%s", err.Error())
		return 0
	}
	xp, err := leveling.XPForLevel(int(n))
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LNumber(xp))
	return 1
}

// xpArg returns argument 1 as xp; anything but a number counts as 0.
func xpArg(L *lua.LState) float64 {
	if n, ok := L.Get(1).(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

func luaLevelForXP(L *lua.LState) int {
	level, err := leveling.LevelForXP(xpArg(L))
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LNumber(level))
	return 1
}

func luaXPToNextLevel(L *lua.LState) int {
	xp, err := leveling.XPToNextLevel(xpArg(L))
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LNumber(xp))
	return 1
}

func luaAttackable(L *lua.LState) int {
	L.Push(lua.LBool(combat.Attackable(L.CheckInt(1), L.CheckInt(2))))
	return 1
}

func luaMinAttackableLevel(L *lua.LState) int {
	L.Push(lua.LNumber(combat.MinAttackableLevel(L.CheckInt(1))))
	return 1
}

func luaMaxAttackableLevel(L *lua.LState) int {
	L.Push(lua.LNumber(combat.MaxAttackableLevel(L.CheckInt(1))))
	return 1
}

// numbersFrom collects arguments first..top as float64.
func numbersFrom(L *lua.LState, first int) []float64 {
	var out []float64
	for i := first; i <= L.GetTop(); i++ {
		out = append(out, float64(L.CheckNumber(i)))
	}
	return out
}

func luaIntBonus(L *lua.LState) int {
	additive := L.CheckBool(1)
	L.Push(lua.LNumber(bonus.IntBonus(additive, numbersFrom(L, 2)...)))
	return 1
}

func luaApplyBonus(L *lua.LState) int {
	additive := L.CheckBool(1)
	stat := float64(L.CheckNumber(2))
	L.Push(lua.LNumber(bonus.ApplyBonus(additive, stat, numbersFrom(L, 3)...)))
	return 1
}

func luaFortification(L *lua.LState) int {
	f, ok := structure.FortificationAt(L.CheckInt(1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	t := L.NewTable()
	L.SetField(t, "name", lua.LString(f.Name))
	L.SetField(t, "index", lua.LNumber(f.Index))
	L.SetField(t, "level_requirement", lua.LNumber(f.LevelRequirement))
	L.SetField(t, "cost", lua.LNumber(f.Cost))
	L.SetField(t, "defence_bonus_percentage", lua.LNumber(f.DefenceBonusPercentage))
	L.SetField(t, "gold_per_turn", lua.LNumber(f.GoldPerTurn))
	L.SetField(t, "required_fortification_level", lua.LNumber(f.RequiredFortificationLevel))
	L.Push(t)
	return 1
}

func luaHousing(L *lua.LState) int {
	h, ok := structure.HousingAt(L.CheckInt(1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	t := L.NewTable()
	L.SetField(t, "name", lua.LString(h.Name))
	L.SetField(t, "index", lua.LNumber(h.Index))
	L.SetField(t, "required_fortification_level", lua.LNumber(h.RequiredFortificationLevel))
	L.SetField(t, "cost", lua.LNumber(h.Cost))
	L.SetField(t, "citizens_per_day", lua.LNumber(h.CitizensPerDay))
	L.Push(t)
	return 1
}

func luaFortificationCount(L *lua.LState) int {
	L.Push(lua.LNumber(len(structure.Fortifications())))
	return 1
}

func luaHousingCount(L *lua.LState) int {
	L.Push(lua.LNumber(len(structure.Housings())))
	return 1
}

func bonusTable(L *lua.LState, b ruleset.BonusStats) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "offense", lua.LNumber(b.Offense))
	L.SetField(t, "defense", lua.LNumber(b.Defense))
	L.SetField(t, "income", lua.LNumber(b.Income))
	L.SetField(t, "intelligence", lua.LNumber(b.Intelligence))
	return t
}

// Unknown races and classes yield an all-zero table.
func (r *Runner) luaRaceBonus(L *lua.LState) int {
	b, _ := r.table.RaceBonus(ruleset.Race(L.CheckString(1)))
	L.Push(bonusTable(L, b))
	return 1
}

func (r *Runner) luaClassBonus(L *lua.LState) int {
	b, _ := r.table.ClassBonus(ruleset.Class(L.CheckString(1)))
	L.Push(bonusTable(L, b))
	return 1
}

func (r *Runner) luaLog(level zapcore.Level) lua.LGFunction {
	return func(L *lua.LState) int {
		msg := L.CheckString(1)
		if ce := r.logger.Check(level, msg); ce != nil {
			ce.Write(zap.String("source", "lua"))
		}
		return 0
	}
}
