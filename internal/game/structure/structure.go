// Package structure holds the fortification and housing upgrade catalogs.
//
// Every derived field of a tier is a pure function of its 0-based index in the
// catalog. Fortification costs are the exception: they come from a literal
// table because they follow no closed form.
package structure

// Type distinguishes the two upgrade catalogs.
type Type string

const (
	TypeFortification Type = "fortification"
	TypeHousing       Type = "housing"
)

// Fortification is one tier of the fortification catalog.
type Fortification struct {
	Name                       string `yaml:"name"`
	Index                      int    `yaml:"index"`
	LevelRequirement           int    `yaml:"level_requirement"`
	Cost                       int    `yaml:"cost"`
	DefenceBonusPercentage     int    `yaml:"defence_bonus_percentage"`
	GoldPerTurn                int    `yaml:"gold_per_turn"`
	RequiredFortificationLevel int    `yaml:"required_fortification_level"`
}

// Type returns TypeFortification.
func (Fortification) Type() Type { return TypeFortification }

// Housing is one tier of the housing catalog.
type Housing struct {
	Name                       string `yaml:"name"`
	Index                      int    `yaml:"index"`
	RequiredFortificationLevel int    `yaml:"required_fortification_level"`
	Cost                       int    `yaml:"cost"`
	CitizensPerDay             int    `yaml:"citizens_per_day"`
}

// Type returns TypeHousing.
func (Housing) Type() Type { return TypeHousing }

type fortificationSeed struct {
	name string
	cost int
}

var fortificationSeeds = []fortificationSeed{
	{"Manor", 0},
	{"Village", 100_000},
	{"Town", 250_000},
	{"Outpost", 500_000},
	{"Outpost Level 2", 1_000_000},
	{"Outpost Level 3", 2_000_000},
	{"Stronghold", 3_000_000},
	{"Stronghold Level 2", 4_000_000},
	{"Stronghold Level 3", 5_000_000},
	{"Fortress", 7_500_000},
	{"Fortress Level 2", 10_000_000},
	{"Fortress Level 3", 15_000_000},
	{"Citadel", 20_000_000},
	{"Citadel Level 2", 30_000_000},
	{"Citadel Level 3", 40_000_000},
	{"Castle", 50_000_000},
	{"Castle Level 2", 75_000_000},
	{"Castle Level 3", 100_000_000},
	{"Kingdom", 150_000_000},
	{"Kingdom Level 2", 200_000_000},
	{"Kingdom Level 3", 250_000_000},
	{"Empire", 300_000_000},
	{"Empire Level 2", 350_000_000},
	{"Empire Level 3", 400_000_000},
}

var housingNames = []string{
	"Hovel",
	"Hut",
	"Cottage",
	"Longhouse",
	"Manor House",
	"Keep",
	"Great Hall",
}

func fortificationLevelRequirement(i int) int {
	if i == 0 {
		return 1
	}
	return 5 * i
}

func fortificationDefenceBonusPercentage(i int) int { return 5*i + 5 }

func fortificationGoldPerTurn(i int) int { return 1000*i + 1000 }

// housingRequiredFortificationLevel is f(x) = {x=0: 0, x>0: 4x-2}.
func housingRequiredFortificationLevel(i int) int {
	if i == 0 {
		return 0
	}
	return 4*i - 2
}

// housingCost is f(x) = {x<=3: 500000x, x>=4: 250000x² - 1250000x + 3500000}.
// The two pieces do not meet at the boundary; both are kept literally.
func housingCost(i int) int {
	if i <= 3 {
		return 500_000 * i
	}
	return 250_000*i*i - 1_250_000*i + 3_500_000
}

func housingCitizensPerDay(i int) int {
	if i == 0 {
		return 1
	}
	return 10 * i
}

func buildFortifications() []Fortification {
	out := make([]Fortification, len(fortificationSeeds))
	for i, s := range fortificationSeeds {
		out[i] = Fortification{
			Name:                       s.name,
			Index:                      i,
			LevelRequirement:           fortificationLevelRequirement(i),
			Cost:                       s.cost,
			DefenceBonusPercentage:     fortificationDefenceBonusPercentage(i),
			GoldPerTurn:                fortificationGoldPerTurn(i),
			RequiredFortificationLevel: 0,
		}
	}
	return out
}

func buildHousings() []Housing {
	out := make([]Housing, len(housingNames))
	for i, name := range housingNames {
		out[i] = Housing{
			Name:                       name,
			Index:                      i,
			RequiredFortificationLevel: housingRequiredFortificationLevel(i),
			Cost:                       housingCost(i),
			CitizensPerDay:             housingCitizensPerDay(i),
		}
	}
	return out
}

// Built once; never written after package initialisation.
var (
	fortifications = buildFortifications()
	housings       = buildHousings()
)

// Fortifications returns a copy of the fortification catalog ordered by index.
func Fortifications() []Fortification {
	return append([]Fortification(nil), fortifications...)
}

// Housings returns a copy of the housing catalog ordered by index.
func Housings() []Housing {
	return append([]Housing(nil), housings...)
}

// FortificationAt returns the fortification tier at index i.
//
// Postcondition: ok is false iff i is outside the catalog.
func FortificationAt(i int) (f Fortification, ok bool) {
	if i < 0 || i >= len(fortifications) {
		return Fortification{}, false
	}
	return fortifications[i], true
}

// HousingAt returns the housing tier at index i.
//
// Postcondition: ok is false iff i is outside the catalog.
func HousingAt(i int) (h Housing, ok bool) {
	if i < 0 || i >= len(housings) {
		return Housing{}, false
	}
	return housings[i], true
}

// NextFortification returns the tier after index i, if there is one.
func NextFortification(i int) (Fortification, bool) {
	if i < 0 {
		return Fortification{}, false
	}
	return FortificationAt(i + 1)
}

// NextHousing returns the tier after index i, if there is one.
func NextHousing(i int) (Housing, bool) {
	if i < 0 {
		return Housing{}, false
	}
	return HousingAt(i + 1)
}

// CanUpgradeHousing reports whether a player holding fortification tier
// fortificationIndex meets the requirement of housing tier h.
func CanUpgradeHousing(h Housing, fortificationIndex int) bool {
	return fortificationIndex >= h.RequiredFortificationLevel
}

// CanUpgradeFortification reports whether a player at level meets the level
// requirement of fortification tier f.
func CanUpgradeFortification(f Fortification, level int) bool {
	return level >= f.LevelRequirement
}
