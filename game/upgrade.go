package game

import (
	"fmt"
	"strings"
)

type UpgradeKind int

const (
	NoUpgrade UpgradeKind = iota
	Soldier
	Water
	Fire
	Air
	Earth
	Respec
)

var upgradeNames = map[UpgradeKind]string{
	NoUpgrade: "none",
	Soldier:   "soldier",
	Water:     "water",
	Fire:      "fire",
	Air:       "air",
	Earth:     "earth",
	Respec:    "respec",
}

func (k UpgradeKind) String() string {
	if name, ok := upgradeNames[k]; ok {
		return name
	}
	return fmt.Sprintf("upgrade(%d)", int(k))
}

// Elemental reports whether the upgrade is carried by a temple and has levels.
func (k UpgradeKind) Elemental() bool {
	return k == Water || k == Fire || k == Air || k == Earth
}

func ParseUpgrade(s string) (UpgradeKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for kind, name := range upgradeNames {
		if kind != NoUpgrade && name == s {
			return kind, nil
		}
	}
	return NoUpgrade, fmt.Errorf("%q: %w", s, ErrUnknownUpgrade)
}

// Upgrade is one entry of the build catalog. Costs and Effects are indexed by
// level; for soldiers the cost index is the number bought this turn.
type Upgrade struct {
	Kind        UpgradeKind
	Name        string
	Description string
	Costs       []int
	Effects     []int
}

// LevelNames holds the building name for each elemental upgrade level.
var LevelNames = []string{"Temple", "Cathedral"}

var catalog = []Upgrade{
	{Kind: Soldier, Name: "Extra soldier", Costs: soldierCosts(100)},
	{Kind: Water, Name: "X of Water", Description: "Income: X% more each turn.", Costs: []int{15, 25}, Effects: []int{20, 40}},
	{Kind: Fire, Name: "X of Fire", Description: "Attack: X invincible soldier(s).", Costs: []int{20, 30}, Effects: []int{1, 2}},
	{Kind: Air, Name: "X of Air", Description: "Move: X extra move(s) per turn.", Costs: []int{25, 35}, Effects: []int{1, 2}},
	{Kind: Earth, Name: "X of Earth", Description: "Defense: Always kill X invader(s).", Costs: []int{30, 45}, Effects: []int{1, 2}},
	{Kind: Respec, Name: "Rebuild temple", Description: "Switch to a different upgrade.", Costs: []int{0}},
}

func soldierCosts(n int) []int {
	costs := make([]int, n)
	for i := range costs {
		costs[i] = 8 + 4*i
	}
	return costs
}

// Catalog returns every buildable upgrade in display order.
func Catalog() []Upgrade {
	return catalog
}

func LookupUpgrade(kind UpgradeKind) (Upgrade, bool) {
	for _, u := range catalog {
		if u.Kind == kind {
			return u, true
		}
	}
	return Upgrade{}, false
}

// Cost returns the price of the given level, false when the level is off the table.
func (u Upgrade) Cost(level int) (int, bool) {
	if level < 0 || level >= len(u.Costs) {
		return 0, false
	}
	return u.Costs[level], true
}

func (u Upgrade) Effect(level int) int {
	if level < 0 || level >= len(u.Effects) {
		return 0
	}
	return u.Effects[level]
}

// Title renders the upgrade name for a level, e.g. "Cathedral of Fire".
func (u Upgrade) Title(level int) string {
	if !u.Kind.Elemental() || level < 0 || level >= len(LevelNames) {
		return u.Name
	}
	return strings.Replace(u.Name, "X", LevelNames[level], 1)
}

func (u Upgrade) Describe(level int) string {
	return strings.Replace(u.Description, "X", fmt.Sprint(u.Effect(level)), 1)
}
