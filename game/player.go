package game

import (
	"fmt"
	"strings"
)

// Controller says who picks moves for a player.
type Controller int

const (
	HumanController Controller = iota
	AIController
)

func (c Controller) String() string {
	if c == AIController {
		return "ai"
	}
	return "human"
}

func ParseController(s string) (Controller, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "human":
		return HumanController, nil
	case "ai", "cpu":
		return AIController, nil
	default:
		return HumanController, fmt.Errorf("unknown controller %q", s)
	}
}

// Level is the AI difficulty, it changes how the heuristic sees threats.
type Level int

const (
	Nice Level = iota
	Rude
	Mean
	Evil
)

var levelNames = []string{"nice", "rude", "mean", "evil"}

func (l Level) String() string {
	if l < Nice || l > Evil {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil
		}
	}
	return Nice, fmt.Errorf("unknown AI level %q", s)
}

// Personality drives the build decisions of an AI player.
type Personality struct {
	SoldierEagerness float64
	Upgrades         []UpgradeKind // wish list, consumed front to back
}

func (p Personality) Clone() Personality {
	return Personality{
		SoldierEagerness: p.SoldierEagerness,
		Upgrades:         append([]UpgradeKind(nil), p.Upgrades...),
	}
}

var Personalities = []Personality{
	{SoldierEagerness: 1},
	{SoldierEagerness: 0.2, Upgrades: []UpgradeKind{Water, Earth}},
	{SoldierEagerness: 0.25, Upgrades: []UpgradeKind{Water, Fire, Fire}},
	{SoldierEagerness: 0.15, Upgrades: []UpgradeKind{Water, Water, Earth, Earth}},
	{SoldierEagerness: 0.4, Upgrades: []UpgradeKind{Water}},
	{SoldierEagerness: 0.3, Upgrades: []UpgradeKind{Water, Water}},
	{SoldierEagerness: 0.25, Upgrades: []UpgradeKind{Fire, Fire}},
	{SoldierEagerness: 0.2, Upgrades: []UpgradeKind{Earth, Earth}},
}

type Player struct {
	Index       int
	Name        string
	Color       string
	Controller  Controller
	Personality *Personality // AI players only
}

func (p *Player) IsAI() bool {
	return p.Controller == AIController
}

func (p *Player) String() string {
	return p.Name
}

var playerTemplates = []struct {
	name  string
	color string
}{
	{"Amber", "#fd8"},
	{"Crimson", "#f88"},
	{"Lavender", "#d9d"},
	{"Emerald", "#9d9"},
}

const MaxPlayers = 4

// NewPlayers builds the player list from controllers in seat order.
func NewPlayers(controllers ...Controller) ([]*Player, error) {
	if len(controllers) < 2 || len(controllers) > MaxPlayers {
		return nil, fmt.Errorf("need between 2 and %d players, got %d", MaxPlayers, len(controllers))
	}
	players := make([]*Player, len(controllers))
	for i, c := range controllers {
		players[i] = &Player{
			Index:      i,
			Name:       playerTemplates[i].name,
			Color:      playerTemplates[i].color,
			Controller: c,
		}
	}
	return players, nil
}
