package game

// HintKind classifies presentation hints. Hints are informational and a
// headless consumer may ignore them.
type HintKind int

const (
	FloatingText HintKind = iota
	Particles
	SoundCue
	Banner
)

// Sound cue names carried in Hint.Text.
const (
	SoundClick     = "click"
	SoundOursDead  = "ours_dead"
	SoundEnemyDead = "enemy_dead"
	SoundVictory   = "victory"
	SoundTakeOver  = "takeover"
	SoundDefeat    = "defeat"
	SoundBuy       = "buy"
	SoundUpgrade   = "upgrade"
)

type Hint struct {
	Kind   HintKind
	Region int // Neutral when not tied to a region
	Player int // Neutral when not tied to a player
	Text   string
}

func (gs *GameState) hint(kind HintKind, region, player int, text string) {
	if gs.IsSimulation() {
		return
	}
	gs.Hints = append(gs.Hints, Hint{Kind: kind, Region: region, Player: player, Text: text})
}

// Cue attaches a sound cue that is not tied to a region.
func (gs *GameState) Cue(sound string) {
	gs.hint(SoundCue, Neutral, Neutral, sound)
}
