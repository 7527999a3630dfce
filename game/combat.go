package game

import (
	"fmt"
	"math"
)

// DefenderThreshold: a round whose draw lands at or below it goes to the defender.
const DefenderThreshold = 120.0

// fight holds the numbers fixed for the duration of one battle.
type fight struct {
	repeats int
	maximum float64 // draws fall in [0, maximum)
}

func newFight(attackers, defenders, fireLevel, earthLevel int) fight {
	incoming := float64(attackers) * (1 + float64(fireLevel)*0.01)
	defending := float64(defenders) * (1 + float64(earthLevel)*0.01)
	winChance := 100 * math.Pow(incoming/defending, 1.6)
	return fight{
		repeats: min(attackers, defenders),
		maximum: DefenderThreshold + winChance,
	}
}

// SimulatedDraw spreads the draws of a simulated battle evenly around the
// middle of the range, which makes likely outcomes certain for the search.
func SimulatedDraw(index, repeats int, maximum float64) float64 {
	return float64(index+3) * maximum / float64(repeats+5)
}

// RealDraw maps a uniform r in [0,1) onto the central 76% of the range so a
// big advantage is never undone by an extreme roll.
func RealDraw(r, maximum float64) float64 {
	low, high := maximum*0.12, maximum*0.88
	return math.Floor(low + r*(high-low))
}

func (gs *GameState) draw(f fight, index int) float64 {
	if gs.IsSimulation() {
		return SimulatedDraw(index, f.repeats, f.maximum)
	}
	return RealDraw(gs.Session.Float64(), f.maximum)
}

// moveSoldiers resolves an army move: Earth damage, the battle rounds, then
// occupation of the destination if it was cleared. It always costs one move.
func (gs *GameState) moveSoldiers(from, to, count int) {
	fromOwner, toOwner := gs.Ownership[from], gs.Ownership[to]
	incoming := count
	defenders := len(gs.Soldiers[to])

	if fromOwner != toOwner {
		preemptive := min(incoming, gs.UpgradeLevel(toOwner, Earth))
		invincible := gs.UpgradeLevel(fromOwner, Fire)

		if preemptive > 0 {
			gs.Soldiers[from] = gs.Soldiers[from][preemptive:]
			incoming -= preemptive
			gs.hint(FloatingText, from, toOwner, fmt.Sprintf("Earth kills %d!", preemptive))
			gs.hint(SoundCue, from, fromOwner, SoundOursDead)
		}

		if defenders > 0 && incoming > 0 {
			gs.Battle = true
			f := newFight(incoming, defenders, invincible, gs.UpgradeLevel(toOwner, Earth))
			for i := 0; i < f.repeats; i++ {
				if gs.draw(f, i) <= DefenderThreshold {
					if invincible > 0 {
						invincible--
						gs.hint(FloatingText, from, fromOwner, "Protected by Fire!")
						continue
					}
					gs.Soldiers[from] = gs.Soldiers[from][1:]
					incoming--
					gs.hint(SoundCue, from, fromOwner, SoundOursDead)
				} else {
					gs.Soldiers[to] = gs.Soldiers[to][1:]
					if toOwner != Neutral {
						gs.Cash[toOwner] += MartyrBonus
					}
					gs.hint(SoundCue, to, toOwner, SoundEnemyDead)
				}
			}

			if len(gs.Soldiers[to]) > 0 {
				incoming = 0
				gs.hint(FloatingText, to, toOwner, "Defended!")
				gs.hint(SoundCue, to, toOwner, SoundDefeat)
			}
		}
	}

	if incoming > 0 {
		gs.Soldiers[to] = append(gs.Soldiers[to], gs.Soldiers[from][:incoming]...)
		gs.Soldiers[from] = gs.Soldiers[from][incoming:]

		if fromOwner != toOwner {
			gs.Ownership[to] = fromOwner
			gs.Move.Conquered = append(gs.Move.Conquered, to)
			if temple, ok := gs.Temples[to]; ok {
				temple.Upgrade = NoUpgrade
				temple.Level = 0
				gs.Temples[to] = temple
			}
			gs.hint(Particles, to, fromOwner, "")
			gs.hint(FloatingText, to, fromOwner, "Conquered!")
			if defenders > 0 {
				gs.hint(SoundCue, to, fromOwner, SoundVictory)
			} else {
				gs.hint(SoundCue, to, fromOwner, SoundTakeOver)
			}
		}
	}

	gs.Move.MovesLeft--
}
