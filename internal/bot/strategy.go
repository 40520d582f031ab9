package bot

import (
	"math/rand"

	"battlebot/internal/battle"
	"battlebot/internal/engine"
	"battlebot/internal/util"
)

// fullMoveset is the number of moves after which an opponent's moveset is
// considered completely revealed.
const fullMoveset = 4

// fastSwitchP is the outspeed probability a switch-in needs to be preferred
// among equally good candidates.
const fastSwitchP = 0.6

// typeAdvantage is the best chart multiplier any of atk's own types gets
// against def.
func typeAdvantage(dex *battle.Dex, atk, def *battle.Pokemon) float64 {
	best := 0.0
	for _, t := range atk.Types {
		if t == "" {
			continue
		}
		if m := dex.Effectiveness(t, def); m > best {
			best = m
		}
	}
	if len(atk.Types) == 0 {
		return 1
	}
	return best
}

func bestMoveEffectiveness(dex *battle.Dex, moves []battle.Move, def *battle.Pokemon, none float64) float64 {
	best, found := 0.0, false
	for _, m := range moves {
		if m.IsStatus() {
			continue
		}
		if e := dex.Effectiveness(m.Type, def); !found || e > best {
			best, found = e, true
		}
	}
	if !found {
		return none
	}
	return best
}

// Matchup scores bot against opp on typing alone, in -8..8. It adds the
// difference of the two battlers' type advantages to the difference of
// their best damaging moves. An opponent whose moveset is not fully known
// is assumed to hit at least as hard as its own typing allows.
func Matchup(dex *battle.Dex, bot, opp *battle.Pokemon) float64 {
	botType := typeAdvantage(dex, bot, opp)
	oppType := typeAdvantage(dex, opp, bot)

	botMove := bestMoveEffectiveness(dex, bot.Moves, opp, 1)
	oppMove := bestMoveEffectiveness(dex, opp.Moves, bot, 0)
	if oppMove < oppType && len(opp.Moves) < fullMoveset {
		oppMove = oppType
	}
	return (botType - oppType) + (botMove - oppMove)
}

// TeamMatchups scores every candidate against opp and returns the scores
// together with the highest one. The maximum is -8 for an empty team.
func TeamMatchups(dex *battle.Dex, team []*battle.Pokemon, opp *battle.Pokemon) ([]float64, float64) {
	scores := make([]float64, len(team))
	best := -8.0
	for i, p := range team {
		scores[i] = Matchup(dex, p, opp)
		if scores[i] > best {
			best = scores[i]
		}
	}
	return scores, best
}

// ShouldDynamax decides whether the active battler should use the gimmick
// this turn. bench holds the other non-fainted members, bestStats is the
// highest base stat total in the team.
func ShouldDynamax(active *battle.Pokemon, bench []*battle.Pokemon, matchup, maxTeamMatchup float64, bestStats int) bool {
	if len(bench) == 0 {
		return true
	}
	hp := active.Fraction()
	if active.BaseTotal() == bestStats && matchup >= 1 && hp >= 0.8 {
		return true
	}
	if hp < 1 {
		return false
	}
	for _, p := range bench {
		if p.Fraction() == 1 {
			return matchup >= maxTeamMatchup && matchup > 2
		}
	}
	// last one at full health
	return true
}

// ShouldSwitch reports whether the active battler is better off leaving
// the field. toxicTurns counts the turns spent badly poisoned.
func ShouldSwitch(active *battle.Pokemon, matchup, outspeedP, maxTeamMatchup float64, toxicTurns int) bool {
	if active.Dynamaxed {
		return matchup <= -4
	}
	if maxTeamMatchup <= matchup {
		return false
	}
	if active.Status == battle.Toxic && matchup-float64(toxicTurns) <= -2 {
		return true
	}
	b := active.Boosts
	if b.Get(battle.Def) <= -2 || b.Get(battle.SpD) <= -2 {
		return true
	}
	atk, spa := active.BaseStats[battle.Atk], active.BaseStats[battle.SpA]
	if atk > spa && b.Get(battle.Atk) <= -2 {
		return true
	}
	if spa > atk && b.Get(battle.SpA) <= -2 {
		return true
	}
	return matchup <= -1.5 || (matchup <= -1 && outspeedP <= 0.5)
}

// BestSwitch picks the switch-in among candidates with the highest matchup,
// preferring those likely to outspeed opp. Ties are broken with rng. It
// returns nil when there is no candidate.
func BestSwitch(calc *engine.Calculator, rng *rand.Rand, candidates []*battle.Pokemon, scores []float64, best float64, opp *battle.Pokemon, env engine.Env) *battle.Pokemon {
	var top, fast []*battle.Pokemon
	for i, p := range candidates {
		if scores[i] != best {
			continue
		}
		top = append(top, p)
		if calc.OutspeedProbability(p, opp, env).P > fastSwitchP {
			fast = append(fast, p)
		}
	}
	if len(fast) > 0 {
		top = fast
	}
	if i := util.Pick(rng, len(top)); i >= 0 {
		return top[i]
	}
	return nil
}
