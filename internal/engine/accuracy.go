package engine

import (
	"math"

	"battlebot/internal/battle"
)

// MoveAccuracy is the probability that move hits, in 0..1 for ordinary
// moves. accBoost and evaBoost override the stages carried by the battlers
// when set.
func (c *Calculator) MoveAccuracy(move battle.Move, attacker, defender *battle.Pokemon, env Env, accBoost, evaBoost *int) float64 {
	if move.AlwaysHits || attacker.Dynamaxed || attacker.Ability == "noguard" {
		return 1
	}
	acc := move.Accuracy
	switch move.ID {
	case "thunder", "hurricane":
		if env.Weather.Sunny() {
			acc = 0.5
		} else if env.Weather.Rainy() {
			return 1
		}
	case "blizzard":
		if env.Weather == battle.Hail {
			return 1
		}
	}
	if isOHKO(move.ID) {
		if defender.Level > attacker.Level {
			return move.Accuracy
		}
		acc += float64(attacker.Level-defender.Level) / 100
	}

	acc *= c.AccuracyStat(attacker, battle.Accuracy, env, accBoost)
	eva := c.AccuracyStat(defender, battle.Evasion, env, evaBoost)
	if attacker.Ability == "hustle" && move.Category == battle.Physical {
		acc *= 0.8
	}
	if eva <= 0 {
		eva = 1
	}
	return math.Round(acc/eva*100) / 100
}

// Outspeed is the chance that the deciding side moves first, together
// with the opponent's speed range it was computed from.
type Outspeed struct {
	P  float64
	LB int
	UB int
}

// OutspeedProbability compares bot's speed with the range of speeds opp
// can have between no investment and full investment. The estimate is
// linear over that range and inverted under trick room.
func (c *Calculator) OutspeedProbability(bot, opp *battle.Pokemon, env Env) Outspeed {
	botSpe := c.mustStat(bot, battle.Spe, env, nil)
	lb, err := c.Stat(opp, battle.Spe, env, Spread{IV: 31, EV: 0}, nil)
	if err != nil {
		lb = 0
	}
	ub, err := c.Stat(opp, battle.Spe, env, Spread{IV: 31, EV: 252}, nil)
	if err != nil {
		ub = lb
	}

	var p float64
	switch {
	case botSpe < float64(lb):
		p = 0
	case botSpe > float64(ub):
		p = 1
	case ub == lb:
		p = 0.5
	default:
		p = (botSpe - float64(lb)) / float64(ub-lb)
	}
	if battle.HasField(env.Fields, battle.TrickRoom) {
		p = 1 - p
	}
	return Outspeed{P: math.Round(p*100) / 100, LB: lb, UB: ub}
}
