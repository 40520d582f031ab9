package engine

import (
	"math"

	"battlebot/internal/battle"
)

// SelfKORecoil is the recoil charged for moves that knock out their user.
const SelfKORecoil = 1000

// Healing is the HP user restores with move, clamped so user never goes
// above its maximum. target is only read by strength sap.
func (c *Calculator) Healing(user, target *battle.Pokemon, move battle.Move, env Env) int {
	if user.Dynamaxed || !move.IsStatus() || !c.dex.IsHealingMove(move.ID) {
		return 0
	}
	maxHP, cur := c.MaxHP(user), c.CurrentHP(user)

	pct := 0.5
	heal := -1
	switch move.ID {
	case "morningsun", "moonlight", "synthesis":
		switch env.Weather {
		case battle.SunnyDay, battle.DesolateLand:
			pct = 0.66
		case battle.RainDance, battle.PrimordialSea, battle.Hail, battle.Sandstorm:
			pct = 0.25
		}
	case "shoreup":
		if env.Weather == battle.Sandstorm {
			pct = 0.66
		}
	case "purify":
		if !user.Status.Afflicted() {
			return 0
		}
	case "rest":
		if battle.HasField(env.Fields, battle.ElectricTerrain) || battle.HasField(env.Fields, battle.PsychicTerrain) {
			return 0
		}
		heal = maxHP - cur
	case "strengthsap":
		stage := target.Boosts.Get(battle.Atk)
		if target.Ability == "contrary" {
			stage = battle.ClampStage(stage + 1)
		} else if stage == battle.MinStage {
			return 0
		} else {
			stage--
		}
		heal = int(c.mustStat(target, battle.Atk, env, &stage))
	}
	if heal < 0 {
		heal = int(float64(maxHP) * pct)
	}
	return clampGain(heal, cur, maxHP)
}

// Drain is the HP user recovers from dealing damage with move.
func (c *Calculator) Drain(user *battle.Pokemon, move battle.Move, damage int) int {
	if move.Drain == 0 || damage <= 0 {
		return 0
	}
	return clampGain(int(float64(damage)*move.Drain), c.CurrentHP(user), c.MaxHP(user))
}

// Recoil is the HP user loses from dealing damage with move.
func (c *Calculator) Recoil(user *battle.Pokemon, move battle.Move, damage int) int {
	if user.Ability == "magicguard" {
		return 0
	}
	switch {
	case move.ID == "mindblown" || move.ID == "steelbeam":
		return c.MaxHP(user) / 2
	case move.SelfDestruct:
		return SelfKORecoil
	case move.Recoil == 0:
		return 0
	}
	return int(math.Ceil(float64(damage) * move.Recoil))
}

func clampGain(gain, cur, hi int) int {
	if gain < 0 {
		return 0
	}
	if cur+gain > hi {
		gain = hi - cur
	}
	if gain < 0 {
		return 0
	}
	return gain
}

// UpdatedBoosts returns the stages of attacker and defender after move.
// Target boosts go to the user for self-targeting moves and to the
// defender otherwise; self boosts always go to the user. Inputs are not
// modified.
func UpdatedBoosts(attacker, defender battle.Boosts, move battle.Move) (battle.Boosts, battle.Boosts) {
	att, def := attacker.Clone(), defender.Clone()
	if len(move.Boosts) > 0 {
		switch move.Target {
		case battle.TargetSelf:
			att = att.Apply(move.Boosts)
		case battle.TargetNormal:
			def = def.Apply(move.Boosts)
		}
	}
	if len(move.SelfBoosts) > 0 {
		att = att.Apply(move.SelfBoosts)
	}
	return att, def
}
