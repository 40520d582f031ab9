package engine

import "battlebot/internal/battle"

var auras = map[string]battle.Type{"darkaura": battle.Dark, "fairyaura": battle.Fairy}

// BasePower is the move's power after move-specific formulas and every
// ability and item record.
func (c *Calculator) BasePower(move *battle.Move, moveType battle.Type, retyped bool, attacker, defender *battle.Pokemon, env Env) int {
	power := float64(move.BasePower)
	switch move.ID {
	case "eruption", "waterspout", "dragonenergy":
		maxHP := c.MaxHP(attacker)
		cur := int(float64(maxHP) * attacker.Fraction())
		power = float64(int(150 * float64(cur) / float64(maxHP)))
		if power < 1 {
			power = 1
		}
	case "grassknot", "lowkick":
		power = weightPower(defender.Weight)
	case "powertrip", "storedpower":
		power = float64(20 * (attacker.Boosts.PositiveSum() + 1))
	}

	mod := movePowerModifier(move, attacker, defender, env)
	neutralized := attacker.Ability == "neutralizinggas" || defender.Ability == "neutralizinggas"
	atk := &ruleCtx{holder: attacker, other: defender, move: move, moveType: moveType, retyped: retyped,
		weather: env.Weather, fields: env.Fields}
	def := &ruleCtx{holder: defender, other: attacker, move: move, moveType: moveType, retyped: retyped,
		weather: env.Weather, fields: env.Fields}
	mod *= c.rules.apply(c.rules.power, atk, def, neutralized)
	if !neutralized {
		mod *= c.auraModifier(moveType, attacker, defender)
	}
	return int(power * mod)
}

func weightPower(kg float64) float64 {
	switch {
	case kg < 10:
		return 20
	case kg < 25:
		return 40
	case kg < 50:
		return 60
	case kg < 100:
		return 80
	case kg < 200:
		return 100
	}
	return 120
}

func movePowerModifier(move *battle.Move, attacker, defender *battle.Pokemon, env Env) float64 {
	m := 1.0
	switch move.ID {
	case "facade":
		if attacker.Status.Afflicted() {
			m *= 2
		}
	case "acrobatics":
		if !attacker.HasItem() {
			m *= 2
		}
	case "brine":
		if defender.Fraction() <= 0.5 {
			m *= 2
		}
	case "venoshock":
		if defender.Status == battle.Poisoned || defender.Status == battle.Toxic {
			m *= 2
		}
	case "gravapple":
		if battle.HasField(env.Fields, battle.Gravity) {
			m *= 2
		}
	case "hex":
		if defender.Status.Afflicted() {
			m *= 2
		}
	}
	return m
}

// auraModifier handles the field-wide auras, which either battler can carry.
func (c *Calculator) auraModifier(moveType battle.Type, attacker, defender *battle.Pokemon) float64 {
	m := 1.0
	for aura, t := range auras {
		if moveType != t || (attacker.Ability != aura && defender.Ability != aura) {
			continue
		}
		if attacker.Ability != "aurabreak" && defender.Ability != "aurabreak" {
			m *= 1.33
		} else if !c.rules.ignore[attacker.Ability] {
			m *= 0.75
		}
	}
	return m
}
