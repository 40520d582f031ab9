package engine

import "battlebot/internal/battle"

func isOHKO(id string) bool {
	switch id {
	case "fissure", "guillotine", "horndrill", "sheercold":
		return true
	}
	return false
}

// FixedDamage reports whether move bypasses the damage formula, and the
// damage it deals if so.
func (c *Calculator) FixedDamage(move *battle.Move, moveType battle.Type, attacker, defender *battle.Pokemon) (int, bool) {
	fixed, ok := 0, false
	if move.IsStatus() {
		fixed, ok = 0, true
	}
	if move.LevelDamage {
		fixed, ok = attacker.Level, true
	} else if move.Damage > 0 {
		fixed, ok = move.Damage, true
	}

	hits := c.dex.Effectiveness(moveType, defender) > 0
	if isOHKO(move.ID) {
		fixed, ok = 0, true
		if defender.Level <= attacker.Level && hits {
			fixed = c.CurrentHP(defender)
		}
	}
	switch move.ID {
	case "superfang", "naturesmadness":
		if hits {
			fixed, ok = int(float64(c.CurrentHP(defender))/2), true
		}
	case "guardianofalola":
		if hits {
			fixed, ok = int(float64(c.CurrentHP(defender))*0.75), true
		}
	case "fakeout", "firstimpression":
		if !attacker.FirstTurn {
			fixed, ok = 0, true
		}
	}
	return fixed, ok
}
