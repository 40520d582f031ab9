package engine

import "battlebot/internal/battle"

// Damage is the predicted damage interval of one use of a move. LB is the
// lowest roll, UB the highest.
type Damage struct {
	Power int
	LB    int
	UB    int
	Type  battle.Type
}

func (c *Calculator) zero(power int, t battle.Type) Damage {
	return Damage{Power: power, Type: t}
}

// ComputeDamage predicts the damage move deals from attacker to defender.
// A known battler's exact stats are used; an unknown one's are estimated.
// Immunities and field cancellations return a zero interval.
func (c *Calculator) ComputeDamage(move battle.Move, attacker, defender *battle.Pokemon, cond Conditions) Damage {
	moveType, retyped := c.MoveType(&move, attacker)

	if fixed, ok := c.FixedDamage(&move, moveType, attacker, defender); ok {
		return Damage{Power: move.BasePower, LB: fixed, UB: fixed, Type: moveType}
	}

	level := 2*float64(attacker.Level)/5 + 2
	power := c.BasePower(&move, moveType, retyped, attacker, defender, cond.Env)

	atkStat, defStat := battle.Atk, battle.Def
	if move.Category == battle.Physical {
		if move.ID == "bodypress" {
			atkStat = battle.Def
		}
	} else {
		atkStat, defStat = battle.SpA, battle.SpD
		switch move.ID {
		case "psyshock", "psystrike", "secretsword":
			defStat = battle.Def
		}
	}

	// unaware ignores the opposing battler's stages only
	zero := 0
	var atkStage, defStage, targetAtkStage *int
	switch {
	case defender.Ability == "unaware":
		atkStage = &zero
	case cond.AttackerBoosts != nil:
		v := cond.AttackerBoosts.Get(atkStat)
		atkStage = &v
	}
	switch {
	case attacker.Ability == "unaware":
		defStage, targetAtkStage = &zero, &zero
	case cond.DefenderBoosts != nil:
		v, w := cond.DefenderBoosts.Get(defStat), cond.DefenderBoosts.Get(atkStat)
		defStage, targetAtkStage = &v, &w
	}

	var atkValue float64
	if move.UseTargetOffensive {
		atkValue = c.mustStat(defender, atkStat, cond.Env, targetAtkStage)
	} else {
		atkValue = c.mustStat(attacker, atkStat, cond.Env, atkStage)
	}
	effectiveness := c.dex.Effectiveness(moveType, defender)
	atkCtx := &ruleCtx{holder: attacker, other: defender, move: &move, moveType: moveType, retyped: retyped,
		effectiveness: effectiveness, weather: cond.Weather, fields: cond.Fields, side: cond.DefenderSide}
	defCtx := &ruleCtx{holder: defender, other: attacker, move: &move, moveType: moveType, retyped: retyped,
		effectiveness: effectiveness, weather: cond.Weather, fields: cond.Fields, side: cond.DefenderSide}
	if atkStat == battle.Atk || atkStat == battle.SpA {
		atkValue *= c.rules.apply(c.rules.attack, atkCtx, defCtx, false)
	}
	defValue := c.mustStat(defender, defStat, cond.Env, defStage)
	if defValue < 1 {
		defValue = 1
	}
	ratio := atkValue / defValue

	damage := level*float64(power)*ratio/50 + 2

	w, ok := weatherMultiplier(cond.Weather, moveType, attacker, defender)
	if !ok {
		return c.zero(power, moveType)
	}
	damage *= w

	t, ok := terrainMultiplier(cond.Fields, &move, moveType)
	if !ok {
		return c.zero(power, moveType)
	}
	damage *= t

	if attacker.HasType(moveType) || attacker.Ability == "protean" || attacker.Ability == "libero" {
		if attacker.Ability == "adaptability" {
			damage *= 2
		} else {
			damage *= 1.5
		}
	}

	if attacker.Status == battle.Burn && move.Category == battle.Physical &&
		attacker.Ability != "guts" && move.ID != "facade" {
		damage *= 0.5
	}

	damage *= c.typeMultiplier(&move, moveType, defender)

	other := c.rules.apply(c.rules.damage, atkCtx, defCtx, false)
	switch move.ID {
	case "poltergeist":
		if !defender.HasItem() {
			other = 0
		}
	case "knockoff":
		if defender.HasItem() {
			other *= 1.5
		}
	case "behemothblade", "behemothbash", "dynamaxcannon":
		if defender.Dynamaxed {
			other *= 2
		}
	}
	if other == 0 {
		return c.zero(power, moveType)
	}
	damage = float64(int(damage * other))

	if move.CritRatio >= battle.CritAlways && defender.Ability != "battlearmor" && defender.Ability != "shellarmor" {
		damage *= 1.5
	}

	ub := int(damage * float64(move.Hits()))
	return Damage{Power: power, LB: int(float64(ub) * 0.85), UB: ub, Type: moveType}
}

// weatherMultiplier returns false when the weather cancels the move outright.
func weatherMultiplier(w battle.Weather, moveType battle.Type, attacker, defender *battle.Pokemon) (float64, bool) {
	if w == battle.NoWeather {
		return 1, true
	}
	for _, a := range []string{attacker.Ability, defender.Ability} {
		if a == "airlock" || a == "cloudnine" {
			return 1, true
		}
	}
	switch {
	case w.Sunny():
		if moveType == battle.Fire {
			return 1.5, true
		}
		if moveType == battle.Water {
			return 0.5, w != battle.DesolateLand
		}
	case w.Rainy():
		if moveType == battle.Water {
			return 1.5, true
		}
		if moveType == battle.Fire {
			return 0.5, w != battle.PrimordialSea
		}
	}
	return 1, true
}

// terrainMultiplier returns false when psychic terrain blocks a priority move.
// Only the first terrain present, in the order below, applies.
func terrainMultiplier(fields []battle.Field, move *battle.Move, moveType battle.Type) (float64, bool) {
	switch {
	case battle.HasField(fields, battle.ElectricTerrain):
		if moveType == battle.Electric {
			return 1.3, true
		}
	case battle.HasField(fields, battle.GrassyTerrain):
		if moveType == battle.Grass {
			return 1.3, true
		}
		switch move.ID {
		case "earthquake", "magnitude", "bulldoze":
			return 0.5, true
		}
	case battle.HasField(fields, battle.MistyTerrain):
		if moveType == battle.Dragon {
			return 0.5, true
		}
	case battle.HasField(fields, battle.PsychicTerrain):
		if moveType == battle.Psychic {
			return 1.3, true
		}
		if move.Priority > 0 {
			return 0, false
		}
	}
	return 1, true
}

func (c *Calculator) typeMultiplier(move *battle.Move, moveType battle.Type, defender *battle.Pokemon) float64 {
	m := c.dex.Effectiveness(moveType, defender)
	switch move.ID {
	case "freezedry":
		if defender.HasType(battle.Water) {
			// ice is resisted by water; freeze-dry hits it super effectively
			m *= 4
		}
	case "thousandarrows":
		if defender.HasType(battle.Flying) {
			m = 1
			for _, t := range defender.Types {
				if t != battle.Flying && t != "" {
					m = c.dex.Chart.Multiplier(move.Type, t)
				}
			}
		}
	}
	return m
}
