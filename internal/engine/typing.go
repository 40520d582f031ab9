package engine

import (
	"strings"

	"battlebot/internal/battle"
)

var plateTypes = map[string]battle.Type{
	"flame": battle.Fire, "splash": battle.Water, "zap": battle.Electric,
	"meadow": battle.Grass, "icicle": battle.Ice, "fist": battle.Fighting,
	"toxic": battle.Poison, "earth": battle.Ground, "sky": battle.Flying,
	"mind": battle.Psychic, "insect": battle.Bug, "stone": battle.Rock,
	"spooky": battle.Ghost, "draco": battle.Dragon, "dread": battle.Dark,
	"iron": battle.Steel, "pixie": battle.Fairy,
}

// MoveType resolves the type move has when used by attacker, and whether an
// ability or held item changed it.
func (c *Calculator) MoveType(move *battle.Move, attacker *battle.Pokemon) (battle.Type, bool) {
	t := move.Type
	for i := range c.rules.typeChanges {
		r := &c.rules.typeChanges[i]
		ctx := &ruleCtx{holder: attacker, move: move, moveType: t}
		if c.rules.matches(r, ctx) {
			t = r.typ
		}
	}
	item := attacker.Item
	switch {
	case attacker.Ability == "multitype" && move.ID == "judgment" && strings.HasSuffix(item, "plate"):
		if pt, ok := plateTypes[strings.TrimSuffix(item, "plate")]; ok {
			t = pt
		}
	case attacker.Ability == "rkssystem" && move.ID == "multiattack" && strings.HasSuffix(item, "memory"):
		if mt := battle.Type(strings.TrimSuffix(item, "memory")); c.dex.Chart[mt] != nil {
			t = mt
		}
	}
	return t, t != move.Type
}
