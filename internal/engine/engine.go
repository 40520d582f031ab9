package engine

import (
	"battlebot/internal/battle"
	"battlebot/internal/config"
)

// Env is the field state every formula reads.
type Env struct {
	Weather battle.Weather
	Fields  []battle.Field
}

// Conditions extends Env with what a single damage roll needs. Nil boost
// maps mean "use the stages carried by the battler itself".
type Conditions struct {
	Env
	DefenderSide   []battle.SideCondition
	AttackerBoosts battle.Boosts
	DefenderBoosts battle.Boosts
}

// Calculator evaluates the stat, damage and move-effect formulas against a
// dex and a modifier rule table. It holds no per-battle state and is safe
// for concurrent use.
type Calculator struct {
	dex   *battle.Dex
	rules *ruleBook
}

func New(dex *battle.Dex, rc *config.RulesConfig) *Calculator {
	return &Calculator{dex: dex, rules: newRuleBook(rc)}
}

func (c *Calculator) Dex() *battle.Dex { return c.dex }

// MaxHP is the exact maximum when reported, else the default-spread estimate.
func (c *Calculator) MaxHP(p *battle.Pokemon) int {
	if p.MaxHP > 0 {
		return p.MaxHP
	}
	hp, err := c.EstimateStat(p, battle.HP, DefaultSpread)
	if err != nil || hp < 1 {
		return 1
	}
	return hp
}

// CurrentHP is exact when the maximum is reported, else derived from the
// HP fraction.
func (c *Calculator) CurrentHP(p *battle.Pokemon) int {
	if p.MaxHP > 0 {
		return p.CurrentHP
	}
	return int(float64(c.MaxHP(p)) * p.HPFraction)
}
