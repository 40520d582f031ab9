package engine

import (
	"errors"
	"fmt"
	"math"

	"battlebot/internal/battle"
)

var (
	ErrInvalidSpread = errors.New("invalid stat spread")
	ErrUnknownStat   = errors.New("unknown stat")
)

// Spread is the hidden investment assumed when estimating a stat.
type Spread struct {
	IV     int
	EV     int
	Nature string
}

// DefaultSpread is the investment assumed for an opponent whose exact stats
// are unknown.
var DefaultSpread = Spread{IV: 31, EV: 84}

func (s Spread) Validate() error {
	if s.IV < 0 || s.IV > 31 {
		return fmt.Errorf("iv %d outside 0..31: %w", s.IV, ErrInvalidSpread)
	}
	if s.EV < 0 || s.EV > 252 {
		return fmt.Errorf("ev %d outside 0..252: %w", s.EV, ErrInvalidSpread)
	}
	return nil
}

// EstimateStat applies the stat formula to p's base stat, ignoring stages
// and modifiers.
func (c *Calculator) EstimateStat(p *battle.Pokemon, stat battle.Stat, sp Spread) (int, error) {
	if err := sp.Validate(); err != nil {
		return 0, err
	}
	if !stat.Valid() || stat.IsAccuracyStat() {
		return 0, fmt.Errorf("estimate %q: %w", stat, ErrUnknownStat)
	}
	v := float64(2*p.BaseStats[stat]+sp.IV) + float64(sp.EV)/4
	est := int(v*float64(p.Level)/100) + 5

	if stat == battle.HP {
		if p.Species == "shedinja" {
			return 1, nil
		}
		est += p.Level + 5
		if p.Dynamaxed {
			est *= 2
		}
		return est, nil
	}

	nature, ok := c.dex.Nature(sp.Nature)
	if !ok {
		return 0, fmt.Errorf("nature %q: %w", sp.Nature, ErrInvalidSpread)
	}
	switch stat {
	case nature.Plus:
		est = int(float64(est) * 1.1)
	case nature.Minus:
		est = int(float64(est) * 0.9)
	}
	return est, nil
}

// StatBoost converts a stage into its multiplier, rounded to two decimals.
// override, when set, replaces the stage carried by p (zero included).
func StatBoost(p *battle.Pokemon, stat battle.Stat, override *int) float64 {
	if stat == battle.HP {
		return 1
	}
	stage := p.Boosts.Get(stat)
	if override != nil && *override >= battle.MinStage && *override <= battle.MaxStage {
		stage = *override
	}
	base := 2.0
	if stat.IsAccuracyStat() {
		base = 3
	}
	var m float64
	if stage > 0 {
		m = (base + float64(stage)) / base
	} else {
		m = base / (base - float64(stage))
	}
	return math.Round(m*100) / 100
}

// StatModifiers is the product of every ability, item, weather, terrain and
// status record for stat.
func (c *Calculator) StatModifiers(p *battle.Pokemon, stat battle.Stat, env Env) float64 {
	ctx := &ruleCtx{holder: p, weather: env.Weather, fields: env.Fields}
	return c.rules.apply(c.rules.stats[stat], ctx, ctx, false)
}

// Stat is the in-battle value of stat: the exact stat for a known battler,
// else an estimate, times modifiers and stage multiplier.
func (c *Calculator) Stat(p *battle.Pokemon, stat battle.Stat, env Env, sp Spread, override *int) (int, error) {
	if stat.IsAccuracyStat() {
		return 0, fmt.Errorf("stat %q has no value, use AccuracyStat: %w", stat, ErrUnknownStat)
	}
	if err := sp.Validate(); err != nil {
		return 0, err
	}
	var v float64
	if p.Known && stat != battle.HP {
		v = float64(p.Stats[stat])
	} else {
		est, err := c.EstimateStat(p, stat, sp)
		if err != nil {
			return 0, err
		}
		v = float64(est)
	}
	v *= c.StatModifiers(p, stat, env)
	v *= StatBoost(p, stat, override)
	return int(v), nil
}

// AccuracyStat is the accuracy or evasion multiplier of p.
func (c *Calculator) AccuracyStat(p *battle.Pokemon, stat battle.Stat, env Env, override *int) float64 {
	return c.StatModifiers(p, stat, env) * StatBoost(p, stat, override)
}

// mustStat is Stat with the default spread, which cannot fail validation.
func (c *Calculator) mustStat(p *battle.Pokemon, stat battle.Stat, env Env, override *int) float64 {
	v, err := c.Stat(p, stat, env, DefaultSpread, override)
	if err != nil {
		return 0
	}
	return float64(v)
}
