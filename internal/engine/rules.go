package engine

import (
	"strings"

	"battlebot/internal/battle"
	"battlebot/internal/config"
	"battlebot/internal/util"
)

const holderDefender = "defender"

type rule struct {
	id          string
	holder      string
	stat        battle.Stat
	abilities   []string
	possible    bool
	items       []string
	species     []string
	speciesLike string
	multiplier  float64
	typ         battle.Type
	ignorable   bool
	when        config.When
}

type ruleBook struct {
	ignore      map[string]bool
	typeChanges []rule
	stats       map[battle.Stat][]rule
	power       []rule
	attack      []rule
	damage      []rule
}

func compile(rs []config.Rule) []rule {
	out := make([]rule, 0, len(rs))
	for _, r := range rs {
		out = append(out, rule{
			id:          r.ID,
			holder:      r.Holder,
			stat:        battle.Stat(r.Stat),
			abilities:   ids(r.Abilities),
			possible:    r.Possible,
			items:       ids(r.Items),
			species:     ids(r.Species),
			speciesLike: util.ToID(r.SpeciesLike),
			multiplier:  r.Multiplier,
			typ:         battle.Type(r.Type),
			ignorable:   r.Ignorable,
			when:        r.When,
		})
	}
	return out
}

func ids(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = util.ToID(s)
	}
	return out
}

func newRuleBook(rc *config.RulesConfig) *ruleBook {
	rb := &ruleBook{ignore: map[string]bool{}, stats: map[battle.Stat][]rule{}}
	if rc == nil {
		return rb
	}
	for _, a := range rc.IgnoreAbilities {
		rb.ignore[util.ToID(a)] = true
	}
	rb.typeChanges = compile(rc.TypeChanges)
	for _, r := range compile(rc.Stats) {
		rb.stats[r.stat] = append(rb.stats[r.stat], r)
	}
	rb.power = compile(rc.Power)
	rb.attack = compile(rc.Attack)
	rb.damage = compile(rc.Damage)
	return rb
}

// ruleCtx is what a record is matched against. holder is the battler the
// record is about; other is the opposing one, nil for stat records.
type ruleCtx struct {
	holder        *battle.Pokemon
	other         *battle.Pokemon
	move          *battle.Move
	moveType      battle.Type
	retyped       bool
	effectiveness float64
	weather       battle.Weather
	fields        []battle.Field
	side          []battle.SideCondition
}

// apply multiplies every matching record. A matching zero multiplier is an
// immunity and ends the evaluation.
func (rb *ruleBook) apply(rules []rule, atk, def *ruleCtx, skipAbilities bool) float64 {
	m := 1.0
	for i := range rules {
		r := &rules[i]
		if skipAbilities && len(r.abilities) > 0 {
			continue
		}
		c := atk
		if r.holder == holderDefender {
			c = def
		}
		if !rb.matches(r, c) {
			continue
		}
		if r.multiplier == 0 {
			return 0
		}
		m *= r.multiplier
	}
	return m
}

func (rb *ruleBook) matches(r *rule, c *ruleCtx) bool {
	p := c.holder
	if len(r.abilities) > 0 {
		if r.possible {
			if !p.MayHaveAbility(r.abilities...) {
				return false
			}
		} else if !has(r.abilities, p.Ability) {
			return false
		}
	}
	if r.ignorable && c.other != nil && rb.ignore[c.other.Ability] {
		return false
	}
	if len(r.items) > 0 && !has(r.items, p.Item) {
		return false
	}
	if len(r.species) > 0 && !has(r.species, p.Species) {
		return false
	}
	if r.speciesLike != "" && !strings.Contains(p.Species, r.speciesLike) {
		return false
	}
	return holds(&r.when, c)
}

func has(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func hasWeather(list []string, w battle.Weather) bool { return has(list, string(w)) }

func holds(w *config.When, c *ruleCtx) bool {
	p := c.holder
	if len(w.Weather) > 0 && !hasWeather(w.Weather, c.weather) {
		return false
	}
	if len(w.NotWeather) > 0 && hasWeather(w.NotWeather, c.weather) {
		return false
	}
	if len(w.Fields) > 0 && !anyField(w.Fields, c.fields) {
		return false
	}
	if len(w.Types) > 0 && !anyType(w.Types, p) {
		return false
	}
	if w.Statused != nil && p.Status.Afflicted() != *w.Statused {
		return false
	}
	if len(w.Status) > 0 && !has(w.Status, string(p.Status)) {
		return false
	}
	if w.Dynamaxed != nil && p.Dynamaxed != *w.Dynamaxed {
		return false
	}
	if w.HPAtMost > 0 && p.Fraction() > w.HPAtMost {
		return false
	}
	if w.FullHP && p.Fraction() < 1 {
		return false
	}
	if len(w.Effects) > 0 && !anyEffect(w.Effects, p) {
		return false
	}
	if len(w.NotItems) > 0 && has(w.NotItems, p.Item) {
		return false
	}
	if len(w.SideConditions) > 0 && !anySide(w.SideConditions, c.side) {
		return false
	}
	if !holdsOther(w, c) {
		return false
	}
	if !needsMove(w) {
		return true
	}
	if c.move == nil {
		return false
	}
	m := c.move
	if len(w.MoveTypes) > 0 && !has(w.MoveTypes, string(c.moveType)) {
		return false
	}
	if len(w.NotMoveTypes) > 0 && has(w.NotMoveTypes, string(c.moveType)) {
		return false
	}
	if len(w.MoveFlags) > 0 && !anyFlag(w.MoveFlags, m) {
		return false
	}
	if len(w.Categories) > 0 && !has(w.Categories, string(m.Category)) {
		return false
	}
	if w.MaxBasePower > 0 && m.BasePower > w.MaxBasePower {
		return false
	}
	if w.Recoil && m.Recoil <= 0 {
		return false
	}
	if w.Retyped && !c.retyped {
		return false
	}
	if w.SuperEffective && c.effectiveness < 2 {
		return false
	}
	if w.NotSuper && c.effectiveness >= 2 {
		return false
	}
	return true
}

func holdsOther(w *config.When, c *ruleCtx) bool {
	if len(w.OtherStatus) == 0 && len(w.OtherAbilityNot) == 0 && w.SameGender == nil {
		return true
	}
	o := c.other
	if o == nil {
		return false
	}
	if len(w.OtherStatus) > 0 && !has(w.OtherStatus, string(o.Status)) {
		return false
	}
	if len(w.OtherAbilityNot) > 0 && has(w.OtherAbilityNot, o.Ability) {
		return false
	}
	if w.SameGender != nil {
		g1, g2 := c.holder.Gender, o.Gender
		if g1 == "" || g2 == "" || g1 == battle.Neutral || g2 == battle.Neutral {
			return false
		}
		if (g1 == g2) != *w.SameGender {
			return false
		}
	}
	return true
}

func needsMove(w *config.When) bool {
	return len(w.MoveTypes) > 0 || len(w.NotMoveTypes) > 0 || len(w.MoveFlags) > 0 ||
		len(w.Categories) > 0 || w.MaxBasePower > 0 || w.Recoil || w.Retyped ||
		w.SuperEffective || w.NotSuper
}

func anyField(list []string, fields []battle.Field) bool {
	for _, f := range fields {
		if has(list, string(f)) {
			return true
		}
	}
	return false
}

func anyType(list []string, p *battle.Pokemon) bool {
	for _, t := range p.Types {
		if has(list, string(t)) {
			return true
		}
	}
	return false
}

func anyEffect(list []string, p *battle.Pokemon) bool {
	for _, e := range list {
		if p.HasEffect(battle.Effect(e)) {
			return true
		}
	}
	return false
}

func anySide(list []string, side []battle.SideCondition) bool {
	for _, s := range side {
		if has(list, string(s)) {
			return true
		}
	}
	return false
}

func anyFlag(list []string, m *battle.Move) bool {
	for _, f := range list {
		if m.HasFlag(f) {
			return true
		}
	}
	return false
}
