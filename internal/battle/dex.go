package battle

import (
	"battlebot/internal/config"
	"battlebot/internal/util"
)

// TypeChart maps attacking type -> defending type -> multiplier. Missing
// pairs are neutral.
type TypeChart map[Type]map[Type]float64

func (tc TypeChart) Multiplier(atk Type, def ...Type) float64 {
	m := 1.0
	row := tc[atk]
	for _, d := range def {
		if d == "" {
			continue
		}
		if v, ok := row[d]; ok {
			m *= v
		}
	}
	return m
}

type NatureMod struct {
	Plus  Stat
	Minus Stat
}

type defaultPair struct {
	physical Move
	special  Move
}

// Dex holds the static game data the engines read: type chart, natures,
// the movedex and the representative move per type.
type Dex struct {
	Chart    TypeChart
	natures  map[string]NatureMod
	moves    map[string]Move
	defaults map[Type]defaultPair
	healing  map[string]bool
}

func NewDex(cfg *config.DexConfig) *Dex {
	d := &Dex{
		Chart:    TypeChart{},
		natures:  map[string]NatureMod{},
		moves:    map[string]Move{},
		defaults: map[Type]defaultPair{},
		healing:  map[string]bool{},
	}
	if cfg == nil {
		return d
	}
	for atk, row := range cfg.TypeChart {
		r := make(map[Type]float64, len(row))
		for def, v := range row {
			r[Type(def)] = v
		}
		d.Chart[Type(atk)] = r
	}
	for name, n := range cfg.Natures {
		d.natures[util.ToID(name)] = NatureMod{Plus: Stat(n.Plus), Minus: Stat(n.Minus)}
	}
	for _, mc := range cfg.Moves {
		m := moveFromConfig(mc)
		d.moves[m.ID] = m
	}
	for typ, dm := range cfg.DefaultMoves {
		t := Type(typ)
		d.defaults[t] = defaultPair{
			physical: d.lookupOr(dm.Physical, t, Physical),
			special:  d.lookupOr(dm.Special, t, Special),
		}
	}
	for _, id := range cfg.HealingMoves {
		d.healing[util.ToID(id)] = true
	}
	return d
}

func moveFromConfig(mc config.Move) Move {
	m := Move{
		ID:                 util.ToID(mc.ID),
		Type:               Type(mc.Type),
		Category:           Category(mc.Category),
		BasePower:          mc.BasePower,
		Accuracy:           mc.Accuracy,
		AlwaysHits:         mc.AlwaysHits,
		Priority:           mc.Priority,
		Damage:             mc.Damage,
		LevelDamage:        mc.LevelDamage,
		Recoil:             mc.Recoil,
		Drain:              mc.Drain,
		Heal:               mc.Heal,
		ExpectedHits:       mc.ExpectedHits,
		CritRatio:          mc.CritRatio,
		Target:             mc.Target,
		Flags:              append([]string(nil), mc.Flags...),
		Weather:            Weather(mc.Weather),
		SelfDestruct:       mc.SelfDestruct,
		UseTargetOffensive: mc.UseTargetOffensive,
	}
	if m.Target == "" {
		m.Target = TargetNormal
	}
	if len(mc.Boosts) > 0 {
		m.Boosts = Boosts{}
		for k, v := range mc.Boosts {
			m.Boosts[Stat(k)] = v
		}
	}
	if len(mc.SelfBoosts) > 0 {
		m.SelfBoosts = Boosts{}
		for k, v := range mc.SelfBoosts {
			m.SelfBoosts[Stat(k)] = v
		}
	}
	return m
}

func (d *Dex) lookupOr(id string, t Type, c Category) Move {
	if m, ok := d.moves[util.ToID(id)]; ok {
		return m
	}
	// generic stand-in when the table names a move the movedex lacks
	return Move{
		ID:        "default" + string(t) + string(c),
		Type:      t,
		Category:  c,
		BasePower: 80,
		Accuracy:  1,
		Target:    TargetNormal,
	}
}

func (d *Dex) Move(id string) (Move, bool) {
	m, ok := d.moves[util.ToID(id)]
	return m, ok
}

// Resolve fills a bare move id from the movedex. Fully described moves are
// returned as given.
func (d *Dex) Resolve(m Move) (Move, bool) {
	if m.Described() {
		return m, true
	}
	full, ok := d.Move(m.ID)
	return full, ok
}

// DefaultMove returns the representative move of type t for a physical or
// special attacker.
func (d *Dex) DefaultMove(t Type, physical bool) (Move, bool) {
	p, ok := d.defaults[t]
	if !ok {
		return Move{}, false
	}
	if physical {
		return p.physical, true
	}
	return p.special, true
}

func (d *Dex) Nature(name string) (NatureMod, bool) {
	id := util.ToID(name)
	if id == "" || id == "neutral" {
		return NatureMod{}, true
	}
	n, ok := d.natures[id]
	return n, ok
}

func (d *Dex) IsHealingMove(id string) bool { return d.healing[id] }

// Effectiveness is the type chart multiplier of t against p's types.
func (d *Dex) Effectiveness(t Type, p *Pokemon) float64 {
	return d.Chart.Multiplier(t, p.Types...)
}
