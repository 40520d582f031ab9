package battle

import "strings"

// UnknownItem marks an opponent item that has not been revealed yet.
const UnknownItem = "unknown_item"

// Pokemon is the read-only snapshot of one battler as reported by the
// protocol layer. Known is set for the deciding side, whose exact stats,
// HP and moves are visible; for the opponent only base stats and the HP
// fraction can be relied on.
type Pokemon struct {
	ID                string       `yaml:"id" json:"id"`
	Species           string       `yaml:"species" json:"species"`
	Level             int          `yaml:"level" json:"level"`
	Gender            Gender       `yaml:"gender" json:"gender,omitempty"`
	Types             []Type       `yaml:"types" json:"types"`
	BaseStats         map[Stat]int `yaml:"base_stats" json:"base_stats"`
	Stats             map[Stat]int `yaml:"stats" json:"stats,omitempty"`
	Known             bool         `yaml:"known" json:"known"`
	MaxHP             int          `yaml:"max_hp" json:"max_hp,omitempty"`
	CurrentHP         int          `yaml:"current_hp" json:"current_hp,omitempty"`
	HPFraction        float64      `yaml:"hp_fraction" json:"hp_fraction"`
	Status            Status       `yaml:"status" json:"status,omitempty"`
	StatusTurns       int          `yaml:"status_turns" json:"status_turns,omitempty"`
	Boosts            Boosts       `yaml:"boosts" json:"boosts,omitempty"`
	Ability           string       `yaml:"ability" json:"ability,omitempty"`
	PossibleAbilities []string     `yaml:"possible_abilities" json:"possible_abilities,omitempty"`
	Item              string       `yaml:"item" json:"item,omitempty"`
	Moves             []Move       `yaml:"moves" json:"moves,omitempty"`
	Effects           []Effect     `yaml:"effects" json:"effects,omitempty"`
	FirstTurn         bool         `yaml:"first_turn" json:"first_turn,omitempty"`
	Dynamaxed         bool         `yaml:"dynamaxed" json:"dynamaxed,omitempty"`
	Transformed       bool         `yaml:"transformed" json:"transformed,omitempty"`
	Active            bool         `yaml:"active" json:"active,omitempty"`
	Weight            float64      `yaml:"weight" json:"weight,omitempty"`
}

func (p *Pokemon) HasType(t Type) bool {
	for _, x := range p.Types {
		if x == t {
			return true
		}
	}
	return false
}

func (p *Pokemon) HasEffect(e Effect) bool {
	for _, x := range p.Effects {
		if x == e {
			return true
		}
	}
	return false
}

// HasItem is false for no item; an unrevealed item still counts as held.
func (p *Pokemon) HasItem() bool { return p.Item != "" }

// MayHaveAbility checks the revealed ability first and then every ability
// the species could have.
func (p *Pokemon) MayHaveAbility(ids ...string) bool {
	for _, id := range ids {
		if p.Ability == id {
			return true
		}
		for _, a := range p.PossibleAbilities {
			if a == id {
				return true
			}
		}
	}
	return false
}

func (p *Pokemon) Fainted() bool {
	return p.Status == Fainted || p.Fraction() <= 0
}

// Fraction is the remaining HP share in 0..1. Exact HP wins over the
// reported fraction when the maximum is known.
func (p *Pokemon) Fraction() float64 {
	if p.MaxHP > 0 {
		return float64(p.CurrentHP) / float64(p.MaxHP)
	}
	return p.HPFraction
}

func (p *Pokemon) BaseTotal() int {
	n := 0
	for _, s := range Stats {
		n += p.BaseStats[s]
	}
	return n
}

func (p *Pokemon) Move(id string) (Move, bool) {
	for _, m := range p.Moves {
		if m.ID == id {
			return m, true
		}
	}
	return Move{}, false
}

func (p *Pokemon) String() string {
	var b strings.Builder
	b.WriteString(p.Species)
	if p.ID != "" && p.ID != p.Species {
		b.WriteString("(" + p.ID + ")")
	}
	return b.String()
}
