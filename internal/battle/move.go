package battle

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// CritAlways is the crit ratio of moves that always land a critical hit.
const CritAlways = 6

type Move struct {
	ID                 string   `yaml:"id" json:"id"`
	Type               Type     `yaml:"type" json:"type"`
	Category           Category `yaml:"category" json:"category"`
	BasePower          int      `yaml:"base_power" json:"base_power"`
	Accuracy           float64  `yaml:"accuracy" json:"accuracy,omitempty"`
	AlwaysHits         bool     `yaml:"always_hits" json:"always_hits,omitempty"`
	Priority           int      `yaml:"priority" json:"priority,omitempty"`
	Damage             int      `yaml:"damage" json:"damage,omitempty"`
	LevelDamage        bool     `yaml:"level_damage" json:"level_damage,omitempty"`
	Recoil             float64  `yaml:"recoil" json:"recoil,omitempty"`
	Drain              float64  `yaml:"drain" json:"drain,omitempty"`
	Heal               float64  `yaml:"heal" json:"heal,omitempty"`
	ExpectedHits       float64  `yaml:"expected_hits" json:"expected_hits,omitempty"`
	CritRatio          int      `yaml:"crit_ratio" json:"crit_ratio,omitempty"`
	Target             string   `yaml:"target" json:"target,omitempty"`
	Boosts             Boosts   `yaml:"boosts" json:"boosts,omitempty"`
	SelfBoosts         Boosts   `yaml:"self_boosts" json:"self_boosts,omitempty"`
	Flags              []string `yaml:"flags" json:"flags,omitempty"`
	Weather            Weather  `yaml:"weather" json:"weather,omitempty"`
	SelfDestruct       bool     `yaml:"self_destruct" json:"self_destruct,omitempty"`
	UseTargetOffensive bool     `yaml:"use_target_offensive" json:"use_target_offensive,omitempty"`
}

const (
	TargetSelf   = "self"
	TargetNormal = "normal"
)

// UnmarshalYAML accepts either a bare move id or a full mapping.
func (m *Move) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		m.ID = node.Value
		return nil
	}
	type plain Move
	var p plain
	if err := node.Decode(&p); err != nil {
		return fmt.Errorf("move: %w", err)
	}
	*m = Move(p)
	return nil
}

func (m Move) HasFlag(f string) bool {
	for _, x := range m.Flags {
		if x == f {
			return true
		}
	}
	return false
}

// Hits is the whole number of expected hits, at least one.
func (m Move) Hits() int {
	if n := int(m.ExpectedHits); n > 1 {
		return n
	}
	return 1
}

func (m Move) IsStatus() bool { return m.Category == StatusMove }

// Described reports whether the move carries more than a bare id.
func (m Move) Described() bool { return m.Type != "" && m.Category != "" }
