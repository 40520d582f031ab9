package config

type DexConfig struct {
	TypeChart    map[string]map[string]float64 `yaml:"type_chart"`
	Natures      map[string]Nature             `yaml:"natures"`
	Moves        []Move                        `yaml:"moves"`
	DefaultMoves map[string]DefaultMoves       `yaml:"default_moves"`
	HealingMoves []string                      `yaml:"healing_moves"`
}

type Nature struct {
	Plus  string `yaml:"plus"`
	Minus string `yaml:"minus"`
}

type DefaultMoves struct {
	Physical string `yaml:"physical"`
	Special  string `yaml:"special"`
}

type Move struct {
	ID                 string         `yaml:"id"`
	Type               string         `yaml:"type"`
	Category           string         `yaml:"category"`
	BasePower          int            `yaml:"base_power"`
	Accuracy           float64        `yaml:"accuracy"`
	AlwaysHits         bool           `yaml:"always_hits"`
	Priority           int            `yaml:"priority"`
	Damage             int            `yaml:"damage"`
	LevelDamage        bool           `yaml:"level_damage"`
	Recoil             float64        `yaml:"recoil"`
	Drain              float64        `yaml:"drain"`
	Heal               float64        `yaml:"heal"`
	ExpectedHits       float64        `yaml:"expected_hits"`
	CritRatio          int            `yaml:"crit_ratio"`
	Target             string         `yaml:"target"`
	Boosts             map[string]int `yaml:"boosts"`
	SelfBoosts         map[string]int `yaml:"self_boosts"`
	Flags              []string       `yaml:"flags"`
	Weather            string         `yaml:"weather"`
	SelfDestruct       bool           `yaml:"self_destruct"`
	UseTargetOffensive bool           `yaml:"use_target_offensive"`
}
