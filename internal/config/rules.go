package config

// RulesConfig groups the ability/item/field modifier records by the step of
// the calculation that consumes them.
type RulesConfig struct {
	IgnoreAbilities []string `yaml:"ignore_abilities"`
	TypeChanges     []Rule   `yaml:"type_changes"`
	Stats           []Rule   `yaml:"stats"`
	Power           []Rule   `yaml:"power"`
	Attack          []Rule   `yaml:"attack"`
	Damage          []Rule   `yaml:"damage"`
}

type Rule struct {
	ID          string   `yaml:"id"`
	Holder      string   `yaml:"holder"`
	Stat        string   `yaml:"stat"`
	Abilities   []string `yaml:"abilities"`
	Possible    bool     `yaml:"possible"`
	Items       []string `yaml:"items"`
	Species     []string `yaml:"species"`
	SpeciesLike string   `yaml:"species_like"`
	Multiplier  float64  `yaml:"multiplier"`
	Type        string   `yaml:"type"`
	Ignorable   bool     `yaml:"ignorable"`
	When        When     `yaml:"when"`
	Note        string   `yaml:"note"`
}

// When is a conjunction: every field that is set must hold.
type When struct {
	Weather         []string `yaml:"weather"`
	NotWeather      []string `yaml:"not_weather"`
	Fields          []string `yaml:"fields"`
	Types           []string `yaml:"types"`
	Statused        *bool    `yaml:"statused"`
	Status          []string `yaml:"status"`
	Dynamaxed       *bool    `yaml:"dynamaxed"`
	HPAtMost        float64  `yaml:"hp_at_most"`
	FullHP          bool     `yaml:"full_hp"`
	Effects         []string `yaml:"effects"`
	NotItems        []string `yaml:"not_items"`
	MoveTypes       []string `yaml:"move_types"`
	NotMoveTypes    []string `yaml:"not_move_types"`
	MoveFlags       []string `yaml:"move_flags"`
	Categories      []string `yaml:"categories"`
	MaxBasePower    int      `yaml:"max_base_power"`
	Recoil          bool     `yaml:"recoil"`
	Retyped         bool     `yaml:"retyped"`
	SuperEffective  bool     `yaml:"super_effective"`
	NotSuper        bool     `yaml:"not_super_effective"`
	OtherStatus     []string `yaml:"other_status"`
	OtherAbilityNot []string `yaml:"other_ability_not"`
	SameGender      *bool    `yaml:"same_gender"`
	SideConditions  []string `yaml:"side_conditions"`
}
