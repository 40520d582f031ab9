package battle

type Type string

const (
	Normal   Type = "normal"
	Fire     Type = "fire"
	Water    Type = "water"
	Electric Type = "electric"
	Grass    Type = "grass"
	Ice      Type = "ice"
	Fighting Type = "fighting"
	Poison   Type = "poison"
	Ground   Type = "ground"
	Flying   Type = "flying"
	Psychic  Type = "psychic"
	Bug      Type = "bug"
	Rock     Type = "rock"
	Ghost    Type = "ghost"
	Dragon   Type = "dragon"
	Dark     Type = "dark"
	Steel    Type = "steel"
	Fairy    Type = "fairy"
)

type Stat string

const (
	HP       Stat = "hp"
	Atk      Stat = "atk"
	Def      Stat = "def"
	SpA      Stat = "spa"
	SpD      Stat = "spd"
	Spe      Stat = "spe"
	Accuracy Stat = "accuracy"
	Evasion  Stat = "evasion"
)

// Stats lists the six stats that have a base value.
var Stats = []Stat{HP, Atk, Def, SpA, SpD, Spe}

func (s Stat) Valid() bool {
	switch s {
	case HP, Atk, Def, SpA, SpD, Spe, Accuracy, Evasion:
		return true
	}
	return false
}

// Accuracy and evasion have no base value and use the 3-based stage table.
func (s Stat) IsAccuracyStat() bool { return s == Accuracy || s == Evasion }

type Status string

const (
	NoStatus Status = ""
	Burn     Status = "brn"
	Freeze   Status = "frz"
	Paralyze Status = "par"
	Poisoned Status = "psn"
	Sleep    Status = "slp"
	Toxic    Status = "tox"
	Fainted  Status = "fnt"
)

// Afflicted reports a major status condition (fainting is not one).
func (s Status) Afflicted() bool {
	switch s {
	case Burn, Freeze, Paralyze, Poisoned, Sleep, Toxic:
		return true
	}
	return false
}

type Weather string

const (
	NoWeather     Weather = ""
	SunnyDay      Weather = "sunnyday"
	RainDance     Weather = "raindance"
	Sandstorm     Weather = "sandstorm"
	Hail          Weather = "hail"
	DesolateLand  Weather = "desolateland"
	PrimordialSea Weather = "primordialsea"
	DeltaStream   Weather = "deltastream"
)

func (w Weather) Sunny() bool { return w == SunnyDay || w == DesolateLand }
func (w Weather) Rainy() bool { return w == RainDance || w == PrimordialSea }

type Field string

const (
	ElectricTerrain Field = "electricterrain"
	GrassyTerrain   Field = "grassyterrain"
	MistyTerrain    Field = "mistyterrain"
	PsychicTerrain  Field = "psychicterrain"
	TrickRoom       Field = "trickroom"
	Gravity         Field = "gravity"
)

func HasField(fields []Field, f Field) bool {
	for _, x := range fields {
		if x == f {
			return true
		}
	}
	return false
}

type SideCondition string

const (
	Reflect     SideCondition = "reflect"
	LightScreen SideCondition = "lightscreen"
	AuroraVeil  SideCondition = "auroraveil"
	Tailwind    SideCondition = "tailwind"
	StealthRock SideCondition = "stealthrock"
	Spikes      SideCondition = "spikes"
)

type Category string

const (
	Physical   Category = "physical"
	Special    Category = "special"
	StatusMove Category = "status"
)

type Gender string

const (
	Male    Gender = "m"
	Female  Gender = "f"
	Neutral Gender = "n"
)

type Effect string

const (
	Confusion  Effect = "confusion"
	MagnetRise Effect = "magnetrise"
	FlashFire  Effect = "flashfire"
	Charge     Effect = "charge"
)

// Boosts maps a stat to its stage. A nil map is all zeros.
type Boosts map[Stat]int

const (
	MinStage = -6
	MaxStage = 6
)

func ClampStage(v int) int {
	if v < MinStage {
		return MinStage
	}
	if v > MaxStage {
		return MaxStage
	}
	return v
}

func (b Boosts) Get(s Stat) int { return b[s] }

func (b Boosts) Clone() Boosts {
	out := make(Boosts, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Apply returns a copy with delta added to every listed stat, clamped to
// the stage range. The receiver is left untouched.
func (b Boosts) Apply(delta Boosts) Boosts {
	out := b.Clone()
	for k, v := range delta {
		out[k] = ClampStage(out[k] + v)
	}
	return out
}

// PositiveSum is the number of raised stages across all stats.
func (b Boosts) PositiveSum() int {
	n := 0
	for _, v := range b {
		if v > 0 {
			n += v
		}
	}
	return n
}
