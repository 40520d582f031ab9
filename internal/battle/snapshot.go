package battle

import (
	"errors"
	"fmt"
	"os"

	"battlebot/internal/util"

	"gopkg.in/yaml.v3"
)

var ErrUnknownMove = errors.New("unknown move")

type Side struct {
	Active     Pokemon         `yaml:"active" json:"active"`
	Bench      []Pokemon       `yaml:"bench" json:"bench,omitempty"`
	Conditions []SideCondition `yaml:"conditions" json:"conditions,omitempty"`
}

// Snapshot is everything the decision core gets to see for one turn.
type Snapshot struct {
	Bot           Side     `yaml:"bot" json:"bot"`
	Opponent      Side     `yaml:"opponent" json:"opponent"`
	Weather       Weather  `yaml:"weather" json:"weather,omitempty"`
	WeatherTurns  int      `yaml:"weather_turns" json:"weather_turns,omitempty"`
	Fields        []Field  `yaml:"fields" json:"fields,omitempty"`
	LegalMoves    []string `yaml:"legal_moves" json:"legal_moves,omitempty"`
	LegalSwitches []string `yaml:"legal_switches" json:"legal_switches,omitempty"`
	CanDynamax    bool     `yaml:"can_dynamax" json:"can_dynamax,omitempty"`
}

func ParseSnapshot(b []byte) (*Snapshot, error) {
	var s Snapshot
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return &s, nil
}

func ReadSnapshot(path string) (*Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := ParseSnapshot(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Normalize folds every identifier into table form and resolves bare move
// ids against the movedex. The deciding side is marked Known when its exact
// stats are present.
func (s *Snapshot) Normalize(d *Dex) error {
	if err := normalizePokemon(&s.Bot.Active, d, true); err != nil {
		return err
	}
	s.Bot.Active.Active = true
	for i := range s.Bot.Bench {
		if err := normalizePokemon(&s.Bot.Bench[i], d, true); err != nil {
			return err
		}
	}
	if err := normalizePokemon(&s.Opponent.Active, d, false); err != nil {
		return err
	}
	s.Opponent.Active.Active = true
	for i := range s.Opponent.Bench {
		if err := normalizePokemon(&s.Opponent.Bench[i], d, false); err != nil {
			return err
		}
	}
	s.Weather = Weather(util.ToID(string(s.Weather)))
	if s.Weather != NoWeather && s.WeatherTurns < 1 {
		s.WeatherTurns = 1
	}
	for i, f := range s.Fields {
		s.Fields[i] = Field(util.ToID(string(f)))
	}
	for i, c := range s.Bot.Conditions {
		s.Bot.Conditions[i] = SideCondition(util.ToID(string(c)))
	}
	for i, c := range s.Opponent.Conditions {
		s.Opponent.Conditions[i] = SideCondition(util.ToID(string(c)))
	}
	for i, m := range s.LegalMoves {
		s.LegalMoves[i] = util.ToID(m)
	}
	for i, id := range s.LegalSwitches {
		s.LegalSwitches[i] = util.ToID(id)
	}
	return nil
}

func normalizePokemon(p *Pokemon, d *Dex, bot bool) error {
	p.Species = util.ToID(p.Species)
	if p.ID == "" {
		p.ID = p.Species
	}
	p.ID = util.ToID(p.ID)
	if p.Level == 0 {
		p.Level = 100
	}
	for i, t := range p.Types {
		p.Types[i] = Type(util.ToID(string(t)))
	}
	p.Ability = util.ToID(p.Ability)
	for i, a := range p.PossibleAbilities {
		p.PossibleAbilities[i] = util.ToID(a)
	}
	if p.Item != UnknownItem {
		p.Item = util.ToID(p.Item)
	}
	for i := range p.Moves {
		p.Moves[i].ID = util.ToID(p.Moves[i].ID)
		m, ok := d.Resolve(p.Moves[i])
		if !ok {
			return fmt.Errorf("%s: %q: %w", p.Species, p.Moves[i].ID, ErrUnknownMove)
		}
		p.Moves[i] = m
	}
	// opponent stats are always estimated from base stats
	p.Known = bot && p.MaxHP > 0 && len(p.Stats) > 0
	if p.MaxHP > 0 {
		p.HPFraction = float64(p.CurrentHP) / float64(p.MaxHP)
	} else if p.HPFraction == 0 && p.Status != Fainted {
		// an omitted fraction means full health
		p.HPFraction = 1
	}
	return nil
}

// BenchMember looks up a deciding-side bench entry by id.
func (s *Snapshot) BenchMember(id string) (*Pokemon, bool) {
	for i := range s.Bot.Bench {
		if s.Bot.Bench[i].ID == id {
			return &s.Bot.Bench[i], true
		}
	}
	return nil, false
}
