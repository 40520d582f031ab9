package sim

import (
	"fmt"

	"battlebot/internal/battle"
	"battlebot/internal/engine"
)

// BattleStatus is one node of the search tree: the state of the battle
// after Action was taken from the Parent node.
type BattleStatus struct {
	ID       int
	Parent   int
	Act      NodePokemon
	Opp      NodePokemon
	Switches []*battle.Pokemon
	OppTeam  []*battle.Pokemon
	Weather  engine.WeatherState
	Fields   []battle.Field
	ActSide  []battle.SideCondition
	OppSide  []battle.SideCondition
	Action   battle.Action
	// BotTurn is set when the deciding side is the next to act.
	BotTurn   bool
	MoveFirst bool
	Score     float64
}

func (s *BattleStatus) Env() engine.Env {
	return engine.Env{Weather: s.Weather.Kind, Fields: s.Fields}
}

// ActActions lists what the deciding side can do: its moves while its active
// battler stands, then a switch to every bench candidate.
func (s *BattleStatus) ActActions() []battle.Action {
	var out []battle.Action
	if !s.Act.Fainted() {
		for _, m := range s.Act.moves {
			out = append(out, battle.UseMove(m))
		}
	}
	for _, p := range s.Switches {
		if !p.Fainted() {
			out = append(out, battle.SwitchTo(p.ID))
		}
	}
	return out
}

// OppActions lists the opponent's moves. The opponent is never assumed to
// switch.
func (s *BattleStatus) OppActions() []battle.Action {
	if s.Opp.Fainted() {
		return nil
	}
	out := make([]battle.Action, 0, len(s.Opp.moves))
	for _, m := range s.Opp.moves {
		out = append(out, battle.UseMove(m))
	}
	return out
}

// Actions is ActActions or OppActions depending on the side to move.
func (s *BattleStatus) Actions(botTurn bool) []battle.Action {
	if botTurn {
		return s.ActActions()
	}
	return s.OppActions()
}

// ForcedSwitch reports whether the deciding side must replace its active
// battler, either because it fainted or because it has no move left.
func (s *BattleStatus) ForcedSwitch() bool {
	return s.Act.Fainted() || len(s.Act.moves) == 0
}

// IsTerminal reports whether the given side's active battler has fainted
// with nothing left to do.
func (s *BattleStatus) IsTerminal(botTurn bool) bool {
	active := s.Opp
	if botTurn {
		active = s.Act
	}
	return active.Fainted() && len(s.Actions(botTurn)) == 0
}

// TeamFraction is the deciding side's summed HP share over active and bench.
func (s *BattleStatus) TeamFraction() float64 {
	f := s.Act.Fraction()
	for _, p := range s.Switches {
		f += p.Fraction()
	}
	return f
}

// Alive counts the deciding side's battlers that have not fainted.
func (s *BattleStatus) Alive() int {
	n := 0
	if !s.Act.Fainted() {
		n++
	}
	for _, p := range s.Switches {
		if !p.Fainted() {
			n++
		}
	}
	return n
}

func (s *BattleStatus) String() string {
	return fmt.Sprintf("#%d<-%d act=%s opp=%s %s score=%.3f mf=%t",
		s.ID, s.Parent, s.Act, s.Opp, s.Action, s.Score, s.MoveFirst)
}

// pruneFainted drops fainted members. The input slice is not modified.
func pruneFainted(team []*battle.Pokemon) []*battle.Pokemon {
	keep := true
	for _, p := range team {
		if p.Fainted() {
			keep = false
			break
		}
	}
	if keep {
		return team
	}
	out := make([]*battle.Pokemon, 0, len(team))
	for _, p := range team {
		if !p.Fainted() {
			out = append(out, p)
		}
	}
	return out
}
