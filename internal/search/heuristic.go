package search

import (
	"fmt"

	"battlebot/internal/config"
	"battlebot/internal/sim"
)

// Heuristic scores a node from the deciding side's point of view; higher is
// better. turns is the number of full turns simulated to reach the node.
type Heuristic interface {
	Compute(node *sim.BattleStatus, turns int) float64
}

type HeuristicFunc func(node *sim.BattleStatus, turns int) float64

func (f HeuristicFunc) Compute(node *sim.BattleStatus, turns int) float64 { return f(node, turns) }

// HPDiff is the HP share of the bot's active minus the opponent's.
var HPDiff = HeuristicFunc(func(n *sim.BattleStatus, _ int) float64 {
	return n.Act.Fraction() - n.Opp.Fraction()
})

// OpponentHP only looks at how hurt the opposing active is.
var OpponentHP = HeuristicFunc(func(n *sim.BattleStatus, _ int) float64 {
	return -n.Opp.Fraction()
})

// Showdown weighs the opponent's HP three times the bot's and charges 0.3
// per turn so faster wins rank higher.
var Showdown = HeuristicFunc(func(n *sim.BattleStatus, turns int) float64 {
	return n.Act.Fraction() - 3*n.Opp.Fraction() - 0.3*float64(turns)
})

// teamSize is the full team the team heuristic normalizes against.
const teamSize = 6

// Team combines the bot's whole-team HP and survivors with the opposing
// active's HP and a per-turn penalty.
type Team struct {
	TeamHP     float64
	Alive      float64
	OpponentHP float64
	Penalty    float64
}

// DefaultTeam holds the coefficients found by the offline parameter search.
var DefaultTeam = Team{
	TeamHP:     0.29845110404242714,
	Alive:      0.12477383583753021,
	OpponentHP: 0.18681976327640784,
	Penalty:    0.036475451823316817,
}

func (t Team) Compute(n *sim.BattleStatus, turns int) float64 {
	return t.TeamHP*(n.TeamFraction()/teamSize) +
		t.Alive*(float64(n.Alive())/teamSize) -
		t.OpponentHP*n.Opp.Fraction() -
		t.Penalty*float64(turns)
}

// NewHeuristic resolves a heuristic by its configured name.
func NewHeuristic(cfg config.HeuristicSettings) (Heuristic, error) {
	switch cfg.Name {
	case "hp_diff":
		return HPDiff, nil
	case "opponent_hp":
		return OpponentHP, nil
	case "showdown":
		return Showdown, nil
	case "team", "":
		t := Team(cfg.Team)
		if t == (Team{}) {
			t = DefaultTeam
		}
		return t, nil
	}
	return nil, fmt.Errorf("%q: %w", cfg.Name, config.ErrHeuristic)
}
