package config

import (
	"errors"
	"fmt"
)

var (
	ErrDepth     = errors.New("search depth must be at least 1")
	ErrHeuristic = errors.New("unknown heuristic")
	ErrStrategy  = errors.New("unknown strategy")
)

type Settings struct {
	Search    SearchSettings    `yaml:"search"`
	Heuristic HeuristicSettings `yaml:"heuristic"`
	Bot       BotSettings       `yaml:"bot"`
	Log       LogSettings       `yaml:"log"`
}

type SearchSettings struct {
	MaxDepth           int     `yaml:"max_depth"`
	MoveFirstThreshold float64 `yaml:"move_first_threshold"`
}

type HeuristicSettings struct {
	Name string       `yaml:"name"`
	Team TeamSettings `yaml:"team"`
}

// TeamSettings are the coefficients of the team heuristic, as produced by
// the offline parameter search.
type TeamSettings struct {
	TeamHP     float64 `yaml:"team_hp"`
	Alive      float64 `yaml:"alive"`
	OpponentHP float64 `yaml:"opponent_hp"`
	Penalty    float64 `yaml:"penalty"`
}

type BotSettings struct {
	Seed        int64  `yaml:"seed"`
	Gimmick     bool   `yaml:"gimmick"`
	SwitchGuard bool   `yaml:"switch_guard"`
	Strategy    string `yaml:"strategy"`
}

// Decision strategies. An empty strategy searches.
const (
	StrategyMinimax    = "minimax"
	StrategyBestDamage = "best_damage"
	StrategyMaxPower   = "max_power"
	StrategyRules      = "rules"
)

var Strategies = []string{StrategyMinimax, StrategyBestDamage, StrategyMaxPower, StrategyRules}

type LogSettings struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

var Heuristics = []string{"hp_diff", "opponent_hp", "showdown", "team"}

func (s *Settings) Validate() error {
	if s.Search.MaxDepth < 1 {
		return fmt.Errorf("max_depth %d: %w", s.Search.MaxDepth, ErrDepth)
	}
	if !contains(Heuristics, s.Heuristic.Name) {
		return fmt.Errorf("%q: %w", s.Heuristic.Name, ErrHeuristic)
	}
	if s.Bot.Strategy != "" && !contains(Strategies, s.Bot.Strategy) {
		return fmt.Errorf("%q: %w", s.Bot.Strategy, ErrStrategy)
	}
	if s.Heuristic.Team.Penalty < 0 {
		return fmt.Errorf("team penalty %v must not be negative", s.Heuristic.Team.Penalty)
	}
	if s.Search.MoveFirstThreshold < 0 || s.Search.MoveFirstThreshold > 1 {
		return fmt.Errorf("move_first_threshold %v outside 0..1", s.Search.MoveFirstThreshold)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
