package search

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"battlebot/internal/battle"
	"battlebot/internal/config"
	"battlebot/internal/sim"
)

var ErrNoActions = errors.New("search reached no concrete action")

// Result is the outcome of one search.
type Result struct {
	Action battle.Action
	Score  float64
	// Leaf is the arena index of the node the score came from.
	Leaf  int
	Nodes int
}

// Searcher runs a depth-limited alpha-beta search. Depth counts full turns:
// the deciding side moves, then the opponent answers, and only then does
// the remaining depth go down by one. A forced switch is a turn of its own
// with no answer.
type Searcher struct {
	model     *sim.Model
	heuristic Heuristic
	depth     int
	log       zerolog.Logger
}

func New(model *sim.Model, h Heuristic, depth int, log zerolog.Logger) (*Searcher, error) {
	if depth < 1 {
		return nil, fmt.Errorf("depth %d: %w", depth, config.ErrDepth)
	}
	if h == nil {
		h = DefaultTeam
	}
	return &Searcher{model: model, heuristic: h, depth: depth, log: log}, nil
}

func (s *Searcher) Depth() int { return s.depth }

// Search explores every line from root and returns the root action on the
// path to the best leaf. The deciding side moves first at the root.
func (s *Searcher) Search(root sim.BattleStatus) (Result, error) {
	tree := sim.NewTree(root)
	score, leaf, err := s.alphaBeta(tree, 0, s.depth, math.Inf(-1), math.Inf(1), true)
	if err != nil {
		return Result{}, err
	}
	res := Result{Score: score, Leaf: leaf, Nodes: tree.Len(), Action: tree.RootAction(leaf)}
	s.log.Debug().
		Int("nodes", res.Nodes).
		Int("leaf", leaf).
		Float64("score", score).
		Str("action", res.Action.String()).
		Msg("search done")
	if res.Action.IsZero() {
		return res, ErrNoActions
	}
	return res, nil
}

func (s *Searcher) leaf(tree *sim.Tree, id int, node *sim.BattleStatus, depth int) (float64, int, error) {
	score := s.heuristic.Compute(node, s.depth-depth)
	tree.SetScore(id, score)
	return score, id, nil
}

func (s *Searcher) alphaBeta(tree *sim.Tree, id, depth int, alpha, beta float64, botTurn bool) (float64, int, error) {
	// the arena may grow below, so work on a copy of the node
	node := *tree.Node(id)
	if depth == 0 || node.IsTerminal(botTurn) {
		return s.leaf(tree, id, &node, depth)
	}
	actions := node.Actions(botTurn)
	if len(actions) == 0 {
		return s.leaf(tree, id, &node, depth)
	}

	best, bestLeaf := math.Inf(1), -1
	if botTurn {
		best = math.Inf(-1)
		orderActions(actions, node.MoveFirst)
	}
	for _, a := range actions {
		child, err := s.model.Simulate(&node, a, botTurn)
		if err != nil {
			return 0, 0, fmt.Errorf("simulate %s: %w", a, err)
		}
		cid := tree.Add(id, child)

		// the turn closes whenever the deciding side is next to act
		next := depth
		if child.BotTurn {
			next--
		}
		score, leaf, err := s.alphaBeta(tree, cid, next, alpha, beta, child.BotTurn)
		if err != nil {
			return 0, 0, err
		}
		if id == 0 {
			s.log.Debug().Str("action", a.String()).Float64("score", score).Msg("root child")
		}

		if botTurn {
			if bestLeaf < 0 || score > best {
				best, bestLeaf = score, leaf
			}
			alpha = math.Max(alpha, best)
		} else {
			if bestLeaf < 0 || score < best {
				best, bestLeaf = score, leaf
			}
			beta = math.Min(beta, best)
		}
		if beta <= alpha {
			break
		}
	}
	tree.SetScore(id, best)
	return best, bestLeaf, nil
}

// orderActions sorts the deciding side's moves by base power, strongest
// first, with priority moves ahead when the side is not expected to move
// first. Switches keep their order after the moves.
func orderActions(actions []battle.Action, moveFirst bool) {
	sort.SliceStable(actions, func(i, j int) bool {
		a, b := actions[i], actions[j]
		if a.IsMove() != b.IsMove() {
			return a.IsMove()
		}
		if !a.IsMove() {
			return false
		}
		if !moveFirst && (a.Move.Priority > 0) != (b.Move.Priority > 0) {
			return a.Move.Priority > 0
		}
		return a.Move.BasePower > b.Move.BasePower
	})
}
