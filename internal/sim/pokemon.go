package sim

import (
	"errors"
	"fmt"

	"battlebot/internal/battle"
	"battlebot/internal/engine"
)

var (
	ErrNegativeHP = errors.New("negative hp")
	ErrNoMoves    = errors.New("no usable moves")
)

// movesKnown is the size of a full moveset; opponents with fewer revealed
// moves get representative moves for their types.
const movesKnown = 4

// NodePokemon is a battler as the search sees it: the reported snapshot
// plus the simulated HP, stages, status, moves and effects. Values are
// never modified in place; every With method returns a new value.
type NodePokemon struct {
	base      *battle.Pokemon
	hp        int
	maxHP     int
	boosts    battle.Boosts
	status    battle.Status
	moves     []battle.Move
	effects   []battle.Effect
	firstTurn bool
}

// NewNodePokemon wraps p. bot marks the deciding side, whose moves are all
// known; an opponent's missing move slots are filled from the dex.
func NewNodePokemon(calc *engine.Calculator, p *battle.Pokemon, bot bool) (NodePokemon, error) {
	n := NodePokemon{
		base:      p,
		maxHP:     calc.MaxHP(p),
		hp:        calc.CurrentHP(p),
		boosts:    p.Boosts.Clone(),
		status:    p.Status,
		effects:   append([]battle.Effect(nil), p.Effects...),
		firstTurn: p.FirstTurn,
	}
	if n.hp < 0 {
		return NodePokemon{}, fmt.Errorf("%s: %d: %w", p.ID, n.hp, ErrNegativeHP)
	}
	if p.Status == battle.Fainted {
		n.hp = 0
	}
	n.moves = append([]battle.Move(nil), p.Moves...)
	if !bot && len(n.moves) < movesKnown {
		n.moves = EnrichMoves(calc.Dex(), p, n.moves)
	}
	if !n.Fainted() && len(n.moves) == 0 {
		return NodePokemon{}, fmt.Errorf("%s: %w", p.ID, ErrNoMoves)
	}
	return n, nil
}

// EnrichMoves adds, in front of known, one representative move for every
// type of p that no known move covers. The physical or special variant is
// chosen by whichever offensive base stat is higher.
func EnrichMoves(dex *battle.Dex, p *battle.Pokemon, known []battle.Move) []battle.Move {
	physical := p.BaseStats[battle.Atk] >= p.BaseStats[battle.SpA]
	var added []battle.Move
	for _, t := range p.Types {
		if t == "" || covers(known, t) {
			continue
		}
		if m, ok := dex.DefaultMove(t, physical); ok {
			added = append(added, m)
		}
	}
	return append(added, known...)
}

func covers(moves []battle.Move, t battle.Type) bool {
	for _, m := range moves {
		if m.Type == t {
			return true
		}
	}
	return false
}

func (n NodePokemon) Pokemon() *battle.Pokemon { return n.base }
func (n NodePokemon) ID() string               { return n.base.ID }
func (n NodePokemon) HP() int                  { return n.hp }
func (n NodePokemon) MaxHP() int               { return n.maxHP }
func (n NodePokemon) Status() battle.Status    { return n.status }
func (n NodePokemon) Fainted() bool            { return n.hp <= 0 }
func (n NodePokemon) FirstTurn() bool          { return n.firstTurn }

func (n NodePokemon) Fraction() float64 {
	if n.maxHP <= 0 {
		return 0
	}
	return float64(n.hp) / float64(n.maxHP)
}

func (n NodePokemon) Boosts() battle.Boosts    { return n.boosts.Clone() }
func (n NodePokemon) Moves() []battle.Move     { return append([]battle.Move(nil), n.moves...) }
func (n NodePokemon) Effects() []battle.Effect { return append([]battle.Effect(nil), n.effects...) }

// WithHP clamps hp to 0..MaxHP.
func (n NodePokemon) WithHP(hp int) NodePokemon {
	if hp < 0 {
		hp = 0
	}
	if hp > n.maxHP {
		hp = n.maxHP
	}
	n.hp = hp
	return n
}

func (n NodePokemon) WithBoosts(b battle.Boosts) NodePokemon {
	out := make(battle.Boosts, len(b))
	for k, v := range b {
		out[k] = battle.ClampStage(v)
	}
	n.boosts = out
	return n
}

func (n NodePokemon) WithStatus(s battle.Status) NodePokemon {
	n.status = s
	return n
}

func (n NodePokemon) WithMoves(moves []battle.Move) NodePokemon {
	n.moves = append([]battle.Move(nil), moves...)
	return n
}

func (n NodePokemon) WithEffects(effects []battle.Effect) NodePokemon {
	n.effects = append([]battle.Effect(nil), effects...)
	return n
}

func (n NodePokemon) WithFirstTurn(first bool) NodePokemon {
	n.firstTurn = first
	return n
}

// View returns a copy of the snapshot carrying the simulated state, which
// is what the engine formulas read.
func (n NodePokemon) View() *battle.Pokemon {
	v := *n.base
	v.MaxHP = n.maxHP
	v.CurrentHP = n.hp
	v.HPFraction = n.Fraction()
	v.Boosts = n.boosts.Clone()
	v.Status = n.status
	if n.Fainted() {
		v.Status = battle.Fainted
	}
	v.Moves = n.Moves()
	v.Effects = n.Effects()
	v.FirstTurn = n.firstTurn
	return &v
}

func (n NodePokemon) String() string {
	return fmt.Sprintf("%s %d/%d", n.base.ID, n.hp, n.maxHP)
}
