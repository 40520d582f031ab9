package sim

import (
	"errors"
	"fmt"

	"battlebot/internal/battle"
	"battlebot/internal/engine"
)

var ErrUnknownSwitch = errors.New("switch target not on the bench")

// DefaultMoveFirstThreshold is the outspeed probability from which the
// deciding side is assumed to move first.
const DefaultMoveFirstThreshold = 0.8

// Model builds and advances battle nodes with the engine formulas.
type Model struct {
	calc      *engine.Calculator
	threshold float64
}

func NewModel(calc *engine.Calculator, threshold float64) *Model {
	if threshold <= 0 {
		threshold = DefaultMoveFirstThreshold
	}
	return &Model{calc: calc, threshold: threshold}
}

func (m *Model) Calculator() *engine.Calculator { return m.calc }

// Root builds the node for the live battle state in snap, which must
// already be normalized. Only legal moves and switches are kept when the
// snapshot lists either. A standing active with no legal move is being
// forced out and can only switch.
func (m *Model) Root(snap *battle.Snapshot) (BattleStatus, error) {
	restricted := len(snap.LegalMoves) > 0 || len(snap.LegalSwitches) > 0
	botActive := snap.Bot.Active
	forced := false
	if restricted {
		legal := legalMoves(botActive.Moves, snap.LegalMoves)
		if len(legal) > 0 {
			botActive.Moves = legal
		} else {
			forced = !botActive.Fainted()
		}
	}
	act, err := NewNodePokemon(m.calc, &botActive, true)
	if err != nil {
		return BattleStatus{}, fmt.Errorf("bot active: %w", err)
	}
	if forced {
		act = act.WithMoves(nil)
	}
	oppActive := snap.Opponent.Active
	opp, err := NewNodePokemon(m.calc, &oppActive, false)
	if err != nil {
		return BattleStatus{}, fmt.Errorf("opponent active: %w", err)
	}

	var switches []*battle.Pokemon
	for i := range snap.Bot.Bench {
		p := &snap.Bot.Bench[i]
		if p.Fainted() || (restricted && !contains(snap.LegalSwitches, p.ID)) {
			continue
		}
		switches = append(switches, p)
	}
	var oppTeam []*battle.Pokemon
	for i := range snap.Opponent.Bench {
		if p := &snap.Opponent.Bench[i]; !p.Fainted() {
			oppTeam = append(oppTeam, p)
		}
	}

	root := BattleStatus{
		Parent:   NoParent,
		Act:      act,
		Opp:      opp,
		Switches: switches,
		OppTeam:  oppTeam,
		Weather:  engine.WeatherState{Kind: snap.Weather, Turns: snap.WeatherTurns},
		Fields:   snap.Fields,
		ActSide:  snap.Bot.Conditions,
		OppSide:  snap.Opponent.Conditions,
		BotTurn:  true,
	}
	root.MoveFirst = m.moveFirst(&root)
	return root, nil
}

func legalMoves(moves []battle.Move, legal []string) []battle.Move {
	var out []battle.Move
	for _, mv := range moves {
		if contains(legal, mv.ID) {
			out = append(out, mv)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func (m *Model) moveFirst(s *BattleStatus) bool {
	o := m.calc.OutspeedProbability(s.Act.View(), s.Opp.View(), s.Env())
	return o.P >= m.threshold
}

// Simulate returns the node reached when the side to move in n takes a.
// Damage dealt by the deciding side uses the low roll and damage taken uses
// the high roll. The weather ages once the opponent has moved, which closes
// the turn. A forced switch replaces the active between turns, so the
// deciding side moves again without an opponent reply. n is not modified;
// the child has no ID or parent yet.
func (m *Model) Simulate(n *BattleStatus, a battle.Action, botTurn bool) (BattleStatus, error) {
	child := *n
	child.Action = a
	child.BotTurn = !botTurn || (a.IsSwitch() && n.ForcedSwitch())
	child.Score = 0

	switch a.Kind {
	case battle.KindMove:
		m.applyMove(n, &child, a.Move, botTurn)
	case battle.KindSwitch:
		if err := m.applySwitch(&child, a.Switch, botTurn); err != nil {
			return BattleStatus{}, err
		}
	default:
		return BattleStatus{}, fmt.Errorf("simulate %s", a)
	}

	if !botTurn {
		child.Act = child.Act.WithFirstTurn(false)
		child.Opp = child.Opp.WithFirstTurn(false)
	}
	child.Switches = pruneFainted(child.Switches)
	child.OppTeam = pruneFainted(child.OppTeam)
	child.MoveFirst = m.moveFirst(&child)
	return child, nil
}

func (m *Model) applyMove(n, child *BattleStatus, move battle.Move, botTurn bool) {
	att, def := n.Act, n.Opp
	defSide := n.OppSide
	if !botTurn {
		att, def = n.Opp, n.Act
		defSide = n.ActSide
	}
	env := n.Env()
	attV, defV := att.View(), def.View()

	d := m.calc.ComputeDamage(move, attV, defV, engine.Conditions{Env: env, DefenderSide: defSide})
	damage := d.UB
	if botTurn {
		damage = d.LB
	}
	heal := m.calc.Healing(attV, defV, move, env)
	recoil := m.calc.Recoil(attV, move, damage)
	drain := m.calc.Drain(attV, move, damage)
	attBoosts, defBoosts := engine.UpdatedBoosts(att.boosts, def.boosts, move)

	att = att.WithHP(att.hp + heal + drain - recoil).WithBoosts(attBoosts)
	def = def.WithHP(def.hp - damage).WithBoosts(defBoosts)
	if d.Type == battle.Electric && !move.IsStatus() && attV.HasEffect(battle.Charge) {
		att = att.WithEffects(dropEffect(att.effects, battle.Charge))
	}
	if botTurn {
		child.Act, child.Opp = att, def
	} else {
		child.Act, child.Opp = def, att
	}
	child.Weather = n.Weather.Advance(move.Weather, !botTurn)
}

func dropEffect(effects []battle.Effect, e battle.Effect) []battle.Effect {
	var out []battle.Effect
	for _, x := range effects {
		if x != e {
			out = append(out, x)
		}
	}
	return out
}

// applySwitch brings id in from the side's bench. The battler it replaces
// goes back to the bench with its HP kept and its stages reset.
func (m *Model) applySwitch(child *BattleStatus, id string, botTurn bool) error {
	bench, active := child.Switches, child.Act
	if !botTurn {
		bench, active = child.OppTeam, child.Opp
	}
	idx := -1
	for i, p := range bench {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%s: %w", id, ErrUnknownSwitch)
	}

	in := *bench[idx]
	in.Active, in.FirstTurn = true, true
	node, err := NewNodePokemon(m.calc, &in, botTurn)
	if err != nil {
		return err
	}

	next := make([]*battle.Pokemon, 0, len(bench))
	next = append(next, bench[:idx]...)
	next = append(next, bench[idx+1:]...)
	if !active.Fainted() {
		out := active.View()
		out.Active, out.FirstTurn, out.Boosts = false, false, nil
		out.Moves = append([]battle.Move(nil), active.Pokemon().Moves...)
		next = append(next, out)
	}

	if botTurn {
		child.Act, child.Switches = node, next
	} else {
		child.Opp, child.OppTeam = node, next
		child.Weather = child.Weather.Advance(battle.NoWeather, true)
	}
	return nil
}
