package bot

import (
	"battlebot/internal/battle"
	"battlebot/internal/engine"
	"battlebot/internal/search"
	"battlebot/internal/sim"
)

// Thresholds of the rule-based player.
const (
	finishOutspeedP  = 0.9
	finishDamageRate = 0.3
	boostHP          = 0.8
	healHP           = 0.6
	healOutspeedP    = 0.6
	weakDamage       = 50
)

// turn is what the non-searching players know about one decision.
type turn struct {
	snap          *battle.Snapshot
	active, opp   *battle.Pokemon
	env           engine.Env
	moves         []battle.Move
	candidates    []*battle.Pokemon
	scores        []float64
	matchup, best float64
	outspeed      float64
}

func (a *Agent) newTurn(snap *battle.Snapshot) *turn {
	t := &turn{
		snap:       snap,
		active:     &snap.Bot.Active,
		opp:        &snap.Opponent.Active,
		env:        engine.Env{Weather: snap.Weather, Fields: snap.Fields},
		candidates: switchCandidates(snap),
	}
	t.moves = usableMoves(snap)
	dex := a.calc.Dex()
	t.scores, t.best = TeamMatchups(dex, t.candidates, t.opp)
	if !t.active.Fainted() {
		t.matchup = Matchup(dex, t.active, t.opp)
		t.outspeed = a.calc.OutspeedProbability(t.active, t.opp, t.env).P
	}
	return t
}

// usableMoves are the active battler's moves the snapshot allows; none
// when it has fainted or is being forced out.
func usableMoves(snap *battle.Snapshot) []battle.Move {
	active := &snap.Bot.Active
	if active.Fainted() {
		return nil
	}
	if len(snap.LegalMoves) == 0 && len(snap.LegalSwitches) == 0 {
		return active.Moves
	}
	var moves []battle.Move
	for _, m := range active.Moves {
		if has(snap.LegalMoves, m.ID) {
			moves = append(moves, m)
		}
	}
	return moves
}

// replace brings in the bench member with the best matchup.
func (a *Agent) replace(t *turn) (battle.Decision, error) {
	in := BestSwitch(a.calc, a.rng, t.candidates, t.scores, t.best, t.opp, t.env)
	if in == nil {
		return battle.Decision{}, search.ErrNoActions
	}
	return battle.Decision{SwitchID: in.ID, Score: t.best}, nil
}

func (t *turn) conditions() engine.Conditions {
	return engine.Conditions{Env: t.env, DefenderSide: t.snap.Opponent.Conditions}
}

// bestDamage picks the move with the highest damage roll, the more
// accurate one on ties.
func (a *Agent) bestDamage(t *turn) (battle.Decision, error) {
	if len(t.moves) == 0 {
		return a.replace(t)
	}
	cond := t.conditions()
	best, bestDamage, bestAcc := -1, 0, 0.0
	for i, m := range t.moves {
		d := a.calc.ComputeDamage(m, t.active, t.opp, cond).UB
		acc := a.calc.MoveAccuracy(m, t.active, t.opp, t.env, nil, nil)
		if best < 0 || d > bestDamage || (d == bestDamage && acc > bestAcc) {
			best, bestDamage, bestAcc = i, d, acc
		}
	}
	return battle.Decision{
		MoveID:  t.moves[best].ID,
		Score:   float64(bestDamage),
		Dynamax: t.snap.CanDynamax && a.settings.Bot.Gimmick,
	}, nil
}

// maxPower picks the move with the highest base power.
func (a *Agent) maxPower(t *turn) (battle.Decision, error) {
	if len(t.moves) == 0 {
		return a.replace(t)
	}
	best := 0
	for i, m := range t.moves {
		if m.BasePower > t.moves[best].BasePower {
			best = i
		}
	}
	m := t.moves[best]
	return battle.Decision{
		MoveID:  m.ID,
		Score:   float64(m.BasePower),
		Dynamax: t.snap.CanDynamax && a.settings.Bot.Gimmick,
	}, nil
}

type rated struct {
	move     battle.Move
	lb       int
	accuracy float64
}

// rules plays the hand-written strategy: finish the opponent when it is in
// reach, leave bad matchups, set up or heal when it is safe and otherwise
// use the most damaging move.
func (a *Agent) rules(t *turn) (battle.Decision, error) {
	if len(t.moves) == 0 {
		return a.replace(t)
	}
	cond := t.conditions()
	var ratings []rated
	maxDamage, best := 0, -1
	for _, m := range t.moves {
		r := rated{
			move:     m,
			lb:       a.calc.ComputeDamage(m, t.active, t.opp, cond).LB,
			accuracy: a.calc.MoveAccuracy(m, t.active, t.opp, t.env, nil, nil),
		}
		ratings = append(ratings, r)
		if m.SelfDestruct {
			continue
		}
		if best < 0 || r.lb > maxDamage || (r.lb == maxDamage && r.accuracy > ratings[best].accuracy) {
			best, maxDamage = len(ratings)-1, r.lb
		}
	}
	if best < 0 {
		best = 0
	}
	botHP := a.calc.CurrentHP(t.active)
	oppHP := a.calc.CurrentHP(t.opp)
	oppDamage := a.opponentDamage(t)
	use := func(m battle.Move) (battle.Decision, error) {
		return battle.Decision{MoveID: m.ID, Score: float64(maxDamage)}, nil
	}

	if t.active.FirstTurn && !battle.HasField(t.env.Fields, battle.PsychicTerrain) {
		for _, r := range ratings {
			if r.move.ID == "fakeout" && !t.opp.HasType(battle.Ghost) && !t.opp.Dynamaxed {
				return use(r.move)
			}
		}
	}
	if (t.outspeed >= finishOutspeedP || float64(oppDamage) < finishDamageRate*float64(botHP)) && maxDamage > oppHP {
		return use(ratings[best].move)
	}
	for _, r := range ratings {
		if r.move.Priority > 0 && r.lb > oppHP {
			return use(r.move)
		}
	}
	if len(t.candidates) > 0 && ShouldSwitch(t.active, t.matchup, t.outspeed, t.best, toxicTurns(t.active)) {
		return a.replace(t)
	}
	for _, r := range ratings {
		m := r.move
		if m.IsStatus() && m.Target == battle.TargetSelf && len(m.Boosts) > 0 && t.matchup >= 0 &&
			unboosted(t.active) && t.active.Fraction() >= boostHP &&
			(t.outspeed > 0.5 || 2*oppDamage < botHP) {
			return use(m)
		}
	}
	if t.active.Fraction() <= healHP {
		for _, r := range ratings {
			heal := a.calc.Healing(t.active, t.opp, r.move, t.env)
			if heal > 0 && oppDamage < heal && oppDamage < botHP+heal && t.outspeed > healOutspeedP {
				return use(r.move)
			}
		}
	}
	if maxDamage < weakDamage && maxDamage < oppHP && len(t.candidates) > 0 && t.matchup <= t.best {
		return a.replace(t)
	}

	d, _ := use(ratings[best].move)
	if t.snap.CanDynamax && a.settings.Bot.Gimmick {
		d.Dynamax = a.shouldDynamax(t.snap)
	}
	return d, nil
}

// opponentDamage is the most the opponent can deal with one hit, counting
// the representative moves of types it has not shown yet.
func (a *Agent) opponentDamage(t *turn) int {
	moves := t.opp.Moves
	if len(moves) < fullMoveset {
		moves = sim.EnrichMoves(a.calc.Dex(), t.opp, moves)
	}
	cond := engine.Conditions{Env: t.env, DefenderSide: t.snap.Bot.Conditions}
	most := 0
	for _, m := range moves {
		if m.IsStatus() {
			continue
		}
		if d := a.calc.ComputeDamage(m, t.opp, t.active, cond).UB; d > most {
			most = d
		}
	}
	return most
}

func toxicTurns(p *battle.Pokemon) int {
	if p.Status == battle.Toxic {
		return p.StatusTurns
	}
	return 0
}

func unboosted(p *battle.Pokemon) bool {
	sum := 0
	for _, v := range p.Boosts {
		sum += v
	}
	return sum == 0
}
