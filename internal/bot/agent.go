package bot

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"

	"github.com/looplab/fsm"
	"github.com/rs/zerolog"

	"battlebot/internal/battle"
	"battlebot/internal/config"
	"battlebot/internal/engine"
	"battlebot/internal/search"
	"battlebot/internal/sim"
	"battlebot/internal/util"
)

// Agent lifecycle states.
const (
	StateIdle      = "idle"
	StateSearching = "searching"
	StateDecided   = "decided"
	StateFallback  = "fallback"
)

const (
	eventBegin   = "begin"
	eventResolve = "resolve"
	eventFail    = "fail"
	eventReset   = "reset"
)

var (
	ErrBusy        = errors.New("agent is already deciding")
	ErrNilSnapshot = errors.New("nil snapshot")
)

// Agent turns one snapshot at a time into a decision. It is not safe for
// concurrent use; run one agent per goroutine.
type Agent struct {
	calc     *engine.Calculator
	model    *sim.Model
	searcher *search.Searcher
	settings config.Settings
	rng      *rand.Rand
	machine  *fsm.FSM
	trace    []string
	log      zerolog.Logger
}

func NewAgent(calc *engine.Calculator, settings *config.Settings, log zerolog.Logger) (*Agent, error) {
	if st := settings.Bot.Strategy; st != "" && !slices.Contains(config.Strategies, st) {
		return nil, fmt.Errorf("%q: %w", st, config.ErrStrategy)
	}
	h, err := search.NewHeuristic(settings.Heuristic)
	if err != nil {
		return nil, err
	}
	model := sim.NewModel(calc, settings.Search.MoveFirstThreshold)
	s, err := search.New(model, h, settings.Search.MaxDepth, log.With().Str("component", "search").Logger())
	if err != nil {
		return nil, err
	}
	a := &Agent{
		calc:     calc,
		model:    model,
		searcher: s,
		settings: *settings,
		rng:      util.New(settings.Bot.Seed),
		log:      log.With().Str("component", "bot").Logger(),
	}
	a.machine = fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: eventBegin, Src: []string{StateIdle}, Dst: StateSearching},
			{Name: eventResolve, Src: []string{StateSearching}, Dst: StateDecided},
			{Name: eventFail, Src: []string{StateSearching}, Dst: StateFallback},
			{Name: eventReset, Src: []string{StateDecided, StateFallback}, Dst: StateIdle},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				a.trace = append(a.trace, e.Dst)
				a.log.Trace().Str("from", e.Src).Str("to", e.Dst).Msg("agent state")
			},
		},
	)
	return a, nil
}

// State is the current lifecycle state; it is idle between decisions.
func (a *Agent) State() string { return a.machine.Current() }

// Trace lists the states entered during the last decision.
func (a *Agent) Trace() []string { return append([]string(nil), a.trace...) }

// Decide normalizes snap in place and searches for the best action, or asks
// the configured player when the strategy is not minimax. When no action
// can be decided, a random legal action is returned with
// Fallback set; ErrNoActions means not even that was possible.
func (a *Agent) Decide(ctx context.Context, snap *battle.Snapshot) (battle.Decision, error) {
	if !a.machine.Is(StateIdle) {
		return battle.Decision{}, ErrBusy
	}
	a.trace = a.trace[:0]
	// a canceled context leaves a looplab transition pending, so the
	// lifecycle never sees cancellation; decide checks it instead
	mctx := context.WithoutCancel(ctx)
	if err := a.machine.Event(mctx, eventBegin); err != nil {
		return battle.Decision{}, fmt.Errorf("%w: %v", ErrBusy, err)
	}
	defer a.event(mctx, eventReset)

	d, err := a.decide(ctx, snap)
	if err != nil {
		a.log.Warn().Err(err).Msg("no searched decision, falling back to a random legal action")
		a.event(mctx, eventFail)
		return a.fallback(snap)
	}
	a.event(mctx, eventResolve)
	a.log.Debug().Str("action", d.Action()).Bool("dynamax", d.Dynamax).Float64("score", d.Score).Msg("decided")
	return d, nil
}

func (a *Agent) event(ctx context.Context, name string) {
	if err := a.machine.Event(ctx, name); err != nil {
		a.log.Error().Err(err).Str("event", name).Msg("agent transition")
	}
}

func (a *Agent) decide(ctx context.Context, snap *battle.Snapshot) (battle.Decision, error) {
	if snap == nil {
		return battle.Decision{}, ErrNilSnapshot
	}
	if err := ctx.Err(); err != nil {
		return battle.Decision{}, err
	}
	if err := snap.Normalize(a.calc.Dex()); err != nil {
		return battle.Decision{}, err
	}
	a.log.Debug().
		Str("bot", snap.Bot.Active.String()).
		Str("opponent", snap.Opponent.Active.String()).
		Int("legal_moves", len(snap.LegalMoves)).
		Int("legal_switches", len(snap.LegalSwitches)).
		Msg("deciding")
	if a.settings.Bot.SwitchGuard {
		if d, ok := a.guardSwitch(snap); ok {
			return d, nil
		}
	}
	switch a.settings.Bot.Strategy {
	case config.StrategyBestDamage:
		return a.bestDamage(a.newTurn(snap))
	case config.StrategyMaxPower:
		return a.maxPower(a.newTurn(snap))
	case config.StrategyRules:
		return a.rules(a.newTurn(snap))
	}
	root, err := a.model.Root(snap)
	if err != nil {
		return battle.Decision{}, err
	}
	res, err := a.searcher.Search(root)
	if err != nil {
		return battle.Decision{}, err
	}
	d := battle.DecisionFor(res.Action)
	d.Score = res.Score
	a.log.Debug().Int("nodes", res.Nodes).Msg("searched")
	if d.MoveID != "" && snap.CanDynamax && a.settings.Bot.Gimmick {
		d.Dynamax = a.shouldDynamax(snap)
	}
	return d, nil
}

// guardSwitch leaves the field early when the typing matchup has turned
// against the active battler and a better one waits on the bench.
func (a *Agent) guardSwitch(snap *battle.Snapshot) (battle.Decision, bool) {
	active, opp := &snap.Bot.Active, &snap.Opponent.Active
	if active.Fainted() || opp.Fainted() {
		return battle.Decision{}, false
	}
	candidates := switchCandidates(snap)
	if len(candidates) == 0 {
		return battle.Decision{}, false
	}
	dex := a.calc.Dex()
	env := engine.Env{Weather: snap.Weather, Fields: snap.Fields}
	matchup := Matchup(dex, active, opp)
	scores, best := TeamMatchups(dex, candidates, opp)
	p := a.calc.OutspeedProbability(active, opp, env).P
	if !ShouldSwitch(active, matchup, p, best, toxicTurns(active)) {
		return battle.Decision{}, false
	}
	in := BestSwitch(a.calc, a.rng, candidates, scores, best, opp, env)
	if in == nil {
		return battle.Decision{}, false
	}
	a.log.Debug().
		Str("out", active.ID).
		Str("in", in.ID).
		Float64("matchup", matchup).
		Float64("best", best).
		Msg("switch guard")
	return battle.Decision{SwitchID: in.ID, Score: best}, true
}

func (a *Agent) shouldDynamax(snap *battle.Snapshot) bool {
	active, opp := &snap.Bot.Active, &snap.Opponent.Active
	var bench []*battle.Pokemon
	bestStats := active.BaseTotal()
	for i := range snap.Bot.Bench {
		p := &snap.Bot.Bench[i]
		if p.Fainted() {
			continue
		}
		bench = append(bench, p)
		if t := p.BaseTotal(); t > bestStats {
			bestStats = t
		}
	}
	dex := a.calc.Dex()
	_, best := TeamMatchups(dex, bench, opp)
	return ShouldDynamax(active, bench, Matchup(dex, active, opp), best, bestStats)
}

// switchCandidates are the living bench members the deciding side may
// switch to, honoring the legal list when the snapshot restricts actions.
func switchCandidates(snap *battle.Snapshot) []*battle.Pokemon {
	restricted := len(snap.LegalMoves) > 0 || len(snap.LegalSwitches) > 0
	var out []*battle.Pokemon
	for i := range snap.Bot.Bench {
		p := &snap.Bot.Bench[i]
		if p.Fainted() || (restricted && !has(snap.LegalSwitches, p.ID)) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (a *Agent) fallback(snap *battle.Snapshot) (battle.Decision, error) {
	options := legalOptions(snap)
	i := util.Pick(a.rng, len(options))
	if i < 0 {
		return battle.Decision{Fallback: true}, search.ErrNoActions
	}
	d := options[i]
	d.Fallback = true
	return d, nil
}

// legalOptions lists every action the snapshot allows, without trusting
// that it was normalized.
func legalOptions(snap *battle.Snapshot) []battle.Decision {
	if snap == nil {
		return nil
	}
	var out []battle.Decision
	if len(snap.LegalMoves) > 0 || len(snap.LegalSwitches) > 0 {
		for _, id := range snap.LegalMoves {
			out = append(out, battle.Decision{MoveID: util.ToID(id)})
		}
		for _, id := range snap.LegalSwitches {
			out = append(out, battle.Decision{SwitchID: util.ToID(id)})
		}
		return out
	}
	if !down(&snap.Bot.Active) {
		for _, m := range snap.Bot.Active.Moves {
			out = append(out, battle.Decision{MoveID: util.ToID(m.ID)})
		}
	}
	for i := range snap.Bot.Bench {
		if p := &snap.Bot.Bench[i]; !down(p) {
			id := p.ID
			if id == "" {
				id = p.Species
			}
			out = append(out, battle.Decision{SwitchID: util.ToID(id)})
		}
	}
	return out
}

// down is Fainted for a battler whose omitted HP fraction may not have
// been defaulted yet.
func down(p *battle.Pokemon) bool {
	return p.Status == battle.Fainted || (p.MaxHP > 0 && p.CurrentHP <= 0)
}

func has(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
