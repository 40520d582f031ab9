package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"battlebot/internal/battle"
	"battlebot/internal/config"
	"battlebot/internal/engine"
	"battlebot/internal/search"
	"battlebot/internal/util"
)

func testCalc(t *testing.T) (*engine.Calculator, *config.Settings) {
	t.Helper()
	dc, rc, st, err := config.Defaults()
	if err != nil {
		t.Fatalf("config.Defaults: %v", err)
	}
	return engine.New(battle.NewDex(dc), rc), st
}

func testAgent(t *testing.T, tweak func(*config.Settings)) *Agent {
	t.Helper()
	calc, st := testCalc(t)
	if tweak != nil {
		tweak(st)
	}
	a, err := NewAgent(calc, st, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewAgent: %v", err)
	}
	return a
}

func flat(v int) map[battle.Stat]int {
	out := map[battle.Stat]int{}
	for _, s := range battle.Stats {
		out[s] = v
	}
	return out
}

func ours(id string, typ battle.Type, moves ...string) battle.Pokemon {
	p := battle.Pokemon{ID: id, Species: id, Level: 50, Types: []battle.Type{typ}, BaseStats: flat(80),
		Stats: flat(100), Known: true, MaxHP: 200, CurrentHP: 200}
	for _, m := range moves {
		p.Moves = append(p.Moves, battle.Move{ID: m})
	}
	return p
}

func theirs(id string, typ battle.Type, fraction float64) battle.Pokemon {
	return battle.Pokemon{ID: id, Species: id, Level: 50, Types: []battle.Type{typ}, BaseStats: flat(80),
		HPFraction: fraction}
}

func resolved(t *testing.T, dex *battle.Dex, p battle.Pokemon) *battle.Pokemon {
	t.Helper()
	for i, m := range p.Moves {
		rm, ok := dex.Resolve(m)
		if !ok {
			t.Fatalf("move %s not in the dex", m.ID)
		}
		p.Moves[i] = rm
	}
	return &p
}

func TestMatchup(t *testing.T) {
	calc, _ := testCalc(t)
	dex := calc.Dex()
	cases := []struct {
		name     string
		bot, opp battle.Pokemon
		want     float64
	}{
		{"favorable", ours("a", battle.Water, "surf"), theirs("b", battle.Fire, 1), 3},
		{"unfavorable", ours("a", battle.Fire, "flamethrower"), theirs("b", battle.Water, 1), -3},
		{"status only", ours("a", battle.Water, "splash"), theirs("b", battle.Normal, 1), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Matchup(dex, resolved(t, dex, tc.bot), resolved(t, dex, tc.opp))
			if got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMatchupRange(t *testing.T) {
	calc, _ := testCalc(t)
	dex := calc.Dex()
	types := []battle.Type{battle.Normal, battle.Fire, battle.Water, battle.Grass, battle.Ground, battle.Ghost, battle.Steel}
	moves := []string{"earthquake", "surf", "shadowball", "hypervoice"}
	for _, a := range types {
		for _, b := range types {
			bot := ours("a", a, moves...)
			bot.Types = append(bot.Types, battle.Flying)
			opp := theirs("b", b, 1)
			opp.Types = append(opp.Types, battle.Grass)
			m := Matchup(dex, resolved(t, dex, bot), resolved(t, dex, opp))
			if m < -8 || m > 8 {
				t.Fatalf("%s vs %s: matchup %v outside -8..8", a, b, m)
			}
		}
	}
}

func TestShouldDynamax(t *testing.T) {
	mon := func(total int, fraction float64) *battle.Pokemon {
		p := theirs("x", battle.Normal, fraction)
		p.BaseStats = flat(total / len(battle.Stats))
		return &p
	}
	full, hurt := mon(480, 1), mon(480, 0.5)
	cases := []struct {
		name          string
		active        *battle.Pokemon
		bench         []*battle.Pokemon
		matchup, best float64
		bestStats     int
		want          bool
	}{
		{"last one standing", mon(300, 0.3), nil, -3, -8, 300, true},
		{"strongest with an edge", mon(600, 0.8), []*battle.Pokemon{full}, 1, 4, 600, true},
		{"hurt and average", mon(480, 0.9), []*battle.Pokemon{full}, 3, 1, 600, false},
		{"best matchup on the field", mon(480, 1), []*battle.Pokemon{full}, 3, 2, 600, true},
		{"matchup too small", mon(480, 1), []*battle.Pokemon{full}, 2, 1, 600, false},
		{"last at full health", mon(480, 1), []*battle.Pokemon{hurt}, -1, 4, 600, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ShouldDynamax(tc.active, tc.bench, tc.matchup, tc.best, tc.bestStats); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestShouldSwitch(t *testing.T) {
	with := func(f func(*battle.Pokemon)) *battle.Pokemon {
		p := ours("a", battle.Water)
		f(&p)
		return &p
	}
	plain := with(func(*battle.Pokemon) {})
	physical := with(func(p *battle.Pokemon) {
		p.BaseStats[battle.Atk] = 120
		p.Boosts = battle.Boosts{battle.Atk: -2}
	})
	cases := []struct {
		name     string
		active   *battle.Pokemon
		matchup  float64
		outspeed float64
		best     float64
		toxic    int
		want     bool
	}{
		{"dynamaxed holds", with(func(p *battle.Pokemon) { p.Dynamaxed = true }), -3, 0, 4, 0, false},
		{"dynamaxed bails", with(func(p *battle.Pokemon) { p.Dynamaxed = true }), -4, 0, 4, 0, true},
		{"nothing better", plain, -3, 0, -3, 0, false},
		{"toxic", with(func(p *battle.Pokemon) { p.Status = battle.Toxic }), 0, 1, 1, 2, true},
		{"defense dropped", with(func(p *battle.Pokemon) { p.Boosts = battle.Boosts{battle.Def: -2} }), 0, 1, 1, 0, true},
		{"attack dropped", physical, 0, 1, 1, 0, true},
		{"bad matchup", plain, -1.5, 1, 1, 0, true},
		{"slightly bad and slower", plain, -1, 0.4, 1, 0, true},
		{"slightly bad but faster", plain, -1, 0.6, 1, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ShouldSwitch(tc.active, tc.matchup, tc.outspeed, tc.best, tc.toxic); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBestSwitch(t *testing.T) {
	calc, _ := testCalc(t)
	slow, fast, weak := ours("slow", battle.Grass), ours("fast", battle.Grass), ours("weak", battle.Fire)
	slow.Stats[battle.Spe] = 50
	fast.Stats[battle.Spe] = 200
	weak.Stats[battle.Spe] = 300
	opp := theirs("foe", battle.Water, 1)
	candidates := []*battle.Pokemon{&slow, &fast, &weak}
	scores := []float64{3, 3, -3}

	rng := util.New(7)
	for i := 0; i < 10; i++ {
		got := BestSwitch(calc, rng, candidates, scores, 3, &opp, engine.Env{})
		if got == nil || got.ID != "fast" {
			t.Fatalf("got %v, want fast", got)
		}
	}
	if got := BestSwitch(calc, rng, nil, nil, -8, &opp, engine.Env{}); got != nil {
		t.Fatalf("empty team gave %v", got)
	}
}

func lethalSnapshot() *battle.Snapshot {
	return &battle.Snapshot{
		Bot:        battle.Side{Active: ours("bot", battle.Water, "tackle", "splash")},
		Opponent:   battle.Side{Active: theirs("foe", battle.Normal, 0.01)},
		CanDynamax: true,
	}
}

func sameStates(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestDecidePicksLethalMove(t *testing.T) {
	a := testAgent(t, nil)
	d, err := a.Decide(context.Background(), lethalSnapshot())
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if d.MoveID != "tackle" || d.Fallback {
		t.Fatalf("decision = %+v, want a searched tackle", d)
	}
	if !d.Dynamax {
		t.Fatal("the last battler standing should dynamax")
	}
	if a.State() != StateIdle {
		t.Fatalf("state = %s, want idle", a.State())
	}
	if want := []string{StateSearching, StateDecided, StateIdle}; !sameStates(a.Trace(), want) {
		t.Fatalf("trace = %v, want %v", a.Trace(), want)
	}
}

func TestDecideWithoutGimmick(t *testing.T) {
	a := testAgent(t, func(s *config.Settings) { s.Bot.Gimmick = false })
	d, err := a.Decide(context.Background(), lethalSnapshot())
	if err != nil {
		t.Fatal(err)
	}
	if d.Dynamax {
		t.Fatal("dynamax used with the gimmick disabled")
	}
}

func TestDecideFallsBackOnInvalidSnapshot(t *testing.T) {
	a := testAgent(t, nil)
	snap := lethalSnapshot()
	snap.Bot.Active.Moves = []battle.Move{{ID: "Not A Move"}}
	snap.LegalMoves = []string{"Not A Move"}

	d, err := a.Decide(context.Background(), snap)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if !d.Fallback || d.MoveID != "notamove" {
		t.Fatalf("decision = %+v, want a fallback to the only legal move", d)
	}
	if want := []string{StateSearching, StateFallback, StateIdle}; !sameStates(a.Trace(), want) {
		t.Fatalf("trace = %v, want %v", a.Trace(), want)
	}
}

func TestDecideNoActions(t *testing.T) {
	a := testAgent(t, nil)
	d, err := a.Decide(context.Background(), nil)
	if !errors.Is(err, search.ErrNoActions) {
		t.Fatalf("got %v, want ErrNoActions", err)
	}
	if !d.Fallback || d.Action() != "none" {
		t.Fatalf("decision = %+v", d)
	}
	if a.State() != StateIdle {
		t.Fatalf("state = %s, want idle", a.State())
	}
}

func TestDecideCanceled(t *testing.T) {
	a := testAgent(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d, err := a.Decide(ctx, lethalSnapshot())
	if err != nil || !d.Fallback {
		t.Fatalf("canceled decision = %+v, %v; want a fallback", d, err)
	}
	if a.State() != StateIdle {
		t.Fatalf("state = %s, want idle", a.State())
	}
	d, err = a.Decide(context.Background(), lethalSnapshot())
	if err != nil || d.Fallback || d.MoveID != "tackle" {
		t.Fatalf("agent did not recover: %+v, %v", d, err)
	}
}

func TestFallbackIsSeeded(t *testing.T) {
	pick := func() []string {
		a := testAgent(t, func(s *config.Settings) { s.Bot.Seed = 42 })
		var out []string
		for i := 0; i < 5; i++ {
			snap := &battle.Snapshot{LegalMoves: []string{"a", "b", "c", "d"}, LegalSwitches: []string{"e"}}
			d, err := a.Decide(context.Background(), snap)
			if err != nil {
				t.Fatal(err)
			}
			out = append(out, d.Action())
		}
		return out
	}
	if first, second := pick(), pick(); !sameStates(first, second) {
		t.Fatalf("same seed gave %v and %v", first, second)
	}
}

func TestSwitchGuard(t *testing.T) {
	a := testAgent(t, func(s *config.Settings) {
		s.Bot.SwitchGuard = true
		s.Bot.Gimmick = false
	})
	snap := &battle.Snapshot{
		Bot: battle.Side{
			Active: ours("torch", battle.Fire, "flamethrower"),
			Bench:  []battle.Pokemon{ours("sprout", battle.Grass, "energyball")},
		},
		Opponent: battle.Side{Active: theirs("foe", battle.Water, 1)},
	}
	d, err := a.Decide(context.Background(), snap)
	if err != nil {
		t.Fatal(err)
	}
	if d.SwitchID != "sprout" || d.Fallback {
		t.Fatalf("decision = %+v, want a switch to sprout", d)
	}
}

func TestDecideForcedSwitch(t *testing.T) {
	for _, strategy := range config.Strategies {
		t.Run(strategy, func(t *testing.T) {
			a := testAgent(t, func(s *config.Settings) { s.Bot.Strategy = strategy })
			snap := &battle.Snapshot{
				Bot: battle.Side{
					Active: ours("blastoise", battle.Water, "tackle", "hydropump"),
					Bench:  []battle.Pokemon{ours("venusaur", battle.Grass, "gigadrain")},
				},
				Opponent:      battle.Side{Active: theirs("foe", battle.Electric, 1)},
				LegalSwitches: []string{"venusaur"},
				CanDynamax:    true,
			}
			d, err := a.Decide(context.Background(), snap)
			if err != nil {
				t.Fatal(err)
			}
			if d.MoveID != "" || d.SwitchID != "venusaur" || d.Fallback || d.Dynamax {
				t.Fatalf("decision = %+v, want the only legal switch", d)
			}
		})
	}
}

func TestPlayers(t *testing.T) {
	wildwave := battle.Move{ID: "wildwave", Type: battle.Water, Category: battle.Special, BasePower: 90, Accuracy: 0.7}
	withMoves := func(moves ...battle.Move) *battle.Snapshot {
		bot := ours("bot", battle.Water)
		bot.Moves = moves
		return &battle.Snapshot{Bot: battle.Side{Active: bot}, Opponent: battle.Side{Active: theirs("foe", battle.Normal, 1)}}
	}
	named := func(ids ...string) []battle.Move {
		var out []battle.Move
		for _, id := range ids {
			out = append(out, battle.Move{ID: id})
		}
		return out
	}
	cases := []struct {
		name     string
		strategy string
		snap     *battle.Snapshot
		want     string
	}{
		{"best damage", config.StrategyBestDamage, withMoves(named("tackle", "hydropump", "surf")...), "hydropump"},
		{"best damage tie goes to accuracy", config.StrategyBestDamage, withMoves(wildwave, battle.Move{ID: "surf"}), "surf"},
		{"max power", config.StrategyMaxPower, withMoves(named("tackle", "hydropump", "surf")...), "hydropump"},
		{"max power keeps the first of equals", config.StrategyMaxPower, withMoves(wildwave, battle.Move{ID: "surf"}), "wildwave"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := testAgent(t, func(s *config.Settings) { s.Bot.Strategy = tc.strategy })
			d, err := a.Decide(context.Background(), tc.snap)
			if err != nil {
				t.Fatal(err)
			}
			if d.MoveID != tc.want || d.Fallback {
				t.Fatalf("decision = %+v, want %s", d, tc.want)
			}
		})
	}
}

func TestRulesPlayer(t *testing.T) {
	fast := func(hp int, moves ...string) battle.Pokemon {
		p := ours("bot", battle.Water, moves...)
		p.Stats[battle.Spe] = 300
		p.CurrentHP = hp
		return p
	}
	weakFoe := theirs("foe", battle.Normal, 1)
	weakFoe.BaseStats = flat(40)
	fresh := fast(200, "fakeout", "surf")
	fresh.FirstTurn = true
	finisher := lethalSnapshot()
	finisher.Bot.Active.Stats[battle.Spe] = 300

	cases := []struct {
		name    string
		snap    *battle.Snapshot
		want    string
		dynamax bool
	}{
		{"finishes the opponent", finisher, "tackle", false},
		{"fake out on the first turn", &battle.Snapshot{Bot: battle.Side{Active: fresh},
			Opponent: battle.Side{Active: theirs("foe", battle.Normal, 1)}}, "fakeout", false},
		{"sets up when safe", &battle.Snapshot{Bot: battle.Side{Active: fast(200, "tackle", "swordsdance")},
			Opponent: battle.Side{Active: theirs("foe", battle.Normal, 1)}}, "swordsdance", false},
		{"heals when hurt", &battle.Snapshot{Bot: battle.Side{Active: fast(100, "tackle", "recover")},
			Opponent: battle.Side{Active: weakFoe}}, "recover", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := testAgent(t, func(s *config.Settings) { s.Bot.Strategy = config.StrategyRules })
			d, err := a.Decide(context.Background(), tc.snap)
			if err != nil {
				t.Fatal(err)
			}
			if d.MoveID != tc.want || d.Dynamax != tc.dynamax || d.Fallback {
				t.Fatalf("decision = %+v, want %s (dynamax %v)", d, tc.want, tc.dynamax)
			}
		})
	}
}

func TestNewAgentRejectsStrategy(t *testing.T) {
	calc, st := testCalc(t)
	st.Bot.Strategy = "random"
	if _, err := NewAgent(calc, st, zerolog.Nop()); !errors.Is(err, config.ErrStrategy) {
		t.Fatalf("got %v, want ErrStrategy", err)
	}
}
