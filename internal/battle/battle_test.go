package battle

import (
	"errors"
	"testing"

	"battlebot/internal/config"
)

func testDex(t *testing.T) *Dex {
	t.Helper()
	dc, _, _, err := config.Defaults()
	if err != nil {
		t.Fatalf("config.Defaults: %v", err)
	}
	return NewDex(dc)
}

func TestTypeChartMultiplier(t *testing.T) {
	d := testDex(t)
	cases := []struct {
		atk  Type
		def  []Type
		want float64
	}{
		{Water, []Type{Fire}, 2},
		{Water, []Type{Fire, Rock}, 4},
		{Electric, []Type{Water, Ground}, 0},
		{Grass, []Type{Fire, Flying}, 0.25},
		{Normal, []Type{Water}, 1},
		{Ice, []Type{Dragon, ""}, 2},
	}
	for _, tc := range cases {
		if got := d.Chart.Multiplier(tc.atk, tc.def...); got != tc.want {
			t.Errorf("%s vs %v = %v, want %v", tc.atk, tc.def, got, tc.want)
		}
	}
}

func TestDexDefaultMoves(t *testing.T) {
	d := testDex(t)
	m, ok := d.DefaultMove(Ice, true)
	if !ok || m.ID != "icefang" || m.Category != Physical {
		t.Fatalf("ice physical default = %+v, %v", m, ok)
	}
	m, ok = d.DefaultMove(Psychic, false)
	if !ok || m.ID != "psychic" || m.BasePower != 90 {
		t.Fatalf("psychic special default = %+v, %v", m, ok)
	}
	if _, ok := d.DefaultMove(Type("shadow"), true); ok {
		t.Fatal("unknown type should have no default move")
	}
}

func TestDexNature(t *testing.T) {
	d := testDex(t)
	n, ok := d.Nature("Adamant")
	if !ok || n.Plus != Atk || n.Minus != SpA {
		t.Fatalf("adamant = %+v, %v", n, ok)
	}
	if n, ok := d.Nature(""); !ok || n.Plus != "" {
		t.Fatalf("empty nature should be neutral, got %+v %v", n, ok)
	}
	if _, ok := d.Nature("grumpy"); ok {
		t.Fatal("grumpy is not a nature")
	}
}

func TestBoostsApplyClampsAndCopies(t *testing.T) {
	orig := Boosts{Atk: 5, Def: -5}
	got := orig.Apply(Boosts{Atk: 2, Def: -3, Spe: 1})
	if got[Atk] != 6 || got[Def] != -6 || got[Spe] != 1 {
		t.Fatalf("Apply = %v", got)
	}
	if orig[Atk] != 5 || orig[Def] != -5 || orig[Spe] != 0 {
		t.Fatalf("receiver mutated: %v", orig)
	}
	if n := (Boosts{Atk: 2, SpA: 1, Def: -1}).PositiveSum(); n != 3 {
		t.Fatalf("PositiveSum = %d", n)
	}
}

const snapshotYAML = `
bot:
  active:
    species: Garchomp
    level: 50
    types: [dragon, ground]
    base_stats: {hp: 108, atk: 130, def: 95, spa: 80, spd: 85, spe: 102}
    stats: {atk: 150, def: 115, spa: 100, spd: 105, spe: 122}
    max_hp: 183
    current_hp: 120
    ability: Rough Skin
    item: Choice Scarf
    moves: [earthquake, outrage, {id: customslam, type: normal, category: physical, base_power: 50}]
  bench:
    - {species: Rotom-Wash, types: [electric, water], max_hp: 157, current_hp: 157, stats: {atk: 85}, moves: [hydropump]}
opponent:
  active:
    species: Flabébé
    level: 50
    types: [fairy]
    hp_fraction: 0.5
    item: unknown_item
    possible_abilities: [Flower Veil, Symbiosis]
weather: Sunny Day
fields: [Grassy Terrain]
legal_moves: [Earthquake, Outrage]
legal_switches: [rotomwash]
`

func TestSnapshotNormalize(t *testing.T) {
	d := testDex(t)
	s, err := ParseSnapshot([]byte(snapshotYAML))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Normalize(d); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	a := s.Bot.Active
	if a.Species != "garchomp" || a.Ability != "roughskin" || a.Item != "choicescarf" {
		t.Fatalf("identifiers not folded: %+v", a)
	}
	if !a.Known || !a.Active {
		t.Fatal("bot active should be known and active")
	}
	if a.Moves[0].BasePower != 100 || a.Moves[0].Type != Ground {
		t.Fatalf("earthquake not resolved: %+v", a.Moves[0])
	}
	if a.Moves[2].BasePower != 50 {
		t.Fatalf("inline move overwritten: %+v", a.Moves[2])
	}
	o := s.Opponent.Active
	if o.Species != "flabebe" || o.Known || o.Item != UnknownItem || !o.MayHaveAbility("symbiosis") {
		t.Fatalf("opponent not normalized: %+v", o)
	}
	if s.Weather != SunnyDay || s.WeatherTurns != 1 || !HasField(s.Fields, GrassyTerrain) {
		t.Fatalf("field state: %v %d %v", s.Weather, s.WeatherTurns, s.Fields)
	}
	if s.LegalMoves[0] != "earthquake" {
		t.Fatalf("legal moves: %v", s.LegalMoves)
	}
	if b, ok := s.BenchMember("rotomwash"); !ok || b.HPFraction != 1 {
		t.Fatalf("bench lookup: %+v %v", b, ok)
	}
}

func TestSnapshotOpponentStatsNeverKnown(t *testing.T) {
	d := testDex(t)
	s, err := ParseSnapshot([]byte("opponent:\n  active:\n    species: snorlax\n    known: true\n    max_hp: 300\n    current_hp: 150\n"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Normalize(d); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if o := s.Opponent.Active; o.Known || o.HPFraction != 0.5 {
		t.Fatalf("opponent = %+v, want estimated stats at half health", o)
	}
}

func TestSnapshotUnknownMove(t *testing.T) {
	d := testDex(t)
	s, err := ParseSnapshot([]byte("bot:\n  active:\n    species: mew\n    moves: [notamove]\n"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Normalize(d); !errors.Is(err, ErrUnknownMove) {
		t.Fatalf("got %v, want ErrUnknownMove", err)
	}
}

func TestDecisionFor(t *testing.T) {
	m, _ := testDex(t).Move("surf")
	if d := DecisionFor(UseMove(m)); d.MoveID != "surf" || d.Action() != "move surf" {
		t.Fatalf("move decision %+v", d)
	}
	if d := DecisionFor(SwitchTo("rotomwash")); d.SwitchID != "rotomwash" {
		t.Fatalf("switch decision %+v", d)
	}
	if !(Action{}).IsZero() {
		t.Fatal("zero action")
	}
}
