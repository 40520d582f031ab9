package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	dc, rc, st, err := Defaults()
	if err != nil {
		t.Fatalf("Defaults: %v", err)
	}
	if got := dc.TypeChart["water"]["fire"]; got != 2 {
		t.Fatalf("water->fire = %v, want 2", got)
	}
	if len(dc.DefaultMoves) != 18 {
		t.Fatalf("default moves for %d types, want 18", len(dc.DefaultMoves))
	}
	moves := map[string]bool{}
	for _, m := range dc.Moves {
		moves[m.ID] = true
	}
	for typ, dm := range dc.DefaultMoves {
		if !moves[dm.Physical] || !moves[dm.Special] {
			t.Errorf("%s default moves %+v missing from movedex", typ, dm)
		}
	}
	for _, id := range dc.HealingMoves {
		if !moves[id] {
			t.Errorf("healing move %s missing from movedex", id)
		}
	}
	if len(rc.Damage) == 0 || len(rc.Stats) == 0 || len(rc.Power) == 0 {
		t.Fatalf("rule groups not loaded: %+v", rc)
	}
	if st.Search.MaxDepth < 1 || st.Heuristic.Name != "team" || st.Bot.Strategy != StrategyMinimax {
		t.Fatalf("unexpected settings %+v", st)
	}
}

func TestLoadAllOverridesFromDir(t *testing.T) {
	dir := t.TempDir()
	body := "search:\n  max_depth: 3\n  move_first_threshold: 0.5\nheuristic:\n  name: showdown\n"
	if err := os.WriteFile(filepath.Join(dir, "settings.yaml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	dc, _, st, err := LoadAll(dir)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if st.Search.MaxDepth != 3 || st.Heuristic.Name != "showdown" {
		t.Fatalf("override not applied: %+v", st)
	}
	if len(dc.Moves) == 0 {
		t.Fatal("dex should fall back to the embedded table")
	}
}

func TestLoadAllMalformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "dex.yaml"), []byte("type_chart: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := LoadAll(dir); err == nil {
		t.Fatal("expected an error for a malformed table")
	}
}

func TestSettingsValidate(t *testing.T) {
	cases := []struct {
		name string
		s    Settings
		want error
	}{
		{"zero depth", Settings{Heuristic: HeuristicSettings{Name: "team"}}, ErrDepth},
		{"unknown heuristic", Settings{Search: SearchSettings{MaxDepth: 1}, Heuristic: HeuristicSettings{Name: "random"}}, ErrHeuristic},
		{"unknown strategy", Settings{Search: SearchSettings{MaxDepth: 1}, Heuristic: HeuristicSettings{Name: "team"},
			Bot: BotSettings{Strategy: "random"}}, ErrStrategy},
		{"ok", Settings{Search: SearchSettings{MaxDepth: 1}, Heuristic: HeuristicSettings{Name: "hp_diff"}}, nil},
		{"rules", Settings{Search: SearchSettings{MaxDepth: 1}, Heuristic: HeuristicSettings{Name: "hp_diff"},
			Bot: BotSettings{Strategy: StrategyRules}}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.s.Validate()
			if tc.want == nil {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}
