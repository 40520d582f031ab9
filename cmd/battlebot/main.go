package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"battlebot/internal/battle"
	"battlebot/internal/bot"
	"battlebot/internal/config"
	"battlebot/internal/engine"
	"battlebot/internal/util"
)

type options struct {
	cfgDir   string
	snapshot string
	out      string
	workers  int
	seed     int64
	level    string
	strategy string
}

// entry is the outcome for one snapshot file.
type entry struct {
	File     string          `json:"file"`
	Decision battle.Decision `json:"decision"`
	Error    string          `json:"error,omitempty"`
}

type summary struct {
	Runs      int     `json:"runs"`
	Fallbacks int     `json:"fallbacks"`
	Errors    int     `json:"errors"`
	Decisions []entry `json:"decisions"`
}

func main() {
	var o options
	flag.StringVar(&o.cfgDir, "config", "", "config dir, embedded tables when empty")
	flag.StringVar(&o.snapshot, "snapshot", "snapshot.yaml", "snapshot file, or a directory of snapshots for batch mode")
	flag.StringVar(&o.out, "out", "decision.json", "output file (single) or summary file (batch)")
	flag.IntVar(&o.workers, "workers", 8, "batch workers")
	flag.Int64Var(&o.seed, "seed", 0, "fallback seed, overrides the settings when non-zero")
	flag.StringVar(&o.level, "log-level", "", "log level, overrides the settings")
	flag.StringVar(&o.strategy, "strategy", "", "minimax, best_damage, max_power or rules; overrides the settings")
	flag.Parse()

	if err := run(context.Background(), o); err != nil {
		fmt.Fprintln(os.Stderr, "battlebot:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o options) error {
	dc, rc, st, err := config.LoadAll(o.cfgDir)
	if err != nil {
		return err
	}
	if o.seed != 0 {
		st.Bot.Seed = o.seed
	}
	if o.level != "" {
		st.Log.Level = o.level
	}
	if o.strategy != "" {
		st.Bot.Strategy = o.strategy
	}
	log, err := util.NewLogger(os.Stderr, st.Log.Level, st.Log.Pretty)
	if err != nil {
		return err
	}
	calc := engine.New(battle.NewDex(dc), rc)

	info, err := os.Stat(o.snapshot)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		a, err := bot.NewAgent(calc, st, log)
		if err != nil {
			return err
		}
		e := decideFile(ctx, a, o.snapshot)
		if e.Error != "" {
			return fmt.Errorf("%s: %s", o.snapshot, e.Error)
		}
		if err := os.WriteFile(o.out, util.MarshalPretty(e), 0644); err != nil {
			return err
		}
		log.Info().
			Str("action", e.Decision.Action()).
			Bool("dynamax", e.Decision.Dynamax).
			Bool("fallback", e.Decision.Fallback).
			Str("out", o.out).
			Msg("decision written")
		return nil
	}

	files, err := snapshotFiles(o.snapshot)
	if err != nil {
		return err
	}
	sum, err := batch(ctx, calc, st, log, files, o.workers)
	if err != nil {
		return err
	}
	if err := os.WriteFile(o.out, util.MarshalPretty(sum), 0644); err != nil {
		return err
	}
	log.Info().
		Int("runs", sum.Runs).
		Int("fallbacks", sum.Fallbacks).
		Int("errors", sum.Errors).
		Str("out", filepath.Base(o.out)).
		Msg("batch done")
	return nil
}

func decideFile(ctx context.Context, a *bot.Agent, path string) entry {
	e := entry{File: filepath.Base(path)}
	snap, err := battle.ReadSnapshot(path)
	if err != nil {
		e.Error = err.Error()
		return e
	}
	d, err := a.Decide(ctx, snap)
	e.Decision = d
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// batch decides every file with a pool of agents, one per worker, each
// seeded from the base seed and its worker id.
func batch(ctx context.Context, calc *engine.Calculator, st *config.Settings, log zerolog.Logger, files []string, workers int) (summary, error) {
	if workers < 1 {
		workers = 1
	}
	agents := make([]*bot.Agent, workers)
	for w := range agents {
		ws := *st
		ws.Bot.Seed = st.Bot.Seed + int64(w)*7919
		a, err := bot.NewAgent(calc, &ws, log.With().Int("worker", w).Logger())
		if err != nil {
			return summary{}, err
		}
		agents[w] = a
	}

	sum := summary{Runs: len(files), Decisions: make([]entry, len(files))}
	var mu sync.Mutex
	wg := sync.WaitGroup{}
	jobs := make(chan int, len(files))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(a *bot.Agent) {
			defer wg.Done()
			for i := range jobs {
				e := decideFile(ctx, a, files[i])

				mu.Lock()
				sum.Decisions[i] = e
				if e.Decision.Fallback {
					sum.Fallbacks++
				}
				if e.Error != "" {
					sum.Errors++
				}
				mu.Unlock()
			}
		}(agents[w])
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return sum, nil
}

func snapshotFiles(dir string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml", ".json":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
