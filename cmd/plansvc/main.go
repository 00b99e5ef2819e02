package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fatih/color"

	"battle_ai/internal/combat"
	"battle_ai/internal/config"
	"battle_ai/internal/util"
)

func main() {
	var cfgDir, out, scenarioID string
	var rounds, compare int
	var seed int64
	var all, audit bool
	flag.StringVar(&cfgDir, "config", "assets", "config dir")
	flag.StringVar(&out, "out", "plan.json", "output file (single) or summary file (batch)")
	flag.StringVar(&scenarioID, "scenario", "medium", "scenario id")
	flag.IntVar(&rounds, "rounds", 0, "override scenario round budget")
	flag.IntVar(&compare, "compare", 0, "also rank N random strategies against the plan")
	flag.Int64Var(&seed, "seed", 12345, "seed for -compare")
	flag.BoolVar(&all, "all", false, "plan every scenario instead of one")
	flag.BoolVar(&audit, "log", true, "include the replay audit log in the output")
	flag.Parse()

	skillsCfg, monstersCfg, scenariosCfg, err := config.LoadAll(cfgDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	cat, err := combat.NewCatalogFromConfig(skillsCfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "catalog:", err)
		os.Exit(1)
	}

	if all {
		planAll(cat, monstersCfg, scenariosCfg, out)
		return
	}

	sc, ok := scenariosCfg.Find(scenarioID)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown scenario %q\n", scenarioID)
		os.Exit(1)
	}
	if rounds > 0 {
		sc.MaxRounds = rounds
	}

	req, err := scenarioRequest(cat, monstersCfg, sc)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	res, err := combat.Plan(req)
	if err != nil {
		fmt.Fprintln(os.Stderr, "plan:", err)
		os.Exit(1)
	}

	output := map[string]any{"scenario": sc.ID, "request": req, "result": res}

	if res.Sequence == nil {
		color.Red("%s: no schedule within %d rounds (explored %d states)",
			sc.Name, sc.MaxRounds, res.Stats.StatesExplored)
	} else {
		color.Green("%s: victory in %d rounds (plan %s)", sc.Name, res.Rounds, res.PlanID)
		rep := combat.NewReplayer(cat, req.TargetHP).Replay(res.Sequence, res.PerStepTargets)
		for _, line := range combat.DescribePlan(res, rep) {
			fmt.Println(" ", line)
		}
		if audit {
			output["replay"] = rep
		}
		if compare > 0 {
			output["comparison"] = compareRandom(cat, req, res, compare, seed)
		}
	}
	fmt.Printf("explored=%d pruned=%d cached=%d depth=%d in %dms\n",
		res.Stats.StatesExplored, res.Stats.StatesPruned, res.Stats.StatesCached,
		res.Stats.MaxDepth, res.Stats.ComputeTimeMs)

	if err := os.WriteFile(out, combat.MarshalPretty(output), 0644); err != nil {
		fmt.Fprintln(os.Stderr, "write:", err)
		os.Exit(1)
	}
	fmt.Println("->", out)
}

func scenarioRequest(cat *combat.Catalog, mc *config.MonstersConfig, sc config.Scenario) (combat.PlanRequest, error) {
	battle, err := combat.NewBattleFromScenario(cat, mc, sc)
	if err != nil {
		return combat.PlanRequest{}, err
	}
	return battle.PlanRequest(sc.MaxRounds, sc.Priority), nil
}

func compareRandom(cat *combat.Catalog, req combat.PlanRequest, res *combat.PlanResult, n int, seed int64) combat.Comparison {
	rng := util.New(seed)
	strategies := cat.RandomStrategies(rng, n, req.MaxRounds)
	strategies = append(strategies, res.Sequence)
	return combat.NewReplayer(cat, req.TargetHP).CompareStrategies(strategies)
}

func planAll(cat *combat.Catalog, mc *config.MonstersConfig, scs *config.ScenariosConfig, out string) {
	type row struct {
		Scenario string       `json:"scenario"`
		Rounds   int          `json:"rounds"`
		Sequence []string     `json:"sequence,omitempty"`
		Stats    combat.Stats `json:"stats"`
		Err      string       `json:"error,omitempty"`
	}
	rows := make([]row, len(scs.Scenarios))

	var wg sync.WaitGroup
	workers := 4
	jobs := make(chan int, len(scs.Scenarios))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				sc := scs.Scenarios[i]
				r := row{Scenario: sc.ID, Rounds: -1}
				req, err := scenarioRequest(cat, mc, sc)
				if err == nil {
					var res *combat.PlanResult
					if res, err = combat.Plan(req); err == nil {
						r.Rounds = res.Rounds
						r.Sequence = res.Sequence
						r.Stats = res.Stats
					}
				}
				if err != nil {
					r.Err = err.Error()
				}
				rows[i] = r
			}
		}()
	}
	for i := range scs.Scenarios {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, r := range rows {
		switch {
		case r.Err != "":
			color.Red("%s: %s", r.Scenario, r.Err)
		case r.Rounds < 0:
			color.Yellow("%s: infeasible", r.Scenario)
		default:
			color.Green("%s: %d rounds", r.Scenario, r.Rounds)
		}
	}
	if err := os.WriteFile(out, combat.MarshalPretty(rows), 0644); err != nil {
		fmt.Fprintln(os.Stderr, "write:", err)
		os.Exit(1)
	}
	fmt.Printf("batch of %d scenarios -> %s\n", len(rows), filepath.Base(out))
}
