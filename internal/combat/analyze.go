package combat

import (
	"fmt"
	"math/rand"
)

type Efficiency struct {
	Valid          bool           `json:"valid"`
	Reason         string         `json:"reason,omitempty"`
	Rounds         int            `json:"rounds"`
	TotalDamage    int            `json:"total_damage"`
	DamagePerRound float64        `json:"damage_per_round"`
	SkillUsage     map[string]int `json:"skill_usage,omitempty"`
	Log            []ReplayEntry  `json:"log,omitempty"`
}

// AnalyzeEfficiency replays a sequence with greedy targeting and
// summarizes how well it spends its rounds.
func (r *Replayer) AnalyzeEfficiency(sequence []string) Efficiency {
	rep := r.Replay(sequence, nil)
	if !rep.Accepted {
		return Efficiency{Reason: rep.Reason}
	}
	usage := map[string]int{}
	for _, entry := range rep.Log {
		usage[entry.SkillID]++
	}
	return Efficiency{
		Valid:          true,
		Rounds:         rep.Rounds,
		TotalDamage:    rep.TotalDamage,
		DamagePerRound: rep.DamagePerRound,
		SkillUsage:     usage,
		Log:            rep.Log,
	}
}

// DescribePlan renders a plan as per-round lines from its replay log,
// closing with the defeat order and its score when one was recorded.
func DescribePlan(res *PlanResult, rep *ReplayResult) []string {
	if res == nil || res.Sequence == nil {
		return []string{"no schedule found within the round budget"}
	}
	lines := make([]string, 0, len(rep.Log)+1)
	for _, e := range rep.Log {
		if e.Target == NoTarget {
			lines = append(lines, fmt.Sprintf("round %d: %s", e.Round, e.SkillName))
			continue
		}
		lines = append(lines, fmt.Sprintf("round %d: %s -> target %d for %d (hp %v)",
			e.Round, e.SkillName, e.Target, e.Damage, e.TargetHP))
	}
	if len(res.DefeatedOrder) > 0 {
		lines = append(lines, fmt.Sprintf("defeat order %v, score %.0f", res.DefeatedOrder, res.OrderScore))
	}
	return lines
}

type Comparison struct {
	Best      int          `json:"best"` // index into Results, -1 if none valid
	Results   []Efficiency `json:"results"`
	MinRounds int          `json:"min_rounds"`
	MaxRounds int          `json:"max_rounds"`
	AvgRounds float64      `json:"avg_rounds"`
}

// CompareStrategies ranks candidate sequences: fewest rounds first,
// ties broken by damage per round.
func (r *Replayer) CompareStrategies(strategies [][]string) Comparison {
	cmp := Comparison{Best: -1}
	validCount := 0
	sumRounds := 0
	for _, seq := range strategies {
		eff := r.AnalyzeEfficiency(seq)
		cmp.Results = append(cmp.Results, eff)
		if !eff.Valid {
			continue
		}
		idx := len(cmp.Results) - 1
		if validCount == 0 {
			cmp.MinRounds, cmp.MaxRounds = eff.Rounds, eff.Rounds
		}
		validCount++
		sumRounds += eff.Rounds
		if eff.Rounds < cmp.MinRounds {
			cmp.MinRounds = eff.Rounds
		}
		if eff.Rounds > cmp.MaxRounds {
			cmp.MaxRounds = eff.Rounds
		}
		best := cmp.Best
		if best < 0 {
			cmp.Best = idx
			continue
		}
		cur := cmp.Results[best]
		if eff.Rounds < cur.Rounds ||
			(eff.Rounds == cur.Rounds && eff.DamagePerRound > cur.DamagePerRound) {
			cmp.Best = idx
		}
	}
	if validCount > 0 {
		cmp.AvgRounds = float64(sumRounds) / float64(validCount)
	}
	return cmp
}

// RandomStrategies makes throwaway sequences to compare an optimal plan
// against, biased 60% toward the first always-ready damage skill.
func (c *Catalog) RandomStrategies(rng *rand.Rand, count, maxLen int) [][]string {
	if maxLen < 3 {
		maxLen = 3
	}
	filler := ""
	for _, sk := range c.Skills {
		if sk.Cooldown == 0 && sk.Damage() > 0 {
			filler = sk.ID
			break
		}
	}
	out := make([][]string, count)
	for i := range out {
		length := 3 + rng.Intn(maxLen-2)
		seq := make([]string, length)
		for j := range seq {
			if filler != "" && rng.Float64() < 0.6 {
				seq[j] = filler
			} else {
				seq[j] = c.Skills[rng.Intn(len(c.Skills))].ID
			}
		}
		out[i] = seq
	}
	return out
}
