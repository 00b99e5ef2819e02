package combat

import "fmt"

// MismatchError reports a candidate sequence that does not survive
// re-simulation: a skill cast on cooldown, or aimed at a dead or
// missing target. Round numbers start at 1.
type MismatchError struct {
	Round  int
	Reason string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("replay mismatch at round %d: %s", e.Round, e.Reason)
}

type ReplayEntry struct {
	Round     int            `json:"round"`
	SkillID   string         `json:"skill"`
	SkillName string         `json:"skill_name"`
	Damage    int            `json:"damage"`
	Target    int            `json:"target"`
	TargetHP  []int          `json:"target_hp"`
	Cooldowns map[string]int `json:"cooldowns,omitempty"`
}

type ReplayResult struct {
	Accepted       bool          `json:"accepted"`
	Log            []ReplayEntry `json:"log,omitempty"`
	FinalHP        []int         `json:"final_hp"`
	FailedRound    int           `json:"failed_round,omitempty"`
	Reason         string        `json:"reason,omitempty"`
	Rounds         int           `json:"rounds"`
	TotalDamage    int           `json:"total_damage"`
	DamagePerRound float64       `json:"damage_per_round"`
}

// Replayer re-simulates candidate sequences against a fresh cooldown
// vector, independently of any search bookkeeping.
type Replayer struct {
	cat       *Catalog
	initialHP []int
}

func NewReplayer(cat *Catalog, targetHP []int) *Replayer {
	return &Replayer{cat: cat, initialHP: copyInts(targetHP)}
}

// Replay runs the sequence round by round. targets assigns one target
// index per step (NoTarget for support skills); pass nil to pick
// greedily, always the living target with the highest HP. Replay stops
// at the round victory is reached.
func (r *Replayer) Replay(sequence []string, targets []int) *ReplayResult {
	res := &ReplayResult{FinalHP: copyInts(r.initialHP)}
	if targets != nil && len(targets) != len(sequence) {
		return r.reject(res, 0, "target list length does not match sequence")
	}

	hp := copyInts(r.initialHP)
	cds := map[string]int{}
	total := 0

	for i, id := range sequence {
		round := i + 1
		sk := r.cat.Get(id)
		if sk == nil {
			return r.reject(res, round, fmt.Sprintf("unknown skill %q", id))
		}
		if cds[id] > 0 {
			return r.reject(res, round, fmt.Sprintf("skill %q still on cooldown (%d rounds)", id, cds[id]))
		}

		target := NoTarget
		dealt := 0
		switch sk.Effect.Kind {
		case EffectDamage:
			if targets != nil {
				target = targets[i]
			} else {
				target = highestHPTarget(hp)
			}
			if target < 0 || target >= len(hp) {
				return r.reject(res, round, fmt.Sprintf("skill %q aimed at missing target %d", id, target))
			}
			if hp[target] <= 0 {
				return r.reject(res, round, fmt.Sprintf("skill %q aimed at dead target %d", id, target))
			}
			before := hp[target]
			hp[target] -= sk.Effect.Amount
			if hp[target] < 0 {
				hp[target] = 0
			}
			dealt = before - hp[target]
		case EffectSupport:
			if targets != nil && targets[i] != NoTarget {
				return r.reject(res, round, fmt.Sprintf("support skill %q given target %d", id, targets[i]))
			}
		}

		for cid, cd := range cds {
			if cd > 1 {
				cds[cid] = cd - 1
			} else {
				delete(cds, cid)
			}
		}
		if sk.Cooldown > 0 {
			cds[sk.ID] = sk.Cooldown
		}

		total += dealt
		res.Log = append(res.Log, ReplayEntry{
			Round:     round,
			SkillID:   sk.ID,
			SkillName: sk.Name,
			Damage:    dealt,
			Target:    target,
			TargetHP:  copyInts(hp),
			Cooldowns: copyCooldowns(cds),
		})
		res.Rounds = round

		if allDefeated(hp) {
			break
		}
	}

	res.FinalHP = copyInts(hp)
	res.TotalDamage = total
	if res.Rounds > 0 {
		res.DamagePerRound = float64(total) / float64(res.Rounds)
	}
	if !allDefeated(hp) {
		res.Accepted = false
		res.FailedRound = len(sequence)
		res.Reason = "targets not defeated by end of sequence"
		return res
	}
	res.Accepted = true
	return res
}

func (r *Replayer) reject(res *ReplayResult, round int, reason string) *ReplayResult {
	res.Accepted = false
	res.FailedRound = round
	res.Reason = reason
	return res
}

func highestHPTarget(hp []int) int {
	best := NoTarget
	for i, v := range hp {
		if v > 0 && (best == NoTarget || v > hp[best]) {
			best = i
		}
	}
	return best
}

func allDefeated(hp []int) bool {
	for _, v := range hp {
		if v > 0 {
			return false
		}
	}
	return true
}

func copyCooldowns(in map[string]int) map[string]int {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
