package combat

import "math"

// maxSimulatedRounds caps the greedy simulation inside the admissible
// lower bound. The bound never simulates more than this many additional
// rounds; past the cap the state is treated as unwinnable.
const maxSimulatedRounds = 50

// unreachable is the lower bound returned when the simulation cap is
// hit.
const unreachable = math.MaxInt32

// heuristic orders the frontier: rounds already spent plus remaining HP
// over the catalog's mean damage. It is an ordering hint only and is
// never used for pruning.
func (c *Catalog) heuristic(s *BattleState) float64 {
	remaining := s.RemainingHP()
	if remaining <= 0 {
		return float64(s.RoundsUsed)
	}
	mean := c.MeanDamage()
	if mean <= 0 {
		return math.Inf(1)
	}
	return float64(s.RoundsUsed) + float64(remaining)/mean
}

// lowerBound is the admissible estimate used for pruning: greedily cast
// the highest-damage ready skill each round against the pooled remaining
// HP, cycling cooldowns exactly like the successor generator. Pooling HP
// across targets ignores overkill, so the result never exceeds the true
// minimum.
func (c *Catalog) lowerBound(s *BattleState) int {
	remaining := s.RemainingHP()
	if remaining <= 0 {
		return s.RoundsUsed
	}

	cds := make(map[string]int, len(s.Cooldowns))
	for id, cd := range s.Cooldowns {
		if cd > 0 {
			cds[id] = cd
		}
	}

	for round := 1; round <= maxSimulatedRounds; round++ {
		var best *Skill
		for _, sk := range c.Skills {
			if cds[sk.ID] > 0 || sk.Damage() == 0 {
				continue
			}
			if best == nil || sk.Damage() > best.Damage() {
				best = sk
			}
		}

		for id, cd := range cds {
			if cd > 1 {
				cds[id] = cd - 1
			} else {
				delete(cds, id)
			}
		}
		if best != nil {
			remaining -= best.Damage()
			if best.Cooldown > 0 {
				cds[best.ID] = best.Cooldown
			}
		}
		if remaining <= 0 {
			return s.RoundsUsed + round
		}
	}
	return unreachable
}
