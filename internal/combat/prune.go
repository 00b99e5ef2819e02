package combat

// Dynamic threshold: once this many states have been taken off the
// frontier, paths already at 80% of the best solution's length are cut.
// Trades completeness for speed on large instances; it can miss a true
// optimum but never invents a solution.
const (
	dynamicThresholdStates = 10000
	dynamicThresholdRatio  = 0.8
)

// shouldPrune decides whether a non-terminal state is discarded before
// expansion. Checks run cheapest-first.
func (e *Engine) shouldPrune(s *BattleState) bool {
	// round budget exhausted
	if s.RoundsUsed >= e.maxRounds {
		return true
	}

	// even the strongest skill every remaining round cannot finish
	if s.RemainingHP() > e.cat.MaxDamage()*(e.maxRounds-s.RoundsUsed) {
		return true
	}

	// cannot beat the best solution found so far
	if e.best != nil && s.RoundsUsed >= e.best.RoundsUsed {
		return true
	}

	// admissible lower bound cannot beat the best solution. With a
	// target priority in play an equal-length schedule can still win
	// on defeat order, so its ancestors must survive this rule.
	if e.best != nil {
		lb := e.cat.lowerBound(s)
		if lb > e.best.RoundsUsed || (len(e.priority) == 0 && lb == e.best.RoundsUsed) {
			return true
		}
	}

	// dynamic depth threshold on large searches
	if e.best != nil && e.stats.StatesExplored > dynamicThresholdStates &&
		float64(s.RoundsUsed) >= dynamicThresholdRatio*float64(e.best.RoundsUsed) {
		return true
	}

	// dominated by a visited state at the same depth
	if e.dominated(s) {
		return true
	}

	return false
}

// dominated reports whether some already-visited state at the same
// depth beats s on every target's HP and on at least one strictly.
func (e *Engine) dominated(s *BattleState) bool {
	for _, seen := range e.seenHP[s.RoundsUsed] {
		if len(seen) != len(s.TargetHP) {
			continue
		}
		allLE, oneLT := true, false
		for i, hp := range seen {
			if hp > s.TargetHP[i] {
				allLE = false
				break
			}
			if hp < s.TargetHP[i] {
				oneLT = true
			}
		}
		if allLE && oneLT {
			return true
		}
	}
	return false
}
