package combat

// Successors enumerates every legal next state: each ready damage skill
// against each living target, each ready support skill once with no
// target. The effect kind is dispatched here and nowhere else.
func (c *Catalog) Successors(s *BattleState) []*BattleState {
	var out []*BattleState
	for _, sk := range c.Skills {
		if s.cooldownOf(sk.ID) > 0 {
			continue
		}
		switch sk.Effect.Kind {
		case EffectDamage:
			for _, target := range s.AliveTargets() {
				if next := c.apply(s, sk, target); next.valid() {
					out = append(out, next)
				}
			}
		case EffectSupport:
			if next := c.apply(s, sk, NoTarget); next.valid() {
				out = append(out, next)
			}
		}
	}
	return out
}

// apply derives the successor for casting sk. Every cooldown ticks down
// one round, then the cast skill is put on its full cooldown.
func (c *Catalog) apply(s *BattleState, sk *Skill, target int) *BattleState {
	hp := copyInts(s.TargetHP)
	order := copyInts(s.DefeatedOrder)
	if sk.Effect.Kind == EffectDamage && target >= 0 && target < len(hp) && hp[target] > 0 {
		hp[target] -= sk.Effect.Amount
		if hp[target] <= 0 {
			hp[target] = 0
			order = append(order, target)
		}
	}

	cds := make(map[string]int, len(s.Cooldowns)+1)
	for id, cd := range s.Cooldowns {
		if cd > 1 {
			cds[id] = cd - 1
		}
	}
	if sk.Cooldown > 0 {
		cds[sk.ID] = sk.Cooldown
	}

	history := make([]Action, len(s.History), len(s.History)+1)
	copy(history, s.History)
	history = append(history, Action{SkillID: sk.ID, Target: target})

	return &BattleState{
		TargetHP:      hp,
		RoundsUsed:    s.RoundsUsed + 1,
		Cooldowns:     cds,
		History:       history,
		DefeatedOrder: order,
	}
}
