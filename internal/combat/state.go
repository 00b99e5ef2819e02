package combat

import (
	"sort"
	"strconv"
	"strings"
)

// NoTarget marks a history entry for a skill that resolved without a
// target.
const NoTarget = -1

type Action struct {
	SkillID string `json:"skill"`
	Target  int    `json:"target"`
}

// BattleState is an immutable snapshot of one combat timeline. Applying
// a skill always derives a new state; the parent is never touched.
type BattleState struct {
	TargetHP      []int
	RoundsUsed    int
	Cooldowns     map[string]int // rounds remaining, zero entries omitted
	History       []Action
	DefeatedOrder []int
}

func NewBattleState(targetHP []int) *BattleState {
	hp := make([]int, len(targetHP))
	copy(hp, targetHP)
	return &BattleState{
		TargetHP:  hp,
		Cooldowns: map[string]int{},
	}
}

func (s *BattleState) IsVictory() bool {
	for _, hp := range s.TargetHP {
		if hp > 0 {
			return false
		}
	}
	return true
}

func (s *BattleState) AliveTargets() []int {
	var alive []int
	for i, hp := range s.TargetHP {
		if hp > 0 {
			alive = append(alive, i)
		}
	}
	return alive
}

func (s *BattleState) RemainingHP() int {
	total := 0
	for _, hp := range s.TargetHP {
		if hp > 0 {
			total += hp
		}
	}
	return total
}

func (s *BattleState) cooldownOf(id string) int {
	return s.Cooldowns[id]
}

// Key identifies a state for deduplication: rounds used, the HP vector
// and every non-zero cooldown in a stable order.
func (s *BattleState) Key() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(s.RoundsUsed))
	b.WriteByte('|')
	for i, hp := range s.TargetHP {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(hp))
	}
	if len(s.Cooldowns) > 0 {
		ids := make([]string, 0, len(s.Cooldowns))
		for id, cd := range s.Cooldowns {
			if cd > 0 {
				ids = append(ids, id)
			}
		}
		sort.Strings(ids)
		b.WriteByte('|')
		for i, id := range ids {
			if i > 0 {
				b.WriteByte(';')
			}
			b.WriteString(id)
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(s.Cooldowns[id]))
		}
	}
	return b.String()
}

// valid checks the structural invariants a derived state must hold. By
// construction from a valid parent this never fails; successors that do
// are dropped.
func (s *BattleState) valid() bool {
	if s.RoundsUsed < 0 || len(s.History) != s.RoundsUsed {
		return false
	}
	for _, hp := range s.TargetHP {
		if hp < 0 {
			return false
		}
	}
	for _, cd := range s.Cooldowns {
		if cd < 0 {
			return false
		}
	}
	return true
}

func copyInts(in []int) []int {
	out := make([]int, len(in))
	copy(out, in)
	return out
}
