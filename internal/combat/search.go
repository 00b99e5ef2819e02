package combat

import (
	"container/heap"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type PlanRequest struct {
	Skills         []SkillSpec `json:"skills" validate:"required,min=1,dive"`
	TargetHP       []int       `json:"target_hp" validate:"required,min=1,dive,min=0"`
	MaxRounds      int         `json:"max_rounds" validate:"required,min=1"`
	TargetPriority []int       `json:"target_priority,omitempty" validate:"omitempty,dive,min=0"`
}

type Stats struct {
	StatesExplored int   `json:"states_explored"`
	StatesPruned   int   `json:"states_pruned"`
	StatesCached   int   `json:"states_cached"`
	MaxDepth       int   `json:"max_depth"`
	ComputeTimeMs  int64 `json:"compute_time_ms"`
}

type PlanResult struct {
	PlanID         string   `json:"plan_id"`
	Sequence       []string `json:"sequence,omitempty"`
	Rounds         int      `json:"rounds"`
	PerStepTargets []int    `json:"per_step_targets,omitempty"`
	DefeatedOrder  []int    `json:"defeated_order,omitempty"`
	OrderScore     float64  `json:"order_score,omitempty"`
	Stats          Stats    `json:"stats"`
}

// Engine is a single-use best-first branch-and-bound searcher. It owns
// the best-solution slot and the visited set; build a fresh one per
// planning call.
type Engine struct {
	cat       *Catalog
	initialHP []int
	maxRounds int
	priority  []int

	best    *BattleState
	visited map[string]struct{}
	seenHP  map[int][][]int
	stats   Stats
}

func NewEngine(req PlanRequest) (*Engine, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid plan request: %w", err)
	}
	cat, err := NewCatalog(req.Skills)
	if err != nil {
		return nil, fmt.Errorf("invalid plan request: %w", err)
	}
	for _, p := range req.TargetPriority {
		if p < 0 || p >= len(req.TargetHP) {
			return nil, fmt.Errorf("invalid plan request: priority index %d out of range", p)
		}
	}
	return &Engine{
		cat:       cat,
		initialHP: copyInts(req.TargetHP),
		maxRounds: req.MaxRounds,
		priority:  copyInts(req.TargetPriority),
		visited:   map[string]struct{}{},
		seenHP:    map[int][][]int{},
	}, nil
}

// Plan validates the request and runs a fresh engine over it.
func Plan(req PlanRequest) (*PlanResult, error) {
	e, err := NewEngine(req)
	if err != nil {
		return nil, err
	}
	return e.Plan()
}

// Plan drives the search to exhaustion and returns the best schedule
// found, or a nil sequence with rounds -1 when no schedule fits the
// round budget. The winning sequence is re-validated by the replayer
// before it is returned.
func (e *Engine) Plan() (*PlanResult, error) {
	start := time.Now()

	root := NewBattleState(e.initialHP)
	frontier := &stateQueue{}
	heap.Init(frontier)
	heap.Push(frontier, queued{state: root, priority: e.cat.heuristic(root)})

	for frontier.Len() > 0 {
		cur := heap.Pop(frontier).(queued).state
		e.stats.StatesExplored++

		key := e.stateKey(cur)
		if _, seen := e.visited[key]; seen {
			continue
		}
		e.visited[key] = struct{}{}
		e.seenHP[cur.RoundsUsed] = append(e.seenHP[cur.RoundsUsed], cur.TargetHP)
		if cur.RoundsUsed > e.stats.MaxDepth {
			e.stats.MaxDepth = cur.RoundsUsed
		}

		if cur.IsVictory() {
			if e.betterTerminal(cur) {
				e.best = cur
			}
			continue // never expand past victory
		}

		if e.shouldPrune(cur) {
			e.stats.StatesPruned++
			continue
		}

		for _, next := range e.cat.Successors(cur) {
			if _, seen := e.visited[e.stateKey(next)]; seen {
				continue
			}
			heap.Push(frontier, queued{state: next, priority: e.cat.heuristic(next)})
		}
	}

	e.stats.StatesCached = len(e.visited)
	e.stats.ComputeTimeMs = time.Since(start).Milliseconds()

	res := &PlanResult{
		PlanID: uuid.NewString(),
		Rounds: -1,
		Stats:  e.stats,
	}
	if e.best == nil {
		return res, nil
	}

	sequence := make([]string, len(e.best.History))
	targets := make([]int, len(e.best.History))
	for i, act := range e.best.History {
		sequence[i] = act.SkillID
		targets[i] = act.Target
	}

	rep := NewReplayer(e.cat, e.initialHP).Replay(sequence, targets)
	if !rep.Accepted {
		return nil, &MismatchError{Round: rep.FailedRound, Reason: rep.Reason}
	}

	res.Sequence = sequence
	res.Rounds = e.best.RoundsUsed
	res.PerStepTargets = targets
	res.DefeatedOrder = copyInts(e.best.DefeatedOrder)
	res.OrderScore = orderScore(e.priority, e.best.DefeatedOrder)
	return res, nil
}

// stateKey is the dedup key. In the ordered-target variant the defeat
// order is part of a state's identity: two timelines reaching the same
// HP and cooldowns still differ in how they score against the priority
// list, so they must not collapse into one.
func (e *Engine) stateKey(s *BattleState) string {
	key := s.Key()
	if len(e.priority) == 0 || len(s.DefeatedOrder) == 0 {
		return key
	}
	var b strings.Builder
	b.WriteString(key)
	b.WriteByte('#')
	for i, idx := range s.DefeatedOrder {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(idx))
	}
	return b.String()
}

// betterTerminal implements the objective: fewer rounds wins; on equal
// rounds a higher defeat-order score wins when a priority order was
// given.
func (e *Engine) betterTerminal(cand *BattleState) bool {
	if e.best == nil {
		return true
	}
	if cand.RoundsUsed != e.best.RoundsUsed {
		return cand.RoundsUsed < e.best.RoundsUsed
	}
	if len(e.priority) == 0 {
		return false
	}
	return orderScore(e.priority, cand.DefeatedOrder) > orderScore(e.priority, e.best.DefeatedOrder)
}

// orderScore rewards defeating targets in the requested order: position
// i pays (N-i)*10 on a match and -5 on a mismatch, N being the length
// of the priority list.
func orderScore(priority, defeated []int) float64 {
	if len(priority) == 0 || len(defeated) == 0 {
		return 0
	}
	n := len(priority)
	score := 0.0
	for i, actual := range defeated {
		if i >= n {
			break
		}
		if actual == priority[i] {
			score += float64((n - i) * 10)
		} else {
			score -= 5
		}
	}
	return score
}

type queued struct {
	state    *BattleState
	priority float64
}

type stateQueue []queued

func (q stateQueue) Len() int           { return len(q) }
func (q stateQueue) Less(i, j int) bool { return q[i].priority < q[j].priority }
func (q stateQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *stateQueue) Push(x any)        { *q = append(*q, x.(queued)) }
func (q *stateQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
