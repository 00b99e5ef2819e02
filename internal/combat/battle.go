package combat

import (
	"fmt"

	"battle_ai/internal/config"
)

type Monster struct {
	ID      int
	Name    string
	HP      int
	MaxHP   int
	Attack  int
	Defense int
}

func (m *Monster) Alive() bool { return m.HP > 0 }

// TakeDamage applies at least 1 damage and reports what actually landed.
func (m *Monster) TakeDamage(dmg int) int {
	if dmg < 1 {
		dmg = 1
	}
	before := m.HP
	m.HP -= dmg
	if m.HP < 0 {
		m.HP = 0
	}
	return before - m.HP
}

func (m *Monster) HPPercent() float64 {
	if m.MaxHP <= 0 {
		return 0
	}
	return float64(m.HP) / float64(m.MaxHP)
}

// Battle is the mutable, turn-by-turn fight the surrounding game drives
// directly. It shares the skill catalog with the planner but, unlike
// the search, advances a single timeline in place.
type Battle struct {
	Monsters  []*Monster
	Turn      int
	Active    bool
	cat       *Catalog
	cooldowns map[string]int
	log       []string
}

func NewBattle(cat *Catalog, monsters []*Monster) *Battle {
	b := &Battle{
		cat:       cat,
		Monsters:  monsters,
		Active:    true,
		cooldowns: map[string]int{},
	}
	b.addLog(fmt.Sprintf("battle starts against %d monsters", len(monsters)))
	return b
}

// NewBattleFromScenario spawns the monsters a scenario names, in order.
func NewBattleFromScenario(cat *Catalog, mc *config.MonstersConfig, sc config.Scenario) (*Battle, error) {
	monsters := make([]*Monster, len(sc.Monsters))
	for i, id := range sc.Monsters {
		def, ok := mc.Find(id)
		if !ok {
			return nil, fmt.Errorf("scenario %s: unknown monster %q", sc.ID, id)
		}
		monsters[i] = &Monster{
			ID:      i,
			Name:    def.Name,
			HP:      def.HP,
			MaxHP:   def.HP,
			Attack:  def.Attack,
			Defense: def.Defense,
		}
	}
	return NewBattle(cat, monsters), nil
}

func (b *Battle) addLog(msg string) {
	b.log = append(b.log, fmt.Sprintf("turn %d: %s", b.Turn, msg))
}

func (b *Battle) AliveMonsters() []*Monster {
	var alive []*Monster
	for _, m := range b.Monsters {
		if m.Alive() {
			alive = append(alive, m)
		}
	}
	return alive
}

// AvailableSkills reports which catalog skills are off cooldown.
func (b *Battle) AvailableSkills() map[string]bool {
	out := make(map[string]bool, len(b.cat.Skills))
	for _, sk := range b.cat.Skills {
		out[sk.ID] = b.cooldowns[sk.ID] == 0
	}
	return out
}

type TurnResult struct {
	SkillID   string `json:"skill"`
	SkillName string `json:"skill_name"`
	Damage    int    `json:"damage"`
	Target    int    `json:"target"`
	Defeated  bool   `json:"defeated"`
	Victory   bool   `json:"victory"`
}

// ExecuteTurn spends one round on a skill. Damage skills without an
// explicit target hit the first living monster. Support skills resolve
// without one.
func (b *Battle) ExecuteTurn(skillID string, target int) (*TurnResult, error) {
	if !b.Active {
		return nil, fmt.Errorf("battle already over")
	}
	sk := b.cat.Get(skillID)
	if sk == nil {
		return nil, fmt.Errorf("unknown skill %q", skillID)
	}
	if b.cooldowns[skillID] > 0 {
		return nil, fmt.Errorf("skill %q on cooldown for %d more turns", skillID, b.cooldowns[skillID])
	}

	var tgt *Monster
	if sk.Effect.Kind == EffectDamage {
		alive := b.AliveMonsters()
		if len(alive) == 0 {
			return nil, fmt.Errorf("no living target")
		}
		if target >= 0 {
			for _, m := range alive {
				if m.ID == target {
					tgt = m
					break
				}
			}
		}
		if tgt == nil {
			tgt = alive[0]
		}
	}

	b.Turn++
	for id, cd := range b.cooldowns {
		if cd > 1 {
			b.cooldowns[id] = cd - 1
		} else {
			delete(b.cooldowns, id)
		}
	}
	if sk.Cooldown > 0 {
		b.cooldowns[sk.ID] = sk.Cooldown
	}

	res := &TurnResult{SkillID: sk.ID, SkillName: sk.Name, Target: NoTarget}

	if tgt != nil {
		res.Target = tgt.ID
		res.Damage = tgt.TakeDamage(sk.Effect.Amount)
		b.addLog(fmt.Sprintf("%s hits %s for %d (HP %d)", sk.Name, tgt.Name, res.Damage, tgt.HP))
		if !tgt.Alive() {
			res.Defeated = true
			b.addLog(fmt.Sprintf("%s is defeated", tgt.Name))
		}
	} else {
		b.addLog(fmt.Sprintf("%s is used", sk.Name))
	}

	if len(b.AliveMonsters()) == 0 {
		b.Active = false
		res.Victory = true
		b.addLog("all monsters defeated")
	}
	return res, nil
}

// SuggestTarget recommends the living monster with the lowest HP, or
// NoTarget when none remain.
func (b *Battle) SuggestTarget() int {
	var best *Monster
	for _, m := range b.Monsters {
		if !m.Alive() {
			continue
		}
		if best == nil || m.HP < best.HP {
			best = m
		}
	}
	if best == nil {
		return NoTarget
	}
	return best.ID
}

type MonsterSnapshot struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	HP        int     `json:"hp"`
	MaxHP     int     `json:"max_hp"`
	Alive     bool    `json:"alive"`
	HPPercent float64 `json:"hp_percent"`
}

type BattleSnapshot struct {
	Monsters  []MonsterSnapshot `json:"monsters"`
	Cooldowns map[string]int    `json:"cooldowns,omitempty"`
	Available map[string]bool   `json:"available_skills"`
	Turn      int               `json:"turn"`
	Active    bool              `json:"active"`
	Log       []string          `json:"log,omitempty"`
}

// Snapshot exposes the battle to the UI layer; the log is trimmed to
// the most recent five lines like the in-game battle panel shows.
func (b *Battle) Snapshot() BattleSnapshot {
	snap := BattleSnapshot{
		Cooldowns: copyCooldowns(b.cooldowns),
		Available: b.AvailableSkills(),
		Turn:      b.Turn,
		Active:    b.Active,
	}
	for _, m := range b.Monsters {
		snap.Monsters = append(snap.Monsters, MonsterSnapshot{
			ID:        m.ID,
			Name:      m.Name,
			HP:        m.HP,
			MaxHP:     m.MaxHP,
			Alive:     m.Alive(),
			HPPercent: m.HPPercent(),
		})
	}
	if n := len(b.log); n > 5 {
		snap.Log = append(snap.Log, b.log[n-5:]...)
	} else {
		snap.Log = append(snap.Log, b.log...)
	}
	return snap
}

// PlanRequest translates the remaining fight into a planner call.
func (b *Battle) PlanRequest(maxRounds int, priority []int) PlanRequest {
	hp := make([]int, len(b.Monsters))
	for i, m := range b.Monsters {
		hp[i] = m.HP
	}
	specs := make([]SkillSpec, len(b.cat.Skills))
	for i, sk := range b.cat.Skills {
		specs[i] = SkillSpec{ID: sk.ID, Name: sk.Name, Damage: sk.Damage(), Cooldown: sk.Cooldown}
	}
	return PlanRequest{
		Skills:         specs,
		TargetHP:       hp,
		MaxRounds:      maxRounds,
		TargetPriority: copyInts(priority),
	}
}
