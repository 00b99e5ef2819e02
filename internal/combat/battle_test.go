package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battle_ai/internal/config"
)

func testBattle(t *testing.T) *Battle {
	t.Helper()
	cat := replayCatalog(t)
	return NewBattle(cat, []*Monster{
		{ID: 0, Name: "Goblin", HP: 12, MaxHP: 12, Attack: 6, Defense: 1},
		{ID: 1, Name: "Orc", HP: 20, MaxHP: 20, Attack: 10, Defense: 2},
	})
}

func TestBattleTurnFlow(t *testing.T) {
	b := testBattle(t)

	res, err := b.ExecuteTurn("power", 1)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Damage)
	assert.Equal(t, 1, res.Target)
	assert.False(t, res.Defeated)
	assert.Equal(t, 1, b.Turn)

	_, err = b.ExecuteTurn("power", 1)
	require.Error(t, err, "special attack must still be cooling")

	res, err = b.ExecuteTurn("basic", 0)
	require.NoError(t, err)
	assert.Equal(t, 7, b.Monsters[0].HP)
	assert.False(t, res.Victory)
}

func TestBattleDefeatAndVictory(t *testing.T) {
	cat := replayCatalog(t)
	b := NewBattle(cat, []*Monster{{ID: 0, Name: "Goblin", HP: 8, MaxHP: 8}})

	res, err := b.ExecuteTurn("power", 0)
	require.NoError(t, err)
	assert.True(t, res.Defeated)
	assert.True(t, res.Victory)
	assert.False(t, b.Active)

	_, err = b.ExecuteTurn("basic", 0)
	assert.Error(t, err, "no turns after the battle ends")
}

func TestBattleDefaultsToFirstLivingTarget(t *testing.T) {
	b := testBattle(t)
	res, err := b.ExecuteTurn("basic", NoTarget)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Target)

	b.Monsters[0].HP = 0
	res, err = b.ExecuteTurn("basic", NoTarget)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Target)
}

func TestBattleMinimumDamage(t *testing.T) {
	m := &Monster{ID: 0, Name: "Troll", HP: 10, MaxHP: 10}
	assert.Equal(t, 1, m.TakeDamage(0), "every hit lands for at least 1")
	assert.Equal(t, 9, m.HP)
}

func TestBattleSuggestTarget(t *testing.T) {
	b := testBattle(t)
	assert.Equal(t, 0, b.SuggestTarget(), "goblin has the lowest hp")

	b.Monsters[0].HP = 0
	assert.Equal(t, 1, b.SuggestTarget())

	b.Monsters[1].HP = 0
	assert.Equal(t, NoTarget, b.SuggestTarget())
}

func TestBattleUnknownSkill(t *testing.T) {
	b := testBattle(t)
	_, err := b.ExecuteTurn("fireball", 0)
	assert.Error(t, err)
}

func TestBattleSupportSkillNeedsNoTarget(t *testing.T) {
	b := testBattle(t)
	res, err := b.ExecuteTurn("war_cry", NoTarget)
	require.NoError(t, err)
	assert.Equal(t, NoTarget, res.Target)
	assert.Equal(t, 0, res.Damage)
	assert.Equal(t, 12, b.Monsters[0].HP)
}

func TestBattleSnapshot(t *testing.T) {
	b := testBattle(t)
	_, err := b.ExecuteTurn("power", 0)
	require.NoError(t, err)

	snap := b.Snapshot()
	assert.Equal(t, 1, snap.Turn)
	assert.True(t, snap.Active)
	require.Len(t, snap.Monsters, 2)
	assert.Equal(t, 2, snap.Monsters[0].HP)
	assert.InDelta(t, 2.0/12.0, snap.Monsters[0].HPPercent, 1e-9)
	assert.False(t, snap.Available["power"])
	assert.True(t, snap.Available["basic"])
	assert.LessOrEqual(t, len(snap.Log), 5)
}

func TestBattleFromScenario(t *testing.T) {
	cat := replayCatalog(t)
	mc := &config.MonstersConfig{Monsters: []config.MonsterDef{
		{ID: "goblin", Name: "Goblin", HP: 25, Attack: 6, Defense: 1},
		{ID: "orc", Name: "Orc", HP: 40, Attack: 10, Defense: 2},
	}}
	sc := config.Scenario{ID: "easy", Monsters: []string{"goblin", "goblin", "orc"}, MaxRounds: 20}

	b, err := NewBattleFromScenario(cat, mc, sc)
	require.NoError(t, err)
	require.Len(t, b.Monsters, 3)
	assert.Equal(t, "Goblin", b.Monsters[1].Name)
	assert.Equal(t, 2, b.Monsters[2].ID)
	assert.Equal(t, 40, b.Monsters[2].HP)

	_, err = NewBattleFromScenario(cat, mc, config.Scenario{ID: "bad", Monsters: []string{"dragon"}})
	assert.Error(t, err)
}

func TestBattlePlanRequestBridge(t *testing.T) {
	b := testBattle(t)
	_, err := b.ExecuteTurn("basic", 0)
	require.NoError(t, err)

	req := b.PlanRequest(15, []int{1, 0})
	assert.Equal(t, []int{7, 20}, req.TargetHP)
	assert.Equal(t, 15, req.MaxRounds)
	assert.Equal(t, []int{1, 0}, req.TargetPriority)

	res, err := Plan(req)
	require.NoError(t, err)
	assert.NotNil(t, res.Sequence)
}

func TestBattleNoLivingTargetLeavesStateUntouched(t *testing.T) {
	b := testBattle(t)
	for _, m := range b.Monsters {
		m.HP = 0
	}

	_, err := b.ExecuteTurn("power", 0)
	require.Error(t, err)

	snap := b.Snapshot()
	assert.Zero(t, snap.Turn)
	assert.Empty(t, snap.Cooldowns)
}
