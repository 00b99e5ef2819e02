package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func replayCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := NewCatalog([]SkillSpec{
		{ID: "basic", Name: "Normal Attack", Damage: 5, Cooldown: 0},
		{ID: "power", Name: "Special Attack", Damage: 10, Cooldown: 2},
		{ID: "war_cry", Name: "War Cry", Damage: 0, Cooldown: 1},
	})
	require.NoError(t, err)
	return cat
}

func TestReplayAcceptsValidSequence(t *testing.T) {
	cat := replayCatalog(t)
	rep := NewReplayer(cat, []int{30}).Replay(
		[]string{"power", "basic", "basic", "power"},
		[]int{0, 0, 0, 0},
	)
	require.True(t, rep.Accepted, rep.Reason)
	assert.Equal(t, 4, rep.Rounds)
	assert.Equal(t, []int{0}, rep.FinalHP)
	assert.Equal(t, 30, rep.TotalDamage)
	assert.InDelta(t, 7.5, rep.DamagePerRound, 1e-9)

	require.Len(t, rep.Log, 4)
	assert.Equal(t, "Special Attack", rep.Log[0].SkillName)
	assert.Equal(t, []int{20}, rep.Log[0].TargetHP)
	assert.Equal(t, 2, rep.Log[0].Cooldowns["power"])
	assert.Equal(t, 1, rep.Log[1].Cooldowns["power"])
}

func TestReplayRejectsSkillOnCooldown(t *testing.T) {
	cat := replayCatalog(t)
	rep := NewReplayer(cat, []int{50}).Replay([]string{"power", "power"}, []int{0, 0})
	assert.False(t, rep.Accepted)
	assert.Equal(t, 2, rep.FailedRound)
	assert.Contains(t, rep.Reason, "cooldown")
}

func TestReplayRejectsDeadTarget(t *testing.T) {
	cat := replayCatalog(t)
	rep := NewReplayer(cat, []int{5, 20}).Replay([]string{"basic", "basic"}, []int{0, 0})
	assert.False(t, rep.Accepted)
	assert.Equal(t, 2, rep.FailedRound)
	assert.Contains(t, rep.Reason, "dead target")
}

func TestReplayRejectsMissingTarget(t *testing.T) {
	cat := replayCatalog(t)
	rep := NewReplayer(cat, []int{20}).Replay([]string{"basic"}, []int{3})
	assert.False(t, rep.Accepted)
	assert.Equal(t, 1, rep.FailedRound)
	assert.Contains(t, rep.Reason, "missing target")
}

func TestReplayRejectsUnknownSkill(t *testing.T) {
	cat := replayCatalog(t)
	rep := NewReplayer(cat, []int{20}).Replay([]string{"fireball"}, nil)
	assert.False(t, rep.Accepted)
	assert.Equal(t, 1, rep.FailedRound)
}

func TestReplayRejectsTargetedSupportSkill(t *testing.T) {
	cat := replayCatalog(t)
	rep := NewReplayer(cat, []int{20}).Replay([]string{"war_cry"}, []int{0})
	assert.False(t, rep.Accepted)
	assert.Equal(t, 1, rep.FailedRound)
}

func TestReplayGreedyPicksHighestHPTarget(t *testing.T) {
	cat := replayCatalog(t)
	rep := NewReplayer(cat, []int{10, 25, 15}).Replay(
		[]string{"power", "power"}, nil)
	// second power is on cooldown, so the replay must flag it, but the
	// first hit lands on the 25 HP target
	assert.False(t, rep.Accepted)
	require.NotEmpty(t, rep.Log)
	assert.Equal(t, 1, rep.Log[0].Target)
	assert.Equal(t, []int{10, 15, 15}, rep.Log[0].TargetHP)
}

func TestReplayGreedyFullClear(t *testing.T) {
	cat := replayCatalog(t)
	rep := NewReplayer(cat, []int{5, 10}).Replay(
		[]string{"basic", "basic", "basic"}, nil)
	require.True(t, rep.Accepted, rep.Reason)
	// 10 -> 5, then the tie resolves to the lower index
	assert.Equal(t, []int{1, 0, 1}, []int{rep.Log[0].Target, rep.Log[1].Target, rep.Log[2].Target})
	assert.Equal(t, []int{0, 0}, rep.FinalHP)
}

func TestReplayUnfinishedSequence(t *testing.T) {
	cat := replayCatalog(t)
	rep := NewReplayer(cat, []int{50}).Replay([]string{"basic", "basic"}, nil)
	assert.False(t, rep.Accepted)
	assert.Equal(t, []int{40}, rep.FinalHP)
	assert.Contains(t, rep.Reason, "not defeated")
}

func TestReplayStopsAtVictory(t *testing.T) {
	cat := replayCatalog(t)
	rep := NewReplayer(cat, []int{5}).Replay([]string{"basic", "basic", "basic"}, nil)
	require.True(t, rep.Accepted)
	assert.Equal(t, 1, rep.Rounds)
	assert.Len(t, rep.Log, 1)
	assert.Equal(t, 5, rep.TotalDamage, "overkill damage is not counted")
}

func TestMismatchErrorMessage(t *testing.T) {
	err := &MismatchError{Round: 3, Reason: "skill \"power\" still on cooldown (1 rounds)"}
	assert.Contains(t, err.Error(), "round 3")
}
