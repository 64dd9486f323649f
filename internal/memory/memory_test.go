package memory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dungeonkeeper/dm-engine/internal/effect"
	"github.com/dungeonkeeper/dm-engine/internal/id"
)

// sequentialGen mints deterministic, distinguishable ids for assertions
// without depending on google/uuid's randomness.
type sequentialGen struct{ n byte }

func (g *sequentialGen) New() uuid.UUID {
	g.n++
	var u uuid.UUID
	u[15] = g.n
	return u
}

func TestEntityRegistrationIsCaseInsensitive(t *testing.T) {
	m := New(&sequentialGen{})

	first := m.RegisterEntity("Grizzlebeard")
	again := m.RegisterEntity("  grizzlebeard ")
	assert.Equal(t, first, again)

	name, ok := m.EntityName(first)
	require.True(t, ok)
	assert.Equal(t, "Grizzlebeard", name, "canonical spelling is the first-seen one")
}

func TestPendingConsequencesByImportanceSortsDescending(t *testing.T) {
	m := New(&sequentialGen{})
	m.RegisterConsequence("low", "minor thing happens", SeverityMinor, 0.2, nil, 0)
	m.RegisterConsequence("high", "major thing happens", SeverityMajor, 0.9, nil, 0)
	m.RegisterConsequence("mid", "moderate thing happens", SeverityModerate, 0.5, nil, 0)

	pending := m.PendingConsequencesByImportance()
	require.Len(t, pending, 3)
	assert.Equal(t, "high", pending[0].TriggerText)
	assert.Equal(t, "mid", pending[1].TriggerText)
	assert.Equal(t, "low", pending[2].TriggerText)
}

func TestBuildConsequencesForRelevanceEmptyWhenNonePending(t *testing.T) {
	m := New(&sequentialGen{})
	assert.Equal(t, "", m.BuildConsequencesForRelevance())

	cid := m.RegisterConsequence("trap", "the floor gives way", SeverityMajor, 0.7, nil, 0)
	text := m.BuildConsequencesForRelevance()
	assert.Contains(t, text, cid.String())
	assert.Contains(t, text, "trap")
}

func TestConsequenceTransitionsExactlyOnce(t *testing.T) {
	m := New(&sequentialGen{})
	cid := m.RegisterConsequence("t", "e", SeverityMinor, 0.5, nil, 0)

	assert.True(t, m.Trigger(cid))
	assert.False(t, m.Trigger(cid), "a triggered consequence cannot trigger again")
	assert.False(t, m.Expire(cid), "a triggered consequence cannot also expire")

	c, ok := m.Consequence(cid)
	require.True(t, ok)
	assert.Equal(t, ConsequenceTriggered, c.State)
}

func TestExpireDueExpiresOnlyElapsedPendingConsequences(t *testing.T) {
	m := New(&sequentialGen{})
	soon := 2
	never := m.RegisterConsequence("a", "a", SeverityMinor, 0.1, nil, 0)
	expiring := m.RegisterConsequence("b", "b", SeverityMinor, 0.1, &soon, 0)

	expired := m.ExpireDue(1)
	assert.Empty(t, expired)

	expired = m.ExpireDue(2)
	require.Len(t, expired, 1)
	assert.Equal(t, expiring, expired[0])

	c, _ := m.Consequence(never)
	assert.Equal(t, ConsequencePending, c.State)
}

func TestScheduleAndCancelEventByName(t *testing.T) {
	m := New(&sequentialGen{})
	m.ScheduleEvent("The Eclipse", "in three nights", "the moon turns red")

	assert.True(t, m.CancelEvent("the eclipse"))
	assert.False(t, m.CancelEvent("the eclipse"), "cannot cancel twice")

	events := m.Events()
	require.Len(t, events, 1)
	assert.Equal(t, EventCancelled, events[0].State)
}

func TestShareKnowledgeDedupesIdenticalStatements(t *testing.T) {
	m := New(&sequentialGen{})
	m.ShareKnowledge("Old Man Tobias", "he was once a pirate", "narrative", true)
	m.ShareKnowledge("old man tobias", "he was once a pirate", "narrative", true)
	m.ShareKnowledge("old man tobias", "he fears the sea", "narrative", true)

	stmts, ok := m.KnowledgeOf("Old Man Tobias")
	require.True(t, ok)
	assert.Len(t, stmts, 2)
}

func TestApplyEffectRoutesMemoryOnlyKinds(t *testing.T) {
	m := New(&sequentialGen{})

	m.ApplyEffect(effect.Effect{Kind: effect.KindFactRemembered, EntityName: "Kael", FactText: "swore revenge", Importance: 0.6}, 3)
	require.Len(t, m.Facts(), 1)
	assert.Equal(t, "swore revenge", m.Facts()[0].Text)

	turns := 5
	m.ApplyEffect(effect.Effect{
		Kind: effect.KindConsequenceRegistered, ConsequenceTrigger: "t", ConsequenceEffect: "e",
		Severity: "major", Importance: 0.8, ExpiresInTurns: &turns,
	}, 3)
	pending := m.PendingConsequencesByImportance()
	require.Len(t, pending, 1)
	assert.Equal(t, 3, pending[0].RegisteredTurn)
	assert.Equal(t, SeverityMajor, pending[0].Severity)

	m.ApplyEffect(effect.Effect{Kind: effect.KindKnowledgeShared, EntityName: "Kael", Statement: "hates goblins"}, 3)
	stmts, ok := m.KnowledgeOf("Kael")
	require.True(t, ok)
	assert.Len(t, stmts, 1)

	m.ApplyEffect(effect.Effect{Kind: effect.KindEventScheduled, EventName: "Harvest Moon", EventWhen: "next week", EventDescription: "a festival"}, 3)
	require.Len(t, m.Events(), 1)

	m.ApplyEffect(effect.Effect{Kind: effect.KindEventCancelled, EventName: "harvest moon"}, 3)
	assert.Equal(t, EventCancelled, m.Events()[0].State)
}

func TestSnapshotRoundTrip(t *testing.T) {
	m := New(&sequentialGen{})
	m.RegisterEntity("Kael")
	m.RememberFact("Kael", "backstory", "is a reformed thief", "background", 0.4, []string{"The Guild"})
	turns := 10
	m.RegisterConsequence("stole the ring", "the guild hunts him", SeverityCritical, 0.95, &turns, 1)
	m.ScheduleEvent("Guild Reckoning", "turn 11", "assassins arrive")
	m.ShareKnowledge("Kael", "is wanted dead or alive", "rumor", false)

	snap := m.Snapshot()
	restored := Restore(&sequentialGen{}, snap)

	assert.Equal(t, m.KnownEntityNames(), restored.KnownEntityNames())
	assert.Equal(t, m.Facts(), restored.Facts())
	assert.Equal(t, m.PendingConsequencesByImportance(), restored.PendingConsequencesByImportance())
	assert.Equal(t, m.Events(), restored.Events())

	restoredStmts, ok := restored.KnowledgeOf("Kael")
	require.True(t, ok)
	assert.Equal(t, []Statement{{Text: "is wanted dead or alive", Source: "rumor", Verified: false}}, restoredStmts)

	assert.True(t, restored.CancelEvent("guild reckoning"), "event-by-name index survives round trip")
}

var _ id.Generator = (*sequentialGen)(nil)
