package memory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dungeonkeeper/dm-engine/internal/id"
)

// Severity is a Consequence's narrative weight.
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeverityMajor    Severity = "major"
	SeverityCritical Severity = "critical"
)

// ParseSeverity converts free text to a Severity, case-insensitively,
// defaulting to Minor for anything unrecognized rather than rejecting the
// RegisterConsequence Intent outright — severity only affects prompt
// framing, never an invariant.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "moderate":
		return SeverityModerate
	case "major":
		return SeverityMajor
	case "critical":
		return SeverityCritical
	default:
		return SeverityMinor
	}
}

// ConsequenceState is a Consequence's lifecycle: Pending moves to
// Triggered or Expired exactly once.
type ConsequenceState string

const (
	ConsequencePending   ConsequenceState = "pending"
	ConsequenceTriggered ConsequenceState = "triggered"
	ConsequenceExpired   ConsequenceState = "expired"
)

// Consequence is a deferred narrative trigger.
type Consequence struct {
	ID             id.ConsequenceID `json:"id"`
	TriggerText    string           `json:"trigger_text"`
	EffectText     string           `json:"effect_text"`
	Severity       Severity         `json:"severity"`
	Importance     float32          `json:"importance"`
	ExpiresInTurns *int             `json:"expires_in_turns,omitempty"`
	RegisteredTurn int              `json:"registered_turn"`
	State          ConsequenceState `json:"state"`
}

// RegisterConsequence records a new Pending Consequence, stamped with the
// turn it was registered on so ExpireDue can later compute whether
// ExpiresInTurns has elapsed.
func (m *Memory) RegisterConsequence(triggerText, effectText string, severity Severity, importance float32, expiresInTurns *int, currentTurn int) id.ConsequenceID {
	cid := id.NewConsequenceID(m.gen)
	m.consequences[cid] = Consequence{
		ID: cid, TriggerText: triggerText, EffectText: effectText,
		Severity: severity, Importance: importance, ExpiresInTurns: expiresInTurns,
		RegisteredTurn: currentTurn, State: ConsequencePending,
	}
	m.consequenceOrder = append(m.consequenceOrder, cid)
	return cid
}

// Consequence looks up one Consequence by id.
func (m *Memory) Consequence(cid id.ConsequenceID) (Consequence, bool) {
	c, ok := m.consequences[cid]
	return c, ok
}

// Trigger moves a Pending Consequence to Triggered. Returns false if cid is
// unknown or already left Pending; the transition happens exactly once.
func (m *Memory) Trigger(cid id.ConsequenceID) bool {
	c, ok := m.consequences[cid]
	if !ok || c.State != ConsequencePending {
		return false
	}
	c.State = ConsequenceTriggered
	m.consequences[cid] = c
	return true
}

// Expire moves a Pending Consequence to Expired.
func (m *Memory) Expire(cid id.ConsequenceID) bool {
	c, ok := m.consequences[cid]
	if !ok || c.State != ConsequencePending {
		return false
	}
	c.State = ConsequenceExpired
	m.consequences[cid] = c
	return true
}

// ExpireDue walks every Pending Consequence and expires those whose
// ExpiresInTurns has elapsed as of currentTurn, returning the ids it
// expired. The orchestrator calls this once per turn, before the
// relevance check, so an expired consequence never appears in that turn's
// pending-consequences prompt.
func (m *Memory) ExpireDue(currentTurn int) []id.ConsequenceID {
	var expired []id.ConsequenceID
	for _, cid := range m.consequenceOrder {
		c := m.consequences[cid]
		if c.State != ConsequencePending || c.ExpiresInTurns == nil {
			continue
		}
		if currentTurn-c.RegisteredTurn >= *c.ExpiresInTurns {
			c.State = ConsequenceExpired
			m.consequences[cid] = c
			expired = append(expired, cid)
		}
	}
	return expired
}

// PendingConsequencesByImportance returns every Pending Consequence sorted
// by descending importance, stable over registration order for ties
//.
func (m *Memory) PendingConsequencesByImportance() []Consequence {
	var pending []Consequence
	for _, cid := range m.consequenceOrder {
		if c := m.consequences[cid]; c.State == ConsequencePending {
			pending = append(pending, c)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].Importance > pending[j].Importance
	})
	return pending
}

// BuildConsequencesForRelevance renders the pending consequences as a
// compact, id-keyed text list for inclusion in the relevance-check prompt
//. Returns "" when there are none, which callers use to
// short-circuit the relevance check entirely.
func (m *Memory) BuildConsequencesForRelevance() string {
	pending := m.PendingConsequencesByImportance()
	if len(pending) == 0 {
		return ""
	}
	var b strings.Builder
	for _, c := range pending {
		fmt.Fprintf(&b, "[%s] (%s, importance %.2f) if %q then %q\n",
			c.ID, c.Severity, c.Importance, c.TriggerText, c.EffectText)
	}
	return strings.TrimRight(b.String(), "\n")
}
