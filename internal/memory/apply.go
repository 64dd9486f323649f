package memory

import "github.com/dungeonkeeper/dm-engine/internal/effect"

// ApplyEffect persists the Effects that are Story-Memory-only (internal/apply treats them as no-ops against World):
// KnowledgeShared, EventScheduled, EventCancelled, FactRemembered,
// ConsequenceRegistered, and a StateAsserted whose state type is
// "relationship", which is stored as a fact in the "relationship"
// category. currentTurn stamps RegisterConsequence so
// ExpireDue can later compute elapsed turns. Any other Kind is ignored —
// everything else is World's concern, already handled by internal/apply.
func (m *Memory) ApplyEffect(e effect.Effect, currentTurn int) {
	switch e.Kind {
	case effect.KindKnowledgeShared:
		m.ShareKnowledge(e.EntityName, e.Statement, "narrative", true)
	case effect.KindEventScheduled:
		m.ScheduleEvent(e.EventName, e.EventWhen, e.EventDescription)
	case effect.KindEventCancelled:
		m.CancelEvent(e.EventName)
	case effect.KindFactRemembered:
		m.RememberFact(e.EntityName, "", e.FactText, e.FactCategory, e.Importance, e.RelatedEntities)
	case effect.KindConsequenceRegistered:
		m.RegisterConsequence(e.ConsequenceTrigger, e.ConsequenceEffect, ParseSeverity(e.Severity), e.Importance, e.ExpiresInTurns, currentTurn)
	case effect.KindStateAsserted:
		if e.StateType == "relationship" {
			var related []string
			if e.TargetEntity != "" {
				related = []string{e.TargetEntity}
			}
			m.RememberFact(e.EntityName, "", e.NewValue, "relationship", 0.5, related)
		}
	}
}
