package rules

import (
	"fmt"

	"github.com/dungeonkeeper/dm-engine/internal/effect"
	"github.com/dungeonkeeper/dm-engine/internal/intent"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

// resolveStateAssert emits StateAsserted without validating the NPC exists
// or the value parses — the Applier does that work,
// since a state assertion about an NPC the player hasn't met yet is still
// meaningful as a no-op rather than a RuleViolation.
func resolveStateAssert(w *world.World, in intent.Intent) Resolution {
	return Resolution{
		Narrative: fmt.Sprintf("%s's %s is now %s.", in.EntityName, in.StateType, in.NewValue),
		Effects: []effect.Effect{{
			Kind: effect.KindStateAsserted, EntityName: in.EntityName, StateType: string(in.StateType),
			NewValue: in.NewValue, TargetEntity: in.TargetEntity,
		}},
	}
}

func resolveKnowledgeShare(w *world.World, in intent.Intent) Resolution {
	return Resolution{
		Narrative: fmt.Sprintf("%s now knows: %s", in.EntityName, in.Statement),
		Effects:   []effect.Effect{{Kind: effect.KindKnowledgeShared, EntityName: in.EntityName, Statement: in.Statement}},
	}
}

func resolveScheduleEvent(w *world.World, in intent.Intent) Resolution {
	return Resolution{
		Narrative: fmt.Sprintf("Something is set in motion: %s.", in.Description),
		Effects:   []effect.Effect{{Kind: effect.KindEventScheduled, EventName: in.EventName, EventWhen: in.EventWhen, EventDescription: in.Description}},
	}
}

func resolveCancelEvent(w *world.World, in intent.Intent) Resolution {
	return Resolution{
		Narrative: fmt.Sprintf("%s is called off.", in.EventName),
		Effects:   []effect.Effect{{Kind: effect.KindEventCancelled, EventName: in.EventName}},
	}
}

// resolveRememberFact and resolveRegisterConsequence are purely
// informational: the Applier is a no-op for these — they
// are persisted into Story Memory by the orchestrator, not mirrored into
// World.
func resolveRememberFact(w *world.World, in intent.Intent) Resolution {
	return Resolution{
		Narrative: "",
		Effects: []effect.Effect{{
			Kind: effect.KindFactRemembered, EntityName: in.EntityName, FactText: in.FactText,
			FactCategory: in.FactCategory, Importance: in.Importance, RelatedEntities: in.RelatedEntities,
		}},
	}
}

func resolveRegisterConsequence(w *world.World, in intent.Intent) Resolution {
	return Resolution{
		Narrative: "",
		Effects: []effect.Effect{{
			Kind: effect.KindConsequenceRegistered, ConsequenceTrigger: in.ConsequenceTrigger,
			ConsequenceEffect: in.ConsequenceEffect, Severity: in.Severity, Importance: in.Importance,
			ExpiresInTurns: in.ExpiresInTurns,
		}},
	}
}
