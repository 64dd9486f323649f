// Package apply implements the Effect Applier: the only code in the
// engine that mutates *world.World. Each Effect is applied in the order
// given, after which the world invariants are re-checked — a violation is
// a fatal engine bug, surfaced as a panic-worthy error rather than
// swallowed.
package apply

import (
	"github.com/dungeonkeeper/dm-engine/internal/content"
	"github.com/dungeonkeeper/dm-engine/internal/effect"
	"github.com/dungeonkeeper/dm-engine/internal/id"
	"github.com/dungeonkeeper/dm-engine/internal/mechanics"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

// Applier owns the collaborators Apply needs beyond World: an id.Generator
// for entities created on demand (NPCs, Quests, Locations) and a
// content.Provider for equip-time canonical stat lookups.
type Applier struct {
	Gen     id.Generator
	Content content.Provider
}

// NewApplier builds an Applier with the real UUID generator and the
// static TableProvider.
func NewApplier() *Applier {
	return &Applier{Gen: id.NewGoogleUUIDGenerator(), Content: content.NewTableProvider()}
}

// Apply mutates w according to effects, in order, then verifies the
// world invariants still hold. A non-nil error return means an
// invariant no longer holds — unreachable in principle, and a fatal
// engine bug when it happens; callers should panic
// rather than try to keep playing.
func (a *Applier) Apply(w *world.World, effects []effect.Effect) error {
	for _, e := range effects {
		a.applyOne(w, e)
	}
	return world.CheckInvariants(w)
}

func (a *Applier) applyOne(w *world.World, e effect.Effect) {
	switch e.Kind {
	case effect.KindHPChanged:
		applyHPChanged(w, e)
	case effect.KindConditionApplied:
		applyConditionApplied(w, e)
	case effect.KindConditionRemoved:
		applyConditionRemoved(w, e)
	case effect.KindTurnAdvanced:
		mechanics.AdvanceTurn(w)
	case effect.KindCombatStarted:
		w.StartCombat()
	case effect.KindCombatEnded:
		w.EndCombat()
	case effect.KindCombatantAdded:
		applyCombatantAdded(w, e)
	case effect.KindLevelUp:
		mechanics.LevelUp(w.Character, e.HitDieGain)
	case effect.KindXPGained:
		w.Character.Experience += e.Amount
	case effect.KindRestTaken:
		applyRestTaken(w, e)
	case effect.KindTimeAdvanced:
		w.GameTime.AdvanceMinutes(e.Minutes)
	case effect.KindItemAdded:
		applyItemAdded(w, e)
	case effect.KindItemRemoved:
		applyItemRemoved(w, e)
	case effect.KindItemEquipped:
		a.applyItemEquipped(w, e)
	case effect.KindItemUnequipped:
		applyItemUnequipped(w, e)
	case effect.KindItemUsed:
		applyItemUsed(w, e)
	case effect.KindGoldChanged:
		w.Character.Inventory.Gold += e.GoldDelta
	case effect.KindSilverChanged:
		w.Character.Inventory.Silver += e.SilverDelta
	case effect.KindDeathSaveRecorded:
		applyDeathSaveRecorded(w, e)
	case effect.KindCharacterDied:
		w.Character.Dead = true
	case effect.KindSpellSlotUsed:
		applySpellSlotUsed(w, e)
	case effect.KindSpellSlotRestored:
		applySpellSlotRestored(w, e)
	case effect.KindFeatureUsed:
		applyFeatureUsed(w, e)
	case effect.KindClassResourceChanged:
		applyClassResourceChanged(w, e)
	case effect.KindConcentrationBroken:
		if w.Character.Spellcasting != nil {
			w.Character.Spellcasting.Concentrating = ""
		}
	case effect.KindQuestCreated:
		a.applyQuestCreated(w, e)
	case effect.KindQuestCompleted:
		applyQuestStatus(w, e.QuestName, world.QuestCompleted)
	case effect.KindQuestFailed:
		applyQuestStatus(w, e.QuestName, world.QuestFailed)
	case effect.KindQuestAbandoned:
		applyQuestStatus(w, e.QuestName, world.QuestAbandoned)
	case effect.KindQuestObjectiveAdded:
		applyQuestObjectiveAdded(w, e)
	case effect.KindQuestObjectiveCompleted:
		applyQuestObjectiveCompleted(w, e)
	case effect.KindQuestUpdated:
		applyQuestUpdated(w, e)
	case effect.KindNpcCreated:
		a.applyNpcCreated(w, e)
	case effect.KindNpcUpdated:
		applyNpcUpdated(w, e)
	case effect.KindNpcMoved:
		applyNpcMoved(w, e)
	case effect.KindNpcRemoved:
		applyNpcRemoved(w, e)
	case effect.KindLocationCreated:
		a.applyLocationCreated(w, e)
	case effect.KindLocationUpdated:
		applyLocationUpdated(w, e)
	case effect.KindAbilityScoreModified:
		applyAbilityScoreModified(w, e)
	case effect.KindStateAsserted:
		applyStateAsserted(w, e)
	// KindKnowledgeShared, KindEventScheduled, KindEventCancelled,
	// KindFactRemembered, KindConsequenceRegistered are persisted into
	// Story Memory by the orchestrator, not mirrored into World: a no-op
	// here.
	case effect.KindKnowledgeShared, effect.KindEventScheduled, effect.KindEventCancelled,
		effect.KindFactRemembered, effect.KindConsequenceRegistered:
	}
}
