// Package rules implements the Rules Engine: a pure function
// (World, Intent) -> Resolution. It performs no I/O and
// never mutates World; effects are purely descriptive, applied later by
// internal/apply.
//
// One unexported resolve function per Intent kind, dispatched from a
// single exhaustive switch in Resolve.
package rules

import (
	"fmt"

	"github.com/dungeonkeeper/dm-engine/internal/content"
	"github.com/dungeonkeeper/dm-engine/internal/dice"
	"github.com/dungeonkeeper/dm-engine/internal/effect"
	"github.com/dungeonkeeper/dm-engine/internal/intent"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

// Resolution is the result of resolving one Intent: a narrative string and
// an ordered list of Effects.
type Resolution struct {
	Narrative string
	Effects   []effect.Effect
}

// noEffect returns a Resolution carrying only narrative and no Effects —
// used for RuleViolation outcomes: the Intent was resolvable
// but its precondition failed, so no state changes, but the player still
// gets a helpful in-fiction reason why.
func noEffect(narrative string) Resolution {
	return Resolution{Narrative: narrative}
}

// Engine bundles the collaborators Resolve needs beyond World: a Roller
// for dice (so tests can inject a deterministic/manual sequence) and a
// ContentProvider for equip/attack stat lookups. Both are process-wide,
// read-mostly capabilities.
type Engine struct {
	Roller  dice.Roller
	Content content.Provider
}

// NewEngine builds an Engine with the real PRNG-backed Roller and the
// static TableProvider — the defaults any caller gets unless it wires a
// DND5EAPIProvider or a test ManualMockRoller explicitly.
func NewEngine() *Engine {
	return &Engine{Roller: dice.NewRealRoller(), Content: content.NewTableProvider()}
}

// Resolve interprets in against w and returns the Resolution. w is read
// only: no field of w is ever assigned by this function or anything it
// calls.
func (e *Engine) Resolve(w *world.World, in intent.Intent) Resolution {
	switch in.Kind {
	case intent.KindAbilityCheck, intent.KindSkillCheck:
		return e.resolveCheck(w, in)
	case intent.KindSavingThrow:
		return e.resolveSave(w, in)
	case intent.KindDamage:
		return e.resolveDamage(w, in)
	case intent.KindHeal:
		return e.resolveHeal(w, in)
	case intent.KindApplyCondition:
		return e.resolveApplyCondition(w, in)
	case intent.KindRemoveCondition:
		return resolveRemoveCondition(w, in)
	case intent.KindStartCombat:
		return resolveStartCombat(w, in)
	case intent.KindEndCombat:
		return resolveEndCombat(w, in)
	case intent.KindAddCombatant:
		return resolveAddCombatant(w, in)
	case intent.KindNextTurn:
		return resolveNextTurn(w, in)
	case intent.KindTimeAdvance:
		return resolveTimeAdvance(w, in)
	case intent.KindRest:
		return resolveRest(w, in)
	case intent.KindGainXP:
		return resolveGainXP(w, in)
	case intent.KindLevelUp:
		return e.resolveLevelUp(w, in)
	case intent.KindUseFeature:
		return resolveUseFeature(w, in)
	case intent.KindUseSpellSlot:
		return resolveUseSpellSlot(w, in)
	case intent.KindRestoreSpellSlot:
		return resolveRestoreSpellSlot(w, in)
	case intent.KindItemAdd:
		return resolveItemAdd(w, in)
	case intent.KindItemRemove:
		return resolveItemRemove(w, in)
	case intent.KindItemEquip:
		return e.resolveItemEquip(w, in)
	case intent.KindItemUnequip:
		return resolveItemUnequip(w, in)
	case intent.KindItemUse:
		return resolveItemUse(w, in)
	case intent.KindGoldDelta:
		return resolveGoldDelta(w, in)
	case intent.KindSilverDelta:
		return resolveSilverDelta(w, in)
	case intent.KindDeathSave:
		return e.resolveDeathSave(w, in)
	case intent.KindConcentration:
		return e.resolveConcentration(w, in)
	case intent.KindAttack:
		return e.resolveAttack(w, in)
	case intent.KindRage:
		return resolveRage(w, in)
	case intent.KindKi:
		return resolveKi(w, in)
	case intent.KindLayOnHands:
		return resolveLayOnHands(w, in)
	case intent.KindDivineSmite:
		return e.resolveDivineSmite(w, in)
	case intent.KindWildShape:
		return resolveWildShape(w, in)
	case intent.KindEndWildShape:
		return resolveEndWildShape(w, in)
	case intent.KindChannelDivinity:
		return resolveChannelDivinity(w, in)
	case intent.KindBardicInspiration:
		return e.resolveBardicInspiration(w, in)
	case intent.KindActionSurge:
		return resolveActionSurge(w, in)
	case intent.KindSecondWind:
		return e.resolveSecondWind(w, in)
	case intent.KindSorceryPoints:
		return resolveSorceryPoints(w, in)
	case intent.KindSneakAttack:
		return e.resolveSneakAttack(w, in)
	case intent.KindQuestCreate:
		return resolveQuestCreate(w, in)
	case intent.KindQuestComplete:
		return resolveQuestComplete(w, in)
	case intent.KindQuestFail:
		return resolveQuestFail(w, in)
	case intent.KindQuestAbandon:
		return resolveQuestAbandon(w, in)
	case intent.KindQuestObjectiveAdd:
		return resolveQuestObjectiveAdd(w, in)
	case intent.KindQuestObjectiveComplete:
		return resolveQuestObjectiveComplete(w, in)
	case intent.KindQuestUpdate:
		return resolveQuestUpdate(w, in)
	case intent.KindNpcCreate:
		return resolveNpcCreate(w, in)
	case intent.KindNpcUpdate:
		return resolveNpcUpdate(w, in)
	case intent.KindNpcMove:
		return resolveNpcMove(w, in)
	case intent.KindNpcRemove:
		return resolveNpcRemove(w, in)
	case intent.KindLocationCreate:
		return resolveLocationCreate(w, in)
	case intent.KindLocationUpdate:
		return resolveLocationUpdate(w, in)
	case intent.KindAbilityScoreModify:
		return resolveAbilityScoreModify(w, in)
	case intent.KindStateAssert:
		return resolveStateAssert(w, in)
	case intent.KindKnowledgeShare:
		return resolveKnowledgeShare(w, in)
	case intent.KindScheduleEvent:
		return resolveScheduleEvent(w, in)
	case intent.KindCancelEvent:
		return resolveCancelEvent(w, in)
	case intent.KindRememberFact:
		return resolveRememberFact(w, in)
	case intent.KindRegisterConsequence:
		return resolveRegisterConsequence(w, in)
	default:
		return noEffect(fmt.Sprintf("(the DM's request %q was not understood)", in.Kind))
	}
}
