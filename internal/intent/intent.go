// Package intent defines the Intent tagged union: every mechanical request
// the DM model or the orchestrator can make of the Rules Engine. An Intent is pure data — constructing one has no side effects; only
// rules.Resolve interprets it against a *world.World.
//
// One flat struct with a Kind discriminant, not an interface per intent:
// a switch on Kind keeps tools.Parser and rules.Resolve in lock-step.
package intent

import "github.com/dungeonkeeper/dm-engine/internal/dice"

// Kind discriminates the Intent union.
type Kind string

const (
	KindAbilityCheck     Kind = "ability_check"
	KindSkillCheck       Kind = "skill_check"
	KindSavingThrow      Kind = "saving_throw"
	KindDamage           Kind = "damage"
	KindHeal             Kind = "heal"
	KindApplyCondition   Kind = "apply_condition"
	KindRemoveCondition  Kind = "remove_condition"
	KindStartCombat      Kind = "start_combat"
	KindEndCombat        Kind = "end_combat"
	KindAddCombatant     Kind = "add_combatant"
	KindNextTurn         Kind = "next_turn"
	KindTimeAdvance      Kind = "time_advance"
	KindRest             Kind = "rest"
	KindGainXP           Kind = "gain_xp"
	KindLevelUp          Kind = "level_up"
	KindUseFeature       Kind = "use_feature"
	KindUseSpellSlot     Kind = "use_spell_slot"
	KindRestoreSpellSlot Kind = "restore_spell_slot"
	KindItemAdd          Kind = "item_add"
	KindItemRemove       Kind = "item_remove"
	KindItemEquip        Kind = "item_equip"
	KindItemUnequip      Kind = "item_unequip"
	KindItemUse          Kind = "item_use"
	KindGoldDelta        Kind = "gold_delta"
	KindSilverDelta      Kind = "silver_delta"
	KindDeathSave        Kind = "death_save"
	KindConcentration    Kind = "concentration_check"
	KindAttack           Kind = "attack"

	KindRage              Kind = "rage"
	KindKi                Kind = "ki"
	KindLayOnHands        Kind = "lay_on_hands"
	KindDivineSmite       Kind = "divine_smite"
	KindWildShape         Kind = "wild_shape"
	KindEndWildShape      Kind = "end_wild_shape"
	KindChannelDivinity   Kind = "channel_divinity"
	KindBardicInspiration Kind = "bardic_inspiration"
	KindActionSurge       Kind = "action_surge"
	KindSecondWind        Kind = "second_wind"
	KindSorceryPoints     Kind = "sorcery_points"
	KindSneakAttack       Kind = "sneak_attack"

	KindQuestCreate             Kind = "quest_create"
	KindQuestComplete           Kind = "quest_complete"
	KindQuestFail               Kind = "quest_fail"
	KindQuestAbandon            Kind = "quest_abandon"
	KindQuestObjectiveAdd       Kind = "quest_objective_add"
	KindQuestObjectiveComplete  Kind = "quest_objective_complete"
	KindQuestUpdate             Kind = "quest_update"

	KindNpcCreate   Kind = "npc_create"
	KindNpcUpdate   Kind = "npc_update"
	KindNpcMove     Kind = "npc_move"
	KindNpcRemove   Kind = "npc_remove"

	KindLocationCreate Kind = "location_create"
	KindLocationUpdate Kind = "location_update"

	KindAbilityScoreModify Kind = "ability_score_modify"

	KindStateAssert   Kind = "state_assert"
	KindKnowledgeShare Kind = "knowledge_share"

	KindScheduleEvent Kind = "schedule_event"
	KindCancelEvent   Kind = "cancel_event"

	KindRememberFact        Kind = "remember_fact"
	KindRegisterConsequence Kind = "register_consequence"
)

// StateType enumerates the StateAsserted variants.
type StateType string

const (
	StateDisposition StateType = "disposition"
	StateLocation    StateType = "location"
	StateStatus      StateType = "status"
	StateKnowledge   StateType = "knowledge"
	StateRelationship StateType = "relationship"
)

// Intent is a flat, tagged request. Only the fields relevant to Kind are
// populated; everything else is left zero. This mirrors effect.Effect's
// tagged-variant shape on the input side of the Rules Engine.
type Intent struct {
	Kind Kind

	// Checks / saves / attacks
	Ability       string // "STR".."CHA"
	Skill         string
	DC            int
	Modifier      int
	Advantage     dice.AdvantageMode
	IsStealth     bool
	AttackerName  string // "" = player character
	TargetName    string

	// Damage / heal
	Amount     int
	DamageType string
	Source     string
	Critical   bool

	// Conditions
	ConditionKind   string
	ConditionSource string
	DurationRounds  *int
	ExhaustionLevel int

	// Combat
	CombatantID         string
	CombatantName       string
	CombatantInitiative int
	CombatantMaxHP      int
	CombatantAC         int
	IsPlayerCombatant   bool

	// Time / rest
	Minutes  int64
	RestKind string // "short" | "long"

	// Progression
	NewLevel   int
	HitDieGain int

	// Spell slots / features
	SlotLevel    int
	SlotCount    int
	FeatureName  string

	// Items
	ItemName string
	ItemType string
	Quantity int
	Slot     string
	TwoHanded bool

	// Currency
	GoldDelta   int
	SilverDelta int

	// Death save
	RollTotal  int
	Natural20  bool
	Natural1   bool
	Success    bool

	// Class features
	UndeadOrFiendTarget bool

	// Quests
	QuestName        string
	QuestDescription string
	ObjectiveText    string
	Giver            string
	Rewards          string
	Optional         bool

	// NPCs / locations
	NPCName        string
	Description    string
	Personality    string
	Occupation     string
	LocationName   string

	// Ability score modify
	AbilityDelta int

	// State assertions
	EntityName   string
	StateType    StateType
	NewValue     string
	TargetEntity string

	// Knowledge / schedule / memory
	Statement   string
	EventWhen   string
	EventName   string

	FactText       string
	FactCategory   string
	Importance     float32
	RelatedEntities []string

	ConsequenceTrigger string
	ConsequenceEffect  string
	Severity           string
	ExpiresInTurns     *int
}
