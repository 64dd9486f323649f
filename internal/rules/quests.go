package rules

import (
	"fmt"

	"github.com/dungeonkeeper/dm-engine/internal/effect"
	"github.com/dungeonkeeper/dm-engine/internal/intent"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

func resolveQuestCreate(w *world.World, in intent.Intent) Resolution {
	return Resolution{
		Narrative: fmt.Sprintf("A new quest begins: %s.", in.QuestName),
		Effects: []effect.Effect{{
			Kind: effect.KindQuestCreated, QuestName: in.QuestName, QuestDescription: in.QuestDescription, Giver: in.Giver,
		}},
	}
}

func resolveQuestComplete(w *world.World, in intent.Intent) Resolution {
	q := w.FindQuestByName(in.QuestName)
	if q == nil {
		return noEffect(fmt.Sprintf("There is no quest called %q.", in.QuestName))
	}
	if q.IsTerminal() {
		return noEffect(fmt.Sprintf("%q has already concluded.", q.Name))
	}
	return Resolution{
		Narrative: fmt.Sprintf("Quest complete: %s!", q.Name),
		Effects:   []effect.Effect{{Kind: effect.KindQuestCompleted, QuestName: in.QuestName}},
	}
}

func resolveQuestFail(w *world.World, in intent.Intent) Resolution {
	q := w.FindQuestByName(in.QuestName)
	if q == nil {
		return noEffect(fmt.Sprintf("There is no quest called %q.", in.QuestName))
	}
	if q.IsTerminal() {
		return noEffect(fmt.Sprintf("%q has already concluded.", q.Name))
	}
	return Resolution{
		Narrative: fmt.Sprintf("Quest failed: %s.", q.Name),
		Effects:   []effect.Effect{{Kind: effect.KindQuestFailed, QuestName: in.QuestName}},
	}
}

func resolveQuestAbandon(w *world.World, in intent.Intent) Resolution {
	q := w.FindQuestByName(in.QuestName)
	if q == nil {
		return noEffect(fmt.Sprintf("There is no quest called %q.", in.QuestName))
	}
	if q.IsTerminal() {
		return noEffect(fmt.Sprintf("%q has already concluded.", q.Name))
	}
	return Resolution{
		Narrative: fmt.Sprintf("Quest abandoned: %s.", q.Name),
		Effects:   []effect.Effect{{Kind: effect.KindQuestAbandoned, QuestName: in.QuestName}},
	}
}

func resolveQuestObjectiveAdd(w *world.World, in intent.Intent) Resolution {
	q := w.FindQuestByName(in.QuestName)
	if q == nil {
		return noEffect(fmt.Sprintf("There is no quest called %q.", in.QuestName))
	}
	return Resolution{
		Narrative: fmt.Sprintf("New objective for %s: %s.", q.Name, in.ObjectiveText),
		Effects:   []effect.Effect{{Kind: effect.KindQuestObjectiveAdded, QuestName: in.QuestName, ObjectiveText: in.ObjectiveText, Optional: in.Optional}},
	}
}

// resolveQuestObjectiveComplete uses case-insensitive substring match on
// objective text — matching happens in the Applier, not
// here; Resolve only checks the quest exists and is still active.
func resolveQuestObjectiveComplete(w *world.World, in intent.Intent) Resolution {
	q := w.FindQuestByName(in.QuestName)
	if q == nil {
		return noEffect(fmt.Sprintf("There is no quest called %q.", in.QuestName))
	}
	if q.IsTerminal() {
		return noEffect(fmt.Sprintf("%q has already concluded.", q.Name))
	}
	return Resolution{
		Narrative: fmt.Sprintf("Objective complete: %s.", in.ObjectiveText),
		Effects:   []effect.Effect{{Kind: effect.KindQuestObjectiveCompleted, QuestName: in.QuestName, ObjectiveText: in.ObjectiveText}},
	}
}

func resolveQuestUpdate(w *world.World, in intent.Intent) Resolution {
	q := w.FindQuestByName(in.QuestName)
	if q == nil {
		return noEffect(fmt.Sprintf("There is no quest called %q.", in.QuestName))
	}
	return Resolution{
		Narrative: fmt.Sprintf("The quest %q is updated.", q.Name),
		Effects:   []effect.Effect{{Kind: effect.KindQuestUpdated, QuestName: in.QuestName, QuestDescription: in.QuestDescription, Rewards: in.Rewards}},
	}
}
