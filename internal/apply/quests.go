package apply

import (
	"github.com/dungeonkeeper/dm-engine/internal/effect"
	"github.com/dungeonkeeper/dm-engine/internal/id"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

func (a *Applier) applyQuestCreated(w *world.World, e effect.Effect) {
	q := &world.Quest{
		ID:          id.NewQuestID(a.Gen),
		Name:        e.QuestName,
		Description: e.QuestDescription,
		Status:      world.QuestActive,
		Giver:       e.Giver,
	}
	w.Quests[q.ID] = q
}

func applyQuestStatus(w *world.World, name string, status world.QuestStatus) {
	if q := w.FindQuestByName(name); q != nil {
		q.Status = status
	}
}

func applyQuestObjectiveAdded(w *world.World, e effect.Effect) {
	q := w.FindQuestByName(e.QuestName)
	if q == nil {
		return
	}
	q.Objectives = append(q.Objectives, &world.Objective{Text: e.ObjectiveText, Optional: e.Optional})
}

// applyQuestObjectiveCompleted matches by case-insensitive substring: the
// model rarely echoes an
// objective's text verbatim.
func applyQuestObjectiveCompleted(w *world.World, e effect.Effect) {
	q := w.FindQuestByName(e.QuestName)
	if q == nil {
		return
	}
	for _, obj := range q.Objectives {
		if !obj.Completed && world.ContainsFold(obj.Text, e.ObjectiveText) {
			obj.Completed = true
			return
		}
	}
}

func applyQuestUpdated(w *world.World, e effect.Effect) {
	q := w.FindQuestByName(e.QuestName)
	if q == nil {
		return
	}
	if e.QuestDescription != "" {
		q.Description = e.QuestDescription
	}
	if e.Rewards != "" {
		q.Rewards = e.Rewards
	}
}
