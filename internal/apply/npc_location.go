package apply

import (
	"github.com/dungeonkeeper/dm-engine/internal/effect"
	"github.com/dungeonkeeper/dm-engine/internal/id"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

func (a *Applier) applyNpcCreated(w *world.World, e effect.Effect) {
	npc := &world.NPC{
		ID:          id.NewNPCID(a.Gen),
		Name:        e.NPCName,
		Description: e.Description,
		Personality: e.Personality,
		Occupation:  e.Occupation,
		Disposition: world.DispositionNeutral,
	}
	if loc := w.FindLocationByName(e.LocationName); loc != nil {
		npc.LocationID = loc.ID
		npc.HasLocation = true
	}
	w.NPCs[npc.ID] = npc
}

func applyNpcUpdated(w *world.World, e effect.Effect) {
	npc := w.FindNPCByName(e.NPCName)
	if npc == nil {
		return
	}
	if e.Description != "" {
		npc.Description = e.Description
	}
	if e.Personality != "" {
		npc.Personality = e.Personality
	}
}

// applyNpcMoved clears the NPC's location when the destination isn't a
// known Location — "moves on, to parts unknown" is a
// valid narrative outcome, not an error.
func applyNpcMoved(w *world.World, e effect.Effect) {
	npc := w.FindNPCByName(e.NPCName)
	if npc == nil {
		return
	}
	if loc := w.FindLocationByName(e.LocationName); loc != nil {
		npc.LocationID = loc.ID
		npc.HasLocation = true
	} else {
		npc.HasLocation = false
	}
}

func applyNpcRemoved(w *world.World, e effect.Effect) {
	npc := w.FindNPCByName(e.NPCName)
	if npc == nil {
		return
	}
	delete(w.NPCs, npc.ID)
}

func (a *Applier) applyLocationCreated(w *world.World, e effect.Effect) {
	loc := &world.Location{ID: id.NewLocationID(a.Gen), Name: e.LocationName, Description: e.Description}
	w.Locations[loc.ID] = loc
}

func applyLocationUpdated(w *world.World, e effect.Effect) {
	loc := w.FindLocationByName(e.LocationName)
	if loc == nil {
		return
	}
	if e.Description != "" {
		loc.Description = e.Description
	}
}

func applyAbilityScoreModified(w *world.World, e effect.Effect) {
	c := w.Character
	ability := world.Ability(e.Ability)
	score := int(c.Abilities[ability]) + e.AbilityDelta
	if score < 1 {
		score = 1
	}
	if score > 30 {
		score = 30
	}
	c.Abilities[ability] = uint8(score)
}
