package rules

import (
	"fmt"

	"github.com/dungeonkeeper/dm-engine/internal/effect"
	"github.com/dungeonkeeper/dm-engine/internal/intent"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

func resolveNpcCreate(w *world.World, in intent.Intent) Resolution {
	if w.FindNPCByName(in.NPCName) != nil {
		return noEffect(fmt.Sprintf("%s already exists.", in.NPCName))
	}
	return Resolution{
		Narrative: fmt.Sprintf("%s appears: %s", in.NPCName, in.Description),
		Effects: []effect.Effect{{
			Kind: effect.KindNpcCreated, NPCName: in.NPCName, Description: in.Description,
			Personality: in.Personality, Occupation: in.Occupation, LocationName: in.LocationName,
		}},
	}
}

func resolveNpcUpdate(w *world.World, in intent.Intent) Resolution {
	if w.FindNPCByName(in.NPCName) == nil {
		return noEffect(fmt.Sprintf("There is no NPC named %s.", in.NPCName))
	}
	return Resolution{
		Narrative: fmt.Sprintf("%s has changed.", in.NPCName),
		Effects:   []effect.Effect{{Kind: effect.KindNpcUpdated, NPCName: in.NPCName, Description: in.Description, Personality: in.Personality}},
	}
}

func resolveNpcMove(w *world.World, in intent.Intent) Resolution {
	npc := w.FindNPCByName(in.NPCName)
	if npc == nil {
		return noEffect(fmt.Sprintf("There is no NPC named %s.", in.NPCName))
	}
	narrative := fmt.Sprintf("%s moves to %s.", npc.Name, in.LocationName)
	if w.FindLocationByName(in.LocationName) == nil {
		narrative = fmt.Sprintf("%s moves on, to parts unknown.", npc.Name)
	}
	return Resolution{
		Narrative: narrative,
		Effects:   []effect.Effect{{Kind: effect.KindNpcMoved, NPCName: in.NPCName, LocationName: in.LocationName}},
	}
}

func resolveNpcRemove(w *world.World, in intent.Intent) Resolution {
	if w.FindNPCByName(in.NPCName) == nil {
		return noEffect(fmt.Sprintf("There is no NPC named %s.", in.NPCName))
	}
	return Resolution{
		Narrative: fmt.Sprintf("%s is gone.", in.NPCName),
		Effects:   []effect.Effect{{Kind: effect.KindNpcRemoved, NPCName: in.NPCName}},
	}
}

func resolveLocationCreate(w *world.World, in intent.Intent) Resolution {
	if w.FindLocationByName(in.LocationName) != nil {
		return noEffect(fmt.Sprintf("%s is already known.", in.LocationName))
	}
	return Resolution{
		Narrative: fmt.Sprintf("A new location is revealed: %s.", in.LocationName),
		Effects:   []effect.Effect{{Kind: effect.KindLocationCreated, LocationName: in.LocationName, Description: in.Description}},
	}
}

func resolveLocationUpdate(w *world.World, in intent.Intent) Resolution {
	if w.FindLocationByName(in.LocationName) == nil {
		return noEffect(fmt.Sprintf("There is no location called %s.", in.LocationName))
	}
	return Resolution{
		Narrative: fmt.Sprintf("%s has changed.", in.LocationName),
		Effects:   []effect.Effect{{Kind: effect.KindLocationUpdated, LocationName: in.LocationName, Description: in.Description}},
	}
}

func resolveAbilityScoreModify(w *world.World, in intent.Intent) Resolution {
	narrative := fmt.Sprintf("%s's %s changes by %+d.", w.Character.Name, in.Ability, in.AbilityDelta)
	return Resolution{
		Narrative: narrative,
		Effects:   []effect.Effect{{Kind: effect.KindAbilityScoreModified, Ability: in.Ability, AbilityDelta: in.AbilityDelta}},
	}
}
