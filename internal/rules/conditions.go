package rules

import (
	"fmt"

	"github.com/dungeonkeeper/dm-engine/internal/effect"
	"github.com/dungeonkeeper/dm-engine/internal/intent"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

func (e *Engine) resolveApplyCondition(w *world.World, in intent.Intent) Resolution {
	narrative := fmt.Sprintf("%s is now %s.", targetLabel(w, in.TargetName), in.ConditionKind)
	return Resolution{
		Narrative: narrative,
		Effects: []effect.Effect{{
			Kind:            effect.KindConditionApplied,
			Target:          in.TargetName,
			ConditionKind:   in.ConditionKind,
			ConditionSource: in.ConditionSource,
			DurationRounds:  in.DurationRounds,
			ExhaustionLevel: in.ExhaustionLevel,
		}},
	}
}

func resolveRemoveCondition(w *world.World, in intent.Intent) Resolution {
	narrative := fmt.Sprintf("%s is no longer %s.", targetLabel(w, in.TargetName), in.ConditionKind)
	return Resolution{
		Narrative: narrative,
		Effects: []effect.Effect{{
			Kind:          effect.KindConditionRemoved,
			Target:        in.TargetName,
			ConditionKind: in.ConditionKind,
		}},
	}
}

func targetLabel(w *world.World, target string) string {
	if target == "" {
		return w.Character.Name
	}
	return target
}
