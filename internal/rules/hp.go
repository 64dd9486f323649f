package rules

import (
	"fmt"

	"github.com/dungeonkeeper/dm-engine/internal/effect"
	"github.com/dungeonkeeper/dm-engine/internal/intent"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

// resolveDamage emits an HpChanged effect with a negative amount. Zero or
// negative damage amounts are already rejected at the tool parser
// — Resolve trusts its caller's Intent is well-formed.
func (e *Engine) resolveDamage(w *world.World, in intent.Intent) Resolution {
	target := in.TargetName
	name := w.Character.Name
	if target != "" {
		name = target
	}
	narrative := fmt.Sprintf("%s takes %d %s damage from %s.", name, in.Amount, in.DamageType, in.Source)
	return Resolution{
		Narrative: narrative,
		Effects: []effect.Effect{{
			Kind:     effect.KindHPChanged,
			Target:   target,
			Amount:   -in.Amount,
			Reason:   in.Source,
			Critical: in.Critical,
		}},
	}
}

// resolveHeal emits an HpChanged effect with a positive amount.
func (e *Engine) resolveHeal(w *world.World, in intent.Intent) Resolution {
	target := in.TargetName
	name := w.Character.Name
	if target != "" {
		name = target
	}
	narrative := fmt.Sprintf("%s regains %d hit points.", name, in.Amount)
	return Resolution{
		Narrative: narrative,
		Effects: []effect.Effect{{
			Kind:   effect.KindHPChanged,
			Target: target,
			Amount: in.Amount,
			Reason: in.Source,
		}},
	}
}
