package apply

import (
	"fmt"
	"strings"

	"github.com/dungeonkeeper/dm-engine/internal/effect"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

// applyStateAsserted records a StateAssert intent's already-resolved
// effect against the named NPC. An NPC the player
// hasn't met yet (EntityName doesn't resolve) is a meaningful no-op, not
// an error — the model sometimes asserts state about an NPC before it has
// been formally introduced via NpcCreate.
//
// "disposition" parses into NPC.Disposition directly. "location"/"status"
// are stored as a tagged line in KnownInformation, replacing any prior
// line with the same tag so the list doesn't accumulate stale values.
// "knowledge" appends a plain (untagged) line if an identical one isn't
// already present, rather than replacing.
// "relationship" is persisted into Story Memory by the orchestrator, not
// mirrored onto the NPC struct — a no-op here.
func applyStateAsserted(w *world.World, e effect.Effect) {
	npc := w.FindNPCByName(e.EntityName)
	if npc == nil {
		return
	}

	switch strings.ToLower(e.StateType) {
	case "disposition":
		if d, ok := world.ParseDisposition(e.NewValue); ok {
			npc.Disposition = d
		}
	case "location", "status":
		tag := capitalize(e.StateType)
		npc.KnownInformation = replaceTaggedLine(npc.KnownInformation, tag, fmt.Sprintf("%s: %s", tag, e.NewValue))
	case "knowledge":
		npc.KnownInformation = appendIfAbsent(npc.KnownInformation, e.NewValue)
	case "relationship":
		// Handled by Story Memory (internal/memory), not the World model.
	}
}

func capitalize(s string) string {
	s = strings.ToLower(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// replaceTaggedLine drops any existing "Tag: ..." entry and appends the
// new one, keeping KnownInformation from accumulating superseded facts.
func replaceTaggedLine(lines []string, tag, newLine string) []string {
	prefix := tag + ":"
	out := lines[:0]
	for _, l := range lines {
		if !strings.HasPrefix(l, prefix) {
			out = append(out, l)
		}
	}
	return append(out, newLine)
}

// appendIfAbsent appends line only if it isn't already present verbatim.
func appendIfAbsent(lines []string, line string) []string {
	for _, l := range lines {
		if l == line {
			return lines
		}
	}
	return append(lines, line)
}
