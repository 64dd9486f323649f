package orchestrator

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dungeonkeeper/dm-engine/internal/memory"
	"github.com/dungeonkeeper/dm-engine/internal/store"
)

// Snapshot renders the session's full persistent state as a SaveFile:
// World, Story Memory, narrative history, and the turn counter. Safe to
// call from another goroutine (the autosave timer); it takes the same
// lock PlayerAction holds for the duration of a turn.
func (s *Session) Snapshot() *store.SaveFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() *store.SaveFile {
	history := make([]string, len(s.history))
	copy(history, s.history)
	return &store.SaveFile{
		Version: store.CurrentVersion,
		World:   s.World,
		Memory:  s.Memory.Snapshot(),
		History: history,
		Turn:    s.turn,
		SavedAt: time.Now().UTC(),
	}
}

// Restore replaces the session's World, Story Memory, history, and turn
// counter with the contents of save. The wired collaborators (model
// client, registry, engine, applier) are kept.
func (s *Session) Restore(save *store.SaveFile) error {
	if save == nil || save.World == nil {
		return fmt.Errorf("orchestrator: save has no world")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.World = save.World
	s.Memory = memory.Restore(s.gen, save.Memory)
	s.history = append([]string(nil), save.History...)
	s.turn = save.Turn
	return nil
}

// Save writes the session to path as indented JSON, creating or
// truncating the file.
func (s *Session) Save(path string) error {
	data, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("orchestrator: marshal save: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("orchestrator: write save: %w", err)
	}
	return nil
}

// Load reads a SaveFile previously written by Save from path and restores
// the session from it.
func (s *Session) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("orchestrator: read save: %w", err)
	}
	var save store.SaveFile
	if err := json.Unmarshal(data, &save); err != nil {
		return fmt.Errorf("orchestrator: unmarshal save: %w", err)
	}
	return s.Restore(&save)
}
