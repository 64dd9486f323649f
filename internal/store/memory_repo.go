package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// memoryRepo is the default Repository: a single local session needs no
// network dependency to run at all. A mutex-guarded map with
// deep-copy-on-write/read; the copy goes through json marshal/unmarshal
// rather than a shallow struct copy, since SaveFile holds pointer-graph
// fields (*world.World) a shallow `*sess` copy would still alias.
type memoryRepo struct {
	mu    sync.RWMutex
	saves map[string][]byte
}

// NewMemory builds an in-process Repository backed by a map.
func NewMemory() Repository {
	return &memoryRepo{saves: make(map[string][]byte)}
}

func (r *memoryRepo) Save(sessionID string, save *SaveFile) error {
	if sessionID == "" {
		return fmt.Errorf("store: session id is required")
	}
	if save == nil {
		return fmt.Errorf("store: save cannot be nil")
	}

	data, err := json.Marshal(save)
	if err != nil {
		return fmt.Errorf("store: marshal save: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves[sessionID] = data
	return nil
}

func (r *memoryRepo) Load(sessionID string) (*SaveFile, error) {
	r.mu.RLock()
	data, ok := r.saves[sessionID]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	var save SaveFile
	if err := json.Unmarshal(data, &save); err != nil {
		return nil, fmt.Errorf("store: unmarshal save: %w", err)
	}
	return &save, nil
}

func (r *memoryRepo) Delete(sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.saves[sessionID]; !ok {
		return ErrNotFound
	}
	delete(r.saves, sessionID)
	return nil
}

func (r *memoryRepo) List() ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.saves))
	for id := range r.saves {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
