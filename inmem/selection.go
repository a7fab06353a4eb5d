// Package inmem provides in-process implementations of chintai services.
package inmem

import (
	"context"
	"sync"

	"github.com/onobori/chintai"
)

var _ chintai.SelectionStore = (*SelectionStore)(nil)

// SelectionStore keeps selections in a map. Safe for concurrent use.
// Stored values are copied so callers never share state with the store.
type SelectionStore struct {
	mu         sync.RWMutex
	selections map[string]chintai.Selection
}

// NewSelectionStore creates an empty SelectionStore.
func NewSelectionStore() *SelectionStore {
	return &SelectionStore{selections: make(map[string]chintai.Selection)}
}

// FindSelection returns a copy of the session's selection.
func (s *SelectionStore) FindSelection(_ context.Context, sessionID string) (*chintai.Selection, error) {
	s.mu.RLock()
	sel, ok := s.selections[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, chintai.Errorf(chintai.ENOTFOUND, "selection not found")
	}
	return clone(sel), nil
}

// SaveSelection stores a copy of sel for the session.
func (s *SelectionStore) SaveSelection(_ context.Context, sessionID string, sel *chintai.Selection) error {
	if sessionID == "" {
		return chintai.Errorf(chintai.EINVALID, "session ID required")
	}
	if sel == nil {
		return chintai.Errorf(chintai.EINVALID, "selection required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selections[sessionID] = *clone(*sel)
	return nil
}

func clone(sel chintai.Selection) *chintai.Selection {
	out := sel
	out.Selected = append([]string{}, sel.Selected...)
	if sel.Suggestion != nil {
		sug := *sel.Suggestion
		sug.Stations = append([]string{}, sel.Suggestion.Stations...)
		sug.Reasons = append([]string{}, sel.Suggestion.Reasons...)
		out.Suggestion = &sug
	}
	return &out
}
