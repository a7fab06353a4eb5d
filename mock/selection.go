package mock

import (
	"context"

	"github.com/onobori/chintai"
)

var _ chintai.SelectionStore = (*SelectionStore)(nil)

// SelectionStore is a mock implementation of chintai.SelectionStore.
type SelectionStore struct {
	FindSelectionFn func(ctx context.Context, sessionID string) (*chintai.Selection, error)
	SaveSelectionFn func(ctx context.Context, sessionID string, sel *chintai.Selection) error
}

func (s *SelectionStore) FindSelection(ctx context.Context, sessionID string) (*chintai.Selection, error) {
	return s.FindSelectionFn(ctx, sessionID)
}

func (s *SelectionStore) SaveSelection(ctx context.Context, sessionID string, sel *chintai.Selection) error {
	return s.SaveSelectionFn(ctx, sessionID, sel)
}
