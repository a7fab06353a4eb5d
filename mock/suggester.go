package mock

import (
	"context"

	"github.com/onobori/chintai"
)

var _ chintai.Suggester = (*Suggester)(nil)

// Suggester is a mock implementation of chintai.Suggester.
type Suggester struct {
	SuggestFn func(ctx context.Context, station string, minutes int) (*chintai.Suggestion, error)
}

func (s *Suggester) Suggest(ctx context.Context, station string, minutes int) (*chintai.Suggestion, error) {
	return s.SuggestFn(ctx, station, minutes)
}
