package mock

import (
	"context"

	"github.com/onobori/chintai"
)

var _ chintai.PropertyService = (*PropertyService)(nil)

// PropertyService is a mock implementation of chintai.PropertyService.
type PropertyService struct {
	CreatePropertiesFn func(ctx context.Context, props []*chintai.Property) error
	FindPropertiesFn   func(ctx context.Context) ([]*chintai.Property, error)
	CountPropertiesFn  func(ctx context.Context) (int, error)
}

func (s *PropertyService) CreateProperties(ctx context.Context, props []*chintai.Property) error {
	return s.CreatePropertiesFn(ctx, props)
}

func (s *PropertyService) FindProperties(ctx context.Context) ([]*chintai.Property, error) {
	return s.FindPropertiesFn(ctx)
}

func (s *PropertyService) CountProperties(ctx context.Context) (int, error) {
	return s.CountPropertiesFn(ctx)
}
