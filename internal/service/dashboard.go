package service

import (
	"context"

	"github.com/siblingk/chatbot-sub001/internal/domain"
)

// OptionStore supplies the admin-curated quick-reply options.
type OptionStore interface {
	ListActive(ctx context.Context) ([]domain.DashboardOption, error)
	GetByID(ctx context.Context, id int64) (*domain.DashboardOption, error)
}

type DashboardService struct {
	store OptionStore
}

func NewDashboardService(store OptionStore) *DashboardService {
	return &DashboardService{store: store}
}

func (s *DashboardService) ActiveOptions(ctx context.Context) ([]domain.DashboardOption, error) {
	return s.store.ListActive(ctx)
}

// Resolve returns one option with its canned response. Inactive options
// resolve like missing ones.
func (s *DashboardService) Resolve(ctx context.Context, id int64) (*domain.DashboardOption, error) {
	option, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !option.Active {
		return nil, domain.ErrOptionNotFound
	}
	return option, nil
}
