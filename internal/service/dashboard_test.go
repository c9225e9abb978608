package service

import (
	"context"
	"testing"

	"github.com/siblingk/chatbot-sub001/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOptionStore struct {
	options []domain.DashboardOption
}

func (f *fakeOptionStore) ListActive(context.Context) ([]domain.DashboardOption, error) {
	var active []domain.DashboardOption
	for _, o := range f.options {
		if o.Active {
			active = append(active, o)
		}
	}
	return active, nil
}

func (f *fakeOptionStore) GetByID(_ context.Context, id int64) (*domain.DashboardOption, error) {
	for _, o := range f.options {
		if o.ID == id {
			cp := o
			return &cp, nil
		}
	}
	return nil, domain.ErrOptionNotFound
}

func TestDashboardResolve(t *testing.T) {
	svc := NewDashboardService(&fakeOptionStore{options: []domain.DashboardOption{
		{ID: 1, Label: "Get a pre-quote", Response: "Tell me about your vehicle.", Active: true},
		{ID: 2, Label: "Retired option", Response: "gone", Active: false},
	}})

	option, err := svc.Resolve(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Tell me about your vehicle.", option.Response)
	assert.Equal(t, "Get a pre-quote", option.Label)

	_, err = svc.Resolve(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrOptionNotFound)

	_, err = svc.Resolve(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrOptionNotFound)
}
