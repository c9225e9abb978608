package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/siblingk/chatbot-sub001/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeadStore struct {
	bySession map[string]*domain.ChatLead
}

func newFakeLeadStore() *fakeLeadStore {
	return &fakeLeadStore{bySession: make(map[string]*domain.ChatLead)}
}

func (f *fakeLeadStore) GetBySessionID(_ context.Context, sessionID string) (*domain.ChatLead, error) {
	lead, ok := f.bySession[sessionID]
	if !ok {
		return nil, domain.ErrLeadNotFound
	}
	cp := *lead
	return &cp, nil
}

func (f *fakeLeadStore) ListByUser(_ context.Context, userID string) ([]domain.ChatLead, error) {
	var leads []domain.ChatLead
	for _, lead := range f.bySession {
		if lead.UserID == userID {
			leads = append(leads, *lead)
		}
	}
	return leads, nil
}

func (f *fakeLeadStore) Insert(_ context.Context, lead *domain.ChatLead) error {
	cp := *lead
	f.bySession[lead.SessionID] = &cp
	return nil
}

func (f *fakeLeadStore) Update(_ context.Context, lead *domain.ChatLead) error {
	cp := *lead
	f.bySession[lead.SessionID] = &cp
	return nil
}

type recordingNotifier struct {
	statuses []domain.ChatStatus
}

func (n *recordingNotifier) LeadTransition(lead *domain.ChatLead) {
	n.statuses = append(n.statuses, lead.Status)
}

func newTestLeadService(notifier Notifier) (*LeadService, *fakeLeadStore) {
	store := newFakeLeadStore()
	svc := NewLeadService(store, notifier)
	return svc, store
}

func TestEnsureCreatesInitialLead(t *testing.T) {
	svc, store := newTestLeadService(nil)

	lead, err := svc.Ensure(context.Background(), "s1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "s1", lead.SessionID)
	assert.Equal(t, "u1", lead.UserID)
	assert.Equal(t, domain.StatusInitial, lead.Status)
	assert.NotEmpty(t, lead.ID)

	again, err := svc.Ensure(context.Background(), "s1", "u1")
	require.NoError(t, err)
	assert.Equal(t, lead.ID, again.ID)
	assert.Len(t, store.bySession, 1)
}

func TestEnsureWithoutUserIsNoOp(t *testing.T) {
	svc, store := newTestLeadService(nil)

	_, err := svc.Ensure(context.Background(), "s1", "")
	require.ErrorIs(t, err, domain.ErrNoAuthenticatedUser)
	assert.Empty(t, store.bySession)

	_, err = svc.UpdatePreQuote(context.Background(), "s1", "", json.RawMessage(`{}`))
	require.ErrorIs(t, err, domain.ErrNoAuthenticatedUser)
	assert.Empty(t, store.bySession)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestLeadService(nil)

	_, err := svc.UpdateStatus(context.Background(), "s1", "u1", domain.ChatStatus("paid"))
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestQuoteCounterMonotonicity(t *testing.T) {
	svc, _ := newTestLeadService(nil)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	var last *domain.ChatLead
	for i := 1; i <= 5; i++ {
		lead, err := svc.UpdateQuote(context.Background(), "s1", "u1", json.RawMessage(`{"amount":100}`))
		require.NoError(t, err)
		assert.Equal(t, i, lead.QuoteCount)
		last = lead
	}
	require.NotNil(t, last.LastQuoteDate)

	// The stored stamp is from the most recent transition.
	stored, err := svc.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 5, stored.QuoteCount)
	assert.Equal(t, *last.LastQuoteDate, *stored.LastQuoteDate)
}

func TestStatusTransitionStampsOnlyItsStage(t *testing.T) {
	svc, _ := newTestLeadService(nil)

	_, err := svc.UpdatePreQuote(context.Background(), "s1", "u1", json.RawMessage(`{"service":"brakes"}`))
	require.NoError(t, err)
	before, err := svc.Get(context.Background(), "s1")
	require.NoError(t, err)

	issued := time.Now().UTC()
	lead, err := svc.UpdateStatus(context.Background(), "s1", "u1", domain.StatusAppointment)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusAppointment, lead.Status)
	require.NotNil(t, lead.AppointmentDate)
	assert.False(t, lead.AppointmentDate.Before(issued))

	assert.Equal(t, before.PreQuoteDate, lead.PreQuoteDate)
	assert.Equal(t, before.QuoteCount, lead.QuoteCount)
	assert.Nil(t, lead.InvoiceDate)
}

func TestTransitionsAreUnguarded(t *testing.T) {
	svc, _ := newTestLeadService(nil)

	_, err := svc.UpdateInvoice(context.Background(), "s1", "u1", json.RawMessage(`{"amount":900}`))
	require.NoError(t, err)

	// Any state may move to any other, including backwards.
	lead, err := svc.UpdateStatus(context.Background(), "s1", "u1", domain.StatusInitial)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInitial, lead.Status)
	require.NotNil(t, lead.InvoiceDate)

	// Re-entering a stage restamps its date.
	first := *lead.InvoiceDate
	svc.now = func() time.Time { return first.Add(time.Hour) }
	lead, err = svc.UpdateStatus(context.Background(), "s1", "u1", domain.StatusInvoice)
	require.NoError(t, err)
	assert.Equal(t, first.Add(time.Hour), *lead.InvoiceDate)
}

func TestPreQuoteThenQuoteScenario(t *testing.T) {
	svc, _ := newTestLeadService(nil)

	lead, err := svc.UpdatePreQuote(context.Background(), "s1", "u1", json.RawMessage(`{"service":"oil change"}`))
	require.NoError(t, err)
	assert.Equal(t, "s1", lead.SessionID)
	assert.Equal(t, "u1", lead.UserID)
	assert.Equal(t, domain.StatusPreQuote, lead.Status)
	assert.JSONEq(t, `{"service":"oil change"}`, string(lead.PreQuoteData))
	require.NotNil(t, lead.PreQuoteDate)

	lead, err = svc.UpdateQuote(context.Background(), "s1", "u1", json.RawMessage(`{"amount":120}`))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusQuote, lead.Status)
	assert.Equal(t, 1, lead.QuoteCount)
	assert.JSONEq(t, `{"amount":120}`, string(lead.QuoteData))
	assert.JSONEq(t, `{"service":"oil change"}`, string(lead.PreQuoteData))
}

func TestNotifierSeesCommercialTransitionsOnly(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, _ := newTestLeadService(notifier)

	_, err := svc.UpdatePreQuote(context.Background(), "s1", "u1", json.RawMessage(`{}`))
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), "s1", "u1", domain.StatusInitial)
	require.NoError(t, err)
	_, err = svc.UpdateQuote(context.Background(), "s1", "u1", json.RawMessage(`{}`))
	require.NoError(t, err)

	assert.Equal(t, []domain.ChatStatus{domain.StatusPreQuote, domain.StatusQuote}, notifier.statuses)
}
