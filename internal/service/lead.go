package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/siblingk/chatbot-sub001/internal/domain"
)

// LeadStore is the persistence the lead state machine runs against.
type LeadStore interface {
	GetBySessionID(ctx context.Context, sessionID string) (*domain.ChatLead, error)
	ListByUser(ctx context.Context, userID string) ([]domain.ChatLead, error)
	Insert(ctx context.Context, lead *domain.ChatLead) error
	Update(ctx context.Context, lead *domain.ChatLead) error
}

// Notifier receives leads that just entered a commercial stage.
type Notifier interface {
	LeadTransition(lead *domain.ChatLead)
}

// LeadService owns the lifecycle of a chat lead. Transitions are deliberately
// unguarded: any status may move to any other, and re-entering a stage
// restamps that stage's date.
type LeadService struct {
	store    LeadStore
	notifier Notifier
	now      func() time.Time
}

func NewLeadService(store LeadStore, notifier Notifier) *LeadService {
	return &LeadService{
		store:    store,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Get returns the lead for a session, or domain.ErrLeadNotFound.
func (s *LeadService) Get(ctx context.Context, sessionID string) (*domain.ChatLead, error) {
	return s.store.GetBySessionID(ctx, sessionID)
}

// Ensure loads the session's lead, lazily creating one in the initial status
// when an authenticated user is known. Without a user the lead stays absent
// and domain.ErrNoAuthenticatedUser is returned.
func (s *LeadService) Ensure(ctx context.Context, sessionID, userID string) (*domain.ChatLead, error) {
	lead, err := s.store.GetBySessionID(ctx, sessionID)
	if err == nil {
		return lead, nil
	}
	if !errors.Is(err, domain.ErrLeadNotFound) {
		return nil, err
	}
	if userID == "" {
		return nil, domain.ErrNoAuthenticatedUser
	}

	now := s.now()
	lead = &domain.ChatLead{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		UserID:    userID,
		Status:    domain.StatusInitial,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Insert(ctx, lead); err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}
	return lead, nil
}

// UpdateStatus moves the lead to the given status, stamping the stage date
// that belongs to it (and bumping the quote counter for quotes).
func (s *LeadService) UpdateStatus(ctx context.Context, sessionID, userID string, status domain.ChatStatus) (*domain.ChatLead, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	lead, err := s.Ensure(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	s.enterStage(lead, status)
	if err := s.persist(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *LeadService) UpdatePreQuote(ctx context.Context, sessionID, userID string, data json.RawMessage) (*domain.ChatLead, error) {
	return s.updateStage(ctx, sessionID, userID, domain.StatusPreQuote, data)
}

func (s *LeadService) UpdateAppointment(ctx context.Context, sessionID, userID string, data json.RawMessage) (*domain.ChatLead, error) {
	return s.updateStage(ctx, sessionID, userID, domain.StatusAppointment, data)
}

func (s *LeadService) UpdateQuote(ctx context.Context, sessionID, userID string, data json.RawMessage) (*domain.ChatLead, error) {
	return s.updateStage(ctx, sessionID, userID, domain.StatusQuote, data)
}

func (s *LeadService) UpdateInvoice(ctx context.Context, sessionID, userID string, data json.RawMessage) (*domain.ChatLead, error) {
	return s.updateStage(ctx, sessionID, userID, domain.StatusInvoice, data)
}

func (s *LeadService) updateStage(ctx context.Context, sessionID, userID string, status domain.ChatStatus, data json.RawMessage) (*domain.ChatLead, error) {
	lead, err := s.Ensure(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	switch status {
	case domain.StatusPreQuote:
		lead.PreQuoteData = data
	case domain.StatusAppointment:
		lead.AppointmentData = data
	case domain.StatusQuote:
		lead.QuoteData = data
	case domain.StatusInvoice:
		lead.InvoiceData = data
	}
	s.enterStage(lead, status)

	if err := s.persist(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *LeadService) enterStage(lead *domain.ChatLead, status domain.ChatStatus) {
	now := s.now()
	lead.Status = status
	switch status {
	case domain.StatusPreQuote:
		lead.PreQuoteDate = &now
	case domain.StatusAppointment:
		lead.AppointmentDate = &now
	case domain.StatusQuote:
		lead.LastQuoteDate = &now
		lead.QuoteCount++
	case domain.StatusInvoice:
		lead.InvoiceDate = &now
	}
}

func (s *LeadService) persist(ctx context.Context, lead *domain.ChatLead) error {
	lead.UpdatedAt = s.now()
	if err := s.store.Update(ctx, lead); err != nil {
		return fmt.Errorf("persist lead: %w", err)
	}
	if s.notifier != nil && lead.Status != domain.StatusInitial {
		s.notifier.LeadTransition(lead)
	}
	return nil
}
