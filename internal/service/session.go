package service

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/siblingk/chatbot-sub001/internal/config"
	"github.com/siblingk/chatbot-sub001/internal/domain"
	"github.com/siblingk/chatbot-sub001/internal/session"
)

// SessionService owns the visitor's correlation key and the durable message
// log, both kept in the injected session.Store.
type SessionService struct{}

func NewSessionService() *SessionService {
	return &SessionService{}
}

// SessionID returns the stable session id for this visitor, generating and
// persisting a fresh one when none exists yet.
func (s *SessionService) SessionID(store session.Store) string {
	if id, ok := store.Get(config.SessionCookie); ok {
		return id
	}
	id := uuid.NewString()
	store.Set(config.SessionCookie, id, config.SessionTTL)
	return id
}

// Messages reads the full message log. A missing log is an empty one; a
// log that no longer decodes is treated the same way.
func (s *SessionService) Messages(store session.Store) []domain.Message {
	raw, ok := store.Get(config.MessagesCookie)
	if !ok {
		return []domain.Message{}
	}
	var msgs []domain.Message
	if err := json.Unmarshal([]byte(raw), &msgs); err != nil {
		slog.Warn("discarding undecodable message log", "error", err)
		return []domain.Message{}
	}
	return msgs
}

// SaveMessages overwrites the message log wholesale with the given sequence.
func (s *SessionService) SaveMessages(store session.Store, msgs []domain.Message) error {
	raw, err := json.Marshal(msgs)
	if err != nil {
		return err
	}
	store.Set(config.MessagesCookie, string(raw), config.SessionTTL)
	return nil
}

// Append adds turns to the end of the log, preserving existing order.
func (s *SessionService) Append(store session.Store, msgs ...domain.Message) error {
	return s.SaveMessages(store, append(s.Messages(store), msgs...))
}

// ClearMessages empties the log.
func (s *SessionService) ClearMessages(store session.Store) {
	store.Clear(config.MessagesCookie)
}

// NewMessage builds one conversation turn stamped now.
func (s *SessionService) NewMessage(text string, isUser bool) domain.Message {
	return domain.Message{
		ID:        uuid.NewString(),
		Text:      text,
		IsUser:    isUser,
		Timestamp: time.Now().UTC(),
	}
}
