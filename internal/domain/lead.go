package domain

import (
	"encoding/json"
	"time"
)

// ChatStatus is the commercial stage a conversation has reached.
type ChatStatus string

const (
	StatusInitial     ChatStatus = "initial"
	StatusPreQuote    ChatStatus = "prequote"
	StatusAppointment ChatStatus = "appointment"
	StatusQuote       ChatStatus = "quote"
	StatusInvoice     ChatStatus = "invoice"
)

func (s ChatStatus) Valid() bool {
	switch s {
	case StatusInitial, StatusPreQuote, StatusAppointment, StatusQuote, StatusInvoice:
		return true
	}
	return false
}

// ChatLead is the durable business record derived from one conversation.
// There is at most one lead per session. Stage payloads are stored as the
// caller provided them; stage dates are restamped every time the lead enters
// that stage.
type ChatLead struct {
	ID              string          `json:"id"`
	SessionID       string          `json:"sessionId"`
	UserID          string          `json:"userId"`
	Status          ChatStatus      `json:"status"`
	PreQuoteData    json.RawMessage `json:"prequoteData,omitempty"`
	PreQuoteDate    *time.Time      `json:"prequoteDate,omitempty"`
	AppointmentData json.RawMessage `json:"appointmentData,omitempty"`
	AppointmentDate *time.Time      `json:"appointmentDate,omitempty"`
	QuoteData       json.RawMessage `json:"quoteData,omitempty"`
	LastQuoteDate   *time.Time      `json:"lastQuoteDate,omitempty"`
	QuoteCount      int             `json:"quoteCount"`
	InvoiceData     json.RawMessage `json:"invoiceData,omitempty"`
	InvoiceDate     *time.Time      `json:"invoiceDate,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
