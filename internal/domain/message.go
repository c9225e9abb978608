package domain

import "time"

// Message is one turn of a conversation. The log is append-only and ordered
// by insertion; it is only ever appended to or cleared wholesale.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	IsUser    bool      `json:"isUser"`
	Timestamp time.Time `json:"timestamp"`
}
