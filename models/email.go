package models

import "time"

// Address is a single mail participant.
type Address struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Email represents a single message inside a thread.
//
// A message is immutable once stored except for the IsRead and IsStarred
// flags, which flip through explicit mailbox operations.
type Email struct {
	ID          string       `json:"id"`
	ThreadID    string       `json:"thread_id"`
	From        Address      `json:"from"`
	To          []Address    `json:"to"`
	Subject     string       `json:"subject"`
	Body        string       `json:"body"`
	Preview     string       `json:"preview"`
	Date        time.Time    `json:"date"`
	IsRead      bool         `json:"is_read"`
	IsStarred   bool         `json:"is_starred"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment represents an email attachment.
type Attachment struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Clone returns a deep copy so messages can cross the service boundary
// without sharing mutable state with the store.
func (e Email) Clone() Email {
	out := e
	if e.To != nil {
		out.To = make([]Address, len(e.To))
		copy(out.To, e.To)
	}
	if e.Attachments != nil {
		out.Attachments = make([]Attachment, len(e.Attachments))
		copy(out.Attachments, e.Attachments)
	}
	return out
}
