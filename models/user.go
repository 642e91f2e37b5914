package models

// User is the mailbox owner. The system is single-user: sent messages are
// authored by this identity and arrive already read.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Addr returns the owner as a mail participant.
func (u User) Addr() Address {
	return Address{Name: u.Name, Email: u.Email}
}

// ComposeRequest is the payload for sending a new mail or a reply.
// ReplyToThreadID selects the reply branch; when empty a new thread is
// created in the sent folder.
type ComposeRequest struct {
	To              string `json:"to"`
	Subject         string `json:"subject"`
	Body            string `json:"body"`
	ReplyToThreadID string `json:"reply_to_thread_id,omitempty"`
}
