package models

import "time"

// Folder identifies one of the fixed mailbox folders a thread lives in.
type Folder string

const (
	FolderInbox  Folder = "inbox"
	FolderSent   Folder = "sent"
	FolderDrafts Folder = "drafts"
	FolderSpam   Folder = "spam"
	FolderTrash  Folder = "trash"
	// FolderStarred is a filter view, not a storage folder. Threads are
	// never assigned to it; listing it returns starred threads outside
	// trash.
	FolderStarred Folder = "starred"
)

// StorageFolders are the folders a thread can actually be assigned to.
var StorageFolders = []Folder{FolderInbox, FolderSent, FolderDrafts, FolderSpam, FolderTrash}

// Valid reports whether f names a known folder, including the starred view.
func (f Folder) Valid() bool {
	switch f {
	case FolderInbox, FolderSent, FolderDrafts, FolderSpam, FolderTrash, FolderStarred:
		return true
	}
	return false
}

// Assignable reports whether a thread can be moved into f. The starred
// view is excluded: starring is a flag, not a folder.
func (f Folder) Assignable() bool {
	return f.Valid() && f != FolderStarred
}

// EmailThread is a derived aggregate over all messages sharing a thread ID.
//
// Every field except ID and Folder is recomputed from the message set after
// each mutation; none of them is independently authoritative.
type EmailThread struct {
	ID            string    `json:"id"`
	Subject       string    `json:"subject"`
	Participants  []Address `json:"participants"`
	Messages      []Email   `json:"messages"`
	Folder        Folder    `json:"folder"`
	IsStarred     bool      `json:"is_starred"`
	LastMessageAt time.Time `json:"last_message_at"`
	Snippet       string    `json:"snippet"`
	UnreadCount   int       `json:"unread_count"`
}

// LastMessage returns the temporally last message of the thread. The UI
// always expands this one, and replies address its sender.
func (t *EmailThread) LastMessage() *Email {
	if len(t.Messages) == 0 {
		return nil
	}
	return &t.Messages[len(t.Messages)-1]
}

// Clone returns a deep copy of the thread.
func (t *EmailThread) Clone() *EmailThread {
	out := *t
	out.Participants = make([]Address, len(t.Participants))
	copy(out.Participants, t.Participants)
	out.Messages = make([]Email, len(t.Messages))
	for i := range t.Messages {
		out.Messages[i] = t.Messages[i].Clone()
	}
	return &out
}

// FolderCounts maps folder names to unread-message counts. Trash is
// deliberately absent from the totals: trashed content is not actionable.
type FolderCounts map[Folder]int

// FolderInfo describes a folder entry for sidebar rendering.
type FolderInfo struct {
	ID    Folder `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}
