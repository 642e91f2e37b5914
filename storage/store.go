// Package storage holds the process-lifetime message collection. It is
// the single authoritative owner of message state; every thread-shaped
// view is derived from it elsewhere.
package storage

import (
	"errors"
	"sync"

	"github.com/qwertyczee/inbox-threads/models"
)

// Sentinel errors for the storage package. Use errors.Is() to check.
var (
	// ErrThreadNotFound is returned when a thread ID references nothing.
	ErrThreadNotFound = errors.New("storage: thread not found")

	// ErrThreadExists is returned when creating a thread whose ID is taken.
	ErrThreadExists = errors.New("storage: thread already exists")

	// ErrInvalidFolder is returned for folders a thread cannot be assigned to.
	ErrInvalidFolder = errors.New("storage: invalid folder")
)

// MessageStore is the in-memory flat message collection plus the per-thread
// folder assignment. Thread-safe; every mutation runs under one lock so
// overlapping calls against the same thread serialize. A single mailbox
// holds tens of threads, so one global lock is enough.
type MessageStore struct {
	mu       sync.RWMutex
	messages []models.Email
	folders  map[string]models.Folder
}

// NewMessageStore creates an empty store.
func NewMessageStore() *MessageStore {
	return &MessageStore{
		folders: make(map[string]models.Folder),
	}
}

// Len returns the number of stored messages.
func (s *MessageStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// HasThread reports whether any message carries the given thread ID.
func (s *MessageStore) HasThread(threadID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.folders[threadID]
	return ok
}

// Snapshot returns a deep copy of every message, in insertion order.
func (s *MessageStore) Snapshot() []models.Email {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Email, len(s.messages))
	for i, msg := range s.messages {
		out[i] = msg.Clone()
	}
	return out
}

// ThreadMessages returns deep copies of the messages of one thread, in
// insertion order.
func (s *MessageStore) ThreadMessages(threadID string) ([]models.Email, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.folders[threadID]; !ok {
		return nil, ErrThreadNotFound
	}
	var out []models.Email
	for _, msg := range s.messages {
		if msg.ThreadID == threadID {
			out = append(out, msg.Clone())
		}
	}
	return out, nil
}

// FolderOf returns the folder a thread is assigned to.
func (s *MessageStore) FolderOf(threadID string) (models.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	folder, ok := s.folders[threadID]
	if !ok {
		return "", ErrThreadNotFound
	}
	return folder, nil
}

// Folders returns a copy of the full thread-to-folder assignment.
func (s *MessageStore) Folders() map[string]models.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]models.Folder, len(s.folders))
	for id, folder := range s.folders {
		out[id] = folder
	}
	return out
}

// CreateThread stores the first message of a new thread and assigns its
// folder.
func (s *MessageStore) CreateThread(msg models.Email, folder models.Folder) error {
	if !folder.Assignable() {
		return ErrInvalidFolder
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.folders[msg.ThreadID]; ok {
		return ErrThreadExists
	}
	s.messages = append(s.messages, msg.Clone())
	s.folders[msg.ThreadID] = folder
	return nil
}

// AppendToThread adds a message to an existing thread. The thread keeps
// its folder.
func (s *MessageStore) AppendToThread(msg models.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.folders[msg.ThreadID]; !ok {
		return ErrThreadNotFound
	}
	s.messages = append(s.messages, msg.Clone())
	return nil
}

// MarkRead flips every message of the thread to read. Returns how many
// messages actually changed, so callers can reconcile counts.
func (s *MessageStore) MarkRead(threadID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.folders[threadID]; !ok {
		return 0, ErrThreadNotFound
	}
	changed := 0
	for i := range s.messages {
		if s.messages[i].ThreadID == threadID && !s.messages[i].IsRead {
			s.messages[i].IsRead = true
			changed++
		}
	}
	return changed, nil
}

// ToggleStar flips the thread-level starred state. A thread counts as
// starred when any of its messages is starred: unstarring clears the flag
// on every message, starring sets it on the temporally last one. Returns
// the new starred state.
func (s *MessageStore) ToggleStar(threadID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.folders[threadID]; !ok {
		return false, ErrThreadNotFound
	}

	starred := false
	last := -1
	for i := range s.messages {
		if s.messages[i].ThreadID != threadID {
			continue
		}
		if s.messages[i].IsStarred {
			starred = true
		}
		if last == -1 || !s.messages[i].Date.Before(s.messages[last].Date) {
			last = i
		}
	}

	if starred {
		for i := range s.messages {
			if s.messages[i].ThreadID == threadID {
				s.messages[i].IsStarred = false
			}
		}
		return false, nil
	}
	s.messages[last].IsStarred = true
	return true, nil
}

// MoveThread reassigns the thread's folder. Flags and read state are
// untouched.
func (s *MessageStore) MoveThread(threadID string, folder models.Folder) error {
	if !folder.Assignable() {
		return ErrInvalidFolder
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.folders[threadID]; !ok {
		return ErrThreadNotFound
	}
	s.folders[threadID] = folder
	return nil
}

// DeleteThread permanently removes the thread and all its messages.
func (s *MessageStore) DeleteThread(threadID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.folders[threadID]; !ok {
		return ErrThreadNotFound
	}
	kept := s.messages[:0]
	for _, msg := range s.messages {
		if msg.ThreadID != threadID {
			kept = append(kept, msg)
		}
	}
	s.messages = kept
	delete(s.folders, threadID)
	return nil
}
