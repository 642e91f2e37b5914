// Package threading derives thread aggregates from flat message
// collections. Assembly is a pure function of the message set: derived
// fields are never stored authoritatively, they are recomputed after
// every mutation.
package threading

import (
	"sort"
	"strings"

	"github.com/qwertyczee/inbox-threads/models"
)

// BuildThreads groups messages by thread ID and derives the thread-level
// summary fields. Folder assignment is not part of derivation; callers own
// it and apply it afterwards. The result is ordered by first appearance of
// each thread ID in the input, so an unchanged message set always yields
// an identical thread set.
func BuildThreads(messages []models.Email) []*models.EmailThread {
	groups := make(map[string][]models.Email)
	order := make([]string, 0)

	for _, msg := range messages {
		if _, seen := groups[msg.ThreadID]; !seen {
			order = append(order, msg.ThreadID)
		}
		groups[msg.ThreadID] = append(groups[msg.ThreadID], msg)
	}

	threads := make([]*models.EmailThread, 0, len(order))
	for _, id := range order {
		threads = append(threads, BuildThread(id, groups[id]))
	}
	return threads
}

// BuildThread derives a single thread from the messages sharing one
// thread ID. Messages are sorted ascending by timestamp; ties keep input
// order, which keeps the temporally last message stable across rebuilds.
func BuildThread(id string, messages []models.Email) *models.EmailThread {
	sorted := make([]models.Email, len(messages))
	copy(sorted, messages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	thread := &models.EmailThread{
		ID:           id,
		Messages:     sorted,
		Participants: participants(sorted),
	}

	if len(sorted) > 0 {
		first := sorted[0]
		last := sorted[len(sorted)-1]
		thread.Subject = CleanSubject(first.Subject)
		thread.LastMessageAt = last.Date
		thread.Snippet = last.Preview
	}

	for _, msg := range sorted {
		if msg.IsStarred {
			thread.IsStarred = true
		}
		if !msg.IsRead {
			thread.UnreadCount++
		}
	}

	return thread
}

// participants collects the deduplicated union of senders and recipients,
// keyed by exact email address. The first-encountered display name wins
// and insertion order is first-seen.
func participants(messages []models.Email) []models.Address {
	seen := make(map[string]bool)
	out := make([]models.Address, 0, len(messages))

	add := func(addr models.Address) {
		if seen[addr.Email] {
			return
		}
		seen[addr.Email] = true
		out = append(out, addr)
	}

	for _, msg := range messages {
		add(msg.From)
		for _, to := range msg.To {
			add(to)
		}
	}
	return out
}

// CleanSubject strips a single leading "Re: " prefix from a subject.
// Stacked prefixes are left alone; only the outermost reply marker is a
// threading artifact.
func CleanSubject(subject string) string {
	return strings.TrimPrefix(subject, "Re: ")
}

// SortByLastActivity orders threads newest-first for list views.
func SortByLastActivity(threads []*models.EmailThread) {
	sort.SliceStable(threads, func(i, j int) bool {
		return threads[i].LastMessageAt.After(threads[j].LastMessageAt)
	})
}
