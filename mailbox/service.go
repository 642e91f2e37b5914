// Package mailbox implements the mailbox operation surface over the
// message store: listing, lookup, search, compose, flag changes, folder
// moves and deletion. Every operation simulates a network round-trip and
// leaves the store and its derived views mutually consistent before
// returning.
package mailbox

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/qwertyczee/inbox-threads/models"
	"github.com/qwertyczee/inbox-threads/storage"
	"github.com/qwertyczee/inbox-threads/threading"
	"github.com/qwertyczee/inbox-threads/utils"
)

// LatencyProfile holds the simulated round-trip delay per operation.
// Zero values mean no delay; Enabled gates the whole profile so tests
// run instantly.
type LatencyProfile struct {
	Enabled  bool
	List     time.Duration
	Get      time.Duration
	Counts   time.Duration
	MarkRead time.Duration
	Star     time.Duration
	Move     time.Duration
	Delete   time.Duration
	Send     time.Duration
	Search   time.Duration
}

// DefaultLatencyProfile mirrors the delays of a believable remote mail
// service.
func DefaultLatencyProfile() LatencyProfile {
	return LatencyProfile{
		Enabled:  true,
		List:     300 * time.Millisecond,
		Get:      200 * time.Millisecond,
		Counts:   100 * time.Millisecond,
		MarkRead: 100 * time.Millisecond,
		Star:     100 * time.Millisecond,
		Move:     150 * time.Millisecond,
		Delete:   150 * time.Millisecond,
		Send:     500 * time.Millisecond,
		Search:   200 * time.Millisecond,
	}
}

// FaultInjector lets tests raise transient failures at the service
// boundary. It runs before any store mutation, keyed by operation name.
type FaultInjector func(op string) error

// Service is the sole mutation surface over the message store.
type Service struct {
	store   *storage.MessageStore
	owner   models.User
	hub     *Hub
	latency LatencyProfile
	faults  FaultInjector
	log     *utils.Logger
}

// NewService creates a mailbox service. hub may be nil when no live
// notifications are wanted.
func NewService(store *storage.MessageStore, owner models.User, hub *Hub, latency LatencyProfile) *Service {
	return &Service{
		store:   store,
		owner:   owner,
		hub:     hub,
		latency: latency,
		log:     utils.Log.WithField("component", "mailbox"),
	}
}

// Owner returns the mailbox owner identity.
func (s *Service) Owner() models.User {
	return s.owner
}

// SetFaultInjector installs a transient-failure hook. Pass nil to clear.
func (s *Service) SetFaultInjector(fi FaultInjector) {
	s.faults = fi
}

// delay simulates one network round-trip, honoring context cancellation.
func (s *Service) delay(ctx context.Context, d time.Duration) error {
	if !s.latency.Enabled || d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) fault(op string) error {
	if s.faults == nil {
		return nil
	}
	return s.faults(op)
}

// snapshotThreads rebuilds every thread from the authoritative message
// collection, in store order.
func (s *Service) snapshotThreads() []*models.EmailThread {
	threads := threading.BuildThreads(s.store.Snapshot())
	folders := s.store.Folders()
	for _, thread := range threads {
		thread.Folder = folders[thread.ID]
	}
	return threads
}

// thread rebuilds one thread. Returns ErrThreadNotFound when the ID
// references nothing.
func (s *Service) thread(id string) (*models.EmailThread, error) {
	messages, err := s.store.ThreadMessages(id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	folder, err := s.store.FolderOf(id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	thread := threading.BuildThread(id, messages)
	thread.Folder = folder
	return thread, nil
}

// ListThreads returns the threads of a folder ordered by last activity,
// newest first. The starred view lists starred threads outside trash.
func (s *Service) ListThreads(ctx context.Context, folder models.Folder) ([]*models.EmailThread, error) {
	if !folder.Valid() {
		return nil, ErrInvalidFolder
	}
	if err := s.delay(ctx, s.latency.List); err != nil {
		return nil, err
	}
	if err := s.fault("list"); err != nil {
		return nil, err
	}

	var out []*models.EmailThread
	for _, thread := range s.snapshotThreads() {
		if folder == models.FolderStarred {
			if thread.IsStarred && thread.Folder != models.FolderTrash {
				out = append(out, thread)
			}
		} else if thread.Folder == folder {
			out = append(out, thread)
		}
	}
	threading.SortByLastActivity(out)
	return out, nil
}

// GetThread returns a single thread by ID.
func (s *Service) GetThread(ctx context.Context, id string) (*models.EmailThread, error) {
	if err := s.delay(ctx, s.latency.Get); err != nil {
		return nil, err
	}
	if err := s.fault("get"); err != nil {
		return nil, err
	}
	return s.thread(id)
}

// FolderCounts recomputes the per-folder unread counts.
func (s *Service) FolderCounts(ctx context.Context) (models.FolderCounts, error) {
	if err := s.delay(ctx, s.latency.Counts); err != nil {
		return nil, err
	}
	if err := s.fault("counts"); err != nil {
		return nil, err
	}
	return ComputeFolderCounts(s.snapshotThreads()), nil
}

// MarkRead flips every message of the thread to read and returns the
// updated thread.
func (s *Service) MarkRead(ctx context.Context, id string) (*models.EmailThread, error) {
	if err := s.delay(ctx, s.latency.MarkRead); err != nil {
		return nil, err
	}
	if err := s.fault("mark_read"); err != nil {
		return nil, err
	}

	changed, err := s.store.MarkRead(id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	thread, err := s.thread(id)
	if err != nil {
		return nil, err
	}
	if changed > 0 {
		s.publish(Event{Type: EventThreadUpdated, ThreadID: id, Thread: thread})
	}
	return thread, nil
}

// ToggleStar flips the thread-level starred flag and returns the updated
// thread. Overlapping calls serialize on the store lock, so two toggles
// always compose to a net no-op.
func (s *Service) ToggleStar(ctx context.Context, id string) (*models.EmailThread, error) {
	if err := s.delay(ctx, s.latency.Star); err != nil {
		return nil, err
	}
	if err := s.fault("toggle_star"); err != nil {
		return nil, err
	}

	if _, err := s.store.ToggleStar(id); err != nil {
		return nil, mapStoreErr(err)
	}
	thread, err := s.thread(id)
	if err != nil {
		return nil, err
	}
	s.publish(Event{Type: EventThreadUpdated, ThreadID: id, Thread: thread})
	return thread, nil
}

// MoveToFolder reassigns the thread's folder. Flags and read state are
// untouched.
func (s *Service) MoveToFolder(ctx context.Context, id string, folder models.Folder) (*models.EmailThread, error) {
	if !folder.Assignable() {
		return nil, ErrInvalidFolder
	}
	if err := s.delay(ctx, s.latency.Move); err != nil {
		return nil, err
	}
	if err := s.fault("move"); err != nil {
		return nil, err
	}

	if err := s.store.MoveThread(id, folder); err != nil {
		return nil, mapStoreErr(err)
	}
	thread, err := s.thread(id)
	if err != nil {
		return nil, err
	}
	s.publish(Event{Type: EventThreadUpdated, ThreadID: id, Thread: thread})
	return thread, nil
}

// DeleteThread permanently removes the thread and all its messages.
func (s *Service) DeleteThread(ctx context.Context, id string) error {
	if err := s.delay(ctx, s.latency.Delete); err != nil {
		return err
	}
	if err := s.fault("delete"); err != nil {
		return err
	}

	if err := s.store.DeleteThread(id); err != nil {
		return mapStoreErr(err)
	}
	s.publish(Event{Type: EventThreadDeleted, ThreadID: id})
	return nil
}

// Send delivers a composed message. With ReplyToThreadID set it appends
// to that thread, which must exist; otherwise it creates a new thread in
// the sent folder. Returns the affected thread.
func (s *Service) Send(ctx context.Context, req models.ComposeRequest) (*models.EmailThread, error) {
	if err := validateCompose(req); err != nil {
		return nil, err
	}
	if err := s.delay(ctx, s.latency.Send); err != nil {
		return nil, err
	}
	if err := s.fault("send"); err != nil {
		return nil, err
	}

	to := strings.TrimSpace(req.To)
	body := utils.SanitizeBody(req.Body)
	msg := models.Email{
		ID:      newMessageID(),
		From:    s.owner.Addr(),
		To:      []models.Address{{Name: to, Email: to}},
		Subject: strings.TrimSpace(req.Subject),
		Body:    body,
		Preview: utils.Preview(body),
		Date:    time.Now(),
		IsRead:  true,
	}

	if req.ReplyToThreadID != "" {
		// Reply branch: never silently create an unrelated thread.
		msg.ThreadID = req.ReplyToThreadID
		if err := s.store.AppendToThread(msg); err != nil {
			return nil, mapStoreErr(err)
		}
	} else {
		msg.ThreadID = newThreadID()
		if err := s.store.CreateThread(msg, models.FolderSent); err != nil {
			return nil, mapStoreErr(err)
		}
	}

	thread, err := s.thread(msg.ThreadID)
	if err != nil {
		return nil, err
	}
	s.log.Info("message sent: thread=%s to=%s", thread.ID, to)
	s.publish(Event{Type: EventMessageSent, ThreadID: thread.ID, Thread: thread})
	return thread, nil
}

// SearchThreads matches a case-insensitive substring against thread
// subject, snippet and each participant's name and email. Results keep
// store order.
func (s *Service) SearchThreads(ctx context.Context, query string) ([]*models.EmailThread, error) {
	if err := s.delay(ctx, s.latency.Search); err != nil {
		return nil, err
	}
	if err := s.fault("search"); err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var out []*models.EmailThread
	for _, thread := range s.snapshotThreads() {
		if matchThread(thread, q) {
			out = append(out, thread)
		}
	}
	return out, nil
}

func matchThread(thread *models.EmailThread, q string) bool {
	if strings.Contains(strings.ToLower(thread.Subject), q) {
		return true
	}
	if strings.Contains(strings.ToLower(thread.Snippet), q) {
		return true
	}
	for _, p := range thread.Participants {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Email), q) {
			return true
		}
	}
	return false
}

func validateCompose(req models.ComposeRequest) error {
	if strings.TrimSpace(req.To) == "" {
		return ErrEmptyRecipient
	}
	if strings.TrimSpace(req.Subject) == "" {
		return ErrEmptySubject
	}
	if strings.TrimSpace(req.Body) == "" {
		return ErrEmptyBody
	}
	return nil
}

func (s *Service) publish(event Event) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(event)
}

func mapStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrThreadNotFound):
		return ErrThreadNotFound
	case errors.Is(err, storage.ErrInvalidFolder):
		return ErrInvalidFolder
	default:
		return err
	}
}

func newMessageID() string { return "m-" + uuid.NewString() }
func newThreadID() string  { return "t-" + uuid.NewString() }
