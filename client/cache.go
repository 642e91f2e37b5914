// Package client keeps the consumer-side mirror of mailbox service
// state: the current folder, the visible thread list, folder counts and
// the selection. Mutations are applied optimistically and reconciled with
// the authoritative entities the service returns; a failed call leaves
// prior state untouched.
package client

import (
	"context"
	"sync"

	"github.com/qwertyczee/inbox-threads/mailbox"
	"github.com/qwertyczee/inbox-threads/models"
	"github.com/qwertyczee/inbox-threads/utils"
)

// Notifier surfaces user-visible notifications (toasts). Failures are
// reported here and never retried automatically.
type Notifier interface {
	Notify(title, message string)
}

type logNotifier struct{}

func (logNotifier) Notify(title, message string) {
	utils.Log.Info("notification: %s - %s", title, message)
}

// StateCache is the read-through/write-through mirror held by the
// presentation layer.
type StateCache struct {
	svc      *mailbox.Service
	notifier Notifier

	mu       sync.Mutex
	folder   models.Folder
	threads  []*models.EmailThread
	counts   models.FolderCounts
	selected *models.EmailThread
	cursor   int
}

// NewStateCache creates a cache pointed at the inbox. notifier may be nil;
// notifications then go to the log.
func NewStateCache(svc *mailbox.Service, notifier Notifier) *StateCache {
	if notifier == nil {
		notifier = logNotifier{}
	}
	return &StateCache{
		svc:      svc,
		notifier: notifier,
		folder:   models.FolderInbox,
		counts:   models.FolderCounts{},
	}
}

// Folder returns the current folder.
func (c *StateCache) Folder() models.Folder {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.folder
}

// Threads returns the visible thread list.
func (c *StateCache) Threads() []*models.EmailThread {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*models.EmailThread, len(c.threads))
	copy(out, c.threads)
	return out
}

// Counts returns the latest folder counts snapshot.
func (c *StateCache) Counts() models.FolderCounts {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(models.FolderCounts, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

// Selected returns the selected thread, or nil.
func (c *StateCache) Selected() *models.EmailThread {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// Cursor returns the list cursor position.
func (c *StateCache) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// Refresh reloads the current folder's threads and the folder counts.
// The selection snapshot is replaced with its authoritative copy, or
// cleared when the thread left the list.
func (c *StateCache) Refresh(ctx context.Context) error {
	threads, err := c.svc.ListThreads(ctx, c.Folder())
	if err != nil {
		c.notifier.Notify("Error", "Failed to fetch emails")
		return err
	}
	counts, err := c.svc.FolderCounts(ctx)
	if err != nil {
		c.notifier.Notify("Error", "Failed to fetch emails")
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.threads = threads
	c.counts = counts
	if c.selected != nil {
		c.selected = findThread(threads, c.selected.ID)
	}
	if c.cursor >= len(threads) {
		c.cursor = 0
	}
	return nil
}

// SetFolder switches folders and resets the selection to the safe
// default before reloading.
func (c *StateCache) SetFolder(ctx context.Context, folder models.Folder) error {
	c.mu.Lock()
	c.folder = folder
	c.selected = nil
	c.cursor = 0
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// Select makes the thread the current selection and, when it holds unread
// messages, marks it read: the unread count is zeroed optimistically and
// the folder count decremented by the amount cleared, floored at zero.
// A failed confirmation rolls the optimistic update back.
func (c *StateCache) Select(ctx context.Context, threadID string) error {
	c.mu.Lock()
	thread := findThread(c.threads, threadID)
	if thread == nil {
		c.mu.Unlock()
		c.notifier.Notify("Error", "Thread is no longer in the list")
		return mailbox.ErrThreadNotFound
	}
	c.selected = thread
	cleared := thread.UnreadCount
	if cleared == 0 {
		c.mu.Unlock()
		return nil
	}

	// Optimistic update, remembered for rollback.
	prevCount := c.counts[c.folder]
	optimistic := thread.Clone()
	optimistic.UnreadCount = 0
	for i := range optimistic.Messages {
		optimistic.Messages[i].IsRead = true
	}
	c.replaceLocked(optimistic)
	c.counts[c.folder] = maxInt(0, prevCount-cleared)
	c.mu.Unlock()

	updated, err := c.svc.MarkRead(ctx, threadID)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		// Roll back: restore the pre-optimistic snapshot.
		c.replaceLocked(thread)
		c.counts[c.folder] = prevCount
		c.notifier.Notify("Error", "Failed to mark thread as read")
		return err
	}
	c.replaceLocked(updated)
	return nil
}

// ClearSelection drops the selection (Escape in the thread view).
func (c *StateCache) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = nil
}

// ToggleStar flips the star on a thread and reconciles with the entity
// the service returns.
func (c *StateCache) ToggleStar(ctx context.Context, threadID string) error {
	updated, err := c.svc.ToggleStar(ctx, threadID)
	if err != nil {
		c.notifier.Notify("Error", "Failed to update star")
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replaceLocked(updated)
	return nil
}

// MoveToFolder moves a thread out of the current view.
func (c *StateCache) MoveToFolder(ctx context.Context, threadID string, folder models.Folder) error {
	if _, err := c.svc.MoveToFolder(ctx, threadID, folder); err != nil {
		c.notifier.Notify("Error", "Failed to move thread")
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(threadID)
	return nil
}

// Trash moves the selected thread to trash.
func (c *StateCache) Trash(ctx context.Context) error {
	sel := c.Selected()
	if sel == nil {
		return nil
	}
	if err := c.MoveToFolder(ctx, sel.ID, models.FolderTrash); err != nil {
		return err
	}
	c.notifier.Notify("Moved to Trash", "Email has been moved to trash")
	return nil
}

// Delete permanently removes a thread.
func (c *StateCache) Delete(ctx context.Context, threadID string) error {
	if err := c.svc.DeleteThread(ctx, threadID); err != nil {
		c.notifier.Notify("Error", "Failed to delete thread")
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(threadID)
	return nil
}

// Reply sends a reply on the selected thread. The recipient is the sender
// of the thread's last message; the subject reuses the thread subject with
// a reply prefix.
func (c *StateCache) Reply(ctx context.Context, body string) error {
	sel := c.Selected()
	if sel == nil || sel.LastMessage() == nil {
		return nil
	}
	req := models.ComposeRequest{
		To:              sel.LastMessage().From.Email,
		Subject:         "Re: " + sel.Subject,
		Body:            body,
		ReplyToThreadID: sel.ID,
	}
	updated, err := c.svc.Send(ctx, req)
	if err != nil {
		c.notifier.Notify("Error", "Failed to send reply")
		return err
	}
	c.mu.Lock()
	c.replaceLocked(updated)
	c.mu.Unlock()
	c.notifier.Notify("Reply sent", "Your reply has been sent successfully")
	return c.Refresh(ctx)
}

// Compose sends a new mail and refreshes the view.
func (c *StateCache) Compose(ctx context.Context, req models.ComposeRequest) error {
	if _, err := c.svc.Send(ctx, req); err != nil {
		c.notifier.Notify("Error", "Failed to send email")
		return err
	}
	c.notifier.Notify("Email sent", "Your email has been sent successfully")
	return c.Refresh(ctx)
}

// Search replaces the visible list with matching threads and resets the
// selection. An empty query reloads the current folder instead.
func (c *StateCache) Search(ctx context.Context, query string) error {
	if query == "" {
		return c.Refresh(ctx)
	}
	results, err := c.svc.SearchThreads(ctx, query)
	if err != nil {
		c.notifier.Notify("Error", "Search failed")
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.threads = results
	c.selected = nil
	c.cursor = 0
	return nil
}

// NextThread moves the cursor down the list.
func (c *StateCache) NextThread() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cursor < len(c.threads)-1 {
		c.cursor++
	}
}

// PrevThread moves the cursor up the list.
func (c *StateCache) PrevThread() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cursor > 0 {
		c.cursor--
	}
}

// OpenAtCursor selects the thread under the cursor.
func (c *StateCache) OpenAtCursor(ctx context.Context) error {
	c.mu.Lock()
	if c.cursor >= len(c.threads) {
		c.mu.Unlock()
		return nil
	}
	id := c.threads[c.cursor].ID
	c.mu.Unlock()
	return c.Select(ctx, id)
}

// replaceLocked swaps a thread in the list and selection for its
// authoritative copy. Caller holds the lock.
func (c *StateCache) replaceLocked(thread *models.EmailThread) {
	for i := range c.threads {
		if c.threads[i].ID == thread.ID {
			c.threads[i] = thread
			break
		}
	}
	if c.selected != nil && c.selected.ID == thread.ID {
		c.selected = thread
	}
}

// removeLocked drops a thread from the list; selection and cursor fall
// back to safe defaults when it was the target. Caller holds the lock.
func (c *StateCache) removeLocked(threadID string) {
	kept := c.threads[:0]
	for _, t := range c.threads {
		if t.ID != threadID {
			kept = append(kept, t)
		}
	}
	c.threads = kept
	if c.selected != nil && c.selected.ID == threadID {
		c.selected = nil
	}
	if c.cursor >= len(c.threads) {
		c.cursor = 0
	}
}

func findThread(threads []*models.EmailThread, id string) *models.EmailThread {
	for _, t := range threads {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
