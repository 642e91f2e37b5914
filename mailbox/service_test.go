package mailbox

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/qwertyczee/inbox-threads/models"
	"github.com/qwertyczee/inbox-threads/storage"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testOwner = models.User{Name: "Alex Johnson", Email: "alex.johnson@email.com"}

// newTestService builds a seeded service with latency disabled so tests
// run instantly.
func newTestService(t *testing.T) *Service {
	t.Helper()
	store := storage.NewMessageStore()
	require.NoError(t, storage.Seed(store, testOwner))
	return NewService(store, testOwner, nil, LatencyProfile{})
}

func threadIDs(threads []*models.EmailThread) []string {
	out := make([]string, len(threads))
	for i, thread := range threads {
		out[i] = thread.ID
	}
	return out
}

func TestListThreadsInboxOrdering(t *testing.T) {
	svc := newTestService(t)

	threads, err := svc.ListThreads(context.Background(), models.FolderInbox)
	require.NoError(t, err)

	// Newest activity first.
	assert.Equal(t, []string{"t1", "t2", "t3", "t4", "t5"}, threadIDs(threads))
	for i := 1; i < len(threads); i++ {
		assert.False(t, threads[i].LastMessageAt.After(threads[i-1].LastMessageAt))
	}
}

func TestListThreadsStarredView(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	threads, err := svc.ListThreads(ctx, models.FolderStarred)
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t3", "t4"}, threadIDs(threads))

	// A starred thread moved to trash leaves the starred view but keeps
	// its flag.
	moved, err := svc.MoveToFolder(ctx, "t3", models.FolderTrash)
	require.NoError(t, err)
	assert.True(t, moved.IsStarred)

	threads, err = svc.ListThreads(ctx, models.FolderStarred)
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t4"}, threadIDs(threads))
}

func TestListThreadsInvalidFolder(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.ListThreads(context.Background(), models.Folder("junk"))
	assert.ErrorIs(t, err, ErrInvalidFolder)
}

func TestGetThread(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	thread, err := svc.GetThread(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Q4 Marketing Strategy Review", thread.Subject)
	assert.Equal(t, models.FolderInbox, thread.Folder)
	assert.Len(t, thread.Messages, 3)
	assert.Equal(t, 2, thread.UnreadCount)

	_, err = svc.GetThread(ctx, "missing")
	assert.ErrorIs(t, err, ErrThreadNotFound)
}

func TestFolderCountsSeededMailbox(t *testing.T) {
	svc := newTestService(t)

	counts, err := svc.FolderCounts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, counts[models.FolderInbox])
	assert.Equal(t, 0, counts[models.FolderSent])
	assert.Equal(t, 0, counts[models.FolderDrafts])
	assert.Equal(t, 1, counts[models.FolderSpam])
	assert.Equal(t, 0, counts[models.FolderTrash])
	assert.Equal(t, 2, counts[models.FolderStarred])
}

func TestMarkReadReturnsUpdatedThread(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	thread, err := svc.MarkRead(ctx, "t1")
	require.NoError(t, err)
	assert.Zero(t, thread.UnreadCount)
	for _, msg := range thread.Messages {
		assert.True(t, msg.IsRead)
	}

	counts, err := svc.FolderCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[models.FolderInbox])

	_, err = svc.MarkRead(ctx, "missing")
	assert.ErrorIs(t, err, ErrThreadNotFound)
}

func TestToggleStarRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// t2 starts unstarred.
	thread, err := svc.ToggleStar(ctx, "t2")
	require.NoError(t, err)
	assert.True(t, thread.IsStarred)

	thread, err = svc.ToggleStar(ctx, "t2")
	require.NoError(t, err)
	assert.False(t, thread.IsStarred)

	_, err = svc.ToggleStar(ctx, "missing")
	assert.ErrorIs(t, err, ErrThreadNotFound)
}

func TestToggleStarConcurrentCallsSerialize(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// An even number of toggles must land back on the initial state.
	const toggles = 10
	var wg sync.WaitGroup
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ToggleStar(ctx, "t2")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	thread, err := svc.GetThread(ctx, "t2")
	require.NoError(t, err)
	assert.False(t, thread.IsStarred)
}

func TestMoveToFolderPreservesFlags(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	thread, err := svc.MoveToFolder(ctx, "t1", models.FolderSpam)
	require.NoError(t, err)
	assert.Equal(t, models.FolderSpam, thread.Folder)
	assert.True(t, thread.IsStarred)
	assert.Equal(t, 2, thread.UnreadCount)

	_, err = svc.MoveToFolder(ctx, "t1", models.FolderStarred)
	assert.ErrorIs(t, err, ErrInvalidFolder)

	_, err = svc.MoveToFolder(ctx, "missing", models.FolderTrash)
	assert.ErrorIs(t, err, ErrThreadNotFound)
}

func TestDeleteThreadIsFinal(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.DeleteThread(ctx, "t1"))

	_, err := svc.GetThread(ctx, "t1")
	assert.ErrorIs(t, err, ErrThreadNotFound)

	for _, folder := range models.StorageFolders {
		threads, err := svc.ListThreads(ctx, folder)
		require.NoError(t, err)
		assert.NotContains(t, threadIDs(threads), "t1")
	}

	assert.ErrorIs(t, svc.DeleteThread(ctx, "t1"), ErrThreadNotFound)
}

func TestSendNewThread(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	thread, err := svc.Send(ctx, models.ComposeRequest{
		To:      "sarah.chen@company.com",
		Subject: "Lunch next week?",
		Body:    "Are you free on Tuesday?",
	})
	require.NoError(t, err)

	assert.Equal(t, models.FolderSent, thread.Folder)
	require.Len(t, thread.Messages, 1)
	assert.True(t, strings.HasPrefix(thread.ID, "t-"))
	assert.True(t, strings.HasPrefix(thread.Messages[0].ID, "m-"))
	assert.Equal(t, testOwner.Addr(), thread.Messages[0].From)
	assert.Zero(t, thread.UnreadCount, "own messages are born read")
	assert.NotEmpty(t, thread.Snippet)

	sent, err := svc.ListThreads(ctx, models.FolderSent)
	require.NoError(t, err)
	assert.Contains(t, threadIDs(sent), thread.ID)
}

func TestSendReplyAppendsToThread(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	before, err := svc.GetThread(ctx, "t2")
	require.NoError(t, err)

	thread, err := svc.Send(ctx, models.ComposeRequest{
		To:              "mike.r@techstartup.io",
		Subject:         "Re: Partnership Opportunity",
		Body:            "Happy to set up a call.",
		ReplyToThreadID: "t2",
	})
	require.NoError(t, err)

	assert.Equal(t, "t2", thread.ID)
	assert.Len(t, thread.Messages, len(before.Messages)+1)
	assert.True(t, thread.LastMessageAt.After(before.LastMessageAt))
	assert.Equal(t, before.Folder, thread.Folder, "replies keep the thread's folder")

	// Prior messages are untouched.
	for i, msg := range before.Messages {
		assert.Equal(t, msg.ID, thread.Messages[i].ID)
		assert.Equal(t, msg.Body, thread.Messages[i].Body)
	}
}

func TestSendReplyToMissingThread(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Send(context.Background(), models.ComposeRequest{
		To:              "nobody@example.com",
		Subject:         "Re: whatever",
		Body:            "body",
		ReplyToThreadID: "missing",
	})
	assert.ErrorIs(t, err, ErrThreadNotFound)
}

func TestSendValidation(t *testing.T) {
	tests := []struct {
		name string
		req  models.ComposeRequest
		want error
	}{
		{"empty recipient", models.ComposeRequest{Subject: "s", Body: "b"}, ErrEmptyRecipient},
		{"blank recipient", models.ComposeRequest{To: "   ", Subject: "s", Body: "b"}, ErrEmptyRecipient},
		{"empty subject", models.ComposeRequest{To: "a@b.com", Body: "b"}, ErrEmptySubject},
		{"empty body", models.ComposeRequest{To: "a@b.com", Subject: "s"}, ErrEmptyBody},
	}

	svc := newTestService(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Send(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestSendSanitizesBody(t *testing.T) {
	svc := newTestService(t)

	thread, err := svc.Send(context.Background(), models.ComposeRequest{
		To:      "a@b.com",
		Subject: "Heads up",
		Body:    `<p>hello</p><script>alert("x")</script>`,
	})
	require.NoError(t, err)
	assert.NotContains(t, thread.Messages[0].Body, "<script>")
	assert.Contains(t, thread.Messages[0].Body, "hello")
}

func TestSearchThreads(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Participant name match.
	threads, err := svc.SearchThreads(ctx, "sarah")
	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Equal(t, "t1", threads[0].ID)
	assert.Equal(t, "Q4 Marketing Strategy Review", threads[0].Subject)

	// Subject match, case-insensitive.
	threads, err = svc.SearchThreads(ctx, "PARTNERSHIP")
	require.NoError(t, err)
	assert.Equal(t, []string{"t2"}, threadIDs(threads))

	// No match.
	threads, err = svc.SearchThreads(ctx, "zzzz-no-such-thing")
	require.NoError(t, err)
	assert.Empty(t, threads)
}

func TestFaultInjectorSurfacesTransientError(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	svc.SetFaultInjector(func(op string) error {
		if op == "mark_read" {
			return fmt.Errorf("simulated outage: %w", ErrTransient)
		}
		return nil
	})

	_, err := svc.MarkRead(ctx, "t1")
	require.Error(t, err)
	assert.True(t, IsRetryable(err))

	// The store was never touched.
	svc.SetFaultInjector(nil)
	thread, err := svc.GetThread(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 2, thread.UnreadCount)
}

func TestLatencyHonorsContextCancellation(t *testing.T) {
	store := storage.NewMessageStore()
	require.NoError(t, storage.Seed(store, testOwner))
	svc := NewService(store, testOwner, nil, LatencyProfile{
		Enabled: true,
		Get:     5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := svc.GetThread(ctx, "t1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestMutationsPublishEvents(t *testing.T) {
	store := storage.NewMessageStore()
	require.NoError(t, storage.Seed(store, testOwner))
	hub := NewHub()
	defer hub.Close()
	svc := NewService(store, testOwner, hub, LatencyProfile{})

	id, events := hub.Subscribe()
	defer hub.Unsubscribe(id)
	ctx := context.Background()

	_, err := svc.MarkRead(ctx, "t1")
	require.NoError(t, err)
	ev := <-events
	assert.Equal(t, EventThreadUpdated, ev.Type)
	assert.Equal(t, "t1", ev.ThreadID)
	require.NotNil(t, ev.Thread)
	assert.Zero(t, ev.Thread.UnreadCount)

	// Marking an already-read thread again changes nothing and stays quiet.
	_, err = svc.MarkRead(ctx, "t1")
	require.NoError(t, err)
	select {
	case ev := <-events:
		t.Fatalf("unexpected event %v", ev.Type)
	default:
	}

	require.NoError(t, svc.DeleteThread(ctx, "t5"))
	ev = <-events
	assert.Equal(t, EventThreadDeleted, ev.Type)
	assert.Equal(t, "t5", ev.ThreadID)
	assert.Nil(t, ev.Thread)
}
