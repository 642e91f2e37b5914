package mailbox

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qwertyczee/inbox-threads/models"
)

func countThread(folder models.Folder, unread int, starred bool) *models.EmailThread {
	return &models.EmailThread{
		ID:          "t-" + string(folder),
		Folder:      folder,
		UnreadCount: unread,
		IsStarred:   starred,
	}
}

func TestComputeFolderCountsEmpty(t *testing.T) {
	counts := ComputeFolderCounts(nil)

	// Every folder key is present even with no threads.
	assert.Len(t, counts, 6)
	for folder, n := range counts {
		assert.Zero(t, n, "folder %s", folder)
	}
}

func TestComputeFolderCountsSumsUnread(t *testing.T) {
	counts := ComputeFolderCounts([]*models.EmailThread{
		countThread(models.FolderInbox, 2, false),
		{ID: "x", Folder: models.FolderInbox, UnreadCount: 1},
		countThread(models.FolderSpam, 1, false),
		countThread(models.FolderSent, 0, false),
	})

	assert.Equal(t, 3, counts[models.FolderInbox])
	assert.Equal(t, 1, counts[models.FolderSpam])
	assert.Equal(t, 0, counts[models.FolderSent])
	assert.Equal(t, 0, counts[models.FolderStarred])
}

func TestComputeFolderCountsStarredView(t *testing.T) {
	counts := ComputeFolderCounts([]*models.EmailThread{
		countThread(models.FolderInbox, 2, true),
		countThread(models.FolderSent, 1, true),
		countThread(models.FolderInbox, 4, false),
	})

	// Starred aggregates across folders; only starred threads count.
	assert.Equal(t, 3, counts[models.FolderStarred])
}

func TestComputeFolderCountsConservation(t *testing.T) {
	threads := []*models.EmailThread{
		countThread(models.FolderInbox, 2, true),
		countThread(models.FolderSpam, 1, false),
		countThread(models.FolderSent, 1, false),
		countThread(models.FolderTrash, 7, true),
	}

	counts := ComputeFolderCounts(threads)

	// Per-folder unread sums (starred view aside) add up to the total
	// unread across non-trash threads.
	perFolder := 0
	for _, folder := range models.StorageFolders {
		perFolder += counts[folder]
	}
	total := 0
	for _, thread := range threads {
		if thread.Folder != models.FolderTrash {
			total += thread.UnreadCount
		}
	}
	assert.Equal(t, total, perFolder)
}

func TestComputeFolderCountsTrashStaysZero(t *testing.T) {
	counts := ComputeFolderCounts([]*models.EmailThread{
		countThread(models.FolderTrash, 5, true),
	})

	assert.Equal(t, 0, counts[models.FolderTrash])
	assert.Equal(t, 0, counts[models.FolderStarred], "trashed threads leave the starred view")
}
