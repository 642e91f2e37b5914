package mailbox

import (
	"github.com/qwertyczee/inbox-threads/models"
)

// ComputeFolderCounts derives per-folder unread counts from the thread
// set. Rules:
//
//   - every storage folder except trash sums the unread counts of its
//     threads
//   - the starred view sums unread counts of starred threads outside
//     trash, matching what listing the view returns
//   - trash stays zero: trashed content is not actionable
//
// Counts must be recomputed after every mutation touching read state,
// star state or folder membership; they are never patched incrementally
// on the service side.
func ComputeFolderCounts(threads []*models.EmailThread) models.FolderCounts {
	counts := models.FolderCounts{
		models.FolderInbox:   0,
		models.FolderSent:    0,
		models.FolderDrafts:  0,
		models.FolderSpam:    0,
		models.FolderTrash:   0,
		models.FolderStarred: 0,
	}

	for _, thread := range threads {
		if thread.Folder == models.FolderTrash {
			continue
		}
		counts[thread.Folder] += thread.UnreadCount
		if thread.IsStarred {
			counts[models.FolderStarred] += thread.UnreadCount
		}
	}
	return counts
}
