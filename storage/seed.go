package storage

import (
	"time"

	"github.com/qwertyczee/inbox-threads/models"
	"github.com/qwertyczee/inbox-threads/utils"
)

// Seed fills the store with the demo mailbox: a handful of inbox threads,
// one spam thread and one sent thread, timestamped relative to now so the
// list view always looks fresh.
func Seed(store *MessageStore, owner models.User) error {
	now := time.Now()
	me := owner.Addr()

	sarah := models.Address{Name: "Sarah Chen", Email: "sarah.chen@company.com"}
	mike := models.Address{Name: "Mike Rodriguez", Email: "mike.r@techstartup.io"}
	emily := models.Address{Name: "Emily Watson", Email: "emily.watson@design.co"}
	james := models.Address{Name: "James Miller", Email: "j.miller@investors.com"}
	news := models.Address{Name: "Newsletter", Email: "news@techweekly.com"}
	spam := models.Address{Name: "Spam Bot", Email: "winner@lottery-fake.com"}
	team := models.Address{Name: "Team", Email: "team@company.com"}

	type seedMsg struct {
		msg    models.Email
		folder models.Folder
	}

	msgs := []seedMsg{
		{folder: models.FolderInbox, msg: models.Email{
			ID: "e1", ThreadID: "t1",
			From: sarah, To: []models.Address{me},
			Subject: "Q4 Marketing Strategy Review",
			Body: "Hi Alex,\n\nI wanted to follow up on our discussion about the Q4 marketing strategy. " +
				"I've attached the updated proposal with the changes we discussed.\n\n" +
				"Key highlights:\n- Increased budget allocation for digital campaigns\n" +
				"- New influencer partnership opportunities\n- Updated timeline for product launches\n\n" +
				"Let me know your thoughts when you get a chance.\n\nBest,\nSarah",
			Date: now.Add(-30 * time.Minute), IsRead: false, IsStarred: true,
		}},
		{folder: models.FolderInbox, msg: models.Email{
			ID: "e2", ThreadID: "t1",
			From: me, To: []models.Address{sarah},
			Subject: "Re: Q4 Marketing Strategy Review",
			Body: "Thanks Sarah,\n\nThis looks great! I particularly like the influencer partnership ideas. " +
				"Can we schedule a call tomorrow to discuss the budget details?\n\nAlex",
			Date: now.Add(-20 * time.Minute), IsRead: true,
		}},
		{folder: models.FolderInbox, msg: models.Email{
			ID: "e3", ThreadID: "t1",
			From: sarah, To: []models.Address{me},
			Subject: "Re: Q4 Marketing Strategy Review",
			Body:    "Sounds perfect! How about 2pm? I'll send over a calendar invite.\n\nSarah",
			Date:    now.Add(-5 * time.Minute), IsRead: false,
		}},
		{folder: models.FolderInbox, msg: models.Email{
			ID: "e4", ThreadID: "t2",
			From: mike, To: []models.Address{me},
			Subject: "Partnership Opportunity",
			Body: "Hello Alex,\n\nI hope this email finds you well. I'm reaching out because I believe " +
				"there's a great opportunity for our companies to collaborate.\n\n" +
				"We've developed a new AI-powered analytics tool that could complement your existing " +
				"product suite. Would you be open to a brief call to explore potential synergies?\n\n" +
				"Looking forward to hearing from you.\n\nBest regards,\nMike Rodriguez\nCEO, TechStartup.io",
			Date: now.Add(-2 * time.Hour), IsRead: false,
		}},
		{folder: models.FolderInbox, msg: models.Email{
			ID: "e5", ThreadID: "t3",
			From: emily, To: []models.Address{me},
			Subject: "Design Review: New Dashboard Mockups",
			Body: "Hi Alex,\n\nThe design team has completed the first round of mockups for the new " +
				"dashboard. I've attached the Figma links below for your review.\n\n" +
				"Please take a look and let us know if there are any changes or adjustments needed " +
				"before we move to the next phase.\n\nThanks!\nEmily",
			Date: now.Add(-5 * time.Hour), IsRead: true, IsStarred: true,
		}},
		{folder: models.FolderInbox, msg: models.Email{
			ID: "e6", ThreadID: "t4",
			From: james, To: []models.Address{me},
			Subject: "Series B Discussion Follow-up",
			Body: "Alex,\n\nThank you for the presentation yesterday. The team was impressed with your " +
				"growth metrics and product roadmap.\n\nWe'd like to schedule a follow-up meeting to " +
				"discuss terms. Please let me know your availability next week.\n\n" +
				"James Miller\nPartner, Investors Capital",
			Date: now.Add(-24 * time.Hour), IsRead: true, IsStarred: true,
		}},
		{folder: models.FolderInbox, msg: models.Email{
			ID: "e7", ThreadID: "t5",
			From: news, To: []models.Address{me},
			Subject: "This week in tech: AI breakthroughs and more",
			Body:    "Weekly digest of tech news...",
			Date:    now.Add(-48 * time.Hour), IsRead: true,
		}},
		{folder: models.FolderSpam, msg: models.Email{
			ID: "e8", ThreadID: "t6",
			From: spam, To: []models.Address{me},
			Subject: "You won $1,000,000!!!",
			Body:    "Congratulations! You've been selected...",
			Date:    now.Add(-72 * time.Hour), IsRead: false,
		}},
		{folder: models.FolderSent, msg: models.Email{
			ID: "e9", ThreadID: "t7",
			From: me, To: []models.Address{team},
			Subject: "Team Offsite Planning",
			Body: "Hi everyone,\n\nI wanted to start the conversation about our upcoming team offsite. " +
				"Please share your availability for the last week of November.\n\nThanks,\nAlex",
			Date: now.Add(-3 * time.Hour), IsRead: true,
		}},
	}

	for _, sm := range msgs {
		sm.msg.Preview = utils.Preview(sm.msg.Body)
		var err error
		if store.HasThread(sm.msg.ThreadID) {
			err = store.AppendToThread(sm.msg)
		} else {
			err = store.CreateThread(sm.msg, sm.folder)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
