package dummydb

import (
	"sync"

	"github.com/smartbit/smartbit/core/announcement"
	"github.com/smartbit/smartbit/core/content"
	"github.com/smartbit/smartbit/core/progress"
	"github.com/smartbit/smartbit/core/subscription"
)

type (
	DB struct {
		content      *contentTables
		progress     *progressTables
		subscription *subscriptionTable
		announcement *announcementTable
	}

	contentTables struct {
		sync.RWMutex
		courses    map[int]*content.Course
		units      map[int]*content.Unit
		lessons    map[int]*content.Lesson
		challenges map[int]*content.Challenge
		options    map[int]*content.ChallengeOption
		pkCount    int
	}

	progressTables struct {
		sync.RWMutex
		users       map[string]*progress.UserProgress
		completions map[int]*progress.ChallengeProgress
		pkCount     int
	}

	subscriptionTable struct {
		sync.RWMutex
		table map[string]*subscription.UserSubscription
	}

	announcementTable struct {
		sync.RWMutex
		table   map[int]*announcement.Announcement
		pkCount int
	}
)

func Open() (*DB, error) {
	db := &DB{
		content: &contentTables{
			courses:    make(map[int]*content.Course),
			units:      make(map[int]*content.Unit),
			lessons:    make(map[int]*content.Lesson),
			challenges: make(map[int]*content.Challenge),
			options:    make(map[int]*content.ChallengeOption),
		},
		progress: &progressTables{
			users:       make(map[string]*progress.UserProgress),
			completions: make(map[int]*progress.ChallengeProgress),
		},
		subscription: &subscriptionTable{table: make(map[string]*subscription.UserSubscription)},
		announcement: &announcementTable{table: make(map[int]*announcement.Announcement)},
	}
	return db, nil
}

// SetSubscription inserts or replaces a subscription row; test seeding helper.
func (db *DB) SetSubscription(sub subscription.UserSubscription) {
	db.subscription.Lock()
	defer db.subscription.Unlock()
	db.subscription.table[sub.UserID] = &sub
}
