package core

import "strconv"

// Cache keys the presentation layer holds per user. A progress mutation
// marks a subset of them stale; invalidation itself happens downstream.
const (
	CacheKeyShop        = "shop"
	CacheKeyLearn       = "learn"
	CacheKeyQuests      = "quests"
	CacheKeyLeaderboard = "leaderboard"
)

func CacheKeyLesson(lessonID int) string {
	return "lesson:" + strconv.Itoa(lessonID)
}

type (
	// ProgressEvent signals that a user's persisted progress changed and
	// lists the presentation caches that must be considered stale.
	ProgressEvent struct {
		UserID    string
		StaleKeys []string
	}

	// EventService is any service that can broadcast progress events.
	EventService interface {
		ProgressChanged(evt ProgressEvent)
	}
)
