package progress

import (
	"context"

	"github.com/smartbit/smartbit/core/content"
)

type (
	LearnLesson struct {
		ID        int    `json:"id"`
		Title     string `json:"title"`
		Order     int    `json:"order"`
		Completed bool   `json:"completed"`
	}

	LearnUnit struct {
		ID          int           `json:"id"`
		Title       string        `json:"title"`
		Description string        `json:"description"`
		Order       int           `json:"order"`
		Lessons     []LearnLesson `json:"lessons"`
	}

	ActiveLesson struct {
		ID     int    `json:"id"`
		Title  string `json:"title"`
		UnitID int    `json:"unitId"`
	}

	HeartsPoints struct {
		Hearts int `json:"hearts"`
		Points int `json:"points"`
	}

	SubscriptionStatus struct {
		IsActive bool `json:"isActive"`
	}

	// LearnData is the course map: units with per-lesson completion, the
	// first lesson still carrying uncompleted challenges, and how far
	// into it the user is.
	LearnData struct {
		Units                  []LearnUnit         `json:"units"`
		ActiveLesson           *ActiveLesson       `json:"activeLesson"`
		ActiveLessonPercentage int                 `json:"activeLessonPercentage"`
		UserProgress           HeartsPoints        `json:"userProgress"`
		UserSubscription       *SubscriptionStatus `json:"userSubscription"`
	}

	// LessonChallenge is a Challenge annotated with the user's completion.
	LessonChallenge struct {
		content.Challenge
		Completed bool `json:"completed"`
	}

	LessonDetail struct {
		ID         int               `json:"id"`
		Title      string            `json:"title"`
		UnitID     int               `json:"unitId"`
		Order      int               `json:"order"`
		Challenges []LessonChallenge `json:"challenges"`
	}

	LessonData struct {
		Lesson           LessonDetail        `json:"lesson"`
		UserProgress     HeartsPoints        `json:"userProgress"`
		UserSubscription *SubscriptionStatus `json:"userSubscription"`
	}
)

// Learn assembles the course map for the user's active course.
// ErrNoActiveCourse when none is selected yet.
func (svc *Service) Learn(ctx context.Context, userID string) (LearnData, error) {
	up, err := svc.repo.GetUserProgress(ctx, userID)
	if err != nil {
		return LearnData{}, err
	}
	if !up.ActiveCourseID.Valid {
		return LearnData{}, ErrNoActiveCourse
	}

	tree, err := svc.content.QueryCourseTree(ctx, int(up.ActiveCourseID.Int))
	if err != nil {
		return LearnData{}, err
	}
	completed, err := svc.repo.QueryCompletedChallengeIDs(ctx, userID)
	if err != nil {
		return LearnData{}, err
	}

	data := LearnData{
		Units:        make([]LearnUnit, 0, len(tree)),
		UserProgress: HeartsPoints{Hearts: up.Hearts, Points: up.Points},
	}

	var active *content.LessonNode
	var activeUnitID int
	for _, unit := range tree {
		lu := LearnUnit{
			ID:          unit.ID,
			Title:       unit.Title,
			Description: unit.Description,
			Order:       unit.Order,
			Lessons:     make([]LearnLesson, 0, len(unit.Lessons)),
		}
		for i, lsn := range unit.Lessons {
			done := lessonCompleted(lsn, completed)
			lu.Lessons = append(lu.Lessons, LearnLesson{
				ID:        lsn.ID,
				Title:     lsn.Title,
				Order:     lsn.Order,
				Completed: done,
			})
			if active == nil && !done && len(lsn.ChallengeIDs) > 0 {
				active = &unit.Lessons[i]
				activeUnitID = unit.ID
			}
		}
		data.Units = append(data.Units, lu)
	}

	if active != nil {
		data.ActiveLesson = &ActiveLesson{ID: active.ID, Title: active.Title, UnitID: activeUnitID}
		data.ActiveLessonPercentage = lessonPercentage(*active, completed)
	}

	status, err := svc.subs.GetStatus(ctx, userID)
	if err != nil {
		return LearnData{}, err
	}
	data.UserSubscription = &SubscriptionStatus{IsActive: status.IsActive}

	return data, nil
}

// Lesson returns a lesson with its ordered challenges, options and the
// user's completion flags.
func (svc *Service) Lesson(ctx context.Context, userID string, lessonID int) (LessonData, error) {
	up, err := svc.repo.GetUserProgress(ctx, userID)
	if err != nil {
		return LessonData{}, err
	}

	lsn, err := svc.content.GetLessonByID(ctx, lessonID)
	if err != nil {
		return LessonData{}, err
	}
	challenges, err := svc.content.QueryLessonChallenges(ctx, lessonID)
	if err != nil {
		return LessonData{}, err
	}
	completed, err := svc.repo.QueryCompletedChallengeIDs(ctx, userID)
	if err != nil {
		return LessonData{}, err
	}

	detail := LessonDetail{
		ID:         lsn.ID,
		Title:      lsn.Title,
		UnitID:     lsn.UnitID,
		Order:      lsn.Order,
		Challenges: make([]LessonChallenge, 0, len(challenges)),
	}
	for _, chl := range challenges {
		detail.Challenges = append(detail.Challenges, LessonChallenge{
			Challenge: chl,
			Completed: completed[chl.ID],
		})
	}

	status, err := svc.subs.GetStatus(ctx, userID)
	if err != nil {
		return LessonData{}, err
	}

	return LessonData{
		Lesson:           detail,
		UserProgress:     HeartsPoints{Hearts: up.Hearts, Points: up.Points},
		UserSubscription: &SubscriptionStatus{IsActive: status.IsActive},
	}, nil
}

// lessonCompleted mirrors the course map rule: a lesson counts completed
// when every one of its challenges has a completion row. A lesson with no
// challenges authored yet counts completed so it never blocks the map.
func lessonCompleted(lsn content.LessonNode, completed map[int]bool) bool {
	for _, id := range lsn.ChallengeIDs {
		if !completed[id] {
			return false
		}
	}
	return true
}

func lessonPercentage(lsn content.LessonNode, completed map[int]bool) int {
	if len(lsn.ChallengeIDs) == 0 {
		return 0
	}
	var done int
	for _, id := range lsn.ChallengeIDs {
		if completed[id] {
			done++
		}
	}
	return done * 100 / len(lsn.ChallengeIDs)
}
