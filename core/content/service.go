package content

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("content not found")

type (
	Repository interface {
		// courses
		QueryAllCourses(ctx context.Context) ([]Course, error)
		GetCourseByID(ctx context.Context, id int) (Course, error)
		// CreateCourse appends the course at max(order)+1.
		CreateCourse(ctx context.Context, crs Course) (Course, error)
		UpdateCourse(ctx context.Context, crs Course) (Course, error)
		DeleteCourse(ctx context.Context, id int) error
		ReorderCourses(ctx context.Context, items []ReorderItem) error

		// units; courseID == 0 matches all
		QueryUnits(ctx context.Context, courseID int) ([]Unit, error)
		GetUnitByID(ctx context.Context, id int) (Unit, error)
		// CreateUnit appends the unit at max(order)+1 within its course.
		CreateUnit(ctx context.Context, unt Unit) (Unit, error)
		UpdateUnit(ctx context.Context, unt Unit) (Unit, error)
		DeleteUnit(ctx context.Context, id int) error
		ReorderUnits(ctx context.Context, items []ReorderItem) error

		// lessons; unitID == 0 matches all
		QueryLessons(ctx context.Context, unitID int) ([]Lesson, error)
		GetLessonByID(ctx context.Context, id int) (Lesson, error)
		CreateLesson(ctx context.Context, lsn Lesson) (Lesson, error)
		UpdateLesson(ctx context.Context, lsn Lesson) (Lesson, error)
		DeleteLesson(ctx context.Context, id int) error
		ReorderLessons(ctx context.Context, items []ReorderItem) error

		// challenges; lessonID == 0 matches all
		QueryChallenges(ctx context.Context, lessonID int) ([]Challenge, error)
		// GetChallengeByID returns the challenge with its options loaded.
		GetChallengeByID(ctx context.Context, id int) (Challenge, error)
		// QueryLessonChallenges returns the lesson's challenges with options, in order.
		QueryLessonChallenges(ctx context.Context, lessonID int) ([]Challenge, error)
		CreateChallenge(ctx context.Context, chl Challenge) (Challenge, error)
		UpdateChallenge(ctx context.Context, chl Challenge) (Challenge, error)
		DeleteChallenge(ctx context.Context, id int) error
		ReorderChallenges(ctx context.Context, items []ReorderItem) error

		// challenge options
		QueryChallengeOptions(ctx context.Context, challengeID int) ([]ChallengeOption, error)
		GetChallengeOptionByID(ctx context.Context, id int) (ChallengeOption, error)
		CreateChallengeOption(ctx context.Context, opt ChallengeOption) (ChallengeOption, error)
		UpdateChallengeOption(ctx context.Context, opt ChallengeOption) (ChallengeOption, error)
		DeleteChallengeOption(ctx context.Context, id int) error

		// QueryCourseTree returns the course's units with nested lessons
		// and challenge ids, everything in authored order.
		QueryCourseTree(ctx context.Context, courseID int) ([]UnitNode, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Courses

func (svc *Service) QueryCourses(ctx context.Context) ([]Course, error) {
	return svc.repo.QueryAllCourses(ctx)
}

func (svc *Service) GetCourse(ctx context.Context, id int) (Course, error) {
	return svc.repo.GetCourseByID(ctx, id)
}

func (svc *Service) CreateCourse(ctx context.Context, nc NewCourse) (Course, error) {
	return svc.repo.CreateCourse(ctx, Course{Title: nc.Title, ImageSrc: nc.ImageSrc})
}

func (svc *Service) UpdateCourse(ctx context.Context, id int, uc UpdateCourse) (Course, error) {
	return svc.repo.UpdateCourse(ctx, Course{ID: id, Title: uc.Title, ImageSrc: uc.ImageSrc})
}

func (svc *Service) DeleteCourse(ctx context.Context, id int) error {
	return svc.repo.DeleteCourse(ctx, id)
}

func (svc *Service) ReorderCourses(ctx context.Context, r Reorder) error {
	if len(r.Items) == 0 {
		return nil
	}
	return svc.repo.ReorderCourses(ctx, r.Items)
}

// Units

func (svc *Service) QueryUnits(ctx context.Context, courseID int) ([]Unit, error) {
	return svc.repo.QueryUnits(ctx, courseID)
}

func (svc *Service) CreateUnit(ctx context.Context, nu NewUnit) (Unit, error) {
	if _, err := svc.repo.GetCourseByID(ctx, nu.CourseID); err != nil {
		return Unit{}, err
	}
	return svc.repo.CreateUnit(ctx, Unit{CourseID: nu.CourseID, Title: nu.Title, Description: nu.Description})
}

func (svc *Service) GetUnit(ctx context.Context, id int) (Unit, error) {
	return svc.repo.GetUnitByID(ctx, id)
}

func (svc *Service) UpdateUnit(ctx context.Context, id int, uu UpdateUnit) (Unit, error) {
	return svc.repo.UpdateUnit(ctx, Unit{ID: id, Title: uu.Title, Description: uu.Description})
}

func (svc *Service) DeleteUnit(ctx context.Context, id int) error {
	return svc.repo.DeleteUnit(ctx, id)
}

func (svc *Service) ReorderUnits(ctx context.Context, r Reorder) error {
	if len(r.Items) == 0 {
		return nil
	}
	return svc.repo.ReorderUnits(ctx, r.Items)
}

// Lessons

func (svc *Service) QueryLessons(ctx context.Context, unitID int) ([]Lesson, error) {
	return svc.repo.QueryLessons(ctx, unitID)
}

func (svc *Service) GetLesson(ctx context.Context, id int) (Lesson, error) {
	return svc.repo.GetLessonByID(ctx, id)
}

func (svc *Service) CreateLesson(ctx context.Context, nl NewLesson) (Lesson, error) {
	if _, err := svc.repo.GetUnitByID(ctx, nl.UnitID); err != nil {
		return Lesson{}, err
	}
	return svc.repo.CreateLesson(ctx, Lesson{UnitID: nl.UnitID, Title: nl.Title})
}

func (svc *Service) UpdateLesson(ctx context.Context, id int, ul UpdateLesson) (Lesson, error) {
	return svc.repo.UpdateLesson(ctx, Lesson{ID: id, Title: ul.Title})
}

func (svc *Service) DeleteLesson(ctx context.Context, id int) error {
	return svc.repo.DeleteLesson(ctx, id)
}

func (svc *Service) ReorderLessons(ctx context.Context, r Reorder) error {
	if len(r.Items) == 0 {
		return nil
	}
	return svc.repo.ReorderLessons(ctx, r.Items)
}

// Challenges

func (svc *Service) QueryChallenges(ctx context.Context, lessonID int) ([]Challenge, error) {
	return svc.repo.QueryChallenges(ctx, lessonID)
}

func (svc *Service) GetChallenge(ctx context.Context, id int) (Challenge, error) {
	return svc.repo.GetChallengeByID(ctx, id)
}

func (svc *Service) QueryLessonChallenges(ctx context.Context, lessonID int) ([]Challenge, error) {
	return svc.repo.QueryLessonChallenges(ctx, lessonID)
}

func (svc *Service) CreateChallenge(ctx context.Context, nc NewChallenge) (Challenge, error) {
	if _, err := svc.repo.GetLessonByID(ctx, nc.LessonID); err != nil {
		return Challenge{}, err
	}
	return svc.repo.CreateChallenge(ctx, Challenge{LessonID: nc.LessonID, Type: nc.Type, Question: nc.Question})
}

func (svc *Service) UpdateChallenge(ctx context.Context, id int, uc UpdateChallenge) (Challenge, error) {
	return svc.repo.UpdateChallenge(ctx, Challenge{ID: id, Type: uc.Type, Question: uc.Question})
}

func (svc *Service) DeleteChallenge(ctx context.Context, id int) error {
	return svc.repo.DeleteChallenge(ctx, id)
}

func (svc *Service) ReorderChallenges(ctx context.Context, r Reorder) error {
	if len(r.Items) == 0 {
		return nil
	}
	return svc.repo.ReorderChallenges(ctx, r.Items)
}

// Challenge Options

func (svc *Service) QueryChallengeOptions(ctx context.Context, challengeID int) ([]ChallengeOption, error) {
	return svc.repo.QueryChallengeOptions(ctx, challengeID)
}

func (svc *Service) GetChallengeOption(ctx context.Context, id int) (ChallengeOption, error) {
	return svc.repo.GetChallengeOptionByID(ctx, id)
}

func (svc *Service) CreateChallengeOption(ctx context.Context, no NewChallengeOption) (ChallengeOption, error) {
	if _, err := svc.repo.GetChallengeByID(ctx, no.ChallengeID); err != nil {
		return ChallengeOption{}, err
	}
	opt := ChallengeOption{
		ChallengeID: no.ChallengeID,
		Text:        no.Text,
		Correct:     *no.Correct,
		ImageSrc:    no.ImageSrc,
		AudioSrc:    no.AudioSrc,
	}
	return svc.repo.CreateChallengeOption(ctx, opt)
}

func (svc *Service) UpdateChallengeOption(ctx context.Context, id int, uo UpdateChallengeOption) (ChallengeOption, error) {
	opt := ChallengeOption{
		ID:       id,
		Text:     uo.Text,
		Correct:  *uo.Correct,
		ImageSrc: uo.ImageSrc,
		AudioSrc: uo.AudioSrc,
	}
	return svc.repo.UpdateChallengeOption(ctx, opt)
}

func (svc *Service) DeleteChallengeOption(ctx context.Context, id int) error {
	return svc.repo.DeleteChallengeOption(ctx, id)
}

// CourseTree returns the full authored tree for a course.
func (svc *Service) CourseTree(ctx context.Context, courseID int) ([]UnitNode, error) {
	return svc.repo.QueryCourseTree(ctx, courseID)
}
