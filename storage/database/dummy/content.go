package dummydb

import (
	"context"
	"sort"

	"github.com/smartbit/smartbit/core/content"
)

type contentRepository struct {
	db *contentTables
}

var _ content.Repository = (*contentRepository)(nil) // interface compliance check

func NewContentRepository(db *DB) content.Repository {
	return &contentRepository{db: db.content}
}

// Courses

func (repo *contentRepository) QueryAllCourses(_ context.Context) ([]content.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	courses := make([]content.Course, 0, len(repo.db.courses))
	for _, crs := range repo.db.courses {
		courses = append(courses, *crs)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].Order < courses[j].Order })
	return courses, nil
}

func (repo *contentRepository) GetCourseByID(_ context.Context, id int) (content.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if crs, ok := repo.db.courses[id]; ok {
		return *crs, nil
	}
	return content.Course{}, content.ErrNotFound
}

func (repo *contentRepository) CreateCourse(_ context.Context, crs content.Course) (content.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	var maxOrder int
	for _, c := range repo.db.courses {
		if c.Order > maxOrder {
			maxOrder = c.Order
		}
	}
	repo.db.pkCount++
	crs.ID = repo.db.pkCount
	crs.Order = maxOrder + 1
	repo.db.courses[crs.ID] = &crs
	return crs, nil
}

func (repo *contentRepository) UpdateCourse(_ context.Context, crs content.Course) (content.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	stored, ok := repo.db.courses[crs.ID]
	if !ok {
		return content.Course{}, content.ErrNotFound
	}
	stored.Title = crs.Title
	stored.ImageSrc = crs.ImageSrc
	return *stored, nil
}

func (repo *contentRepository) DeleteCourse(_ context.Context, id int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.courses[id]; !ok {
		return content.ErrNotFound
	}
	delete(repo.db.courses, id)
	return nil
}

func (repo *contentRepository) ReorderCourses(_ context.Context, items []content.ReorderItem) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, item := range items {
		if crs, ok := repo.db.courses[item.ID]; ok {
			crs.Order = item.Order
		}
	}
	return nil
}

// Units

func (repo *contentRepository) QueryUnits(_ context.Context, courseID int) ([]content.Unit, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.queryUnits(courseID), nil
}

func (repo *contentRepository) queryUnits(courseID int) []content.Unit {
	units := make([]content.Unit, 0, len(repo.db.units))
	for _, unt := range repo.db.units {
		if courseID == 0 || unt.CourseID == courseID {
			units = append(units, *unt)
		}
	}
	sort.Slice(units, func(i, j int) bool { return units[i].Order < units[j].Order })
	return units
}

func (repo *contentRepository) GetUnitByID(_ context.Context, id int) (content.Unit, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if unt, ok := repo.db.units[id]; ok {
		return *unt, nil
	}
	return content.Unit{}, content.ErrNotFound
}

func (repo *contentRepository) CreateUnit(_ context.Context, unt content.Unit) (content.Unit, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	var maxOrder int
	for _, u := range repo.db.units {
		if u.CourseID == unt.CourseID && u.Order > maxOrder {
			maxOrder = u.Order
		}
	}
	repo.db.pkCount++
	unt.ID = repo.db.pkCount
	unt.Order = maxOrder + 1
	repo.db.units[unt.ID] = &unt
	return unt, nil
}

func (repo *contentRepository) UpdateUnit(_ context.Context, unt content.Unit) (content.Unit, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	stored, ok := repo.db.units[unt.ID]
	if !ok {
		return content.Unit{}, content.ErrNotFound
	}
	stored.Title = unt.Title
	stored.Description = unt.Description
	return *stored, nil
}

func (repo *contentRepository) DeleteUnit(_ context.Context, id int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.units[id]; !ok {
		return content.ErrNotFound
	}
	delete(repo.db.units, id)
	return nil
}

func (repo *contentRepository) ReorderUnits(_ context.Context, items []content.ReorderItem) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, item := range items {
		if unt, ok := repo.db.units[item.ID]; ok {
			unt.Order = item.Order
		}
	}
	return nil
}

// Lessons

func (repo *contentRepository) QueryLessons(_ context.Context, unitID int) ([]content.Lesson, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.queryLessons(unitID), nil
}

func (repo *contentRepository) queryLessons(unitID int) []content.Lesson {
	lessons := make([]content.Lesson, 0, len(repo.db.lessons))
	for _, lsn := range repo.db.lessons {
		if unitID == 0 || lsn.UnitID == unitID {
			lessons = append(lessons, *lsn)
		}
	}
	sort.Slice(lessons, func(i, j int) bool { return lessons[i].Order < lessons[j].Order })
	return lessons
}

func (repo *contentRepository) GetLessonByID(_ context.Context, id int) (content.Lesson, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if lsn, ok := repo.db.lessons[id]; ok {
		return *lsn, nil
	}
	return content.Lesson{}, content.ErrNotFound
}

func (repo *contentRepository) CreateLesson(_ context.Context, lsn content.Lesson) (content.Lesson, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	var maxOrder int
	for _, l := range repo.db.lessons {
		if l.UnitID == lsn.UnitID && l.Order > maxOrder {
			maxOrder = l.Order
		}
	}
	repo.db.pkCount++
	lsn.ID = repo.db.pkCount
	lsn.Order = maxOrder + 1
	repo.db.lessons[lsn.ID] = &lsn
	return lsn, nil
}

func (repo *contentRepository) UpdateLesson(_ context.Context, lsn content.Lesson) (content.Lesson, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	stored, ok := repo.db.lessons[lsn.ID]
	if !ok {
		return content.Lesson{}, content.ErrNotFound
	}
	stored.Title = lsn.Title
	return *stored, nil
}

func (repo *contentRepository) DeleteLesson(_ context.Context, id int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.lessons[id]; !ok {
		return content.ErrNotFound
	}
	delete(repo.db.lessons, id)
	return nil
}

func (repo *contentRepository) ReorderLessons(_ context.Context, items []content.ReorderItem) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, item := range items {
		if lsn, ok := repo.db.lessons[item.ID]; ok {
			lsn.Order = item.Order
		}
	}
	return nil
}

// Challenges

func (repo *contentRepository) QueryChallenges(_ context.Context, lessonID int) ([]content.Challenge, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.queryChallenges(lessonID), nil
}

func (repo *contentRepository) queryChallenges(lessonID int) []content.Challenge {
	challenges := make([]content.Challenge, 0, len(repo.db.challenges))
	for _, chl := range repo.db.challenges {
		if lessonID == 0 || chl.LessonID == lessonID {
			challenges = append(challenges, *chl)
		}
	}
	sort.Slice(challenges, func(i, j int) bool { return challenges[i].Order < challenges[j].Order })
	return challenges
}

func (repo *contentRepository) GetChallengeByID(_ context.Context, id int) (content.Challenge, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	chl, ok := repo.db.challenges[id]
	if !ok {
		return content.Challenge{}, content.ErrNotFound
	}
	out := *chl
	out.Options = repo.queryOptions(id)
	return out, nil
}

func (repo *contentRepository) QueryLessonChallenges(_ context.Context, lessonID int) ([]content.Challenge, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	challenges := repo.queryChallenges(lessonID)
	for i := range challenges {
		challenges[i].Options = repo.queryOptions(challenges[i].ID)
	}
	return challenges, nil
}

func (repo *contentRepository) CreateChallenge(_ context.Context, chl content.Challenge) (content.Challenge, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	var maxOrder int
	for _, c := range repo.db.challenges {
		if c.LessonID == chl.LessonID && c.Order > maxOrder {
			maxOrder = c.Order
		}
	}
	repo.db.pkCount++
	chl.ID = repo.db.pkCount
	chl.Order = maxOrder + 1
	repo.db.challenges[chl.ID] = &chl
	return chl, nil
}

func (repo *contentRepository) UpdateChallenge(_ context.Context, chl content.Challenge) (content.Challenge, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	stored, ok := repo.db.challenges[chl.ID]
	if !ok {
		return content.Challenge{}, content.ErrNotFound
	}
	stored.Type = chl.Type
	stored.Question = chl.Question
	return *stored, nil
}

func (repo *contentRepository) DeleteChallenge(_ context.Context, id int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.challenges[id]; !ok {
		return content.ErrNotFound
	}
	delete(repo.db.challenges, id)
	return nil
}

func (repo *contentRepository) ReorderChallenges(_ context.Context, items []content.ReorderItem) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, item := range items {
		if chl, ok := repo.db.challenges[item.ID]; ok {
			chl.Order = item.Order
		}
	}
	return nil
}

// Challenge Options

func (repo *contentRepository) QueryChallengeOptions(_ context.Context, challengeID int) ([]content.ChallengeOption, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.queryOptions(challengeID), nil
}

func (repo *contentRepository) queryOptions(challengeID int) []content.ChallengeOption {
	options := make([]content.ChallengeOption, 0)
	for _, opt := range repo.db.options {
		if opt.ChallengeID == challengeID {
			options = append(options, *opt)
		}
	}
	sort.Slice(options, func(i, j int) bool { return options[i].ID < options[j].ID })
	return options
}

func (repo *contentRepository) GetChallengeOptionByID(_ context.Context, id int) (content.ChallengeOption, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if opt, ok := repo.db.options[id]; ok {
		return *opt, nil
	}
	return content.ChallengeOption{}, content.ErrNotFound
}

func (repo *contentRepository) CreateChallengeOption(_ context.Context, opt content.ChallengeOption) (content.ChallengeOption, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.pkCount++
	opt.ID = repo.db.pkCount
	repo.db.options[opt.ID] = &opt
	return opt, nil
}

func (repo *contentRepository) UpdateChallengeOption(_ context.Context, opt content.ChallengeOption) (content.ChallengeOption, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	stored, ok := repo.db.options[opt.ID]
	if !ok {
		return content.ChallengeOption{}, content.ErrNotFound
	}
	stored.Text = opt.Text
	stored.Correct = opt.Correct
	stored.ImageSrc = opt.ImageSrc
	stored.AudioSrc = opt.AudioSrc
	return *stored, nil
}

func (repo *contentRepository) DeleteChallengeOption(_ context.Context, id int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.options[id]; !ok {
		return content.ErrNotFound
	}
	delete(repo.db.options, id)
	return nil
}

// Course tree

func (repo *contentRepository) QueryCourseTree(_ context.Context, courseID int) ([]content.UnitNode, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	tree := make([]content.UnitNode, 0)
	for _, unt := range repo.queryUnits(courseID) {
		node := content.UnitNode{Unit: unt}
		for _, lsn := range repo.queryLessons(unt.ID) {
			lsnNode := content.LessonNode{Lesson: lsn}
			for _, chl := range repo.queryChallenges(lsn.ID) {
				lsnNode.ChallengeIDs = append(lsnNode.ChallengeIDs, chl.ID)
			}
			node.Lessons = append(node.Lessons, lsnNode)
		}
		tree = append(tree, node)
	}
	return tree, nil
}
