package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/smartbit/smartbit/core/content"
)

type contentRepository struct {
	db *sqlx.DB
}

var _ content.Repository = (*contentRepository)(nil) // interface compliance check

func NewContentRepository(db *sqlx.DB) content.Repository {
	return &contentRepository{db: db}
}

// Courses

func (repo *contentRepository) QueryAllCourses(ctx context.Context) ([]content.Course, error) {
	var courses []content.Course
	err := repo.db.SelectContext(ctx, &courses, `SELECT * FROM courses ORDER BY "order"`)
	return courses, errors.Wrap(err, "querying courses")
}

func (repo *contentRepository) GetCourseByID(ctx context.Context, id int) (content.Course, error) {
	var crs content.Course
	err := repo.db.GetContext(ctx, &crs, `SELECT * FROM courses WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return content.Course{}, content.ErrNotFound
	}
	return crs, errors.Wrap(err, "getting course")
}

func (repo *contentRepository) CreateCourse(ctx context.Context, crs content.Course) (content.Course, error) {
	var created content.Course
	err := repo.db.GetContext(ctx, &created, `
		INSERT INTO courses (title, image_src, "order")
		VALUES ($1, $2, (SELECT COALESCE(MAX("order"), 0) + 1 FROM courses))
		RETURNING *`,
		crs.Title, crs.ImageSrc,
	)
	return created, errors.Wrap(err, "creating course")
}

func (repo *contentRepository) UpdateCourse(ctx context.Context, crs content.Course) (content.Course, error) {
	var updated content.Course
	err := repo.db.GetContext(ctx, &updated, `
		UPDATE courses SET title = $2, image_src = $3 WHERE id = $1
		RETURNING *`,
		crs.ID, crs.Title, crs.ImageSrc,
	)
	if err == sql.ErrNoRows {
		return content.Course{}, content.ErrNotFound
	}
	return updated, errors.Wrap(err, "updating course")
}

func (repo *contentRepository) DeleteCourse(ctx context.Context, id int) error {
	return repo.deleteByID(ctx, "courses", id)
}

func (repo *contentRepository) ReorderCourses(ctx context.Context, items []content.ReorderItem) error {
	return repo.reorder(ctx, "courses", items)
}

// Units

func (repo *contentRepository) QueryUnits(ctx context.Context, courseID int) ([]content.Unit, error) {
	var units []content.Unit
	var err error
	if courseID != 0 {
		err = repo.db.SelectContext(ctx, &units, `SELECT * FROM units WHERE course_id = $1 ORDER BY "order"`, courseID)
	} else {
		err = repo.db.SelectContext(ctx, &units, `SELECT * FROM units ORDER BY "order"`)
	}
	return units, errors.Wrap(err, "querying units")
}

func (repo *contentRepository) GetUnitByID(ctx context.Context, id int) (content.Unit, error) {
	var unt content.Unit
	err := repo.db.GetContext(ctx, &unt, `SELECT * FROM units WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return content.Unit{}, content.ErrNotFound
	}
	return unt, errors.Wrap(err, "getting unit")
}

func (repo *contentRepository) CreateUnit(ctx context.Context, unt content.Unit) (content.Unit, error) {
	var created content.Unit
	err := repo.db.GetContext(ctx, &created, `
		INSERT INTO units (course_id, title, description, "order")
		VALUES ($1, $2, $3, (SELECT COALESCE(MAX("order"), 0) + 1 FROM units WHERE course_id = $1))
		RETURNING *`,
		unt.CourseID, unt.Title, unt.Description,
	)
	return created, errors.Wrap(err, "creating unit")
}

func (repo *contentRepository) UpdateUnit(ctx context.Context, unt content.Unit) (content.Unit, error) {
	var updated content.Unit
	err := repo.db.GetContext(ctx, &updated, `
		UPDATE units SET title = $2, description = $3 WHERE id = $1
		RETURNING *`,
		unt.ID, unt.Title, unt.Description,
	)
	if err == sql.ErrNoRows {
		return content.Unit{}, content.ErrNotFound
	}
	return updated, errors.Wrap(err, "updating unit")
}

func (repo *contentRepository) DeleteUnit(ctx context.Context, id int) error {
	return repo.deleteByID(ctx, "units", id)
}

func (repo *contentRepository) ReorderUnits(ctx context.Context, items []content.ReorderItem) error {
	return repo.reorder(ctx, "units", items)
}

// Lessons

func (repo *contentRepository) QueryLessons(ctx context.Context, unitID int) ([]content.Lesson, error) {
	var lessons []content.Lesson
	var err error
	if unitID != 0 {
		err = repo.db.SelectContext(ctx, &lessons, `SELECT * FROM lessons WHERE unit_id = $1 ORDER BY "order"`, unitID)
	} else {
		err = repo.db.SelectContext(ctx, &lessons, `SELECT * FROM lessons ORDER BY "order"`)
	}
	return lessons, errors.Wrap(err, "querying lessons")
}

func (repo *contentRepository) GetLessonByID(ctx context.Context, id int) (content.Lesson, error) {
	var lsn content.Lesson
	err := repo.db.GetContext(ctx, &lsn, `SELECT * FROM lessons WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return content.Lesson{}, content.ErrNotFound
	}
	return lsn, errors.Wrap(err, "getting lesson")
}

func (repo *contentRepository) CreateLesson(ctx context.Context, lsn content.Lesson) (content.Lesson, error) {
	var created content.Lesson
	err := repo.db.GetContext(ctx, &created, `
		INSERT INTO lessons (unit_id, title, "order")
		VALUES ($1, $2, (SELECT COALESCE(MAX("order"), 0) + 1 FROM lessons WHERE unit_id = $1))
		RETURNING *`,
		lsn.UnitID, lsn.Title,
	)
	return created, errors.Wrap(err, "creating lesson")
}

func (repo *contentRepository) UpdateLesson(ctx context.Context, lsn content.Lesson) (content.Lesson, error) {
	var updated content.Lesson
	err := repo.db.GetContext(ctx, &updated, `
		UPDATE lessons SET title = $2 WHERE id = $1
		RETURNING *`,
		lsn.ID, lsn.Title,
	)
	if err == sql.ErrNoRows {
		return content.Lesson{}, content.ErrNotFound
	}
	return updated, errors.Wrap(err, "updating lesson")
}

func (repo *contentRepository) DeleteLesson(ctx context.Context, id int) error {
	return repo.deleteByID(ctx, "lessons", id)
}

func (repo *contentRepository) ReorderLessons(ctx context.Context, items []content.ReorderItem) error {
	return repo.reorder(ctx, "lessons", items)
}

// Challenges

func (repo *contentRepository) QueryChallenges(ctx context.Context, lessonID int) ([]content.Challenge, error) {
	var challenges []content.Challenge
	var err error
	if lessonID != 0 {
		err = repo.db.SelectContext(ctx, &challenges, `SELECT * FROM challenges WHERE lesson_id = $1 ORDER BY "order"`, lessonID)
	} else {
		err = repo.db.SelectContext(ctx, &challenges, `SELECT * FROM challenges ORDER BY "order"`)
	}
	return challenges, errors.Wrap(err, "querying challenges")
}

func (repo *contentRepository) GetChallengeByID(ctx context.Context, id int) (content.Challenge, error) {
	var chl content.Challenge
	err := repo.db.GetContext(ctx, &chl, `SELECT * FROM challenges WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return content.Challenge{}, content.ErrNotFound
	}
	if err != nil {
		return content.Challenge{}, errors.Wrap(err, "getting challenge")
	}
	if chl.Options, err = repo.QueryChallengeOptions(ctx, id); err != nil {
		return content.Challenge{}, err
	}
	return chl, nil
}

func (repo *contentRepository) QueryLessonChallenges(ctx context.Context, lessonID int) ([]content.Challenge, error) {
	challenges, err := repo.QueryChallenges(ctx, lessonID)
	if err != nil || len(challenges) == 0 {
		return challenges, err
	}

	ids := make([]int, 0, len(challenges))
	for _, chl := range challenges {
		ids = append(ids, chl.ID)
	}
	query, args, err := sqlx.In(`SELECT * FROM challenge_options WHERE challenge_id IN (?)`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "building options query")
	}

	var options []content.ChallengeOption
	if err = repo.db.SelectContext(ctx, &options, repo.db.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "querying challenge options")
	}

	byChallenge := make(map[int][]content.ChallengeOption, len(challenges))
	for _, opt := range options {
		byChallenge[opt.ChallengeID] = append(byChallenge[opt.ChallengeID], opt)
	}
	for i := range challenges {
		challenges[i].Options = byChallenge[challenges[i].ID]
	}
	return challenges, nil
}

func (repo *contentRepository) CreateChallenge(ctx context.Context, chl content.Challenge) (content.Challenge, error) {
	var created content.Challenge
	err := repo.db.GetContext(ctx, &created, `
		INSERT INTO challenges (lesson_id, type, question, "order")
		VALUES ($1, $2, $3, (SELECT COALESCE(MAX("order"), 0) + 1 FROM challenges WHERE lesson_id = $1))
		RETURNING *`,
		chl.LessonID, chl.Type, chl.Question,
	)
	return created, errors.Wrap(err, "creating challenge")
}

func (repo *contentRepository) UpdateChallenge(ctx context.Context, chl content.Challenge) (content.Challenge, error) {
	var updated content.Challenge
	err := repo.db.GetContext(ctx, &updated, `
		UPDATE challenges SET type = $2, question = $3 WHERE id = $1
		RETURNING *`,
		chl.ID, chl.Type, chl.Question,
	)
	if err == sql.ErrNoRows {
		return content.Challenge{}, content.ErrNotFound
	}
	return updated, errors.Wrap(err, "updating challenge")
}

func (repo *contentRepository) DeleteChallenge(ctx context.Context, id int) error {
	return repo.deleteByID(ctx, "challenges", id)
}

func (repo *contentRepository) ReorderChallenges(ctx context.Context, items []content.ReorderItem) error {
	return repo.reorder(ctx, "challenges", items)
}

// Challenge Options

func (repo *contentRepository) QueryChallengeOptions(ctx context.Context, challengeID int) ([]content.ChallengeOption, error) {
	var options []content.ChallengeOption
	err := repo.db.SelectContext(ctx, &options, `SELECT * FROM challenge_options WHERE challenge_id = $1 ORDER BY id`, challengeID)
	return options, errors.Wrap(err, "querying challenge options")
}

func (repo *contentRepository) GetChallengeOptionByID(ctx context.Context, id int) (content.ChallengeOption, error) {
	var opt content.ChallengeOption
	err := repo.db.GetContext(ctx, &opt, `SELECT * FROM challenge_options WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return content.ChallengeOption{}, content.ErrNotFound
	}
	return opt, errors.Wrap(err, "getting challenge option")
}

func (repo *contentRepository) CreateChallengeOption(ctx context.Context, opt content.ChallengeOption) (content.ChallengeOption, error) {
	var created content.ChallengeOption
	err := repo.db.GetContext(ctx, &created, `
		INSERT INTO challenge_options (challenge_id, text, correct, image_src, audio_src)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *`,
		opt.ChallengeID, opt.Text, opt.Correct, opt.ImageSrc, opt.AudioSrc,
	)
	return created, errors.Wrap(err, "creating challenge option")
}

func (repo *contentRepository) UpdateChallengeOption(ctx context.Context, opt content.ChallengeOption) (content.ChallengeOption, error) {
	var updated content.ChallengeOption
	err := repo.db.GetContext(ctx, &updated, `
		UPDATE challenge_options SET text = $2, correct = $3, image_src = $4, audio_src = $5 WHERE id = $1
		RETURNING *`,
		opt.ID, opt.Text, opt.Correct, opt.ImageSrc, opt.AudioSrc,
	)
	if err == sql.ErrNoRows {
		return content.ChallengeOption{}, content.ErrNotFound
	}
	return updated, errors.Wrap(err, "updating challenge option")
}

func (repo *contentRepository) DeleteChallengeOption(ctx context.Context, id int) error {
	return repo.deleteByID(ctx, "challenge_options", id)
}

// Course tree

func (repo *contentRepository) QueryCourseTree(ctx context.Context, courseID int) ([]content.UnitNode, error) {
	units, err := repo.QueryUnits(ctx, courseID)
	if err != nil {
		return nil, err
	}

	var lessons []content.Lesson
	err = repo.db.SelectContext(ctx, &lessons, `
		SELECT l.* FROM lessons l
		JOIN units u ON u.id = l.unit_id
		WHERE u.course_id = $1
		ORDER BY u."order", l."order"`, courseID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying course lessons")
	}

	type challengeRow struct {
		ID       int `db:"id"`
		LessonID int `db:"lesson_id"`
	}
	var challenges []challengeRow
	err = repo.db.SelectContext(ctx, &challenges, `
		SELECT c.id, c.lesson_id FROM challenges c
		JOIN lessons l ON l.id = c.lesson_id
		JOIN units u ON u.id = l.unit_id
		WHERE u.course_id = $1
		ORDER BY c."order"`, courseID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying course challenges")
	}

	challengeIDs := make(map[int][]int, len(lessons))
	for _, chl := range challenges {
		challengeIDs[chl.LessonID] = append(challengeIDs[chl.LessonID], chl.ID)
	}
	lessonNodes := make(map[int][]content.LessonNode, len(units))
	for _, lsn := range lessons {
		lessonNodes[lsn.UnitID] = append(lessonNodes[lsn.UnitID], content.LessonNode{
			Lesson:       lsn,
			ChallengeIDs: challengeIDs[lsn.ID],
		})
	}

	tree := make([]content.UnitNode, 0, len(units))
	for _, unt := range units {
		tree = append(tree, content.UnitNode{Unit: unt, Lessons: lessonNodes[unt.ID]})
	}
	return tree, nil
}

// helpers

func (repo *contentRepository) deleteByID(ctx context.Context, table string, id int) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return errors.Wrapf(err, "deleting from %s", table)
	}
	if n, err := res.RowsAffected(); err != nil {
		return errors.Wrapf(err, "deleting from %s", table)
	} else if n == 0 {
		return content.ErrNotFound
	}
	return nil
}

func (repo *contentRepository) reorder(ctx context.Context, table string, items []content.ReorderItem) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	for _, item := range items {
		if _, err = tx.ExecContext(ctx, `UPDATE `+table+` SET "order" = $2 WHERE id = $1`, item.ID, item.Order); err != nil {
			return errors.Wrapf(err, "reordering %s", table)
		}
	}
	return errors.Wrap(tx.Commit(), "committing tx")
}
