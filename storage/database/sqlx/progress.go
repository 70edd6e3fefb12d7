package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/smartbit/smartbit/core/progress"
)

type progressRepository struct {
	db *sqlx.DB
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db *sqlx.DB) progress.Repository {
	return &progressRepository{db: db}
}

func (repo *progressRepository) GetUserProgress(ctx context.Context, userID string) (progress.UserProgress, error) {
	var up progress.UserProgress
	err := repo.db.GetContext(ctx, &up, `SELECT * FROM user_progress WHERE user_id = $1`, userID)
	if err == sql.ErrNoRows {
		return progress.UserProgress{}, progress.ErrNotFound
	}
	return up, errors.Wrap(err, "getting user progress")
}

func (repo *progressRepository) CreateUserProgress(ctx context.Context, up progress.UserProgress) (progress.UserProgress, error) {
	var created progress.UserProgress
	err := repo.db.GetContext(ctx, &created, `
		INSERT INTO user_progress (user_id, user_name, user_image_src, active_course_id, hearts, points)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING *`,
		up.UserID, up.UserName, up.UserImageSrc, up.ActiveCourseID, up.Hearts, up.Points,
	)
	return created, errors.Wrap(err, "creating user progress")
}

func (repo *progressRepository) SetActiveCourse(ctx context.Context, up progress.UserProgress) (progress.UserProgress, error) {
	var updated progress.UserProgress
	err := repo.db.GetContext(ctx, &updated, `
		UPDATE user_progress
		SET user_name = $2, user_image_src = $3, active_course_id = $4
		WHERE user_id = $1
		RETURNING *`,
		up.UserID, up.UserName, up.UserImageSrc, up.ActiveCourseID,
	)
	if err == sql.ErrNoRows {
		return progress.UserProgress{}, progress.ErrNotFound
	}
	return updated, errors.Wrap(err, "setting active course")
}

func (repo *progressRepository) RefillHearts(ctx context.Context, expected progress.UserProgress) (progress.UserProgress, error) {
	var updated progress.UserProgress
	err := repo.db.GetContext(ctx, &updated, `
		UPDATE user_progress
		SET hearts = $2, points = points - $3
		WHERE user_id = $1 AND hearts = $4 AND points = $5
		RETURNING *`,
		expected.UserID, progress.MaxHearts, progress.PointsToRefill, expected.Hearts, expected.Points,
	)
	if err == sql.ErrNoRows {
		return progress.UserProgress{}, progress.ErrConflict
	}
	return updated, errors.Wrap(err, "refilling hearts")
}

func (repo *progressRepository) QueryTopUsers(ctx context.Context, limit int) ([]progress.UserProgress, error) {
	var users []progress.UserProgress
	err := repo.db.SelectContext(ctx, &users, `
		SELECT * FROM user_progress
		ORDER BY points DESC, user_id
		LIMIT $1`, limit,
	)
	return users, errors.Wrap(err, "querying top users")
}

func (repo *progressRepository) FilterUsers(ctx context.Context, filter progress.QueryFilter) ([]progress.UserProgress, int, error) {
	where := ""
	args := []interface{}{filter.Limit, filter.Offset()}
	if filter.Search != "" {
		where = `WHERE user_name ILIKE $3 OR user_id ILIKE $3`
		args = append(args, "%"+filter.Search+"%")
	}

	var users []progress.UserProgress
	err := repo.db.SelectContext(ctx, &users, `
		SELECT * FROM user_progress `+where+`
		ORDER BY points DESC, user_id
		LIMIT $1 OFFSET $2`, args...,
	)
	if err != nil {
		return nil, 0, errors.Wrap(err, "filtering users")
	}

	var total int
	countArgs := args[2:]
	countWhere := ""
	if filter.Search != "" {
		countWhere = `WHERE user_name ILIKE $1 OR user_id ILIKE $1`
	}
	if err = repo.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM user_progress `+countWhere, countArgs...); err != nil {
		return nil, 0, errors.Wrap(err, "counting users")
	}
	return users, total, nil
}

func (repo *progressRepository) GetChallengeProgress(ctx context.Context, userID string, challengeID int) (progress.ChallengeProgress, error) {
	var cp progress.ChallengeProgress
	err := repo.db.GetContext(ctx, &cp, `
		SELECT * FROM challenge_progress
		WHERE user_id = $1 AND challenge_id = $2`,
		userID, challengeID,
	)
	if err == sql.ErrNoRows {
		return progress.ChallengeProgress{}, progress.ErrNotFound
	}
	return cp, errors.Wrap(err, "getting challenge progress")
}

func (repo *progressRepository) QueryCompletedChallengeIDs(ctx context.Context, userID string) (map[int]bool, error) {
	var ids []int
	err := repo.db.SelectContext(ctx, &ids, `
		SELECT challenge_id FROM challenge_progress
		WHERE user_id = $1 AND completed`, userID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying completed challenges")
	}
	completed := make(map[int]bool, len(ids))
	for _, id := range ids {
		completed[id] = true
	}
	return completed, nil
}

func (repo *progressRepository) DecrementHearts(ctx context.Context, expected progress.UserProgress) (progress.UserProgress, error) {
	var updated progress.UserProgress
	err := repo.db.GetContext(ctx, &updated, `
		UPDATE user_progress
		SET hearts = GREATEST(hearts - 1, 0)
		WHERE user_id = $1 AND hearts = $2
		RETURNING *`,
		expected.UserID, expected.Hearts,
	)
	if err == sql.ErrNoRows {
		return progress.UserProgress{}, progress.ErrConflict
	}
	return updated, errors.Wrap(err, "decrementing hearts")
}

func (repo *progressRepository) CompletePractice(ctx context.Context, completionID int, expected progress.UserProgress) (progress.UserProgress, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return progress.UserProgress{}, errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, `UPDATE challenge_progress SET completed = TRUE WHERE id = $1`, completionID); err != nil {
		return progress.UserProgress{}, errors.Wrap(err, "re-marking completion")
	}

	var updated progress.UserProgress
	err = tx.GetContext(ctx, &updated, `
		UPDATE user_progress
		SET hearts = LEAST(hearts + 1, $2), points = points + $3
		WHERE user_id = $1 AND hearts = $4 AND points = $5
		RETURNING *`,
		expected.UserID, progress.MaxHearts, progress.PointsPerChallenge, expected.Hearts, expected.Points,
	)
	if err == sql.ErrNoRows {
		return progress.UserProgress{}, progress.ErrConflict
	}
	if err != nil {
		return progress.UserProgress{}, errors.Wrap(err, "applying practice completion")
	}

	if err = tx.Commit(); err != nil {
		return progress.UserProgress{}, errors.Wrap(err, "committing tx")
	}
	return updated, nil
}

func (repo *progressRepository) CompleteChallenge(ctx context.Context, challengeID int, expected progress.UserProgress) (progress.UserProgress, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return progress.UserProgress{}, errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO challenge_progress (user_id, challenge_id, completed)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (user_id, challenge_id) DO NOTHING`,
		expected.UserID, challengeID,
	)
	if err != nil {
		return progress.UserProgress{}, errors.Wrap(err, "recording completion")
	}
	if n, err := res.RowsAffected(); err != nil {
		return progress.UserProgress{}, errors.Wrap(err, "recording completion")
	} else if n == 0 {
		// a concurrent duplicate submission completed it first
		return progress.UserProgress{}, progress.ErrConflict
	}

	var updated progress.UserProgress
	err = tx.GetContext(ctx, &updated, `
		UPDATE user_progress
		SET points = points + $2
		WHERE user_id = $1 AND points = $3
		RETURNING *`,
		expected.UserID, progress.PointsPerChallenge, expected.Points,
	)
	if err == sql.ErrNoRows {
		return progress.UserProgress{}, progress.ErrConflict
	}
	if err != nil {
		return progress.UserProgress{}, errors.Wrap(err, "awarding points")
	}

	if err = tx.Commit(); err != nil {
		return progress.UserProgress{}, errors.Wrap(err, "committing tx")
	}
	return updated, nil
}
