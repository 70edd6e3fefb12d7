package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/smartbit/smartbit/core/progress"
)

type progressRepository struct {
	db *progressTables
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db *DB) progress.Repository {
	return &progressRepository{db: db.progress}
}

func (repo *progressRepository) GetUserProgress(_ context.Context, userID string) (progress.UserProgress, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if up, ok := repo.db.users[userID]; ok {
		return *up, nil
	}
	return progress.UserProgress{}, progress.ErrNotFound
}

func (repo *progressRepository) CreateUserProgress(_ context.Context, up progress.UserProgress) (progress.UserProgress, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.users[up.UserID] = &up
	return up, nil
}

func (repo *progressRepository) SetActiveCourse(_ context.Context, up progress.UserProgress) (progress.UserProgress, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	stored, ok := repo.db.users[up.UserID]
	if !ok {
		return progress.UserProgress{}, progress.ErrNotFound
	}
	stored.UserName = up.UserName
	stored.UserImageSrc = up.UserImageSrc
	stored.ActiveCourseID = up.ActiveCourseID
	return *stored, nil
}

func (repo *progressRepository) RefillHearts(_ context.Context, expected progress.UserProgress) (progress.UserProgress, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	stored, ok := repo.db.users[expected.UserID]
	if !ok || stored.Hearts != expected.Hearts || stored.Points != expected.Points {
		return progress.UserProgress{}, progress.ErrConflict
	}
	stored.Hearts = progress.MaxHearts
	stored.Points -= progress.PointsToRefill
	return *stored, nil
}

func (repo *progressRepository) QueryTopUsers(_ context.Context, limit int) ([]progress.UserProgress, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	users := repo.queryUsers()
	sortByPoints(users)
	if len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

func (repo *progressRepository) FilterUsers(_ context.Context, filter progress.QueryFilter) ([]progress.UserProgress, int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	users := repo.queryUsers()
	if filter.Search != "" {
		var filtered []progress.UserProgress
		search := strings.ToLower(filter.Search)
		for _, up := range users {
			if strings.Contains(strings.ToLower(up.UserName), search) ||
				strings.Contains(strings.ToLower(up.UserID), search) {
				filtered = append(filtered, up)
			}
		}
		users = filtered
	}
	sortByPoints(users)

	total := len(users)
	offset := filter.Offset()
	if offset > total {
		offset = total
	}
	end := offset + filter.Limit
	if end > total {
		end = total
	}
	return users[offset:end], total, nil
}

func (repo *progressRepository) GetChallengeProgress(_ context.Context, userID string, challengeID int) (progress.ChallengeProgress, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, cp := range repo.db.completions {
		if cp.UserID == userID && cp.ChallengeID == challengeID {
			return *cp, nil
		}
	}
	return progress.ChallengeProgress{}, progress.ErrNotFound
}

func (repo *progressRepository) QueryCompletedChallengeIDs(_ context.Context, userID string) (map[int]bool, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	completed := make(map[int]bool)
	for _, cp := range repo.db.completions {
		if cp.UserID == userID && cp.Completed {
			completed[cp.ChallengeID] = true
		}
	}
	return completed, nil
}

func (repo *progressRepository) DecrementHearts(_ context.Context, expected progress.UserProgress) (progress.UserProgress, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	stored, ok := repo.db.users[expected.UserID]
	if !ok || stored.Hearts != expected.Hearts {
		return progress.UserProgress{}, progress.ErrConflict
	}
	if stored.Hearts > 0 {
		stored.Hearts--
	}
	return *stored, nil
}

func (repo *progressRepository) CompletePractice(_ context.Context, completionID int, expected progress.UserProgress) (progress.UserProgress, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	stored, ok := repo.db.users[expected.UserID]
	if !ok || stored.Hearts != expected.Hearts || stored.Points != expected.Points {
		return progress.UserProgress{}, progress.ErrConflict
	}
	cp, ok := repo.db.completions[completionID]
	if !ok {
		return progress.UserProgress{}, progress.ErrNotFound
	}
	cp.Completed = true

	if stored.Hearts < progress.MaxHearts {
		stored.Hearts++
	}
	stored.Points += progress.PointsPerChallenge
	return *stored, nil
}

func (repo *progressRepository) CompleteChallenge(_ context.Context, challengeID int, expected progress.UserProgress) (progress.UserProgress, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	stored, ok := repo.db.users[expected.UserID]
	if !ok || stored.Points != expected.Points {
		return progress.UserProgress{}, progress.ErrConflict
	}
	for _, cp := range repo.db.completions {
		if cp.UserID == expected.UserID && cp.ChallengeID == challengeID {
			// a concurrent duplicate submission completed it first
			return progress.UserProgress{}, progress.ErrConflict
		}
	}

	repo.db.pkCount++
	repo.db.completions[repo.db.pkCount] = &progress.ChallengeProgress{
		ID:          repo.db.pkCount,
		UserID:      expected.UserID,
		ChallengeID: challengeID,
		Completed:   true,
	}
	stored.Points += progress.PointsPerChallenge
	return *stored, nil
}

func (repo *progressRepository) queryUsers() []progress.UserProgress {
	users := make([]progress.UserProgress, 0, len(repo.db.users))
	for _, up := range repo.db.users {
		users = append(users, *up)
	}
	return users
}

func sortByPoints(users []progress.UserProgress) {
	sort.Slice(users, func(i, j int) bool {
		if users[i].Points != users[j].Points {
			return users[i].Points > users[j].Points
		}
		return users[i].UserID < users[j].UserID
	})
}
