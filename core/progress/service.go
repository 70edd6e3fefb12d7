package progress

import (
	"context"
	"errors"
	"math"

	"github.com/volatiletech/null/v8"

	"github.com/smartbit/smartbit/core"
	"github.com/smartbit/smartbit/core/content"
	"github.com/smartbit/smartbit/core/subscription"
)

var (
	// errors
	ErrNotFound = errors.New("user progress not found")
	// ErrConflict is returned when a compare-and-set write loses a race
	// with a concurrent submission for the same user.
	ErrConflict = errors.New("progress was modified concurrently")

	ErrHeartsFull      = errors.New("hearts are already full")
	ErrNotEnoughPoints = errors.New("not enough points")
	ErrCourseEmpty     = errors.New("course has no lessons")
	ErrNoActiveCourse  = errors.New("no active course")
)

const leaderboardSize = 10

type (
	Repository interface {
		GetUserProgress(ctx context.Context, userID string) (UserProgress, error)
		CreateUserProgress(ctx context.Context, up UserProgress) (UserProgress, error)
		// SetActiveCourse updates the active course and refreshed profile fields.
		SetActiveCourse(ctx context.Context, up UserProgress) (UserProgress, error)
		// RefillHearts sets hearts to MaxHearts and deducts PointsToRefill,
		// compare-and-set against the expected hearts/points snapshot.
		RefillHearts(ctx context.Context, expected UserProgress) (UserProgress, error)
		QueryTopUsers(ctx context.Context, limit int) ([]UserProgress, error)
		// FilterUsers pages progress rows ordered by points descending and
		// reports the total row count matching the filter.
		FilterUsers(ctx context.Context, filter QueryFilter) ([]UserProgress, int, error)

		GetChallengeProgress(ctx context.Context, userID string, challengeID int) (ChallengeProgress, error)
		// QueryCompletedChallengeIDs returns the set of challenge ids the
		// user has completed at least once.
		QueryCompletedChallengeIDs(ctx context.Context, userID string) (map[int]bool, error)

		// DecrementHearts applies hearts = max(hearts-1, 0), compare-and-set
		// against the expected snapshot.
		DecrementHearts(ctx context.Context, expected UserProgress) (UserProgress, error)
		// CompletePractice atomically re-marks the completion row and applies
		// hearts = min(hearts+1, MaxHearts), points += PointsPerChallenge.
		CompletePractice(ctx context.Context, completionID int, expected UserProgress) (UserProgress, error)
		// CompleteChallenge atomically inserts the completion row (no-op on
		// conflict with a concurrent duplicate) and applies
		// points += PointsPerChallenge.
		CompleteChallenge(ctx context.Context, challengeID int, expected UserProgress) (UserProgress, error)
	}

	// SubscriptionRepository is the read side of the external billing state.
	SubscriptionRepository interface {
		GetUserSubscription(ctx context.Context, userID string) (subscription.UserSubscription, error)
	}

	Service struct {
		repo     Repository
		content  content.Repository
		subs     *subscription.Service
		subsRepo SubscriptionRepository
		events   core.EventService
	}
)

func NewService(
	repo Repository,
	contentRepo content.Repository,
	subSvc *subscription.Service,
	subRepo SubscriptionRepository,
	events core.EventService,
) *Service {
	return &Service{
		repo:     repo,
		content:  contentRepo,
		subs:     subSvc,
		subsRepo: subRepo,
		events:   events,
	}
}

func (svc *Service) Get(ctx context.Context, userID string) (UserProgress, error) {
	return svc.repo.GetUserProgress(ctx, userID)
}

// ActivateCourse selects a course for the user, creating their progress
// record on first visit. The course must exist and have lessons.
func (svc *Service) ActivateCourse(ctx context.Context, userID string, courseID int, ac ActivateCourse) (UserProgress, error) {
	if _, err := svc.content.GetCourseByID(ctx, courseID); err != nil {
		return UserProgress{}, err
	}
	tree, err := svc.content.QueryCourseTree(ctx, courseID)
	if err != nil {
		return UserProgress{}, err
	}
	var hasLessons bool
	for _, unit := range tree {
		if len(unit.Lessons) > 0 {
			hasLessons = true
			break
		}
	}
	if !hasLessons {
		return UserProgress{}, ErrCourseEmpty
	}

	name := core.CleanString(ac.UserName)
	if name == "" {
		name = DefaultUserName
	}
	imageSrc := core.CleanString(ac.UserImageSrc)
	if imageSrc == "" {
		imageSrc = DefaultUserImageSrc
	}

	up, err := svc.repo.GetUserProgress(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return UserProgress{}, err
		}
		up = UserProgress{
			UserID:         userID,
			UserName:       name,
			UserImageSrc:   imageSrc,
			ActiveCourseID: null.IntFrom(courseID),
			Hearts:         MaxHearts,
			Points:         0,
		}
		return svc.repo.CreateUserProgress(ctx, up)
	}

	up.UserName = name
	up.UserImageSrc = imageSrc
	up.ActiveCourseID = null.IntFrom(courseID)
	up, err = svc.repo.SetActiveCourse(ctx, up)
	if err != nil {
		return UserProgress{}, err
	}
	svc.emit(userID, core.CacheKeyLearn)
	return up, nil
}

// RefillHearts trades PointsToRefill points for a full set of hearts.
func (svc *Service) RefillHearts(ctx context.Context, userID string) (RefillResult, error) {
	up, err := svc.repo.GetUserProgress(ctx, userID)
	if err != nil {
		return RefillResult{}, err
	}
	if up.Hearts == MaxHearts {
		return RefillResult{}, ErrHeartsFull
	}
	if up.Points < PointsToRefill {
		return RefillResult{}, ErrNotEnoughPoints
	}

	up, err = svc.repo.RefillHearts(ctx, up)
	if err != nil {
		return RefillResult{}, err
	}
	svc.emit(userID, core.CacheKeyShop, core.CacheKeyLearn, core.CacheKeyQuests, core.CacheKeyLeaderboard)
	return RefillResult{Hearts: up.Hearts, Points: up.Points}, nil
}

// Shop returns the shop page summary.
func (svc *Service) Shop(ctx context.Context, userID string) (ShopData, error) {
	up, err := svc.repo.GetUserProgress(ctx, userID)
	if err != nil {
		return ShopData{}, err
	}
	status, err := svc.subs.GetStatus(ctx, userID)
	if err != nil {
		return ShopData{}, err
	}
	return ShopData{
		Hearts:                up.Hearts,
		Points:                up.Points,
		HasActiveSubscription: status.IsActive,
	}, nil
}

// QuestsFor annotates the authored milestones with the user's standing.
func (svc *Service) QuestsFor(ctx context.Context, userID string) (QuestsData, error) {
	up, err := svc.repo.GetUserProgress(ctx, userID)
	if err != nil {
		return QuestsData{}, err
	}

	quests := make([]QuestProgress, 0, len(Quests))
	for _, q := range Quests {
		quests = append(quests, QuestProgress{
			Quest:      q,
			Progress:   math.Min(float64(up.Points)/float64(q.Value)*100, 100),
			Completed:  up.Points >= q.Value,
			UserPoints: up.Points,
		})
	}
	return QuestsData{Quests: quests, TotalPoints: up.Points}, nil
}

// Leaderboard returns the top ten by points and the caller's own rank
// within it, if any.
func (svc *Service) Leaderboard(ctx context.Context, userID string) (LeaderboardData, error) {
	top, err := svc.repo.QueryTopUsers(ctx, leaderboardSize)
	if err != nil {
		return LeaderboardData{}, err
	}
	if top == nil {
		top = []UserProgress{}
	}

	data := LeaderboardData{Leaderboard: top}
	up, err := svc.repo.GetUserProgress(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return data, nil
		}
		return LeaderboardData{}, err
	}

	data.UserPoints = null.IntFrom(up.Points)
	for i, u := range top {
		if u.UserID == userID {
			data.UserRank = null.IntFrom(i + 1)
			break
		}
	}
	return data, nil
}

// AdminUsers pages progress rows joined with subscription and course data.
func (svc *Service) AdminUsers(ctx context.Context, filter QueryFilter) (AdminUsersData, error) {
	filter.Clean()

	users, total, err := svc.repo.FilterUsers(ctx, filter)
	if err != nil {
		return AdminUsersData{}, err
	}

	out := make([]AdminUser, 0, len(users))
	for _, up := range users {
		au := AdminUser{
			UserID:       up.UserID,
			UserName:     up.UserName,
			UserImageSrc: up.UserImageSrc,
			Hearts:       up.Hearts,
			Points:       up.Points,
			ActiveCourse: "None",
		}

		if up.ActiveCourseID.Valid {
			crs, err := svc.content.GetCourseByID(ctx, int(up.ActiveCourseID.Int))
			if err == nil {
				au.ActiveCourse = crs.Title
			} else if !errors.Is(err, content.ErrNotFound) {
				return AdminUsersData{}, err
			}
		}

		sub, err := svc.subsRepo.GetUserSubscription(ctx, up.UserID)
		if err == nil {
			au.HasSubscription = true
			au.IsActive = sub.ActiveAt(nowUTC())
			au.SubscriptionEndDate = sub.StripeCurrentPeriodEnd
			au.StripeCustomerID = sub.StripeCustomerID
			au.StripeSubscriptionID = sub.StripeSubscriptionID
		} else if !errors.Is(err, subscription.ErrNotFound) {
			return AdminUsersData{}, err
		}

		out = append(out, au)
	}

	totalPages := (total + filter.Limit - 1) / filter.Limit
	return AdminUsersData{
		Users: out,
		Pagination: Pagination{
			Page:       filter.Page,
			Limit:      filter.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

func (svc *Service) emit(userID string, keys ...string) {
	if svc.events == nil {
		return
	}
	svc.events.ProgressChanged(core.ProgressEvent{UserID: userID, StaleKeys: keys})
}
