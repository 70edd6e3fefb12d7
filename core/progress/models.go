package progress

import (
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/smartbit/smartbit/core"
)

// Gameplay economy constants.
const (
	MaxHearts          = 5  // hearts are clamped to [0, MaxHearts]
	PointsPerChallenge = 10 // awarded per first-time or practice completion
	PointsToRefill     = 10 // shop price of a full heart refill
)

// Defaults applied when the identity provider carries no profile data.
const (
	DefaultUserName     = "User"
	DefaultUserImageSrc = "/mascot.svg"
)

type (
	// UserProgress is the per-user aggregate the rules engine mutates.
	UserProgress struct {
		UserID         string   `json:"userId" db:"user_id"`
		UserName       string   `json:"userName" db:"user_name"`
		UserImageSrc   string   `json:"userImageSrc" db:"user_image_src"`
		ActiveCourseID null.Int `json:"activeCourseId" db:"active_course_id"`
		Hearts         int      `json:"hearts" db:"hearts"`
		Points         int      `json:"points" db:"points"`
	}

	// ChallengeProgress marks a challenge completed by a user at least
	// once. Its mere presence puts later attempts in practice mode.
	ChallengeProgress struct {
		ID          int    `json:"id" db:"id"`
		UserID      string `json:"userId" db:"user_id"`
		ChallengeID int    `json:"challengeId" db:"challenge_id"`
		Completed   bool   `json:"completed" db:"completed"`
	}
)

// AnswerRequest is a submitted answer for a challenge.
type AnswerRequest struct {
	ChallengeID      int `json:"challengeId" validate:"required"`
	SelectedOptionID int `json:"selectedOptionId" validate:"required"`
}

func (ar AnswerRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(ar)
}

// Soft failure codes reported in AnswerResult.Error.
const (
	AnswerErrHearts = "hearts"
)

// AnswerResult reports the outcome of an answer evaluation. A hearts
// gate is a reported game-state outcome, not a server fault, so it
// travels in-band with Success=false.
type AnswerResult struct {
	Success   bool   `json:"success"`
	IsCorrect bool   `json:"isCorrect"`
	Error     string `json:"error,omitempty"`
	Hearts    int    `json:"hearts"`
	Points    int    `json:"points"`

	// StaleKeys lists the presentation caches invalidated by this
	// submission; empty when nothing was mutated.
	StaleKeys []string `json:"-"`
}

// ActivateCourse sets the caller's active course, creating their
// progress record on first visit.
type ActivateCourse struct {
	UserName     string `json:"-"`
	UserImageSrc string `json:"-"`
}

// RefillResult is the post-refill progress state.
type RefillResult struct {
	Hearts int `json:"hearts"`
	Points int `json:"points"`
}

// ShopData is the shop page summary.
type ShopData struct {
	Hearts                int  `json:"hearts"`
	Points                int  `json:"points"`
	HasActiveSubscription bool `json:"hasActiveSubscription"`
}

type (
	// Quest is a fixed points milestone.
	Quest struct {
		Title string `json:"title"`
		Value int    `json:"value"`
	}

	// QuestProgress is a Quest annotated with the user's standing.
	QuestProgress struct {
		Quest
		Progress   float64 `json:"progress"` // percentage, capped at 100
		Completed  bool    `json:"completed"`
		UserPoints int     `json:"userPoints"`
	}

	QuestsData struct {
		Quests      []QuestProgress `json:"quests"`
		TotalPoints int             `json:"totalPoints"`
	}
)

// Quests are the authored milestones, ascending.
var Quests = []Quest{
	{Title: "Earn 20 XP", Value: 20},
	{Title: "Earn 50 XP", Value: 50},
	{Title: "Earn 100 XP", Value: 100},
	{Title: "Earn 500 XP", Value: 500},
	{Title: "Earn 1000 XP", Value: 1000},
}

// LeaderboardData is the top players plus the caller's own standing.
// UserRank is null when the caller is outside the board.
type LeaderboardData struct {
	Leaderboard []UserProgress `json:"leaderboard"`
	UserRank    null.Int       `json:"userRank"`
	UserPoints  null.Int       `json:"userPoints"`
}

// QueryFilter narrows and pages the admin user listing.
type QueryFilter struct {
	Search string `query:"search"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	if qf.Page < 1 {
		qf.Page = 1
	}
	if qf.Limit < 1 {
		qf.Limit = 10
	}
}

func (qf *QueryFilter) Offset() int {
	return (qf.Page - 1) * qf.Limit
}

type (
	// AdminUser is a progress row joined with subscription and course
	// details for the admin console.
	AdminUser struct {
		UserID               string    `json:"userId"`
		UserName             string    `json:"userName"`
		UserImageSrc         string    `json:"userImageSrc"`
		Hearts               int       `json:"hearts"`
		Points               int       `json:"points"`
		ActiveCourse         string    `json:"activeCourse"`
		HasSubscription      bool      `json:"hasSubscription"`
		IsActive             bool      `json:"isActive"`
		SubscriptionEndDate  null.Time `json:"subscriptionEndDate"`
		StripeCustomerID     string    `json:"stripeCustomerId,omitempty"`
		StripeSubscriptionID string    `json:"stripeSubscriptionId,omitempty"`
	}

	Pagination struct {
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		Total      int `json:"total"`
		TotalPages int `json:"totalPages"`
	}

	AdminUsersData struct {
		Users      []AdminUser `json:"users"`
		Pagination Pagination  `json:"pagination"`
	}
)
