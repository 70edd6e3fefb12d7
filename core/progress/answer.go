package progress

import (
	"context"
	"errors"
	"time"

	"github.com/smartbit/smartbit/core"
)

func nowUTC() time.Time { return time.Now().UTC() }

// CheckAnswer evaluates a submitted answer and applies the
// hearts/points/completion side effects:
//
//   - wrong in practice mode: free, nothing changes
//   - wrong with an active subscription: free, nothing changes
//   - wrong with zero hearts: rejected with the "hearts" soft failure
//   - wrong otherwise: one heart lost
//   - correct with zero hearts, not practice, no subscription: rejected
//     with the "hearts" soft failure even though the answer was right
//   - correct in practice mode: completion re-marked, one heart refunded,
//     points awarded
//   - correct first time: completion recorded, points awarded
//
// Hard preconditions (missing progress record, unknown challenge) surface
// as errors; the hearts gate is an expected game-state outcome and is
// reported in-band. All writes are compare-and-set against the state read
// at the start of the call so concurrent duplicate submissions cannot
// double-award points or over-decrement hearts; a lost race surfaces as
// ErrConflict.
func (svc *Service) CheckAnswer(ctx context.Context, userID string, req AnswerRequest) (AnswerResult, error) {
	up, err := svc.repo.GetUserProgress(ctx, userID)
	if err != nil {
		return AnswerResult{}, err
	}

	status, err := svc.subs.GetStatus(ctx, userID)
	if err != nil {
		return AnswerResult{}, err
	}

	challenge, err := svc.content.GetChallengeByID(ctx, req.ChallengeID)
	if err != nil {
		return AnswerResult{}, err
	}

	isCorrect := challenge.CorrectOptionID() == req.SelectedOptionID

	var isPractice bool
	completion, err := svc.repo.GetChallengeProgress(ctx, userID, req.ChallengeID)
	switch {
	case err == nil:
		isPractice = true
	case errors.Is(err, ErrNotFound):
	default:
		return AnswerResult{}, err
	}

	staleKeys := []string{
		core.CacheKeyShop,
		core.CacheKeyLearn,
		core.CacheKeyQuests,
		core.CacheKeyLeaderboard,
		core.CacheKeyLesson(challenge.LessonID),
	}

	if !isCorrect {
		// practice retries and subscribed users never lose hearts
		if isPractice || status.IsActive {
			return AnswerResult{Success: true, Hearts: up.Hearts, Points: up.Points}, nil
		}
		if up.Hearts == 0 {
			return AnswerResult{Error: AnswerErrHearts, Hearts: 0, Points: up.Points}, nil
		}

		up, err = svc.repo.DecrementHearts(ctx, up)
		if err != nil {
			return AnswerResult{}, err
		}
		svc.emit(userID, staleKeys...)
		return AnswerResult{Success: true, Hearts: up.Hearts, Points: up.Points, StaleKeys: staleKeys}, nil
	}

	// a right answer still cannot unlock progress on an empty tank
	if up.Hearts == 0 && !isPractice && !status.IsActive {
		return AnswerResult{IsCorrect: true, Error: AnswerErrHearts, Hearts: 0, Points: up.Points}, nil
	}

	if isPractice {
		up, err = svc.repo.CompletePractice(ctx, completion.ID, up)
		if err != nil {
			return AnswerResult{}, err
		}
		svc.emit(userID, staleKeys...)
		return AnswerResult{Success: true, IsCorrect: true, Hearts: up.Hearts, Points: up.Points, StaleKeys: staleKeys}, nil
	}

	up, err = svc.repo.CompleteChallenge(ctx, req.ChallengeID, up)
	if err != nil {
		return AnswerResult{}, err
	}
	svc.emit(userID, staleKeys...)
	return AnswerResult{Success: true, IsCorrect: true, Hearts: up.Hearts, Points: up.Points, StaleKeys: staleKeys}, nil
}
