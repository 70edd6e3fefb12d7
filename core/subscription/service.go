package subscription

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("subscription not found")

type (
	Repository interface {
		GetUserSubscription(ctx context.Context, userID string) (UserSubscription, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the raw subscription record; ErrNotFound if the user never subscribed.
func (svc *Service) Get(ctx context.Context, userID string) (UserSubscription, error) {
	return svc.repo.GetUserSubscription(ctx, userID)
}

// GetStatus never fails on a missing record: a user without a
// subscription row is simply inactive.
func (svc *Service) GetStatus(ctx context.Context, userID string) (Status, error) {
	sub, err := svc.repo.GetUserSubscription(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Status{}, nil
		}
		return Status{}, err
	}
	return Status{IsActive: sub.ActiveAt(time.Now().UTC())}, nil
}
