package dummydb

import (
	"context"

	"github.com/smartbit/smartbit/core/subscription"
)

type subscriptionRepository struct {
	db *subscriptionTable
}

var _ subscription.Repository = (*subscriptionRepository)(nil) // interface compliance check

func NewSubscriptionRepository(db *DB) subscription.Repository {
	return &subscriptionRepository{db: db.subscription}
}

func (repo *subscriptionRepository) GetUserSubscription(_ context.Context, userID string) (subscription.UserSubscription, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if sub, ok := repo.db.table[userID]; ok {
		return *sub, nil
	}
	return subscription.UserSubscription{}, subscription.ErrNotFound
}
