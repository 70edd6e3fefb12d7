package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/smartbit/smartbit/core/subscription"
)

type subscriptionRepository struct {
	db *sqlx.DB
}

var _ subscription.Repository = (*subscriptionRepository)(nil) // interface compliance check

func NewSubscriptionRepository(db *sqlx.DB) subscription.Repository {
	return &subscriptionRepository{db: db}
}

func (repo *subscriptionRepository) GetUserSubscription(ctx context.Context, userID string) (subscription.UserSubscription, error) {
	var sub subscription.UserSubscription
	err := repo.db.GetContext(ctx, &sub, `SELECT * FROM user_subscription WHERE user_id = $1`, userID)
	if err == sql.ErrNoRows {
		return subscription.UserSubscription{}, subscription.ErrNotFound
	}
	return sub, errors.Wrap(err, "getting user subscription")
}
