package subscription

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// PeriodEndGrace keeps a subscription usable for a day past its billing
// period end, covering webhook delivery lag from the billing provider.
const PeriodEndGrace = 24 * time.Hour

type UserSubscription struct {
	UserID                 string    `json:"userId" db:"user_id"`
	StripeCustomerID       string    `json:"stripeCustomerId" db:"stripe_customer_id"`
	StripeSubscriptionID   string    `json:"stripeSubscriptionId" db:"stripe_subscription_id"`
	StripePriceID          string    `json:"stripePriceId" db:"stripe_price_id"`
	StripeCurrentPeriodEnd null.Time `json:"stripeCurrentPeriodEnd" db:"stripe_current_period_end"`
}

// ActiveAt reports whether the subscription entitles the user at the given time.
func (s UserSubscription) ActiveAt(now time.Time) bool {
	if s.StripeSubscriptionID == "" || !s.StripeCurrentPeriodEnd.Valid {
		return false
	}
	return s.StripeCurrentPeriodEnd.Time.Add(PeriodEndGrace).After(now)
}

// Status is the subscription view exposed to gameplay and presentation.
type Status struct {
	IsActive bool `json:"isActive"`
}
