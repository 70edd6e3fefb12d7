package announcement

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/smartbit/smartbit/core"
)

type Announcement struct {
	ID        int         `json:"id" db:"id"`
	Title     string      `json:"title" db:"title"`
	Message   string      `json:"message" db:"message"`
	Link      null.String `json:"link" db:"link"`
	IsActive  bool        `json:"isActive" db:"is_active"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"` // UTC
}

// NewAnnouncement contains information needed to publish an announcement.
type NewAnnouncement struct {
	Title    string      `json:"title" validate:"required"`
	Message  string      `json:"message" validate:"required"`
	Link     null.String `json:"link"`
	IsActive *bool       `json:"isActive"`
}

func (na *NewAnnouncement) Validate(validate *validator.Validate) error {
	na.Title = core.CleanString(na.Title)
	na.Message = core.CleanString(na.Message)
	return validate.Struct(na)
}

// UpdateAnnouncement is a partial payload; blank fields keep their stored value.
type UpdateAnnouncement struct {
	Title    string      `json:"title"`
	Message  string      `json:"message"`
	Link     null.String `json:"link"`
	IsActive *bool       `json:"isActive"`
}
