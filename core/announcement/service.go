package announcement

import (
	"context"
	"errors"
	"time"

	"github.com/smartbit/smartbit/core"
)

var ErrNotFound = errors.New("announcement not found")

type (
	Repository interface {
		// GetActiveAnnouncement returns the most recent active announcement.
		GetActiveAnnouncement(ctx context.Context) (Announcement, error)
		// QueryAllAnnouncements returns all announcements, newest first.
		QueryAllAnnouncements(ctx context.Context) ([]Announcement, error)
		CreateAnnouncement(ctx context.Context, ann Announcement) (Announcement, error)
		GetAnnouncementByID(ctx context.Context, id int) (Announcement, error)
		UpdateAnnouncement(ctx context.Context, ann Announcement) (Announcement, error)
		DeleteAnnouncement(ctx context.Context, id int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetActive returns the banner to display, or ErrNotFound when none is live.
func (svc *Service) GetActive(ctx context.Context) (Announcement, error) {
	return svc.repo.GetActiveAnnouncement(ctx)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Announcement, error) {
	return svc.repo.QueryAllAnnouncements(ctx)
}

func (svc *Service) Get(ctx context.Context, id int) (Announcement, error) {
	return svc.repo.GetAnnouncementByID(ctx, id)
}

func (svc *Service) Create(ctx context.Context, na NewAnnouncement) (Announcement, error) {
	isActive := true
	if na.IsActive != nil {
		isActive = *na.IsActive
	}
	ann := Announcement{
		Title:     na.Title,
		Message:   na.Message,
		Link:      na.Link,
		IsActive:  isActive,
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.CreateAnnouncement(ctx, ann)
}

// Update applies the non-blank fields of `ua` onto the stored announcement,
// so partial payloads never wipe the fields they omit.
func (svc *Service) Update(ctx context.Context, id int, ua UpdateAnnouncement) (Announcement, error) {
	ann, err := svc.repo.GetAnnouncementByID(ctx, id)
	if err != nil {
		return Announcement{}, err
	}
	if title := core.CleanString(ua.Title); title != "" {
		ann.Title = title
	}
	if msg := core.CleanString(ua.Message); msg != "" {
		ann.Message = msg
	}
	if ua.Link.Valid {
		ann.Link = ua.Link
	}
	if ua.IsActive != nil {
		ann.IsActive = *ua.IsActive
	}
	return svc.repo.UpdateAnnouncement(ctx, ann)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteAnnouncement(ctx, id)
}
