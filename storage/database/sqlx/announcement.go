package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/smartbit/smartbit/core/announcement"
)

type announcementRepository struct {
	db *sqlx.DB
}

var _ announcement.Repository = (*announcementRepository)(nil) // interface compliance check

func NewAnnouncementRepository(db *sqlx.DB) announcement.Repository {
	return &announcementRepository{db: db}
}

func (repo *announcementRepository) GetActiveAnnouncement(ctx context.Context) (announcement.Announcement, error) {
	var ann announcement.Announcement
	err := repo.db.GetContext(ctx, &ann, `
		SELECT * FROM announcements
		WHERE is_active
		ORDER BY created_at DESC
		LIMIT 1`,
	)
	if err == sql.ErrNoRows {
		return announcement.Announcement{}, announcement.ErrNotFound
	}
	return ann, errors.Wrap(err, "getting active announcement")
}

func (repo *announcementRepository) QueryAllAnnouncements(ctx context.Context) ([]announcement.Announcement, error) {
	var anns []announcement.Announcement
	err := repo.db.SelectContext(ctx, &anns, `SELECT * FROM announcements ORDER BY created_at DESC`)
	return anns, errors.Wrap(err, "querying announcements")
}

func (repo *announcementRepository) CreateAnnouncement(ctx context.Context, ann announcement.Announcement) (announcement.Announcement, error) {
	var created announcement.Announcement
	err := repo.db.GetContext(ctx, &created, `
		INSERT INTO announcements (title, message, link, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *`,
		ann.Title, ann.Message, ann.Link, ann.IsActive, ann.CreatedAt,
	)
	return created, errors.Wrap(err, "creating announcement")
}

func (repo *announcementRepository) GetAnnouncementByID(ctx context.Context, id int) (announcement.Announcement, error) {
	var ann announcement.Announcement
	err := repo.db.GetContext(ctx, &ann, `SELECT * FROM announcements WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return announcement.Announcement{}, announcement.ErrNotFound
	}
	return ann, errors.Wrap(err, "getting announcement")
}

func (repo *announcementRepository) UpdateAnnouncement(ctx context.Context, ann announcement.Announcement) (announcement.Announcement, error) {
	var updated announcement.Announcement
	err := repo.db.GetContext(ctx, &updated, `
		UPDATE announcements SET title = $2, message = $3, link = $4, is_active = $5 WHERE id = $1
		RETURNING *`,
		ann.ID, ann.Title, ann.Message, ann.Link, ann.IsActive,
	)
	if err == sql.ErrNoRows {
		return announcement.Announcement{}, announcement.ErrNotFound
	}
	return updated, errors.Wrap(err, "updating announcement")
}

func (repo *announcementRepository) DeleteAnnouncement(ctx context.Context, id int) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting announcement")
	}
	if n, err := res.RowsAffected(); err != nil {
		return errors.Wrap(err, "deleting announcement")
	} else if n == 0 {
		return announcement.ErrNotFound
	}
	return nil
}
