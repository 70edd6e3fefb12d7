package announcement_test

import (
	"context"
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/smartbit/smartbit/core/announcement"
	dummydb "github.com/smartbit/smartbit/storage/database/dummy"
)

func newTestService(t *testing.T) *announcement.Service {
	t.Helper()
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	return announcement.NewService(dummydb.NewAnnouncementRepository(db))
}

func TestService(t *testing.T) {
	ctx := context.Background()

	t.Run("create defaults to active", func(t *testing.T) {
		svc := newTestService(t)

		ann, err := svc.Create(ctx, announcement.NewAnnouncement{
			Title:   "Maintenance",
			Message: "We will be down tonight.",
			Link:    null.StringFrom("https://status.example.com"),
		})
		if err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
		if !ann.IsActive {
			t.Error("new announcement should default to active")
		}
		if ann.CreatedAt.IsZero() {
			t.Error("createdAt should be set")
		}
	})

	t.Run("active returns the newest active one", func(t *testing.T) {
		svc := newTestService(t)

		inactive := false
		if _, err := svc.Create(ctx, announcement.NewAnnouncement{Title: "Old", Message: "old"}); err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
		time.Sleep(time.Millisecond)
		latest, err := svc.Create(ctx, announcement.NewAnnouncement{Title: "New", Message: "new"})
		if err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
		time.Sleep(time.Millisecond)
		if _, err := svc.Create(ctx, announcement.NewAnnouncement{Title: "Hidden", Message: "hidden", IsActive: &inactive}); err != nil {
			t.Fatalf("Create() failed: %v", err)
		}

		got, err := svc.GetActive(ctx)
		if err != nil {
			t.Fatalf("GetActive() failed: %v", err)
		}
		if got.ID != latest.ID {
			t.Errorf("active = %q; want %q", got.Title, latest.Title)
		}
	})

	t.Run("no active announcement", func(t *testing.T) {
		svc := newTestService(t)

		if _, err := svc.GetActive(ctx); err != announcement.ErrNotFound {
			t.Errorf("err = %v; want %v", err, announcement.ErrNotFound)
		}
	})

	t.Run("update and delete", func(t *testing.T) {
		svc := newTestService(t)

		ann, err := svc.Create(ctx, announcement.NewAnnouncement{Title: "Draft", Message: "draft"})
		if err != nil {
			t.Fatalf("Create() failed: %v", err)
		}

		inactive := false
		ann, err = svc.Update(ctx, ann.ID, announcement.UpdateAnnouncement{Title: "Final", IsActive: &inactive})
		if err != nil {
			t.Fatalf("Update() failed: %v", err)
		}
		// omitted fields keep their stored value
		if ann.Title != "Final" || ann.Message != "draft" || ann.IsActive {
			t.Errorf("unexpected update: %+v", ann)
		}

		ann, err = svc.Update(ctx, ann.ID, announcement.UpdateAnnouncement{Message: "done"})
		if err != nil {
			t.Fatalf("Update() failed: %v", err)
		}
		if ann.Title != "Final" || ann.Message != "done" || ann.IsActive {
			t.Errorf("unexpected update: %+v", ann)
		}

		if err := svc.Delete(ctx, ann.ID); err != nil {
			t.Fatalf("Delete() failed: %v", err)
		}
		if _, err := svc.Get(ctx, ann.ID); err != announcement.ErrNotFound {
			t.Errorf("err = %v; want %v", err, announcement.ErrNotFound)
		}
	})
}
