package echoapi_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/smartbit/smartbit/core/announcement"
)

func TestAnnouncementAPI(t *testing.T) {
	app := setup(t)
	adminToken := app.token(t, "boss", "Boss", true)

	t.Run("no active announcement returns null", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/announcement")
		app.server.ServeHTTP(rec, req)

		tt := httpTest{wantCode: http.StatusOK, wantData: []byte(`null`)}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("create requires admin", func(t *testing.T) {
		body := marshallObj(t, announcement.NewAnnouncement{Title: "Hi", Message: "hello"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/announcements", app.token(t, "u1", "Ada", false), body)
		app.server.ServeHTTP(rec, req)

		tt := httpTest{
			wantCode: http.StatusForbidden,
			wantData: marshallObj(t, httpErr{Error: "permission denied"}),
		}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("create, publish, retract", func(t *testing.T) {
		body := marshallObj(t, announcement.NewAnnouncement{Title: "Maintenance", Message: "Down tonight."})
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/announcements", adminToken, body)
		app.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %d; want 201; body %s", rec.Code, rec.Body.String())
		}

		var ann announcement.Announcement
		if err := json.Unmarshal(rec.Body.Bytes(), &ann); err != nil {
			t.Fatalf("unmarshalling body: %v", err)
		}
		if !ann.IsActive {
			t.Error("new announcement should default to active")
		}

		// the public endpoint now serves it
		req, rec = newRequest(http.MethodGet, "/v1/announcement")
		app.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d; want 200", rec.Code)
		}
		var got announcement.Announcement
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("unmarshalling body: %v", err)
		}
		if got.ID != ann.ID {
			t.Errorf("active announcement = %d; want %d", got.ID, ann.ID)
		}

		// retract it
		inactive := false
		body = marshallObj(t, announcement.UpdateAnnouncement{IsActive: &inactive})
		req, rec = newAuthRequest(http.MethodPut, fmt.Sprintf("/v1/admin/announcements/%d", ann.ID), adminToken, body)
		app.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d; want 200; body %s", rec.Code, rec.Body.String())
		}

		req, rec = newRequest(http.MethodGet, "/v1/announcement")
		app.server.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusOK, wantData: []byte(`null`)}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("delete", func(t *testing.T) {
		body := marshallObj(t, announcement.NewAnnouncement{Title: "Oops", Message: "typo"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/announcements", adminToken, body)
		app.server.ServeHTTP(rec, req)
		var ann announcement.Announcement
		if err := json.Unmarshal(rec.Body.Bytes(), &ann); err != nil {
			t.Fatalf("unmarshalling body: %v", err)
		}

		req, rec = newAuthRequest(http.MethodDelete, fmt.Sprintf("/v1/admin/announcements/%d", ann.ID), adminToken)
		app.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("code = %d; want 204; body %s", rec.Code, rec.Body.String())
		}

		req, rec = newAuthRequest(http.MethodGet, fmt.Sprintf("/v1/admin/announcements/%d", ann.ID), adminToken)
		app.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %d; want 404", rec.Code)
		}
	})
}
