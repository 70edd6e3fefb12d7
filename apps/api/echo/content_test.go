package echoapi_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/smartbit/smartbit/core/content"
)

func TestContentAPI_publicCourses(t *testing.T) {
	app := setup(t)

	req, rec := newRequest(http.MethodGet, "/v1/courses")
	app.server.ServeHTTP(rec, req)

	tt := httpTest{
		wantCode: http.StatusOK,
		wantData: marshallObj(t, []content.Course{app.course}),
	}
	checkCodeAndData(t, tt, rec)
}

func TestContentAPI_adminOnly(t *testing.T) {
	app := setup(t)

	errForbidden := marshallObj(t, httpErr{Error: "permission denied"})
	userToken := app.token(t, "u1", "Ada", false)

	tests := []httpTest{
		{name: "list courses", method: http.MethodGet, path: "/v1/admin/courses"},
		{name: "create course", method: http.MethodPost, path: "/v1/admin/courses"},
		{name: "list units", method: http.MethodGet, path: "/v1/admin/units"},
		{name: "create challenge", method: http.MethodPost, path: "/v1/admin/challenges"},
		{name: "delete option", method: http.MethodDelete, path: "/v1/admin/challenge-options/1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.wantCode = http.StatusForbidden
			tt.wantData = errForbidden
			req, rec := newAuthRequest(tt.method, tt.path, userToken)
			app.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func TestContentAPI_crud(t *testing.T) {
	app := setup(t)
	token := app.token(t, "editor", "Editor", true)

	t.Run("create and update a course", func(t *testing.T) {
		body := marshallObj(t, content.NewCourse{Title: "French", ImageSrc: "/fr.svg"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/courses", token, body)
		app.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %d; want 201; body %s", rec.Code, rec.Body.String())
		}

		var crs content.Course
		if err := json.Unmarshal(rec.Body.Bytes(), &crs); err != nil {
			t.Fatalf("unmarshalling body: %v", err)
		}
		if crs.Title != "French" || crs.Order != app.course.Order+1 {
			t.Errorf("unexpected course: %+v", crs)
		}

		body = marshallObj(t, content.UpdateCourse{Title: "Français"})
		req, rec = newAuthRequest(http.MethodPut, fmt.Sprintf("/v1/admin/courses/%d", crs.ID), token, body)
		app.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d; want 200; body %s", rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &crs); err != nil {
			t.Fatalf("unmarshalling body: %v", err)
		}
		// blank fields keep their stored value
		if crs.Title != "Français" || crs.ImageSrc != "/fr.svg" {
			t.Errorf("unexpected course: %+v", crs)
		}
	})

	t.Run("create rejects missing fields", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/courses", token, []byte(`{"title":"Nameless"}`))
		app.server.ServeHTTP(rec, req)

		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]string{"imageSrc": "this field is required"}),
		}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("create rejects a bad challenge type", func(t *testing.T) {
		body := marshallObj(t, content.NewChallenge{LessonID: app.lesson.ID, Type: "GUESS", Question: "?"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/challenges", token, body)
		app.server.ServeHTTP(rec, req)

		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]string{"type": "must be either SELECT or ASSIST"}),
		}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("reorder units", func(t *testing.T) {
		ctxBody := marshallObj(t, content.NewUnit{CourseID: app.course.ID, Title: "Unit 2", Description: "More"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/units", token, ctxBody)
		app.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %d; want 201; body %s", rec.Code, rec.Body.String())
		}
		var unit2 content.Unit
		if err := json.Unmarshal(rec.Body.Bytes(), &unit2); err != nil {
			t.Fatalf("unmarshalling body: %v", err)
		}

		body := marshallObj(t, content.Reorder{Items: []content.ReorderItem{
			{ID: app.lesson.UnitID, Order: 2},
			{ID: unit2.ID, Order: 1},
		}})
		req, rec = newAuthRequest(http.MethodPut, "/v1/admin/units/reorder", token, body)
		app.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("code = %d; want 204; body %s", rec.Code, rec.Body.String())
		}

		req, rec = newAuthRequest(http.MethodGet, fmt.Sprintf("/v1/admin/units?courseId=%d", app.course.ID), token)
		app.server.ServeHTTP(rec, req)
		var units []content.Unit
		if err := json.Unmarshal(rec.Body.Bytes(), &units); err != nil {
			t.Fatalf("unmarshalling body: %v", err)
		}
		if len(units) != 2 || units[0].ID != unit2.ID {
			t.Errorf("unexpected unit order: %+v", units)
		}
	})

	t.Run("delete a challenge option", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, fmt.Sprintf("/v1/admin/challenge-options/%d", app.wrong.ID), token)
		app.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("code = %d; want 204; body %s", rec.Code, rec.Body.String())
		}

		req, rec = newAuthRequest(http.MethodGet, fmt.Sprintf("/v1/admin/challenge-options/%d", app.wrong.ID), token)
		app.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %d; want 404", rec.Code)
		}
	})

	t.Run("units listing requires a course id", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/admin/units", token)
		app.server.ServeHTTP(rec, req)

		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]string{"courseId": "a valid id is required"}),
		}
		checkCodeAndData(t, tt, rec)
	})
}
