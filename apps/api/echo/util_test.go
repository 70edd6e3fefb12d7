package echoapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"

	echoapi "github.com/smartbit/smartbit/apps/api/echo"
	"github.com/smartbit/smartbit/core"
	"github.com/smartbit/smartbit/core/announcement"
	"github.com/smartbit/smartbit/core/content"
	"github.com/smartbit/smartbit/core/progress"
	"github.com/smartbit/smartbit/core/subscription"
	dummyevents "github.com/smartbit/smartbit/services/events/dummy"
	logsvc "github.com/smartbit/smartbit/services/logger"
	dummydb "github.com/smartbit/smartbit/storage/database/dummy"
)

type testApp struct {
	server echoapi.Server
	conf   *core.Config
	db     *dummydb.DB

	contentRepo  content.Repository
	progressRepo progress.Repository

	course  content.Course
	lesson  content.Lesson
	chl     content.Challenge
	correct content.ChallengeOption
	wrong   content.ChallengeOption
}

func setup(t *testing.T) *testApp {
	t.Helper()
	ctx := context.Background()

	conf := &core.Config{
		Env:          "TEST",
		Debug:        false,
		TestMode:     true,
		AppName:      "SmartBit",
		SecretKey:    "t35t-s3cr3t-k3y",
		AdminUserIDs: []string{"listed-admin"},
		Server: core.ServerConfig{
			Host:               "localhost",
			Port:               8000,
			JWTExpirationDelta: time.Hour,
		},
		ImageKit: core.ImageKitConfig{
			PublicKey:       "public_test",
			PrivateKey:      "private_test",
			UploadExpiresIn: 30 * time.Minute,
		},
	}

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}

	app := &testApp{
		conf:         conf,
		db:           db,
		contentRepo:  dummydb.NewContentRepository(db),
		progressRepo: dummydb.NewProgressRepository(db),
	}

	// sample content
	app.course, _ = app.contentRepo.CreateCourse(ctx, content.Course{Title: "Spanish", ImageSrc: "/es.svg"})
	unit, _ := app.contentRepo.CreateUnit(ctx, content.Unit{CourseID: app.course.ID, Title: "Unit 1", Description: "Basics"})
	app.lesson, _ = app.contentRepo.CreateLesson(ctx, content.Lesson{UnitID: unit.ID, Title: "Nouns"})
	app.chl, _ = app.contentRepo.CreateChallenge(ctx, content.Challenge{
		LessonID: app.lesson.ID,
		Type:     content.ChallengeTypeSelect,
		Question: `Which one of these is "the man"?`,
	})
	app.correct, _ = app.contentRepo.CreateChallengeOption(ctx, content.ChallengeOption{
		ChallengeID: app.chl.ID, Text: "el hombre", Correct: true,
	})
	app.wrong, _ = app.contentRepo.CreateChallengeOption(ctx, content.ChallengeOption{
		ChallengeID: app.chl.ID, Text: "la mujer",
	})

	// services
	subsRepo := dummydb.NewSubscriptionRepository(db)
	subsSvc := subscription.NewService(subsRepo)
	progressSvc := progress.NewService(app.progressRepo, app.contentRepo, subsSvc, subsRepo, dummyevents.NewService())
	contentSvc := content.NewService(app.contentRepo)
	announcementSvc := announcement.NewService(dummydb.NewAnnouncementRepository(db))

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	app.server = echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:            conf,
			Logger:          logsvc.NewConsoleLogger(log.New(io.Discard, "", 0)),
			ProgressSvc:     progressSvc,
			ContentSvc:      contentSvc,
			AnnouncementSvc: announcementSvc,
			Validate:        validate,
			Translator:      translator,
			DisableReqLogs:  true,
		},
	)
	return app
}

func (app *testApp) token(t *testing.T, userID, name string, admin bool) string {
	t.Helper()
	claims := echoapi.GetUserClaims(app.conf, userID, name, "", admin)
	token, err := echoapi.GenerateToken(app.conf, claims)
	if err != nil {
		t.Fatalf("GenerateToken() failed: %v", err)
	}
	return token
}

func (app *testApp) seedProgress(t *testing.T, userID string, hearts, points int) {
	t.Helper()
	_, err := app.progressRepo.CreateUserProgress(context.Background(), progress.UserProgress{
		UserID:         userID,
		UserName:       "User",
		UserImageSrc:   "/mascot.svg",
		ActiveCourseID: null.IntFrom(app.course.ID),
		Hearts:         hearts,
		Points:         points,
	})
	if err != nil {
		t.Fatalf("seedProgress() failed: %v", err)
	}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
