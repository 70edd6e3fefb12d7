package progress_test

import (
	"context"
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/smartbit/smartbit/core/content"
	"github.com/smartbit/smartbit/core/progress"
	"github.com/smartbit/smartbit/core/subscription"
	dummyevents "github.com/smartbit/smartbit/services/events/dummy"
	dummydb "github.com/smartbit/smartbit/storage/database/dummy"
)

type fixtures struct {
	db       *dummydb.DB
	repo     progress.Repository
	content  content.Repository
	events   *dummyevents.Service
	course   content.Course
	lesson   content.Lesson
	chl      content.Challenge
	correct  content.ChallengeOption
	wrong    content.ChallengeOption
	chlExtra content.Challenge
}

func newTestService(t *testing.T) (*progress.Service, *fixtures) {
	t.Helper()
	ctx := context.Background()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}

	f := &fixtures{
		db:      db,
		repo:    dummydb.NewProgressRepository(db),
		content: dummydb.NewContentRepository(db),
		events:  dummyevents.NewService(),
	}

	f.course, _ = f.content.CreateCourse(ctx, content.Course{Title: "Spanish", ImageSrc: "/es.svg"})
	unit, _ := f.content.CreateUnit(ctx, content.Unit{CourseID: f.course.ID, Title: "Unit 1", Description: "Basics"})
	f.lesson, _ = f.content.CreateLesson(ctx, content.Lesson{UnitID: unit.ID, Title: "Nouns"})

	f.chl, _ = f.content.CreateChallenge(ctx, content.Challenge{
		LessonID: f.lesson.ID,
		Type:     content.ChallengeTypeSelect,
		Question: `Which one of these is "the man"?`,
	})
	f.correct, _ = f.content.CreateChallengeOption(ctx, content.ChallengeOption{
		ChallengeID: f.chl.ID, Text: "el hombre", Correct: true,
	})
	f.wrong, _ = f.content.CreateChallengeOption(ctx, content.ChallengeOption{
		ChallengeID: f.chl.ID, Text: "la mujer",
	})

	f.chlExtra, _ = f.content.CreateChallenge(ctx, content.Challenge{
		LessonID: f.lesson.ID,
		Type:     content.ChallengeTypeAssist,
		Question: `"the man"`,
	})
	_, _ = f.content.CreateChallengeOption(ctx, content.ChallengeOption{
		ChallengeID: f.chlExtra.ID, Text: "el hombre", Correct: true,
	})

	subsRepo := dummydb.NewSubscriptionRepository(db)
	svc := progress.NewService(f.repo, f.content, subscription.NewService(subsRepo), subsRepo, f.events)
	return svc, f
}

func (f *fixtures) seedUser(t *testing.T, userID string, hearts, points int) {
	t.Helper()
	_, err := f.repo.CreateUserProgress(context.Background(), progress.UserProgress{
		UserID:         userID,
		UserName:       "User",
		UserImageSrc:   "/mascot.svg",
		ActiveCourseID: null.IntFrom(f.course.ID),
		Hearts:         hearts,
		Points:         points,
	})
	if err != nil {
		t.Fatalf("seedUser() failed: %v", err)
	}
}

func (f *fixtures) subscribe(userID string) {
	f.db.SetSubscription(subscription.UserSubscription{
		UserID:                 userID,
		StripeCustomerID:       "cus_123",
		StripeSubscriptionID:   "sub_123",
		StripePriceID:          "price_123",
		StripeCurrentPeriodEnd: null.TimeFrom(time.Now().Add(time.Hour)),
	})
}

func TestService_CheckAnswer(t *testing.T) {
	ctx := context.Background()

	t.Run("wrong answer loses a heart", func(t *testing.T) {
		svc, f := newTestService(t)
		f.seedUser(t, "u1", 5, 0)

		res, err := svc.CheckAnswer(ctx, "u1", progress.AnswerRequest{ChallengeID: f.chl.ID, SelectedOptionID: f.wrong.ID})
		if err != nil {
			t.Fatalf("CheckAnswer() failed: %v", err)
		}
		if !res.Success || res.IsCorrect || res.Error != "" {
			t.Errorf("unexpected result: %+v", res)
		}
		if res.Hearts != 4 || res.Points != 0 {
			t.Errorf("hearts/points = %d/%d; want 4/0", res.Hearts, res.Points)
		}
	})

	t.Run("wrong answer with zero hearts is rejected", func(t *testing.T) {
		svc, f := newTestService(t)
		f.seedUser(t, "u1", 0, 0)

		res, err := svc.CheckAnswer(ctx, "u1", progress.AnswerRequest{ChallengeID: f.chl.ID, SelectedOptionID: f.wrong.ID})
		if err != nil {
			t.Fatalf("CheckAnswer() failed: %v", err)
		}
		if res.Success || res.Error != progress.AnswerErrHearts {
			t.Errorf("unexpected result: %+v", res)
		}
		if res.Hearts != 0 {
			t.Errorf("hearts = %d; want 0", res.Hearts)
		}
	})

	t.Run("wrong answer in practice mode is free", func(t *testing.T) {
		svc, f := newTestService(t)
		f.seedUser(t, "u1", 5, 0)

		// complete it once; later attempts are practice
		if _, err := svc.CheckAnswer(ctx, "u1", progress.AnswerRequest{ChallengeID: f.chl.ID, SelectedOptionID: f.correct.ID}); err != nil {
			t.Fatalf("CheckAnswer() failed: %v", err)
		}

		res, err := svc.CheckAnswer(ctx, "u1", progress.AnswerRequest{ChallengeID: f.chl.ID, SelectedOptionID: f.wrong.ID})
		if err != nil {
			t.Fatalf("CheckAnswer() failed: %v", err)
		}
		if !res.Success || res.Error != "" {
			t.Errorf("unexpected result: %+v", res)
		}
		if res.Hearts != 5 || res.Points != 10 {
			t.Errorf("hearts/points = %d/%d; want 5/10", res.Hearts, res.Points)
		}
	})

	t.Run("wrong answer with active subscription is free", func(t *testing.T) {
		svc, f := newTestService(t)
		f.seedUser(t, "u1", 3, 0)
		f.subscribe("u1")

		res, err := svc.CheckAnswer(ctx, "u1", progress.AnswerRequest{ChallengeID: f.chl.ID, SelectedOptionID: f.wrong.ID})
		if err != nil {
			t.Fatalf("CheckAnswer() failed: %v", err)
		}
		if !res.Success || res.Hearts != 3 {
			t.Errorf("unexpected result: %+v", res)
		}
	})

	t.Run("correct first time awards points and records completion", func(t *testing.T) {
		svc, f := newTestService(t)
		f.seedUser(t, "u1", 5, 0)

		res, err := svc.CheckAnswer(ctx, "u1", progress.AnswerRequest{ChallengeID: f.chl.ID, SelectedOptionID: f.correct.ID})
		if err != nil {
			t.Fatalf("CheckAnswer() failed: %v", err)
		}
		if !res.Success || !res.IsCorrect {
			t.Errorf("unexpected result: %+v", res)
		}
		if res.Hearts != 5 || res.Points != 10 {
			t.Errorf("hearts/points = %d/%d; want 5/10", res.Hearts, res.Points)
		}

		if _, err := f.repo.GetChallengeProgress(ctx, "u1", f.chl.ID); err != nil {
			t.Errorf("completion row not recorded: %v", err)
		}
	})

	t.Run("correct in practice mode refunds a heart", func(t *testing.T) {
		svc, f := newTestService(t)
		f.seedUser(t, "u1", 5, 0)

		// complete, then lose a heart on the other challenge
		if _, err := svc.CheckAnswer(ctx, "u1", progress.AnswerRequest{ChallengeID: f.chl.ID, SelectedOptionID: f.correct.ID}); err != nil {
			t.Fatalf("CheckAnswer() failed: %v", err)
		}
		if _, err := svc.CheckAnswer(ctx, "u1", progress.AnswerRequest{ChallengeID: f.chlExtra.ID, SelectedOptionID: -1}); err != nil {
			t.Fatalf("CheckAnswer() failed: %v", err)
		}

		res, err := svc.CheckAnswer(ctx, "u1", progress.AnswerRequest{ChallengeID: f.chl.ID, SelectedOptionID: f.correct.ID})
		if err != nil {
			t.Fatalf("CheckAnswer() failed: %v", err)
		}
		if res.Hearts != 5 || res.Points != 20 {
			t.Errorf("hearts/points = %d/%d; want 5/20", res.Hearts, res.Points)
		}
	})

	t.Run("practice heart refund clamps at the maximum", func(t *testing.T) {
		svc, f := newTestService(t)
		f.seedUser(t, "u1", 5, 0)

		if _, err := svc.CheckAnswer(ctx, "u1", progress.AnswerRequest{ChallengeID: f.chl.ID, SelectedOptionID: f.correct.ID}); err != nil {
			t.Fatalf("CheckAnswer() failed: %v", err)
		}
		res, err := svc.CheckAnswer(ctx, "u1", progress.AnswerRequest{ChallengeID: f.chl.ID, SelectedOptionID: f.correct.ID})
		if err != nil {
			t.Fatalf("CheckAnswer() failed: %v", err)
		}
		if res.Hearts != progress.MaxHearts {
			t.Errorf("hearts = %d; want %d", res.Hearts, progress.MaxHearts)
		}
	})

	t.Run("correct with zero hearts is rejected unless practice or subscribed", func(t *testing.T) {
		svc, f := newTestService(t)
		f.seedUser(t, "u1", 0, 0)

		res, err := svc.CheckAnswer(ctx, "u1", progress.AnswerRequest{ChallengeID: f.chl.ID, SelectedOptionID: f.correct.ID})
		if err != nil {
			t.Fatalf("CheckAnswer() failed: %v", err)
		}
		if res.Success || !res.IsCorrect || res.Error != progress.AnswerErrHearts {
			t.Errorf("unexpected result: %+v", res)
		}
		if res.Points != 0 {
			t.Errorf("points = %d; want 0", res.Points)
		}
	})

	t.Run("correct with zero hearts passes with a subscription", func(t *testing.T) {
		svc, f := newTestService(t)
		f.seedUser(t, "u1", 0, 0)
		f.subscribe("u1")

		res, err := svc.CheckAnswer(ctx, "u1", progress.AnswerRequest{ChallengeID: f.chl.ID, SelectedOptionID: f.correct.ID})
		if err != nil {
			t.Fatalf("CheckAnswer() failed: %v", err)
		}
		if !res.Success || !res.IsCorrect || res.Points != 10 {
			t.Errorf("unexpected result: %+v", res)
		}
	})

	t.Run("hearts never drop below zero", func(t *testing.T) {
		svc, f := newTestService(t)
		f.seedUser(t, "u1", 2, 0)

		for i := 0; i < 2; i++ {
			if _, err := svc.CheckAnswer(ctx, "u1", progress.AnswerRequest{ChallengeID: f.chl.ID, SelectedOptionID: f.wrong.ID}); err != nil {
				t.Fatalf("CheckAnswer() failed: %v", err)
			}
		}
		res, err := svc.CheckAnswer(ctx, "u1", progress.AnswerRequest{ChallengeID: f.chl.ID, SelectedOptionID: f.wrong.ID})
		if err != nil {
			t.Fatalf("CheckAnswer() failed: %v", err)
		}
		if res.Hearts != 0 || res.Error != progress.AnswerErrHearts {
			t.Errorf("unexpected result: %+v", res)
		}
	})

	t.Run("unknown challenge fails", func(t *testing.T) {
		svc, f := newTestService(t)
		f.seedUser(t, "u1", 5, 0)

		if _, err := svc.CheckAnswer(ctx, "u1", progress.AnswerRequest{ChallengeID: 999, SelectedOptionID: 1}); err != content.ErrNotFound {
			t.Errorf("err = %v; want %v", err, content.ErrNotFound)
		}
	})

	t.Run("missing progress record fails", func(t *testing.T) {
		svc, f := newTestService(t)

		if _, err := svc.CheckAnswer(ctx, "ghost", progress.AnswerRequest{ChallengeID: f.chl.ID, SelectedOptionID: f.correct.ID}); err != progress.ErrNotFound {
			t.Errorf("err = %v; want %v", err, progress.ErrNotFound)
		}
	})

	t.Run("mutations invalidate presentation caches", func(t *testing.T) {
		svc, f := newTestService(t)
		f.seedUser(t, "u1", 5, 0)

		res, err := svc.CheckAnswer(ctx, "u1", progress.AnswerRequest{ChallengeID: f.chl.ID, SelectedOptionID: f.correct.ID})
		if err != nil {
			t.Fatalf("CheckAnswer() failed: %v", err)
		}
		if len(res.StaleKeys) == 0 {
			t.Fatal("expected stale keys on mutation")
		}
		evts := f.events.Events()
		if len(evts) != 1 || evts[0].UserID != "u1" {
			t.Errorf("unexpected events: %+v", evts)
		}
	})

	t.Run("free outcomes emit nothing", func(t *testing.T) {
		svc, f := newTestService(t)
		f.seedUser(t, "u1", 0, 0)

		res, err := svc.CheckAnswer(ctx, "u1", progress.AnswerRequest{ChallengeID: f.chl.ID, SelectedOptionID: f.wrong.ID})
		if err != nil {
			t.Fatalf("CheckAnswer() failed: %v", err)
		}
		if len(res.StaleKeys) != 0 {
			t.Errorf("stale keys on a no-op: %v", res.StaleKeys)
		}
		if evts := f.events.Events(); len(evts) != 0 {
			t.Errorf("unexpected events: %+v", evts)
		}
	})
}
