package content_test

import (
	"context"
	"testing"

	"github.com/smartbit/smartbit/core/content"
	dummydb "github.com/smartbit/smartbit/storage/database/dummy"
)

func newTestService(t *testing.T) *content.Service {
	t.Helper()
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	return content.NewService(dummydb.NewContentRepository(db))
}

func TestService_Courses(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	es, err := svc.CreateCourse(ctx, content.NewCourse{Title: "Spanish", ImageSrc: "/es.svg"})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	fr, err := svc.CreateCourse(ctx, content.NewCourse{Title: "French", ImageSrc: "/fr.svg"})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}

	// courses append at the end
	if es.Order != 1 || fr.Order != 2 {
		t.Errorf("orders = %d/%d; want 1/2", es.Order, fr.Order)
	}

	if err := svc.ReorderCourses(ctx, content.Reorder{Items: []content.ReorderItem{
		{ID: es.ID, Order: 2},
		{ID: fr.ID, Order: 1},
	}}); err != nil {
		t.Fatalf("ReorderCourses() failed: %v", err)
	}

	courses, err := svc.QueryCourses(ctx)
	if err != nil {
		t.Fatalf("QueryCourses() failed: %v", err)
	}
	if len(courses) != 2 || courses[0].ID != fr.ID {
		t.Errorf("unexpected order: %+v", courses)
	}

	t.Run("delete", func(t *testing.T) {
		if err := svc.DeleteCourse(ctx, fr.ID); err != nil {
			t.Fatalf("DeleteCourse() failed: %v", err)
		}
		if _, err := svc.GetCourse(ctx, fr.ID); err != content.ErrNotFound {
			t.Errorf("err = %v; want %v", err, content.ErrNotFound)
		}
	})
}

func TestService_ParentChecks(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.CreateUnit(ctx, content.NewUnit{CourseID: 999, Title: "Unit 1", Description: "Basics"}); err != content.ErrNotFound {
		t.Errorf("err = %v; want %v", err, content.ErrNotFound)
	}
	if _, err := svc.CreateLesson(ctx, content.NewLesson{UnitID: 999, Title: "Nouns"}); err != content.ErrNotFound {
		t.Errorf("err = %v; want %v", err, content.ErrNotFound)
	}
	if _, err := svc.CreateChallenge(ctx, content.NewChallenge{LessonID: 999, Type: content.ChallengeTypeSelect, Question: "?"}); err != content.ErrNotFound {
		t.Errorf("err = %v; want %v", err, content.ErrNotFound)
	}
	correct := true
	if _, err := svc.CreateChallengeOption(ctx, content.NewChallengeOption{ChallengeID: 999, Text: "x", Correct: &correct}); err != content.ErrNotFound {
		t.Errorf("err = %v; want %v", err, content.ErrNotFound)
	}
}

func TestService_CourseTree(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	crs, _ := svc.CreateCourse(ctx, content.NewCourse{Title: "Spanish", ImageSrc: "/es.svg"})
	unit, _ := svc.CreateUnit(ctx, content.NewUnit{CourseID: crs.ID, Title: "Unit 1", Description: "Basics"})
	nouns, _ := svc.CreateLesson(ctx, content.NewLesson{UnitID: unit.ID, Title: "Nouns"})
	verbs, _ := svc.CreateLesson(ctx, content.NewLesson{UnitID: unit.ID, Title: "Verbs"})
	chl, _ := svc.CreateChallenge(ctx, content.NewChallenge{LessonID: nouns.ID, Type: content.ChallengeTypeSelect, Question: "?"})

	tree, err := svc.CourseTree(ctx, crs.ID)
	if err != nil {
		t.Fatalf("CourseTree() failed: %v", err)
	}
	if len(tree) != 1 || tree[0].ID != unit.ID {
		t.Fatalf("unexpected tree: %+v", tree)
	}
	if len(tree[0].Lessons) != 2 {
		t.Fatalf("lessons = %d; want 2", len(tree[0].Lessons))
	}
	if tree[0].Lessons[0].ID != nouns.ID || tree[0].Lessons[1].ID != verbs.ID {
		t.Errorf("lesson order: %+v", tree[0].Lessons)
	}
	if len(tree[0].Lessons[0].ChallengeIDs) != 1 || tree[0].Lessons[0].ChallengeIDs[0] != chl.ID {
		t.Errorf("challenge ids: %+v", tree[0].Lessons[0].ChallengeIDs)
	}
}
