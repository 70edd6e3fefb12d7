package main

import (
	"context"
	"fmt"

	"github.com/volatiletech/null/v8"

	"github.com/smartbit/smartbit/core/content"
)

// seed loads a small Spanish course so a fresh install has something to
// learn right away.
func (cli *commandLine) seed() error {
	ctx := context.Background()

	course, err := cli.contentSvc.CreateCourse(ctx, content.NewCourse{
		Title:    "Spanish",
		ImageSrc: "/es.svg",
	})
	if err != nil {
		return err
	}

	unit, err := cli.contentSvc.CreateUnit(ctx, content.NewUnit{
		CourseID:    course.ID,
		Title:       "Unit 1",
		Description: fmt.Sprintf("Learn the basics of %s", course.Title),
	})
	if err != nil {
		return err
	}

	for _, title := range []string{"Nouns", "Verbs", "Adjectives", "Phrases", "Sentences"} {
		lesson, err := cli.contentSvc.CreateLesson(ctx, content.NewLesson{
			UnitID: unit.ID,
			Title:  title,
		})
		if err != nil {
			return err
		}
		if err := cli.seedChallenges(ctx, lesson.ID); err != nil {
			return err
		}
	}

	logger.Printf("seeded course %q (id=%d)\n", course.Title, course.ID)
	return nil
}

func (cli *commandLine) seedChallenges(ctx context.Context, lessonID int) error {
	type option struct {
		text    string
		correct bool
		image   string
		audio   string
	}
	challenges := []struct {
		typ      string
		question string
		options  []option
	}{
		{
			typ:      content.ChallengeTypeSelect,
			question: `Which one of these is "the man"?`,
			options: []option{
				{text: "el hombre", correct: true, image: "/man.svg", audio: "/es_man.mp3"},
				{text: "la mujer", image: "/woman.svg", audio: "/es_woman.mp3"},
				{text: "el robot", image: "/robot.svg", audio: "/es_robot.mp3"},
			},
		},
		{
			typ:      content.ChallengeTypeAssist,
			question: `"the man"`,
			options: []option{
				{text: "el hombre", correct: true, audio: "/es_man.mp3"},
				{text: "la mujer", audio: "/es_woman.mp3"},
				{text: "el robot", audio: "/es_robot.mp3"},
			},
		},
		{
			typ:      content.ChallengeTypeSelect,
			question: `Which one of these is "the robot"?`,
			options: []option{
				{text: "el hombre", image: "/man.svg", audio: "/es_man.mp3"},
				{text: "la mujer", image: "/woman.svg", audio: "/es_woman.mp3"},
				{text: "el robot", correct: true, image: "/robot.svg", audio: "/es_robot.mp3"},
			},
		},
	}

	for _, ch := range challenges {
		challenge, err := cli.contentSvc.CreateChallenge(ctx, content.NewChallenge{
			LessonID: lessonID,
			Type:     ch.typ,
			Question: ch.question,
		})
		if err != nil {
			return err
		}
		for _, opt := range ch.options {
			correct := opt.correct
			_, err := cli.contentSvc.CreateChallengeOption(ctx, content.NewChallengeOption{
				ChallengeID: challenge.ID,
				Text:        opt.text,
				Correct:     &correct,
				ImageSrc:    null.NewString(opt.image, opt.image != ""),
				AudioSrc:    null.NewString(opt.audio, opt.audio != ""),
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}
