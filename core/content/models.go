package content

import (
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/smartbit/smartbit/core"
)

// Challenge kinds. SELECT shows the question as text; ASSIST plays it back.
const (
	ChallengeTypeSelect = "SELECT"
	ChallengeTypeAssist = "ASSIST"
)

type (
	Course struct {
		ID       int    `json:"id" db:"id"`
		Title    string `json:"title" db:"title"`
		ImageSrc string `json:"imageSrc" db:"image_src"`
		Order    int    `json:"order" db:"order"`
	}

	Unit struct {
		ID          int    `json:"id" db:"id"`
		CourseID    int    `json:"courseId" db:"course_id"`
		Title       string `json:"title" db:"title"`
		Description string `json:"description" db:"description"`
		Order       int    `json:"order" db:"order"`
	}

	Lesson struct {
		ID     int    `json:"id" db:"id"`
		UnitID int    `json:"unitId" db:"unit_id"`
		Title  string `json:"title" db:"title"`
		Order  int    `json:"order" db:"order"`
	}

	Challenge struct {
		ID       int    `json:"id" db:"id"`
		LessonID int    `json:"lessonId" db:"lesson_id"`
		Type     string `json:"type" db:"type"`
		Question string `json:"question" db:"question"`
		Order    int    `json:"order" db:"order"`

		Options []ChallengeOption `json:"challengeOptions,omitempty" db:"-"`
	}

	ChallengeOption struct {
		ID          int         `json:"id" db:"id"`
		ChallengeID int         `json:"challengeId" db:"challenge_id"`
		Text        string      `json:"text" db:"text"`
		Correct     bool        `json:"correct" db:"correct"`
		ImageSrc    null.String `json:"imageSrc" db:"image_src"`
		AudioSrc    null.String `json:"audioSrc" db:"audio_src"`
	}
)

// CorrectOptionID returns the id of the option flagged correct, or 0 if
// the authored content carries none.
func (c Challenge) CorrectOptionID() int {
	for _, opt := range c.Options {
		if opt.Correct {
			return opt.ID
		}
	}
	return 0
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Title    string `json:"title" validate:"required"`
	ImageSrc string `json:"imageSrc" validate:"required"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Title = core.CleanString(nc.Title)
	nc.ImageSrc = core.CleanString(nc.ImageSrc)
	return validate.Struct(nc)
}

// UpdateCourse defines what information may be provided to modify an existing Course.
type UpdateCourse struct {
	Title    string `json:"title"`
	ImageSrc string `json:"imageSrc"`
}

func (uc *UpdateCourse) Validate(validate *validator.Validate, orig Course) error {
	if title := core.CleanString(uc.Title); title != "" {
		uc.Title = title
	} else {
		uc.Title = orig.Title
	}
	if src := core.CleanString(uc.ImageSrc); src != "" {
		uc.ImageSrc = src
	} else {
		uc.ImageSrc = orig.ImageSrc
	}
	return validate.Struct(uc)
}

type NewUnit struct {
	CourseID    int    `json:"courseId" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

func (nu *NewUnit) Validate(validate *validator.Validate) error {
	nu.Title = core.CleanString(nu.Title)
	nu.Description = core.CleanString(nu.Description)
	return validate.Struct(nu)
}

type UpdateUnit struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (uu *UpdateUnit) Validate(validate *validator.Validate, orig Unit) error {
	if title := core.CleanString(uu.Title); title != "" {
		uu.Title = title
	} else {
		uu.Title = orig.Title
	}
	if desc := core.CleanString(uu.Description); desc != "" {
		uu.Description = desc
	} else {
		uu.Description = orig.Description
	}
	return validate.Struct(uu)
}

type NewLesson struct {
	UnitID int    `json:"unitId" validate:"required"`
	Title  string `json:"title" validate:"required"`
}

func (nl *NewLesson) Validate(validate *validator.Validate) error {
	nl.Title = core.CleanString(nl.Title)
	return validate.Struct(nl)
}

type UpdateLesson struct {
	Title string `json:"title" validate:"required"`
}

func (ul *UpdateLesson) Validate(validate *validator.Validate) error {
	ul.Title = core.CleanString(ul.Title)
	return validate.Struct(ul)
}

type NewChallenge struct {
	LessonID int    `json:"lessonId" validate:"required"`
	Type     string `json:"type" validate:"required,challengetype"`
	Question string `json:"question" validate:"required"`
}

func (nc *NewChallenge) Validate(validate *validator.Validate) error {
	nc.Type = core.CleanString(nc.Type)
	nc.Question = core.CleanString(nc.Question)
	return validate.Struct(nc)
}

type UpdateChallenge struct {
	Type     string `json:"type" validate:"omitempty,challengetype"`
	Question string `json:"question"`
}

func (uc *UpdateChallenge) Validate(validate *validator.Validate, orig Challenge) error {
	if typ := core.CleanString(uc.Type); typ != "" {
		uc.Type = typ
	} else {
		uc.Type = orig.Type
	}
	if q := core.CleanString(uc.Question); q != "" {
		uc.Question = q
	} else {
		uc.Question = orig.Question
	}
	return validate.Struct(uc)
}

type NewChallengeOption struct {
	ChallengeID int         `json:"challengeId" validate:"required"`
	Text        string      `json:"text" validate:"required"`
	Correct     *bool       `json:"correct" validate:"required"`
	ImageSrc    null.String `json:"imageSrc"`
	AudioSrc    null.String `json:"audioSrc"`
}

func (no *NewChallengeOption) Validate(validate *validator.Validate) error {
	no.Text = core.CleanString(no.Text)
	return validate.Struct(no)
}

type UpdateChallengeOption struct {
	Text     string      `json:"text"`
	Correct  *bool       `json:"correct"`
	ImageSrc null.String `json:"imageSrc"`
	AudioSrc null.String `json:"audioSrc"`
}

func (uo *UpdateChallengeOption) Validate(validate *validator.Validate, orig ChallengeOption) error {
	if text := core.CleanString(uo.Text); text != "" {
		uo.Text = text
	} else {
		uo.Text = orig.Text
	}
	if uo.Correct == nil {
		uo.Correct = &orig.Correct
	}
	if !uo.ImageSrc.Valid {
		uo.ImageSrc = orig.ImageSrc
	}
	if !uo.AudioSrc.Valid {
		uo.AudioSrc = orig.AudioSrc
	}
	return validate.Struct(uo)
}

// ReorderItem assigns a new position to a single row.
type ReorderItem struct {
	ID    int `json:"id" validate:"required"`
	Order int `json:"order" validate:"required"`
}

type Reorder struct {
	Items []ReorderItem `json:"items" validate:"required,dive"`
}

func (r *Reorder) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}

type (
	// LessonNode is a Lesson with the ids of its challenges, in order.
	LessonNode struct {
		Lesson
		ChallengeIDs []int
	}

	// UnitNode is a Unit with its lessons, both in authored order.
	UnitNode struct {
		Unit
		Lessons []LessonNode
	}
)
