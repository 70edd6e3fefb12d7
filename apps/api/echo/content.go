package echoapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/smartbit/smartbit/core"
	"github.com/smartbit/smartbit/core/content"
)

type contentApi struct {
	svc      *content.Service
	validate *validator.Validate
}

func registerContentAPI(g *echo.Group, jwt, admin echo.MiddlewareFunc, deps ServerDeps) {
	api := contentApi{
		svc:      deps.ContentSvc,
		validate: deps.Validate,
	}

	// course catalog is public
	g.GET("/courses", api.queryCourses)

	// editor endpoints
	ag := g.Group("/admin", jwt, admin)

	cg := ag.Group("/courses")
	cg.GET("", api.queryCourses)
	cg.POST("", api.createCourse)
	cg.PUT("/reorder", api.reorderCourses)
	cg.GET("/:id", api.retrieveCourse)
	cg.PUT("/:id", api.updateCourse)
	cg.DELETE("/:id", api.destroyCourse)

	ug := ag.Group("/units")
	ug.GET("", api.queryUnits)
	ug.POST("", api.createUnit)
	ug.PUT("/reorder", api.reorderUnits)
	ug.GET("/:id", api.retrieveUnit)
	ug.PUT("/:id", api.updateUnit)
	ug.DELETE("/:id", api.destroyUnit)

	lg := ag.Group("/lessons")
	lg.GET("", api.queryLessons)
	lg.POST("", api.createLesson)
	lg.PUT("/reorder", api.reorderLessons)
	lg.GET("/:id", api.retrieveLesson)
	lg.PUT("/:id", api.updateLesson)
	lg.DELETE("/:id", api.destroyLesson)

	chg := ag.Group("/challenges")
	chg.GET("", api.queryChallenges)
	chg.POST("", api.createChallenge)
	chg.PUT("/reorder", api.reorderChallenges)
	chg.GET("/:id", api.retrieveChallenge)
	chg.PUT("/:id", api.updateChallenge)
	chg.DELETE("/:id", api.destroyChallenge)

	og := ag.Group("/challenge-options")
	og.GET("", api.queryChallengeOptions)
	og.POST("", api.createChallengeOption)
	og.GET("/:id", api.retrieveChallengeOption)
	og.PUT("/:id", api.updateChallengeOption)
	og.DELETE("/:id", api.destroyChallengeOption)
}

// Courses

func (api *contentApi) queryCourses(ctx echo.Context) error {
	courses, err := api.svc.QueryCourses(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	if courses == nil {
		courses = []content.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *contentApi) createCourse(ctx echo.Context) error {
	var data content.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	course, err := api.svc.CreateCourse(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, course)
}

func (api *contentApi) retrieveCourse(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	course, err := api.svc.GetCourse(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting course")
	}
	return ctx.JSON(http.StatusOK, course)
}

func (api *contentApi) updateCourse(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	orig, err := api.svc.GetCourse(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting course")
	}

	var data content.UpdateCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}
	if err := data.Validate(api.validate, orig); err != nil {
		return err
	}

	course, err := api.svc.UpdateCourse(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, course)
}

func (api *contentApi) destroyCourse(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.DeleteCourse(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *contentApi) reorderCourses(ctx echo.Context) error {
	return api.reorder(ctx, api.svc.ReorderCourses)
}

// Units

func (api *contentApi) queryUnits(ctx echo.Context) error {
	courseID, err := queryInt(ctx, "courseId")
	if err != nil {
		return err
	}
	units, err := api.svc.QueryUnits(ctx.Request().Context(), courseID)
	if err != nil {
		return errors.Wrap(err, "querying units")
	}
	if units == nil {
		units = []content.Unit{}
	}
	return ctx.JSON(http.StatusOK, units)
}

func (api *contentApi) createUnit(ctx echo.Context) error {
	var data content.NewUnit
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUnit")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	unit, err := api.svc.CreateUnit(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating unit")
	}
	return ctx.JSON(http.StatusCreated, unit)
}

func (api *contentApi) retrieveUnit(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	unit, err := api.svc.GetUnit(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting unit")
	}
	return ctx.JSON(http.StatusOK, unit)
}

func (api *contentApi) updateUnit(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	orig, err := api.svc.GetUnit(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting unit")
	}

	var data content.UpdateUnit
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateUnit")
	}
	if err := data.Validate(api.validate, orig); err != nil {
		return err
	}

	unit, err := api.svc.UpdateUnit(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating unit")
	}
	return ctx.JSON(http.StatusOK, unit)
}

func (api *contentApi) destroyUnit(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.DeleteUnit(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting unit")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *contentApi) reorderUnits(ctx echo.Context) error {
	return api.reorder(ctx, api.svc.ReorderUnits)
}

// Lessons

func (api *contentApi) queryLessons(ctx echo.Context) error {
	unitID, err := queryInt(ctx, "unitId")
	if err != nil {
		return err
	}
	lessons, err := api.svc.QueryLessons(ctx.Request().Context(), unitID)
	if err != nil {
		return errors.Wrap(err, "querying lessons")
	}
	if lessons == nil {
		lessons = []content.Lesson{}
	}
	return ctx.JSON(http.StatusOK, lessons)
}

func (api *contentApi) createLesson(ctx echo.Context) error {
	var data content.NewLesson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLesson")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	lesson, err := api.svc.CreateLesson(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating lesson")
	}
	return ctx.JSON(http.StatusCreated, lesson)
}

func (api *contentApi) retrieveLesson(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	lesson, err := api.svc.GetLesson(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting lesson")
	}
	return ctx.JSON(http.StatusOK, lesson)
}

func (api *contentApi) updateLesson(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if _, err := api.svc.GetLesson(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "getting lesson")
	}

	var data content.UpdateLesson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateLesson")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	lesson, err := api.svc.UpdateLesson(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating lesson")
	}
	return ctx.JSON(http.StatusOK, lesson)
}

func (api *contentApi) destroyLesson(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.DeleteLesson(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting lesson")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *contentApi) reorderLessons(ctx echo.Context) error {
	return api.reorder(ctx, api.svc.ReorderLessons)
}

// Challenges

func (api *contentApi) queryChallenges(ctx echo.Context) error {
	lessonID, err := queryInt(ctx, "lessonId")
	if err != nil {
		return err
	}
	challenges, err := api.svc.QueryChallenges(ctx.Request().Context(), lessonID)
	if err != nil {
		return errors.Wrap(err, "querying challenges")
	}
	if challenges == nil {
		challenges = []content.Challenge{}
	}
	return ctx.JSON(http.StatusOK, challenges)
}

func (api *contentApi) createChallenge(ctx echo.Context) error {
	var data content.NewChallenge
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewChallenge")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	challenge, err := api.svc.CreateChallenge(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating challenge")
	}
	return ctx.JSON(http.StatusCreated, challenge)
}

func (api *contentApi) retrieveChallenge(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	challenge, err := api.svc.GetChallenge(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting challenge")
	}
	return ctx.JSON(http.StatusOK, challenge)
}

func (api *contentApi) updateChallenge(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	orig, err := api.svc.GetChallenge(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting challenge")
	}

	var data content.UpdateChallenge
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateChallenge")
	}
	if err := data.Validate(api.validate, orig); err != nil {
		return err
	}

	challenge, err := api.svc.UpdateChallenge(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating challenge")
	}
	return ctx.JSON(http.StatusOK, challenge)
}

func (api *contentApi) destroyChallenge(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.DeleteChallenge(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting challenge")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *contentApi) reorderChallenges(ctx echo.Context) error {
	return api.reorder(ctx, api.svc.ReorderChallenges)
}

// Challenge Options

func (api *contentApi) queryChallengeOptions(ctx echo.Context) error {
	challengeID, err := queryInt(ctx, "challengeId")
	if err != nil {
		return err
	}
	opts, err := api.svc.QueryChallengeOptions(ctx.Request().Context(), challengeID)
	if err != nil {
		return errors.Wrap(err, "querying challenge options")
	}
	if opts == nil {
		opts = []content.ChallengeOption{}
	}
	return ctx.JSON(http.StatusOK, opts)
}

func (api *contentApi) createChallengeOption(ctx echo.Context) error {
	var data content.NewChallengeOption
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewChallengeOption")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	opt, err := api.svc.CreateChallengeOption(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating challenge option")
	}
	return ctx.JSON(http.StatusCreated, opt)
}

func (api *contentApi) retrieveChallengeOption(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	opt, err := api.svc.GetChallengeOption(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting challenge option")
	}
	return ctx.JSON(http.StatusOK, opt)
}

func (api *contentApi) updateChallengeOption(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	orig, err := api.svc.GetChallengeOption(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting challenge option")
	}

	var data content.UpdateChallengeOption
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateChallengeOption")
	}
	if err := data.Validate(api.validate, orig); err != nil {
		return err
	}

	opt, err := api.svc.UpdateChallengeOption(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating challenge option")
	}
	return ctx.JSON(http.StatusOK, opt)
}

func (api *contentApi) destroyChallengeOption(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.DeleteChallengeOption(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting challenge option")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// helpers

func (api *contentApi) reorder(ctx echo.Context, fn func(context.Context, content.Reorder) error) error {
	var data content.Reorder
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Reorder")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	if err := fn(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "reordering")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// queryInt parses a required int query param.
func queryInt(ctx echo.Context, name string) (int, error) {
	val, err := strconv.Atoi(ctx.QueryParam(name))
	if err != nil {
		return 0, core.NewValidationError(nil, core.FieldError{Field: name, Error: "a valid id is required"})
	}
	return val, nil
}
