package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/smartbit/smartbit/core/progress"
)

type progressApi struct {
	svc      *progress.Service
	validate *validator.Validate
}

func registerProgressAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := progressApi{
		svc:      deps.ProgressSvc,
		validate: deps.Validate,
	}

	// all learner endpoints require auth
	ag := g.Group("", jwt)
	ag.GET("/learn", api.learn)
	ag.GET("/lessons/:id", api.lesson)
	ag.POST("/challenges/:id/answer", api.answer)
	ag.GET("/shop", api.shop)
	ag.POST("/shop/refill", api.refill)
	ag.GET("/quests", api.quests)
	ag.GET("/leaderboard", api.leaderboard)
	ag.POST("/courses/:id/activate", api.activateCourse)
}

// Handlers

func (api *progressApi) learn(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	data, err := api.svc.Learn(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "building learn tree")
	}
	return ctx.JSON(http.StatusOK, data)
}

func (api *progressApi) lesson(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	data, err := api.svc.Lesson(ctx.Request().Context(), claims.Subject, id)
	if err != nil {
		return errors.Wrap(err, "getting lesson")
	}
	return ctx.JSON(http.StatusOK, data)
}

func (api *progressApi) answer(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	var data progress.AnswerRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AnswerRequest")
	}
	data.ChallengeID = id
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	res, err := api.svc.CheckAnswer(ctx.Request().Context(), claims.Subject, data)
	if err != nil {
		return errors.Wrap(err, "checking answer")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *progressApi) shop(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	data, err := api.svc.Shop(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "getting shop data")
	}
	return ctx.JSON(http.StatusOK, data)
}

func (api *progressApi) refill(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	res, err := api.svc.RefillHearts(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "refilling hearts")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *progressApi) quests(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	data, err := api.svc.QuestsFor(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "getting quests")
	}
	return ctx.JSON(http.StatusOK, data)
}

func (api *progressApi) leaderboard(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	data, err := api.svc.Leaderboard(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "getting leaderboard")
	}
	return ctx.JSON(http.StatusOK, data)
}

func (api *progressApi) activateCourse(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	prog, err := api.svc.ActivateCourse(ctx.Request().Context(), claims.Subject, id, progress.ActivateCourse{
		UserName:     claims.Name,
		UserImageSrc: claims.Picture,
	})
	if err != nil {
		return errors.Wrap(err, "activating course")
	}
	return ctx.JSON(http.StatusOK, prog)
}

// pathID parses the `:id` path param.
func pathID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, errHttpNotFound
	}
	return id, nil
}
