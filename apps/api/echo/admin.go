package echoapi

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/smartbit/smartbit/core"
	"github.com/smartbit/smartbit/core/progress"
)

type adminApi struct {
	conf *core.Config
	svc  *progress.Service
}

func registerAdminAPI(g *echo.Group, jwt, admin echo.MiddlewareFunc, deps ServerDeps) {
	api := adminApi{
		conf: deps.Conf,
		svc:  deps.ProgressSvc,
	}

	ag := g.Group("/admin", jwt, admin)
	ag.GET("/users", api.queryUsers)
	ag.GET("/upload-auth", api.uploadAuth)
}

// Handlers

func (api *adminApi) queryUsers(ctx echo.Context) error {
	filter := new(progress.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}

	data, err := api.svc.AdminUsers(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	return ctx.JSON(http.StatusOK, data)
}

// uploadAuth mints short-lived ImageKit upload credentials so editors
// can push media straight to the CDN.
func (api *adminApi) uploadAuth(ctx echo.Context) error {
	token := uuid.New().String()
	expire := time.Now().Add(api.conf.ImageKit.UploadExpiresIn).Unix()

	mac := hmac.New(sha1.New, []byte(api.conf.ImageKit.PrivateKey))
	mac.Write([]byte(token + strconv.FormatInt(expire, 10)))

	return ctx.JSON(http.StatusOK, UploadAuthResponse{
		Token:     token,
		Expire:    expire,
		Signature: hex.EncodeToString(mac.Sum(nil)),
	})
}

type UploadAuthResponse struct {
	Token     string `json:"token"`
	Expire    int64  `json:"expire"`
	Signature string `json:"signature"`
}
