package server

import (
	"errors"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/example/ministore/internal/service"
)

// fail maps the service error taxonomy to an HTTP status and writes the
// usual {"code", "msg"} envelope.
func fail(ctx iris.Context, err error) {
	status := iris.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		status = iris.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		status = iris.StatusUnauthorized
	case errors.Is(err, service.ErrAlreadyExists):
		status = iris.StatusConflict
	case errors.Is(err, service.ErrStorageUnavailable):
		status = iris.StatusServiceUnavailable
		zap.L().Error("store unavailable", zap.Error(err))
	}
	ctx.StopWithJSON(status, iris.Map{"code": status, "msg": err.Error()})
}

func ok(ctx iris.Context, data interface{}) {
	ctx.JSON(iris.Map{"code": 0, "data": data})
}
