package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ougirez/malaria-analytics/internal/domain"
	"github.com/ougirez/malaria-analytics/internal/pkg/constants"
	"github.com/ougirez/malaria-analytics/internal/pkg/logger"
)

// httpErrorHandler answers with domain.ErrorResponse. A coded error anywhere
// in the chain decides the status, so a missing region behind a ServerFailure
// is still a 404.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	resp := domain.ErrorResponse{
		Message: err.Error(),
		Code:    http.StatusInternalServerError,
	}

	var failure domain.Failure
	if errors.As(err, &failure) {
		resp.Code = failure.Code()
		resp.Kind = string(failure.Kind())
		resp.Field = domain.FieldOf(err)
	}

	var ce *constants.CodedError
	if errors.As(err, &ce) {
		resp.Code = ce.Code()
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		resp.Code = he.Code
		resp.Message = fmt.Sprint(he.Message)
	}

	ctx := c.Request().Context()
	if resp.Code >= http.StatusInternalServerError {
		logger.Errorf(ctx, "%s %s: %s", c.Request().Method, c.Path(), err.Error())
	} else {
		logger.Debugf(ctx, "%s %s: %s", c.Request().Method, c.Path(), err.Error())
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(resp.Code)
		return
	}
	_ = c.JSON(resp.Code, resp)
}
