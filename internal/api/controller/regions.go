package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (c *Controller) GetRegions(ctx echo.Context) error {
	regions, err := c.regions.ListRegions(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, regions)
}
