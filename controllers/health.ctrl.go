package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/opsdeskhq/opsdesk/lib/service"
)

type HealthController struct {
	svc *service.OpsdeskService
}

func NewHealthController(svc *service.OpsdeskService) *HealthController {
	return &HealthController{svc: svc}
}

// Health reports liveness including database reachability.
func (controller *HealthController) Health(c echo.Context) error {
	if err := controller.svc.DB.PingContext(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "database unreachable")
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
