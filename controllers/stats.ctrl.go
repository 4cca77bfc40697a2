package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/opsdeskhq/opsdesk/lib/service"
)

type StatsController struct {
	svc *service.OpsdeskService
}

func NewStatsController(svc *service.OpsdeskService) *StatsController {
	return &StatsController{svc: svc}
}

// Stats returns the portfolio dashboard figures across all invoices.
func (controller *StatsController) Stats(c echo.Context) error {
	stats, err := controller.svc.Stats(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
