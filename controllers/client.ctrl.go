package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/opsdeskhq/opsdesk/db/models"
	"github.com/opsdeskhq/opsdesk/lib/responses"
	"github.com/opsdeskhq/opsdesk/lib/service"
)

// ClientController : Client CRUD controller struct
type ClientController struct {
	svc *service.OpsdeskService
}

func NewClientController(svc *service.OpsdeskService) *ClientController {
	return &ClientController{svc: svc}
}

func (controller *ClientController) GetClients(c echo.Context) error {
	clients, err := controller.svc.Clients(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, clients)
}

func (controller *ClientController) GetClient(c echo.Context) error {
	client, err := controller.svc.FindClient(c.Request().Context(), c.Param("client_id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, client)
}

func (controller *ClientController) CreateClient(c echo.Context) error {
	var client models.Client

	if err := c.Bind(&client); err != nil {
		c.Logger().Errorf("Failed to load create client request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&client); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	if err := controller.svc.CreateClient(c.Request().Context(), &client); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, &client)
}

func (controller *ClientController) UpdateClient(c echo.Context) error {
	ctx := c.Request().Context()

	client, err := controller.svc.FindClient(ctx, c.Param("client_id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	if err := c.Bind(client); err != nil {
		c.Logger().Errorf("Failed to load update client request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(client); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	// the path parameter wins over whatever the body says
	client.ID = c.Param("client_id")

	if err := controller.svc.UpdateClient(ctx, client); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, client)
}

func (controller *ClientController) DeleteClient(c echo.Context) error {
	if err := controller.svc.DeleteClient(c.Request().Context(), c.Param("client_id")); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
