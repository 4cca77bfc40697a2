package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/opsdeskhq/opsdesk/db/models"
	"github.com/opsdeskhq/opsdesk/lib/responses"
	"github.com/opsdeskhq/opsdesk/lib/service"
)

// ProjectController : Project CRUD controller struct
type ProjectController struct {
	svc *service.OpsdeskService
}

func NewProjectController(svc *service.OpsdeskService) *ProjectController {
	return &ProjectController{svc: svc}
}

type ProjectResponseBody struct {
	models.Project
	ResolvedRate *float64 `json:"resolved_rate"`
}

// GetProjects lists projects, active first. An optional client_id query
// parameter narrows the list to one client.
func (controller *ProjectController) GetProjects(c echo.Context) error {
	ctx := c.Request().Context()

	var projects []models.Project
	var err error
	if clientId := c.QueryParam("client_id"); clientId != "" {
		projects, err = controller.svc.ProjectsForClient(ctx, clientId)
	} else {
		projects, err = controller.svc.Projects(ctx)
	}
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, projects)
}

// GetProject returns a single project together with the hourly rate that
// would currently apply to it.
func (controller *ProjectController) GetProject(c echo.Context) error {
	ctx := c.Request().Context()

	project, err := controller.svc.FindProject(ctx, c.Param("project_id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	rate, err := controller.svc.ResolveProjectRate(ctx, project.ID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, &ProjectResponseBody{Project: *project, ResolvedRate: rate})
}

func (controller *ProjectController) CreateProject(c echo.Context) error {
	var project models.Project

	if err := c.Bind(&project); err != nil {
		c.Logger().Errorf("Failed to load create project request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&project); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	// a project must belong to an existing client
	if _, err := controller.svc.FindClient(c.Request().Context(), project.ClientID); err != nil {
		return writeServiceError(c, err)
	}

	if err := controller.svc.CreateProject(c.Request().Context(), &project); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, &project)
}

func (controller *ProjectController) UpdateProject(c echo.Context) error {
	ctx := c.Request().Context()

	project, err := controller.svc.FindProject(ctx, c.Param("project_id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	if err := c.Bind(project); err != nil {
		c.Logger().Errorf("Failed to load update project request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(project); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	project.ID = c.Param("project_id")

	if err := controller.svc.UpdateProject(ctx, project); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

func (controller *ProjectController) DeleteProject(c echo.Context) error {
	if err := controller.svc.DeleteProject(c.Request().Context(), c.Param("project_id")); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
