package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/opsdeskhq/opsdesk/billing"
	"github.com/opsdeskhq/opsdesk/db/models"
)

func (svc *OpsdeskService) CreateProject(ctx context.Context, project *models.Project) error {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	_, err := svc.DB.NewInsert().Model(project).Exec(ctx)
	return err
}

func (svc *OpsdeskService) FindProject(ctx context.Context, projectId string) (*models.Project, error) {
	var project models.Project

	err := svc.DB.NewSelect().Model(&project).Where("project.id = ?", projectId).Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (svc *OpsdeskService) Projects(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}

	err := svc.DB.NewSelect().Model(&projects).
		OrderExpr("active DESC").
		OrderExpr("project_name ASC").
		Scan(ctx)
	return projects, err
}

func (svc *OpsdeskService) ProjectsForClient(ctx context.Context, clientId string) ([]models.Project, error) {
	projects := []models.Project{}

	err := svc.DB.NewSelect().Model(&projects).
		Where("client_id = ?", clientId).
		OrderExpr("active DESC").
		OrderExpr("project_name ASC").
		Scan(ctx)
	return projects, err
}

func (svc *OpsdeskService) UpdateProject(ctx context.Context, project *models.Project) error {
	_, err := svc.DB.NewUpdate().Model(project).WherePK().Exec(ctx)
	return err
}

func (svc *OpsdeskService) DeleteProject(ctx context.Context, projectId string) error {
	_, err := svc.DB.NewDelete().Model((*models.Project)(nil)).Where("id = ?", projectId).Exec(ctx)
	return err
}

// ResolveProjectRate resolves the hourly rate applicable to a project:
// the project's own rate, else the client's default billable rate, else nil.
func (svc *OpsdeskService) ResolveProjectRate(ctx context.Context, projectId string) (*float64, error) {
	project, err := svc.FindProject(ctx, projectId)
	if err != nil {
		return nil, err
	}
	if project.HourlyRate != nil {
		return project.HourlyRate, nil
	}
	client, err := svc.FindClient(ctx, project.ClientID)
	if err != nil {
		return nil, err
	}
	return billing.ResolveRate(project.HourlyRate, client.ClientBillableRate), nil
}
