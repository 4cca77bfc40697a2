package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/opsdeskhq/opsdesk/db/models"
)

func (svc *OpsdeskService) CreateClient(ctx context.Context, client *models.Client) error {
	if client.ID == "" {
		client.ID = uuid.NewString()
	}
	_, err := svc.DB.NewInsert().Model(client).Exec(ctx)
	return err
}

func (svc *OpsdeskService) FindClient(ctx context.Context, clientId string) (*models.Client, error) {
	var client models.Client

	err := svc.DB.NewSelect().Model(&client).Where("id = ?", clientId).Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (svc *OpsdeskService) Clients(ctx context.Context) ([]models.Client, error) {
	clients := []models.Client{}

	err := svc.DB.NewSelect().Model(&clients).OrderExpr("client_first ASC").Scan(ctx)
	return clients, err
}

func (svc *OpsdeskService) UpdateClient(ctx context.Context, client *models.Client) error {
	_, err := svc.DB.NewUpdate().Model(client).WherePK().Exec(ctx)
	return err
}

func (svc *OpsdeskService) DeleteClient(ctx context.Context, clientId string) error {
	_, err := svc.DB.NewDelete().Model((*models.Client)(nil)).Where("id = ?", clientId).Exec(ctx)
	return err
}
