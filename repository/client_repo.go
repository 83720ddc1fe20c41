package repository

import (
	"context"

	"platerental/models"
)

type ClientRepository interface {
	CreateClient(ctx context.Context, c *models.Client) error
	GetClient(ctx context.Context, id int64) (*models.Client, error)
	ListClients(ctx context.Context) ([]*models.Client, error)
}
