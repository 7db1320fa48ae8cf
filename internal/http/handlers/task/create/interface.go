package create

import (
	"context"

	"github.com/magabrotheeeer/fintask/internal/models"
)

// Service описывает создание задачи.
type Service interface {
	Create(ctx context.Context, ownerID string, req models.TaskRequest) (*models.Task, error)
}
