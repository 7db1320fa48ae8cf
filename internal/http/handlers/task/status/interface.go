package status

import (
	"context"

	"github.com/magabrotheeeer/fintask/internal/models"
)

// Service описывает смену статуса задачи.
type Service interface {
	UpdateStatus(ctx context.Context, ownerID, id string, req models.TaskStatusRequest) (*models.Task, error)
}
