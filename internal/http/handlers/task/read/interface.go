package read

import (
	"context"

	"github.com/magabrotheeeer/fintask/internal/models"
)

// Service описывает получение одной задачи.
type Service interface {
	Get(ctx context.Context, ownerID, id string) (*models.Task, error)
}
