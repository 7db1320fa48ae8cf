package update

import (
	"context"

	"github.com/magabrotheeeer/fintask/internal/models"
)

// Service описывает частичное изменение задачи.
type Service interface {
	Update(ctx context.Context, ownerID, id string, patch models.TaskPatch) (*models.Task, error)
}
