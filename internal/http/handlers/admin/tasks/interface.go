package tasks

import (
	"context"

	"github.com/magabrotheeeer/fintask/internal/models"
)

// Service описывает глобальный список задач.
type Service interface {
	Tasks(ctx context.Context, filter models.TaskFilter) (models.ListResult[models.Task], error)
}
