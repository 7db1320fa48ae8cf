package list

import (
	"context"

	"github.com/magabrotheeeer/fintask/internal/models"
)

// Service описывает постраничный список задач.
type Service interface {
	List(ctx context.Context, filter models.TaskFilter) (models.ListResult[models.Task], error)
}
