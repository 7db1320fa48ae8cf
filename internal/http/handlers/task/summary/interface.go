package summary

import (
	"context"

	"github.com/magabrotheeeer/fintask/internal/models"
)

// Service описывает сводку задач по статусам.
type Service interface {
	Summary(ctx context.Context, ownerID string) (*models.TaskSummary, error)
}
