package taskprogress

import (
	"context"

	"github.com/magabrotheeeer/fintask/internal/lib/period"
	"github.com/magabrotheeeer/fintask/internal/models"
)

// Service считает прогресс по задачам.
type Service interface {
	TaskProgress(ctx context.Context, ownerID string, p period.Name) (*models.TaskProgress, error)
}
