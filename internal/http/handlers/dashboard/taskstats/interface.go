package taskstats

import (
	"context"

	"github.com/magabrotheeeer/fintask/internal/lib/period"
	"github.com/magabrotheeeer/fintask/internal/models"
)

// Service считает статистику задач за период.
type Service interface {
	TaskStats(ctx context.Context, ownerID string, p period.Name) (models.TaskStats, error)
}
