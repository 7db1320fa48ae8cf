package stats

import (
	"context"

	"github.com/magabrotheeeer/fintask/internal/models"
)

// Service считает общие показатели системы.
type Service interface {
	Stats(ctx context.Context) (*models.AdminStats, error)
}
