package recent

import (
	"context"

	"github.com/magabrotheeeer/fintask/internal/models"
)

// Service возвращает ленту последних событий.
type Service interface {
	RecentActivity(ctx context.Context, ownerID string, limit int) (*models.RecentActivity, error)
}
