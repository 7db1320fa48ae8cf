package useractivity

import (
	"context"

	"github.com/magabrotheeeer/fintask/internal/lib/period"
	"github.com/magabrotheeeer/fintask/internal/models"
)

// Service строит аналитику активности пользователей.
type Service interface {
	UserActivity(ctx context.Context, p period.Name) (*models.UserActivity, error)
}
