package overview

import (
	"context"

	"github.com/magabrotheeeer/fintask/internal/lib/period"
	"github.com/magabrotheeeer/fintask/internal/models"
)

// Service строит сводку за период.
type Service interface {
	Summarize(ctx context.Context, scope models.Scope, p period.Name) (*models.Summary, error)
}
