package expensechart

import (
	"context"

	"github.com/magabrotheeeer/fintask/internal/lib/period"
	"github.com/magabrotheeeer/fintask/internal/models"
)

// Service строит данные диаграммы расходов.
type Service interface {
	ExpenseChart(ctx context.Context, ownerID string, p period.Name) (*models.ExpenseChart, error)
}
