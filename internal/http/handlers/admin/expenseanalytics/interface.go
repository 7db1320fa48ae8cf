package expenseanalytics

import (
	"context"

	"github.com/magabrotheeeer/fintask/internal/lib/period"
	"github.com/magabrotheeeer/fintask/internal/models"
)

// Service строит глобальную аналитику расходов.
type Service interface {
	ExpenseAnalytics(ctx context.Context, p period.Name) (*models.ExpenseAnalytics, error)
}
