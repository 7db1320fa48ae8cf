package expenses

import (
	"context"

	"github.com/magabrotheeeer/fintask/internal/models"
)

// Service описывает глобальный список транзакций.
type Service interface {
	Expenses(ctx context.Context, filter models.TransactionFilter) (models.ListResult[models.Transaction], error)
}
