package list

import (
	"context"

	"github.com/magabrotheeeer/fintask/internal/models"
)

// Service описывает постраничный список транзакций.
type Service interface {
	List(ctx context.Context, filter models.TransactionFilter) (models.ListResult[models.Transaction], error)
}
