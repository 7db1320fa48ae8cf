package update

import (
	"context"

	"github.com/magabrotheeeer/fintask/internal/models"
)

// Service описывает частичное изменение транзакции.
type Service interface {
	Update(ctx context.Context, ownerID, id string, patch models.TransactionPatch) (*models.Transaction, error)
}
