package create

import (
	"context"

	"github.com/magabrotheeeer/fintask/internal/models"
)

// Service описывает создание транзакции.
type Service interface {
	Create(ctx context.Context, ownerID string, req models.TransactionRequest) (*models.Transaction, error)
}
