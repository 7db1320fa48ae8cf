package bulkupdate

import (
	"context"

	"github.com/magabrotheeeer/fintask/internal/models"
)

// Service описывает массовое изменение задач.
type Service interface {
	BulkUpdate(ctx context.Context, ownerID string, upd models.BulkTaskUpdate) (int64, error)
}
