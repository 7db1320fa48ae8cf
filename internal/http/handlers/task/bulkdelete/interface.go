package bulkdelete

import (
	"context"

	"github.com/magabrotheeeer/fintask/internal/models"
)

// Service описывает массовое удаление задач.
type Service interface {
	BulkDelete(ctx context.Context, ownerID string, req models.BulkTaskDelete) (int64, error)
}
