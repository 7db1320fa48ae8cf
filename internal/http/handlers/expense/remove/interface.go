package remove

import "context"

// Service описывает удаление транзакции.
type Service interface {
	Delete(ctx context.Context, ownerID, id string) error
}
