package remove

import "context"

// Service описывает удаление задачи.
type Service interface {
	Delete(ctx context.Context, ownerID, id string) error
}
