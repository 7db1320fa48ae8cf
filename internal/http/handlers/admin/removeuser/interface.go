package removeuser

import "context"

// Service описывает удаление пользователя вместе с его данными.
type Service interface {
	DeleteUser(ctx context.Context, actorID, id string) error
}
