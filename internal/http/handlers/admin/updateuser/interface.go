package updateuser

import (
	"context"

	"github.com/magabrotheeeer/fintask/internal/models"
)

// Service описывает изменение пользователя администратором.
type Service interface {
	UpdateUser(ctx context.Context, actorID, id string, upd models.UserUpdate) (*models.User, error)
}
