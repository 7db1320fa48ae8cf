package users

import (
	"context"

	"github.com/magabrotheeeer/fintask/internal/models"
)

// Service описывает список пользователей.
type Service interface {
	Users(ctx context.Context, filter models.UserFilter) (models.ListResult[models.User], error)
}
