package login

import (
	"context"

	"github.com/magabrotheeeer/fintask/internal/models"
)

// Service описывает вход пользователя по email и паролю.
type Service interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.Session, error)
}
