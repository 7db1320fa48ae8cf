package register

import (
	"context"

	"github.com/magabrotheeeer/fintask/internal/models"
)

// Service описывает регистрацию пользователя.
type Service interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.Session, error)
}
