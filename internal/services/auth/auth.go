// Package services содержит логику бизнес-уровня для регистрации, входа
// и аутентификации пользователей.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/fintask/internal/lib/apperr"
	"github.com/magabrotheeeer/fintask/internal/lib/jwt"
	"github.com/magabrotheeeer/fintask/internal/lib/password"
	"github.com/magabrotheeeer/fintask/internal/lib/sl"
	"github.com/magabrotheeeer/fintask/internal/models"
	"github.com/magabrotheeeer/fintask/internal/rabbitmq"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя.
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByEmail возвращает пользователя по email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUser возвращает пользователя по ID.
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// EventPublisher публикует события аудита.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// AuthService отвечает за регистрацию, вход и проверку токенов.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	events   EventPublisher
	log      *slog.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, events EventPublisher, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		events:   events,
		log:      log,
		validate: models.NewValidator(),
		now:      time.Now,
	}
}

// Register создает пользователя с хэшированным паролем и сразу выдает токен.
// Занятый email дает apperr.ErrConflict.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.Session, error) {
	const op = "services.auth.Register"

	req.Email = normalizeEmail(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	if err := models.Validate(s.validate, req); err != nil {
		return nil, err
	}

	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         req.Role,
		CreatedAt:    s.now().UTC(),
	}
	if err = s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	session, err := s.session(user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user registered", slog.String("user_id", user.ID), slog.String("role", user.Role))
	s.publish(ctx, rabbitmq.UserRegistered, user)
	return session, nil
}

// Login проверяет пароль и выдает токен. Неизвестный email и неверный
// пароль неразличимы для клиента.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.Session, error) {
	const op = "services.auth.Login"

	req.Email = normalizeEmail(req.Email)
	if err := models.Validate(s.validate, req); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.Unauthenticated("invalid credentials")
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = password.CompareHash(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, apperr.Unauthenticated("invalid credentials")
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	session, err := s.session(user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return session, nil
}

// Authenticate проверяет токен и возвращает актуального пользователя из
// хранилища. Роль берется из базы, а не из токена.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	const op = "services.auth.Authenticate"

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrUnauthenticated, err, "invalid or expired token")
	}

	user, err := s.users.GetUser(ctx, claims.UserID())
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.Unauthenticated("user no longer exists")
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

func (s *AuthService) session(user *models.User) (*models.Session, error) {
	token, err := s.jwtMaker.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &models.Session{User: user.Public(), Token: token}, nil
}

func (s *AuthService) publish(ctx context.Context, event string, user *models.User) {
	err := s.events.Publish(ctx, event, rabbitmq.UserEvent{
		Event:     event,
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		Timestamp: s.now().UTC(),
	})
	if err != nil {
		s.log.Warn("failed to publish event", slog.String("event", event), sl.Err(err))
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
