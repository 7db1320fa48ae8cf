package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fintask/internal/lib/apperr"
	customjwt "github.com/magabrotheeeer/fintask/internal/lib/jwt"
	"github.com/magabrotheeeer/fintask/internal/lib/password"
	"github.com/magabrotheeeer/fintask/internal/models"
	"github.com/magabrotheeeer/fintask/internal/rabbitmq"
	services "github.com/magabrotheeeer/fintask/internal/services/auth"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUser(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Мок для jwt.Maker
type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(userID, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*customjwt.CustomClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.CustomClaims), args.Error(1)
}

// Мок публикатора событий
type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(ctx context.Context, routingKey string, message any) error {
	args := m.Called(ctx, routingKey, message)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestAuthService_Register(t *testing.T) {
	validReq := models.RegisterRequest{
		Username: "testuser",
		Email:    " Test@Example.com ",
		Password: "password123",
		Role:     models.RoleUser,
	}

	tests := []struct {
		name       string
		req        models.RegisterRequest
		setupMocks func(r *UserRepoMock, j *JwtMakerMock, p *PublisherMock)
		wantErr    error
	}{
		{
			name: "successful registration",
			req:  validReq,
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock, p *PublisherMock) {
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(user *models.User) bool {
					return user.Email == "test@example.com" &&
						user.Username == "testuser" &&
						user.ID != "" &&
						user.PasswordHash != "" &&
						user.PasswordHash != "password123" &&
						user.Role == models.RoleUser
				})).Return(nil).Once()
				j.On("GenerateToken", mock.Anything, models.RoleUser).Return("token", nil).Once()
				p.On("Publish", mock.Anything, rabbitmq.UserRegistered, mock.MatchedBy(func(e rabbitmq.UserEvent) bool {
					return e.Email == "test@example.com" && e.Event == rabbitmq.UserRegistered
				})).Return(nil).Once()
			},
		},
		{
			name: "admin role accepted",
			req:  models.RegisterRequest{Username: "boss", Email: "boss@example.com", Password: "password123", Role: models.RoleAdmin},
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock, p *PublisherMock) {
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(user *models.User) bool {
					return user.Role == models.RoleAdmin
				})).Return(nil).Once()
				j.On("GenerateToken", mock.Anything, models.RoleAdmin).Return("token", nil).Once()
				p.On("Publish", mock.Anything, rabbitmq.UserRegistered, mock.Anything).Return(nil).Once()
			},
		},
		{
			name:       "invalid role",
			req:        models.RegisterRequest{Username: "x1", Email: "x@example.com", Password: "password123", Role: "root"},
			setupMocks: func(*UserRepoMock, *JwtMakerMock, *PublisherMock) {},
			wantErr:    apperr.ErrValidation,
		},
		{
			name:       "short password",
			req:        models.RegisterRequest{Username: "x1", Email: "x@example.com", Password: "123", Role: models.RoleUser},
			setupMocks: func(*UserRepoMock, *JwtMakerMock, *PublisherMock) {},
			wantErr:    apperr.ErrValidation,
		},
		{
			name: "duplicate email",
			req:  validReq,
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock, _ *PublisherMock) {
				r.On("CreateUser", mock.Anything, mock.Anything).
					Return(apperr.Conflict("user already exists")).Once()
			},
			wantErr: apperr.ErrConflict,
		},
		{
			name: "publish failure does not fail registration",
			req:  validReq,
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock, p *PublisherMock) {
				r.On("CreateUser", mock.Anything, mock.Anything).Return(nil).Once()
				j.On("GenerateToken", mock.Anything, models.RoleUser).Return("token", nil).Once()
				p.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			pub := new(PublisherMock)
			svc := services.NewAuthService(repo, jwtMock, pub, newNoopLogger())

			tt.setupMocks(repo, jwtMock, pub)

			session, err := svc.Register(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, session)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "token", session.Token)
				assert.NotEmpty(t, session.User.ID)
				assert.Equal(t, tt.req.Role, session.User.Role)
			}

			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
			pub.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	rawPassword := "correctpassword"
	hashedPassword, err := password.GetHash(rawPassword)
	require.NoError(t, err)

	testUser := &models.User{
		ID:           "user-1",
		Email:        "test@example.com",
		Username:     "testuser",
		PasswordHash: hashedPassword,
		Role:         models.RoleUser,
	}

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantToken  string
		wantErr    error
		wantErrMsg string
	}{
		{
			name:     "successful login",
			email:    "TEST@example.com",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(testUser, nil).Once()
				j.On("GenerateToken", "user-1", models.RoleUser).Return("valid.token", nil).Once()
			},
			wantToken: "valid.token",
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "nobody@example.com").
					Return(nil, apperr.NotFound("user not found")).Once()
			},
			wantErr: apperr.ErrUnauthenticated,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "wrongpassword",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(testUser, nil).Once()
			},
			wantErr: apperr.ErrUnauthenticated,
		},
		{
			name:     "repository failure",
			email:    "test@example.com",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").
					Return(nil, errors.New("db error")).Once()
			},
			wantErrMsg: "db error",
		},
		{
			name:     "token generation failure",
			email:    "test@example.com",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(testUser, nil).Once()
				j.On("GenerateToken", "user-1", models.RoleUser).Return("", errors.New("sign error")).Once()
			},
			wantErrMsg: "sign error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			svc := services.NewAuthService(repo, jwtMock, rabbitmq.Noop{}, newNoopLogger())

			tt.setupMocks(repo, jwtMock)

			session, err := svc.Login(context.Background(), models.LoginRequest{Email: tt.email, Password: tt.password})
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, session.Token)
				assert.Equal(t, "testuser", session.User.Username)
			}

			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	live := &models.User{ID: "user-1", Role: models.RoleAdmin}
	claims := &customjwt.CustomClaims{
		Role:             models.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	}

	tests := []struct {
		name       string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantUser   *models.User
		wantErr    error
	}{
		{
			name: "valid token resolves live user",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				j.On("ParseToken", "tok").Return(claims, nil).Once()
				r.On("GetUser", mock.Anything, "user-1").Return(live, nil).Once()
			},
			wantUser: live,
		},
		{
			name: "invalid token",
			setupMocks: func(_ *UserRepoMock, j *JwtMakerMock) {
				j.On("ParseToken", "tok").Return(nil, errors.New("token is expired")).Once()
			},
			wantErr: apperr.ErrUnauthenticated,
		},
		{
			name: "deleted user",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				j.On("ParseToken", "tok").Return(claims, nil).Once()
				r.On("GetUser", mock.Anything, "user-1").Return(nil, apperr.NotFound("user not found")).Once()
			},
			wantErr: apperr.ErrUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			svc := services.NewAuthService(repo, jwtMock, rabbitmq.Noop{}, newNoopLogger())
			tt.setupMocks(repo, jwtMock)

			user, err := svc.Authenticate(context.Background(), "tok")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantUser, user)
				assert.True(t, user.IsAdmin(), "role comes from storage, not from token")
			}

			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}
