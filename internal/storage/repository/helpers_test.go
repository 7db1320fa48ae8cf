package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/fintask/internal/migrations"
	"github.com/magabrotheeeer/fintask/internal/models"
)

// setupTestStorage поднимает PostgreSQL в контейнере и накатывает миграции.
func setupTestStorage(t *testing.T) *Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	storage, err := New(dsn)
	require.NoError(t, err, "failed to create storage")
	t.Cleanup(func() { _ = storage.Close() })

	path, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, path))

	return storage
}

// testDataFactory создаёт записи для тестов.
type testDataFactory struct {
	storage *Storage
	now     time.Time
	seq     int
}

func newTestDataFactory(storage *Storage) *testDataFactory {
	return &testDataFactory{storage: storage, now: time.Now().UTC().Truncate(time.Microsecond)}
}

// tick возвращает строго возрастающие отметки времени для created_at.
func (f *testDataFactory) tick() time.Time {
	f.seq++
	return f.now.Add(time.Duration(f.seq) * time.Millisecond)
}

func (f *testDataFactory) user(t *testing.T, username string) *models.User {
	t.Helper()
	u := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
		Role:         models.RoleUser,
		CreatedAt:    f.now,
	}
	require.NoError(t, f.storage.CreateUser(context.Background(), u))
	return u
}

func (f *testDataFactory) transaction(t *testing.T, ownerID, kind, category string, amount float64, date time.Time) *models.Transaction {
	t.Helper()
	tx := &models.Transaction{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		Title:         category + " " + kind,
		Amount:        amount,
		Kind:          kind,
		Category:      category,
		PaymentMethod: "Card",
		Date:          date,
		CreatedAt:     f.tick(),
		UpdatedAt:     f.now,
	}
	require.NoError(t, f.storage.CreateTransaction(context.Background(), tx))
	return tx
}

func (f *testDataFactory) task(t *testing.T, ownerID, title, status, priority string, due time.Time) *models.Task {
	t.Helper()
	task := &models.Task{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Title:     title,
		DueDate:   due,
		Status:    status,
		Priority:  priority,
		Category:  models.DefaultTaskCategory,
		CreatedAt: f.tick(),
		UpdatedAt: f.now,
	}
	require.NoError(t, f.storage.CreateTask(context.Background(), task))
	return task
}
