// Package services реализует хранилище записей о доходах и расходах
// пользователя: создание, чтение, изменение и удаление с проверкой владельца.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/fintask/internal/cache"
	"github.com/magabrotheeeer/fintask/internal/lib/apperr"
	"github.com/magabrotheeeer/fintask/internal/lib/policy"
	"github.com/magabrotheeeer/fintask/internal/lib/sl"
	"github.com/magabrotheeeer/fintask/internal/models"
)

const resource = "transaction"

// TransactionRepository определяет методы для работы с транзакциями в хранилище.
type TransactionRepository interface {
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	GetTransaction(ctx context.Context, scope models.Scope, id string) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, tx *models.Transaction) error
	DeleteTransaction(ctx context.Context, scope models.Scope, id string) error
	DeleteTransactionsByOwner(ctx context.Context, ownerID string) (int64, error)
	ListTransactions(ctx context.Context, filter models.TransactionFilter) (models.ListResult[models.Transaction], error)
}

// Cache сбрасывает закэшированные сводки владельца.
type Cache interface {
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// ExpenseService реализует операции над транзакциями.
type ExpenseService struct {
	repo     TransactionRepository
	cache    Cache
	log      *slog.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewExpenseService создает новый экземпляр ExpenseService.
func NewExpenseService(repo TransactionRepository, cache Cache, log *slog.Logger) *ExpenseService {
	return &ExpenseService{
		repo:     repo,
		cache:    cache,
		log:      log,
		validate: models.NewValidator(),
		now:      time.Now,
	}
}

// Create сохраняет транзакцию владельца. Дата приводится к календарному дню.
func (s *ExpenseService) Create(ctx context.Context, ownerID string, req models.TransactionRequest) (*models.Transaction, error) {
	const op = "services.expense.Create"

	req.Title = strings.TrimSpace(req.Title)
	if err := models.Validate(s.validate, req); err != nil {
		return nil, err
	}
	date, err := models.ParseDay(req.Date)
	if err != nil {
		return nil, apperr.Validation("%s", err.Error())
	}

	now := s.now().UTC()
	tx := &models.Transaction{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		Title:         req.Title,
		Amount:        *req.Amount,
		Kind:          req.Kind,
		Category:      req.Category,
		PaymentMethod: req.PaymentMethod,
		Date:          date,
		Description:   req.Description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err = s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("transaction created", slog.String("id", tx.ID), slog.String("owner", ownerID))
	s.invalidate(ctx, ownerID)
	return tx, nil
}

// Get возвращает транзакцию, только если она принадлежит ownerID.
func (s *ExpenseService) Get(ctx context.Context, ownerID, id string) (*models.Transaction, error) {
	const op = "services.expense.Get"

	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.NotFound("%s not found", resource)
	}
	tx, err := s.repo.GetTransaction(ctx, models.GlobalScope(), id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = policy.AuthorizeOwner(tx.OwnerID, ownerID, resource); err != nil {
		return nil, err
	}
	return tx, nil
}

// Update применяет к транзакции непустые поля patch.
func (s *ExpenseService) Update(ctx context.Context, ownerID, id string, patch models.TransactionPatch) (*models.Transaction, error) {
	const op = "services.expense.Update"

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, apperr.Validation("title: must not be empty")
		}
		patch.Title = &title
	}
	if err := models.Validate(s.validate, patch); err != nil {
		return nil, err
	}
	tx, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		tx.Title = *patch.Title
	}
	if patch.Amount != nil {
		tx.Amount = *patch.Amount
	}
	if patch.Kind != nil {
		tx.Kind = *patch.Kind
	}
	if patch.Category != nil {
		tx.Category = *patch.Category
	}
	if patch.PaymentMethod != nil {
		tx.PaymentMethod = *patch.PaymentMethod
	}
	if patch.Date != nil {
		date, err := models.ParseDay(*patch.Date)
		if err != nil {
			return nil, apperr.Validation("%s", err.Error())
		}
		tx.Date = date
	}
	if patch.Description != nil {
		tx.Description = *patch.Description
	}
	tx.UpdatedAt = s.now().UTC()

	if err = s.repo.UpdateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, ownerID)
	return tx, nil
}

// Delete удаляет транзакцию владельца. Повторное удаление дает
// apperr.ErrNotFound.
func (s *ExpenseService) Delete(ctx context.Context, ownerID, id string) error {
	const op = "services.expense.Delete"

	if _, err := uuid.Parse(id); err != nil {
		return apperr.NotFound("%s not found", resource)
	}
	if err := s.repo.DeleteTransaction(ctx, models.OwnerScope(ownerID), id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, ownerID)
	return nil
}

// DeleteAllForOwner удаляет все транзакции пользователя без проверки
// владельца. Вызывается только при удалении пользователя администратором.
func (s *ExpenseService) DeleteAllForOwner(ctx context.Context, ownerID string) (int64, error) {
	const op = "services.expense.DeleteAllForOwner"

	n, err := s.repo.DeleteTransactionsByOwner(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, ownerID)
	return n, nil
}

// List возвращает страницу транзакций по фильтру.
func (s *ExpenseService) List(ctx context.Context, filter models.TransactionFilter) (models.ListResult[models.Transaction], error) {
	const op = "services.expense.List"

	res, err := s.repo.ListTransactions(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

func (s *ExpenseService) invalidate(ctx context.Context, ownerID string) {
	if err := s.cache.InvalidatePrefix(ctx, cache.OwnerPrefix(ownerID)); err != nil {
		s.log.Warn("failed to invalidate summary cache", slog.String("owner", ownerID), sl.Err(err))
	}
}
