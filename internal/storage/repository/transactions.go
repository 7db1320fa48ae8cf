package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/fintask/internal/models"
)

const transactionColumns = `t.id, t.owner_id, t.title, t.amount, t.kind, t.category,
	t.payment_method, t.tx_date, t.description, t.created_at, t.updated_at`

// Допустимые поля сортировки транзакций.
var transactionSort = map[string]string{
	"date":          "t.tx_date",
	"amount":        "t.amount",
	"title":         "t.title",
	"type":          "t.kind",
	"category":      "t.category",
	"paymentMethod": "t.payment_method",
	"createdAt":     "t.created_at",
}

func scanTransaction(row interface{ Scan(...any) error }, tx *models.Transaction) error {
	return row.Scan(&tx.ID, &tx.OwnerID, &tx.Title, &tx.Amount, &tx.Kind, &tx.Category,
		&tx.PaymentMethod, &tx.Date, &tx.Description, &tx.CreatedAt, &tx.UpdatedAt)
}

// CreateTransaction сохраняет новую транзакцию.
func (s *Storage) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	const op = "storage.CreateTransaction"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	query := `INSERT INTO transactions (id, owner_id, title, amount, kind, category,
				  payment_method, tx_date, description, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	if _, err := s.DB.ExecContext(ctx, query,
		tx.ID, tx.OwnerID, tx.Title, tx.Amount, tx.Kind, tx.Category,
		tx.PaymentMethod, tx.Date, tx.Description, tx.CreatedAt, tx.UpdatedAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetTransaction возвращает транзакцию владельца. Чужая запись
// неотличима от отсутствующей.
func (s *Storage) GetTransaction(ctx context.Context, scope models.Scope, id string) (*models.Transaction, error) {
	const op = "storage.GetTransaction"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var w where
	w.add("t.id = ?", id)
	w.scope("t.owner_id", scope)
	tx := &models.Transaction{}
	row := s.DB.QueryRowContext(ctx, `SELECT `+transactionColumns+` FROM transactions t`+w.String(), w.args...)
	if err := scanTransaction(row, tx); err != nil {
		return nil, mapError(op, err, "transaction not found")
	}
	return tx, nil
}

// UpdateTransaction перезаписывает изменяемые поля транзакции владельца.
func (s *Storage) UpdateTransaction(ctx context.Context, tx *models.Transaction) error {
	const op = "storage.UpdateTransaction"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	query := `UPDATE transactions
			  SET title = $1, amount = $2, kind = $3, category = $4, payment_method = $5,
				  tx_date = $6, description = $7, updated_at = $8
			  WHERE id = $9 AND owner_id = $10`
	res, err := s.DB.ExecContext(ctx, query,
		tx.Title, tx.Amount, tx.Kind, tx.Category, tx.PaymentMethod,
		tx.Date, tx.Description, tx.UpdatedAt, tx.ID, tx.OwnerID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return expectAffected(op, res, "transaction not found")
}

// DeleteTransaction удаляет транзакцию владельца.
func (s *Storage) DeleteTransaction(ctx context.Context, scope models.Scope, id string) error {
	const op = "storage.DeleteTransaction"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	var w where
	w.add("id = ?", id)
	w.scope("owner_id", scope)
	res, err := s.DB.ExecContext(ctx, `DELETE FROM transactions`+w.String(), w.args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return expectAffected(op, res, "transaction not found")
}

// DeleteTransactionsByOwner удаляет все транзакции пользователя и
// возвращает их количество.
func (s *Storage) DeleteTransactionsByOwner(ctx context.Context, ownerID string) (int64, error) {
	const op = "storage.DeleteTransactionsByOwner"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM transactions WHERE owner_id = $1`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func transactionWhere(filter models.TransactionFilter) *where {
	w := &where{}
	w.scope("t.owner_id", filter.Scope)
	w.addIf("t.kind", filter.Kind)
	w.addIf("t.category", filter.Category)
	w.addIf("t.payment_method", filter.PaymentMethod)
	if filter.From != nil {
		w.add("t.tx_date >= ?", *filter.From)
	}
	if filter.To != nil {
		w.add("t.tx_date <= ?", *filter.To)
	}
	w.search(filter.Search, "t.title")
	return w
}

// ListTransactions возвращает страницу транзакций по фильтру. Для
// глобальной области к записям добавляются данные владельца.
func (s *Storage) ListTransactions(ctx context.Context, filter models.TransactionFilter) (models.ListResult[models.Transaction], error) {
	const op = "storage.ListTransactions"
	result := models.ListResult[models.Transaction]{Page: filter.Page}
	if err := checkCtx(ctx, op); err != nil {
		return result, err
	}

	w := transactionWhere(filter)
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions t`+w.String(), w.args...).
		Scan(&result.Total); err != nil {
		return result, fmt.Errorf("%s: %w", op, err)
	}

	query := fmt.Sprintf(`SELECT %s, u.id, u.username, u.email
		FROM transactions t JOIN users u ON u.id = t.owner_id%s%s LIMIT $%d OFFSET $%d`,
		transactionColumns, w.String(),
		orderBy(filter.Sort, transactionSort, "t.tx_date", "t.created_at DESC"),
		w.next(), w.next()+1)
	rows, err := s.DB.QueryContext(ctx, query, append(w.args, filter.Page.Size, filter.Page.Offset())...)
	if err != nil {
		return result, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result.Items = make([]models.Transaction, 0, filter.Page.Size)
	for rows.Next() {
		var tx models.Transaction
		var owner models.OwnerRef
		if err = rows.Scan(&tx.ID, &tx.OwnerID, &tx.Title, &tx.Amount, &tx.Kind, &tx.Category,
			&tx.PaymentMethod, &tx.Date, &tx.Description, &tx.CreatedAt, &tx.UpdatedAt,
			&owner.ID, &owner.Username, &owner.Email); err != nil {
			return result, fmt.Errorf("%s: %w", op, err)
		}
		if filter.Scope.IsGlobal() {
			tx.Owner = &owner
		}
		result.Items = append(result.Items, tx)
	}
	if err = rows.Err(); err != nil {
		return result, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RecentTransactions возвращает до limit последних по дате транзакций.
func (s *Storage) RecentTransactions(ctx context.Context, scope models.Scope, limit int) ([]models.Transaction, error) {
	const op = "storage.RecentTransactions"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var w where
	w.scope("t.owner_id", scope)
	query := fmt.Sprintf(`SELECT %s FROM transactions t%s ORDER BY t.tx_date DESC, t.created_at DESC LIMIT $%d`,
		transactionColumns, w.String(), w.next())
	rows, err := s.DB.QueryContext(ctx, query, append(w.args, limit)...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.Transaction, 0, limit)
	for rows.Next() {
		var tx models.Transaction
		if err = scanTransaction(rows, &tx); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, tx)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
