package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/fintask/internal/models"
)

const userColumns = `id, username, email, password_hash, role, created_at`

func scanUser(row interface{ Scan(...any) error }, u *models.User) error {
	return row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
}

// CreateUser сохраняет нового пользователя. Повторный email даёт конфликт.
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	const op = "storage.CreateUser"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	query := `INSERT INTO users (id, username, email, password_hash, role, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := s.DB.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.Role, user.CreatedAt); err != nil {
		return mapError(op, err, "user not found")
	}
	return nil
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u := &models.User{}
	if err := scanUser(s.DB.QueryRowContext(ctx, query, email), u); err != nil {
		return nil, mapError(op, err, "user not found")
	}
	return u, nil
}

// GetUser возвращает пользователя по ID.
func (s *Storage) GetUser(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.GetUser"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u := &models.User{}
	if err := scanUser(s.DB.QueryRowContext(ctx, query, id), u); err != nil {
		return nil, mapError(op, err, "user not found")
	}
	return u, nil
}

// ListUsers возвращает страницу пользователей, новые первыми.
// Search ищет подстроку в имени или email.
func (s *Storage) ListUsers(ctx context.Context, filter models.UserFilter) (models.ListResult[models.User], error) {
	const op = "storage.ListUsers"
	result := models.ListResult[models.User]{Page: filter.Page}
	if err := checkCtx(ctx, op); err != nil {
		return result, err
	}

	var w where
	w.search(filter.Search, "username", "email")

	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+w.String(), w.args...).
		Scan(&result.Total); err != nil {
		return result, fmt.Errorf("%s: %w", op, err)
	}

	query := fmt.Sprintf(`SELECT %s FROM users%s ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`,
		userColumns, w.String(), w.next(), w.next()+1)
	rows, err := s.DB.QueryContext(ctx, query, append(w.args, filter.Page.Size, filter.Page.Offset())...)
	if err != nil {
		return result, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result.Items = make([]models.User, 0, filter.Page.Size)
	for rows.Next() {
		var u models.User
		if err = scanUser(rows, &u); err != nil {
			return result, fmt.Errorf("%s: %w", op, err)
		}
		result.Items = append(result.Items, u)
	}
	if err = rows.Err(); err != nil {
		return result, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateUser перезаписывает имя, email и роль пользователя.
func (s *Storage) UpdateUser(ctx context.Context, user *models.User) error {
	const op = "storage.UpdateUser"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	query := `UPDATE users SET username = $1, email = $2, role = $3 WHERE id = $4`
	res, err := s.DB.ExecContext(ctx, query, user.Username, user.Email, user.Role, user.ID)
	if err != nil {
		return mapError(op, err, "user not found")
	}
	return expectAffected(op, res, "user not found")
}

// DeleteUser удаляет пользователя. Его транзакции и задачи удаляются
// каскадно внешними ключами.
func (s *Storage) DeleteUser(ctx context.Context, id string) error {
	const op = "storage.DeleteUser"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return expectAffected(op, res, "user not found")
}

// CountUsers возвращает общее число пользователей и число
// зарегистрированных начиная с since.
func (s *Storage) CountUsers(ctx context.Context, since time.Time) (total, recent int, err error) {
	const op = "storage.CountUsers"
	if err = checkCtx(ctx, op); err != nil {
		return 0, 0, err
	}

	query := `SELECT COUNT(*), COUNT(*) FILTER (WHERE created_at >= $1) FROM users`
	if err = s.DB.QueryRowContext(ctx, query, since).Scan(&total, &recent); err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, recent, nil
}
