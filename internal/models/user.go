// Package models содержит доменные модели пользователей, транзакций и задач,
// структуры запросов с правилами валидации и результаты агрегаций.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           string    // Уникальный идентификатор пользователя
	Username     string    // Отображаемое имя
	Email        string    // Электронная почта (уникальная)
	PasswordHash string    // Хэш пароля пользователя
	Role         string    // Роль пользователя, admin или user
	CreatedAt    time.Time // Дата регистрации
}

// IsAdmin сообщает, есть ли у пользователя роль администратора.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// PublicUser - публичные поля пользователя, без хэша пароля.
type PublicUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public возвращает представление пользователя для ответа клиенту.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// Session - результат регистрации или входа.
type Session struct {
	User  PublicUser
	Token string
}

// RegisterRequest - тело запроса регистрации.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"required,oneof=user admin"`
}

// LoginRequest - тело запроса входа.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserUpdate - изменение пользователя администратором. Пустые поля
// оставляют прежние значения.
type UserUpdate struct {
	Username string `json:"username" validate:"omitempty,min=2,max=50"`
	Email    string `json:"email" validate:"omitempty,email"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

// UserFilter - параметры списка пользователей в админке.
type UserFilter struct {
	Search string
	Page   Page
}
