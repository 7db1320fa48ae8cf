package models

import "time"

// Transaction - доход или расход пользователя. Amount всегда хранится
// как неотрицательная величина, направление задаёт Kind.
type Transaction struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"user"`
	Title         string    `json:"title"`
	Amount        float64   `json:"amount"`
	Kind          string    `json:"type"`
	Category      string    `json:"category"`
	PaymentMethod string    `json:"paymentMethod"`
	Date          time.Time `json:"date"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Owner         *OwnerRef `json:"owner,omitempty"` // заполняется только в глобальных выборках
}

// OwnerRef - данные владельца записи для админских списков.
type OwnerRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TransactionRequest - тело запроса создания транзакции.
// Date принимается в формате 2006-01-02 или RFC3339.
type TransactionRequest struct {
	Title         string   `json:"title" validate:"required,max=200"`
	Amount        *float64 `json:"amount" validate:"required,gte=0,lt=1000000000000"`
	Kind          string   `json:"type" validate:"required,oneof=income expense"`
	Category      string   `json:"category" validate:"required,tx_category"`
	PaymentMethod string   `json:"paymentMethod" validate:"required,payment_method"`
	Date          string   `json:"date" validate:"required"`
	Description   string   `json:"description" validate:"max=1000"`
}

// TransactionPatch - частичное изменение транзакции. nil означает
// «оставить как есть».
type TransactionPatch struct {
	Title         *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Amount        *float64 `json:"amount" validate:"omitempty,gte=0,lt=1000000000000"`
	Kind          *string  `json:"type" validate:"omitempty,oneof=income expense"`
	Category      *string  `json:"category" validate:"omitempty,tx_category"`
	PaymentMethod *string  `json:"paymentMethod" validate:"omitempty,payment_method"`
	Date          *string  `json:"date"`
	Description   *string  `json:"description" validate:"omitempty,max=1000"`
}
