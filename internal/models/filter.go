package models

import (
	"strconv"
	"time"
)

// Scope ограничивает выборку одним владельцем или (для админа) всеми.
type Scope struct {
	OwnerID string
}

// OwnerScope возвращает область видимости одного пользователя.
func OwnerScope(ownerID string) Scope {
	return Scope{OwnerID: ownerID}
}

// GlobalScope возвращает область видимости по всем пользователям.
func GlobalScope() Scope {
	return Scope{}
}

// IsGlobal сообщает, что выборка не ограничена владельцем.
func (s Scope) IsGlobal() bool {
	return s.OwnerID == ""
}

// Значения пагинации по умолчанию.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page - номер страницы (с 1) и её размер.
type Page struct {
	Number int
	Size   int
}

// NewPage разбирает параметры page и limit. Некорректные значения
// заменяются на page=1, limit=10.
func NewPage(pageStr, limitStr string) Page {
	number, err := strconv.Atoi(pageStr)
	if err != nil || number <= 0 {
		number = DefaultPage
	}
	size, err := strconv.Atoi(limitStr)
	if err != nil || size <= 0 {
		size = DefaultLimit
	}
	if size > MaxLimit {
		size = MaxLimit
	}
	return Page{Number: number, Size: size}
}

// Offset возвращает число пропускаемых записей.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// TotalPages возвращает ceil(total / size).
func (p Page) TotalPages(total int) int {
	if p.Size <= 0 {
		return 0
	}
	return (total + p.Size - 1) / p.Size
}

// Sort - поле и направление сортировки. Поле задаётся именем из JSON
// контракта, хранилище сопоставляет его с колонкой.
type Sort struct {
	Field string
	Desc  bool
}

// NewSort разбирает sortBy и sortOrder, подставляя значения по умолчанию.
func NewSort(field, order, defaultField string, defaultDesc bool) Sort {
	s := Sort{Field: field, Desc: defaultDesc}
	if s.Field == "" {
		s.Field = defaultField
	}
	switch order {
	case "asc":
		s.Desc = false
	case "desc":
		s.Desc = true
	}
	return s
}

// TransactionFilter - параметры списка транзакций. Пустые строки и nil
// означают отсутствие фильтра.
type TransactionFilter struct {
	Scope         Scope
	Kind          string
	Category      string
	PaymentMethod string
	From          *time.Time
	To            *time.Time
	Search        string
	Sort          Sort
	Page          Page
}

// TaskFilter - параметры списка задач.
type TaskFilter struct {
	Scope    Scope
	Status   string
	Priority string
	Category string
	Search   string
	Sort     Sort
	Page     Page
}

// ListResult - страница выборки и общее количество подходящих записей.
type ListResult[T any] struct {
	Items []T
	Total int
	Page  Page
}

// TotalPages возвращает количество страниц для Total.
func (r ListResult[T]) TotalPages() int {
	return r.Page.TotalPages(r.Total)
}
