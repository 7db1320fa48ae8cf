package models

// Роли пользователей.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Направление транзакции.
const (
	KindIncome  = "income"
	KindExpense = "expense"
)

// Статусы задач.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Приоритеты задач.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Значения по умолчанию для новой задачи.
const (
	DefaultTaskStatus   = StatusPending
	DefaultTaskPriority = PriorityMedium
	DefaultTaskCategory = "Personal"
)

// TransactionCategories - единый перечень категорий транзакций.
// "Travel" объединён с "Transportation", "Healthcare" - с "Health".
var TransactionCategories = []string{
	"Food", "Transportation", "Shopping", "Bills", "Entertainment", "Health",
	"Education", "Salary", "Freelance", "Investment", "Gift", "Bonus", "Other",
}

// PaymentMethods - допустимые способы оплаты.
var PaymentMethods = []string{"Cash", "Card", "UPI", "Bank Transfer"}

// TaskCategories - допустимые категории задач.
var TaskCategories = []string{"Work", "Personal", "Finance", "Health", "Other"}

// TaskStatuses - допустимые статусы задач.
var TaskStatuses = []string{StatusPending, StatusInProgress, StatusCompleted}

// TaskPriorities - допустимые приоритеты задач.
var TaskPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh}

// Contains сообщает, входит ли значение в перечень.
func Contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
