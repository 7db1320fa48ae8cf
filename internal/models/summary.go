package models

import "time"

// Totals - суммы доходов и расходов в окне.
type Totals struct {
	Income  float64
	Expense float64
}

// Net возвращает чистый баланс: доходы минус расходы.
func (t Totals) Net() float64 {
	return t.Income - t.Expense
}

// FinancialSummary - суммы за период и изменения относительно
// предыдущего периода той же длины.
type FinancialSummary struct {
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpense  float64 `json:"totalExpense"`
	NetBalance    float64 `json:"netBalance"`
	IncomeChange  string  `json:"incomeChange"`
	ExpenseChange string  `json:"expenseChange"`
	BalanceChange string  `json:"balanceChange"`
}

// CategoryTotal - сумма расходов по категории.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

// TaskStats - счётчики задач.
type TaskStats struct {
	TotalTasks        int `json:"totalTasks"`
	CompletedTasks    int `json:"completedTasks"`
	PendingTasks      int `json:"pendingTasks"`
	InProgressTasks   int `json:"inProgressTasks"`
	TodayTasks        int `json:"todayTasks"`
	HighPriorityTasks int `json:"highPriorityTasks"`
	OverdueTasks      int `json:"overdueTasks"`
}

// TaskStatsQuery - параметры подсчёта статистики задач.
type TaskStatsQuery struct {
	Scope        Scope
	CreatedSince *time.Time // nil: все задачи
	Now          time.Time
}

// Summary - полная сводка за период.
type Summary struct {
	Period            string           `json:"period"`
	StartDate         time.Time        `json:"startDate"`
	EndDate           time.Time        `json:"endDate"`
	Financial         FinancialSummary `json:"summary"`
	CategoryBreakdown []CategoryTotal  `json:"categoryBreakdown"`
	Tasks             TaskStats        `json:"taskStats"`
}

// StatusCount - количество задач в статусе.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// TaskSummary - сводка задач пользователя.
type TaskSummary struct {
	TotalTasks      int           `json:"totalTasks"`
	CompletedTasks  int           `json:"completedTasks"`
	PendingTasks    int           `json:"pendingTasks"`
	StatusBreakdown []StatusCount `json:"statusBreakdown"`
}

// TransactionActivity - транзакция в ленте последних событий.
type TransactionActivity struct {
	Type        string    `json:"type"`
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Amount      float64   `json:"amount"`
	Kind        string    `json:"kind"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
}

// TaskActivity - задача в ленте последних событий.
type TaskActivity struct {
	Type        string    `json:"type"`
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Priority    string    `json:"priority"`
	DueDate     time.Time `json:"dueDate"`
	Status      string    `json:"status"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
}

// RecentActivity - независимые списки последних транзакций и ближайших задач.
type RecentActivity struct {
	Expenses []TransactionActivity `json:"expenses"`
	Tasks    []TaskActivity        `json:"tasks"`
}

// ChartPoint - точка круговой диаграммы.
type ChartPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ChartTotals - доходы, расходы и их разница, округлённые до копеек.
type ChartTotals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
}

// ExpenseChart - данные диаграммы расходов.
type ExpenseChart struct {
	Categories []ChartPoint `json:"categories"`
	Summary    ChartTotals  `json:"summary"`
}

// TaskPoint - минимальный срез задачи для расчёта прогресса.
type TaskPoint struct {
	Status    string
	Priority  string
	CreatedAt time.Time
}

// WeeklyProgress - доля завершённых задач за неделю.
type WeeklyProgress struct {
	Week      string  `json:"week"`
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Rate      float64 `json:"rate"`
}

// TaskProgress - распределение задач по статусам, приоритетам и неделям.
type TaskProgress struct {
	Status         map[string]int   `json:"status"`
	Priority       map[string]int   `json:"priority"`
	WeeklyProgress []WeeklyProgress `json:"weeklyProgress"`
	TotalTasks     int              `json:"totalTasks"`
}

// MonthTotal - сумма расходов за календарный месяц.
type MonthTotal struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// TopSpender - пользователь в рейтинге по сумме расходов.
type TopSpender struct {
	UserID           string  `json:"userId"`
	Username         string  `json:"username"`
	Email            string  `json:"email"`
	TotalSpent       float64 `json:"totalSpent"`
	TransactionCount int     `json:"transactionCount"`
}

// ExpenseAnalytics - глобальная аналитика расходов.
type ExpenseAnalytics struct {
	CategoryDistribution []CategoryTotal `json:"categoryDistribution"`
	MonthlyTrend         []MonthTotal    `json:"monthlyTrend"`
	TopUsers             []TopSpender    `json:"topUsers"`
}

// DayCount - количество событий за день.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// UserActivityStat - вовлечённость одного пользователя.
type UserActivityStat struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"createdAt"`
	ExpenseCount int       `json:"expenseCount"`
	TaskCount    int       `json:"taskCount"`
	LastActivity time.Time `json:"lastActivity"`
}

// UserActivity - глобальная аналитика активности пользователей.
type UserActivity struct {
	RegistrationTrend []DayCount         `json:"registrationTrend"`
	ActiveUsers       int                `json:"activeUsers"`
	UserStats         []UserActivityStat `json:"userStats"`
}

// AdminStats - общие показатели системы.
type AdminStats struct {
	Users struct {
		Total  int `json:"total"`
		Recent int `json:"recent"`
	} `json:"users"`
	Financial struct {
		TotalIncome   float64 `json:"totalIncome"`
		TotalExpenses float64 `json:"totalExpenses"`
		NetBalance    float64 `json:"netBalance"`
	} `json:"financial"`
	Tasks struct {
		Total     int `json:"total"`
		Completed int `json:"completed"`
		Pending   int `json:"pending"`
	} `json:"tasks"`
}
