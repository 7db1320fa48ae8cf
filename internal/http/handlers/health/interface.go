package health

import "context"

// Pinger проверяет доступность базы данных.
type Pinger interface {
	Ping(ctx context.Context) error
}
