package cache

import (
	"context"
	"time"
)

// SummaryKey ключ сводки владельца за период.
func SummaryKey(ownerID, period string) string {
	return OwnerPrefix(ownerID) + period
}

// OwnerPrefix общий префикс всех сводок владельца.
func OwnerPrefix(ownerID string) string {
	return "summary:" + ownerID + ":"
}

// Store общий интерфейс Redis кэша и Noop.
type Store interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
	InvalidatePrefix(ctx context.Context, prefix string) error
}

var (
	_ Store = (*Cache)(nil)
	_ Store = Noop{}
)

// Noop кэш, который ничего не хранит. Используется, когда Redis не настроен.
type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error)        { return false, nil }
func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }
func (Noop) Invalidate(context.Context, ...string) error           { return nil }
func (Noop) InvalidatePrefix(context.Context, string) error        { return nil }
