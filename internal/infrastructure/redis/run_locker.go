// Package redis lock distribuido de corridas de nómina (varias réplicas de la API).
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	goredis "github.com/redis/go-redis/v9"
	apppayroll "github.com/shyakx/erp-system/internal/application/payroll"
	"github.com/shyakx/erp-system/internal/domain"
	"github.com/shyakx/erp-system/pkg/config"
)

var _ apppayroll.RunLocker = (*RunLocker)(nil)

// NewClient crea el cliente y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: 20,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Address, err)
	}
	return rdb, nil
}

// RunLocker implementa payroll.RunLocker con redislock (SET NX + TTL).
type RunLocker struct {
	locker *redislock.Client
}

// NewRunLocker construye el lock sobre un cliente ya conectado.
func NewRunLocker(rdb goredis.UniversalClient) *RunLocker {
	return &RunLocker{locker: redislock.New(rdb)}
}

// Acquire obtiene la clave sin reintentos; ocupada -> domain.ErrConflict.
func (l *RunLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	lock, err := l.locker.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: corrida en curso (%s)", domain.ErrConflict, key)
	}
	if err != nil {
		return nil, fmt.Errorf("redis lock %s: %w", key, err)
	}
	return func(ctx context.Context) error {
		err := lock.Release(ctx)
		if errors.Is(err, redislock.ErrLockNotHeld) {
			// El TTL venció antes de terminar la corrida; no hay nada que liberar.
			return nil
		}
		return err
	}, nil
}
