package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shyakx/erp-system/internal/domain"
)

// RunLocker lock de corridas de nómina dentro del proceso (sin Redis o en modo demo).
type RunLocker struct {
	mu   sync.Mutex
	held map[string]time.Time // clave -> vencimiento
	now  func() time.Time
}

// NewRunLocker construye el lock.
func NewRunLocker() *RunLocker {
	return &RunLocker{held: make(map[string]time.Time), now: time.Now}
}

// Acquire toma la clave por ttl. Si otro la tiene y no venció devuelve domain.ErrConflict.
func (l *RunLocker) Acquire(_ context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if exp, ok := l.held[key]; ok && now.Before(exp) {
		return nil, domain.ErrConflict
	}
	exp := now.Add(ttl)
	l.held[key] = exp

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			// Solo libera si sigue siendo nuestro (no venció y lo tomó otro).
			if cur, ok := l.held[key]; ok && cur.Equal(exp) {
				delete(l.held, key)
			}
		})
		return nil
	}, nil
}
