package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Concesiones-api/internal/application/ledger"
)

var _ ledger.KeyLocker = (*KeyMutex)(nil)

type keyLock struct {
	ch   chan struct{} // buffer 1: lleno = tomado
	refs int
}

// KeyMutex un mutex por (teatro, producto) dentro del proceso. Las llaves sin uso se liberan.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[productKey]*keyLock
}

// NewKeyMutex crea el mapa de mutex vacío.
func NewKeyMutex() *KeyMutex {
	return &KeyMutex{locks: make(map[productKey]*keyLock)}
}

// Lock espera la llave o hasta que ctx termine.
func (k *KeyMutex) Lock(ctx context.Context, theaterID, productID string) (func(), error) {
	key := productKey{theaterID, productID}

	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{ch: make(chan struct{}, 1)}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	select {
	case l.ch <- struct{}{}:
	case <-ctx.Done():
		k.release(key, l)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-l.ch
			k.release(key, l)
		})
	}, nil
}

func (k *KeyMutex) release(key productKey, l *keyLock) {
	k.mu.Lock()
	defer k.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(k.locks, key)
	}
}
