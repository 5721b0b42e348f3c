// Package redislock bloqueo distribuido por (teatro, producto) sobre Redis, para varias
// réplicas de la API escribiendo el mismo kardex.
package redislock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Concesiones-api/internal/application/ledger"
	"github.com/jhoicas/Concesiones-api/internal/domain"
)

var _ ledger.KeyLocker = (*Locker)(nil)

// unlockScript borra la llave solo si todavía guarda nuestro token.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

const (
	defaultTTL     = 30 * time.Second
	defaultPoll    = 25 * time.Millisecond
	defaultMaxWait = 10 * time.Second
)

// Options parámetros del bloqueo. Ceros = valores por defecto.
type Options struct {
	TTL       time.Duration // vigencia de la llave si el dueño muere sin liberar
	Poll      time.Duration
	MaxWait   time.Duration // tras esto Lock devuelve ErrConcurrencyConflict
	KeyPrefix string
}

// Locker SET NX PX con token aleatorio; la liberación compara y borra en un script.
type Locker struct {
	client redis.Cmdable
	opts   Options
}

// New construye el locker sobre un cliente existente.
func New(client redis.Cmdable, opts Options) *Locker {
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.Poll <= 0 {
		opts.Poll = defaultPoll
	}
	if opts.MaxWait <= 0 {
		opts.MaxWait = defaultMaxWait
	}
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = "ledger:lock:"
	}
	return &Locker{client: client, opts: opts}
}

// Dial abre el cliente Redis y verifica la conexión.
func Dial(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("conectar a Redis: %w", err)
	}
	return client, nil
}

func (l *Locker) key(theaterID, productID string) string {
	return l.opts.KeyPrefix + theaterID + ":" + productID
}

// Lock espera la llave hasta MaxWait o hasta que ctx termine.
func (l *Locker) Lock(ctx context.Context, theaterID, productID string) (func(), error) {
	key := l.key(theaterID, productID)
	token := uuid.NewString()
	deadline := time.Now().Add(l.opts.MaxWait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.opts.TTL).Result()
		if err != nil {
			return nil, fmt.Errorf("tomar bloqueo %s: %w", key, err)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("bloqueo %s ocupado: %w", key, domain.ErrConcurrencyConflict)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.opts.Poll):
		}
	}

	return func() {
		// Contexto propio: la liberación debe ocurrir aunque el de la petición ya haya terminado.
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = unlockScript.Run(ctx, l.client, []string{key}, token).Err()
	}, nil
}
