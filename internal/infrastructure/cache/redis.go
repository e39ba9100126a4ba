// Package cache guarda en Redis las claves Idempotency-Key de los ajustes.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/stockops/internal/application/inventory"
)

var _ inventory.IdempotencyStore = (*IdempotencyStore)(nil)

const keyPrefix = "stockops:idem:adjustment:"

// NewRedis crea el cliente y valida la conexión al arrancar.
func NewRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// Valor de una clave reservada y aún sin ID de operación.
const pendingPrefix = "pending:"

// Una reserva huérfana (proceso caído a mitad del ajuste) vence antes que la clave completada.
const maxPendingTTL = time.Minute

// completeScript reemplaza la reserva solo si sigue siendo del token.
var completeScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
end
return false
`)

// releaseScript borra la clave solo si sigue reservada por el token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// IdempotencyStore asocia una clave de cliente con la operación que creó, con vencimiento.
type IdempotencyStore struct {
	rdb        *redis.Client
	ttl        time.Duration
	pendingTTL time.Duration
}

// NewIdempotencyStore construye el almacén.
func NewIdempotencyStore(rdb *redis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb, ttl: ttl, pendingTTL: min(ttl, maxPendingTTL)}
}

// Claim reserva la clave con SET NX. Si ya existe devuelve el ID registrado, o "" cuando
// sigue reservada (o se liberó entre el SET y el GET).
func (s *IdempotencyStore) Claim(ctx context.Context, key, token string) (string, bool, error) {
	ok, err := s.rdb.SetNX(ctx, keyPrefix+key, pendingPrefix+token, s.pendingTTL).Result()
	if err != nil {
		return "", false, fmt.Errorf("idempotency claim: %w", err)
	}
	if ok {
		return "", true, nil
	}
	v, err := s.rdb.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency claim: %w", err)
	}
	if strings.HasPrefix(v, pendingPrefix) {
		return "", false, nil
	}
	return v, false, nil
}

// Complete guarda el ID de operación con el TTL completo.
func (s *IdempotencyStore) Complete(ctx context.Context, key, token, operationID string) error {
	err := completeScript.Run(ctx, s.rdb, []string{keyPrefix + key},
		pendingPrefix+token, operationID, s.ttl.Milliseconds()).Err()
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("idempotency complete: la clave %q ya no está reservada por este ajuste", key)
	}
	if err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

// Release libera la reserva del token.
func (s *IdempotencyStore) Release(ctx context.Context, key, token string) error {
	if err := releaseScript.Run(ctx, s.rdb, []string{keyPrefix + key}, pendingPrefix+token).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

// Ping verifica la conexión (usado por /health).
func (s *IdempotencyStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
