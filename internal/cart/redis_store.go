package cart

import (
	"context"
	"encoding/json"
	"time"

	pkgerrors "github.com/peasmarket/storefront/pkg/errors"
	"github.com/peasmarket/storefront/pkg/logger"
	pkgredis "github.com/peasmarket/storefront/pkg/redis"
)

type redisCommands interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CartKey(sessionID string) string
}

// RedisStore persists cart snapshots in redis, one key per session, refreshed
// with the configured TTL on every save.
type RedisStore struct {
	client redisCommands
	ttl    time.Duration
	logg   *logger.Logger
}

func NewRedisStore(client *pkgredis.Client, ttl time.Duration, logg *logger.Logger) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, logg: logg}
}

func (r *RedisStore) Load(ctx context.Context, sessionID string) (Cart, error) {
	raw, err := r.client.Get(ctx, r.client.CartKey(sessionID))
	if err != nil {
		if pkgredis.IsMissing(err) {
			return Cart{}, nil
		}
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart snapshot")
	}
	return decodeSnapshot(ctx, r.logg, sessionID, []byte(raw)), nil
}

func (r *RedisStore) Save(ctx context.Context, sessionID string, c Cart) error {
	raw, err := json.Marshal(c.Items)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding cart snapshot")
	}
	if err := r.client.Set(ctx, r.client.CartKey(sessionID), string(raw), r.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart snapshot")
	}
	return nil
}
