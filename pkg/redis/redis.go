package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"campus-lms/backend/config"
)

// ErrLockHeld is returned when another operator holds the lock
var ErrLockHeld = errors.New("lock is held by another operation")

// Client wraps go-redis.
// Used for the session blacklist and short-lived operation locks.
type Client struct {
	rdb    goredis.UniversalClient
	logger *zap.Logger
}

// NewClient connects and pings
func NewClient(ctx context.Context, cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis connect: %w", err)
	}

	logger.Debug("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// NewFromUniversal wraps an existing client
func NewFromUniversal(rdb goredis.UniversalClient, logger *zap.Logger) *Client {
	return &Client{rdb: rdb, logger: logger}
}

// ── session blacklist ──

const blacklistPrefix = "lms:session:blacklist:"

// BlacklistToken stores the token id until the token would have expired anyway
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted reports whether the token id was revoked
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── operation locks ──

const lockPrefix = "lms:lock:"

// deletes the key only while it still holds this holder's token
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// Lock takes a SET NX lock and returns its release func.
// Release is a no-op once the TTL lapsed and someone else took the lock.
func (c *Client) Lock(ctx context.Context, name string, ttl time.Duration) (func(), error) {
	key := lockPrefix + name
	token := uuid.NewString()
	ok, err := c.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLockHeld
	}

	return func() {
		// ctx may already be cancelled
		n, err := releaseScript.Run(context.Background(), c.rdb, []string{key}, token).Int()
		if err != nil {
			c.logger.Warn("release lock failed", zap.String("key", key), zap.Error(err))
			return
		}
		if n == 0 {
			c.logger.Warn("lock expired before release", zap.String("key", key))
		}
	}, nil
}

// Close closes the connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
