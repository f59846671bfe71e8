// Package redislock implements a run lock shared by every process that can
// reach the same Redis server.
package redislock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/bft-labs/bananascale/internal/domain"
	"github.com/bft-labs/bananascale/internal/ports"
)

// DefaultKey is the Redis key holding the lock token.
const DefaultKey = "bananascale:run-lock"

// releaseScript deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(1, `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Dialer opens a Redis connection.
type Dialer func() (redis.Conn, error)

// URLDialer dials rawURL (redis://[:password@]host:port[/db]).
func URLDialer(rawURL string) Dialer {
	return func() (redis.Conn, error) {
		return redis.DialURL(rawURL)
	}
}

// Lock implements ports.RunLock with SET NX PX.
type Lock struct {
	dial   Dialer
	key    string
	ttl    time.Duration
	logger ports.Logger
}

// New creates a Lock. ttl bounds how long a crashed holder blocks others.
func New(dial Dialer, key string, ttl time.Duration, logger ports.Logger) *Lock {
	if key == "" {
		key = DefaultKey
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Lock{dial: dial, key: key, ttl: ttl, logger: logger}
}

// Acquire takes the lock or returns domain.ErrLockHeld.
func (l *Lock) Acquire(ctx context.Context) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	conn, err := l.dial()
	if err != nil {
		return nil, fmt.Errorf("dial redis: %w", err)
	}

	token, err := newToken()
	if err != nil {
		conn.Close()
		return nil, err
	}

	_, err = redis.String(conn.Do("SET", l.key, token, "NX", "PX", l.ttl.Milliseconds()))
	if errors.Is(err, redis.ErrNil) {
		conn.Close()
		return nil, domain.ErrLockHeld
	}
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("set %s: %w", l.key, err)
	}

	l.logger.Debug("run lock acquired", ports.String("key", l.key), ports.Duration("ttl", l.ttl))

	release := func() {
		defer conn.Close()
		if _, err := releaseScript.Do(conn, l.key, token); err != nil {
			l.logger.Warn("run lock release failed", ports.String("key", l.key), ports.Err(err))
		}
	}
	return release, nil
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate lock token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
