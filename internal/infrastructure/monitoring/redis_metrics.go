package monitoring

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisHook times every command, pipeline and dial. A redis.Nil reply is a
// cache miss, not an error.
type RedisHook struct{}

func observeRedis(command string, start time.Time, err error) {
	RedisCommandDuration.WithLabelValues(command).Observe(time.Since(start).Seconds())
	if err != nil && !errors.Is(err, redis.Nil) {
		RedisCommandErrorsTotal.WithLabelValues(command).Inc()
	}
}

func (RedisHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		observeRedis(cmd.Name(), start, err)
		return err
	}
}

func (RedisHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		observeRedis("pipeline", start, err)
		return err
	}
}

func (RedisHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		start := time.Now()
		conn, err := next(ctx, network, addr)
		observeRedis("dial", start, err)
		return conn, err
	}
}

func InstrumentRedisClient(client *redis.Client) *redis.Client {
	client.AddHook(RedisHook{})
	return client
}

// LockMetrics follows one lock key from attempt to release.
type LockMetrics struct {
	lockType string
	acquired time.Time
}

func NewLockMetrics(lockKey string) *LockMetrics {
	return &LockMetrics{lockType: getLockType(lockKey)}
}

func (m *LockMetrics) Attempt() {
	RedisLockAttemptsTotal.WithLabelValues(m.lockType).Inc()
}

func (m *LockMetrics) Acquired() {
	m.acquired = time.Now()
	RedisLockSuccessTotal.WithLabelValues(m.lockType).Inc()
}

func (m *LockMetrics) Failed(reason string) {
	RedisLockFailureTotal.WithLabelValues(m.lockType, reason).Inc()
}

// Released records how long the lock was held.
func (m *LockMetrics) Released() {
	if m.acquired.IsZero() {
		return
	}
	RedisLockDuration.WithLabelValues(m.lockType).Observe(time.Since(m.acquired).Seconds())
}
