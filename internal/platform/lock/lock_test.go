package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisLocker_RunsAndReleases(t *testing.T) {
	mr, client := setupTestRedis(t)
	l := NewRedisLocker(client, nil)
	ctx := context.Background()

	ran, err := l.TryRun(ctx, "ledger:reconciler", time.Minute, func(ctx context.Context) error {
		assert.True(t, mr.Exists("ledger:reconciler"), "key should be held while running")
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
	assert.False(t, mr.Exists("ledger:reconciler"), "key should be released afterwards")
}

func TestRedisLocker_PropagatesError(t *testing.T) {
	_, client := setupTestRedis(t)
	l := NewRedisLocker(client, nil)

	ran, err := l.TryRun(context.Background(), "ledger:reconciler", time.Minute, func(ctx context.Context) error {
		return assert.AnError
	})
	assert.True(t, ran)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestRedisLocker_SkipsWhenHeld(t *testing.T) {
	_, client := setupTestRedis(t)
	first := NewRedisLocker(client, nil)
	second := NewRedisLocker(client, nil)
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = first.TryRun(ctx, "ledger:reconciler", time.Minute, func(ctx context.Context) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	ran, err := second.TryRun(ctx, "ledger:reconciler", time.Minute, func(ctx context.Context) error {
		t.Error("must not run while another holder has the key")
		return nil
	})
	require.NoError(t, err)
	assert.False(t, ran)

	close(release)
	<-done
}

func TestRedisLocker_EmptyKey(t *testing.T) {
	_, client := setupTestRedis(t)
	_, err := NewRedisLocker(client, nil).TryRun(context.Background(), "  ", time.Minute, func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrEmptyKey)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	_ = client.Close()

	_, err = NewRedisClient(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestLocalLocker_OneRunnerPerKey(t *testing.T) {
	l := NewLocalLocker()
	var running, maxRunning, runs int32
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			ran, err := l.TryRun(context.Background(), "k", 0, func(context.Context) error {
				n := atomic.AddInt32(&running, 1)
				for {
					m := atomic.LoadInt32(&maxRunning)
					if n <= m || atomic.CompareAndSwapInt32(&maxRunning, m, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt32(&running, -1)
				return nil
			})
			assert.NoError(t, err)
			if ran {
				atomic.AddInt32(&runs, 1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxRunning))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&runs), int32(1))

	ran, err := l.TryRun(context.Background(), "k", 0, func(context.Context) error { return nil })
	require.NoError(t, err)
	assert.True(t, ran, "key is free again after every runner returned")
}
