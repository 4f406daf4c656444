package locks

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
	"github.com/talentnest247/Talentnest-sub001/domain"
)

func setupLocker(t *testing.T, ttl time.Duration) (*RedisLocker, *miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisLocker(client, ttl), mr, client
}

func TestRedisLocker_AcquireRelease(t *testing.T) {
	locker, mr, _ := setupLocker(t, 10*time.Second)
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "verification:lock:1")
	require.NoError(t, err)
	assert.True(t, mr.Exists("verification:lock:1"))
	assert.Equal(t, 10*time.Second, mr.TTL("verification:lock:1"))

	_, err = locker.Acquire(ctx, "verification:lock:1")
	assert.ErrorIs(t, err, domain.ErrDecisionInProgress)

	other, err := locker.Acquire(ctx, "verification:lock:2")
	require.NoError(t, err)
	require.NoError(t, other(ctx))

	require.NoError(t, release(ctx))
	assert.False(t, mr.Exists("verification:lock:1"))

	again, err := locker.Acquire(ctx, "verification:lock:1")
	require.NoError(t, err)
	require.NoError(t, again(ctx))
}

func TestRedisLocker_ReleaseKeepsForeignLock(t *testing.T) {
	locker, mr, _ := setupLocker(t, time.Second)
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "verification:lock:9")
	require.NoError(t, err)

	// lock expires and somebody else takes it
	mr.FastForward(2 * time.Second)
	require.NoError(t, mr.Set("verification:lock:9", "someone-else"))

	require.NoError(t, release(ctx))
	got, err := mr.Get("verification:lock:9")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}

func TestRedisLocker_ExclusiveUnderContention(t *testing.T) {
	locker, _, _ := setupLocker(t, 10*time.Second)
	ctx := context.Background()

	var acquired int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := locker.Acquire(ctx, "verification:lock:contended"); err == nil {
				atomic.AddInt32(&acquired, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), acquired)
}

func TestRedisLocker_RedisUnavailable(t *testing.T) {
	locker, mr, _ := setupLocker(t, time.Second)
	mr.Close()

	_, err := locker.Acquire(context.Background(), "verification:lock:1")
	assert.Equal(t, domain.KindPersistenceFailure, domain.KindOf(err))
}
