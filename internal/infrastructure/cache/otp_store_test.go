package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisOTPStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisOTPStore(client), mr
}

func TestRedisOTPStoreRoundTrip(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	entry := OTPEntry{
		Code:      "123456",
		UserID:    9,
		Position:  "staff",
		Action:    ActionLogin,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	require.NoError(t, store.Save(ctx, "staff@example.com", entry))

	assert.True(t, mr.Exists("otp:staff@example.com"))
	ttl := mr.TTL("otp:staff@example.com")
	assert.Greater(t, ttl, 10*time.Minute)

	got, err := store.Get(ctx, "staff@example.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", got.Code)
	assert.Equal(t, uint(9), got.UserID)
	assert.Equal(t, ActionLogin, got.Action)

	require.NoError(t, store.Delete(ctx, "staff@example.com"))
	_, err = store.Get(ctx, "staff@example.com")
	assert.ErrorIs(t, err, ErrOTPNotFound)
}

func TestRedisOTPStoreKeyExpires(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "a@example.com", OTPEntry{Code: "1", ExpiresAt: time.Now().Add(time.Minute)}))
	mr.FastForward(time.Minute + retention + time.Second)

	_, err := store.Get(ctx, "a@example.com")
	assert.ErrorIs(t, err, ErrOTPNotFound)
}

func TestMemoryOTPStoreReportsExpiredBeforeEviction(t *testing.T) {
	store := NewMemoryOTPStore()
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "a@example.com", OTPEntry{Code: "654321", ExpiresAt: now.Add(10 * time.Minute)}))

	now = now.Add(11 * time.Minute)
	got, err := store.Get(ctx, "a@example.com")
	require.NoError(t, err)
	assert.True(t, got.Expired(now))

	now = now.Add(retention)
	_, err = store.Get(ctx, "a@example.com")
	assert.ErrorIs(t, err, ErrOTPNotFound)
}

func TestMemoryOTPStoreOverwrites(t *testing.T) {
	store := NewMemoryOTPStore()
	ctx := context.Background()
	exp := time.Now().Add(time.Minute)

	require.NoError(t, store.Save(ctx, "a@example.com", OTPEntry{Code: "111111", ExpiresAt: exp}))
	require.NoError(t, store.Save(ctx, "a@example.com", OTPEntry{Code: "222222", ExpiresAt: exp}))

	got, err := store.Get(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "222222", got.Code)
}

func TestRedisOTPStoreConcurrentAttempts(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "a@example.com", OTPEntry{Code: "1", ExpiresAt: time.Now().Add(time.Minute)}))

	const guesses = 20
	seen := make(chan int, guesses)
	var wg sync.WaitGroup
	for i := 0; i < guesses; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := store.IncrementAttempts(ctx, "a@example.com")
			assert.NoError(t, err)
			seen <- n
		}()
	}
	wg.Wait()
	close(seen)

	counts := make(map[int]bool, guesses)
	for n := range seen {
		counts[n] = true
	}
	assert.Len(t, counts, guesses)

	got, err := store.Get(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, guesses, got.Attempts)
	assert.Greater(t, mr.TTL("otp:attempts:a@example.com"), time.Minute)
}

func TestRedisOTPStoreSaveResetsAttempts(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()
	entry := OTPEntry{Code: "1", ExpiresAt: time.Now().Add(time.Minute)}
	require.NoError(t, store.Save(ctx, "a@example.com", entry))

	n, err := store.IncrementAttempts(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, store.Save(ctx, "a@example.com", entry))
	got, err := store.Get(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Zero(t, got.Attempts)

	_, err = store.IncrementAttempts(ctx, "a@example.com")
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, "a@example.com"))
	assert.False(t, mr.Exists("otp:attempts:a@example.com"))

	_, err = store.IncrementAttempts(ctx, "a@example.com")
	assert.ErrorIs(t, err, ErrOTPNotFound)
}

func TestMemoryOTPStoreIncrementAttempts(t *testing.T) {
	store := NewMemoryOTPStore()
	ctx := context.Background()

	_, err := store.IncrementAttempts(ctx, "a@example.com")
	assert.ErrorIs(t, err, ErrOTPNotFound)

	require.NoError(t, store.Save(ctx, "a@example.com", OTPEntry{Code: "1", ExpiresAt: time.Now().Add(time.Minute)}))
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.IncrementAttempts(ctx, "a@example.com")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Attempts)
}
