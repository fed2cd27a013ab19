package stock

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStoreWithClient(client, "")
}

func TestStores(t *testing.T) {
	stores := map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemoryStore() },
		"redis":  func(t *testing.T) Store { return newRedisStore(t) },
	}

	for name, newStore := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := newStore(t)

			oos, err := s.MarkUnavailable(ctx, " giant ")
			require.NoError(t, err)
			assert.Equal(t, []string{"GIANT"}, oos)

			oos, err = s.MarkUnavailable(ctx, "brownie")
			require.NoError(t, err)
			assert.Equal(t, []string{"BROWNIE", "GIANT"}, oos)

			snap, err := s.Snapshot(ctx)
			require.NoError(t, err)
			assert.True(t, snap.IsUnavailable("GIANT"))
			assert.False(t, snap.IsUnavailable("SUNDAE"))

			oos, err = s.MarkAvailable(ctx, "Giant")
			require.NoError(t, err)
			assert.Equal(t, []string{"BROWNIE"}, oos)

			// earlier snapshots are unaffected by later writes
			assert.True(t, snap.IsUnavailable("GIANT"))

			oos, err = s.MarkAvailable(ctx, "UNKNOWN")
			require.NoError(t, err)
			assert.Equal(t, []string{"BROWNIE"}, oos)

			_, err = s.MarkUnavailable(ctx, "   ")
			assert.ErrorIs(t, err, ErrEmptySKU)
		})
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	skus := []string{"GIANT", "BROWNIE", "SUNDAE", "WATER"}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			sku := skus[n%len(skus)]
			if n%2 == 0 {
				_, _ = s.MarkUnavailable(ctx, sku)
			} else {
				snap, err := s.Snapshot(ctx)
				if err != nil {
					t.Errorf("snapshot failed: %v", err)
					return
				}
				_ = snap.IsUnavailable(sku)
			}
		}(i)
	}
	wg.Wait()

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"GIANT", "SUNDAE"}, snap.Sorted())
}

func TestRedisStore_SharedBetweenInstances(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	a := NewRedisStoreWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "lane:oos")
	b := NewRedisStoreWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "lane:oos")
	t.Cleanup(func() {
		_ = a.Close()
		_ = b.Close()
	})

	_, err := a.MarkUnavailable(ctx, "fanta")
	require.NoError(t, err)

	snap, err := b.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, snap.IsUnavailable("FANTA"))
}

func TestNewRedisStore_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisStore(context.Background(), addr, "", 0, "")
	assert.Error(t, err)
}
