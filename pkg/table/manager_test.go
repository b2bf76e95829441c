package table_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/tableau"
	redisadapter "github.com/aretw0/tableau/pkg/adapters/redis"
	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/table"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func factory(id string) (*tableau.Table, error) {
	return tableau.New(id)
}

func TestManager_CreateGetDelete(t *testing.T) {
	m := table.NewManager(factory)
	ctx := context.Background()

	created, err := m.Create(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "t1", created.ID())

	_, err = m.Create(ctx, "t1")
	assert.ErrorIs(t, err, domain.ErrDuplicateID)

	same, err := m.GetOrCreate(ctx, "t1")
	require.NoError(t, err)
	assert.Same(t, created, same)

	_, err = m.GetOrCreate(ctx, "t0")
	require.NoError(t, err)
	assert.Equal(t, []string{"t0", "t1"}, m.List())

	require.NoError(t, m.Delete(ctx, "t1"))
	assert.ErrorIs(t, m.Delete(ctx, "t1"), domain.ErrTableNotFound)

	err = m.WithTable(ctx, "t1", func(context.Context, *tableau.Table) error { return nil })
	assert.ErrorIs(t, err, domain.ErrTableNotFound)
}

func TestManager_FactoryError(t *testing.T) {
	boom := errors.New("boom")
	m := table.NewManager(func(string) (*tableau.Table, error) { return nil, boom })

	_, err := m.Create(context.Background(), "t1")
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, m.List())
}

func TestManager_WithTableSerializesAccess(t *testing.T) {
	m := table.NewManager(factory)
	ctx := context.Background()
	_, err := m.Create(ctx, "t1")
	require.NoError(t, err)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		overlap bool
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := m.WithTable(ctx, "t1", func(ctx context.Context, tb *tableau.Table) error {
				mu.Lock()
				inside++
				if inside > 1 {
					overlap = true
				}
				mu.Unlock()

				_, err := tb.Move(ctx, "Card52", "tableau-1")
				time.Sleep(time.Millisecond)

				mu.Lock()
				inside--
				mu.Unlock()
				return err
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.False(t, overlap, "callbacks for one table must not interleave")
}

func TestManager_DistributedLock(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	m := table.NewManager(factory, table.WithLocker(redisadapter.NewLocker(client, "tableau:")))
	ctx := context.Background()
	_, err = m.Create(ctx, "t1")
	require.NoError(t, err)

	err = m.WithTable(ctx, "t1", func(context.Context, *tableau.Table) error {
		assert.True(t, mr.Exists("tableau:lock:t1"))
		return nil
	})
	require.NoError(t, err)
	assert.False(t, mr.Exists("tableau:lock:t1"))

	// Another process holds the lock: the call gives up when the context does.
	require.NoError(t, mr.Set("tableau:lock:t1", "other"))
	timeout, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	err = m.WithTable(timeout, "t1", func(context.Context, *tableau.Table) error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
