package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"cowork-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSpaceRepository struct {
	SpaceRepository
	mu    sync.Mutex
	calls int
	space *entity.Space
}

func (s *stubSpaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Space, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.space == nil {
		return nil, nil
	}
	space := *s.space
	space.ID = id
	return &space, nil
}

func (s *stubSpaceRepository) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// memoryRedis answers GET, SET and DEL from a map so the client never dials.
type memoryRedis struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]bool
}

func newMemoryRedis() *memoryRedis {
	return &memoryRedis{data: map[string]string{}, ttls: map[string]bool{}}
}

func (m *memoryRedis) DialHook(next redis.DialHook) redis.DialHook { return next }

func (m *memoryRedis) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (m *memoryRedis) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		m.mu.Lock()
		defer m.mu.Unlock()

		args := cmd.Args()
		key := fmt.Sprint(args[1])
		switch c := cmd.(type) {
		case *redis.StringCmd:
			v, ok := m.data[key]
			if !ok {
				c.SetErr(redis.Nil)
				return redis.Nil
			}
			c.SetVal(v)
		case *redis.StatusCmd:
			switch v := args[2].(type) {
			case []byte:
				m.data[key] = string(v)
			default:
				m.data[key] = fmt.Sprint(v)
			}
			m.ttls[key] = len(args) > 3
			c.SetVal("OK")
		case *redis.IntCmd:
			_, ok := m.data[key]
			delete(m.data, key)
			if ok {
				c.SetVal(1)
			}
		default:
			return next(ctx, cmd)
		}
		return nil
	}
}

func (m *memoryRedis) get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *memoryRedis) put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

func newMemoryClient(t *testing.T) (*redis.Client, *memoryRedis) {
	t.Helper()
	mem := newMemoryRedis()
	rdb := redis.NewClient(&redis.Options{Addr: "memory:6379"})
	rdb.AddHook(mem)
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb, mem
}

func TestNewCachedSpaceRepository_WithoutRedis(t *testing.T) {
	next := &stubSpaceRepository{space: &entity.Space{Name: "Places"}}

	repo := NewCachedSpaceRepository(next, nil, time.Minute, zap.NewNop())

	assert.Same(t, next, repo)
	space, err := repo.FindByID(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Equal(t, "Places", space.Name)
}

func TestCachedSpaceRepository_MissThenHit(t *testing.T) {
	rdb, mem := newMemoryClient(t)
	next := &stubSpaceRepository{space: &entity.Space{
		Name:         "Places",
		Capacity:     12,
		PricePerHour: 8,
		OpeningHours: entity.OpeningHours{"sunday": {Closed: true}},
	}}
	repo := NewCachedSpaceRepository(next, rdb, time.Minute, zap.NewNop())
	id := uuid.New()

	first, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 1, next.Calls())

	_, ok := mem.get(spaceCachePrefix + id.String())
	require.True(t, ok, "space should be stored after a miss")
	assert.True(t, mem.ttls[spaceCachePrefix+id.String()])

	second, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 1, next.Calls(), "second read should be served from cache")
	assert.Equal(t, id, second.ID)
	assert.Equal(t, "Places", second.Name)
	assert.Equal(t, 12, second.Capacity)
	assert.True(t, second.OpeningHours["sunday"].Closed)
}

func TestCachedSpaceRepository_UndecodableEntry(t *testing.T) {
	rdb, mem := newMemoryClient(t)
	next := &stubSpaceRepository{space: &entity.Space{Name: "Places"}}
	repo := NewCachedSpaceRepository(next, rdb, time.Minute, zap.NewNop())
	id := uuid.New()
	key := spaceCachePrefix + id.String()
	mem.put(key, "{not json")

	space, err := repo.FindByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, "Places", space.Name)
	assert.Equal(t, 1, next.Calls())
	raw, ok := mem.get(key)
	require.True(t, ok)
	assert.NotEqual(t, "{not json", raw)
}

func TestCachedSpaceRepository_MissingSpaceNotCached(t *testing.T) {
	rdb, mem := newMemoryClient(t)
	next := &stubSpaceRepository{}
	repo := NewCachedSpaceRepository(next, rdb, time.Minute, zap.NewNop())
	id := uuid.New()

	space, err := repo.FindByID(context.Background(), id)

	require.NoError(t, err)
	assert.Nil(t, space)
	_, ok := mem.get(spaceCachePrefix + id.String())
	assert.False(t, ok)
}

func TestCachedSpaceRepository_RedisDown(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	next := &stubSpaceRepository{space: &entity.Space{Name: "Places"}}
	repo := NewCachedSpaceRepository(next, rdb, time.Minute, zap.NewNop())

	space, err := repo.FindByID(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Equal(t, "Places", space.Name)
	assert.Equal(t, 1, next.Calls())
}
