package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cowork-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const spaceCachePrefix = "space:"

// cachedSpaceRepository reads single spaces through Redis. Listing and
// counting go straight to the underlying repository. Redis failures are
// logged and fall through to the database.
type cachedSpaceRepository struct {
	SpaceRepository
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

// NewCachedSpaceRepository wraps next with a Redis read-through cache. With
// a nil client it returns next unchanged.
func NewCachedSpaceRepository(next SpaceRepository, rdb *redis.Client, ttl time.Duration, log *zap.Logger) SpaceRepository {
	if rdb == nil {
		return next
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &cachedSpaceRepository{
		SpaceRepository: next,
		rdb:             rdb,
		ttl:             ttl,
		log:             log.With(zap.String("repository", "space_cache")),
	}
}

func (r *cachedSpaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Space, error) {
	key := spaceCachePrefix + id.String()

	raw, err := r.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var space entity.Space
		if err := json.Unmarshal(raw, &space); err == nil {
			return &space, nil
		}
		r.log.Warn("Dropping undecodable cache entry", zap.String("key", key))
		r.rdb.Del(ctx, key)
	case !errors.Is(err, redis.Nil):
		r.log.Warn("Space cache read failed", zap.Error(err), zap.String("key", key))
	}

	space, err := r.SpaceRepository.FindByID(ctx, id)
	if err != nil || space == nil {
		return space, err
	}

	if err := r.store(ctx, key, space); err != nil {
		r.log.Warn("Space cache write failed", zap.Error(err), zap.String("key", key))
	}
	return space, nil
}

func (r *cachedSpaceRepository) store(ctx context.Context, key string, space *entity.Space) error {
	raw, err := json.Marshal(space)
	if err != nil {
		return fmt.Errorf("encode space %s: %w", space.ID, err)
	}
	return r.rdb.Set(ctx, key, raw, r.ttl).Err()
}
