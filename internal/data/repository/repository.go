package repository

import (
	"time"

	"cowork-booking/pkg/database"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Repository struct {
	Space   SpaceRepository
	Session SessionRepository
}

// NewRepository builds all repositories. rdb may be nil, in which case the
// space catalog is read from Postgres on every lookup.
func NewRepository(db database.PgxIface, rdb *redis.Client, cacheTTL time.Duration, log *zap.Logger) *Repository {
	return &Repository{
		Space:   NewCachedSpaceRepository(NewSpaceRepository(db, log), rdb, cacheTTL, log),
		Session: NewSessionRepository(db, log),
	}
}
