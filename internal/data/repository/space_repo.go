package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cowork-booking/internal/data/entity"
	"cowork-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SpaceRepository is the read-only space catalog. FindByID returns nil, nil
// when the space does not exist.
type SpaceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Space, error)
	FindAll(ctx context.Context, limit, offset int, locationFilter *string) ([]*entity.Space, error)
	CountAll(ctx context.Context, locationFilter *string) (int64, error)
}

type spaceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSpaceRepository(db database.PgxIface, log *zap.Logger) SpaceRepository {
	return &spaceRepository{
		db:  db,
		log: log.With(zap.String("repository", "space")),
	}
}

const spaceColumns = `id, name, location, capacity, price_per_hour, price_per_day,
		       price_per_week, price_per_month, features, opening_hours,
		       created_at, updated_at`

func scanSpace(row pgx.Row) (*entity.Space, error) {
	var space entity.Space
	err := row.Scan(
		&space.ID,
		&space.Name,
		&space.Location,
		&space.Capacity,
		&space.PricePerHour,
		&space.PricePerDay,
		&space.PricePerWeek,
		&space.PricePerMonth,
		&space.Features,
		&space.OpeningHours,
		&space.CreatedAt,
		&space.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &space, nil
}

func (r *spaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Space, error) {
	query := `
		SELECT ` + spaceColumns + `
		FROM spaces
		WHERE id = $1 AND deleted_at IS NULL
	`

	space, err := scanSpace(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find space by ID",
			zap.Error(err),
			zap.String("space_id", id.String()),
		)
		return nil, fmt.Errorf("find space by ID %s: %w", id.String(), err)
	}

	return space, nil
}

func (r *spaceRepository) FindAll(ctx context.Context, limit, offset int, locationFilter *string) ([]*entity.Space, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT ` + spaceColumns + `
		FROM spaces
		WHERE deleted_at IS NULL
	`)

	args := []interface{}{}
	argCount := 1

	if locationFilter != nil && *locationFilter != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND location ILIKE $%d", argCount))
		args = append(args, "%"+*locationFilter+"%")
		argCount++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY price_per_hour, name LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all spaces",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
			zap.Stringp("location_filter", locationFilter),
		)
		return nil, fmt.Errorf("find all spaces limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var spaces []*entity.Space
	for rows.Next() {
		space, err := scanSpace(rows)
		if err != nil {
			r.log.Error("Failed to scan space row", zap.Error(err))
			return nil, fmt.Errorf("scan space row: %w", err)
		}
		spaces = append(spaces, space)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate space rows: %w", err)
	}

	return spaces, nil
}

func (r *spaceRepository) CountAll(ctx context.Context, locationFilter *string) (int64, error) {
	query := `SELECT COUNT(*) FROM spaces WHERE deleted_at IS NULL`
	args := []interface{}{}

	if locationFilter != nil && *locationFilter != "" {
		query += " AND location ILIKE $1"
		args = append(args, "%"+*locationFilter+"%")
	}

	var total int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count spaces",
			zap.Error(err),
			zap.Stringp("location_filter", locationFilter),
		)
		return 0, fmt.Errorf("count all spaces: %w", err)
	}

	return total, nil
}
