package capacity

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomAvailability/internal/domain"
	"github.com/m04kA/SMC-RoomAvailability/pkg/psqlbuilder"
)

const tableName = "room_capacity_overrides"

// Repository репозиторий ручной вместимости типов номеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetAll получает все переопределения
func (r *Repository) GetAll(ctx context.Context) ([]*domain.CapacityOverride, error) {
	query, args, err := psqlbuilder.Select(
		"room_code",
		"capacity",
		"updated_at",
	).
		From(tableName).
		OrderBy("room_code ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]*domain.CapacityOverride, 0)

	for rows.Next() {
		var override domain.CapacityOverride
		var updatedAt sql.NullTime

		if err := rows.Scan(&override.RoomCode, &override.Capacity, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}

		override.UpdatedAt = updatedAt.Time
		overrides = append(overrides, &override)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// Upsert создает переопределение или обновляет существующее по room_code
func (r *Repository) Upsert(ctx context.Context, override *domain.CapacityOverride) (*domain.CapacityOverride, error) {
	query, args, err := psqlbuilder.Insert(tableName).
		Columns("room_code", "capacity").
		Values(override.RoomCode, override.Capacity).
		Suffix("ON CONFLICT (room_code) DO UPDATE SET capacity = EXCLUDED.capacity, updated_at = NOW() RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	override.UpdatedAt = updatedAt.Time

	return override, nil
}

// Delete удаляет переопределение по коду
func (r *Repository) Delete(ctx context.Context, roomCode string) error {
	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"room_code": roomCode}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}
