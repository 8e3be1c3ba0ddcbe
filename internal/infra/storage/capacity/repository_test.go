package capacity

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomAvailability/internal/domain"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func TestRepository_GetAll(t *testing.T) {
	repo, mock := newMock(t)
	updated := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT room_code, capacity, updated_at FROM room_capacity_overrides ORDER BY room_code ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"room_code", "capacity", "updated_at"}).
			AddRow("FAM", 4, updated).
			AddRow("STD", 2, updated))

	overrides, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, overrides, 2)
	assert.Equal(t, &domain.CapacityOverride{RoomCode: "FAM", Capacity: 4, UpdatedAt: updated}, overrides[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetAll_QueryError(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT room_code").WillReturnError(errors.New("connection reset"))

	_, err := repo.GetAll(context.Background())
	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestRepository_Upsert(t *testing.T) {
	repo, mock := newMock(t)
	updated := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO room_capacity_overrides (room_code,capacity) VALUES ($1,$2) ON CONFLICT (room_code)")).
		WithArgs("FAM", 4).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(updated))

	saved, err := repo.Upsert(context.Background(), &domain.CapacityOverride{RoomCode: "FAM", Capacity: 4})
	require.NoError(t, err)
	assert.Equal(t, updated, saved.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM room_capacity_overrides WHERE room_code = $1")).
		WithArgs("FAM").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM room_capacity_overrides WHERE room_code = $1")).
		WithArgs("NONE").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "FAM"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "NONE"), ErrOverrideNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
