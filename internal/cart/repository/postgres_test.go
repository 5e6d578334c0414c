package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onlineretail/storefront/internal/apperr"
	"github.com/onlineretail/storefront/internal/model"
)

func newMockRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestStageItemsInsertsWholeBatch(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO online_retail\.cart_staging`).
		WithArgs("u1", "p1", "Chair", 2, 49.99).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO online_retail\.cart_staging`).
		WithArgs("u1", "p2", "Lamp", 1, 19.99).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.StageItems(context.Background(), "u1", []model.StagedCartLine{
		{ProductID: "p1", Name: "Chair", Quantity: 2, UnitPrice: 49.99},
		{ProductID: "p2", Name: "Lamp", Quantity: 1, UnitPrice: 19.99},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStageItemsTagsRowsWithActingOwner(t *testing.T) {
	repo, mock := newMockRepo(t)

	// A line carrying someone else's owner id is still staged under the
	// acting owner; the tag on the row wins over the tag on the line.
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO online_retail\.cart_staging`).
		WithArgs("u1", "p1", "Chair", 2, 49.99).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.StageItems(context.Background(), "u1", []model.StagedCartLine{
		{OwnerID: "mallory", ProductID: "p1", Name: "Chair", Quantity: 2, UnitPrice: 49.99},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStageItemsRollsBackPartialBatch(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO online_retail\.cart_staging`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO online_retail\.cart_staging`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.StageItems(context.Background(), "u1", []model.StagedCartLine{
		{ProductID: "p1", Name: "Chair", Quantity: 2, UnitPrice: 49.99},
		{ProductID: "p2", Name: "Lamp", Quantity: 1, UnitPrice: 19.99},
	})
	assert.ErrorIs(t, err, apperr.ErrAtomicUnitAborted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMergeMovesOnlyOwnersLines(t *testing.T) {
	repo, mock := newMockRepo(t)

	// Both statements are scoped to the one owner; the transaction commits
	// only when the drain consumed exactly what the insert copied.
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO online_retail\.cart_committed`).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM online_retail\.cart_staging WHERE owner_id = \$1`).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	merged, err := repo.MergeStagedToCommitted(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, merged)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMergeWithNothingStagedIsNoOp(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO online_retail\.cart_committed`).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM online_retail\.cart_staging`).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	merged, err := repo.MergeStagedToCommitted(context.Background(), "u1")
	require.NoError(t, err)
	assert.Zero(t, merged)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMergeRollsBackWhenDrainFails(t *testing.T) {
	repo, mock := newMockRepo(t)

	// A failure after the copy leaves staging exactly as before the attempt.
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO online_retail\.cart_committed`).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM online_retail\.cart_staging`).
		WithArgs("u1").
		WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	_, err := repo.MergeStagedToCommitted(context.Background(), "u1")
	assert.ErrorIs(t, err, apperr.ErrAtomicUnitAborted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMergeAbortsOnScopeMismatch(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO online_retail\.cart_committed`).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM online_retail\.cart_staging`).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectRollback()

	_, err := repo.MergeStagedToCommitted(context.Background(), "u1")
	assert.ErrorIs(t, err, apperr.ErrMergeScopeViolation)
	assert.NoError(t, mock.ExpectationsWereMet())
}
