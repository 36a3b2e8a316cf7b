package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velora/storefront_api/internal/utils"
)

func newMockRepo(t *testing.T) (*CategoryRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCategoryRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func categoryColumns() []string {
	return []string{"id", "name", "description", "icon", "count", "sort_order", "created_at", "updated_at"}
}

func TestCategoryRepository_GetAll(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	rows := sqlmock.NewRows(categoryColumns()).
		AddRow("dresses", "Dresses", "", "dress", 12, 1, now, now).
		AddRow("tops", "Tops", "", "shirt", 8, 2, now, now)
	mock.ExpectQuery(`SELECT \* FROM categories ORDER BY sort_order, name`).
		WillReturnRows(rows)

	categories, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "dresses", categories[0].ID)
	assert.Equal(t, 12, categories[0].Count)
	assert.Equal(t, "tops", categories[1].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_GetByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	rows := sqlmock.NewRows(categoryColumns()).
		AddRow("dresses", "Dresses", "Occasion and everyday dresses", "dress", 12, 1, now, now)
	mock.ExpectQuery(`SELECT \* FROM categories WHERE id = \$1 LIMIT 1`).
		WithArgs("dresses").
		WillReturnRows(rows)

	c, err := repo.GetByID("dresses")
	require.NoError(t, err)
	assert.Equal(t, "Dresses", c.Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM categories WHERE id = \$1 LIMIT 1`).
		WithArgs("shoes").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID("shoes")
	assert.ErrorIs(t, err, utils.ErrCategoryNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_UpdateCount(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE categories SET count = \$2, updated_at = NOW\(\) WHERE id = \$1`).
		WithArgs("dresses", 14).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateCount("dresses", 14)
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
