package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/velora/storefront_api/internal/models"
	"github.com/velora/storefront_api/internal/utils"
)

// CategoryRepository handles data access for the known storefront categories.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetAll returns every known category ordered for display.
func (r *CategoryRepository) GetAll() ([]models.Category, error) {
	const q = `SELECT * FROM categories ORDER BY sort_order, name`

	var categories []models.Category
	if err := r.db.Select(&categories, q); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetByID returns a single category by id.
func (r *CategoryRepository) GetByID(id string) (*models.Category, error) {
	const q = `SELECT * FROM categories WHERE id = $1 LIMIT 1`

	var c models.Category
	if err := r.db.Get(&c, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

// UpdateCount refreshes the display-only product count for a category.
func (r *CategoryRepository) UpdateCount(id string, count int) error {
	const q = `UPDATE categories SET count = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(q, id, count)
	return err
}
