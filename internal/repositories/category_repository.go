package repositories

import (
	"errors"
	"fmt"

	"personal-ledger/internal/models"

	"gorm.io/gorm"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepositoryInterface {
	return &categoryRepository{db: db}
}

// Create creates a new category. Duplicate names are allowed.
func (r *categoryRepository) Create(category *models.Category) error {
	if category == nil {
		return errors.New("category cannot be nil")
	}

	if err := r.db.Create(category).Error; err != nil {
		return translateError("create category", err)
	}

	return nil
}

func (r *categoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, storageError("get category by ID", err)
	}

	return &category, nil
}

// List returns all categories in creation order
func (r *categoryRepository) List() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("category_id ASC").Find(&categories).Error; err != nil {
		return nil, storageError("list categories", err)
	}
	return categories, nil
}

func (r *categoryRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return 0, storageError("count categories", err)
	}
	return count, nil
}

// Delete removes a category that no transaction references
func (r *categoryRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}

		var refs int64
		if err := tx.Model(&models.Transaction{}).Where("category_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return fmt.Errorf("%w: category %d has %d transactions", ErrRecordInUse, id, refs)
		}

		if err := tx.Delete(&category).Error; err != nil {
			if isForeignKeyError(err) {
				return fmt.Errorf("%w: category %d", ErrRecordInUse, id)
			}
			return err
		}
		return nil
	})

	return translateError("delete category", err)
}
