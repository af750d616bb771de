package repositories

import (
	"errors"
	"fmt"

	"personal-ledger/internal/models"

	"gorm.io/gorm"
)

// userRepository handles database operations for users
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepositoryInterface {
	return &userRepository{
		db: db,
	}
}

// Create creates a new user in the database
func (r *userRepository) Create(user *models.User) error {
	if user == nil {
		return errors.New("user cannot be nil")
	}

	if err := r.db.Create(user).Error; err != nil {
		// email is the only unique column besides the generated id
		if user.HasEmail() && isDuplicateKeyError(err) {
			return ErrEmailAlreadyExists
		}
		return translateError("create user", err)
	}

	return nil
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storageError("get user by ID", err)
	}

	return &user, nil
}

// GetByEmail retrieves a user by their email address
func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User

	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storageError("get user by email", err)
	}

	return &user, nil
}

// List returns users in creation order
func (r *userRepository) List(offset, limit int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := r.db.Model(&models.User{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, storageError("count users", err)
	}

	query = query.Order("user_id ASC").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&users).Error; err != nil {
		return nil, 0, storageError("list users", err)
	}

	return users, total, nil
}

func (r *userRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, storageError("count users", err)
	}
	return count, nil
}

// Delete removes a user that no transaction references
func (r *userRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var refs int64
		if err := tx.Model(&models.Transaction{}).Where("user_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return fmt.Errorf("%w: user %d has %d transactions", ErrRecordInUse, id, refs)
		}

		if err := tx.Delete(&user).Error; err != nil {
			if isForeignKeyError(err) {
				return fmt.Errorf("%w: user %d", ErrRecordInUse, id)
			}
			return err
		}
		return nil
	})

	return translateError("delete user", err)
}
