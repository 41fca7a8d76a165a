package db

import (
	"strings"

	"github.com/aluna-health/aluna/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (*models.User, error) {
	user := models.User{}
	if err := repo.database.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (repo *UserRepository) FindByEmail(email string) (*models.User, bool, error) {
	user := models.User{}
	result := repo.database.
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Limit(1).
		Find(&user)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, false, nil
	}
	return &user, true, nil
}

// ListIDs returns every user id, used by the periodic reminder refresh.
func (repo *UserRepository) ListIDs() ([]uint, error) {
	ids := make([]uint, 0)
	if err := repo.database.
		Model(&models.User{}).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) Save(user *models.User) error {
	return repo.database.Save(user).Error
}
