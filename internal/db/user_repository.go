package db

import (
	"github.com/sonali689/rebate-portal/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByEmailAndRoll(email string, rollNumber string) (models.User, error) {
	var user models.User
	if err := repo.database.
		Where("email = ? AND roll_number = ?", email, rollNumber).
		First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByEmailOrRoll(email string, rollNumber string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("email = ? OR roll_number = ?", email, rollNumber).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) Save(user *models.User) error {
	return repo.database.Save(user).Error
}

// PromoteToAdmin grants the admin role and forces the verified flag. The
// update is idempotent; there is no demotion path.
func (repo *UserRepository) PromoteToAdmin(userID uint) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"role":        models.RoleAdmin,
		"is_verified": true,
	}).Error
}

func (repo *UserRepository) MarkVerified(userID uint) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Update("is_verified", true).Error
}

func (repo *UserRepository) UpdateProfile(userID uint, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
}

func (repo *UserRepository) FindStudentByID(studentID uint) (models.User, error) {
	var student models.User
	if err := repo.database.
		Where("id = ? AND role = ?", studentID, models.RoleStudent).
		First(&student).Error; err != nil {
		return models.User{}, err
	}
	return student, nil
}

func (repo *UserRepository) ListStudents() ([]models.User, error) {
	students := make([]models.User, 0)
	if err := repo.database.
		Where("role = ?", models.RoleStudent).
		Order("created_at DESC").
		Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (repo *UserRepository) CountStudents() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.User{}).
		Where("role = ?", models.RoleStudent).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
