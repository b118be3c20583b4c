package db

import (
	"time"

	"github.com/sonali689/rebate-portal/internal/models"
	"gorm.io/gorm"
)

type OTPRepository struct {
	database *gorm.DB
}

func NewOTPRepository(database *gorm.DB) *OTPRepository {
	return &OTPRepository{database: database}
}

func (repo *OTPRepository) Create(otp *models.OTP) error {
	return repo.database.Create(otp).Error
}

// ListActiveForUser returns the user's unused, unexpired codes, newest
// first. Stale rows are never deleted; they simply stop matching here.
func (repo *OTPRepository) ListActiveForUser(userID uint, now time.Time) ([]models.OTP, error) {
	otps := make([]models.OTP, 0)
	if err := repo.database.
		Where("user_id = ? AND is_used = ? AND expires_at > ?", userID, false, now).
		Order("created_at DESC").
		Find(&otps).Error; err != nil {
		return nil, err
	}
	return otps, nil
}

// Consume flips a code to used. The guard on is_used makes the flip
// first-writer-wins under concurrent verification attempts.
func (repo *OTPRepository) Consume(otpID uint) (bool, error) {
	result := repo.database.Model(&models.OTP{}).
		Where("id = ? AND is_used = ?", otpID, false).
		Update("is_used", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
