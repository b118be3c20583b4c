package db

import (
	"github.com/sonali689/rebate-portal/internal/models"
	"gorm.io/gorm"
)

type MessBillRepository struct {
	database *gorm.DB
}

func NewMessBillRepository(database *gorm.DB) *MessBillRepository {
	return &MessBillRepository{database: database}
}

// Create inserts a bill after checking the (student, month) uniqueness
// inside one transaction. A duplicate surfaces as gorm.ErrDuplicatedKey.
func (repo *MessBillRepository) Create(bill *models.MessBill) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		var matched int64
		if err := tx.Model(&models.MessBill{}).
			Where("student_id = ? AND month = ?", bill.StudentID, bill.Month).
			Count(&matched).Error; err != nil {
			return err
		}
		if matched > 0 {
			return gorm.ErrDuplicatedKey
		}
		return tx.Create(bill).Error
	})
}

func (repo *MessBillRepository) ListForStudent(studentID uint) ([]models.MessBill, error) {
	bills := make([]models.MessBill, 0)
	if err := repo.database.
		Where("student_id = ?", studentID).
		Order("month DESC").
		Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}
