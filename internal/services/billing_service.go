package services

import (
	"errors"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/sonali689/rebate-portal/internal/models"
	"gorm.io/gorm"
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

type BillStudentRepository interface {
	FindStudentByID(studentID uint) (models.User, error)
}

type MessBillRepository interface {
	Create(bill *models.MessBill) error
	ListForStudent(studentID uint) ([]models.MessBill, error)
}

type BillInput struct {
	StudentID    uint
	Month        string
	TotalAmount  float64
	RebateAmount float64
	FinalAmount  float64
}

type BillingService struct {
	students BillStudentRepository
	bills    MessBillRepository
}

func NewBillingService(students BillStudentRepository, bills MessBillRepository) *BillingService {
	return &BillingService{
		students: students,
		bills:    bills,
	}
}

// CreateBill records one month's bill for a student. Amounts are taken as
// given except for the arithmetic check that final = total − rebate.
func (service *BillingService) CreateBill(input BillInput) (models.MessBill, error) {
	month := strings.TrimSpace(input.Month)
	if !monthPattern.MatchString(month) {
		return models.MessBill{}, ErrInvalidMonth
	}
	if math.Abs(input.TotalAmount-input.RebateAmount-input.FinalAmount) > 0.005 {
		return models.MessBill{}, ErrAmountMismatch
	}

	if _, err := service.students.FindStudentByID(input.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.MessBill{}, ErrStudentNotFound
		}
		return models.MessBill{}, err
	}

	now := time.Now()
	bill := models.MessBill{
		StudentID:    input.StudentID,
		Month:        month,
		TotalAmount:  input.TotalAmount,
		RebateAmount: input.RebateAmount,
		FinalAmount:  input.FinalAmount,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := service.bills.Create(&bill); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.MessBill{}, ErrDuplicateBill
		}
		return models.MessBill{}, err
	}
	return bill, nil
}

func (service *BillingService) ListForStudent(studentID uint) ([]models.MessBill, error) {
	return service.bills.ListForStudent(studentID)
}
