package services

import (
	"errors"
	"testing"

	"github.com/sonali689/rebate-portal/internal/db"
)

func newTestBillingService(t *testing.T) (*BillingService, *db.Repositories) {
	t.Helper()

	repositories := newTestRepositories(t)
	return NewBillingService(repositories.Users, repositories.Bills), repositories
}

func TestCreateBill(t *testing.T) {
	t.Parallel()

	service, repositories := newTestBillingService(t)
	student := createTestStudent(t, repositories, "bill@hostel.test", "250001")

	bill, err := service.CreateBill(BillInput{
		StudentID:    student.ID,
		Month:        "2024-03",
		TotalAmount:  3000,
		RebateAmount: 500,
		FinalAmount:  2500,
	})
	if err != nil {
		t.Fatalf("create bill: %v", err)
	}
	if bill.ID == 0 || bill.Month != "2024-03" || bill.FinalAmount != 2500 {
		t.Fatalf("unexpected bill %+v", bill)
	}
}

func TestCreateBillValidation(t *testing.T) {
	t.Parallel()

	service, repositories := newTestBillingService(t)
	student := createTestStudent(t, repositories, "bill-validate@hostel.test", "250002")
	admin := createTestAdmin(t, repositories, "bill-admin@hostel.test")

	valid := BillInput{StudentID: student.ID, Month: "2024-04", TotalAmount: 3000, RebateAmount: 500, FinalAmount: 2500}

	tests := []struct {
		name    string
		mutate  func(input BillInput) BillInput
		wantErr error
	}{
		{
			name:    "month without zero padding",
			mutate:  func(input BillInput) BillInput { input.Month = "2024-4"; return input },
			wantErr: ErrInvalidMonth,
		},
		{
			name:    "month out of range",
			mutate:  func(input BillInput) BillInput { input.Month = "2024-13"; return input },
			wantErr: ErrInvalidMonth,
		},
		{
			name:    "final amount off",
			mutate:  func(input BillInput) BillInput { input.FinalAmount = 2400; return input },
			wantErr: ErrAmountMismatch,
		},
		{
			name:    "unknown student",
			mutate:  func(input BillInput) BillInput { input.StudentID = 9999; return input },
			wantErr: ErrStudentNotFound,
		},
		{
			name:    "admin is not billable",
			mutate:  func(input BillInput) BillInput { input.StudentID = admin.ID; return input },
			wantErr: ErrStudentNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := service.CreateBill(tt.mutate(valid)); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreateBillRejectsDuplicateMonth(t *testing.T) {
	t.Parallel()

	service, repositories := newTestBillingService(t)
	student := createTestStudent(t, repositories, "bill-dup@hostel.test", "250003")

	input := BillInput{StudentID: student.ID, Month: "2024-05", TotalAmount: 3000, RebateAmount: 0, FinalAmount: 3000}
	if _, err := service.CreateBill(input); err != nil {
		t.Fatalf("first bill: %v", err)
	}
	if _, err := service.CreateBill(input); !errors.Is(err, ErrDuplicateBill) {
		t.Fatalf("expected ErrDuplicateBill, got %v", err)
	}

	// Same month for a different student is fine.
	other := createTestStudent(t, repositories, "bill-dup-other@hostel.test", "250004")
	input.StudentID = other.ID
	if _, err := service.CreateBill(input); err != nil {
		t.Fatalf("same month, other student: %v", err)
	}
}

func TestListForStudentNewestMonthFirst(t *testing.T) {
	t.Parallel()

	service, repositories := newTestBillingService(t)
	student := createTestStudent(t, repositories, "bill-order@hostel.test", "250005")

	for _, month := range []string{"2024-01", "2024-03", "2024-02"} {
		if _, err := service.CreateBill(BillInput{StudentID: student.ID, Month: month, TotalAmount: 3000, RebateAmount: 0, FinalAmount: 3000}); err != nil {
			t.Fatalf("create %s: %v", month, err)
		}
	}

	bills, err := service.ListForStudent(student.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(bills) != 3 {
		t.Fatalf("expected 3 bills, got %d", len(bills))
	}
	for i, month := range []string{"2024-03", "2024-02", "2024-01"} {
		if bills[i].Month != month {
			t.Fatalf("position %d: got %s, want %s", i, bills[i].Month, month)
		}
	}
}
