package services

import "errors"

// Client-visible failure classes. Handlers map these onto HTTP statuses;
// anything else is treated as an internal error.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrDuplicateIdentity    = errors.New("user with this email or roll number already exists")
	ErrMissingRollNumber    = errors.New("roll number is required for student login")
	ErrNotFoundOrUnverified = errors.New("student not found or not verified")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidOrExpiredCode = errors.New("invalid or expired OTP")
	ErrInvalidDateRange     = errors.New("start date cannot be after end date")
	ErrExceedsMaxPeriod     = errors.New("maximum rebate period is 30 days")
	ErrUnsupportedFileType  = errors.New("invalid file type")
	ErrRequestNotFound      = errors.New("rebate request not found")
	ErrAlreadyProcessed     = errors.New("rebate request already processed")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidStatusFilter  = errors.New("invalid status filter")
	ErrStudentNotFound      = errors.New("student not found")
	ErrDuplicateBill        = errors.New("bill already exists for this month")
	ErrInvalidMonth         = errors.New("month must use the YYYY-MM format")
	ErrAmountMismatch       = errors.New("final amount must equal total amount minus rebate amount")
)
