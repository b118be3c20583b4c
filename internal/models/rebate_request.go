package models

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// MaxRebateDays caps the inclusive span of a single request.
const MaxRebateDays = 30

// DefaultRejectionRemarks is recorded when an admin rejects without a reason.
const DefaultRejectionRemarks = "No reason provided"

type RebateRequest struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	StudentID    uint       `gorm:"not null;index:idx_rebate_requests_student" json:"student_id"`
	StartDate    time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate      time.Time  `gorm:"type:date;not null" json:"end_date"`
	TotalDays    int        `gorm:"not null" json:"total_days"`
	Reason       string     `gorm:"not null" json:"reason"`
	DocumentPath string     `json:"document_path"`
	Status       string     `gorm:"not null;default:pending;index" json:"status"`
	AdminRemarks string     `json:"admin_remarks"`
	ProcessedBy  *uint      `json:"processed_by"`
	ProcessedAt  *time.Time `json:"processed_at"`
	CreatedAt    time.Time  `gorm:"not null;index:idx_rebate_requests_student" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

// IsTerminal reports whether the request has been processed. Terminal
// requests never transition again.
func (request *RebateRequest) IsTerminal() bool {
	return request.Status == StatusApproved || request.Status == StatusRejected
}

// ValidStatus reports whether value names one of the three request states.
func ValidStatus(value string) bool {
	switch value {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}
