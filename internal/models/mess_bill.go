package models

import "time"

// MessBill is one month's bill for a student. Month uses the YYYY-MM form
// and is unique per student. The rebate amount is entered by the admin and
// is not derived from approved requests.
type MessBill struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	StudentID    uint       `gorm:"not null;uniqueIndex:uidx_mess_bills_student_month" json:"student_id"`
	Month        string     `gorm:"not null;uniqueIndex:uidx_mess_bills_student_month" json:"month"`
	TotalAmount  float64    `gorm:"not null" json:"total_amount"`
	RebateAmount float64    `gorm:"not null;default:0" json:"rebate_amount"`
	FinalAmount  float64    `gorm:"not null" json:"final_amount"`
	IsPaid       bool       `gorm:"not null;default:false" json:"is_paid"`
	PaymentDate  *time.Time `json:"payment_date"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}
