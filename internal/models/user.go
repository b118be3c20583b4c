package models

import "time"

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	RollNumber      *string   `gorm:"uniqueIndex" json:"roll_number"`
	Email           string    `gorm:"uniqueIndex;not null" json:"email"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	Hostel          string    `json:"hostel"`
	RoomNumber      string    `json:"room_number"`
	Role            string    `gorm:"not null;default:student" json:"role"`
	IsActive        bool      `gorm:"not null;default:true" json:"is_active"`
	IsVerified      bool      `gorm:"not null;default:false" json:"is_verified"`
	TotalRebateDays int       `gorm:"not null;default:0" json:"total_rebate_days"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

func (user *User) IsAdmin() bool {
	return user.Role == RoleAdmin
}

func (user *User) IsStudent() bool {
	return user.Role == RoleStudent
}
