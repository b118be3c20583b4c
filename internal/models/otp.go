package models

import "time"

const (
	OTPPurposeRegistration = "registration"
	OTPPurposeLogin        = "login"
)

// OTPCodeLength is the number of digits in a generated one-time code.
const OTPCodeLength = 6

// OTP is a single-use numeric passcode bound to a user and a purpose.
// Only a bcrypt hash of the code is stored; expired and used rows are
// left in place.
type OTP struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index:idx_otps_user_active"`
	CodeHash  string    `gorm:"not null"`
	Purpose   string    `gorm:"not null;default:login"`
	IsUsed    bool      `gorm:"not null;default:false;index:idx_otps_user_active"`
	ExpiresAt time.Time `gorm:"not null;index:idx_otps_user_active"`
	CreatedAt time.Time `gorm:"not null"`
}
