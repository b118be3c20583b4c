package services

import (
	"time"

	"github.com/sonali689/rebate-portal/internal/models"
	"github.com/sonali689/rebate-portal/internal/security"
	"golang.org/x/crypto/bcrypt"
)

type OTPRepository interface {
	Create(otp *models.OTP) error
	ListActiveForUser(userID uint, now time.Time) ([]models.OTP, error)
	Consume(otpID uint) (bool, error)
}

// Notifier carries a freshly issued code out of band. Implementations must
// never fail the caller; delivery problems are logged and swallowed.
type Notifier interface {
	Dispatch(to string, code string, purpose string)
}

// OTPService issues and verifies single-use login codes. Codes are stored
// bcrypt-hashed; verification scans the user's live codes and compares
// hashes, so the lookup stays jointly scoped to (user, code).
type OTPService struct {
	otps     OTPRepository
	notifier Notifier
	ttl      time.Duration
}

func NewOTPService(otps OTPRepository, notifier Notifier, ttl time.Duration) *OTPService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &OTPService{
		otps:     otps,
		notifier: notifier,
		ttl:      ttl,
	}
}

func (service *OTPService) TTL() time.Duration {
	return service.ttl
}

// Issue generates a code, persists its hash, and hands the plaintext to the
// notifier. The code never travels back to the API caller.
func (service *OTPService) Issue(user *models.User, purpose string) error {
	code, err := security.NumericCode(models.OTPCodeLength)
	if err != nil {
		return err
	}

	codeHash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	otp := models.OTP{
		UserID:    user.ID,
		CodeHash:  string(codeHash),
		Purpose:   purpose,
		ExpiresAt: now.Add(service.ttl),
		CreatedAt: now,
	}
	if err := service.otps.Create(&otp); err != nil {
		return err
	}

	service.notifier.Dispatch(user.Email, code, purpose)
	return nil
}

// Verify consumes a matching unused, unexpired code. A wrong code, an
// expired code, and a replayed code all fail the same way.
func (service *OTPService) Verify(userID uint, code string) error {
	candidates, err := service.otps.ListActiveForUser(userID, time.Now())
	if err != nil {
		return err
	}

	for index := range candidates {
		if bcrypt.CompareHashAndPassword([]byte(candidates[index].CodeHash), []byte(code)) != nil {
			continue
		}
		consumed, err := service.otps.Consume(candidates[index].ID)
		if err != nil {
			return err
		}
		if consumed {
			return nil
		}
	}
	return ErrInvalidOrExpiredCode
}
