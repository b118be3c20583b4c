package services

import (
	"errors"
	"strings"
	"time"

	"github.com/sonali689/rebate-portal/internal/models"
	"gorm.io/gorm"
)

type AuthUserRepository interface {
	FindByID(userID uint) (models.User, error)
	FindByEmail(email string) (models.User, error)
	FindByEmailAndRoll(email string, rollNumber string) (models.User, error)
	ExistsByEmailOrRoll(email string, rollNumber string) (bool, error)
	Create(user *models.User) error
	PromoteToAdmin(userID uint) error
	MarkVerified(userID uint) error
}

type CodeIssuer interface {
	Issue(user *models.User, purpose string) error
	Verify(userID uint, code string) error
}

type RegistrationInput struct {
	Name       string
	Email      string
	RollNumber string
	Hostel     string
	RoomNumber string
	Phone      string
}

// AuthService resolves identity and drives the passwordless login flow.
// The admin allowlist is injected configuration; membership is the only
// way a user gains the admin role, and promotion never reverses.
type AuthService struct {
	users       AuthUserRepository
	codes       CodeIssuer
	adminEmails map[string]struct{}
}

func NewAuthService(users AuthUserRepository, codes CodeIssuer, adminEmails map[string]struct{}) *AuthService {
	if adminEmails == nil {
		adminEmails = map[string]struct{}{}
	}
	return &AuthService{
		users:       users,
		codes:       codes,
		adminEmails: adminEmails,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (service *AuthService) isAdminEmail(email string) bool {
	_, allowed := service.adminEmails[email]
	return allowed
}

// RegisterStudent creates an unverified student account and sends a
// registration code. Email and roll number must both be unused.
func (service *AuthService) RegisterStudent(input RegistrationInput) (models.User, error) {
	email := NormalizeEmail(input.Email)
	rollNumber := strings.TrimSpace(input.RollNumber)
	if email == "" || rollNumber == "" {
		return models.User{}, ErrInvalidInput
	}

	exists, err := service.users.ExistsByEmailOrRoll(email, rollNumber)
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, ErrDuplicateIdentity
	}

	now := time.Now()
	user := models.User{
		RollNumber: &rollNumber,
		Email:      email,
		Name:       strings.TrimSpace(input.Name),
		Phone:      strings.TrimSpace(input.Phone),
		Hostel:     strings.TrimSpace(input.Hostel),
		RoomNumber: strings.TrimSpace(input.RoomNumber),
		Role:       models.RoleStudent,
		IsActive:   true,
		IsVerified: false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, err
	}

	if err := service.codes.Issue(&user, models.OTPPurposeRegistration); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Login resolves the account a login code should go to. Allowlisted emails
// take the admin path: the account is created verified if absent, or
// promoted in place if it exists as a student. Everyone else must present
// the (email, roll number) pair of a verified registration.
func (service *AuthService) Login(email string, rollNumber string) (models.User, error) {
	email = NormalizeEmail(email)
	rollNumber = strings.TrimSpace(rollNumber)

	var user models.User
	if service.isAdminEmail(email) {
		resolved, err := service.resolveAdmin(email)
		if err != nil {
			return models.User{}, err
		}
		user = resolved
	} else {
		if rollNumber == "" {
			return models.User{}, ErrMissingRollNumber
		}
		resolved, err := service.users.FindByEmailAndRoll(email, rollNumber)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFoundOrUnverified
		}
		if err != nil {
			return models.User{}, err
		}
		if !resolved.IsVerified {
			return models.User{}, ErrNotFoundOrUnverified
		}
		user = resolved
	}

	if err := service.codes.Issue(&user, models.OTPPurposeLogin); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (service *AuthService) resolveAdmin(email string) (models.User, error) {
	user, err := service.users.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		now := time.Now()
		admin := models.User{
			Email:      email,
			Name:       "Admin",
			Role:       models.RoleAdmin,
			IsActive:   true,
			IsVerified: true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := service.users.Create(&admin); err != nil {
			return models.User{}, err
		}
		return admin, nil
	}
	if err != nil {
		return models.User{}, err
	}

	if !user.IsAdmin() {
		if err := service.users.PromoteToAdmin(user.ID); err != nil {
			return models.User{}, err
		}
		user.Role = models.RoleAdmin
		user.IsVerified = true
	}
	return user, nil
}

// VerifyCode redeems a code for the user behind the email and marks the
// account verified. The caller issues the session token.
func (service *AuthService) VerifyCode(email string, code string) (models.User, error) {
	user, err := service.ResolveByEmail(email)
	if err != nil {
		return models.User{}, err
	}

	if err := service.codes.Verify(user.ID, code); err != nil {
		return models.User{}, err
	}

	if !user.IsVerified {
		if err := service.users.MarkVerified(user.ID); err != nil {
			return models.User{}, err
		}
		user.IsVerified = true
	}
	return user, nil
}

// ResolveByEmail returns the live user record for a normalized email. Used
// on every authenticated request so role changes apply immediately.
func (service *AuthService) ResolveByEmail(email string) (models.User, error) {
	user, err := service.users.FindByEmail(NormalizeEmail(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// CheckUser reports whether a verified registration exists for the exact
// (email, roll number) pair.
func (service *AuthService) CheckUser(email string, rollNumber string) (bool, bool, error) {
	user, err := service.users.FindByEmailAndRoll(NormalizeEmail(email), strings.TrimSpace(rollNumber))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return true, user.IsVerified, nil
}
