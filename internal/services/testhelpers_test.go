package services

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sonali689/rebate-portal/internal/db"
	"github.com/sonali689/rebate-portal/internal/models"
)

func newTestRepositories(t *testing.T) *db.Repositories {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "rebate-service-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db.NewRepositories(database)
}

func createTestStudent(t *testing.T, repositories *db.Repositories, email string, rollNumber string) models.User {
	t.Helper()

	now := time.Now()
	user := models.User{
		RollNumber: &rollNumber,
		Email:      email,
		Name:       "Test Student",
		Role:       models.RoleStudent,
		IsActive:   true,
		IsVerified: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := repositories.Users.Create(&user); err != nil {
		t.Fatalf("create student: %v", err)
	}
	return user
}

func createTestAdmin(t *testing.T, repositories *db.Repositories, email string) models.User {
	t.Helper()

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
	if err := repositories.Users.Create(&admin); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	return admin
}

// captureNotifier records dispatched codes instead of sending mail.
type captureNotifier struct {
	mu    sync.Mutex
	sends []capturedSend
}

type capturedSend struct {
	To      string
	Code    string
	Purpose string
}

func (notifier *captureNotifier) Dispatch(to string, code string, purpose string) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.sends = append(notifier.sends, capturedSend{To: to, Code: code, Purpose: purpose})
}

func (notifier *captureNotifier) last(t *testing.T) capturedSend {
	t.Helper()
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.sends) == 0 {
		t.Fatal("no code was dispatched")
	}
	return notifier.sends[len(notifier.sends)-1]
}

func dateOf(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return parsed
}
