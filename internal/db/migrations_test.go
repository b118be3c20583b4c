package db

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sonali689/rebate-portal/internal/models"
	"gorm.io/gorm"
)

func openTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(filepath.Join(t.TempDir(), "db-test.db"))
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
	return database
}

func seedStudent(t *testing.T, database *gorm.DB, email string, rollNumber string) models.User {
	t.Helper()

	now := time.Now()
	user := models.User{
		RollNumber: &rollNumber,
		Email:      email,
		Role:       models.RoleStudent,
		IsActive:   true,
		IsVerified: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}
	return user
}

func TestMigrationsCreateSchema(t *testing.T) {
	t.Parallel()

	database := openTestDatabase(t)

	for _, table := range []string{"users", "otps", "rebate_requests", "mess_bills", "schema_migrations"} {
		var count int64
		err := database.Raw(
			`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&count).Error
		if err != nil {
			t.Fatalf("inspect table %s: %v", table, err)
		}
		if count != 1 {
			t.Fatalf("table %s missing after migrations", table)
		}
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	t.Parallel()

	databasePath := filepath.Join(t.TempDir(), "reopen-test.db")

	first, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	seedStudent(t, first, "reopen@hostel.test", "210001")
	sqlDB, err := first.DB()
	if err != nil {
		t.Fatalf("first sql db: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close first: %v", err)
	}

	second, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() {
		if db, err := second.DB(); err == nil {
			_ = db.Close()
		}
	})

	var applied int64
	if err := second.Raw(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied).Error; err != nil {
		t.Fatalf("count applied migrations: %v", err)
	}
	if applied != 1 {
		t.Fatalf("expected 1 applied migration, got %d", applied)
	}

	var users int64
	if err := second.Model(&models.User{}).Count(&users).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if users != 1 {
		t.Fatalf("seeded data lost across reopen, got %d users", users)
	}
}

func TestUserUniquenessConstraints(t *testing.T) {
	t.Parallel()

	database := openTestDatabase(t)
	seedStudent(t, database, "unique@hostel.test", "210002")

	now := time.Now()
	otherRoll := "210003"
	duplicateEmail := models.User{
		RollNumber: &otherRoll,
		Email:      "unique@hostel.test",
		Role:       models.RoleStudent,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := database.Create(&duplicateEmail).Error; err == nil {
		t.Fatal("expected duplicate email to be rejected")
	}

	sameRoll := "210002"
	duplicateRoll := models.User{
		RollNumber: &sameRoll,
		Email:      "unique-other@hostel.test",
		Role:       models.RoleStudent,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := database.Create(&duplicateRoll).Error; err == nil {
		t.Fatal("expected duplicate roll number to be rejected")
	}

	// Admins have no roll number; several NULLs must coexist.
	for _, email := range []string{"admin-a@hostel.test", "admin-b@hostel.test"} {
		admin := models.User{
			Email:     email,
			Role:      models.RoleAdmin,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := database.Create(&admin).Error; err != nil {
			t.Fatalf("create admin %s: %v", email, err)
		}
	}
}

func TestMessBillDuplicateMonth(t *testing.T) {
	t.Parallel()

	database := openTestDatabase(t)
	bills := NewMessBillRepository(database)
	student := seedStudent(t, database, "bill@hostel.test", "210004")

	now := time.Now()
	bill := models.MessBill{
		StudentID:   student.ID,
		Month:       "2024-03",
		TotalAmount: 3000,
		FinalAmount: 3000,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := bills.Create(&bill); err != nil {
		t.Fatalf("first bill: %v", err)
	}

	duplicate := models.MessBill{
		StudentID:   student.ID,
		Month:       "2024-03",
		TotalAmount: 3200,
		FinalAmount: 3200,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := bills.Create(&duplicate); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey, got %v", err)
	}
}

func TestProcessGuardsTerminalState(t *testing.T) {
	t.Parallel()

	database := openTestDatabase(t)
	requests := NewRebateRequestRepository(database)
	student := seedStudent(t, database, "process@hostel.test", "210005")
	admin := models.User{Email: "admin@hostel.test", Role: models.RoleAdmin, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if err := database.Create(&admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	now := time.Now()
	request := models.RebateRequest{
		StudentID: student.ID,
		StartDate: now,
		EndDate:   now.AddDate(0, 0, 4),
		TotalDays: 5,
		Reason:    "home",
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := requests.Create(&request); err != nil {
		t.Fatalf("create request: %v", err)
	}

	processed, transitioned, err := requests.Process(request.ID, admin.ID, models.StatusApproved, "", now)
	if err != nil {
		t.Fatalf("first process: %v", err)
	}
	if !transitioned || processed.Status != models.StatusApproved {
		t.Fatalf("expected transition to approved, got transitioned=%v status=%s", transitioned, processed.Status)
	}

	_, transitioned, err = requests.Process(request.ID, admin.ID, models.StatusRejected, "late", now)
	if err != nil {
		t.Fatalf("second process: %v", err)
	}
	if transitioned {
		t.Fatal("terminal request must not transition again")
	}

	var counter int
	if err := database.Model(&models.User{}).
		Select("total_rebate_days").
		Where("id = ?", student.ID).
		Scan(&counter).Error; err != nil {
		t.Fatalf("read counter: %v", err)
	}
	if counter != 5 {
		t.Fatalf("expected counter 5, got %d", counter)
	}

	_, _, err = requests.Process(9999, admin.ID, models.StatusApproved, "", now)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}
