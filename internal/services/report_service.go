package services

import (
	"errors"

	"github.com/sonali689/rebate-portal/internal/db"
	"github.com/sonali689/rebate-portal/internal/models"
	"gorm.io/gorm"
)

type ReportUserRepository interface {
	ListStudents() ([]models.User, error)
	CountStudents() (int64, error)
	FindStudentByID(studentID uint) (models.User, error)
}

type ReportRequestRepository interface {
	RollupByStudent() (map[uint]db.StudentRollup, error)
	ListForStudent(studentID uint) ([]models.RebateRequest, error)
	CountByStatus(status string) (int64, error)
	SumApprovedDays() (int64, error)
}

// StudentOverview pairs a student with aggregation over their request set.
// ApprovedDays is recomputed from the requests rather than read from the
// cached counter on the user row; both are returned so a caller can spot
// divergence.
type StudentOverview struct {
	Student models.User
	Rollup  db.StudentRollup
}

type DashboardStats struct {
	TotalStudents           int64 `json:"total_students"`
	PendingRequests         int64 `json:"pending_requests"`
	ApprovedRequests        int64 `json:"approved_requests"`
	RejectedRequests        int64 `json:"rejected_requests"`
	TotalRequests           int64 `json:"total_requests"`
	TotalApprovedRebateDays int64 `json:"total_approved_rebate_days"`
}

// ReportService builds the read-only admin views. It owns no state of its
// own; everything is aggregation over users and requests.
type ReportService struct {
	users    ReportUserRepository
	requests ReportRequestRepository
}

func NewReportService(users ReportUserRepository, requests ReportRequestRepository) *ReportService {
	return &ReportService{
		users:    users,
		requests: requests,
	}
}

func (service *ReportService) StudentOverviews() ([]StudentOverview, error) {
	students, err := service.users.ListStudents()
	if err != nil {
		return nil, err
	}
	rollups, err := service.requests.RollupByStudent()
	if err != nil {
		return nil, err
	}

	overviews := make([]StudentOverview, 0, len(students))
	for _, student := range students {
		rollup := rollups[student.ID]
		rollup.StudentID = student.ID
		overviews = append(overviews, StudentOverview{Student: student, Rollup: rollup})
	}
	return overviews, nil
}

func (service *ReportService) StudentDirectory() ([]models.User, error) {
	return service.users.ListStudents()
}

// StudentRequests returns one student's requests together with the student
// record for the page header.
func (service *ReportService) StudentRequests(studentID uint) (models.User, []models.RebateRequest, error) {
	student, err := service.users.FindStudentByID(studentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, nil, ErrStudentNotFound
	}
	if err != nil {
		return models.User{}, nil, err
	}

	requests, err := service.requests.ListForStudent(studentID)
	if err != nil {
		return models.User{}, nil, err
	}
	return student, requests, nil
}

func (service *ReportService) Dashboard() (DashboardStats, error) {
	totalStudents, err := service.users.CountStudents()
	if err != nil {
		return DashboardStats{}, err
	}
	pending, err := service.requests.CountByStatus(models.StatusPending)
	if err != nil {
		return DashboardStats{}, err
	}
	approved, err := service.requests.CountByStatus(models.StatusApproved)
	if err != nil {
		return DashboardStats{}, err
	}
	rejected, err := service.requests.CountByStatus(models.StatusRejected)
	if err != nil {
		return DashboardStats{}, err
	}
	approvedDays, err := service.requests.SumApprovedDays()
	if err != nil {
		return DashboardStats{}, err
	}

	return DashboardStats{
		TotalStudents:           totalStudents,
		PendingRequests:         pending,
		ApprovedRequests:        approved,
		RejectedRequests:        rejected,
		TotalRequests:           pending + approved + rejected,
		TotalApprovedRebateDays: approvedDays,
	}, nil
}
