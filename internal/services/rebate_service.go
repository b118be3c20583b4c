package services

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/sonali689/rebate-portal/internal/models"
	"gorm.io/gorm"
)

type RebateRequestRepository interface {
	Create(request *models.RebateRequest) error
	FindForStudent(requestID uint, studentID uint) (models.RebateRequest, error)
	UpdateDocumentPath(requestID uint, documentPath string) error
	ListForStudent(studentID uint) ([]models.RebateRequest, error)
	ListAll() ([]models.RebateRequest, error)
	ListByStatus(status string) ([]models.RebateRequest, error)
	Process(requestID uint, adminID uint, status string, remarks string, now time.Time) (models.RebateRequest, bool, error)
	CountForStudent(studentID uint) (int64, error)
	CountForStudentByStatus(studentID uint, status string) (int64, error)
}

type DocumentStore interface {
	Store(data []byte, extension string) (string, error)
}

var allowedDocumentExtensions = map[string]struct{}{
	".pdf":  {},
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// RebateSummary mirrors the student dashboard card: the rejected count is
// deliberately absent from this view.
type RebateSummary struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
}

type RebateService struct {
	requests  RebateRequestRepository
	documents DocumentStore
}

func NewRebateService(requests RebateRequestRepository, documents DocumentStore) *RebateService {
	return &RebateService{
		requests:  requests,
		documents: documents,
	}
}

// InclusiveDays counts calendar days with both endpoints included.
func InclusiveDays(startDate time.Time, endDate time.Time) int {
	start := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start)/(24*time.Hour)) + 1
}

func (service *RebateService) CreateRequest(studentID uint, startDate time.Time, endDate time.Time, reason string) (models.RebateRequest, error) {
	if endDate.Before(startDate) {
		return models.RebateRequest{}, ErrInvalidDateRange
	}
	totalDays := InclusiveDays(startDate, endDate)
	if totalDays > models.MaxRebateDays {
		return models.RebateRequest{}, ErrExceedsMaxPeriod
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return models.RebateRequest{}, ErrInvalidInput
	}

	now := time.Now()
	request := models.RebateRequest{
		StudentID: studentID,
		StartDate: startDate,
		EndDate:   endDate,
		TotalDays: totalDays,
		Reason:    reason,
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := service.requests.Create(&request); err != nil {
		return models.RebateRequest{}, err
	}
	return request, nil
}

// AttachDocument stores a supporting file for the caller's own request and
// records the returned path. Re-uploading replaces the recorded path; the
// previous blob is left behind.
func (service *RebateService) AttachDocument(studentID uint, requestID uint, fileName string, data []byte) (string, error) {
	request, err := service.requests.FindForStudent(requestID, studentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrRequestNotFound
	}
	if err != nil {
		return "", err
	}

	extension := strings.ToLower(filepath.Ext(fileName))
	if _, allowed := allowedDocumentExtensions[extension]; !allowed {
		return "", ErrUnsupportedFileType
	}

	path, err := service.documents.Store(data, extension)
	if err != nil {
		return "", err
	}
	if err := service.requests.UpdateDocumentPath(request.ID, path); err != nil {
		return "", err
	}
	return path, nil
}

// Process applies an admin decision. Only the two terminal states are valid
// targets, and a request that already reached one stays there.
func (service *RebateService) Process(requestID uint, adminID uint, status string, remarks string) (models.RebateRequest, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != models.StatusApproved && status != models.StatusRejected {
		return models.RebateRequest{}, ErrInvalidStatus
	}

	remarks = strings.TrimSpace(remarks)
	if status == models.StatusRejected && remarks == "" {
		remarks = models.DefaultRejectionRemarks
	}

	request, transitioned, err := service.requests.Process(requestID, adminID, status, remarks, time.Now())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RebateRequest{}, ErrRequestNotFound
	}
	if err != nil {
		return models.RebateRequest{}, err
	}
	if !transitioned {
		return models.RebateRequest{}, ErrAlreadyProcessed
	}
	return request, nil
}

func (service *RebateService) Approve(requestID uint, adminID uint) (models.RebateRequest, error) {
	return service.Process(requestID, adminID, models.StatusApproved, "")
}

func (service *RebateService) Reject(requestID uint, adminID uint, reason string) (models.RebateRequest, error) {
	return service.Process(requestID, adminID, models.StatusRejected, reason)
}

func (service *RebateService) ListForStudent(studentID uint) ([]models.RebateRequest, error) {
	return service.requests.ListForStudent(studentID)
}

func (service *RebateService) ListAll() ([]models.RebateRequest, error) {
	return service.requests.ListAll()
}

// ListFiltered applies an optional case-insensitive status filter.
func (service *RebateService) ListFiltered(statusFilter string) ([]models.RebateRequest, error) {
	statusFilter = strings.ToLower(strings.TrimSpace(statusFilter))
	if statusFilter == "" {
		return service.requests.ListAll()
	}
	if !models.ValidStatus(statusFilter) {
		return nil, ErrInvalidStatusFilter
	}
	return service.requests.ListByStatus(statusFilter)
}

func (service *RebateService) Summary(studentID uint) (RebateSummary, error) {
	total, err := service.requests.CountForStudent(studentID)
	if err != nil {
		return RebateSummary{}, err
	}
	pending, err := service.requests.CountForStudentByStatus(studentID, models.StatusPending)
	if err != nil {
		return RebateSummary{}, err
	}
	approved, err := service.requests.CountForStudentByStatus(studentID, models.StatusApproved)
	if err != nil {
		return RebateSummary{}, err
	}
	return RebateSummary{Total: total, Pending: pending, Approved: approved}, nil
}
