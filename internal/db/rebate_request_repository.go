package db

import (
	"time"

	"github.com/sonali689/rebate-portal/internal/models"
	"gorm.io/gorm"
)

type RebateRequestRepository struct {
	database *gorm.DB
}

func NewRebateRequestRepository(database *gorm.DB) *RebateRequestRepository {
	return &RebateRequestRepository{database: database}
}

func (repo *RebateRequestRepository) Create(request *models.RebateRequest) error {
	return repo.database.Create(request).Error
}

func (repo *RebateRequestRepository) FindByID(requestID uint) (models.RebateRequest, error) {
	var request models.RebateRequest
	if err := repo.database.First(&request, requestID).Error; err != nil {
		return models.RebateRequest{}, err
	}
	return request, nil
}

func (repo *RebateRequestRepository) FindForStudent(requestID uint, studentID uint) (models.RebateRequest, error) {
	var request models.RebateRequest
	if err := repo.database.
		Where("id = ? AND student_id = ?", requestID, studentID).
		First(&request).Error; err != nil {
		return models.RebateRequest{}, err
	}
	return request, nil
}

func (repo *RebateRequestRepository) UpdateDocumentPath(requestID uint, documentPath string) error {
	return repo.database.Model(&models.RebateRequest{}).
		Where("id = ?", requestID).
		Update("document_path", documentPath).Error
}

func (repo *RebateRequestRepository) ListForStudent(studentID uint) ([]models.RebateRequest, error) {
	requests := make([]models.RebateRequest, 0)
	if err := repo.database.
		Where("student_id = ?", studentID).
		Order("created_at DESC, id DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (repo *RebateRequestRepository) ListAll() ([]models.RebateRequest, error) {
	requests := make([]models.RebateRequest, 0)
	if err := repo.database.
		Order("created_at DESC, id DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (repo *RebateRequestRepository) ListByStatus(status string) ([]models.RebateRequest, error) {
	requests := make([]models.RebateRequest, 0)
	if err := repo.database.
		Where("status = ?", status).
		Order("created_at DESC, id DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// Process moves a pending request into a terminal state and, on approval,
// bumps the student's cumulative rebate-day counter. The status update and
// the counter increment share one transaction so a concurrent second
// approval cannot double-count: the terminal guard makes the whole
// transition first-writer-wins. Returns the updated request and false when
// the request was already terminal.
func (repo *RebateRequestRepository) Process(requestID uint, adminID uint, status string, remarks string, now time.Time) (models.RebateRequest, bool, error) {
	var request models.RebateRequest
	transitioned := false

	err := repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, requestID).Error; err != nil {
			return err
		}
		if request.IsTerminal() {
			return nil
		}

		result := tx.Model(&models.RebateRequest{}).
			Where("id = ? AND status = ?", requestID, models.StatusPending).
			Updates(map[string]any{
				"status":        status,
				"admin_remarks": remarks,
				"processed_by":  adminID,
				"processed_at":  now,
				"updated_at":    now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != 1 {
			return nil
		}

		if status == models.StatusApproved {
			if err := tx.Model(&models.User{}).
				Where("id = ?", request.StudentID).
				Update("total_rebate_days", gorm.Expr("total_rebate_days + ?", request.TotalDays)).Error; err != nil {
				return err
			}
		}

		request.Status = status
		request.AdminRemarks = remarks
		request.ProcessedBy = &adminID
		request.ProcessedAt = &now
		request.UpdatedAt = now
		transitioned = true
		return nil
	})
	if err != nil {
		return models.RebateRequest{}, false, err
	}
	return request, transitioned, nil
}

func (repo *RebateRequestRepository) CountForStudent(studentID uint) (int64, error) {
	var count int64
	err := repo.database.Model(&models.RebateRequest{}).
		Where("student_id = ?", studentID).
		Count(&count).Error
	return count, err
}

func (repo *RebateRequestRepository) CountForStudentByStatus(studentID uint, status string) (int64, error) {
	var count int64
	err := repo.database.Model(&models.RebateRequest{}).
		Where("student_id = ? AND status = ?", studentID, status).
		Count(&count).Error
	return count, err
}

func (repo *RebateRequestRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := repo.database.Model(&models.RebateRequest{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (repo *RebateRequestRepository) SumApprovedDays() (int64, error) {
	var total int64
	err := repo.database.Model(&models.RebateRequest{}).
		Where("status = ?", models.StatusApproved).
		Select("COALESCE(SUM(total_days), 0)").
		Scan(&total).Error
	return total, err
}

// StudentRollup is one row of the per-student aggregation. The sums come
// from the request table itself, not from the cached counter on the user
// row, so the two can be compared by the caller.
type StudentRollup struct {
	StudentID        uint  `gorm:"column:student_id"`
	TotalRequests    int64 `gorm:"column:total_requests"`
	PendingRequests  int64 `gorm:"column:pending_requests"`
	ApprovedRequests int64 `gorm:"column:approved_requests"`
	RejectedRequests int64 `gorm:"column:rejected_requests"`
	TotalDays        int64 `gorm:"column:total_days"`
	ApprovedDays     int64 `gorm:"column:approved_days"`
}

func (repo *RebateRequestRepository) RollupByStudent() (map[uint]StudentRollup, error) {
	rows := make([]StudentRollup, 0)
	if err := repo.database.Raw(`
SELECT
  student_id,
  COUNT(*) AS total_requests,
  SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END) AS pending_requests,
  SUM(CASE WHEN status = 'approved' THEN 1 ELSE 0 END) AS approved_requests,
  SUM(CASE WHEN status = 'rejected' THEN 1 ELSE 0 END) AS rejected_requests,
  COALESCE(SUM(total_days), 0) AS total_days,
  COALESCE(SUM(CASE WHEN status = 'approved' THEN total_days ELSE 0 END), 0) AS approved_days
FROM rebate_requests
GROUP BY student_id`).Scan(&rows).Error; err != nil {
		return nil, err
	}

	rollups := make(map[uint]StudentRollup, len(rows))
	for _, row := range rows {
		rollups[row.StudentID] = row
	}
	return rollups, nil
}
