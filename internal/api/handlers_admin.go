package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sonali689/rebate-portal/internal/models"
	"github.com/sonali689/rebate-portal/internal/services"
)

// GetStudents returns every student with a rebate rollup aggregated from
// the request table. The cached total_rebate_days counter rides along on
// the student record so both numbers are visible to the caller.
func (handler *Handler) GetStudents(c *fiber.Ctx) error {
	overviews, err := handler.reportSvc.StudentOverviews()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}

	rows := make([]fiber.Map, 0, len(overviews))
	for _, overview := range overviews {
		student := overview.Student
		rollup := overview.Rollup
		rows = append(rows, fiber.Map{
			"id":          student.ID,
			"name":        orFallback(student.Name),
			"email":       student.Email,
			"roll_number": orFallback(rollNumberString(&student)),
			"hostel":      orFallback(student.Hostel),
			"room_number": orFallback(student.RoomNumber),
			"phone":       orFallback(student.Phone),
			"is_active":   student.IsActive,
			"created_at":  student.CreatedAt,
			"rebate_summary": fiber.Map{
				"total_rebate_days":    rollup.TotalDays,
				"approved_rebate_days": rollup.ApprovedDays,
				"counted_rebate_days":  student.TotalRebateDays,
				"total_requests":       rollup.TotalRequests,
				"pending_requests":     rollup.PendingRequests,
				"approved_requests":    rollup.ApprovedRequests,
				"rejected_requests":    rollup.RejectedRequests,
			},
		})
	}
	return c.JSON(rows)
}

func (handler *Handler) GetStudentList(c *fiber.Ctx) error {
	students, err := handler.reportSvc.StudentDirectory()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}

	rows := make([]fiber.Map, 0, len(students))
	for index := range students {
		student := students[index]
		rows = append(rows, fiber.Map{
			"id":          student.ID,
			"name":        student.Name,
			"roll_number": student.RollNumber,
			"email":       student.Email,
			"room_number": student.RoomNumber,
			"phone":       student.Phone,
		})
	}
	return c.JSON(rows)
}

func (handler *Handler) GetStudentRequests(c *fiber.Ctx) error {
	studentID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid student id")
	}

	student, requests, err := handler.reportSvc.StudentRequests(uint(studentID))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"student": fiber.Map{
			"id":          student.ID,
			"name":        student.Name,
			"roll_number": student.RollNumber,
			"email":       student.Email,
		},
		"requests": requests,
	})
}

// GetAllRequests lists every request, optionally filtered by status, in a
// frontend-friendly shape with student name and roll number inlined.
func (handler *Handler) GetAllRequests(c *fiber.Ctx) error {
	requests, err := handler.rebateSvc.ListFiltered(c.Query("status"))
	if err != nil {
		return respondServiceError(c, err)
	}

	students := map[uint]*models.User{}
	rows := make([]fiber.Map, 0, len(requests))
	for index := range requests {
		request := requests[index]
		student, found := students[request.StudentID]
		if !found {
			if loaded, err := handler.repositories.Users.FindByID(request.StudentID); err == nil {
				student = &loaded
			}
			students[request.StudentID] = student
		}

		name, rollNumber := "Unknown", "Unknown"
		if student != nil {
			name = student.Name
			rollNumber = rollNumberString(student)
		}

		var rejectionReason *string
		if request.Status == models.StatusRejected {
			remarks := request.AdminRemarks
			rejectionReason = &remarks
		}

		rows = append(rows, fiber.Map{
			"id":               request.ID,
			"name":             name,
			"roll_no":          rollNumber,
			"from_date":        request.StartDate.Format(dateLayout),
			"to_date":          request.EndDate.Format(dateLayout),
			"reason":           request.Reason,
			"status":           titleStatus(request.Status),
			"submitted_on":     request.CreatedAt.Format(dateLayout),
			"document_url":     request.DocumentPath,
			"rejection_reason": rejectionReason,
			"total_days":       request.TotalDays,
			"student_id":       request.StudentID,
			"processed_at":     request.ProcessedAt,
			"processed_by":     request.ProcessedBy,
		})
	}
	return c.JSON(rows)
}

// UpdateRequest is the generic transition surface: target status plus
// optional remarks.
func (handler *Handler) UpdateRequest(c *fiber.Ctx) error {
	admin, _ := currentUser(c)

	requestID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request id")
	}

	input := requestUpdateInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	request, err := handler.rebateSvc.Process(uint(requestID), admin.ID, input.Status, input.AdminRemarks)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(request)
}

func (handler *Handler) ApproveRequest(c *fiber.Ctx) error {
	admin, _ := currentUser(c)

	requestID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request id")
	}

	if _, err := handler.rebateSvc.Approve(uint(requestID), admin.ID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Request approved successfully"})
}

func (handler *Handler) RejectRequest(c *fiber.Ctx) error {
	admin, _ := currentUser(c)

	requestID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request id")
	}

	input := rejectInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if _, err := handler.rebateSvc.Reject(uint(requestID), admin.ID, input.Reason); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Request rejected successfully"})
}

func (handler *Handler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := handler.reportSvc.Dashboard()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	return c.JSON(stats)
}

func (handler *Handler) CreateMessBill(c *fiber.Ctx) error {
	input := billInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	bill, err := handler.billingSvc.CreateBill(services.BillInput{
		StudentID:    input.StudentID,
		Month:        input.Month,
		TotalAmount:  input.TotalAmount,
		RebateAmount: input.RebateAmount,
		FinalAmount:  input.FinalAmount,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(bill)
}
