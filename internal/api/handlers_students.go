package api

import (
	"io"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	return c.JSON(fiber.Map{
		"id":                user.ID,
		"name":              user.Name,
		"email":             user.Email,
		"roll_number":       user.RollNumber,
		"phone":             user.Phone,
		"hostel":            user.Hostel,
		"room_number":       user.RoomNumber,
		"total_rebate_days": user.TotalRebateDays,
	})
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	input := profileUpdateInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Hostel != nil {
		updates["hostel"] = *input.Hostel
	}
	if input.RoomNumber != nil {
		updates["room_number"] = *input.RoomNumber
	}
	if err := handler.repositories.Users.UpdateProfile(user.ID, updates); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	return c.JSON(fiber.Map{"message": "Profile updated successfully"})
}

func (handler *Handler) CreateRebateRequest(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	input := rebateRequestInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	startDate, err := time.Parse(dateLayout, input.StartDate)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "start_date must use the YYYY-MM-DD format")
	}
	endDate, err := time.Parse(dateLayout, input.EndDate)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "end_date must use the YYYY-MM-DD format")
	}

	request, err := handler.rebateSvc.CreateRequest(user.ID, startDate, endDate, input.Reason)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(request)
}

func (handler *Handler) UploadDocument(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	requestID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request id")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "unreadable file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "unreadable file")
	}

	path, err := handler.rebateSvc.AttachDocument(user.ID, uint(requestID), fileHeader.Filename, data)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":   "Uploaded successfully",
		"file_path": path,
	})
}

// GetRebateRequests lists the caller's own requests. Admins may pass
// ?user_id= to scope to one student, or omit it to list everything.
func (handler *Handler) GetRebateRequests(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	if user.IsStudent() {
		requests, err := handler.rebateSvc.ListForStudent(user.ID)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "internal error")
		}
		return c.JSON(requests)
	}

	if rawUserID := c.Query("user_id"); rawUserID != "" {
		targetID, err := strconv.ParseUint(rawUserID, 10, 32)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid user_id")
		}
		requests, err := handler.rebateSvc.ListForStudent(uint(targetID))
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "internal error")
		}
		return c.JSON(requests)
	}

	requests, err := handler.rebateSvc.ListAll()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	return c.JSON(requests)
}

func (handler *Handler) GetRebateSummary(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	summary, err := handler.rebateSvc.Summary(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	return c.JSON(summary)
}

func (handler *Handler) GetMessBills(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	bills, err := handler.billingSvc.ListForStudent(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	return c.JSON(bills)
}
