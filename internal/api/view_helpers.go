package api

import (
	"strings"

	"github.com/sonali689/rebate-portal/internal/models"
)

func rollNumberString(user *models.User) string {
	if user.RollNumber == nil {
		return ""
	}
	return *user.RollNumber
}

func orFallback(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Not provided"
	}
	return value
}

// titleStatus renders a status value for display, e.g. "pending" → "Pending".
func titleStatus(status string) string {
	if status == "" {
		return ""
	}
	return strings.ToUpper(status[:1]) + status[1:]
}
