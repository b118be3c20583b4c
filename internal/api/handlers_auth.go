package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sonali689/rebate-portal/internal/services"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registerInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	_, err := handler.authService.RegisterStudent(services.RegistrationInput{
		Name:       input.Name,
		Email:      input.Email,
		RollNumber: input.RollNumber,
		Hostel:     input.Hostel,
		RoomNumber: input.RoomNumber,
		Phone:      input.Phone,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":            "Registration successful! OTP sent to your email for verification.",
		"expires_in_minutes": int(handler.otpService.TTL().Minutes()),
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if _, err := handler.authService.Login(input.Email, input.RollNumber); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":            "OTP sent to your email address",
		"expires_in_minutes": int(handler.otpService.TTL().Minutes()),
	})
}

func (handler *Handler) VerifyOTP(c *fiber.Ctx) error {
	input := verifyOTPInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.authService.VerifyCode(input.Email, input.OTPCode)
	if err != nil {
		return respondServiceError(c, err)
	}

	accessToken, err := handler.buildToken(user.Email)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	return c.JSON(fiber.Map{
		"access_token": accessToken,
		"token_type":   "bearer",
		"user":         user,
		"message":      "Login successful!",
	})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(user)
}

// Logout is stateless: the client discards its token.
func (handler *Handler) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Successfully logged out"})
}

func (handler *Handler) CheckUser(c *fiber.Ctx) error {
	input := checkUserInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	exists, verified, err := handler.authService.CheckUser(input.Email, input.RollNumber)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"exists":      exists,
		"is_verified": verified,
	})
}
