package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/verify-otp", handler.VerifyOTP)
	auth.Post("/check-user", handler.CheckUser)
	auth.Get("/me", handler.AuthRequired, handler.Me)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	students := api.Group("/students", handler.AuthRequired)
	students.Get("/profile", handler.StudentOnly, handler.GetProfile)
	students.Put("/profile", handler.StudentOnly, handler.UpdateProfile)
	students.Post("/rebate-requests", handler.StudentOnly, handler.CreateRebateRequest)
	students.Post("/rebate-requests/:id/document", handler.StudentOnly, handler.UploadDocument)
	students.Get("/rebate-requests", handler.GetRebateRequests)
	students.Get("/rebate-summary", handler.GetRebateSummary)
	students.Get("/mess-bills", handler.StudentOnly, handler.GetMessBills)

	admin := api.Group("/admin", handler.AuthRequired, handler.AdminOnly)
	admin.Get("/students", handler.GetStudents)
	admin.Get("/students/list", handler.GetStudentList)
	admin.Get("/students/:id/rebate-requests", handler.GetStudentRequests)
	admin.Get("/rebate-requests", handler.GetAllRequests)
	admin.Put("/rebate-requests/:id", handler.UpdateRequest)
	admin.Post("/rebate-requests/:id/approve", handler.ApproveRequest)
	admin.Post("/rebate-requests/:id/reject", handler.RejectRequest)
	admin.Get("/dashboard-stats", handler.GetDashboardStats)
	admin.Post("/mess-bills", handler.CreateMessBill)
}
