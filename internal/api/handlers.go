package api

import (
	"time"

	"github.com/sonali689/rebate-portal/internal/config"
	"github.com/sonali689/rebate-portal/internal/db"
	"github.com/sonali689/rebate-portal/internal/services"
	"github.com/sonali689/rebate-portal/internal/storage"
	"gorm.io/gorm"
)

type Handler struct {
	secretKey []byte
	tokenTTL  time.Duration

	repositories *db.Repositories
	authService  *services.AuthService
	otpService   *services.OTPService
	rebateSvc    *services.RebateService
	billingSvc   *services.BillingService
	reportSvc    *services.ReportService
}

// NewHandler wires repositories and services over the open database. The
// notifier is injected so tests can capture issued codes.
func NewHandler(database *gorm.DB, cfg config.Config, notifier services.Notifier) *Handler {
	repositories := db.NewRepositories(database)
	otpService := services.NewOTPService(repositories.OTPs, notifier, cfg.OTPTTL)
	documents := storage.NewDocumentStore(cfg.UploadDir)

	return &Handler{
		secretKey:    []byte(cfg.SecretKey),
		tokenTTL:     cfg.AccessTokenTTL,
		repositories: repositories,
		authService:  services.NewAuthService(repositories.Users, otpService, cfg.AdminEmailSet()),
		otpService:   otpService,
		rebateSvc:    services.NewRebateService(repositories.Requests, documents),
		billingSvc:   services.NewBillingService(repositories.Users, repositories.Bills),
		reportSvc:    services.NewReportService(repositories.Users, repositories.Requests),
	}
}
