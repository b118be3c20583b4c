package db

import "gorm.io/gorm"

type Repositories struct {
	Users    *UserRepository
	OTPs     *OTPRepository
	Requests *RebateRequestRepository
	Bills    *MessBillRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(database),
		OTPs:     NewOTPRepository(database),
		Requests: NewRebateRequestRepository(database),
		Bills:    NewMessBillRepository(database),
	}
}
