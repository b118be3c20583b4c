package api

type registerInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	RollNumber string `json:"roll_number"`
	Hostel     string `json:"hostel"`
	RoomNumber string `json:"room_number"`
	Phone      string `json:"phone"`
}

type loginInput struct {
	Email      string `json:"email"`
	RollNumber string `json:"roll_number"`
}

type verifyOTPInput struct {
	Email   string `json:"email"`
	OTPCode string `json:"otp_code"`
}

type checkUserInput struct {
	Email      string `json:"email"`
	RollNumber string `json:"roll_number"`
}

type profileUpdateInput struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	Hostel     *string `json:"hostel"`
	RoomNumber *string `json:"room_number"`
}

type rebateRequestInput struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

type requestUpdateInput struct {
	Status       string `json:"status"`
	AdminRemarks string `json:"admin_remarks"`
}

type rejectInput struct {
	Reason string `json:"reason"`
}

type billInput struct {
	StudentID    uint    `json:"student_id"`
	Month        string  `json:"month"`
	TotalAmount  float64 `json:"total_amount"`
	RebateAmount float64 `json:"rebate_amount"`
	FinalAmount  float64 `json:"final_amount"`
}
