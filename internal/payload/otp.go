package payload

type VerifyOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
	Otp   string `json:"otp"   validate:"required"`
}

type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}
