package payload

type VerifyResetOtpRequest struct {
	Otp string `json:"otp" validate:"required"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"        validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}
