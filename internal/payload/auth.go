package payload

type RegisterRequest struct {
	FullName      string `json:"full_name"        validate:"required,min=2,max=100"`
	Email         string `json:"email"            validate:"required,email"`
	Password      string `json:"password"         validate:"required,min=8"`
	TermsAccepted bool   `json:"is_term_accepted"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	// DeviceID is optional; when absent a label is derived from the client
	// IP and user agent.
	DeviceID string `json:"device_id,omitempty"`
}

// LoginResponse carries only the access token. The refresh token travels
// exclusively in an HTTP-only cookie and never appears in a response body.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
