package payload

type SignupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Status       bool   `json:"status"`
	Message      string `json:"message"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber,omitempty"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

type DeleteAccountRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ContactRequest struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

// StatusResponse is the envelope for operations without a result body.
type StatusResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message,omitempty"`
}
