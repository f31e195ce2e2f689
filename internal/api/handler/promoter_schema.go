package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateCredentialsRequest struct {
	Password    string `json:"password"    validate:"required"`
	NewPassword string `json:"newPassword"`
	NewEmail    string `json:"newEmail"    validate:"omitempty,email"`
}

type updateProfileRequest struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

// --- Response types ---
// Response-only types owned by the transport layer, separate from domain
// types so the JSON contract is not coupled to internal changes.

type loginResponse struct {
	PromoterID string `json:"promoterId"`
	Token      string `json:"token"`
}

// promoterResponse never carries the password hash; Role is omitted on the
// flows that strip it (credential rotation, profile update).
type promoterResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Avatar  string `json:"avatar,omitempty"`
	Role    string `json:"role,omitempty"`
}

type avatarResponse struct {
	Avatar string `json:"avatar"`
}
