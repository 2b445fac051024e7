package dto

// ===== Common responses =====

type APIError struct {
	Error string `json:"error" example:"user not found"`
}
