package dto

// UserCreatedEvent is published to the broker after a successful
// create, keyed "user.created".
type UserCreatedEvent struct {
	UserID   string `json:"user_id"`
	UserCode string `json:"user_code"`
	Username string `json:"username"`
}
