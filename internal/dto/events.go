package dto

// Keys used on the verification topic.
const (
	EventVerifyEmail = "user.verify_email"
	EventVerifyPhone = "user.verify_phone"
)

type VerifyEmailEvent struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Code   string `json:"code"`
}

type VerifyPhoneEvent struct {
	UserID uint   `json:"user_id"`
	Phone  string `json:"phone"`
	Code   string `json:"code"`
}
