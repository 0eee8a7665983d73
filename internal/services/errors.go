package services

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrPhoneTaken         = errors.New("phone already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("please verify your email and phone first")
	ErrAlreadyVerified    = errors.New("already verified")
	ErrInvalidCode        = errors.New("invalid verification code")
	ErrResendThrottled    = errors.New("please wait before requesting another code")
	ErrDeliveryFailed     = errors.New("failed to deliver verification code")

	ErrWorkerNotFound     = errors.New("worker not found")
	ErrInvalidProfession  = errors.New("invalid profession")
	ErrInsufficientSkills = errors.New("please add at least 3 skills")
	ErrPhotoUpload        = errors.New("photo upload failed")
)

// ValidationError carries a field-level message for 400 responses.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
