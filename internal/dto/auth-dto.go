package dto

type SignupRequest struct {
	Name     string   `json:"name" validate:"required,min=2,max=50"`
	Email    string   `json:"email" validate:"required,email"`
	Phone    string   `json:"phone" validate:"required,len=10"`
	Password string   `json:"password" validate:"required,min=6"`
	Location string   `json:"location" validate:"required"`
	Role     string   `json:"role,omitempty" validate:"omitempty,oneof=user worker"`
	Skills   []string `json:"skills,omitempty"`
}

type SignupResponse struct {
	Message string    `json:"message"`
	UserID  uint      `json:"userId"`
	Codes   *DevCodes `json:"codes,omitempty"`
}

// DevCodes echoes freshly issued verification codes. Populated only in
// builds with the dev tag, never in production binaries.
type DevCodes struct {
	EmailCode string `json:"emailCode"`
	PhoneCode string `json:"phoneCode"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

type VerifyCodeRequest struct {
	UserID uint   `json:"userId" validate:"required"`
	Code   string `json:"code" validate:"required,len=6"`
}

type ResendVerificationRequest struct {
	UserID uint   `json:"userId" validate:"required"`
	Type   string `json:"type" validate:"required,oneof=email phone"`
}

type VerificationStatusResponse struct {
	EmailVerified bool `json:"emailVerified"`
	PhoneVerified bool `json:"phoneVerified"`
}

type AuthClaims struct {
	UserID uint    `json:"user_id"`
	Role   string  `json:"role"`
	Email  string  `json:"email"`
	Iat    float64 `json:"iat"`
	Expiry float64 `json:"expiry"`
}
