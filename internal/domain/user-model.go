package domain

import "time"

type Role string

const (
	RoleUser   Role = "user"
	RoleWorker Role = "worker"
	RoleAdmin  Role = "admin"
)

func ValidRole(r Role) bool {
	return r == RoleUser || r == RoleWorker || r == RoleAdmin
}

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"type:varchar(50);not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string `gorm:"type:varchar(10);uniqueIndex;not null" json:"phone"`
	PasswordHash string `json:"-"`
	Role         Role   `gorm:"type:varchar(20);not null;default:user;index" json:"role"`

	EmailVerified bool   `gorm:"not null;default:false" json:"email_verified"`
	PhoneVerified bool   `gorm:"not null;default:false" json:"phone_verified"`
	EmailCode     string `json:"-"`
	PhoneCode     string `json:"-"`

	Location         string   `gorm:"not null" json:"location"`
	Skills           []string `gorm:"serializer:json" json:"skills"`
	ProfileCompleted bool     `gorm:"not null;default:false" json:"profile_completed"`

	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LastActiveAt time.Time `json:"last_active_at"`

	WorkerProfile *WorkerProfile `gorm:"foreignKey:UserID;references:ID" json:"worker_profile,omitempty"`
}

// FullyVerified reports whether both channels reached the verified state.
func (u *User) FullyVerified() bool {
	return u.EmailVerified && u.PhoneVerified
}
