package domain

import "time"

const (
	WorkerUnverified = "unverified"
	WorkerPending    = "pending"
	WorkerVerified   = "verified"
)

const ProfessionOther = "other"

var professions = map[string]bool{
	"driver":      true,
	"painter":     true,
	"plumber":     true,
	"electrician": true,
	"carpenter":   true,
	"cleaner":     true,
	"other":       true,
}

func ValidProfession(p string) bool {
	return professions[p]
}

// Defaults used when a profile is provisioned on the role transition,
// before the worker completes it themselves.
const (
	DefaultHourlyRate      = 300
	DefaultExperienceYears = 1

	MinHourlyRate      = 100
	MaxHourlyRate      = 5000
	MaxExperienceYears = 50
)

type WorkerProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	Profession       string   `gorm:"type:varchar(40);not null;default:other;index" json:"profession"`
	CustomProfession string   `gorm:"type:varchar(80)" json:"custom_profession,omitempty"`
	Skills           []string `gorm:"serializer:json" json:"skills"`
	ExperienceYears  int      `gorm:"not null" json:"experience_years"`
	HourlyRate       int      `gorm:"not null" json:"hourly_rate"`

	PhotoURL      string `gorm:"type:text" json:"photo_url,omitempty"`
	PhotoPublicID string `gorm:"type:varchar(120)" json:"-"`

	Location      string  `gorm:"not null" json:"location"`
	Available     bool    `gorm:"not null;default:true" json:"available"`
	Rating        float64 `gorm:"not null;default:0" json:"rating"`
	CompletedJobs int     `gorm:"not null;default:0" json:"completed_jobs"`

	VerificationStatus string `gorm:"type:varchar(20);not null;default:unverified" json:"verification_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}
