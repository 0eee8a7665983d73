package dto

type WorkerSearchQuery struct {
	Profession string `query:"profession"`
	Location   string `query:"location"`
	Skills     string `query:"skills"` // comma separated
}

type CompleteProfileRequest struct {
	Profession       string   `json:"profession" validate:"required"`
	CustomProfession string   `json:"customProfession,omitempty"`
	Skills           []string `json:"skills" validate:"required,min=3"`
	ExperienceYears  int      `json:"experienceYears" validate:"min=0,max=50"`
	HourlyRate       int      `json:"hourlyRate" validate:"min=100,max=5000"`
	Location         string   `json:"location,omitempty"`
	Available        *bool    `json:"available,omitempty"`
}

type WorkerListResponse struct {
	Success bool            `json:"success"`
	Count   int             `json:"count"`
	Workers []WorkerSummary `json:"workers"`
}

type WorkerSummary struct {
	ID                 uint     `json:"id"`
	Profession         string   `json:"profession"`
	CustomProfession   string   `json:"custom_profession,omitempty"`
	Skills             []string `json:"skills"`
	ExperienceYears    int      `json:"experience_years"`
	HourlyRate         int      `json:"hourly_rate"`
	PhotoURL           string   `json:"photo_url,omitempty"`
	Location           string   `json:"location"`
	Available          bool     `json:"available"`
	Rating             float64  `json:"rating"`
	CompletedJobs      int      `json:"completed_jobs"`
	VerificationStatus string   `json:"verification_status"`
}
