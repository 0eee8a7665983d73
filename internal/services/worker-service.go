package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/skilledwork/worker_service/internal/domain"
	"github.com/skilledwork/worker_service/internal/dto"
	"github.com/skilledwork/worker_service/internal/helper"
	"github.com/skilledwork/worker_service/internal/interfaces"
	"github.com/skilledwork/worker_service/internal/repository"
	"gorm.io/gorm"
)

const photoFolder = "skilledwork/workers"

type WorkerService interface {
	// EnsureWorkerProfile provisions the 1:1 profile for an account whose
	// role became worker. Idempotent; repeated or concurrent calls never
	// create a second profile.
	EnsureWorkerProfile(user *domain.User) (*domain.WorkerProfile, error)

	CompleteProfile(ctx context.Context, userID uint, input dto.CompleteProfileRequest, photo []byte) (*domain.WorkerProfile, error)
	Search(q dto.WorkerSearchQuery) ([]domain.WorkerProfile, error)
	GetWorker(id uint) (*domain.WorkerProfile, error)
}

type workerService struct {
	workers  repository.WorkerRepository
	users    repository.UserRepository
	uploader interfaces.Uploader
}

func NewWorkerService(
	workers repository.WorkerRepository,
	users repository.UserRepository,
	uploader interfaces.Uploader,
) WorkerService {
	return &workerService{
		workers:  workers,
		users:    users,
		uploader: uploader,
	}
}

func (w *workerService) EnsureWorkerProfile(user *domain.User) (*domain.WorkerProfile, error) {
	if user == nil || user.ID == 0 {
		return nil, ErrUserNotFound
	}

	existing, err := w.workers.FindByUserID(user.ID)
	if err == nil && existing != nil {
		if err := w.syncWorkerRole(user); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	skills := user.Skills
	if len(skills) == 0 {
		skills = []string{"general"}
	}

	profile := &domain.WorkerProfile{
		UserID:             user.ID,
		Profession:         domain.ProfessionOther,
		Skills:             skills,
		Location:           user.Location,
		HourlyRate:         domain.DefaultHourlyRate,
		ExperienceYears:    domain.DefaultExperienceYears,
		Available:          true,
		VerificationStatus: domain.WorkerUnverified,
	}

	if err := w.workers.Create(profile); err != nil {
		if helper.IsDuplicateKey(err) {
			// lost the race; the other writer's profile is the profile
			return w.workers.FindByUserID(user.ID)
		}
		return nil, err
	}

	if err := w.syncWorkerRole(user); err != nil {
		return nil, err
	}
	if err := w.users.MarkProfileCompleted(user.ID); err != nil {
		return nil, err
	}
	user.ProfileCompleted = true

	return profile, nil
}

// syncWorkerRole is the forced half of the role<->profile consistency rule:
// a profile's existence implies the worker role. Single targeted update, so
// it cannot re-trigger profile creation.
func (w *workerService) syncWorkerRole(user *domain.User) error {
	if user.Role == domain.RoleWorker {
		return nil
	}
	if err := w.users.SetRole(user.ID, domain.RoleWorker); err != nil {
		return err
	}
	user.Role = domain.RoleWorker
	return nil
}

func (w *workerService) CompleteProfile(ctx context.Context, userID uint, input dto.CompleteProfileRequest, photo []byte) (*domain.WorkerProfile, error) {
	user, err := w.users.FindUserById(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	profession := strings.ToLower(strings.TrimSpace(input.Profession))
	custom := strings.TrimSpace(input.CustomProfession)
	if custom != "" {
		profession = domain.ProfessionOther
	}
	if !domain.ValidProfession(profession) {
		return nil, ErrInvalidProfession
	}

	skills := trimSkills(input.Skills)
	if len(skills) < 3 {
		return nil, ErrInsufficientSkills
	}

	years := input.ExperienceYears
	if years < 0 || years > domain.MaxExperienceYears {
		return nil, invalid("experienceYears", "experience years must be between 0 and 50")
	}
	rate := input.HourlyRate
	if rate == 0 {
		rate = domain.DefaultHourlyRate
	}
	if rate < domain.MinHourlyRate || rate > domain.MaxHourlyRate {
		return nil, invalid("hourlyRate", "hourly rate must be between 100 and 5000")
	}

	location := strings.TrimSpace(input.Location)
	if location == "" {
		location = user.Location
	}

	var photoURL, photoID string
	if len(photo) > 0 && w.uploader != nil {
		photoURL, photoID, err = w.uploader.UploadBytes(ctx, photoFolder, uuid.NewString(), photo)
		if err != nil {
			log.Printf("photo upload error for user %d: %v", userID, err)
			return nil, ErrPhotoUpload
		}
	}

	profile, err := w.EnsureWorkerProfile(user)
	if err != nil {
		return nil, err
	}

	profile.Profession = profession
	profile.CustomProfession = custom
	profile.Skills = skills
	profile.ExperienceYears = years
	profile.HourlyRate = rate
	profile.Location = location
	if input.Available != nil {
		profile.Available = *input.Available
	}
	if photoURL != "" {
		profile.PhotoURL = photoURL
		profile.PhotoPublicID = photoID
	}

	if err := w.workers.Save(profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func (w *workerService) Search(q dto.WorkerSearchQuery) ([]domain.WorkerProfile, error) {
	var skills []string
	if strings.TrimSpace(q.Skills) != "" {
		skills = strings.Split(q.Skills, ",")
	}
	return w.workers.Search(q.Profession, q.Location, skills)
}

func (w *workerService) GetWorker(id uint) (*domain.WorkerProfile, error) {
	profile, err := w.workers.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, err
	}
	return profile, nil
}
