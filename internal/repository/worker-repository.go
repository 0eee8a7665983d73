package repository

import (
	"strings"

	"github.com/skilledwork/worker_service/internal/domain"
	"gorm.io/gorm"
)

type WorkerRepository interface {
	Create(profile *domain.WorkerProfile) error
	FindByUserID(userID uint) (*domain.WorkerProfile, error)
	FindByID(id uint) (*domain.WorkerProfile, error)
	Save(profile *domain.WorkerProfile) error
	Search(profession, location string, skills []string) ([]domain.WorkerProfile, error)
}

type workerRepository struct {
	db *gorm.DB
}

func NewWorkerRepository(db *gorm.DB) WorkerRepository {
	return &workerRepository{db: db}
}

func (r *workerRepository) Create(profile *domain.WorkerProfile) error {
	return r.db.Create(profile).Error
}

func (r *workerRepository) FindByUserID(userID uint) (*domain.WorkerProfile, error) {
	var profile domain.WorkerProfile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *workerRepository) FindByID(id uint) (*domain.WorkerProfile, error) {
	var profile domain.WorkerProfile
	if err := r.db.Preload("User").First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *workerRepository) Save(profile *domain.WorkerProfile) error {
	return r.db.Save(profile).Error
}

func (r *workerRepository) Search(profession, location string, skills []string) ([]domain.WorkerProfile, error) {
	q := r.db.Model(&domain.WorkerProfile{})

	if profession != "" {
		q = q.Where("profession = ?", strings.ToLower(strings.TrimSpace(profession)))
	}
	if location != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(strings.TrimSpace(location))+"%")
	}
	// skills column is serialized json; a worker matches when any of the
	// requested skills appears, case-insensitive
	var conds []string
	var args []interface{}
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		conds = append(conds, "LOWER(skills) LIKE ?")
		args = append(args, "%"+s+"%")
	}
	if len(conds) > 0 {
		q = q.Where(strings.Join(conds, " OR "), args...)
	}

	var workers []domain.WorkerProfile
	if err := q.Order("rating DESC").Find(&workers).Error; err != nil {
		return nil, err
	}
	return workers, nil
}
