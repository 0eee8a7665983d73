package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/skilledwork/worker_service/internal/domain"
	"github.com/skilledwork/worker_service/internal/dto"
	"github.com/skilledwork/worker_service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerUser(t *testing.T, env *testEnv, n int, role string, skills ...string) *domain.User {
	t.Helper()

	input := signupInput()
	input.Email = fmt.Sprintf("user%d@x.com", n)
	input.Phone = fmt.Sprintf("98765432%02d", n)
	input.Role = role
	input.Skills = skills

	usr, err := env.users.Register(input)
	require.NoError(t, err)
	return usr
}

func profileCount(t *testing.T, env *testEnv) int64 {
	t.Helper()

	var count int64
	require.NoError(t, env.db.Model(&domain.WorkerProfile{}).Count(&count).Error)
	return count
}

func TestWorkerSignupProvisionsProfile(t *testing.T) {
	env := newTestEnv(t)

	usr := registerUser(t, env, 1, "worker", "plumbing")

	profile, err := env.workers.EnsureWorkerProfile(usr)
	require.NoError(t, err)
	require.NotZero(t, profile.ID)

	assert.Equal(t, usr.ID, profile.UserID)
	assert.Equal(t, domain.ProfessionOther, profile.Profession)
	assert.Equal(t, []string{"plumbing"}, profile.Skills)
	assert.Equal(t, domain.DefaultHourlyRate, profile.HourlyRate)
	assert.Equal(t, domain.DefaultExperienceYears, profile.ExperienceYears)
	assert.Equal(t, "Pune", profile.Location)
	assert.True(t, profile.Available)
	assert.Equal(t, domain.WorkerUnverified, profile.VerificationStatus)

	stored, err := env.users.GetUser(usr.ID)
	require.NoError(t, err)
	assert.True(t, stored.ProfileCompleted)
	assert.Equal(t, domain.RoleWorker, stored.Role)

	assert.EqualValues(t, 1, profileCount(t, env))
}

func TestEnsureWorkerProfileIdempotent(t *testing.T) {
	env := newTestEnv(t)

	usr := registerUser(t, env, 1, "user")

	first, err := env.workers.EnsureWorkerProfile(usr)
	require.NoError(t, err)

	second, err := env.workers.EnsureWorkerProfile(usr)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.EqualValues(t, 1, profileCount(t, env))

	// a plain user gains the worker role the moment a profile exists
	stored, err := env.users.GetUser(usr.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleWorker, stored.Role)
}

// rivalCreateRepo makes a competing provisioner insert the profile first,
// so the caller's insert hits the unique user_id index.
type rivalCreateRepo struct {
	repository.WorkerRepository
}

func (r *rivalCreateRepo) Create(profile *domain.WorkerProfile) error {
	rival := *profile
	if err := r.WorkerRepository.Create(&rival); err != nil {
		return err
	}
	return r.WorkerRepository.Create(profile)
}

func TestEnsureWorkerProfileLosesCreateRace(t *testing.T) {
	env := newTestEnv(t)

	usr := registerUser(t, env, 1, "user")

	racing := NewWorkerService(
		&rivalCreateRepo{WorkerRepository: repository.NewWorkerRepository(env.db)},
		repository.NewUserRepository(env.db),
		nil,
	)

	// the duplicate-key loser reloads and adopts the rival's row
	profile, err := racing.EnsureWorkerProfile(usr)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, usr.ID, profile.UserID)
	assert.EqualValues(t, 1, profileCount(t, env))
}

func TestEnsureWorkerProfileSeedsFallbackSkill(t *testing.T) {
	env := newTestEnv(t)

	usr := registerUser(t, env, 1, "user")

	profile, err := env.workers.EnsureWorkerProfile(usr)
	require.NoError(t, err)
	assert.Equal(t, []string{"general"}, profile.Skills)
}

func TestCompleteProfile(t *testing.T) {
	env := newTestEnv(t)

	usr := registerUser(t, env, 1, "user")

	profile, err := env.workers.CompleteProfile(context.Background(), usr.ID, dto.CompleteProfileRequest{
		Profession:      "Plumber",
		Skills:          []string{"pipes", "fittings", "drainage"},
		ExperienceYears: 5,
		HourlyRate:      450,
		Location:        "Mumbai",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "plumber", profile.Profession)
	assert.Equal(t, []string{"pipes", "fittings", "drainage"}, profile.Skills)
	assert.Equal(t, 5, profile.ExperienceYears)
	assert.Equal(t, 450, profile.HourlyRate)
	assert.Equal(t, "Mumbai", profile.Location)
	assert.True(t, profile.Available)

	stored, err := env.users.GetUser(usr.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleWorker, stored.Role)
}

func TestCompleteProfileCustomProfession(t *testing.T) {
	env := newTestEnv(t)

	usr := registerUser(t, env, 1, "user")

	profile, err := env.workers.CompleteProfile(context.Background(), usr.ID, dto.CompleteProfileRequest{
		Profession:       "plumber",
		CustomProfession: "Welder",
		Skills:           []string{"arc welding", "mig", "tig"},
	}, nil)
	require.NoError(t, err)

	// a custom profession always files under "other"
	assert.Equal(t, domain.ProfessionOther, profile.Profession)
	assert.Equal(t, "Welder", profile.CustomProfession)
	// an omitted rate falls back to the default
	assert.Equal(t, domain.DefaultHourlyRate, profile.HourlyRate)
}

func TestCompleteProfileValidation(t *testing.T) {
	env := newTestEnv(t)

	usr := registerUser(t, env, 1, "user")
	ctx := context.Background()

	_, err := env.workers.CompleteProfile(ctx, usr.ID, dto.CompleteProfileRequest{
		Profession: "astronaut",
		Skills:     []string{"a", "b", "c"},
	}, nil)
	assert.ErrorIs(t, err, ErrInvalidProfession)

	_, err = env.workers.CompleteProfile(ctx, usr.ID, dto.CompleteProfileRequest{
		Profession: "plumber",
		Skills:     []string{"pipes", "  ", ""},
	}, nil)
	assert.ErrorIs(t, err, ErrInsufficientSkills)

	_, err = env.workers.CompleteProfile(ctx, usr.ID, dto.CompleteProfileRequest{
		Profession:      "plumber",
		Skills:          []string{"a", "b", "c"},
		ExperienceYears: 51,
	}, nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "experienceYears", verr.Field)

	_, err = env.workers.CompleteProfile(ctx, usr.ID, dto.CompleteProfileRequest{
		Profession: "plumber",
		Skills:     []string{"a", "b", "c"},
		HourlyRate: 50,
	}, nil)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "hourlyRate", verr.Field)

	_, err = env.workers.CompleteProfile(ctx, 999, dto.CompleteProfileRequest{
		Profession: "plumber",
		Skills:     []string{"a", "b", "c"},
	}, nil)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSearchWorkers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u1 := registerUser(t, env, 1, "user")
	u2 := registerUser(t, env, 2, "user")
	u3 := registerUser(t, env, 3, "user")

	_, err := env.workers.CompleteProfile(ctx, u1.ID, dto.CompleteProfileRequest{
		Profession: "plumber",
		Skills:     []string{"pipes", "fittings", "drainage"},
		Location:   "Pune",
	}, nil)
	require.NoError(t, err)

	_, err = env.workers.CompleteProfile(ctx, u2.ID, dto.CompleteProfileRequest{
		Profession: "electrician",
		Skills:     []string{"wiring", "panels", "lighting"},
		Location:   "Mumbai",
	}, nil)
	require.NoError(t, err)

	_, err = env.workers.CompleteProfile(ctx, u3.ID, dto.CompleteProfileRequest{
		Profession: "plumber",
		Skills:     []string{"pipes", "bathrooms", "heaters"},
		Location:   "Mumbai",
	}, nil)
	require.NoError(t, err)

	all, err := env.workers.Search(dto.WorkerSearchQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	plumbers, err := env.workers.Search(dto.WorkerSearchQuery{Profession: "plumber"})
	require.NoError(t, err)
	assert.Len(t, plumbers, 2)

	mumbai, err := env.workers.Search(dto.WorkerSearchQuery{Location: "mum"})
	require.NoError(t, err)
	assert.Len(t, mumbai, 2)

	// any listed skill matches
	skilled, err := env.workers.Search(dto.WorkerSearchQuery{Skills: "wiring,drainage"})
	require.NoError(t, err)
	assert.Len(t, skilled, 2)

	combined, err := env.workers.Search(dto.WorkerSearchQuery{
		Profession: "plumber",
		Location:   "mumbai",
	})
	require.NoError(t, err)
	require.Len(t, combined, 1)
	assert.Equal(t, u3.ID, combined[0].UserID)
}

func TestGetWorker(t *testing.T) {
	env := newTestEnv(t)

	usr := registerUser(t, env, 1, "worker", "painting")

	profile, err := env.workers.EnsureWorkerProfile(usr)
	require.NoError(t, err)

	found, err := env.workers.GetWorker(profile.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, found.ID)
	require.NotNil(t, found.User)
	assert.Equal(t, usr.Email, found.User.Email)

	_, err = env.workers.GetWorker(999)
	assert.ErrorIs(t, err, ErrWorkerNotFound)
}
