package services

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/skilledwork/worker_service/internal/domain"
	"github.com/skilledwork/worker_service/internal/dto"
	"github.com/skilledwork/worker_service/internal/helper"
	"github.com/skilledwork/worker_service/internal/helper/utils"
	"github.com/skilledwork/worker_service/internal/interfaces"
	"github.com/skilledwork/worker_service/internal/ratelimit"
	"github.com/skilledwork/worker_service/internal/repository"
	"gorm.io/gorm"
)

type UserService interface {
	// Auth
	Register(input dto.SignupRequest) (*domain.User, error)
	Login(email, password string) (*domain.User, error)
	GetUser(userID uint) (*domain.User, error)

	// Verification
	SubmitCode(userID uint, channel domain.Channel, code string) (*domain.User, error)
	ResendCode(ctx context.Context, userID uint, channel domain.Channel) (string, error)
	VerificationStatus(userID uint) (dto.VerificationStatusResponse, error)
}

type userService struct {
	repo     repository.UserRepository
	workers  WorkerService
	producer interfaces.ProducerHandler
	cooldown ratelimit.Cooldown
	auth     helper.Auth
}

func NewUserService(
	repo repository.UserRepository,
	workers WorkerService,
	producer interfaces.ProducerHandler,
	cooldown ratelimit.Cooldown,
	auth helper.Auth,
) UserService {
	return &userService{
		repo:     repo,
		workers:  workers,
		producer: producer,
		cooldown: cooldown,
		auth:     auth,
	}
}

func (u *userService) Register(input dto.SignupRequest) (*domain.User, error) {
	name := strings.TrimSpace(input.Name)
	email := utils.NormalizeEmail(input.Email)
	phone := utils.NormalizePhone(input.Phone)
	password := strings.TrimSpace(input.Password)
	location := strings.TrimSpace(input.Location)
	role := domain.Role(strings.ToLower(strings.TrimSpace(input.Role)))

	if role == "" {
		role = domain.RoleUser
	}

	if len(name) < 2 {
		return nil, invalid("name", "name must be at least 2 characters")
	}
	if !utils.ValidEmail(email) {
		return nil, invalid("email", "please enter a valid email")
	}
	if len(phone) != 10 {
		return nil, invalid("phone", "phone number must be 10 digits")
	}
	if len(password) < 6 {
		return nil, invalid("password", "password must be at least 6 characters")
	}
	if location == "" {
		return nil, invalid("location", "location is required")
	}
	// admin accounts are never created through public signup
	if role != domain.RoleUser && role != domain.RoleWorker {
		return nil, invalid("role", "role must be user or worker")
	}

	skills := trimSkills(input.Skills)
	if role == domain.RoleWorker && len(skills) == 0 {
		return nil, invalid("skills", "workers must have at least one skill")
	}

	// fast pre-check; the unique indexes still decide under races
	if existing, err := u.repo.FindUserByEmail(email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}
	if existing, err := u.repo.FindUserByPhone(phone); err == nil && existing != nil {
		return nil, ErrPhoneTaken
	}

	hashed, err := u.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	emailCode, err := utils.GenerateVerificationCode()
	if err != nil {
		return nil, err
	}
	phoneCode, err := utils.GenerateVerificationCode()
	if err != nil {
		return nil, err
	}
	for phoneCode == emailCode {
		if phoneCode, err = utils.GenerateVerificationCode(); err != nil {
			return nil, err
		}
	}

	newUser := &domain.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: hashed,
		Role:         role,
		Location:     location,
		Skills:       skills,
		EmailCode:    emailCode,
		PhoneCode:    phoneCode,
	}

	usr, err := u.repo.CreateUser(newUser)
	if err != nil {
		if helper.IsDuplicateKey(err) {
			if helper.DuplicateKeyColumn(err) == "phone" {
				return nil, ErrPhoneTaken
			}
			return nil, ErrEmailTaken
		}
		log.Printf("create user error: %v", err)
		return nil, errors.New("failed to create user")
	}

	// both channels fire in parallel; a slow or failing provider must never
	// hold the signup response hostage
	go u.dispatchCode(usr, domain.ChannelEmail, emailCode)
	go u.dispatchCode(usr, domain.ChannelPhone, phoneCode)

	if usr.Role == domain.RoleWorker {
		if _, err := u.workers.EnsureWorkerProfile(usr); err != nil {
			log.Printf("worker profile provisioning error for user %d: %v", usr.ID, err)
		}
	}

	return usr, nil
}

func (u *userService) Login(email, password string) (*domain.User, error) {
	email = utils.NormalizeEmail(email)
	password = strings.TrimSpace(password)

	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := u.repo.FindUserByEmail(email)
	if err != nil || user == nil || user.ID == 0 {
		// do not reveal whether the email exists
		return nil, ErrInvalidCredentials
	}

	if err := u.auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.FullyVerified() {
		return user, ErrNotVerified
	}

	if err := u.repo.TouchLastActive(user.ID); err != nil {
		log.Printf("touch last active error for user %d: %v", user.ID, err)
	}

	return user, nil
}

func (u *userService) GetUser(userID uint) (*domain.User, error) {
	user, err := u.repo.FindUserById(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (u *userService) SubmitCode(userID uint, channel domain.Channel, code string) (*domain.User, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrInvalidCode
	}

	user, err := u.GetUser(userID)
	if err != nil {
		return nil, err
	}

	if user.Verified(channel) {
		return nil, ErrAlreadyVerified
	}

	stored := user.PendingCode(channel)
	if stored == "" || subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return nil, ErrInvalidCode
	}

	// guarded write: of two concurrent submits exactly one flips the flag
	ok, err := u.repo.MarkChannelVerified(userID, channel, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		// lost the race; report what actually happened
		fresh, ferr := u.GetUser(userID)
		if ferr != nil {
			return nil, ferr
		}
		if fresh.Verified(channel) {
			return nil, ErrAlreadyVerified
		}
		return nil, ErrInvalidCode
	}

	return u.GetUser(userID)
}

func (u *userService) ResendCode(ctx context.Context, userID uint, channel domain.Channel) (string, error) {
	user, err := u.GetUser(userID)
	if err != nil {
		return "", err
	}

	if user.Verified(channel) {
		return "", ErrAlreadyVerified
	}

	allowed, err := u.cooldown.Allow(ctx, fmt.Sprintf("%d:%s", userID, channel))
	if err != nil {
		log.Printf("resend cooldown check error: %v", err)
	} else if !allowed {
		return "", ErrResendThrottled
	}

	code, err := utils.GenerateVerificationCode()
	if err != nil {
		return "", err
	}

	// the replacement is persisted before any delivery attempt, so the new
	// code survives a failed send
	ok, err := u.repo.ReplaceChannelCode(userID, channel, code)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrAlreadyVerified
	}

	if err := u.publishCode(user, channel, code); err != nil {
		log.Printf("resend delivery error for user %d channel %s: %v", userID, channel, err)
		// give the slot back so the user can retry a failed delivery right away
		if rerr := u.cooldown.Release(ctx, fmt.Sprintf("%d:%s", userID, channel)); rerr != nil {
			log.Printf("resend cooldown release error: %v", rerr)
		}
		return code, ErrDeliveryFailed
	}

	return code, nil
}

func (u *userService) VerificationStatus(userID uint) (dto.VerificationStatusResponse, error) {
	user, err := u.GetUser(userID)
	if err != nil {
		return dto.VerificationStatusResponse{}, err
	}
	return dto.VerificationStatusResponse{
		EmailVerified: user.EmailVerified,
		PhoneVerified: user.PhoneVerified,
	}, nil
}

func (u *userService) publishCode(user *domain.User, channel domain.Channel, code string) error {
	if u.producer == nil {
		return nil
	}

	var key string
	var payload []byte
	var err error

	if channel == domain.ChannelEmail {
		key = dto.EventVerifyEmail
		payload, err = json.Marshal(dto.VerifyEmailEvent{
			UserID: user.ID,
			Email:  user.Email,
			Code:   code,
		})
	} else {
		key = dto.EventVerifyPhone
		payload, err = json.Marshal(dto.VerifyPhoneEvent{
			UserID: user.ID,
			Phone:  user.Phone,
			Code:   code,
		})
	}
	if err != nil {
		return err
	}

	return u.producer.PublishMessage([]byte(key), payload)
}

func (u *userService) dispatchCode(user *domain.User, channel domain.Channel, code string) {
	if err := u.publishCode(user, channel, code); err != nil {
		log.Printf("signup delivery error for user %d channel %s: %v", user.ID, channel, err)
	}
}

func trimSkills(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
