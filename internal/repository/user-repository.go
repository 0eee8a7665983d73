package repository

import (
	"errors"

	"github.com/skilledwork/worker_service/internal/domain"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(user *domain.User) (*domain.User, error)
	FindUserByEmail(email string) (*domain.User, error)
	FindUserByPhone(phone string) (*domain.User, error)
	FindUserById(userID uint) (*domain.User, error)

	// MarkChannelVerified flips the channel flag and clears its code in one
	// guarded write. Returns false when the row was already verified, the
	// code does not match, or the user does not exist.
	MarkChannelVerified(userID uint, channel domain.Channel, code string) (bool, error)

	// ReplaceChannelCode stores a fresh code for an unverified channel.
	// Returns false when the channel is already verified or the user is gone.
	ReplaceChannelCode(userID uint, channel domain.Channel, code string) (bool, error)

	SetRole(userID uint, role domain.Role) error
	MarkProfileCompleted(userID uint) error
	TouchLastActive(userID uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("nil user")
	}
	if err := r.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindUserByEmail(email string) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.First(user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindUserByPhone(phone string) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.First(user, "phone = ?", phone).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindUserById(userID uint) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.First(user, userID).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func channelColumns(channel domain.Channel) (flag, code string) {
	if channel == domain.ChannelEmail {
		return "email_verified", "email_code"
	}
	return "phone_verified", "phone_code"
}

func (r *userRepository) MarkChannelVerified(userID uint, channel domain.Channel, code string) (bool, error) {
	flagCol, codeCol := channelColumns(channel)

	res := r.db.Model(&domain.User{}).
		Where("id = ? AND "+flagCol+" = ? AND "+codeCol+" = ?", userID, false, code).
		Updates(map[string]interface{}{
			flagCol: true,
			codeCol: "",
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *userRepository) ReplaceChannelCode(userID uint, channel domain.Channel, code string) (bool, error) {
	flagCol, codeCol := channelColumns(channel)

	// Guarded so a code can never reappear on a channel that was verified
	// by a concurrent submit.
	res := r.db.Model(&domain.User{}).
		Where("id = ? AND "+flagCol+" = ?", userID, false).
		Update(codeCol, code)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *userRepository) SetRole(userID uint, role domain.Role) error {
	return r.db.Model(&domain.User{}).
		Where("id = ? AND role <> ?", userID, role).
		Update("role", role).Error
}

func (r *userRepository) MarkProfileCompleted(userID uint) error {
	return r.db.Model(&domain.User{}).
		Where("id = ?", userID).
		Update("profile_completed", true).Error
}

func (r *userRepository) TouchLastActive(userID uint) error {
	return r.db.Model(&domain.User{}).
		Where("id = ?", userID).
		Update("last_active_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}
