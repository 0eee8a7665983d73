//go:build dev

package handlers

import (
	"github.com/skilledwork/worker_service/internal/domain"
	"github.com/skilledwork/worker_service/internal/dto"
)

// Development builds echo freshly issued codes so the flow can be exercised
// without real email/SMS delivery. Production builds compile the stub instead.
func devCodes(user *domain.User) *dto.DevCodes {
	return &dto.DevCodes{
		EmailCode: user.EmailCode,
		PhoneCode: user.PhoneCode,
	}
}

func devEcho(code string) string {
	return code
}
