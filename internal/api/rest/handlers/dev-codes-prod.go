//go:build !dev

package handlers

import (
	"github.com/skilledwork/worker_service/internal/domain"
	"github.com/skilledwork/worker_service/internal/dto"
)

func devCodes(_ *domain.User) *dto.DevCodes {
	return nil
}

func devEcho(_ string) string {
	return ""
}
