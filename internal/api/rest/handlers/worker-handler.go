package handlers

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/skilledwork/worker_service/internal/domain"
	"github.com/skilledwork/worker_service/internal/dto"
	"github.com/skilledwork/worker_service/internal/helper"
	"github.com/skilledwork/worker_service/internal/helper/utils"
	"github.com/skilledwork/worker_service/internal/services"
	pkgutils "github.com/skilledwork/worker_service/pkg/utils"
)

const maxPhotoSize = 5 * 1024 * 1024 // 5MB

type WorkerHandler struct {
	svc  services.WorkerService
	auth helper.Auth
}

func NewWorkerHandler(svc services.WorkerService, auth helper.Auth) *WorkerHandler {
	return &WorkerHandler{svc: svc, auth: auth}
}

func (h *WorkerHandler) SetupRoutes(api fiber.Router, authMw fiber.Handler) {
	workers := api.Group("/workers")

	workers.Get("/", h.Search)
	workers.Post("/profile", authMw, h.CompleteProfile)
	workers.Get("/:id", h.GetWorker)
}

func (h *WorkerHandler) Search(ctx *fiber.Ctx) error {
	var q dto.WorkerSearchQuery
	if err := ctx.QueryParser(&q); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid query")
	}

	workers, err := h.svc.Search(q)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "worker search failed")
	}

	summaries := make([]dto.WorkerSummary, 0, len(workers))
	for i := range workers {
		summaries = append(summaries, workerSummary(&workers[i]))
	}

	return ctx.JSON(dto.WorkerListResponse{
		Success: true,
		Count:   len(summaries),
		Workers: summaries,
	})
}

func (h *WorkerHandler) GetWorker(ctx *fiber.Ctx) error {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid worker id")
	}

	worker, err := h.svc.GetWorker(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrWorkerNotFound) {
			return utils.ResponseError(ctx, fiber.StatusNotFound, "worker not found")
		}
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "failed to load worker")
	}

	resp := fiber.Map{
		"success": true,
		"worker":  workerSummary(worker),
	}
	if worker.User != nil {
		resp["user"] = dto.UserResponse{
			ID:    worker.User.ID,
			Name:  worker.User.Name,
			Email: worker.User.Email,
			Phone: worker.User.Phone,
			Role:  string(worker.User.Role),
		}
	}
	return ctx.JSON(resp)
}

func (h *WorkerHandler) CompleteProfile(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "please authenticate")
	}

	var input dto.CompleteProfileRequest

	// multipart form with a "data" json field plus optional photo, or a
	// plain json body when no photo is sent
	if data := ctx.FormValue("data"); data != "" {
		if err := json.Unmarshal([]byte(data), &input); err != nil {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, "profile data is required")
		}
	} else if err := ctx.BodyParser(&input); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "profile data is required")
	}

	var photo []byte
	if file, err := ctx.FormFile("photo"); err == nil && file != nil {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		allowed := map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}
		if !allowed[ext] {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, "only jpg/jpeg/png/webp allowed")
		}

		f, err := file.Open()
		if err != nil {
			return utils.ResponseError(ctx, fiber.StatusInternalServerError, "cannot open uploaded file")
		}
		defer f.Close()

		photo, err = pkgutils.ReadAllLimit(f, maxPhotoSize)
		if err != nil {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, "file too large (max 5MB)")
		}
	}

	worker, err := h.svc.CompleteProfile(ctx.Context(), claims.UserID, input, photo)
	if err != nil {
		var vErr *services.ValidationError
		switch {
		case errors.As(err, &vErr):
			return utils.ResponseError(ctx, fiber.StatusBadRequest, vErr.Message)
		case errors.Is(err, services.ErrInsufficientSkills):
			return utils.ResponseError(ctx, fiber.StatusBadRequest, "please add at least 3 skills")
		case errors.Is(err, services.ErrInvalidProfession):
			return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid profession")
		case errors.Is(err, services.ErrUserNotFound):
			return utils.ResponseError(ctx, fiber.StatusNotFound, "user not found")
		case errors.Is(err, services.ErrPhotoUpload):
			return utils.ResponseError(ctx, fiber.StatusBadGateway, "photo upload failed")
		default:
			return utils.ResponseError(ctx, fiber.StatusInternalServerError, "failed to complete profile")
		}
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"worker":  workerSummary(worker),
	})
}

func workerSummary(w *domain.WorkerProfile) dto.WorkerSummary {
	return dto.WorkerSummary{
		ID:                 w.ID,
		Profession:         w.Profession,
		CustomProfession:   w.CustomProfession,
		Skills:             w.Skills,
		ExperienceYears:    w.ExperienceYears,
		HourlyRate:         w.HourlyRate,
		PhotoURL:           w.PhotoURL,
		Location:           w.Location,
		Available:          w.Available,
		Rating:             w.Rating,
		CompletedJobs:      w.CompletedJobs,
		VerificationStatus: w.VerificationStatus,
	}
}
