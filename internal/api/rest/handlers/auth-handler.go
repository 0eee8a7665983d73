package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/skilledwork/worker_service/internal/domain"
	"github.com/skilledwork/worker_service/internal/dto"
	"github.com/skilledwork/worker_service/internal/helper"
	"github.com/skilledwork/worker_service/internal/helper/utils"
	"github.com/skilledwork/worker_service/internal/services"
)

type AuthHandler struct {
	svc  services.UserService
	auth helper.Auth
}

func NewAuthHandler(svc services.UserService, auth helper.Auth) *AuthHandler {
	return &AuthHandler{svc: svc, auth: auth}
}

func (h *AuthHandler) SetupRoutes(api fiber.Router, authMw fiber.Handler) {
	auth := api.Group("/auth")

	auth.Post("/signup", h.Signup)
	auth.Post("/login", h.Login)
	auth.Post("/verify-email", h.VerifyEmail)
	auth.Post("/verify-phone", h.VerifyPhone)
	auth.Post("/resend-verification", h.ResendVerification)
	auth.Get("/check-verification", h.CheckVerification)

	api.Get("/me", authMw, h.Me)
}

func (h *AuthHandler) Signup(ctx *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	user, err := h.svc.Register(req)
	if err != nil {
		var vErr *services.ValidationError
		switch {
		case errors.As(err, &vErr):
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": vErr.Message,
				"field": vErr.Field,
			})
		case errors.Is(err, services.ErrEmailTaken):
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "user with this email or phone already exists",
				"field": "email",
			})
		case errors.Is(err, services.ErrPhoneTaken):
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "user with this email or phone already exists",
				"field": "phone",
			})
		default:
			return utils.ResponseError(ctx, fiber.StatusInternalServerError, "an error occurred during signup")
		}
	}

	return ctx.Status(fiber.StatusCreated).JSON(dto.SignupResponse{
		Message: "user created successfully, please verify your email and phone",
		UserID:  user.ID,
		Codes:   devCodes(user),
	})
}

func (h *AuthHandler) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	user, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrNotVerified) {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":                  "please verify your email and phone first",
				"userId":                 user.ID,
				"needsEmailVerification": !user.EmailVerified,
				"needsPhoneVerification": !user.PhoneVerified,
			})
		}
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "login failed, check your credentials")
	}

	token, err := h.auth.GenerateToken(user.ID, string(user.Role), user.Email)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "could not generate token")
	}

	return ctx.JSON(dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Phone: user.Phone,
			Role:  string(user.Role),
		},
	})
}

func (h *AuthHandler) VerifyEmail(ctx *fiber.Ctx) error {
	return h.verifyChannel(ctx, domain.ChannelEmail)
}

func (h *AuthHandler) VerifyPhone(ctx *fiber.Ctx) error {
	return h.verifyChannel(ctx, domain.ChannelPhone)
}

func (h *AuthHandler) verifyChannel(ctx *fiber.Ctx, channel domain.Channel) error {
	var req dto.VerifyCodeRequest
	if err := ctx.BodyParser(&req); err != nil || req.UserID == 0 || req.Code == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "user ID and verification code are required")
	}

	user, err := h.svc.SubmitCode(req.UserID, channel, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return utils.ResponseError(ctx, fiber.StatusNotFound, "user not found")
		case errors.Is(err, services.ErrAlreadyVerified):
			return utils.ResponseError(ctx, fiber.StatusBadRequest, string(channel)+" is already verified")
		case errors.Is(err, services.ErrInvalidCode):
			return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid verification code")
		default:
			return utils.ResponseError(ctx, fiber.StatusInternalServerError, string(channel)+" verification failed")
		}
	}

	if channel == domain.ChannelEmail {
		return ctx.JSON(fiber.Map{
			"message":                "email verified successfully",
			"needsPhoneVerification": !user.PhoneVerified,
		})
	}
	return ctx.JSON(fiber.Map{
		"message":                "phone verified successfully",
		"needsEmailVerification": !user.EmailVerified,
	})
}

func (h *AuthHandler) ResendVerification(ctx *fiber.Ctx) error {
	var req dto.ResendVerificationRequest
	if err := ctx.BodyParser(&req); err != nil || req.UserID == 0 || req.Type == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "user ID and verification type are required")
	}

	channel := domain.Channel(req.Type)
	if !domain.ValidChannel(channel) {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid verification type")
	}

	code, err := h.svc.ResendCode(ctx.Context(), req.UserID, channel)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return utils.ResponseError(ctx, fiber.StatusNotFound, "user not found")
		case errors.Is(err, services.ErrAlreadyVerified):
			return utils.ResponseError(ctx, fiber.StatusBadRequest, string(channel)+" is already verified")
		case errors.Is(err, services.ErrResendThrottled):
			return utils.ResponseError(ctx, fiber.StatusTooManyRequests, "please wait before requesting another code")
		case errors.Is(err, services.ErrDeliveryFailed):
			return utils.ResponseError(ctx, fiber.StatusBadGateway, "failed to resend "+string(channel)+" verification")
		default:
			return utils.ResponseError(ctx, fiber.StatusInternalServerError, "failed to resend verification")
		}
	}

	resp := fiber.Map{
		"message": "verification " + resendMedium(channel) + " resent successfully",
	}
	if echoed := devEcho(code); echoed != "" {
		resp["code"] = echoed
	}
	return ctx.JSON(resp)
}

func resendMedium(channel domain.Channel) string {
	if channel == domain.ChannelEmail {
		return "email"
	}
	return "SMS"
}

func (h *AuthHandler) CheckVerification(ctx *fiber.Ctx) error {
	userID, err := strconv.ParseUint(ctx.Query("userId"), 10, 64)
	if err != nil || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "userId query parameter is required")
	}

	status, err := h.svc.VerificationStatus(uint(userID))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return utils.ResponseError(ctx, fiber.StatusNotFound, "user not found")
		}
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "failed to check verification status")
	}

	return ctx.JSON(status)
}

func (h *AuthHandler) Me(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "please authenticate")
	}

	user, err := h.svc.GetUser(claims.UserID)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "please authenticate")
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
		Role:  string(user.Role),
	})
}
