package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"freelahub/internal/middleware"
	"freelahub/internal/pkg/logger"
	"freelahub/internal/pkg/response"
	"freelahub/internal/pkg/validator"
)

// Handler manages the HTTP side of signup, login and recovery.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/check-email", h.CheckEmail)
		authGroup.POST("/quick-register", h.QuickRegister)
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/forgot-password", h.ForgotPassword)
		authGroup.POST("/reset-password", h.ResetPassword)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/users/me", h.GetMe)
}

// CheckEmail tells the form whether to continue to login or to register.
func (h *Handler) CheckEmail(c *gin.Context) {
	var req CheckEmailRequest
	if errs := validator.BindJSON(c, &req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	res, err := h.service.CheckEmail(c.Request.Context(), req.Email)
	if err != nil {
		logger.Error(c.Request.Context(), "check-email failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "LOOKUP_FAILED", "Could not verify email")
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) QuickRegister(c *gin.Context) {
	var req QuickRegisterRequest
	if errs := validator.BindJSON(c, &req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	res, err := h.service.QuickRegister(c.Request.Context(), req)
	h.writeRegistration(c, res, err)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if errs := validator.BindJSON(c, &req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	res, err := h.service.Register(c.Request.Context(), req)
	h.writeRegistration(c, res, err)
}

// Conflicts are a 400 like any other rejected form, not a 409.
func (h *Handler) writeRegistration(c *gin.Context, res *AuthResult, err error) {
	if err != nil {
		var fe *FieldsError
		if errors.As(err, &fe) {
			response.ValidationError(c, fe.Fields)
			return
		}
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusBadRequest, "EMAIL_EXISTS", "This email is already registered")
			return
		}
		logger.Error(c.Request.Context(), "registration failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to create account")
		return
	}

	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if errs := validator.BindJSON(c, &req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
			return
		}
		logger.Error(c.Request.Context(), "login failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if errs := validator.BindJSON(c, &req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	h.service.ForgotPassword(c.Request.Context(), req.Email)
	response.Success(c, http.StatusOK, gin.H{"message": ForgotPasswordMessage})
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if errs := validator.BindJSON(c, &req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, ErrInvalidResetToken) {
			response.Error(c, http.StatusBadRequest, "INVALID_RESET_TOKEN", "Reset link is invalid or has expired")
			return
		}
		logger.Error(c.Request.Context(), "reset password failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "RESET_FAILED", "Failed to reset password")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Senha redefinida com sucesso."})
}

func (h *Handler) GetMe(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	user, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
			return
		}
		logger.Error(c.Request.Context(), "get me failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load user")
		return
	}

	response.Success(c, http.StatusOK, user)
}
