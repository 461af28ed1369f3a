package profile

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"freelahub/internal/domain"
	"freelahub/internal/middleware"
	"freelahub/internal/pkg/logger"
	"freelahub/internal/pkg/response"
	"freelahub/internal/pkg/validator"
)

const completedMessage = "Perfil completado com sucesso."

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/profile")
	{
		g.POST("/complete-empresa", h.CompleteCompany)
		g.POST("/complete-freelancer", h.CompleteFreelancer)
		g.GET("/check-completion", h.CheckCompletion)
		g.GET("/me", h.GetMine)
	}
}

// CompleteCompany stores the CNPJ and company details. Only empresa
// accounts may call it; others get 401.
func (h *Handler) CompleteCompany(c *gin.Context) {
	userID, ok := h.requireRole(c, domain.RoleCompany)
	if !ok {
		return
	}

	var req CompleteCompanyRequest
	if errs := validator.BindJSON(c, &req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	err := h.service.CompleteCompany(c.Request.Context(), userID, middleware.Role(c), req)
	h.writeCompletion(c, err)
}

func (h *Handler) CompleteFreelancer(c *gin.Context) {
	userID, ok := h.requireRole(c, domain.RoleFreelancer)
	if !ok {
		return
	}

	var req CompleteFreelancerRequest
	if errs := validator.BindJSON(c, &req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	err := h.service.CompleteFreelancer(c.Request.Context(), userID, middleware.Role(c), req)
	h.writeCompletion(c, err)
}

func (h *Handler) CheckCompletion(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	complete, err := h.service.IsComplete(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}
		logger.Error(c.Request.Context(), "check completion failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to check profile")
		return
	}

	response.Success(c, http.StatusOK, CompletionStatus{IsComplete: complete})
}

func (h *Handler) GetMine(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	mine, err := h.service.GetMine(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		case errors.Is(err, ErrProfileNotFound):
			response.Error(c, http.StatusNotFound, "PROFILE_NOT_FOUND", "Profile not found")
		default:
			logger.Error(c.Request.Context(), "get profile failed", zap.Error(err))
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load profile")
		}
		return
	}

	response.Success(c, http.StatusOK, mine)
}

func (h *Handler) requireRole(c *gin.Context, role domain.Role) (int64, bool) {
	userID := middleware.UserID(c)
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return 0, false
	}
	if middleware.Role(c) != role {
		response.Error(c, http.StatusUnauthorized, "ROLE_MISMATCH", "This profile does not match your account type")
		return 0, false
	}
	return userID, true
}

func (h *Handler) writeCompletion(c *gin.Context, err error) {
	if err == nil {
		response.Success(c, http.StatusOK, gin.H{"message": completedMessage})
		return
	}

	switch {
	case errors.Is(err, ErrRoleMismatch), errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusUnauthorized, "ROLE_MISMATCH", "This profile does not match your account type")
	case errors.Is(err, ErrInvalidIdentifier):
		response.Error(c, http.StatusBadRequest, "INVALID_DOCUMENT", "CPF/CNPJ is invalid")
	case errors.Is(err, ErrNoSkills):
		response.ValidationError(c, map[string]string{"habilidades": "must have at least one skill"})
	case errors.Is(err, ErrProfileNotFound):
		response.Error(c, http.StatusNotFound, "PROFILE_NOT_FOUND", "Profile not found")
	default:
		logger.Error(c.Request.Context(), "profile completion failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save profile")
	}
}
