package candidacy

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"freelahub/internal/domain"
	"freelahub/internal/middleware"
	"freelahub/internal/modules/project"
	"freelahub/internal/pkg/logger"
	"freelahub/internal/pkg/response"
	"freelahub/internal/pkg/utils"
	"freelahub/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.POST("/projects/:id/candidacies", middleware.FreelancerOnly(), h.Apply)
	protected.GET("/projects/:id/candidacies", middleware.CompanyOnly(), h.ListForProject)

	candidacies := protected.Group("/candidacies")
	{
		candidacies.GET("/mine", middleware.FreelancerOnly(), h.ListMine)
		candidacies.DELETE("/:id", middleware.FreelancerOnly(), h.Withdraw)
		candidacies.POST("/:id/decision", middleware.CompanyOnly(), h.Decide)
	}
}

func (h *Handler) Apply(c *gin.Context) {
	projectID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req ApplyRequest
	if errs := validator.BindJSON(c, &req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	cand, err := h.service.Apply(c.Request.Context(), middleware.UserID(c), projectID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, cand)
}

func (h *Handler) ListMine(c *gin.Context) {
	out, err := h.service.ListMine(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) ListForProject(c *gin.Context) {
	projectID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	out, err := h.service.ListForProject(c.Request.Context(), middleware.UserID(c), projectID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) Decide(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req DecisionRequest
	if errs := validator.BindJSON(c, &req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	cand, err := h.service.Decide(c.Request.Context(), middleware.UserID(c), id, domain.CandidacyStatus(req.Status))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cand)
}

func (h *Handler) Withdraw(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	cand, err := h.service.Withdraw(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cand)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrCandidacyNotFound):
		response.Error(c, http.StatusNotFound, "CANDIDACY_NOT_FOUND", "Candidacy not found")
	case errors.Is(err, project.ErrProjectNotFound):
		response.Error(c, http.StatusNotFound, "PROJECT_NOT_FOUND", "Project not found")
	case errors.Is(err, project.ErrNotProjectOwner), errors.Is(err, ErrNotCandidacyOwner):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrAlreadyApplied):
		response.Error(c, http.StatusConflict, "ALREADY_APPLIED", "You already applied to this project")
	case errors.Is(err, ErrProjectClosed):
		response.Error(c, http.StatusConflict, "PROJECT_CLOSED", "Project is not accepting candidacies")
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS", "Candidacy is no longer pending")
	default:
		logger.Error(c.Request.Context(), "candidacy request failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process candidacy request")
	}
}
