package project

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"freelahub/internal/middleware"
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

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.GET("/projects", h.List)
	v1.GET("/projects/:id", h.Get)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	company := protected.Group("/projects", middleware.CompanyOnly())
	{
		company.POST("", h.Create)
		company.GET("/mine", h.ListMine)
		company.POST("/:id/close", h.Close)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if errs := validator.BindJSON(c, &req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	p, err := h.service.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) List(c *gin.Context) {
	var q ListProjectsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationError(c, map[string]string{"query": "invalid query parameters"})
		return
	}
	if errs := validator.Validate(q); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	page, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, page)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

func (h *Handler) ListMine(c *gin.Context) {
	items, err := h.service.ListMine(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Close(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	p, err := h.service.Close(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrProjectNotFound):
		response.Error(c, http.StatusNotFound, "PROJECT_NOT_FOUND", "Project not found")
	case errors.Is(err, ErrNotProjectOwner):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this project")
	case errors.Is(err, ErrInvalidDeadline):
		response.ValidationError(c, map[string]string{"prazo": err.Error()})
	case errors.Is(err, ErrInvalidBudgetRange):
		response.ValidationError(c, map[string]string{"orcamento_min": err.Error()})
	default:
		logger.Error(c.Request.Context(), "project request failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process project request")
	}
}
