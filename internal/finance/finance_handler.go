package finance

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/shared/apperror"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("finance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("finance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("finance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) CreateEntry(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := c.GetString("employee_id")
	h.logger.Debug("http create finance entry", zap.String("company_id", companyID))
	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create finance entry validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.CreateEntry(c.Request.Context(), companyID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetEntries(c *gin.Context) {
	companyID := c.GetString("company_id")
	month := c.Query("month")
	h.logger.Debug("http get finance entries",
		zap.String("company_id", companyID),
		zap.String("month", month),
	)

	resp, err := h.service.GetEntries(c.Request.Context(), companyID, month)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetEntryById(c *gin.Context) {
	companyID := c.GetString("company_id")
	id := c.Param("id")
	h.logger.Debug("http get finance entry by id",
		zap.String("company_id", companyID),
		zap.String("entry_id", id),
	)

	resp, err := h.service.GetEntryByID(c.Request.Context(), companyID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteEntry(c *gin.Context) {
	companyID := c.GetString("company_id")
	id := c.Param("id")
	h.logger.Debug("http delete finance entry",
		zap.String("company_id", companyID),
		zap.String("entry_id", id),
	)

	if err := h.service.DeleteEntry(c.Request.Context(), companyID, id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) GetMonthlySummary(c *gin.Context) {
	companyID := c.GetString("company_id")
	month := c.Query("month")
	h.logger.Debug("http monthly finance summary",
		zap.String("company_id", companyID),
		zap.String("month", month),
	)

	resp, err := h.service.GetMonthlySummary(c.Request.Context(), companyID, month)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
