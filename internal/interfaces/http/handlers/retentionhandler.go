package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hearth-labs/hearth/internal/application/retention"
	retentiondomain "github.com/hearth-labs/hearth/internal/domain/retention"
	"github.com/hearth-labs/hearth/internal/shared/errors"
	"github.com/hearth-labs/hearth/internal/shared/logger"
	"github.com/hearth-labs/hearth/internal/shared/utils"
)

const campaignLockTTL = time.Hour

type RetentionHandler struct {
	retentionService *retention.Service
	guard            SweepGuard
	logger           logger.Interface
}

func NewRetentionHandler(retentionService *retention.Service, guard SweepGuard) *RetentionHandler {
	return &RetentionHandler{
		retentionService: retentionService,
		guard:            guard,
		logger:           logger.NewLogger(),
	}
}

type ExecuteActionRequest struct {
	CustomerID uint   `json:"customer_id" binding:"required"`
	Action     string `json:"action" binding:"required,oneof=email sms call discount credit"`
}

type RunCampaignRequest struct {
	Action      string `json:"action" binding:"required,oneof=email sms call discount credit"`
	CustomerIDs []uint `json:"customer_ids" binding:"required,min=1,dive,gt=0"`
}

// ExecuteAction performs one retention action against one customer.
func (h *RetentionHandler) ExecuteAction(c *gin.Context) {
	var req ExecuteActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for retention action", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	action, err := retentiondomain.ParseAction(req.Action)
	if err != nil {
		utils.AppErrorResponse(c, errors.NewValidationError(err.Error()))
		return
	}

	if err := h.retentionService.ExecuteAction(c.Request.Context(), action, req.CustomerID); err != nil {
		h.logger.Errorw("retention action failed",
			"customer_id", req.CustomerID,
			"action", action,
			"error", err)
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Retention action executed", gin.H{
		"customer_id": req.CustomerID,
		"action":      action,
	})
}

// RunCampaign executes one action against an explicit customer list. Per-item
// failures are reported in the body rather than failing the whole request.
func (h *RetentionHandler) RunCampaign(c *gin.Context) {
	var req RunCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for campaign", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	action, err := retentiondomain.ParseAction(req.Action)
	if err != nil {
		utils.AppErrorResponse(c, errors.NewValidationError(err.Error()))
		return
	}

	result := h.retentionService.RunCampaign(c.Request.Context(), action, req.CustomerIDs)
	utils.OKResponse(c, result)
}

// RunSweep triggers the scheduled high-risk campaign immediately. It shares
// the campaign sweep lock with the scheduler.
func (h *RetentionHandler) RunSweep(c *gin.Context) {
	release, ok := acquireSweepLock(c, h.guard, h.logger, "campaign", campaignLockTTL)
	if !ok {
		return
	}
	defer release()

	summary, err := h.retentionService.RunCampaignSweep(c.Request.Context())
	if err != nil {
		h.logger.Errorw("campaign sweep failed", "error", err)
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Campaign sweep completed", summary)
}

// GetStats aggregates the attempt audit trail over a trailing window.
func (h *RetentionHandler) GetStats(c *gin.Context) {
	windowDays := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			utils.ErrorResponse(c, http.StatusBadRequest, "days must be a non-negative integer")
			return
		}
		windowDays = parsed
	}

	stats, err := h.retentionService.Stats(c.Request.Context(), windowDays)
	if err != nil {
		h.logger.Errorw("failed to aggregate retention stats", "error", err)
		utils.AppErrorResponse(c, err)
		return
	}

	utils.OKResponse(c, stats)
}

type attemptDTO struct {
	ID           uint                   `json:"id"`
	CustomerID   uint                   `json:"customer_id"`
	Action       string                 `json:"action"`
	Workflow     string                 `json:"workflow"`
	Status       string                 `json:"status"`
	ErrorMessage *string                `json:"error_message,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

// ListAttempts returns the most recent retention attempts for a customer.
func (h *RetentionHandler) ListAttempts(c *gin.Context) {
	userID, err := parseUserID(c)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 100 {
			utils.ErrorResponse(c, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = parsed
	}

	attempts, err := h.retentionService.Attempts(c.Request.Context(), userID, limit)
	if err != nil {
		h.logger.Errorw("failed to list retention attempts", "user_id", userID, "error", err)
		utils.AppErrorResponse(c, err)
		return
	}

	dtos := make([]attemptDTO, 0, len(attempts))
	for _, attempt := range attempts {
		dtos = append(dtos, attemptDTO{
			ID:           attempt.ID(),
			CustomerID:   attempt.UserID(),
			Action:       string(attempt.Action()),
			Workflow:     string(attempt.Workflow()),
			Status:       string(attempt.Status()),
			ErrorMessage: attempt.ErrorMessage(),
			Metadata:     attempt.Metadata(),
			CreatedAt:    attempt.CreatedAt(),
		})
	}

	utils.OKResponse(c, dtos)
}
