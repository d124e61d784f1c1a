package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hearth-labs/hearth/internal/application/churn"
	"github.com/hearth-labs/hearth/internal/shared/errors"
	"github.com/hearth-labs/hearth/internal/shared/logger"
	"github.com/hearth-labs/hearth/internal/shared/utils"
)

// SweepGuard is the cross-instance lock shared with the scheduler, so a
// manually triggered sweep cannot run concurrently with a scheduled one.
// A nil guard disables the check.
type SweepGuard interface {
	TryLock(ctx context.Context, job string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, job string) error
}

const rescoreLockTTL = 15 * time.Minute

type ChurnHandler struct {
	churnService *churn.Service
	guard        SweepGuard
	logger       logger.Interface
}

func NewChurnHandler(churnService *churn.Service, guard SweepGuard) *ChurnHandler {
	return &ChurnHandler{
		churnService: churnService,
		guard:        guard,
		logger:       logger.NewLogger(),
	}
}

// acquireSweepLock claims the named sweep lock. A guard backend failure is
// logged and treated as acquired, matching the scheduler's behavior.
func acquireSweepLock(c *gin.Context, guard SweepGuard, log logger.Interface, job string, ttl time.Duration) (release func(), ok bool) {
	if guard == nil {
		return func() {}, true
	}

	acquired, err := guard.TryLock(c.Request.Context(), job, ttl)
	if err != nil {
		log.Warnw("sweep lock check failed, proceeding", "job", job, "error", err)
		return func() {}, true
	}
	if !acquired {
		utils.AppErrorResponse(c, errors.NewConflictError("a "+job+" sweep is already running"))
		return nil, false
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := guard.Unlock(ctx, job); err != nil {
			log.Warnw("failed to release sweep lock", "job", job, "error", err)
		}
	}, true
}

func parseUserID(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid customer id", raw)
	}
	return uint(id), nil
}

// GetAssessment scores one customer on demand.
func (h *ChurnHandler) GetAssessment(c *gin.Context) {
	userID, err := parseUserID(c)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	assessment, err := h.churnService.AssessSubscriber(c.Request.Context(), userID)
	if err != nil {
		h.logger.Errorw("failed to assess customer", "user_id", userID, "error", err)
		utils.AppErrorResponse(c, err)
		return
	}

	utils.OKResponse(c, assessment)
}

// Rescore sweeps every active subscription and persists fresh scores.
func (h *ChurnHandler) Rescore(c *gin.Context) {
	release, ok := acquireSweepLock(c, h.guard, h.logger, "rescore", rescoreLockTTL)
	if !ok {
		return
	}
	defer release()

	summary, err := h.churnService.RescoreAll(c.Request.Context())
	if err != nil {
		h.logger.Errorw("rescore sweep failed", "error", err)
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Rescore completed", summary)
}

// GetReport returns the portfolio-wide churn prevention report.
func (h *ChurnHandler) GetReport(c *gin.Context) {
	report, err := h.churnService.GenerateReport(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to generate prevention report", "error", err)
		utils.AppErrorResponse(c, err)
		return
	}

	utils.OKResponse(c, report)
}
