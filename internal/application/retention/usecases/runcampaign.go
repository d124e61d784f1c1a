package usecases

import (
	"context"

	"github.com/hearth-labs/hearth/internal/domain/retention"
	"github.com/hearth-labs/hearth/internal/shared/logger"
)

// CampaignError records one customer's failure in a manual campaign run.
type CampaignError struct {
	CustomerID uint   `json:"customer_id"`
	Error      string `json:"error"`
}

// CampaignRunResult is the outcome of a manual campaign invocation.
type CampaignRunResult struct {
	Success   bool            `json:"success"`
	Processed int             `json:"processed"`
	Failed    int             `json:"failed"`
	Errors    []CampaignError `json:"errors,omitempty"`
}

// RunCampaignUseCase executes one retention action against an explicit list
// of customers, e.g. from the admin dashboard. Failures are collected per
// customer; a missing user is a failure entry, not an abort.
type RunCampaignUseCase struct {
	executeAction *ExecuteActionUseCase
	logger        logger.Interface
}

func NewRunCampaignUseCase(executeAction *ExecuteActionUseCase, logger logger.Interface) *RunCampaignUseCase {
	return &RunCampaignUseCase{
		executeAction: executeAction,
		logger:        logger,
	}
}

// Execute runs the action for each customer in order.
func (uc *RunCampaignUseCase) Execute(ctx context.Context, action retention.Action, customerIDs []uint) CampaignRunResult {
	result := CampaignRunResult{}

	for _, customerID := range customerIDs {
		if err := uc.executeAction.Execute(ctx, action, customerID, retention.WorkflowManual); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, CampaignError{
				CustomerID: customerID,
				Error:      err.Error(),
			})
			continue
		}
		result.Processed++
	}

	result.Success = result.Failed == 0

	uc.logger.Infow("manual retention campaign completed",
		"action", action,
		"processed", result.Processed,
		"failed", result.Failed,
	)

	return result
}
