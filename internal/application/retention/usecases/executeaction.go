package usecases

import (
	"context"
	"fmt"

	"github.com/hearth-labs/hearth/internal/domain/billing"
	"github.com/hearth-labs/hearth/internal/domain/retention"
	"github.com/hearth-labs/hearth/internal/domain/subscription"
	"github.com/hearth-labs/hearth/internal/domain/user"
	apperrors "github.com/hearth-labs/hearth/internal/shared/errors"
	"github.com/hearth-labs/hearth/internal/shared/logger"
)

// ActionAmounts holds the fixed dollar amounts retention actions apply.
type ActionAmounts struct {
	Discount float64
	Credit   float64
}

// ExecuteActionUseCase performs a single retention intervention for one
// customer and records it in the durable attempt log, delivered or not.
type ExecuteActionUseCase struct {
	userRepo         user.Repository
	subscriptionRepo subscription.Repository
	billingRepo      billing.Repository
	attemptRepo      retention.AttemptRepository
	email            EmailSender
	sms              SMSSender
	calls            CallScheduler
	amounts          ActionAmounts
	logger           logger.Interface
}

func NewExecuteActionUseCase(
	userRepo user.Repository,
	subscriptionRepo subscription.Repository,
	billingRepo billing.Repository,
	attemptRepo retention.AttemptRepository,
	email EmailSender,
	sms SMSSender,
	calls CallScheduler,
	amounts ActionAmounts,
	logger logger.Interface,
) *ExecuteActionUseCase {
	return &ExecuteActionUseCase{
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		billingRepo:      billingRepo,
		attemptRepo:      attemptRepo,
		email:            email,
		sms:              sms,
		calls:            calls,
		amounts:          amounts,
		logger:           logger,
	}
}

// Execute performs one action for one user. The returned error reflects the
// action outcome; the audit record is written either way.
func (uc *ExecuteActionUseCase) Execute(ctx context.Context, action retention.Action, userID uint, workflow retention.Workflow) error {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if u == nil {
		return apperrors.NewNotFoundError("user not found", fmt.Sprintf("user_id=%d", userID))
	}

	actionErr := uc.dispatch(ctx, action, u, workflow)
	uc.recordAttempt(ctx, action, userID, workflow, actionErr)

	if actionErr != nil {
		return actionErr
	}

	uc.logger.Infow("retention action executed",
		"action", action,
		"user_id", userID,
		"workflow", workflow,
	)
	return nil
}

func (uc *ExecuteActionUseCase) dispatch(ctx context.Context, action retention.Action, u *user.User, workflow retention.Workflow) error {
	switch action {
	case retention.ActionEmail:
		// The high band runs the win-back sequence; everywhere else sends
		// the standard check-in email.
		send := uc.email.SendRetentionEmail
		if workflow == retention.WorkflowHighBand {
			send = uc.email.SendWinBackEmail
		}
		if err := send(u.Email(), u.Name()); err != nil {
			return fmt.Errorf("failed to send retention email: %w", err)
		}
		return nil

	case retention.ActionCall:
		// The SMS heads-up is fire-and-forget; the call booking is the action.
		if u.Phone() != "" {
			if err := uc.sms.SendRetentionSMS(ctx, u.Phone(), "Your Hearth care team would like to check in. We'll call you shortly."); err != nil {
				uc.logger.Warnw("retention sms failed", "user_id", u.ID(), "error", err)
			}
		}
		if err := uc.calls.ScheduleRetentionCall(ctx, u.ID(), u.Name(), u.Phone()); err != nil {
			return fmt.Errorf("failed to schedule retention call: %w", err)
		}
		return nil

	case retention.ActionDiscount:
		adjustment, err := billing.NewAdjustment(u.ID(), uc.amounts.Discount, "retention discount")
		if err != nil {
			return err
		}
		if err := uc.billingRepo.CreateAdjustment(ctx, adjustment); err != nil {
			return fmt.Errorf("failed to create billing adjustment: %w", err)
		}
		return nil

	case retention.ActionCredit:
		sub, err := uc.subscriptionRepo.GetActiveByUserID(ctx, u.ID())
		if err != nil {
			return fmt.Errorf("failed to load subscription: %w", err)
		}
		if sub == nil {
			return apperrors.NewNotFoundError("no active subscription to credit", fmt.Sprintf("user_id=%d", u.ID()))
		}
		tx, err := billing.NewCreditTransaction(u.ID(), sub.ID(), uc.amounts.Credit, "retention")
		if err != nil {
			return err
		}
		if err := uc.billingRepo.GrantCredit(ctx, tx); err != nil {
			return fmt.Errorf("failed to grant credit: %w", err)
		}
		return nil

	default:
		return apperrors.NewValidationError("unknown retention action", string(action))
	}
}

// recordAttempt appends to the audit trail. A failed audit write is logged
// but never masks the action outcome.
func (uc *ExecuteActionUseCase) recordAttempt(ctx context.Context, action retention.Action, userID uint, workflow retention.Workflow, actionErr error) {
	var attempt *retention.Attempt
	var err error

	if actionErr != nil {
		attempt, err = retention.NewFailedAttempt(userID, action, workflow, actionErr)
	} else {
		metadata := map[string]interface{}{}
		switch action {
		case retention.ActionDiscount:
			metadata["amount"] = uc.amounts.Discount
		case retention.ActionCredit:
			metadata["amount"] = uc.amounts.Credit
		}
		attempt, err = retention.NewAttempt(userID, action, workflow, metadata)
	}
	if err != nil {
		uc.logger.Errorw("failed to build retention attempt record", "user_id", userID, "error", err)
		return
	}

	if err := uc.attemptRepo.Create(ctx, attempt); err != nil {
		uc.logger.Errorw("failed to persist retention attempt", "user_id", userID, "error", err)
	}
}
