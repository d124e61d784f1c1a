package billing

import "context"

type Repository interface {
	CreateAdjustment(ctx context.Context, adjustment *Adjustment) error

	// GrantCredit inserts the credit transaction and increments the
	// subscription's available-credit counter atomically.
	GrantCredit(ctx context.Context, tx *CreditTransaction) error
}
