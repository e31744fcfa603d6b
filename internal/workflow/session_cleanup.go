package workflow

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// CleanupExpiredSessionsWorkflow runs hourly and purges login sessions past
// their expiry. Expired sessions are already unusable; this keeps the table
// from growing without bound.
func CleanupExpiredSessionsWorkflow(ctx workflow.Context) error {
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 2,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	var deleted int64
	err := workflow.ExecuteActivity(ctx, "DeleteExpiredSessions").Get(ctx, &deleted)
	if err != nil {
		return fmt.Errorf("delete expired sessions: %w", err)
	}

	if deleted > 0 {
		workflow.GetLogger(ctx).Info("purged expired sessions", "count", deleted)
	}
	return nil
}
