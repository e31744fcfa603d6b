package core

import (
	"context"
	"fmt"

	temporalclient "go.temporal.io/sdk/client"
)

// TaskQueue is the Temporal task queue shared by the API and the worker.
const TaskQueue = "portal-tasks"

// startVerification launches the document verification workflow for an
// application. The workflow ID is derived from the application identifier so
// a retried submission cannot spawn a second pipeline for the same
// application.
func startVerification(ctx context.Context, tc temporalclient.Client, applicationID string) error {
	_, err := tc.ExecuteWorkflow(ctx, temporalclient.StartWorkflowOptions{
		ID:        fmt.Sprintf("verify-%s", applicationID),
		TaskQueue: TaskQueue,
	}, "VerifyApplicationWorkflow", applicationID)
	if err != nil {
		return fmt.Errorf("start VerifyApplicationWorkflow: %w", err)
	}
	return nil
}
