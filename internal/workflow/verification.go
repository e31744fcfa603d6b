package workflow

import (
	"encoding/json"
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/meera/certportal/internal/activity"
	"github.com/meera/certportal/internal/model"
)

// VerifyApplicationWorkflow runs the document verification pipeline for a
// submitted application: it moves the application to DOCUMENT_VERIFICATION,
// checks each attached document, records the aggregate result, and hands the
// application over to OFFICIAL_APPROVAL.
//
// The workflow is safe to re-run: an application already past verification is
// left untouched.
func VerifyApplicationWorkflow(ctx workflow.Context, applicationID string) error {
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 1 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts:    3,
			InitialInterval:    1 * time.Second,
			MaximumInterval:    10 * time.Second,
			BackoffCoefficient: 2.0,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	var app model.Application
	err := workflow.ExecuteActivity(ctx, "GetApplicationByApplicationID", applicationID).Get(ctx, &app)
	if err != nil {
		return fmt.Errorf("get application %s: %w", applicationID, err)
	}

	// Only freshly submitted applications enter the pipeline. A replayed or
	// duplicate start against an application that already moved on is a no-op.
	if app.Status != model.AppStatusPending {
		return nil
	}

	// Applications without documents stay PENDING for manual handling.
	if len(app.DocumentIDs) == 0 {
		return nil
	}

	err = workflow.ExecuteActivity(ctx, "UpdateApplicationStatus", activity.UpdateApplicationStatusParams{
		ApplicationID: applicationID,
		Status:        model.AppStatusDocumentVerification,
	}).Get(ctx, nil)
	if err != nil {
		return fmt.Errorf("set application %s to document verification: %w", applicationID, err)
	}

	var verified []model.DocumentVerification
	for _, docID := range app.DocumentIDs {
		var doc *model.Document
		err = workflow.ExecuteActivity(ctx, "GetDocumentByID", docID).Get(ctx, &doc)
		if err != nil {
			return fmt.Errorf("get document %s: %w", docID, err)
		}
		// Dangling document references are skipped rather than failing the
		// whole application.
		if doc == nil {
			continue
		}

		details, _ := json.Marshal(map[string]string{
			"message": "Document verified successfully",
		})
		err = workflow.ExecuteActivity(ctx, "MarkDocumentVerified", activity.MarkDocumentVerifiedParams{
			DocumentID: doc.ID,
			Details:    details,
		}).Get(ctx, nil)
		if err != nil {
			return fmt.Errorf("mark document %s verified: %w", docID, err)
		}

		verified = append(verified, model.DocumentVerification{
			DocumentID:   doc.ID,
			DocumentType: doc.DocumentType,
			Verified:     true,
		})
	}

	result, err := json.Marshal(model.VerificationResult{Documents: verified})
	if err != nil {
		return fmt.Errorf("marshal verification result: %w", err)
	}
	err = workflow.ExecuteActivity(ctx, "SetVerificationResult", activity.SetVerificationResultParams{
		ApplicationID: applicationID,
		Result:        result,
	}).Get(ctx, nil)
	if err != nil {
		return fmt.Errorf("store verification result for %s: %w", applicationID, err)
	}

	err = workflow.ExecuteActivity(ctx, "UpdateApplicationStatus", activity.UpdateApplicationStatusParams{
		ApplicationID: applicationID,
		Status:        model.AppStatusOfficialApproval,
	}).Get(ctx, nil)
	if err != nil {
		return fmt.Errorf("set application %s to official approval: %w", applicationID, err)
	}

	return nil
}
