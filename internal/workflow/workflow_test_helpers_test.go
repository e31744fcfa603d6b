package workflow

import (
	"go.temporal.io/sdk/testsuite"

	"github.com/meera/certportal/internal/activity"
)

// registerActivities registers all activity structs so tests can mock them
// by name with OnActivity.
func registerActivities(env *testsuite.TestWorkflowEnvironment) {
	env.RegisterActivity(&activity.PortalDB{})
}
