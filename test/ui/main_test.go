package ui

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/ternarybob/shopcheck/test/common"
)

// TestMain probes the target before any browser starts. An unhealthy
// target aborts the suite when the configuration says failures are hard,
// otherwise the suite runs and individual tests report what they find.
func TestMain(m *testing.M) {
	env, err := common.Environment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup test environment: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	health := common.CheckHealth(ctx, env.Config)
	cancel()

	if !health.Healthy {
		if env.Config.FailOnHealthCheck {
			fmt.Fprintf(os.Stderr, "✗ Target unhealthy, aborting: %s\n", health.Detail)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "⚠ Target unhealthy, continuing: %s\n", health.Detail)
	} else {
		fmt.Fprintf(os.Stderr, "✓ Target healthy (%d), login form present\n", health.StatusCode)
	}

	os.Exit(m.Run())
}
