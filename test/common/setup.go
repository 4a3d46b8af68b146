// Shared test framework for both UI and API suites.
package common

import (
	"context"
	"hash/fnv"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/shopcheck/internal/common"
	"github.com/ternarybob/shopcheck/internal/healthcheck"
)

// TestEnvironment holds the shared state of one test process: resolved
// configuration, logger and the directory artifacts go into.
type TestEnvironment struct {
	Config *common.Config
	Logger arbor.ILogger
	RunID  string
	RunDir string
}

var (
	envOnce sync.Once
	env     *TestEnvironment
	envErr  error
)

// Setup returns the process-wide test environment, initializing it on
// first use. Configuration comes from shopcheck.toml (when present) plus
// the environment; the run directory is inherited from the runner via
// SHOPCHECK_OUTPUT_DIR or created under the configured output directory.
func Setup(t *testing.T) *TestEnvironment {
	t.Helper()
	e, err := Environment()
	if err != nil {
		t.Fatalf("Failed to setup test environment: %v", err)
	}
	return e
}

// Environment initializes and returns the shared environment without a
// testing.T, for use from TestMain.
func Environment() (*TestEnvironment, error) {
	envOnce.Do(func() {
		var paths []string
		if _, err := os.Stat("shopcheck.toml"); err == nil {
			paths = append(paths, "shopcheck.toml")
		}

		config, err := common.LoadConfig(paths...)
		if err != nil {
			envErr = err
			return
		}
		common.InitLogger(config)

		// The runner hands down its run identifier so standalone
		// `go test` runs and runner-driven runs name artifacts the
		// same way.
		runID := os.Getenv("SHOPCHECK_RUN_ID")
		if runID == "" {
			runID = common.NewRunID()
		}
		runDir := os.Getenv("SHOPCHECK_OUTPUT_DIR")
		if runDir == "" {
			runDir = filepath.Join(config.OutputDir, runID)
		}
		if err := os.MkdirAll(runDir, 0755); err != nil {
			envErr = err
			return
		}

		env = &TestEnvironment{
			Config: config,
			Logger: common.GetLogger(),
			RunID:  runID,
			RunDir: runDir,
		}
	})
	return env, envErr
}

var (
	healthOnce   sync.Once
	healthResult *healthcheck.Result
)

// CheckHealth probes the target once per process and caches the result,
// so every suite in the binary shares a single pre-flight request.
func CheckHealth(ctx context.Context, config *common.Config) *healthcheck.Result {
	healthOnce.Do(func() {
		healthResult = healthcheck.Run(ctx, config)
	})
	return healthResult
}

// SkipIfNotInShard skips the test unless its name hashes into the shard
// this process owns. Shard membership is stable across runs and machines
// because it depends only on the test name.
func SkipIfNotInShard(t *testing.T) {
	t.Helper()
	total, err := strconv.Atoi(os.Getenv("SHOPCHECK_SHARD_TOTAL"))
	if err != nil || total <= 1 {
		return
	}
	index, err := strconv.Atoi(os.Getenv("SHOPCHECK_SHARD_INDEX"))
	if err != nil || index < 0 || index >= total {
		return
	}
	if ShardFor(t.Name(), total) != index {
		t.Skipf("not in shard %d/%d", index+1, total)
	}
}

// ShardFor returns the shard a test name belongs to.
func ShardFor(name string, total int) int {
	h := fnv.New32a()
	h.Write([]byte(name))
	return int(h.Sum32() % uint32(total))
}

// SanitizeTestName makes a test name safe to use in artifact filenames.
// Subtest separators become underscores like every other special character.
func SanitizeTestName(name string) string {
	return common.SanitizeName(name)
}
