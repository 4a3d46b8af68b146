package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/phuslu/log"

	"github.com/ternarybob/shopcheck/internal/report"
)

// Options controls one runner invocation.
type Options struct {
	// OutputDir is the run directory all artifacts go into.
	OutputDir string
	// Shards overrides the per-suite shard count when > 0.
	Shards int
	// ShardIndex limits execution to a single zero-based shard when >= 0.
	// Used by CI jobs that each own one slice of the run.
	ShardIndex int
	// Tags filters the plan to suites carrying any of these tags.
	Tags []string
	// Env is appended to the child process environment.
	Env []string
	// Logger receives runner progress. Required.
	Logger log.Logger
}

// Execute runs every planned suite and returns the collected run. The
// returned error covers runner failures only; test failures are reported
// through the run itself.
func Execute(ctx context.Context, plan *Plan, runID string, opts Options) (*report.Run, error) {
	absOutput, err := filepath.Abs(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory: %w", err)
	}
	if err := os.MkdirAll(absOutput, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	run := &report.Run{
		RunID:   runID,
		Started: time.Now(),
	}

	suites := plan.Filter(opts.Tags)
	if len(suites) == 0 {
		return nil, fmt.Errorf("no suites match tags %v", opts.Tags)
	}

	for _, suite := range suites {
		shards := suite.Shards
		if opts.Shards > 0 {
			shards = opts.Shards
		}
		if shards < 1 {
			shards = 1
		}

		for index := 0; index < shards; index++ {
			if opts.ShardIndex >= 0 && index != opts.ShardIndex {
				continue
			}

			opts.Logger.Info().
				Str("suite", suite.Name).
				Str("package", suite.Package).
				Int("shard", index+1).
				Int("shards", shards).
				Msg("Running suite")

			result := runShard(ctx, suite, index, shards, absOutput, opts.Env)
			run.Suites = append(run.Suites, result)

			passed, failed, skipped := result.Counts()
			event := opts.Logger.Info()
			if failed > 0 {
				event = opts.Logger.Warn()
			}
			event.
				Str("suite", suite.Name).
				Int("passed", passed).
				Int("failed", failed).
				Int("skipped", skipped).
				Float64("seconds", result.Duration.Seconds()).
				Msg("Suite finished")
		}
	}

	run.Duration = time.Since(run.Started)
	return run, nil
}

// runShard spawns one `go test` process for a suite shard and parses its
// JSON event stream into a suite result.
func runShard(ctx context.Context, suite Suite, index, total int, outputDir string, extraEnv []string) report.SuiteResult {
	started := time.Now()

	args := []string{"test", "-json", "-count=1"}
	if len(suite.Tags) > 0 {
		args = append(args, "-tags", strings.Join(suite.Tags, ","))
	}
	if suite.Timeout != "" {
		args = append(args, "-timeout", suite.Timeout)
	}
	args = append(args, suite.Package)

	cmd := exec.CommandContext(ctx, "go", args...)
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("SHOPCHECK_OUTPUT_DIR=%s", outputDir),
		fmt.Sprintf("SHOPCHECK_SHARD_INDEX=%d", index),
		fmt.Sprintf("SHOPCHECK_SHARD_TOTAL=%d", total),
	)
	cmd.Env = append(cmd.Env, extraEnv...)

	output, runErr := cmd.Output()

	result := report.SuiteResult{
		Name:     suite.Name,
		Duration: time.Since(started),
		Cases:    parseTestEvents(output),
	}
	if total > 1 {
		result.Shard = fmt.Sprintf("%d/%d", index+1, total)
	}

	// Keep the raw stream for debugging alongside the reports.
	logName := fmt.Sprintf("%s.log", suite.Name)
	if total > 1 {
		logName = fmt.Sprintf("%s-shard%d.log", suite.Name, index+1)
	}
	_ = os.WriteFile(filepath.Join(outputDir, logName), output, 0644)

	// A non-zero exit with no parsed failures means the package did not
	// run at all (compile error, missing binary). Surface that as a case
	// so the run does not silently pass.
	if runErr != nil && !result.Failed() {
		message := runErr.Error()
		if exitErr, ok := runErr.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			message = strings.TrimSpace(string(exitErr.Stderr))
		}
		result.Cases = append(result.Cases, report.CaseResult{
			Name:    suite.Name + " (setup)",
			Status:  report.StatusFailed,
			Message: message,
		})
	}
	return result
}

// testEvent is one line of the `go test -json` stream.
type testEvent struct {
	Action  string  `json:"Action"`
	Test    string  `json:"Test"`
	Elapsed float64 `json:"Elapsed"`
	Output  string  `json:"Output"`
}

// parseTestEvents folds a JSON event stream into per-test case results.
// Package-level events and unparseable lines are ignored.
func parseTestEvents(stream []byte) []report.CaseResult {
	type caseState struct {
		status   string
		elapsed  float64
		messages []string
	}
	states := make(map[string]*caseState)
	var order []string

	for _, line := range bytes.Split(stream, []byte("\n")) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var event testEvent
		if err := json.Unmarshal(line, &event); err != nil {
			continue
		}
		if event.Test == "" {
			continue
		}

		state, ok := states[event.Test]
		if !ok {
			state = &caseState{}
			states[event.Test] = state
			order = append(order, event.Test)
		}

		switch event.Action {
		case "pass":
			state.status = report.StatusPassed
			state.elapsed = event.Elapsed
		case "fail":
			state.status = report.StatusFailed
			state.elapsed = event.Elapsed
		case "skip":
			state.status = report.StatusSkipped
			state.elapsed = event.Elapsed
		case "output":
			if text := strings.TrimSpace(event.Output); text != "" && !strings.HasPrefix(text, "===") && !strings.HasPrefix(text, "---") {
				state.messages = append(state.messages, text)
			}
		}
	}

	var cases []report.CaseResult
	for _, name := range order {
		state := states[name]
		if state.status == "" {
			// Never reached a terminal event, treat as failed.
			state.status = report.StatusFailed
		}
		result := report.CaseResult{
			Name:     name,
			Status:   state.status,
			Duration: time.Duration(state.elapsed * float64(time.Second)),
		}
		if state.status != report.StatusPassed {
			result.Message = caseMessage(state.messages)
		}
		cases = append(cases, result)
	}

	// Subtests interleave in the stream, keep the report stable.
	sort.SliceStable(cases, func(i, j int) bool { return cases[i].Name < cases[j].Name })
	return cases
}

// caseMessage joins the last few output lines of a non-passing test.
func caseMessage(lines []string) string {
	const keep = 5
	if len(lines) > keep {
		lines = lines[len(lines)-keep:]
	}
	return strings.Join(lines, "\n")
}
