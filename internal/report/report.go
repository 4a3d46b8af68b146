// Package report models one suite run and writes the result artifacts:
// JSON and JUnit XML for machines, an HTML page and a console table for
// humans. Everything goes to the run's fixed output directory.
package report

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Case status values.
const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// CaseResult is the outcome of a single test.
type CaseResult struct {
	Name     string        `json:"name"`
	Status   string        `json:"status"`
	Duration time.Duration `json:"duration_ns"`
	Message  string        `json:"message,omitempty"`
}

// SuiteResult is the outcome of one suite (one test binary invocation).
type SuiteResult struct {
	Name     string        `json:"name"`
	Shard    string        `json:"shard,omitempty"`
	Duration time.Duration `json:"duration_ns"`
	Cases    []CaseResult  `json:"cases"`
}

// Counts returns the per-status totals of a suite.
func (s *SuiteResult) Counts() (passed, failed, skipped int) {
	for _, c := range s.Cases {
		switch c.Status {
		case StatusPassed:
			passed++
		case StatusFailed:
			failed++
		case StatusSkipped:
			skipped++
		}
	}
	return
}

// Failed reports whether any case in the suite failed.
func (s *SuiteResult) Failed() bool {
	_, failed, _ := s.Counts()
	return failed > 0
}

// Artifacts records the capture modes a run was configured with, so a
// reader of the report knows which artifacts to expect next to it.
type Artifacts struct {
	ScreenshotMode string `json:"screenshot_mode"`
	VideoMode      string `json:"video_mode"`
	TraceMode      string `json:"trace_mode"`
}

// Run is the complete result of one suite run.
type Run struct {
	RunID       string        `json:"run_id"`
	Environment string        `json:"environment"`
	BaseURL     string        `json:"base_url"`
	Started     time.Time     `json:"started"`
	Duration    time.Duration `json:"duration_ns"`
	Artifacts   Artifacts     `json:"artifacts"`
	Suites      []SuiteResult `json:"suites"`
}

// Totals returns the per-status totals across all suites.
func (r *Run) Totals() (passed, failed, skipped int) {
	for i := range r.Suites {
		p, f, s := r.Suites[i].Counts()
		passed += p
		failed += f
		skipped += s
	}
	return
}

// Success reports whether the whole run passed.
func (r *Run) Success() bool {
	_, failed, _ := r.Totals()
	return failed == 0
}

// WriteJSON writes report.json into dir.
func WriteJSON(r *Run, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	path := filepath.Join(dir, "report.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// JUnit XML schema, the subset CI systems consume.
type junitTestSuites struct {
	XMLName  xml.Name         `xml:"testsuites"`
	Name     string           `xml:"name,attr"`
	Tests    int              `xml:"tests,attr"`
	Failures int              `xml:"failures,attr"`
	Skipped  int              `xml:"skipped,attr"`
	Time     string           `xml:"time,attr"`
	Suites   []junitTestSuite `xml:"testsuite"`
}

type junitTestSuite struct {
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Skipped  int             `xml:"skipped,attr"`
	Time     string          `xml:"time,attr"`
	Cases    []junitTestCase `xml:"testcase"`
}

type junitTestCase struct {
	Name    string        `xml:"name,attr"`
	Time    string        `xml:"time,attr"`
	Failure *junitMessage `xml:"failure,omitempty"`
	Skipped *junitMessage `xml:"skipped,omitempty"`
}

type junitMessage struct {
	Message string `xml:"message,attr"`
}

// WriteJUnit writes junit.xml into dir.
func WriteJUnit(r *Run, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	passed, failed, skipped := r.Totals()
	doc := junitTestSuites{
		Name:     "shopcheck",
		Tests:    passed + failed + skipped,
		Failures: failed,
		Skipped:  skipped,
		Time:     junitSeconds(r.Duration),
	}

	for i := range r.Suites {
		suite := &r.Suites[i]
		p, f, s := suite.Counts()
		js := junitTestSuite{
			Name:     suite.Name,
			Tests:    p + f + s,
			Failures: f,
			Skipped:  s,
			Time:     junitSeconds(suite.Duration),
		}
		for _, c := range suite.Cases {
			jc := junitTestCase{Name: c.Name, Time: junitSeconds(c.Duration)}
			switch c.Status {
			case StatusFailed:
				jc.Failure = &junitMessage{Message: c.Message}
			case StatusSkipped:
				jc.Skipped = &junitMessage{Message: c.Message}
			}
			js.Cases = append(js.Cases, jc)
		}
		doc.Suites = append(doc.Suites, js)
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal junit report: %w", err)
	}
	path := filepath.Join(dir, "junit.xml")
	content := append([]byte(xml.Header), data...)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func junitSeconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}

// PrintSummary writes the console table for a run.
func PrintSummary(w io.Writer, r *Run) {
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintln(w, "TEST SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", 80))

	for i := range r.Suites {
		suite := &r.Suites[i]
		status := "PASS"
		if suite.Failed() {
			status = "FAIL"
		}
		name := suite.Name
		if suite.Shard != "" {
			name = fmt.Sprintf("%s (shard %s)", name, suite.Shard)
		}
		fmt.Fprintf(w, "%-40s %s (%.2fs)\n", name, status, suite.Duration.Seconds())
	}

	passed, failed, skipped := r.Totals()
	fmt.Fprintln(w, strings.Repeat("-", 80))
	fmt.Fprintf(w, "Total: %d passed, %d failed, %d skipped (%.2fs)\n",
		passed, failed, skipped, r.Duration.Seconds())

	if r.Success() {
		fmt.Fprintln(w, "\n✓ ALL TESTS PASSED")
	} else {
		fmt.Fprintln(w, "\n✗ SOME TESTS FAILED")
	}
}
