// Package visual saves screenshots into the run's results directory and
// compares captures against stored baselines byte by byte.
package visual

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
)

// Capture takes a viewport screenshot and saves it under
// <dir>/screenshots/<name>-<timestamp>.png. Returns the written path.
func Capture(ctx context.Context, dir, name string) (string, error) {
	var buf []byte
	if err := chromedp.Run(ctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return "", fmt.Errorf("failed to capture screenshot: %w", err)
	}
	return save(dir, name, buf)
}

// CaptureFull takes a full-page screenshot.
func CaptureFull(ctx context.Context, dir, name string) (string, error) {
	var buf []byte
	if err := chromedp.Run(ctx, chromedp.FullScreenshot(&buf, 90)); err != nil {
		return "", fmt.Errorf("failed to capture full screenshot: %w", err)
	}
	return save(dir, name, buf)
}

func save(dir, name string, buf []byte) (string, error) {
	screenshotDir := filepath.Join(dir, "screenshots")
	if err := os.MkdirAll(screenshotDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create screenshots directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	path := filepath.Join(screenshotDir, fmt.Sprintf("%s-%s.png", name, timestamp))
	if err := os.WriteFile(path, buf, 0644); err != nil {
		return "", fmt.Errorf("failed to save screenshot: %w", err)
	}
	return path, nil
}

// Diff is the result of a byte comparison between two captures.
type Diff struct {
	Equal          bool
	DifferingBytes int
	SizeDelta      int
	MatchRatio     float64
	FirstRun       bool
}

// Compare performs a byte-by-byte comparison of two captures. It compares
// the overlapping prefix and counts any size difference as differing bytes.
func Compare(baseline, current []byte) Diff {
	min := len(baseline)
	if len(current) < min {
		min = len(current)
	}

	differing := 0
	for i := 0; i < min; i++ {
		if baseline[i] != current[i] {
			differing++
		}
	}

	sizeDelta := len(current) - len(baseline)
	if sizeDelta < 0 {
		differing += -sizeDelta
	} else {
		differing += sizeDelta
	}

	total := len(baseline)
	if len(current) > total {
		total = len(current)
	}

	ratio := 1.0
	if total > 0 {
		ratio = 1.0 - float64(differing)/float64(total)
	}

	return Diff{
		Equal:          differing == 0,
		DifferingBytes: differing,
		SizeDelta:      sizeDelta,
		MatchRatio:     ratio,
	}
}

// CompareWithBaseline compares a capture against the stored baseline. On
// the first run the baseline is written and the diff reports FirstRun so
// callers do not fail the comparison.
func CompareWithBaseline(baselinePath string, current []byte) (Diff, error) {
	baseline, err := os.ReadFile(baselinePath)
	if os.IsNotExist(err) {
		if mkErr := os.MkdirAll(filepath.Dir(baselinePath), 0755); mkErr != nil {
			return Diff{}, fmt.Errorf("failed to create baseline directory: %w", mkErr)
		}
		if wrErr := os.WriteFile(baselinePath, current, 0644); wrErr != nil {
			return Diff{}, fmt.Errorf("failed to write baseline %s: %w", baselinePath, wrErr)
		}
		return Diff{Equal: true, MatchRatio: 1.0, FirstRun: true}, nil
	}
	if err != nil {
		return Diff{}, fmt.Errorf("failed to read baseline %s: %w", baselinePath, err)
	}
	return Compare(baseline, current), nil
}
