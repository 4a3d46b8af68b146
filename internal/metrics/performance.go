// Package metrics captures page performance snapshots and network activity
// from the browser's timing APIs. Everything here is observational: the
// listeners are best-effort and never block a test.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// Snapshot holds one on-demand reading of the page's navigation, paint and
// resource timing entries. Nothing is persisted.
type Snapshot struct {
	LoadTime             time.Duration
	DOMContentLoaded     time.Duration
	FirstPaint           time.Duration
	FirstContentfulPaint time.Duration
	TimeToInteractive    time.Duration
	TotalSize            int64
	RequestCount         int
}

// perfScript reads the timing entries in one round trip. Milliseconds
// throughout; zero when an entry is missing (e.g. paint entries before the
// first frame).
const perfScript = `
	(() => {
		const nav = performance.getEntriesByType('navigation')[0];
		const paints = performance.getEntriesByType('paint');
		const resources = performance.getEntriesByType('resource');
		const paint = (name) => {
			const entry = paints.find(p => p.name === name);
			return entry ? entry.startTime : 0;
		};
		let totalSize = 0;
		for (const r of resources) totalSize += (r.transferSize || 0);
		return {
			loadTime: nav ? nav.loadEventEnd - nav.startTime : 0,
			domContentLoaded: nav ? nav.domContentLoadedEventEnd - nav.startTime : 0,
			firstPaint: paint('first-paint'),
			firstContentfulPaint: paint('first-contentful-paint'),
			timeToInteractive: nav ? nav.domInteractive - nav.startTime : 0,
			totalSize: totalSize,
			requestCount: resources.length + (nav ? 1 : 0),
		};
	})()
`

type rawSnapshot struct {
	LoadTime             float64 `json:"loadTime"`
	DOMContentLoaded     float64 `json:"domContentLoaded"`
	FirstPaint           float64 `json:"firstPaint"`
	FirstContentfulPaint float64 `json:"firstContentfulPaint"`
	TimeToInteractive    float64 `json:"timeToInteractive"`
	TotalSize            float64 `json:"totalSize"`
	RequestCount         int     `json:"requestCount"`
}

// Capture reads the current page's performance entries.
func Capture(ctx context.Context) (*Snapshot, error) {
	var raw rawSnapshot
	if err := chromedp.Run(ctx, chromedp.Evaluate(perfScript, &raw)); err != nil {
		return nil, fmt.Errorf("failed to capture performance snapshot: %w", err)
	}
	return &Snapshot{
		LoadTime:             msToDuration(raw.LoadTime),
		DOMContentLoaded:     msToDuration(raw.DOMContentLoaded),
		FirstPaint:           msToDuration(raw.FirstPaint),
		FirstContentfulPaint: msToDuration(raw.FirstContentfulPaint),
		TimeToInteractive:    msToDuration(raw.TimeToInteractive),
		TotalSize:            int64(raw.TotalSize),
		RequestCount:         raw.RequestCount,
	}, nil
}

func msToDuration(ms float64) time.Duration {
	if ms < 0 {
		ms = 0
	}
	return time.Duration(ms * float64(time.Millisecond))
}
