package metrics

import (
	"context"
	"sync"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// NetworkMonitor counts requests on a tab through CDP network events. The
// listener runs in the background; readers get a point-in-time view.
type NetworkMonitor struct {
	mu       sync.Mutex
	inflight map[network.RequestID]struct{}
	requests int
	bytes    int64
}

// NewNetworkMonitor enables network events on the tab and starts counting.
func NewNetworkMonitor(ctx context.Context) (*NetworkMonitor, error) {
	m := &NetworkMonitor{
		inflight: make(map[network.RequestID]struct{}),
	}

	if err := chromedp.Run(ctx, network.Enable()); err != nil {
		return nil, err
	}

	chromedp.ListenTarget(ctx, m.handleEvent)
	return m, nil
}

// handleEvent updates the counters from one CDP event.
func (m *NetworkMonitor) handleEvent(ev interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch e := ev.(type) {
	case *network.EventRequestWillBeSent:
		if _, ok := m.inflight[e.RequestID]; !ok {
			m.inflight[e.RequestID] = struct{}{}
			m.requests++
		}
	case *network.EventLoadingFinished:
		m.bytes += int64(e.EncodedDataLength)
		delete(m.inflight, e.RequestID)
	case *network.EventLoadingFailed:
		delete(m.inflight, e.RequestID)
	}
}

// InFlight returns the number of requests without a terminal event yet.
func (m *NetworkMonitor) InFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.inflight)
}

// RequestCount returns the total number of requests observed.
func (m *NetworkMonitor) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests
}

// TotalBytes returns the encoded bytes transferred by finished requests.
func (m *NetworkMonitor) TotalBytes() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bytes
}
