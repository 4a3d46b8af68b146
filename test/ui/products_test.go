package ui

import (
	"context"
	"testing"
	"time"

	"github.com/ternarybob/shopcheck/internal/metrics"
	"github.com/ternarybob/shopcheck/internal/waitfor"
)

func TestProductsPageListsInventory(t *testing.T) {
	utc := NewUITestContext(t)
	defer utc.Cleanup()

	utc.LoggedIn()

	count, err := utc.Products.ItemCount()
	if err != nil {
		t.Fatalf("Failed to count inventory items: %v", err)
	}
	if count == 0 {
		t.Error("Expected at least one inventory item on the products page")
	}
}

func TestRemoveFromProductsPageUpdatesBadge(t *testing.T) {
	utc := NewUITestContext(t)
	defer utc.Cleanup()

	utc.LoggedIn()

	if err := utc.Products.AddProductToCartByName(productBackpack); err != nil {
		t.Fatalf("Failed to add product: %v", err)
	}
	if err := utc.Products.RemoveProductByName(productBackpack); err != nil {
		t.Fatalf("Failed to remove product: %v", err)
	}

	count, err := utc.Products.CartBadgeCount()
	if err != nil {
		t.Fatalf("Failed to read cart badge: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected badge to disappear after removal, got %d", count)
	}
}

func TestInventoryRendersWithinBudget(t *testing.T) {
	utc := NewUITestContext(t)
	defer utc.Cleanup()

	utc.LoggedIn()

	// Wait until the inventory list settles at its full size.
	opts := waitfor.Options{Timeout: utc.Page.ExpectTimeout()}
	counter := func(ctx context.Context) (int, error) {
		return utc.Page.Count(`.inventory_item`)
	}
	if err := waitfor.ElementCount(utc.Page.Context(), opts, counter, 6); err != nil {
		t.Fatalf("Inventory did not settle: %v", err)
	}
	if err := waitfor.ElementStable(utc.Page.Context(), opts, utc.Page.BoxProbe(`.inventory_item`)); err != nil {
		t.Fatalf("Inventory layout did not stop moving: %v", err)
	}

	snapshot, err := metrics.Capture(utc.Page.Context())
	if err != nil {
		t.Fatalf("Failed to capture performance snapshot: %v", err)
	}

	t.Logf("load=%v dcl=%v fcp=%v requests=%d bytes=%d",
		snapshot.LoadTime, snapshot.DOMContentLoaded, snapshot.FirstContentfulPaint,
		snapshot.RequestCount, snapshot.TotalSize)

	// Generous budget, this guards against regressions measured in
	// seconds, not milliseconds.
	if snapshot.LoadTime > 15*time.Second {
		t.Errorf("Page load took %v, expected under 15s", snapshot.LoadTime)
	}
	if snapshot.RequestCount == 0 {
		t.Error("Expected at least one recorded network request")
	}
}

func TestNetworkSettlesAfterLogin(t *testing.T) {
	utc := NewUITestContext(t)
	defer utc.Cleanup()

	monitor, err := metrics.NewNetworkMonitor(utc.Page.Context())
	if err != nil {
		t.Fatalf("Failed to attach network monitor: %v", err)
	}

	utc.LoggedIn()

	opts := waitfor.Options{Timeout: utc.Page.ExpectTimeout()}
	if err := waitfor.NetworkIdle(utc.Page.Context(), opts, monitor.InFlight, time.Second); err != nil {
		t.Errorf("Network did not go idle after login: %v", err)
	}
	if monitor.RequestCount() == 0 {
		t.Error("Expected the monitor to observe login traffic")
	}
}
