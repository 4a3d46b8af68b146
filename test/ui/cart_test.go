package ui

import (
	"testing"
)

const (
	productBackpack  = "Sauce Labs Backpack"
	productBikeLight = "Sauce Labs Bike Light"
	productShirt     = "Sauce Labs Bolt T-Shirt"
)

func TestAddProductsToCart(t *testing.T) {
	utc := NewUITestContext(t)
	defer utc.Cleanup()

	utc.LoggedIn()

	for _, name := range []string{productBackpack, productBikeLight} {
		if err := utc.Products.AddProductToCartByName(name); err != nil {
			t.Fatalf("Failed to add %q to cart: %v", name, err)
		}
	}

	count, err := utc.Products.CartBadgeCount()
	if err != nil {
		t.Fatalf("Failed to read cart badge: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected badge count 2 after adding two products, got %d", count)
	}
}

func TestRemoveProductFromCart(t *testing.T) {
	utc := NewUITestContext(t)
	defer utc.Cleanup()

	utc.LoggedIn()

	for _, name := range []string{productBackpack, productBikeLight} {
		if err := utc.Products.AddProductToCartByName(name); err != nil {
			t.Fatalf("Failed to add %q to cart: %v", name, err)
		}
	}
	if err := utc.Products.OpenCart(); err != nil {
		t.Fatalf("Failed to open cart: %v", err)
	}

	if err := utc.Cart.RemoveItem(productBackpack); err != nil {
		t.Fatalf("Failed to remove %q: %v", productBackpack, err)
	}

	count, err := utc.Cart.ItemCount()
	if err != nil {
		t.Fatalf("Failed to count cart items: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 item after removal, got %d", count)
	}

	remaining, err := utc.Cart.HasItem(productBikeLight)
	if err != nil {
		t.Fatalf("Failed to check remaining item: %v", err)
	}
	if !remaining {
		t.Errorf("Expected %q to remain in cart", productBikeLight)
	}
}

func TestCartBadgeMatchesCartContents(t *testing.T) {
	utc := NewUITestContext(t)
	defer utc.Cleanup()

	utc.LoggedIn()

	names := []string{productBackpack, productBikeLight, productShirt}
	for _, name := range names {
		if err := utc.Products.AddProductToCartByName(name); err != nil {
			t.Fatalf("Failed to add %q to cart: %v", name, err)
		}
	}

	badge, err := utc.Products.CartBadgeCount()
	if err != nil {
		t.Fatalf("Failed to read cart badge: %v", err)
	}

	if err := utc.Products.OpenCart(); err != nil {
		t.Fatalf("Failed to open cart: %v", err)
	}
	items, err := utc.Cart.ItemCount()
	if err != nil {
		t.Fatalf("Failed to count cart items: %v", err)
	}

	if badge != len(names) || items != len(names) {
		t.Errorf("Badge (%d) and cart items (%d) should both equal %d", badge, items, len(names))
	}
}

func TestAddUnknownProductFails(t *testing.T) {
	utc := NewUITestContext(t)
	defer utc.Cleanup()

	utc.LoggedIn()

	err := utc.Products.AddProductToCartByName("No Such Product")
	if err == nil {
		t.Fatal("Expected error when adding a product that does not exist")
	}
}
