package pages

import (
	"fmt"

	"github.com/ternarybob/shopcheck/internal/browser"
)

// Cart drives the cart screen.
type Cart struct {
	page *browser.Page
}

// NewCart creates the cart screen object.
func NewCart(page *browser.Page) *Cart {
	return &Cart{page: page}
}

// Open navigates to the cart screen.
func (c *Cart) Open() error {
	return c.page.Goto(CartPath)
}

// RemoveItem clicks the remove control inside the cart row with the given
// visible name.
func (c *Cart) RemoveItem(name string) error {
	clicked, err := clickRowButton(c.page, `.cart_item`, `.inventory_item_name`, name)
	if err != nil {
		return fmt.Errorf("failed to remove %q from cart: %w", name, err)
	}
	if !clicked {
		return fmt.Errorf("item %q not found in the cart", name)
	}
	return nil
}

// HasItem reports whether a row with the given name is in the cart.
func (c *Cart) HasItem(name string) (bool, error) {
	return rowVisible(c.page, `.cart_item`, `.inventory_item_name`, name)
}

// ItemCount returns the number of rows in the cart.
func (c *Cart) ItemCount() (int, error) {
	return c.page.Count(`.cart_item`)
}

// StartCheckout clicks the checkout button.
func (c *Cart) StartCheckout() error {
	return c.page.Click(browser.ByTestID("checkout"))
}

// ContinueShopping returns to the inventory screen.
func (c *Cart) ContinueShopping() error {
	return c.page.Click(browser.ByTestID("continue-shopping"))
}
