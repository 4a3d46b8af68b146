package pages

import (
	"fmt"
	"strconv"

	"github.com/ternarybob/shopcheck/internal/browser"
)

// Products drives the inventory screen.
type Products struct {
	page *browser.Page
}

// NewProducts creates the products screen object.
func NewProducts(page *browser.Page) *Products {
	return &Products{page: page}
}

// Open navigates to the inventory screen. Requires an authenticated
// session; the storefront redirects to the login screen otherwise.
func (p *Products) Open() error {
	return p.page.Goto(InventoryPath)
}

// AddProductToCartByName locates the product row by its visible name and
// clicks the add-to-cart control inside that row.
func (p *Products) AddProductToCartByName(name string) error {
	if err := p.page.WaitVisible(`.inventory_item`, p.page.ExpectTimeout()); err != nil {
		return fmt.Errorf("inventory never rendered: %w", err)
	}
	clicked, err := clickRowButton(p.page, `.inventory_item`, `.inventory_item_name`, name)
	if err != nil {
		return fmt.Errorf("failed to add %q to cart: %w", name, err)
	}
	if !clicked {
		return fmt.Errorf("product %q not found on the inventory page", name)
	}
	return nil
}

// RemoveProductByName clicks the remove control inside the product row. On
// the inventory screen the same row button toggles between add and remove.
func (p *Products) RemoveProductByName(name string) error {
	clicked, err := clickRowButton(p.page, `.inventory_item`, `.inventory_item_name`, name)
	if err != nil {
		return fmt.Errorf("failed to remove %q: %w", name, err)
	}
	if !clicked {
		return fmt.Errorf("product %q not found on the inventory page", name)
	}
	return nil
}

// CartBadgeCount returns the integer shown on the cart badge, or 0 when the
// badge is absent. An absent badge is an empty cart, not an error.
func (p *Products) CartBadgeCount() (int, error) {
	badge := browser.ByTestID("shopping-cart-badge")
	visible, err := p.page.Visible(badge)
	if err != nil {
		return 0, err
	}
	if !visible {
		return 0, nil
	}
	text, err := p.page.Text(badge)
	if err != nil {
		return 0, err
	}
	count, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("cart badge text %q is not a number: %w", text, err)
	}
	return count, nil
}

// ItemCount returns the number of product rows on the inventory page.
func (p *Products) ItemCount() (int, error) {
	return p.page.Count(`.inventory_item`)
}

// OpenCart clicks through to the cart screen.
func (p *Products) OpenCart() error {
	return p.page.Click(browser.ByTestID("shopping-cart-link"))
}
