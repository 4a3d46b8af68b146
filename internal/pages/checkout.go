package pages

import (
	"fmt"
	"strings"

	"github.com/ternarybob/shopcheck/internal/browser"
)

// Checkout drives the two-step checkout flow and the completion screen.
type Checkout struct {
	page *browser.Page
}

// NewCheckout creates the checkout screen object.
func NewCheckout(page *browser.Page) *Checkout {
	return &Checkout{page: page}
}

// FillCustomerInfo validates the order fields and fills the customer form.
// Validation failures are reported before any field is touched.
func (c *Checkout) FillCustomerInfo(firstName, lastName, zipCode string) error {
	if err := validateCustomerInfo(firstName, lastName, zipCode); err != nil {
		return fmt.Errorf("customer info rejected: %w", err)
	}

	if err := c.page.Fill(browser.ByTestID("firstName"), firstName); err != nil {
		return err
	}
	if err := c.page.Fill(browser.ByTestID("lastName"), lastName); err != nil {
		return err
	}
	return c.page.Fill(browser.ByTestID("postalCode"), zipCode)
}

// Continue submits the customer form and moves to the overview step.
func (c *Checkout) Continue() error {
	return c.page.Click(browser.ByTestID("continue"))
}

// Finish completes the order from the overview step.
func (c *Checkout) Finish() error {
	return c.page.Click(browser.ByTestID("finish"))
}

// Cancel leaves the checkout flow.
func (c *Checkout) Cancel() error {
	return c.page.Click(browser.ByTestID("cancel"))
}

// AssertOrderSuccess waits for the completion banner and fails unless the
// URL is the completion page and the banner thanks the customer.
func (c *Checkout) AssertOrderSuccess() error {
	banner := browser.ByTestID("complete-header")
	text, err := c.page.Text(banner)
	if err != nil {
		return fmt.Errorf("completion banner never became visible: %w", err)
	}
	if !strings.Contains(text, "Thank you") {
		return fmt.Errorf("completion banner mismatch: expected text containing %q, got %q", "Thank you", text)
	}

	url, err := c.page.CurrentURL()
	if err != nil {
		return err
	}
	if !strings.Contains(url, CheckoutCompletePath) {
		return fmt.Errorf("expected completion URL containing %q, got %q", CheckoutCompletePath, url)
	}
	return nil
}

// AssertRequiredFieldError fails unless the checkout error banner mentions
// a required field.
func (c *Checkout) AssertRequiredFieldError() error {
	text, err := c.page.Text(browser.ByTestID("error"))
	if err != nil {
		return fmt.Errorf("checkout error banner never became visible: %w", err)
	}
	if !strings.Contains(strings.ToLower(text), "required") {
		return fmt.Errorf("checkout error banner mismatch: expected text containing %q, got %q", "required", text)
	}
	return nil
}
