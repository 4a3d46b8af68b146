// Package pages implements the screen objects for the storefront: login,
// products, cart and checkout. Each object exposes the actions meaningful
// on its screen and hides locator detail; the shared navigation and locator
// helper is composed in, not inherited.
package pages

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ternarybob/shopcheck/internal/browser"
)

// Paths of the storefront screens.
const (
	LoginPath            = "/"
	InventoryPath        = "/inventory.html"
	CartPath             = "/cart.html"
	CheckoutStepOnePath  = "/checkout-step-one.html"
	CheckoutCompletePath = "/checkout-complete.html"
)

// Input caps for page-object arguments. Oversized input is rejected before
// any browser interaction.
const (
	maxUsernameLen  = 255
	maxPasswordLen  = 2048
	maxFirstNameLen = 100
	maxLastNameLen  = 100
	maxZipCodeLen   = 20
)

var zipPattern = regexp.MustCompile(`^[A-Za-z0-9 -]+$`)

// validateCredentials guards Login.Login arguments.
func validateCredentials(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("username must not be empty")
	}
	if len(username) > maxUsernameLen {
		return fmt.Errorf("username exceeds %d characters (got %d)", maxUsernameLen, len(username))
	}
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}
	if len(password) > maxPasswordLen {
		return fmt.Errorf("password exceeds %d characters (got %d)", maxPasswordLen, len(password))
	}
	return nil
}

// validateCustomerInfo guards Checkout.FillCustomerInfo arguments.
func validateCustomerInfo(firstName, lastName, zipCode string) error {
	if strings.TrimSpace(firstName) == "" {
		return fmt.Errorf("first name must not be empty")
	}
	if len(firstName) > maxFirstNameLen {
		return fmt.Errorf("first name exceeds %d characters (got %d)", maxFirstNameLen, len(firstName))
	}
	if strings.TrimSpace(lastName) == "" {
		return fmt.Errorf("last name must not be empty")
	}
	if len(lastName) > maxLastNameLen {
		return fmt.Errorf("last name exceeds %d characters (got %d)", maxLastNameLen, len(lastName))
	}
	if strings.TrimSpace(zipCode) == "" {
		return fmt.Errorf("zip code must not be empty")
	}
	if len(zipCode) > maxZipCodeLen {
		return fmt.Errorf("zip code exceeds %d characters (got %d)", maxZipCodeLen, len(zipCode))
	}
	if !zipPattern.MatchString(zipCode) {
		return fmt.Errorf("zip code %q must contain only letters, digits, spaces and dashes", zipCode)
	}
	return nil
}

// clickRowButton clicks the button inside the row whose name element matches
// the given visible text. Returns false when no such row/button exists so
// callers can fail with a row-specific error.
func clickRowButton(page *browser.Page, rowSelector, nameSelector, name string) (bool, error) {
	var clicked bool
	expr := fmt.Sprintf(`
		(() => {
			const rows = document.querySelectorAll(%q);
			for (const row of rows) {
				const nameEl = row.querySelector(%q);
				if (!nameEl || nameEl.textContent.trim() !== %q) continue;
				const btn = row.querySelector('button');
				if (!btn) return false;
				btn.click();
				return true;
			}
			return false;
		})()
	`, rowSelector, nameSelector, name)
	if err := page.Evaluate(expr, &clicked); err != nil {
		return false, err
	}
	return clicked, nil
}

// rowVisible reports whether a row with the given visible name exists.
func rowVisible(page *browser.Page, rowSelector, nameSelector, name string) (bool, error) {
	var found bool
	expr := fmt.Sprintf(`
		(() => {
			const rows = document.querySelectorAll(%q);
			for (const row of rows) {
				const nameEl = row.querySelector(%q);
				if (nameEl && nameEl.textContent.trim() === %q) return true;
			}
			return false;
		})()
	`, rowSelector, nameSelector, name)
	if err := page.Evaluate(expr, &found); err != nil {
		return false, err
	}
	return found, nil
}
