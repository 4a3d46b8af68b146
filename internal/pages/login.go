package pages

import (
	"fmt"
	"strings"

	"github.com/ternarybob/shopcheck/internal/browser"
)

// Login drives the login screen.
type Login struct {
	page *browser.Page
}

// NewLogin creates the login screen object.
func NewLogin(page *browser.Page) *Login {
	return &Login{page: page}
}

// Open navigates to the login screen.
func (l *Login) Open() error {
	return l.page.Goto(LoginPath)
}

// Login validates the credentials, fills the form and submits it. Argument
// validation happens before any browser interaction.
func (l *Login) Login(username, password string) error {
	if err := validateCredentials(username, password); err != nil {
		return fmt.Errorf("login rejected: %w", err)
	}

	if err := l.page.Fill(browser.ByTestID("username"), username); err != nil {
		return err
	}
	if err := l.page.Fill(browser.ByTestID("password"), password); err != nil {
		return err
	}
	return l.page.Click(browser.ByTestID("login-button"))
}

// ErrorMessage waits for the error banner and returns its text.
func (l *Login) ErrorMessage() (string, error) {
	return l.page.Text(browser.ByTestID("error"))
}

// AssertErrorMessage waits for the error banner and fails unless its text
// contains expected.
func (l *Login) AssertErrorMessage(expected string) error {
	actual, err := l.ErrorMessage()
	if err != nil {
		return fmt.Errorf("error banner never became visible (expected text containing %q): %w", expected, err)
	}
	if !strings.Contains(actual, expected) {
		return fmt.Errorf("error banner mismatch: expected text containing %q, got %q", expected, actual)
	}
	return nil
}

// ExpectOnProductsPage fails unless the current URL is the inventory page.
func (l *Login) ExpectOnProductsPage() error {
	// Best-effort wait for the inventory list so the location has settled
	_ = l.page.WaitVisible(`.inventory_list`, l.page.ExpectTimeout())

	url, err := l.page.CurrentURL()
	if err != nil {
		return err
	}
	if !strings.Contains(url, InventoryPath) {
		return fmt.Errorf("expected to be on products page (URL containing %q), got %q", InventoryPath, url)
	}
	return nil
}
