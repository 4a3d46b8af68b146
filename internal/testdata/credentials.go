// Package testdata provides the account catalog and order data used by the
// suites. Credentials are static and keyed symbolically; order data can be
// static or generated per run.
package testdata

import "os"

// CredentialKey identifies an account in the catalog.
type CredentialKey string

const (
	Standard          CredentialKey = "STANDARD"
	LockedOut         CredentialKey = "LOCKED_OUT"
	Problem           CredentialKey = "PROBLEM"
	PerformanceGlitch CredentialKey = "PERFORMANCE_GLITCH"
)

// Credential is a single test account. Immutable for the process lifetime.
type Credential struct {
	Username    string
	Password    string
	Description string
}

// defaultPassword is the demo storefront's shared password. Overridable via
// SHOPCHECK_PASSWORD for environments with rotated credentials.
const defaultPassword = "secret_sauce"

func password() string {
	if p := os.Getenv("SHOPCHECK_PASSWORD"); p != "" {
		return p
	}
	return defaultPassword
}

// Credentials returns the full account catalog.
func Credentials() map[CredentialKey]Credential {
	p := password()
	return map[CredentialKey]Credential{
		Standard: {
			Username:    "standard_user",
			Password:    p,
			Description: "Account with full access to the storefront",
		},
		LockedOut: {
			Username:    "locked_out_user",
			Password:    p,
			Description: "Account that is rejected at login",
		},
		Problem: {
			Username:    "problem_user",
			Password:    p,
			Description: "Account with broken product images and links",
		},
		PerformanceGlitch: {
			Username:    "performance_glitch_user",
			Password:    p,
			Description: "Account with artificially slow page loads",
		},
	}
}

// Get returns the credential for a key.
func Get(key CredentialKey) (Credential, bool) {
	cred, ok := Credentials()[key]
	return cred, ok
}

// MustGet returns the credential for a key and panics when it is missing.
// Intended for fixtures where a missing catalog entry is a programming
// error, not a test failure.
func MustGet(key CredentialKey) Credential {
	cred, ok := Get(key)
	if !ok {
		panic("unknown credential key: " + string(key))
	}
	return cred
}
