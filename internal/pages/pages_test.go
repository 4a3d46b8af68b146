package pages

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  string
	}{
		{"valid", "standard_user", "secret_sauce", ""},
		{"empty username", "", "secret_sauce", "username must not be empty"},
		{"blank username", "   ", "secret_sauce", "username must not be empty"},
		{"empty password", "standard_user", "", "password must not be empty"},
		{"oversized username", strings.Repeat("u", 256), "secret_sauce", "username exceeds 255"},
		{"oversized password", "standard_user", strings.Repeat("p", 2049), "password exceeds 2048"},
		{"max length username ok", strings.Repeat("u", 255), "secret_sauce", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCredentials(tt.username, tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateCustomerInfo(t *testing.T) {
	tests := []struct {
		name    string
		first   string
		last    string
		zip     string
		wantErr string
	}{
		{"valid", "John", "Doe", "12345", ""},
		{"valid alphanumeric zip", "John", "Doe", "SW1A 1AA", ""},
		{"valid dashed zip", "John", "Doe", "12345-6789", ""},
		{"empty first name", "", "Doe", "12345", "first name must not be empty"},
		{"empty last name", "John", "", "12345", "last name must not be empty"},
		{"empty zip", "John", "Doe", "", "zip code must not be empty"},
		{"oversized first name", strings.Repeat("a", 101), "Doe", "12345", "first name exceeds 100"},
		{"oversized last name", "John", strings.Repeat("b", 101), "12345", "last name exceeds 100"},
		{"oversized zip", "John", "Doe", strings.Repeat("1", 21), "zip code exceeds 20"},
		{"zip with invalid characters", "John", "Doe", "12345!", "letters, digits, spaces and dashes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCustomerInfo(tt.first, tt.last, tt.zip)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
