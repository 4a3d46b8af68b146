package testdata

import "github.com/brianvoe/gofakeit/v7"

// OrderInfo is the customer information consumed once by a checkout flow.
type OrderInfo struct {
	FirstName string
	LastName  string
	ZipCode   string
}

// DefaultOrderInfo returns a fixed order for deterministic tests.
func DefaultOrderInfo() OrderInfo {
	return OrderInfo{
		FirstName: "John",
		LastName:  "Doe",
		ZipCode:   "12345",
	}
}

// RandomOrderInfo returns a generated order for variation across runs. The
// generated values always satisfy the checkout validation rules.
func RandomOrderInfo() OrderInfo {
	return OrderInfo{
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		ZipCode:   gofakeit.Zip(),
	}
}
