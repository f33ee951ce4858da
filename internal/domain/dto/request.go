// Package dto defines the JSON shapes of the storefront HTTP API.
package dto

import (
	"net/mail"
	"strings"
)

// CalculatePriceRequest carries the two calculator form fields as typed.
// Both are free text: unparsable input counts as zero.
// @Description Discount calculator input
type CalculatePriceRequest struct {
	OriginalPrice      string `json:"original_price" example:"100"`
	DiscountPercentage string `json:"discount_percentage" example:"20"`
} // @name CalculatePriceRequest

// EditPriceRequest is one keystroke-level change to a price editor field.
// Field is "original_price" or "discount_percentage".
// @Description Price editor field change
type EditPriceRequest struct {
	Field string `json:"field" binding:"required" example:"discount_percentage"`
	Value string `json:"value" example:"25"`
} // @name EditPriceRequest

// CheckoutRequest is the order form submitted by a customer.
// @Description Order form for one product
type CheckoutRequest struct {
	Email          string `json:"email" binding:"required" example:"buyer@example.com"`
	Phone          string `json:"phone" binding:"required" example:"+919876543210"`
	CustomerName   string `json:"customer_name" example:"Asha"`
	ProductID      int64  `json:"product_id" binding:"required,gt=0" example:"7"`
	Quantity       int    `json:"quantity" example:"1"`
	BumpOfferAdded bool   `json:"bump_offer_added"`
} // @name CheckoutRequest

// UpdateOrderStatusRequest changes an order's status, payment id or download
// link. Each field is optional; status is validated only when present.
// @Description Order status update
type UpdateOrderStatusRequest struct {
	Status       string `json:"status,omitempty" example:"completed"`
	PaymentID    string `json:"payment_id,omitempty"`
	DownloadLink string `json:"download_link,omitempty"`
} // @name UpdateOrderStatusRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

const (
	maxPhoneLength = 20
	maxQuantity    = 100
)

var (
	ErrInvalidEmail    = &ValidationError{Field: "email", Message: "must be a valid email address"}
	ErrInvalidPhone    = &ValidationError{Field: "phone", Message: "must be at most 20 characters"}
	ErrInvalidQuantity = &ValidationError{Field: "quantity", Message: "must be between 1 and 100"}
)

// Validate normalizes the form and checks fields gin's binding tags cannot.
// A zero quantity means one.
func (r *CheckoutRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.CustomerName = strings.TrimSpace(r.CustomerName)

	if addr, err := mail.ParseAddress(r.Email); err != nil || addr.Address != r.Email {
		return ErrInvalidEmail
	}
	if r.Phone == "" || len(r.Phone) > maxPhoneLength {
		return ErrInvalidPhone
	}
	if r.Quantity == 0 {
		r.Quantity = 1
	}
	if r.Quantity < 1 || r.Quantity > maxQuantity {
		return ErrInvalidQuantity
	}
	return nil
}
