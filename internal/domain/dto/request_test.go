package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckoutRequest_Validate(t *testing.T) {
	valid := func() CheckoutRequest {
		return CheckoutRequest{Email: "buyer@example.com", Phone: "+919876543210", ProductID: 7, Quantity: 1}
	}

	tests := []struct {
		name     string
		mutate   func(*CheckoutRequest)
		expected error
	}{
		{name: "valid request", mutate: func(*CheckoutRequest) {}},
		{name: "trims email", mutate: func(r *CheckoutRequest) { r.Email = "  buyer@example.com " }},
		{name: "invalid email", mutate: func(r *CheckoutRequest) { r.Email = "not-an-email" }, expected: ErrInvalidEmail},
		{name: "display name is not an address", mutate: func(r *CheckoutRequest) { r.Email = "Asha <a@example.com>" }, expected: ErrInvalidEmail},
		{name: "blank phone", mutate: func(r *CheckoutRequest) { r.Phone = "   " }, expected: ErrInvalidPhone},
		{name: "long phone", mutate: func(r *CheckoutRequest) { r.Phone = "+91 98765 43210 99999" }, expected: ErrInvalidPhone},
		{name: "zero quantity defaults to one", mutate: func(r *CheckoutRequest) { r.Quantity = 0 }},
		{name: "negative quantity", mutate: func(r *CheckoutRequest) { r.Quantity = -2 }, expected: ErrInvalidQuantity},
		{name: "quantity too large", mutate: func(r *CheckoutRequest) { r.Quantity = 101 }, expected: ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)

			err := req.Validate()

			if tt.expected != nil {
				assert.Equal(t, tt.expected, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, "buyer@example.com", req.Email)
			assert.GreaterOrEqual(t, req.Quantity, 1)
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "quantity", Message: "must be between 1 and 100"}
	assert.Equal(t, "quantity: must be between 1 and 100", err.Error())
}
