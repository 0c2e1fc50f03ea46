package checkout

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Form is the checkout request body. Contact fields identify who receives
// the delivery; payment detail fields are conditional on the chosen method.
type Form struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`

	AddressID     string `json:"address_id" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=card upi cod wallet"`

	CardNumber string `json:"card_number,omitempty" validate:"required_if=PaymentMethod card"`
	CardExpiry string `json:"card_expiry,omitempty" validate:"required_if=PaymentMethod card"`
	CardCVV    string `json:"card_cvv,omitempty" validate:"required_if=PaymentMethod card"`

	UPIID string `json:"upi_id,omitempty" validate:"required_if=PaymentMethod upi"`
}

// Validate runs the struct tags. The returned error is a
// validator.ValidationErrors when the form is malformed.
func (f *Form) Validate() error {
	return validate.Struct(f)
}
