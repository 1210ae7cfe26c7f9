package enums

import "fmt"

// PaymentDirection distinguishes deposits received from disbursements made.
// Amounts are always stored as positive magnitudes; the effect on a balance
// is derived from this direction, never from a stored sign.
type PaymentDirection string

const (
	PaymentDirectionIn  PaymentDirection = "in"
	PaymentDirectionOut PaymentDirection = "out"
)

var validPaymentDirections = []PaymentDirection{
	PaymentDirectionIn,
	PaymentDirectionOut,
}

// IsValid reports whether the value matches the canonical direction enum.
func (d PaymentDirection) IsValid() bool {
	for _, candidate := range validPaymentDirections {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParsePaymentDirection converts raw input into PaymentDirection.
func ParsePaymentDirection(value string) (PaymentDirection, error) {
	for _, candidate := range validPaymentDirections {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment direction %q", value)
}
