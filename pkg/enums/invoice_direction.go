package enums

import "fmt"

// InvoiceDirection distinguishes invoices we issued from ones we received.
type InvoiceDirection string

const (
	InvoiceDirectionSales    InvoiceDirection = "sales"
	InvoiceDirectionPurchase InvoiceDirection = "purchase"
)

var validInvoiceDirections = []InvoiceDirection{
	InvoiceDirectionSales,
	InvoiceDirectionPurchase,
}

// IsValid reports whether the value matches the canonical direction enum.
func (d InvoiceDirection) IsValid() bool {
	for _, candidate := range validInvoiceDirections {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseInvoiceDirection converts raw input into InvoiceDirection.
func ParseInvoiceDirection(value string) (InvoiceDirection, error) {
	for _, candidate := range validInvoiceDirections {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid invoice direction %q", value)
}
