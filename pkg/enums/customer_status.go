package enums

import "fmt"

// CustomerStatus marks whether a customer account is in good standing.
type CustomerStatus string

const (
	CustomerStatusActive  CustomerStatus = "نشط"
	CustomerStatusBlocked CustomerStatus = "محظور"
)

var validCustomerStatuses = []CustomerStatus{
	CustomerStatusActive,
	CustomerStatusBlocked,
}

// String implements fmt.Stringer.
func (c CustomerStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CustomerStatus.
func (c CustomerStatus) IsValid() bool {
	for _, candidate := range validCustomerStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCustomerStatus converts raw input into a CustomerStatus.
func ParseCustomerStatus(value string) (CustomerStatus, error) {
	for _, candidate := range validCustomerStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid customer status %q", value)
}
