package enums

import "fmt"

// OrderStatus tracks an order through fulfillment. Values are the Arabic
// strings shown to staff and customers; they are stored verbatim.
type OrderStatus string

const (
	OrderStatusPreparing OrderStatus = "قيد التجهيز"
	OrderStatusShipped   OrderStatus = "تم الشحن"
	OrderStatusDelivered OrderStatus = "تم التسليم"
	OrderStatusCancelled OrderStatus = "ملغي"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPreparing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
