package domain

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderShipped, OrderDelivered:
		return true
	}
	return false
}

type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "Standard"
	ShippingExpress  ShippingMethod = "Express"
)

// Fee returns the fixed shipping fee tier in currency minor units.
func (m ShippingMethod) Fee() int64 {
	switch m {
	case ShippingStandard:
		return 150_000
	case ShippingExpress:
		return 300_000
	}
	return 0
}

// Address is a structured shipping destination. Codes and names come
// from the external address lookup service.
type Address struct {
	ProvinceCode string
	ProvinceName string
	DistrictCode string
	DistrictName string
	WardCode     string
	WardName     string
	Street       string
}

// Order is an immutable snapshot of an order record. ShippingDate is
// nil until the order transitions to SHIPPED.
type Order struct {
	ID           string
	BuyerID      string
	OrderDate    time.Time
	ShippingDate *time.Time
	Status       OrderStatus
	Address      Address
	Shipping     ShippingMethod
}

// EligibilityWindowDays is the fixed window after a lifecycle event
// during which the matching buyer action remains permitted.
const EligibilityWindowDays = 7

// CanTransitionOrder reports whether an order may move from one status
// to another. Transitions are monotonic forward only:
// PENDING -> SHIPPED -> DELIVERED.
func CanTransitionOrder(from, to OrderStatus) bool {
	switch from {
	case OrderPending:
		return to == OrderShipped
	case OrderShipped:
		return to == OrderDelivered
	}
	return false
}

// DaysSince returns the number of whole 24-hour periods between ref and
// now, clamped at zero when ref is in the future.
func DaysSince(ref, now time.Time) int {
	d := now.Sub(ref)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

// CanConfirm reports whether the buyer may still confirm a pending
// order. The reference date is the shipping date when one is set, the
// order date otherwise; a pending order normally has no shipping date,
// which this deliberately tolerates (see CanConfirm tests).
func (o Order) CanConfirm(now time.Time) bool {
	if o.Status != OrderPending {
		return false
	}
	ref := o.OrderDate
	if o.ShippingDate != nil {
		ref = *o.ShippingDate
	}
	return DaysSince(ref, now) <= EligibilityWindowDays
}

// CanAcceptShipment reports whether the buyer may still acknowledge
// receipt of a shipped order.
func (o Order) CanAcceptShipment(now time.Time) bool {
	if o.Status != OrderShipped || o.ShippingDate == nil {
		return false
	}
	return DaysSince(*o.ShippingDate, now) <= EligibilityWindowDays
}

// CanLeaveFeedback reports whether the buyer may still leave feedback
// on a delivered order.
func (o Order) CanLeaveFeedback(now time.Time) bool {
	if o.Status != OrderDelivered {
		return false
	}
	return DaysSince(o.OrderDate, now) <= EligibilityWindowDays
}

// Validate checks the structural invariants of an order record and
// reports every offending field.
func (o Order) Validate() error {
	var verr ValidationError
	if o.ID == "" {
		verr.add("id", "must not be empty")
	}
	if o.BuyerID == "" {
		verr.add("buyer_id", "must not be empty")
	}
	if !o.Status.Valid() {
		verr.add("status", fmt.Sprintf("unknown order status %q", string(o.Status)))
	}
	if o.Shipping != ShippingStandard && o.Shipping != ShippingExpress {
		verr.add("shipping_method", fmt.Sprintf("unknown shipping method %q", string(o.Shipping)))
	}
	if o.ShippingDate != nil && o.Status == OrderPending {
		verr.add("shipping_date", "must not be set while order is PENDING")
	}
	if o.ShippingDate == nil && o.Status != OrderPending {
		verr.add("shipping_date", "must be set once order is SHIPPED")
	}
	if o.Address.ProvinceCode == "" {
		verr.add("address.province_code", "must not be empty")
	}
	if o.Address.DistrictCode == "" {
		verr.add("address.district_code", "must not be empty")
	}
	if o.Address.WardCode == "" {
		verr.add("address.ward_code", "must not be empty")
	}
	if o.Address.Street == "" {
		verr.add("address.street", "must not be empty")
	}
	return verr.orNil()
}
