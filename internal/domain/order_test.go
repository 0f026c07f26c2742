package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var orderNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func testOrder(status OrderStatus) Order {
	o := Order{
		ID:        "order-1",
		BuyerID:   "buyer-1",
		OrderDate: orderNow.Add(-48 * time.Hour),
		Status:    status,
		Shipping:  ShippingStandard,
		Address: Address{
			ProvinceCode: "79",
			ProvinceName: "Ho Chi Minh",
			DistrictCode: "760",
			DistrictName: "District 1",
			WardCode:     "26734",
			WardName:     "Ben Nghe",
			Street:       "12 Le Loi",
		},
	}
	if status != OrderPending {
		shipped := orderNow.Add(-24 * time.Hour)
		o.ShippingDate = &shipped
	}
	return o
}

func TestCanTransitionOrder(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderPending, OrderShipped, true},
		{OrderShipped, OrderDelivered, true},
		{OrderPending, OrderDelivered, false},
		{OrderShipped, OrderPending, false},
		{OrderDelivered, OrderPending, false},
		{OrderDelivered, OrderShipped, false},
		{OrderDelivered, OrderDelivered, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+" to "+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransitionOrder(tt.from, tt.to))
		})
	}
}

func TestDaysSince(t *testing.T) {
	tests := []struct {
		name     string
		ref      time.Time
		expected int
	}{
		{"same instant", orderNow, 0},
		{"future reference clamps to zero", orderNow.Add(time.Hour), 0},
		{"less than a day", orderNow.Add(-23 * time.Hour), 0},
		{"exactly one day", orderNow.Add(-24 * time.Hour), 1},
		{"just under eight days", orderNow.Add(-8*24*time.Hour + time.Second), 7},
		{"exactly eight days", orderNow.Add(-8 * 24 * time.Hour), 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysSince(tt.ref, orderNow))
		})
	}
}

func TestCanLeaveFeedback(t *testing.T) {
	t.Run("delivered seven days ago", func(t *testing.T) {
		o := testOrder(OrderDelivered)
		o.OrderDate = orderNow.Add(-7 * 24 * time.Hour)
		assert.True(t, o.CanLeaveFeedback(orderNow))
	})

	t.Run("delivered eight days ago", func(t *testing.T) {
		o := testOrder(OrderDelivered)
		o.OrderDate = orderNow.Add(-8 * 24 * time.Hour)
		assert.False(t, o.CanLeaveFeedback(orderNow))
	})

	t.Run("not delivered yet", func(t *testing.T) {
		o := testOrder(OrderShipped)
		assert.False(t, o.CanLeaveFeedback(orderNow))
	})
}

func TestCanAcceptShipment(t *testing.T) {
	t.Run("shipped within window", func(t *testing.T) {
		o := testOrder(OrderShipped)
		assert.True(t, o.CanAcceptShipment(orderNow))
	})

	t.Run("shipped eight days ago", func(t *testing.T) {
		o := testOrder(OrderShipped)
		shipped := orderNow.Add(-8 * 24 * time.Hour)
		o.ShippingDate = &shipped
		assert.False(t, o.CanAcceptShipment(orderNow))
	})

	t.Run("shipped without shipping date", func(t *testing.T) {
		o := testOrder(OrderShipped)
		o.ShippingDate = nil
		assert.False(t, o.CanAcceptShipment(orderNow))
	})

	t.Run("pending order", func(t *testing.T) {
		o := testOrder(OrderPending)
		assert.False(t, o.CanAcceptShipment(orderNow))
	})
}

func TestCanConfirm(t *testing.T) {
	// A pending order normally has no shipping date yet; the predicate
	// then falls back to the order date. When a shipping date is
	// somehow present it takes precedence, matching long-standing
	// behavior the back office depends on.
	t.Run("pending without shipping date uses order date", func(t *testing.T) {
		o := testOrder(OrderPending)
		o.OrderDate = orderNow.Add(-7 * 24 * time.Hour)
		assert.True(t, o.CanConfirm(orderNow))

		o.OrderDate = orderNow.Add(-8 * 24 * time.Hour)
		assert.False(t, o.CanConfirm(orderNow))
	})

	t.Run("shipping date takes precedence when set", func(t *testing.T) {
		o := testOrder(OrderPending)
		o.OrderDate = orderNow.Add(-30 * 24 * time.Hour)
		shipped := orderNow.Add(-2 * 24 * time.Hour)
		o.ShippingDate = &shipped
		assert.True(t, o.CanConfirm(orderNow))
	})

	t.Run("non-pending order", func(t *testing.T) {
		o := testOrder(OrderDelivered)
		assert.False(t, o.CanConfirm(orderNow))
	})
}

func TestShippingMethodFee(t *testing.T) {
	assert.Equal(t, int64(150_000), ShippingStandard.Fee())
	assert.Equal(t, int64(300_000), ShippingExpress.Fee())
	assert.Equal(t, int64(0), ShippingMethod("Drone").Fee())
}

func TestOrderValidate(t *testing.T) {
	t.Run("valid order", func(t *testing.T) {
		assert.NoError(t, testOrder(OrderPending).Validate())
		assert.NoError(t, testOrder(OrderShipped).Validate())
	})

	t.Run("reports every offending field", func(t *testing.T) {
		o := Order{Status: OrderStatus("CANCELLED"), Shipping: ShippingMethod("Drone")}

		err := o.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "id")
		assert.Contains(t, err.Error(), "buyer_id")
		assert.Contains(t, err.Error(), "status")
		assert.Contains(t, err.Error(), "shipping_method")
		assert.Contains(t, err.Error(), "address.street")
	})

	t.Run("shipping date while pending", func(t *testing.T) {
		o := testOrder(OrderPending)
		shipped := orderNow
		o.ShippingDate = &shipped

		err := o.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "shipping_date")
	})
}
