package order

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testItems() []Item {
	return []Item{
		{ID: "i1", ProductID: "p1", ProductName: "Widget", Quantity: 2, UnitPrice: dec("100.00")},
		{ID: "i2", ProductID: "p2", ProductName: "Gadget", Quantity: 1, UnitPrice: dec("50.00")},
	}
}

func TestNewComputesTotals(t *testing.T) {
	o, err := New("o1", "12345678", "u1", "a1", testItems(), dec("20.00"), dec("15.00"), []string{"SAVE10"}, PaymentCash)
	require.NoError(t, err)

	assert.True(t, o.Subtotal.Equal(dec("250.00")), "subtotal %s", o.Subtotal)
	assert.True(t, o.TotalAmount.Equal(dec("245.00")), "total %s", o.TotalAmount)
	assert.True(t, o.Items[0].LineTotal.Equal(dec("200.00")))
	assert.True(t, o.Items[1].LineTotal.Equal(dec("50.00")))
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, PaymentStatusPending, o.PaymentStatus)

	// total == subtotal - discount + delivery holds by construction
	assert.True(t, o.TotalAmount.Equal(o.Subtotal.Sub(o.CouponDiscount).Add(o.DeliveryCharge)))
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New("o1", "12345678", "u1", "a1", nil, decimal.Zero, decimal.Zero, nil, PaymentCash)
	assert.ErrorIs(t, err, ErrEmptyItems)

	items := testItems()
	items[0].Quantity = 0
	_, err = New("o1", "12345678", "u1", "a1", items, decimal.Zero, decimal.Zero, nil, PaymentCash)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestDiscountClampedToSubtotal(t *testing.T) {
	items := []Item{{ID: "i1", ProductID: "p1", Quantity: 1, UnitPrice: dec("10.00")}}
	o, err := New("o1", "12345678", "u1", "a1", items, dec("50.00"), dec("5.00"), nil, PaymentCash)
	require.NoError(t, err)
	assert.True(t, o.CouponDiscount.Equal(dec("10.00")))
	assert.True(t, o.TotalAmount.Equal(dec("5.00")))
}

func TestAdvance(t *testing.T) {
	o, err := New("o1", "12345678", "u1", "a1", testItems(), decimal.Zero, decimal.Zero, nil, PaymentCash)
	require.NoError(t, err)

	require.NoError(t, o.Advance(StatusConfirmed))
	require.NoError(t, o.Advance(StatusProcessing))
	require.NoError(t, o.Advance(StatusDelivered))

	// one-directional: no going back, no advancing past delivered
	assert.ErrorIs(t, o.Advance(StatusProcessing), ErrInvalidTransition)
	assert.ErrorIs(t, o.Advance(StatusConfirmed), ErrInvalidTransition)
}

func TestAdvanceRejectsJumps(t *testing.T) {
	o, err := New("o1", "12345678", "u1", "a1", testItems(), decimal.Zero, decimal.Zero, nil, PaymentCash)
	require.NoError(t, err)
	assert.ErrorIs(t, o.Advance(StatusDelivered), ErrInvalidTransition)
	assert.ErrorIs(t, o.Advance(StatusCancelled), ErrInvalidTransition)
}

func TestCancelGate(t *testing.T) {
	now := time.Now()

	for _, status := range []Status{StatusPending, StatusConfirmed, StatusProcessing} {
		o, err := New("o1", "12345678", "u1", "a1", testItems(), decimal.Zero, decimal.Zero, nil, PaymentCash)
		require.NoError(t, err)
		o.Status = status
		require.NoError(t, o.Cancel("changed my mind", now), "status %s", status)
		assert.Equal(t, StatusCancelled, o.Status)
		assert.Equal(t, "changed my mind", o.CancelReason)
		require.NotNil(t, o.CancelledAt)
		assert.Equal(t, now, *o.CancelledAt)
	}

	for _, status := range []Status{StatusDelivered, StatusCancelled} {
		o, err := New("o1", "12345678", "u1", "a1", testItems(), decimal.Zero, decimal.Zero, nil, PaymentCash)
		require.NoError(t, err)
		o.Status = status
		err = o.Cancel("too late", now)
		assert.ErrorIs(t, err, ErrNotCancellable, "status %s", status)
		assert.Equal(t, status, o.Status, "status must not change on rejected cancel")
		assert.Nil(t, o.CancelledAt)
	}
}

func TestEventsRecorded(t *testing.T) {
	o, err := New("o1", "12345678", "u1", "a1", testItems(), decimal.Zero, decimal.Zero, nil, PaymentBankTransfer)
	require.NoError(t, err)

	require.NoError(t, o.MarkPaid())
	require.NoError(t, o.Cancel("test", time.Now()))

	events := o.PullEvents()
	require.Len(t, events, 3)
	assert.Equal(t, EventPlaced, events[0].EventName())
	assert.Equal(t, EventPaid, events[1].EventName())
	assert.Equal(t, EventCancelled, events[2].EventName())

	// pulled events are cleared
	assert.Empty(t, o.PullEvents())
}

func TestParsePaymentType(t *testing.T) {
	pt, ok := ParsePaymentType("CASH")
	assert.True(t, ok)
	assert.Equal(t, PaymentCash, pt)

	pt, ok = ParsePaymentType("BANK_TRANSFER")
	assert.True(t, ok)
	assert.Equal(t, PaymentBankTransfer, pt)

	_, ok = ParsePaymentType("BITCOIN")
	assert.False(t, ok)
}
