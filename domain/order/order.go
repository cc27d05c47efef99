// Package order is the core of the checkout workflow: the Order entity,
// its status machine, and the invariants tying subtotal, discount,
// delivery charge and total together.
package order

import (
	"time"

	"shopcore/domain/shared"

	"github.com/shopspring/decimal"
)

// Status is the fulfilment state of an order. Transitions are
// one-directional except cancellation, which is allowed only from the
// pre-fulfilment statuses in cancellableStatuses.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusProcessing Status = "PROCESSING"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

var statusOrder = map[Status]int{
	StatusPending:    0,
	StatusConfirmed:  1,
	StatusProcessing: 2,
	StatusDelivered:  3,
}

var cancellableStatuses = map[Status]bool{
	StatusPending:    true,
	StatusConfirmed:  true,
	StatusProcessing: true,
}

// PaymentType is how the customer pays.
type PaymentType string

const (
	PaymentCash         PaymentType = "CASH"
	PaymentBankTransfer PaymentType = "BANK_TRANSFER"
)

// ParsePaymentType validates a payment type supplied by the caller.
func ParsePaymentType(s string) (PaymentType, bool) {
	switch PaymentType(s) {
	case PaymentCash, PaymentBankTransfer:
		return PaymentType(s), true
	}
	return "", false
}

// ParseStatus validates a status supplied by the caller.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusDelivered, StatusCancelled:
		return Status(s), true
	}
	return "", false
}

// PaymentStatus tracks the payment side of the order.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusConfirmed PaymentStatus = "CONFIRMED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusPaid      PaymentStatus = "PAID"
)

// Item is one order line. UnitPrice is snapshotted from the product at
// order creation and never re-read; LineTotal = UnitPrice * Quantity.
type Item struct {
	ID          string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// Order is a single checkout transaction: header plus line items.
// Created atomically with its items and immutable afterwards except for
// status, payment status and the cancellation fields.
type Order struct {
	ID             string
	Number         string // 8 numeric digits, unique
	UserID         string
	AddressID      string
	Items          []Item
	Subtotal       decimal.Decimal
	CouponDiscount decimal.Decimal
	DeliveryCharge decimal.Decimal
	TotalAmount    decimal.Decimal
	Status         Status
	PaymentType    PaymentType
	PaymentStatus  PaymentStatus
	AppliedCoupons []string
	CancelReason   string
	CancelledAt    *time.Time
	IsActive       bool
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time

	events []shared.DomainEvent
}

// New assembles an order from already-validated lines. It computes the
// subtotal from the items and enforces
// total = subtotal - discount + deliveryCharge.
func New(id, number, userID, addressID string, items []Item, couponDiscount, deliveryCharge decimal.Decimal, appliedCoupons []string, paymentType PaymentType) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}

	subtotal := decimal.Zero
	for i := range items {
		if items[i].Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		items[i].LineTotal = items[i].UnitPrice.Mul(decimal.NewFromInt(int64(items[i].Quantity)))
		subtotal = subtotal.Add(items[i].LineTotal)
	}

	if couponDiscount.GreaterThan(subtotal) {
		couponDiscount = subtotal
	}

	now := time.Now()
	o := &Order{
		ID:             id,
		Number:         number,
		UserID:         userID,
		AddressID:      addressID,
		Items:          items,
		Subtotal:       subtotal,
		CouponDiscount: couponDiscount,
		DeliveryCharge: deliveryCharge,
		TotalAmount:    subtotal.Sub(couponDiscount).Add(deliveryCharge),
		Status:         StatusPending,
		PaymentType:    paymentType,
		PaymentStatus:  PaymentStatusPending,
		AppliedCoupons: appliedCoupons,
		IsActive:       true,
		Version:        0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	o.record(newPlacedEvent(o))
	return o, nil
}

// Advance moves the order one step forward along
// Pending -> Confirmed -> Processing -> Delivered. Backward moves and
// jumps are rejected; cancelled orders cannot advance.
func (o *Order) Advance(target Status) error {
	cur, okCur := statusOrder[o.Status]
	next, okNext := statusOrder[target]
	if !okCur || !okNext || next != cur+1 {
		return ErrInvalidTransition
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// Cancellable reports whether the order may still be cancelled.
func (o *Order) Cancellable() bool {
	return cancellableStatuses[o.Status]
}

// Cancel transitions the order to Cancelled, recording the reason and
// timestamp. Delivered and already-cancelled orders are rejected.
func (o *Order) Cancel(reason string, now time.Time) error {
	if !o.Cancellable() {
		return ErrNotCancellable
	}
	o.Status = StatusCancelled
	o.CancelReason = reason
	o.CancelledAt = &now
	o.UpdatedAt = now
	o.record(newCancelledEvent(o, reason))
	return nil
}

// FailPayment marks the payment as failed. Used together with Cancel
// when bank-transfer verification finds no matching transaction.
func (o *Order) FailPayment() {
	o.PaymentStatus = PaymentStatusFailed
	o.UpdatedAt = time.Now()
}

// MarkPaid records a verified payment.
func (o *Order) MarkPaid() error {
	if o.PaymentStatus != PaymentStatusPending && o.PaymentStatus != PaymentStatusConfirmed {
		return ErrInvalidTransition
	}
	o.PaymentStatus = PaymentStatusPaid
	o.UpdatedAt = time.Now()
	o.record(newPaidEvent(o))
	return nil
}

// BumpVersion is called by the repository after a successful save so the
// in-memory copy matches the optimistic-lock column.
func (o *Order) BumpVersion() {
	o.Version++
}

func (o *Order) record(e shared.DomainEvent) {
	o.events = append(o.events, e)
}

// AggregateID implements shared.EventRecorder.
func (o *Order) AggregateID() string { return o.ID }

// PullEvents returns and clears the recorded domain events.
func (o *Order) PullEvents() []shared.DomainEvent {
	events := o.events
	o.events = nil
	return events
}

var _ shared.EventRecorder = (*Order)(nil)
