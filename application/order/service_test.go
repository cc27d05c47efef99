package order

import (
	"context"
	"testing"
	"time"

	"shopcore/domain/cart"
	"shopcore/domain/catalog"
	"shopcore/domain/coupon"
	"shopcore/domain/customer"
	"shopcore/domain/order"
	"shopcore/domain/shared"
	"shopcore/domain/stock"
	"shopcore/infrastructure/payment"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ----------------------------------------------------------------------------
// In-memory fakes
// ----------------------------------------------------------------------------

type fakeUoW struct {
	events []shared.DomainEvent
}

func (u *fakeUoW) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (u *fakeUoW) Register(ctx context.Context, r shared.EventRecorder) {
	u.events = append(u.events, r.PullEvents()...)
}

type fakeOrderRepo struct {
	orders map[string]*order.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*order.Order)}
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *order.Order) error {
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, o *order.Order) error {
	if _, ok := r.orders[o.ID]; !ok {
		return order.ErrOrderNotFound
	}
	r.orders[o.ID] = o
	o.BumpVersion()
	return nil
}

// FindByID returns a copy, matching the real repository which
// reconstructs the aggregate from its persistence row on every load.
func (r *fakeOrderRepo) FindByID(ctx context.Context, id string) (*order.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	c := *o
	return &c, nil
}

func (r *fakeOrderRepo) FindByNumber(ctx context.Context, number string) (*order.Order, error) {
	for _, o := range r.orders {
		if o.Number == number {
			c := *o
			return &c, nil
		}
	}
	return nil, order.ErrOrderNotFound
}

func (r *fakeOrderRepo) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	_, err := r.FindByNumber(ctx, number)
	return err == nil, nil
}

func (r *fakeOrderRepo) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*order.Order, int64, error) {
	var out []*order.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, int64(len(out)), nil
}

type fakeProductRepo struct {
	products map[string]*catalog.Product
}

func newFakeProductRepo(products ...*catalog.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*catalog.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(ctx context.Context, p *catalog.Product) error { return nil }
func (r *fakeProductRepo) Update(ctx context.Context, p *catalog.Product) error { return nil }
func (r *fakeProductRepo) Deactivate(ctx context.Context, id string) error      { return nil }

func (r *fakeProductRepo) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) List(ctx context.Context, f catalog.ListFilter) ([]*catalog.Product, int64, error) {
	return nil, 0, nil
}

func (r *fakeProductRepo) DecrementStock(ctx context.Context, productID string, quantity int) (int, error) {
	p, ok := r.products[productID]
	if !ok {
		return 0, catalog.ErrProductNotFound
	}
	if p.StockQuantity < quantity {
		return 0, catalog.ErrInsufficientStock
	}
	p.StockQuantity -= quantity
	return p.StockQuantity, nil
}

func (r *fakeProductRepo) IncrementStock(ctx context.Context, productID string, quantity int) (int, error) {
	p, ok := r.products[productID]
	if !ok {
		return 0, catalog.ErrProductNotFound
	}
	p.StockQuantity += quantity
	return p.StockQuantity, nil
}

type fakeCouponRepo struct {
	coupons map[string]*coupon.Coupon // by code
}

func newFakeCouponRepo(coupons ...*coupon.Coupon) *fakeCouponRepo {
	r := &fakeCouponRepo{coupons: make(map[string]*coupon.Coupon)}
	for _, c := range coupons {
		r.coupons[c.Code] = c
	}
	return r
}

func (r *fakeCouponRepo) Create(ctx context.Context, c *coupon.Coupon) error { return nil }
func (r *fakeCouponRepo) Update(ctx context.Context, c *coupon.Coupon) error { return nil }
func (r *fakeCouponRepo) Delete(ctx context.Context, id string) error        { return nil }

func (r *fakeCouponRepo) FindByID(ctx context.Context, id string) (*coupon.Coupon, error) {
	for _, c := range r.coupons {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, coupon.ErrCouponNotFound
}

func (r *fakeCouponRepo) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	c, ok := r.coupons[code]
	if !ok {
		return nil, coupon.ErrCouponNotFound
	}
	return c, nil
}

func (r *fakeCouponRepo) List(ctx context.Context, activeOnly bool) ([]*coupon.Coupon, error) {
	return nil, nil
}

func (r *fakeCouponRepo) ListAutoApply(ctx context.Context) ([]*coupon.Coupon, error) {
	return nil, nil
}

func (r *fakeCouponRepo) DecrementQuantity(ctx context.Context, id string) error {
	c, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if c.Quantity == coupon.UnlimitedQuantity {
		return nil
	}
	if c.Quantity == 0 {
		return coupon.ErrCouponExhausted
	}
	c.Quantity--
	return nil
}

type fakeStockRepo struct {
	movements []*stock.Movement
}

func (r *fakeStockRepo) Append(ctx context.Context, m *stock.Movement) error {
	r.movements = append(r.movements, m)
	return nil
}

func (r *fakeStockRepo) ListByProduct(ctx context.Context, productID string, limit int) ([]*stock.Movement, error) {
	return nil, nil
}

func (r *fakeStockRepo) ListByReference(ctx context.Context, refType stock.ReferenceType, refID string) ([]*stock.Movement, error) {
	var out []*stock.Movement
	for _, m := range r.movements {
		if m.ReferenceType == refType && m.ReferenceID == refID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeCartRepo struct {
	items map[string][]string // userID -> productIDs
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{items: make(map[string][]string)}
}

func (r *fakeCartRepo) Upsert(ctx context.Context, item *cart.Item) error {
	r.items[item.UserID] = append(r.items[item.UserID], item.ProductID)
	return nil
}

func (r *fakeCartRepo) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	return nil
}

func (r *fakeCartRepo) Remove(ctx context.Context, userID, productID string) error { return nil }

func (r *fakeCartRepo) RemoveProducts(ctx context.Context, userID string, productIDs []string) error {
	remove := make(map[string]bool, len(productIDs))
	for _, id := range productIDs {
		remove[id] = true
	}
	var kept []string
	for _, id := range r.items[userID] {
		if !remove[id] {
			kept = append(kept, id)
		}
	}
	r.items[userID] = kept
	return nil
}

func (r *fakeCartRepo) ListByUser(ctx context.Context, userID string) ([]*cart.Item, error) {
	return nil, nil
}

func (r *fakeCartRepo) Clear(ctx context.Context, userID string) error { return nil }

type fakeAddressRepo struct {
	addresses map[string]*customer.Address
}

func newFakeAddressRepo(addresses ...*customer.Address) *fakeAddressRepo {
	r := &fakeAddressRepo{addresses: make(map[string]*customer.Address)}
	for _, a := range addresses {
		r.addresses[a.ID] = a
	}
	return r
}

func (r *fakeAddressRepo) Create(ctx context.Context, a *customer.Address) error { return nil }
func (r *fakeAddressRepo) Update(ctx context.Context, a *customer.Address) error { return nil }

func (r *fakeAddressRepo) FindByID(ctx context.Context, id string) (*customer.Address, error) {
	a, ok := r.addresses[id]
	if !ok {
		return nil, customer.ErrAddressNotFound
	}
	return a, nil
}

func (r *fakeAddressRepo) ListByUser(ctx context.Context, userID string) ([]*customer.Address, error) {
	return nil, nil
}

func (r *fakeAddressRepo) SetDefault(ctx context.Context, userID, addressID string) error {
	return nil
}

func (r *fakeAddressRepo) Deactivate(ctx context.Context, id string) error { return nil }

type fakeGateway struct {
	tx  *payment.Transaction
	err error
}

func (g *fakeGateway) FindTransaction(ctx context.Context, orderNumber string, amount decimal.Decimal) (*payment.Transaction, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.tx, nil
}

// ----------------------------------------------------------------------------
// Fixture
// ----------------------------------------------------------------------------

type fixture struct {
	service   *Service
	orders    *fakeOrderRepo
	products  *fakeProductRepo
	coupons   *fakeCouponRepo
	stock     *fakeStockRepo
	carts     *fakeCartRepo
	addresses *fakeAddressRepo
	uow       *fakeUoW
	gateway   *fakeGateway
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newFixture(t *testing.T) *fixture {
	t.Helper()

	products := newFakeProductRepo(
		&catalog.Product{ID: "p1", Name: "Go in Practice", Price: dec("125.00"), UnitCost: dec("80.00"), StockQuantity: 10, IsActive: true},
		&catalog.Product{ID: "p2", Name: "Sticker Pack", Price: dec("5.00"), UnitCost: dec("1.00"), StockQuantity: 3, IsActive: true},
		&catalog.Product{ID: "p3", Name: "Retired SKU", Price: dec("50.00"), UnitCost: dec("20.00"), StockQuantity: 5, IsActive: false},
	)
	coupons := newFakeCouponRepo(
		&coupon.Coupon{
			ID: "c1", Code: "TEN-PCT", DiscountType: coupon.DiscountPercentage,
			DiscountValue: dec("10"), MaxDiscount: dec("20.00"),
			Quantity: 5, IsActive: true, StartsAt: time.Now().Add(-time.Hour),
		},
		&coupon.Coupon{
			ID: "c2", Code: "BIG-MIN", DiscountType: coupon.DiscountFixed,
			DiscountValue: dec("30.00"), MinOrderAmount: dec("1000.00"),
			Quantity: coupon.UnlimitedQuantity, IsActive: true, StartsAt: time.Now().Add(-time.Hour),
		},
	)
	addresses := newFakeAddressRepo(
		&customer.Address{ID: "a1", UserID: "u1", IsActive: true},
		&customer.Address{ID: "a2", UserID: "u2", IsActive: true},
		&customer.Address{ID: "a3", UserID: "u1", IsActive: false},
	)

	f := &fixture{
		orders:    newFakeOrderRepo(),
		products:  products,
		coupons:   coupons,
		stock:     &fakeStockRepo{},
		carts:     newFakeCartRepo(),
		addresses: addresses,
		uow:       &fakeUoW{},
		gateway:   &fakeGateway{err: payment.ErrTransactionNotFound},
	}
	f.service = NewService(
		f.orders, f.products, f.coupons, f.stock, f.carts, addresses,
		f.uow, f.gateway, order.NewNumberGenerator(1), dec("15.00"),
	)
	return f
}

func baseRequest() CreateOrderRequest {
	return CreateOrderRequest{
		UserID:      "u1",
		AddressID:   "a1",
		PaymentType: "CASH",
		Items: []OrderItemRequest{
			{ProductID: "p1", Quantity: 2}, // 250.00
		},
	}
}

// retryingUoW simulates a deadlock on the first commit of every
// transaction: it runs the closure, rolls the fakes back to their
// pre-transaction state, and runs the closure again. Workflows must
// survive that, so closures cannot depend on in-memory state left over
// from a discarded attempt.
type retryingUoW struct {
	fakeUoW
	orders   *fakeOrderRepo
	products *fakeProductRepo
	coupons  *fakeCouponRepo
	stock    *fakeStockRepo
	carts    *fakeCartRepo
}

type uowSnapshot struct {
	orders     map[string]*order.Order
	stocks     map[string]int
	quantities map[string]int
	movements  int
	carts      map[string][]string
	events     int
}

func (u *retryingUoW) snapshot() uowSnapshot {
	snap := uowSnapshot{
		orders:     make(map[string]*order.Order, len(u.orders.orders)),
		stocks:     make(map[string]int, len(u.products.products)),
		quantities: make(map[string]int, len(u.coupons.coupons)),
		movements:  len(u.stock.movements),
		carts:      make(map[string][]string, len(u.carts.items)),
		events:     len(u.events),
	}
	for id, o := range u.orders.orders {
		snap.orders[id] = o
	}
	for id, p := range u.products.products {
		snap.stocks[id] = p.StockQuantity
	}
	for code, c := range u.coupons.coupons {
		snap.quantities[code] = c.Quantity
	}
	for userID, ids := range u.carts.items {
		snap.carts[userID] = append([]string(nil), ids...)
	}
	return snap
}

func (u *retryingUoW) restore(snap uowSnapshot) {
	u.orders.orders = snap.orders
	for id, qty := range snap.stocks {
		u.products.products[id].StockQuantity = qty
	}
	for code, qty := range snap.quantities {
		u.coupons.coupons[code].Quantity = qty
	}
	u.stock.movements = u.stock.movements[:snap.movements]
	u.carts.items = snap.carts
	u.events = u.events[:snap.events]
}

func (u *retryingUoW) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := u.snapshot()
	err := fn(ctx)
	u.restore(snap)
	if err != nil {
		return err
	}
	return fn(ctx)
}

// newRetryingFixture swaps the pass-through unit of work for the
// deadlock-simulating one; f.uow keeps collecting the committed events.
func newRetryingFixture(t *testing.T) *fixture {
	t.Helper()

	f := newFixture(t)
	ruow := &retryingUoW{
		orders:   f.orders,
		products: f.products,
		coupons:  f.coupons,
		stock:    f.stock,
		carts:    f.carts,
	}
	f.uow = &ruow.fakeUoW
	f.service = NewService(
		f.orders, f.products, f.coupons, f.stock, f.carts, f.addresses,
		ruow, f.gateway, order.NewNumberGenerator(1), dec("15.00"),
	)
	return f
}

// ----------------------------------------------------------------------------
// Creation
// ----------------------------------------------------------------------------

func TestCreateOrder_TotalsAndLedger(t *testing.T) {
	f := newFixture(t)

	req := baseRequest()
	req.CouponCodes = []string{"TEN-PCT"}

	resp, err := f.service.CreateOrder(context.Background(), req)
	require.NoError(t, err)

	o := resp.Order
	assert.True(t, dec("250.00").Equal(o.Subtotal))
	assert.True(t, dec("20.00").Equal(o.CouponDiscount), "10%% of 250 capped at 20")
	assert.True(t, dec("245.00").Equal(o.TotalAmount), "250 - 20 + 15")
	assert.Equal(t, string(order.StatusPending), o.Status)
	assert.Len(t, o.Number, 8)

	// Stock moved and the ledger recorded it.
	p, _ := f.products.FindByID(context.Background(), "p1")
	assert.Equal(t, 8, p.StockQuantity)

	movements, _ := f.stock.ListByReference(context.Background(), stock.ReferenceSale, o.ID)
	require.Len(t, movements, 1)
	assert.Equal(t, -2, movements[0].QuantityDelta)
	assert.Equal(t, 10, movements[0].PreviousStock)
	assert.Equal(t, 8, movements[0].NewStock)
	assert.Equal(t, "Go in Practice", movements[0].ProductName)

	// Coupon consumed.
	c, _ := f.coupons.FindByCode(context.Background(), "TEN-PCT")
	assert.Equal(t, 4, c.Quantity)

	require.Len(t, resp.CouponResults, 1)
	assert.True(t, resp.CouponResults[0].Applied)
	assert.True(t, dec("20.00").Equal(resp.CouponResults[0].DiscountAmount))

	// Placed event collected for the outbox.
	require.NotEmpty(t, f.uow.events)
	assert.Equal(t, order.EventPlaced, f.uow.events[0].EventName())
}

func TestCreateOrder_RejectedCouponsDoNotAbort(t *testing.T) {
	f := newFixture(t)

	req := baseRequest()
	req.CouponCodes = []string{"NOPE", "BIG-MIN"}

	resp, err := f.service.CreateOrder(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.Order.CouponDiscount.IsZero())
	assert.True(t, dec("265.00").Equal(resp.Order.TotalAmount))

	require.Len(t, resp.CouponResults, 2)
	assert.False(t, resp.CouponResults[0].Applied)
	assert.Equal(t, string(coupon.RejectionNotFound), resp.CouponResults[0].RejectionReason)
	assert.False(t, resp.CouponResults[1].Applied)
	assert.Equal(t, string(coupon.RejectionBelowMinimum), resp.CouponResults[1].RejectionReason)
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	f := newFixture(t)

	req := baseRequest()
	req.Items = []OrderItemRequest{{ProductID: "p2", Quantity: 4}} // only 3 left

	_, err := f.service.CreateOrder(context.Background(), req)
	assert.ErrorIs(t, err, catalog.ErrInsufficientStock)
}

func TestCreateOrder_InactiveProduct(t *testing.T) {
	f := newFixture(t)

	req := baseRequest()
	req.Items = []OrderItemRequest{{ProductID: "p3", Quantity: 1}}

	_, err := f.service.CreateOrder(context.Background(), req)
	assert.ErrorIs(t, err, catalog.ErrProductInactive)
}

func TestCreateOrder_AddressGates(t *testing.T) {
	f := newFixture(t)

	req := baseRequest()
	req.AddressID = "a2" // belongs to u2
	_, err := f.service.CreateOrder(context.Background(), req)
	assert.ErrorIs(t, err, customer.ErrAddressNotOwned)

	req = baseRequest()
	req.AddressID = "a3" // deactivated
	_, err = f.service.CreateOrder(context.Background(), req)
	assert.ErrorIs(t, err, customer.ErrAddressInactive)
}

func TestCreateOrder_RemovesPurchasedItemsFromCart(t *testing.T) {
	f := newFixture(t)
	f.carts.items["u1"] = []string{"p1", "p2"}

	_, err := f.service.CreateOrder(context.Background(), baseRequest())
	require.NoError(t, err)

	assert.Equal(t, []string{"p2"}, f.carts.items["u1"])
}

// ----------------------------------------------------------------------------
// Bank transfer verification
// ----------------------------------------------------------------------------

func TestCreateOrder_BankTransferVerified(t *testing.T) {
	f := newFixture(t)
	f.gateway.err = nil
	f.gateway.tx = &payment.Transaction{ID: "tx-9", Amount: dec("265.00")}

	req := baseRequest()
	req.PaymentType = "BANK_TRANSFER"

	resp, err := f.service.CreateOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, string(order.PaymentStatusPaid), resp.Order.PaymentStatus)

	stored, _ := f.orders.FindByID(context.Background(), resp.Order.ID)
	assert.Equal(t, order.PaymentStatusPaid, stored.PaymentStatus)
}

func TestCreateOrder_BankTransferNotFoundCancelsOrder(t *testing.T) {
	f := newFixture(t)
	// gateway defaults to ErrTransactionNotFound

	req := baseRequest()
	req.PaymentType = "BANK_TRANSFER"

	_, err := f.service.CreateOrder(context.Background(), req)
	assert.ErrorIs(t, err, order.ErrPaymentNotVerified)

	// The order was persisted, then cancelled with stock restored.
	require.Len(t, f.orders.orders, 1)
	for _, o := range f.orders.orders {
		assert.Equal(t, order.StatusCancelled, o.Status)
		assert.Equal(t, order.PaymentStatusFailed, o.PaymentStatus)
		assert.NotNil(t, o.CancelledAt)

		restores, _ := f.stock.ListByReference(context.Background(), stock.ReferenceCancellation, o.ID)
		require.Len(t, restores, 1)
		assert.Equal(t, 2, restores[0].QuantityDelta)
	}

	p, _ := f.products.FindByID(context.Background(), "p1")
	assert.Equal(t, 10, p.StockQuantity)
}

func TestCreateOrder_BankTransferSurvivesTransactionRetry(t *testing.T) {
	f := newRetryingFixture(t)
	f.gateway.err = nil
	f.gateway.tx = &payment.Transaction{ID: "tx-9", Amount: dec("265.00")}

	req := baseRequest()
	req.PaymentType = "BANK_TRANSFER"

	// Every transaction rolls back once and re-runs. The mark-paid
	// closure must load the order fresh on each attempt; marking the
	// same in-memory aggregate twice would fail the second attempt.
	resp, err := f.service.CreateOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, string(order.PaymentStatusPaid), resp.Order.PaymentStatus)

	stored, _ := f.orders.FindByID(context.Background(), resp.Order.ID)
	assert.Equal(t, order.PaymentStatusPaid, stored.PaymentStatus)
}

// ----------------------------------------------------------------------------
// Cancellation and status advancement
// ----------------------------------------------------------------------------

func TestCancelOrder_RestoresStock(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.CreateOrder(context.Background(), baseRequest())
	require.NoError(t, err)

	cancelled, err := f.service.CancelOrder(context.Background(), CancelOrderRequest{
		UserID:  "u1",
		OrderID: resp.Order.ID,
		Reason:  "changed my mind",
	})
	require.NoError(t, err)

	assert.Equal(t, string(order.StatusCancelled), cancelled.Status)
	assert.Equal(t, "changed my mind", cancelled.CancelReason)

	p, _ := f.products.FindByID(context.Background(), "p1")
	assert.Equal(t, 10, p.StockQuantity)

	restores, _ := f.stock.ListByReference(context.Background(), stock.ReferenceCancellation, resp.Order.ID)
	require.Len(t, restores, 1)
	assert.Equal(t, 8, restores[0].PreviousStock)
	assert.Equal(t, 10, restores[0].NewStock)
}

func TestCancelOrder_SurvivesTransactionRetry(t *testing.T) {
	f := newRetryingFixture(t)

	resp, err := f.service.CreateOrder(context.Background(), baseRequest())
	require.NoError(t, err)

	// The first cancellation attempt rolls back and the closure re-runs.
	// Cancelling must start from the committed Pending row each time;
	// re-cancelling a mutated aggregate would report ErrNotCancellable.
	cancelled, err := f.service.CancelOrder(context.Background(), CancelOrderRequest{
		UserID:  "u1",
		OrderID: resp.Order.ID,
		Reason:  "changed my mind",
	})
	require.NoError(t, err)
	assert.Equal(t, string(order.StatusCancelled), cancelled.Status)

	// Exactly one committed restore despite the discarded attempt.
	p, _ := f.products.FindByID(context.Background(), "p1")
	assert.Equal(t, 10, p.StockQuantity)

	restores, _ := f.stock.ListByReference(context.Background(), stock.ReferenceCancellation, resp.Order.ID)
	require.Len(t, restores, 1)
}

func TestCancelOrder_OwnershipEnforced(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.CreateOrder(context.Background(), baseRequest())
	require.NoError(t, err)

	_, err = f.service.CancelOrder(context.Background(), CancelOrderRequest{
		UserID:  "u2",
		OrderID: resp.Order.ID,
		Reason:  "not mine",
	})
	assert.ErrorIs(t, err, order.ErrNotOwned)
}

func TestCancelOrder_DeliveredIsFinal(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.CreateOrder(context.Background(), baseRequest())
	require.NoError(t, err)

	for _, target := range []order.Status{order.StatusConfirmed, order.StatusProcessing, order.StatusDelivered} {
		_, err = f.service.Advance(context.Background(), resp.Order.ID, target)
		require.NoError(t, err)
	}

	_, err = f.service.CancelOrder(context.Background(), CancelOrderRequest{
		UserID:  "u1",
		OrderID: resp.Order.ID,
		Reason:  "too late",
	})
	assert.ErrorIs(t, err, order.ErrNotCancellable)
}

func TestAdvance_RejectsJumps(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.CreateOrder(context.Background(), baseRequest())
	require.NoError(t, err)

	_, err = f.service.Advance(context.Background(), resp.Order.ID, order.StatusDelivered)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)
}

func TestGetOrder_OwnershipEnforced(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.CreateOrder(context.Background(), baseRequest())
	require.NoError(t, err)

	_, err = f.service.GetOrder(context.Background(), "u2", resp.Order.ID)
	assert.ErrorIs(t, err, order.ErrNotOwned)

	got, err := f.service.GetOrderByNumber(context.Background(), "u1", resp.Order.Number)
	require.NoError(t, err)
	assert.Equal(t, resp.Order.ID, got.ID)
}
