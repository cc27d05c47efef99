// Package order orchestrates the checkout workflow: creation,
// bank-transfer verification, cancellation and status advancement. All
// multi-step writes go through the unit of work so stock, ledger,
// coupons, cart and order rows commit or roll back together.
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopcore/domain/cart"
	"shopcore/domain/catalog"
	"shopcore/domain/coupon"
	"shopcore/domain/customer"
	"shopcore/domain/order"
	"shopcore/domain/shared"
	"shopcore/domain/stock"
	"shopcore/infrastructure/payment"
	"shopcore/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service struct {
	orderRepo      order.Repository
	productRepo    catalog.ProductRepository
	couponRepo     coupon.Repository
	stockRepo      stock.Repository
	cartRepo       cart.Repository
	addressRepo    customer.AddressRepository
	uow            shared.UnitOfWork
	gateway        payment.Gateway
	numbers        *order.NumberGenerator
	deliveryCharge decimal.Decimal
}

func NewService(
	orderRepo order.Repository,
	productRepo catalog.ProductRepository,
	couponRepo coupon.Repository,
	stockRepo stock.Repository,
	cartRepo cart.Repository,
	addressRepo customer.AddressRepository,
	uow shared.UnitOfWork,
	gateway payment.Gateway,
	numbers *order.NumberGenerator,
	deliveryCharge decimal.Decimal,
) *Service {
	return &Service{
		orderRepo:      orderRepo,
		productRepo:    productRepo,
		couponRepo:     couponRepo,
		stockRepo:      stockRepo,
		cartRepo:       cartRepo,
		addressRepo:    addressRepo,
		uow:            uow,
		gateway:        gateway,
		numbers:        numbers,
		deliveryCharge: deliveryCharge,
	}
}

// CreateOrder runs the checkout. Header, items, stock decrements, SALE
// movements, coupon consumption and cart cleanup commit in one
// transaction. For bank transfers the order is persisted first and the
// gateway is consulted afterwards; a failed verification cancels the
// committed order through the normal cancellation path.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	paymentType, ok := order.ParsePaymentType(req.PaymentType)
	if !ok {
		return nil, fmt.Errorf("unknown payment type %q", req.PaymentType)
	}
	if len(req.Items) == 0 {
		return nil, order.ErrEmptyItems
	}

	var (
		o             *order.Order
		couponResults []CouponResult
	)

	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		address, err := s.addressRepo.FindByID(txCtx, req.AddressID)
		if err != nil {
			return err
		}
		if err := address.UsableBy(req.UserID); err != nil {
			return err
		}

		items, err := s.buildItems(txCtx, req.Items)
		if err != nil {
			return err
		}

		subtotal := decimal.Zero
		for _, item := range items {
			subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		var (
			discount   decimal.Decimal
			appliedIDs []string
			applied    []string
		)
		discount, couponResults, appliedIDs, applied = s.processCoupons(txCtx, req.CouponCodes, subtotal)

		number, err := s.numbers.Generate(txCtx, s.orderRepo)
		if err != nil {
			return err
		}

		o, err = order.New(uuid.New().String(), number, req.UserID, req.AddressID,
			items, discount, s.deliveryCharge, applied, paymentType)
		if err != nil {
			return err
		}

		if err := s.orderRepo.Create(txCtx, o); err != nil {
			return err
		}

		for _, item := range o.Items {
			if err := s.decrementWithLedger(txCtx, o, item); err != nil {
				return err
			}
		}

		for _, couponID := range appliedIDs {
			// A concurrent checkout may have consumed the last use after
			// validation; the conditional decrement catches that and the
			// whole order rolls back.
			if err := s.couponRepo.DecrementQuantity(txCtx, couponID); err != nil {
				return err
			}
		}

		productIDs := make([]string, len(o.Items))
		for i, item := range o.Items {
			productIDs[i] = item.ProductID
		}
		if err := s.cartRepo.RemoveProducts(txCtx, req.UserID, productIDs); err != nil {
			return err
		}

		s.uow.Register(txCtx, o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if paymentType == order.PaymentBankTransfer {
		verified, err := s.verifyBankTransfer(ctx, o)
		if err != nil {
			return nil, err
		}
		o = verified
	}

	return &CreateOrderResponse{
		Order:         toOrderResponse(o),
		CouponResults: couponResults,
	}, nil
}

func (s *Service) buildItems(ctx context.Context, reqs []OrderItemRequest) ([]order.Item, error) {
	items := make([]order.Item, 0, len(reqs))
	for _, req := range reqs {
		if req.Quantity < 1 {
			return nil, order.ErrInvalidQuantity
		}
		product, err := s.productRepo.FindByID(ctx, req.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.IsActive {
			return nil, catalog.ErrProductInactive
		}
		items = append(items, order.Item{
			ID:          uuid.New().String(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    req.Quantity,
			UnitPrice:   product.Price,
		})
	}
	return items, nil
}

// processCoupons evaluates each supplied code against the pre-discount
// subtotal. Rejections never abort the checkout; they are reported back
// per code.
func (s *Service) processCoupons(ctx context.Context, codes []string, subtotal decimal.Decimal) (decimal.Decimal, []CouponResult, []string, []string) {
	discount := decimal.Zero
	results := make([]CouponResult, 0, len(codes))
	var appliedIDs, appliedCodes []string

	now := time.Now()
	for _, code := range codes {
		c, err := s.couponRepo.FindByCode(ctx, code)
		if err != nil {
			reason := coupon.RejectionNotFound
			if !errors.Is(err, coupon.ErrCouponNotFound) {
				logger.Warn("Coupon lookup failed", zap.String("code", code), zap.Error(err))
			}
			results = append(results, CouponResult{Code: code, RejectionReason: string(reason)})
			continue
		}

		if reason := c.Validate(subtotal, now); reason != coupon.RejectionNone {
			results = append(results, CouponResult{Code: code, RejectionReason: string(reason)})
			continue
		}

		amount := coupon.ComputeDiscount(c, subtotal)
		discount = discount.Add(amount)
		appliedIDs = append(appliedIDs, c.ID)
		appliedCodes = append(appliedCodes, c.Code)
		results = append(results, CouponResult{Code: code, Applied: true, DiscountAmount: amount})
	}

	return discount, results, appliedIDs, appliedCodes
}

// decrementWithLedger pairs the atomic stock decrement with its SALE
// movement. The conditional update returns the post-decrement stock, so
// the previous level is exact even under concurrent checkouts.
func (s *Service) decrementWithLedger(ctx context.Context, o *order.Order, item order.Item) error {
	newStock, err := s.productRepo.DecrementStock(ctx, item.ProductID, item.Quantity)
	if err != nil {
		return err
	}

	product, err := s.productRepo.FindByID(ctx, item.ProductID)
	if err != nil {
		return err
	}

	return s.stockRepo.Append(ctx, &stock.Movement{
		ID:            uuid.New().String(),
		ProductID:     item.ProductID,
		ProductName:   item.ProductName,
		QuantityDelta: -item.Quantity,
		PreviousStock: newStock + item.Quantity,
		NewStock:      newStock,
		ReferenceType: stock.ReferenceSale,
		ReferenceID:   o.ID,
		UnitCost:      product.UnitCost,
		Reason:        "order " + o.Number,
		ActorID:       o.UserID,
		CreatedAt:     time.Now(),
	})
}

// verifyBankTransfer polls the gateway for a transfer matching the
// committed order. Success marks the payment paid and returns the
// updated order; anything else cancels the order and restores stock,
// then reports ErrPaymentNotVerified.
func (s *Service) verifyBankTransfer(ctx context.Context, o *order.Order) (*order.Order, error) {
	tx, err := s.gateway.FindTransaction(ctx, o.Number, o.TotalAmount)
	if err != nil {
		if !errors.Is(err, payment.ErrTransactionNotFound) {
			logger.Error("Bank transfer verification failed",
				zap.String("order_number", o.Number),
				zap.Error(err),
			)
		}
		if _, cancelErr := s.cancelTx(ctx, o.ID, "bank transfer not verified", true); cancelErr != nil {
			return nil, fmt.Errorf("order %s: cancel after failed verification: %w", o.Number, cancelErr)
		}
		return nil, order.ErrPaymentNotVerified
	}

	logger.Info("Bank transfer verified",
		zap.String("order_number", o.Number),
		zap.String("transaction_id", tx.ID),
	)

	var paid *order.Order
	err = s.uow.Execute(ctx, func(txCtx context.Context) error {
		// The closure may re-run after a rollback; loading inside it
		// keeps every attempt working on the committed state.
		fresh, err := s.orderRepo.FindByID(txCtx, o.ID)
		if err != nil {
			return err
		}
		if err := fresh.MarkPaid(); err != nil {
			return err
		}
		if err := s.orderRepo.Update(txCtx, fresh); err != nil {
			return err
		}
		s.uow.Register(txCtx, fresh)
		paid = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paid, nil
}

// CancelOrder cancels the caller's own order and restores stock, all in
// one transaction.
func (s *Service) CancelOrder(ctx context.Context, req CancelOrderRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != req.UserID {
		return nil, order.ErrNotOwned
	}

	cancelled, err := s.cancelTx(ctx, o.ID, req.Reason, false)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(cancelled), nil
}

// cancelTx is the shared transactional cancellation path used by both
// user cancellation and failed bank-transfer verification. The order is
// loaded inside the closure so a retried attempt starts from the
// committed state, not from a half-mutated aggregate.
func (s *Service) cancelTx(ctx context.Context, orderID, reason string, paymentFailed bool) (*order.Order, error) {
	var cancelled *order.Order
	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		o, err := s.orderRepo.FindByID(txCtx, orderID)
		if err != nil {
			return err
		}
		if err := o.Cancel(reason, time.Now()); err != nil {
			return err
		}
		if paymentFailed {
			o.FailPayment()
		}

		if err := s.orderRepo.Update(txCtx, o); err != nil {
			return err
		}

		for _, item := range o.Items {
			newStock, err := s.productRepo.IncrementStock(txCtx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			product, err := s.productRepo.FindByID(txCtx, item.ProductID)
			if err != nil {
				return err
			}
			movement := &stock.Movement{
				ID:            uuid.New().String(),
				ProductID:     item.ProductID,
				ProductName:   item.ProductName,
				QuantityDelta: item.Quantity,
				PreviousStock: newStock - item.Quantity,
				NewStock:      newStock,
				ReferenceType: stock.ReferenceCancellation,
				ReferenceID:   o.ID,
				UnitCost:      product.UnitCost,
				Reason:        reason,
				ActorID:       o.UserID,
				CreatedAt:     time.Now(),
			}
			if err := s.stockRepo.Append(txCtx, movement); err != nil {
				return err
			}
		}

		s.uow.Register(txCtx, o)
		cancelled = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// Advance moves an order one step along the fulfilment chain. Used by
// the back office endpoints.
func (s *Service) Advance(ctx context.Context, orderID string, target order.Status) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.Advance(target); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

func (s *Service) GetOrder(ctx context.Context, userID, orderID string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, order.ErrNotOwned
	}
	return toOrderResponse(o), nil
}

func (s *Service) GetOrderByNumber(ctx context.Context, userID, number string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, order.ErrNotOwned
	}
	return toOrderResponse(o), nil
}

func (s *Service) ListOrders(ctx context.Context, userID string, page, pageSize int) (*ListOrdersResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	orders, total, err := s.orderRepo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = toOrderResponse(o)
	}
	return &ListOrdersResponse{
		Orders:   responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func toOrderResponse(o *order.Order) *OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		}
	}

	return &OrderResponse{
		ID:             o.ID,
		Number:         o.Number,
		UserID:         o.UserID,
		AddressID:      o.AddressID,
		Items:          items,
		Subtotal:       o.Subtotal,
		CouponDiscount: o.CouponDiscount,
		DeliveryCharge: o.DeliveryCharge,
		TotalAmount:    o.TotalAmount,
		Status:         string(o.Status),
		PaymentType:    string(o.PaymentType),
		PaymentStatus:  string(o.PaymentStatus),
		AppliedCoupons: o.AppliedCoupons,
		CancelReason:   o.CancelReason,
		CancelledAt:    o.CancelledAt,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}
