package service

import (
	"context"
	"errors"
	"fmt"

	"aroma-kart/internal/model"
	"aroma-kart/internal/notification"
	"aroma-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxReserveAttempts bounds how often a placement retries after losing the
// stock race to a concurrent order. Each retry works from a fresh snapshot,
// so a genuinely short product resolves to a shortage report instead.
const maxReserveAttempts = 3

// errStockConflict signals that the conditional decrement guarded fewer rows
// than requested: another order consumed the stock between the snapshot read
// and the write. Internal to the placement loop.
var errStockConflict = errors.New("stock changed during reservation")

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	counterRepo repository.CounterRepository
	couponRepo  repository.CouponRepository
	adminRepo   repository.AdminRepository
	notifier    *notification.Notifier
	storeID     uuid.UUID
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	counterRepo repository.CounterRepository,
	couponRepo repository.CouponRepository,
	adminRepo repository.AdminRepository,
	notifier *notification.Notifier,
	storeID uuid.UUID,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		counterRepo: counterRepo,
		couponRepo:  couponRepo,
		adminRepo:   adminRepo,
		notifier:    notifier,
		storeID:     storeID,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// PlaceOrder runs one placement attempt through to a terminal outcome.
func (s *orderService) PlaceOrder(ctx context.Context, req *model.PlaceOrderRequest) (*model.PlacementResult, error) {
	if err := validatePlacement(req); err != nil {
		return nil, err
	}

	deltas := coalesceDeltas(req.Order.Products)

	var result *model.PlacementResult
	var err error
	for attempt := 1; attempt <= maxReserveAttempts; attempt++ {
		result, err = s.attemptPlacement(ctx, req, deltas)
		if !errors.Is(err, errStockConflict) {
			break
		}
		s.logger.Debug().Int("attempt", attempt).Msg("reservation lost a stock race, retrying")
	}
	if errors.Is(err, errStockConflict) {
		s.logger.Warn().Int("attempts", maxReserveAttempts).Msg("reservation kept losing stock races")
		return nil, model.NewDomainError(model.ErrCodeInsufficientStock, "Stock levels changed while placing the order. Please try again.")
	}
	if err != nil {
		return nil, err
	}

	// Post-commit side effects: the order stands regardless of how these go.
	if req.CouponApplied != nil && req.CouponApplied.Code != "" {
		if cerr := s.couponRepo.CommitUsage(ctx, s.storeID, req.CouponApplied.Code); cerr != nil {
			s.logger.Warn().
				Err(cerr).
				Str("coupon_code", req.CouponApplied.Code).
				Str("order_id", result.OrderID.String()).
				Msg("failed to commit coupon usage for placed order")
		}
	}

	s.notifyAdmins(ctx, "New Order Placed",
		fmt.Sprintf("New order has been placed with order number %d.", result.OrderNumber))

	s.logger.Info().
		Str("order_id", result.OrderID.String()).
		Int64("order_number", result.OrderNumber).
		Int("line_count", len(req.Order.Products)).
		Msg("order placed successfully")

	return result, nil
}

// attemptPlacement executes reserve, allocate and persist inside one
// transaction. Rolling the transaction back releases any reserved stock, so
// no compensating writes are ever needed.
func (s *orderService) attemptPlacement(ctx context.Context, req *model.PlaceOrderRequest, deltas []model.StockDelta) (_ *model.PlacementResult, err error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback placement transaction")
			}
		}
	}()

	ids := make([]uuid.UUID, len(deltas))
	for i, d := range deltas {
		ids[i] = d.ProductID
	}

	levels, err := s.productRepo.StockSnapshot(ctx, tx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	levelByID := make(map[uuid.UUID]model.StockLevel, len(levels))
	for _, level := range levels {
		levelByID[level.ProductID] = level
	}

	var short []model.ShortageLine
	for _, d := range deltas {
		level, ok := levelByID[d.ProductID]
		if !ok {
			err = model.NewDomainError(model.ErrCodeProductNotFound,
				fmt.Sprintf("Product with ID %s not found.", d.ProductID))
			return nil, err
		}
		if level.Stock < d.Quantity {
			short = append(short, model.ShortageLine{
				Name:      level.Name,
				Available: level.Stock,
				Requested: d.Quantity,
			})
		}
	}

	if len(short) > 0 {
		err = &model.ShortageError{Lines: short}
		return nil, err
	}

	affected, err := s.productRepo.ApplyStockDeltas(ctx, tx, deltas)
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	if affected < int64(len(deltas)) {
		// A concurrent order won the race for at least one product. The
		// rollback discards every decrement from this batch.
		err = errStockConflict
		return nil, err
	}

	number, err := s.counterRepo.AllocateNext(ctx, repository.OrderNumberCounter)
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	paymentMethod := req.Order.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = model.PaymentCOD
	}

	order := &model.Order{
		ID:            uuid.New(),
		OrderNumber:   number,
		Customer:      req.Order.Customer,
		PaymentMethod: paymentMethod,
		Status:        model.StatusPending,
		OrderTotal:    req.Order.OrderTotal,
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	items := make([]model.OrderItem, len(req.Order.Products))
	for i, line := range req.Order.Products {
		items[i] = model.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.Price,
		}
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit placement transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	return &model.PlacementResult{OrderID: order.ID, OrderNumber: order.OrderNumber}, nil
}

// TrackOrder looks an order up by number plus email or phone.
func (s *orderService) TrackOrder(ctx context.Context, req *model.TrackOrderRequest) (*model.OrderWithItems, error) {
	if req.OrderNumber <= 0 {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Order number is required.")
	}
	if req.Email == "" && req.Phone == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Please enter an email or a phone number.")
	}

	order, err := s.orderRepo.FindForTracking(ctx, req.OrderNumber, req.Email, req.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to track order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	return order, nil
}

// ListOrders retrieves orders newest-first with an optional status filter.
func (s *orderService) ListOrders(ctx context.Context, status *model.OrderStatus, page, limit int) ([]model.Order, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 15
	}

	orders, err := s.orderRepo.List(ctx, status, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	total, err := s.orderRepo.CountByStatus(ctx, status)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, total, nil
}

// notifyAdmins queues a push message for every registered admin device.
func (s *orderService) notifyAdmins(ctx context.Context, title, body string) {
	tokens, err := s.adminRepo.AllFCMTokens(ctx, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to collect admin device tokens")
		return
	}
	if len(tokens) == 0 {
		return
	}

	s.notifier.Enqueue(notification.Message{Tokens: tokens, Title: title, Body: body})
}

// validatePlacement rejects malformed carts before any storage access.
func validatePlacement(req *model.PlaceOrderRequest) error {
	if req == nil || len(req.Order.Products) == 0 {
		return model.ErrEmptyOrder
	}

	for _, line := range req.Order.Products {
		if line.ProductID == uuid.Nil {
			return model.NewDomainError(model.ErrCodeMissingField, "Product ID is required for every order line.")
		}
		if line.Quantity < 1 {
			return model.ErrInvalidQuantity
		}
	}

	if req.Order.PaymentMethod != "" &&
		req.Order.PaymentMethod != model.PaymentCOD &&
		req.Order.PaymentMethod != model.PaymentCard {
		return model.NewDomainError(model.ErrCodeMissingField, "Payment method must be COD or CARD.")
	}

	customer := req.Order.Customer
	if customer.Email == "" || customer.FirstName == "" || customer.LastName == "" || customer.Phone == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Customer contact details are required.")
	}
	if customer.ShippingAddress.Address == "" || customer.ShippingAddress.City == "" || customer.ShippingAddress.Country == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Shipping address is required.")
	}

	return nil
}

// coalesceDeltas folds duplicate cart lines into one net decrement per
// product, preserving first-seen order.
func coalesceDeltas(lines []model.OrderLineRequest) []model.StockDelta {
	index := make(map[uuid.UUID]int, len(lines))
	deltas := make([]model.StockDelta, 0, len(lines))

	for _, line := range lines {
		if i, ok := index[line.ProductID]; ok {
			deltas[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(deltas)
		deltas = append(deltas, model.StockDelta{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	return deltas
}
