package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusPacked    OrderStatus = "PACKED"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// ParseOrderStatus validates a raw status value.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPending, StatusConfirmed, StatusPacked, StatusShipped, StatusDelivered, StatusCancelled:
		return OrderStatus(s), nil
	}
	return "", ErrInvalidStatus
}

// transitions maps each status to the set of statuses reachable from it.
// CANCELLED is reachable from every non-terminal state.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPacked, StatusCancelled},
	StatusPacked:    {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered, StatusCancelled},
	StatusDelivered: {},
	StatusCancelled: {},
}

// CanTransitionTo reports whether the status may move to target.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s OrderStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// PaymentMethod labels how the customer intends to pay. No gateway is
// involved; the label travels with the order.
type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "COD"
	PaymentCard PaymentMethod = "CARD"
)

// Address is a shipping or billing address inside the customer snapshot.
type Address struct {
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country"`
}

// Customer is the denormalised contact snapshot captured with each order.
// It is immutable after placement.
type Customer struct {
	Email           string  `json:"email"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	Phone           string  `json:"phone"`
	WhatsappNumber  string  `json:"whatsappNumber,omitempty"`
	SameAsShipping  bool    `json:"sameAsShipping"`
	ShippingAddress Address `json:"shippingAddress"`
	BillingAddress  Address `json:"billingAddress"`
}

// Order is the durable record of a placed order. OrderNumber is assigned
// exactly once, at creation.
type Order struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	OrderNumber   int64         `json:"orderNumber" db:"order_number"`
	Customer      Customer      `json:"user" db:"customer"`
	PaymentMethod PaymentMethod `json:"paymentMethod" db:"payment_method"`
	Status        OrderStatus   `json:"status" db:"status"`
	OrderTotal    float64       `json:"orderTotal" db:"order_total"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time     `json:"updatedAt" db:"updated_at"`
}

// OrderItem is one line of an order. UnitPrice is captured at purchase time
// and never follows later product price changes.
type OrderItem struct {
	ID        uuid.UUID `json:"-" db:"id"`
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	UnitPrice float64   `json:"price" db:"unit_price"`
}

// OrderLineRequest is a single cart line in a placement request.
type OrderLineRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
}

// OrderRequest is the order payload inside a placement request.
type OrderRequest struct {
	Products      []OrderLineRequest `json:"products"`
	Customer      Customer           `json:"user"`
	PaymentMethod PaymentMethod      `json:"paymentMethod"`
	OrderTotal    float64            `json:"orderTotal"`
}

// CouponApplied names the coupon the customer applied at checkout.
type CouponApplied struct {
	Code string `json:"code"`
}

// PlaceOrderRequest is the full placement payload.
type PlaceOrderRequest struct {
	Order         OrderRequest   `json:"order"`
	CouponApplied *CouponApplied `json:"couponApplied,omitempty"`
}

// PlacementResult identifies a committed order.
type PlacementResult struct {
	OrderID     uuid.UUID `json:"orderId"`
	OrderNumber int64     `json:"orderNumber"`
}

// TrackOrderRequest looks an order up by number plus a contact detail.
type TrackOrderRequest struct {
	OrderNumber int64  `json:"orderNumber"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// OrderWithItems bundles an order with its lines for read endpoints.
type OrderWithItems struct {
	Order
	Items []OrderItem `json:"products"`
}
