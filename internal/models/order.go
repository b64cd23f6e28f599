package models

import "time"

// OrderStatus is the lifecycle state of a booking.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusApproved  OrderStatus = "approved"
	StatusRejected  OrderStatus = "rejected"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// statusTransitions enumerates the legal moves of the lifecycle state
// machine. Absent states are terminal.
var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:  {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved: {StatusCompleted, StatusCancelled},
}

// CanTransitionTo reports whether moving from s to next is legal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible from s.
func (s OrderStatus) Terminal() bool {
	return len(statusTransitions[s]) == 0
}

// Valid reports whether s is a known lifecycle state.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// AdminUserID is the sentinel owner recorded on walk-in orders created
// from the admin dashboard.
const AdminUserID = "admin"

// PaymentDetails captures non-cash payment information. Nil on
// cash-on-pickup orders.
type PaymentDetails struct {
	Method      string `bson:"method" json:"method"`
	Status      string `bson:"status" json:"status"`
	Reference   string `bson:"reference,omitempty" json:"reference,omitempty"`
	GcashNumber string `bson:"gcashNumber,omitempty" json:"gcashNumber,omitempty"`
	CardLast4   string `bson:"last4,omitempty" json:"last4,omitempty"`
	CardExpiry  string `bson:"expiry,omitempty" json:"expiry,omitempty"`
}

// Order is one pickup/delivery booking. The document ID is assigned by
// the store; TrackingCode is the short human-shareable identifier
// generated at creation.
type Order struct {
	ID           string `bson:"_id,omitempty" json:"id"`
	TrackingCode string `bson:"trackingCode" json:"trackingCode"`
	UserID       string `bson:"userId" json:"userId"`

	UserName    string  `bson:"userName" json:"userName"`
	UserEmail   string  `bson:"userEmail" json:"userEmail"`
	UserContact string  `bson:"userContact" json:"userContact"`
	UserAddress string  `bson:"userAddress" json:"userAddress"`
	Address     Address `bson:"address,omitempty" json:"address"`

	ServiceType  string `bson:"serviceType" json:"serviceType"`
	ServiceName  string `bson:"serviceName" json:"serviceName"`
	PickupDate   string `bson:"pickupDate" json:"pickupDate"`
	PickupTime   string `bson:"pickupTime" json:"pickupTime"`
	LoadCount    int    `bson:"loadCount" json:"loadCount"`
	Kilo         int    `bson:"kilo,omitempty" json:"kilo,omitempty"`
	Instructions string `bson:"instructions,omitempty" json:"instructions,omitempty"`

	PaymentMethod  string          `bson:"paymentMethod" json:"paymentMethod"`
	PaymentDetails *PaymentDetails `bson:"paymentDetails,omitempty" json:"paymentDetails,omitempty"`

	ServicePrice int `bson:"servicePrice" json:"servicePrice"`
	DeliveryFee  int `bson:"deliveryFee" json:"deliveryFee"`
	TotalPrice   int `bson:"totalPrice" json:"totalPrice"`

	Photos []string `bson:"photos" json:"photos"`

	Status      OrderStatus `bson:"status" json:"status"`
	CreatedAt   time.Time   `bson:"createdAt" json:"createdAt"`
	CancelledAt *time.Time  `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
}

// CreateOrderRequest is the customer booking form.
type CreateOrderRequest struct {
	ServiceType   string `json:"serviceType" validate:"required"`
	PickupDate    string `json:"pickupDate" validate:"required,datetime=2006-01-02"`
	PickupTime    string `json:"pickupTime" validate:"required,oneof=7am-10am 10am-1pm 1pm-4pm 4pm-7pm"`
	LoadCount     int    `json:"loadCount" validate:"required,min=1"`
	Instructions  string `json:"instructions,omitempty" validate:"max=500"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=cash gcash card"`

	// Non-cash extras; ignored for cash.
	GcashNumber string `json:"gcashNumber,omitempty"`
	CardNumber  string `json:"cardNumber,omitempty"`
	CardExpiry  string `json:"cardExpiry,omitempty"`
}

// UpdateOrderRequest is the customer edit form, valid only while the
// order is still pending.
type UpdateOrderRequest struct {
	ServiceType   *string `json:"serviceType,omitempty"`
	PickupDate    *string `json:"pickupDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PickupTime    *string `json:"pickupTime,omitempty" validate:"omitempty,oneof=7am-10am 10am-1pm 1pm-4pm 4pm-7pm"`
	LoadCount     *int    `json:"loadCount,omitempty" validate:"omitempty,min=1"`
	Instructions  *string `json:"instructions,omitempty" validate:"omitempty,max=500"`
	PaymentMethod *string `json:"paymentMethod,omitempty" validate:"omitempty,oneof=cash gcash card"`
}

// WalkInOrderRequest is the admin dashboard form for customers booking
// in person. It bypasses profile lookup; the order is owned by the
// AdminUserID sentinel.
type WalkInOrderRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=100"`
	Contact      string `json:"contact" validate:"required,min=7,max=20"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
	Address      string `json:"address" validate:"required"`
	ServiceType  string `json:"serviceType" validate:"required"`
	PickupDate   string `json:"pickupDate" validate:"required,datetime=2006-01-02"`
	PickupTime   string `json:"pickupTime" validate:"required,oneof=7am-10am 10am-1pm 1pm-4pm 4pm-7pm"`
	ItemsCount   int    `json:"itemsCount" validate:"required,min=1"`
	Kilo         int    `json:"kilo,omitempty" validate:"omitempty,min=0"`
	Instructions string `json:"instructions,omitempty" validate:"max=500"`
	Status       string `json:"status,omitempty" validate:"omitempty,oneof=pending approved"`
}

// AdminUpdateOrderRequest defines fields an admin may edit on any
// order. Status changes go through the explicit transition endpoints,
// not through here.
type AdminUpdateOrderRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Contact      *string `json:"contact,omitempty" validate:"omitempty,min=7,max=20"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Kilo         *int    `json:"kilo,omitempty" validate:"omitempty,min=0"`
	ItemsCount   *int    `json:"itemsCount,omitempty" validate:"omitempty,min=1"`
	ServiceType  *string `json:"serviceType,omitempty"`
	Instructions *string `json:"instructions,omitempty" validate:"omitempty,max=500"`
}

// Stats is the admin dashboard aggregate, recomputed from the full
// order set on every change.
type Stats struct {
	TotalOrders     int `json:"totalOrders"`
	PendingOrders   int `json:"pendingOrders"`
	CompletedOrders int `json:"completedOrders"`
	Revenue         int `json:"revenue"`
}
