package models

import (
	"database/sql/driver"
	"time"
)

// Customer order statuses.
const (
	CustomerOrderPending   = "Pending"
	CustomerOrderConfirmed = "Confirmed"
	CustomerOrderShipped   = "Shipped"
	CustomerOrderDelivered = "Delivered"
	CustomerOrderCancelled = "Cancelled"
)

// Payment methods.
const (
	PaymentCard           = "Card"
	PaymentUPI            = "UPI"
	PaymentBankTransfer   = "Bank Transfer"
	PaymentCashOnDelivery = "Cash on Delivery"
)

// IsValidCustomerOrderStatus reports whether status is a known customer order status.
func IsValidCustomerOrderStatus(status string) bool {
	switch status {
	case CustomerOrderPending, CustomerOrderConfirmed, CustomerOrderShipped, CustomerOrderDelivered, CustomerOrderCancelled:
		return true
	}
	return false
}

// IsValidPaymentMethod reports whether method is an accepted payment method.
func IsValidPaymentMethod(method string) bool {
	switch method {
	case PaymentCard, PaymentUPI, PaymentBankTransfer, PaymentCashOnDelivery:
		return true
	}
	return false
}

// OrderLineItem is a snapshot of one snack in a customer order.
type OrderLineItem struct {
	SnackID    string  `json:"snackId"`
	SnackName  string  `json:"snackName"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	PacketType string  `json:"packetType,omitempty"`
	Subtotal   float64 `json:"subtotal"`
}

// OrderLineItems is stored as a JSONB array.
type OrderLineItems []OrderLineItem

func (l OrderLineItems) Value() (driver.Value, error) {
	return marshalJSONB([]OrderLineItem(l), l == nil)
}

func (l *OrderLineItems) Scan(src interface{}) error {
	return scanJSONB(src, l)
}

// CustomerContact holds the buyer's contact details.
type CustomerContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (c CustomerContact) Value() (driver.Value, error) {
	return marshalJSONB(c, false)
}

func (c *CustomerContact) Scan(src interface{}) error {
	return scanJSONB(src, c)
}

// DeliveryAddress is where a customer order ships to.
type DeliveryAddress struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country,omitempty"`
}

func (a DeliveryAddress) Value() (driver.Value, error) {
	return marshalJSONB(a, false)
}

func (a *DeliveryAddress) Scan(src interface{}) error {
	return scanJSONB(src, a)
}

// CustomerOrder is a storefront purchase placed by a registered user.
type CustomerOrder struct {
	ID              string          `json:"id" db:"id"`
	OrderNumber     string          `json:"orderNumber" db:"order_number"`
	UserID          string          `json:"userId" db:"user_id"`
	Items           OrderLineItems  `json:"items" db:"items"`
	Customer        CustomerContact `json:"customer" db:"customer"`
	DeliveryAddress DeliveryAddress `json:"deliveryAddress" db:"delivery_address"`
	TotalAmount     float64         `json:"totalAmount" db:"total_amount"`
	Status          string          `json:"status" db:"status"`
	PaymentMethod   string          `json:"paymentMethod" db:"payment_method"`
	Notes           string          `json:"notes" db:"notes"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}
