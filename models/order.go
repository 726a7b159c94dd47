package models

import "time"

// LineItem is one product's presence in a cart or order. Price is a
// snapshot captured when the item was first added; it is never re-read
// from the catalog, so later price changes do not rewrite carts.
type LineItem struct {
	ProductID    string  `json:"productId" bson:"productId"`
	ProductName  string  `json:"productName" bson:"productName"`
	ProductCode  string  `json:"productCode" bson:"productCode"`
	ProductImage string  `json:"productImage,omitempty" bson:"productImage,omitempty"`
	Quantity     int     `json:"quantity" bson:"quantity"`
	Price        float64 `json:"price" bson:"price"`
	Subtotal     float64 `json:"subtotal" bson:"subtotal"`
}

// Order status values
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known order states.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderProcessing, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Order is a finalized snapshot of cart contents. It has its own
// identity and lifecycle; the cart it came from is cleared and forgotten.
type Order struct {
	OrderID     string     `json:"orderId" bson:"orderId"`
	OrderNumber string     `json:"orderNumber" bson:"orderNumber"`
	UserID      string     `json:"userId" bson:"userId"`
	UserName    string     `json:"userName" bson:"userName"`
	UserEmail   string     `json:"userEmail" bson:"userEmail"`
	Items       []LineItem `json:"items" bson:"items"`
	Notes       string     `json:"notes,omitempty" bson:"notes,omitempty"`
	Status      string     `json:"status" bson:"status"`
	Subtotal    float64    `json:"subtotal" bson:"subtotal"`
	Total       float64    `json:"total" bson:"total"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedAt"`
}
