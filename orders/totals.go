package orders

import (
	"time"

	"vitrina/models"
	"vitrina/utils"
)

// BuildOrder forms an independent Order from a snapshot of cart line
// items. Subtotals are recomputed from price and quantity so the stored
// order holds the invariant regardless of what the snapshot carried.
func BuildOrder(user models.User, items []models.LineItem, notes string) models.Order {
	snapshot := make([]models.LineItem, 0, len(items))
	var subtotal float64
	for _, it := range items {
		if it.ProductID == "" || it.Quantity < 1 {
			continue
		}
		it.Subtotal = it.Price * float64(it.Quantity)
		subtotal += it.Subtotal
		snapshot = append(snapshot, it)
	}

	now := time.Now()
	return models.Order{
		OrderID:     "o" + utils.GenerateID(14),
		OrderNumber: "ORD-" + now.Format("20060102") + "-" + utils.GenerateRandomDigitString(6),
		UserID:      user.UserID,
		UserName:    user.DisplayName(),
		UserEmail:   user.Email,
		Items:       snapshot,
		Notes:       notes,
		Status:      models.OrderPending,
		Subtotal:    subtotal,
		Total:       subtotal,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
