package models

import (
	"time"
)

// Order statuses. The status column stores whatever label is written;
// handlers validate against this set before updating.
const (
	OrderStatusPaid           = "Paid"
	OrderStatusOutForDelivery = "Out for Delivery"
	OrderStatusDelivered      = "Delivered"
)

// Order references its product by id only. Deleting a product does not
// touch its orders, so an order can outlive the product row it points at.
type Order struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	ProductID uint      `gorm:"index" json:"product_id"`
	Quantity  int       `gorm:"default:1" json:"quantity"`
	OrderDate time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"order_date"`
	Status    string    `gorm:"size:50;default:'Paid'" json:"status"`
}
