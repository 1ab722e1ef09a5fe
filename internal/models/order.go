package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
)

// PaymentDetails records the provider intent backing an order.
type PaymentDetails struct {
	PaymentIntentID string        `json:"paymentIntentId" gorm:"type:varchar(255)"`
	Status          PaymentStatus `json:"status" gorm:"type:varchar(20)"`
}

// Order is a placed purchase. Its items are snapshots taken at checkout.
type Order struct {
	Base
	UserID               string          `json:"userId" gorm:"type:varchar(36);index;not null"`
	OrderItems           []OrderItem     `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalPrice           decimal.Decimal `json:"totalPrice" gorm:"type:decimal(10,2);not null"`
	TotalDiscountedPrice decimal.Decimal `json:"totalDiscountedPrice" gorm:"type:decimal(10,2);not null"`
	Discount             decimal.Decimal `json:"discount" gorm:"type:decimal(10,2);not null"`
	TotalItem            int             `json:"totalItem" gorm:"not null"`
	ShippingAddressID    string          `json:"shippingAddressId" gorm:"type:varchar(36);index;not null"`
	ShippingAddress      *Address        `json:"shippingAddress,omitempty" gorm:"foreignKey:ShippingAddressID"`
	OrderStatus          OrderStatus     `json:"orderStatus" gorm:"type:varchar(30);index;not null"`
	DeliveryDate         *time.Time      `json:"deliveryDate"`
	PaymentDetails       PaymentDetails  `json:"paymentDetails" gorm:"embedded;embeddedPrefix:payment_"`
}

// OrderItem is a frozen copy of a cart item. It deliberately has no
// association to Product so catalog edits never reach placed orders.
type OrderItem struct {
	Base
	OrderID         string          `json:"orderId" gorm:"type:varchar(36);index;not null"`
	ProductID       string          `json:"productId" gorm:"type:varchar(36);index;not null"`
	ProductName     string          `json:"productName" gorm:"type:varchar(200)"`
	Quantity        int             `json:"quantity" gorm:"not null"`
	Size            string          `json:"size" gorm:"type:varchar(50)"`
	Price           decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	DiscountedPrice decimal.Decimal `json:"discountedPrice" gorm:"type:decimal(10,2);not null"`
	UserID          string          `json:"userId" gorm:"type:varchar(36);not null"`
}

// SnapshotCart copies the cart's items and totals into a new PLACED order.
// Product names come from the preloaded Product when present.
func SnapshotCart(cart *Cart, userID, addressID string) *Order {
	totals := ComputeTotals(cart.Items)
	items := make([]OrderItem, 0, len(cart.Items))
	for _, ci := range cart.Items {
		name := ""
		if ci.Product != nil {
			name = ci.Product.Name
		}
		items = append(items, OrderItem{
			ProductID:       ci.ProductID,
			ProductName:     name,
			Quantity:        ci.Quantity,
			Size:            ci.Size,
			Price:           ci.Price,
			DiscountedPrice: ci.DiscountedPrice,
			UserID:          userID,
		})
	}
	return &Order{
		UserID:               userID,
		OrderItems:           items,
		TotalPrice:           totals.TotalPrice,
		TotalDiscountedPrice: totals.TotalDiscountedPrice,
		Discount:             totals.Discount,
		TotalItem:            totals.TotalItem,
		ShippingAddressID:    addressID,
		OrderStatus:          OrderPlaced,
		PaymentDetails:       PaymentDetails{Status: PaymentPending},
	}
}
