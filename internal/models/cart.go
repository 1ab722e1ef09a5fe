package models

import "github.com/shopspring/decimal"

// Cart belongs to exactly one user. The totals are derived from Items on
// every read and never persisted.
type Cart struct {
	Base
	UserID string     `json:"userId" gorm:"uniqueIndex;type:varchar(36);not null"`
	Items  []CartItem `json:"cartItems" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`

	TotalPrice           decimal.Decimal `json:"totalPrice" gorm:"-"`
	TotalDiscountedPrice decimal.Decimal `json:"totalDiscountedPrice" gorm:"-"`
	TotalItem            int             `json:"totalItem" gorm:"-"`
	Discount             decimal.Decimal `json:"discount" gorm:"-"`
}

// CartItem holds line totals: Price and DiscountedPrice are already
// multiplied by Quantity.
type CartItem struct {
	Base
	CartID          string          `json:"cartId" gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_product"`
	ProductID       string          `json:"productId" gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_product"`
	Product         *Product        `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	UserID          string          `json:"userId" gorm:"type:varchar(36);index;not null"`
	Quantity        int             `json:"quantity" gorm:"not null"`
	Size            string          `json:"size" gorm:"type:varchar(50)"`
	Price           decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	DiscountedPrice decimal.Decimal `json:"discountedPrice" gorm:"type:decimal(10,2);not null"`
}

// CartTotals is the derived summary of a set of cart items.
type CartTotals struct {
	TotalPrice           decimal.Decimal
	TotalDiscountedPrice decimal.Decimal
	TotalItem            int
	Discount             decimal.Decimal
}

// ComputeTotals sums the line totals of items.
func ComputeTotals(items []CartItem) CartTotals {
	t := CartTotals{
		TotalPrice:           decimal.Zero,
		TotalDiscountedPrice: decimal.Zero,
		Discount:             decimal.Zero,
	}
	for _, it := range items {
		t.TotalPrice = t.TotalPrice.Add(it.Price)
		t.TotalDiscountedPrice = t.TotalDiscountedPrice.Add(it.DiscountedPrice)
		t.TotalItem += it.Quantity
	}
	t.Discount = t.TotalPrice.Sub(t.TotalDiscountedPrice)
	return t
}

// ApplyTotals fills the derived fields from the current items.
func (c *Cart) ApplyTotals() {
	t := ComputeTotals(c.Items)
	c.TotalPrice = t.TotalPrice
	c.TotalDiscountedPrice = t.TotalDiscountedPrice
	c.TotalItem = t.TotalItem
	c.Discount = t.Discount
}
