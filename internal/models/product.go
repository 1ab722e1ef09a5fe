package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Product is a sellable catalog item.
type Product struct {
	Base
	Name            string              `json:"name" gorm:"type:varchar(200);not null"`
	Description     string              `json:"description" gorm:"type:text"`
	Price           decimal.Decimal     `json:"price" gorm:"type:decimal(10,2);not null"`
	DiscountedPrice decimal.NullDecimal `json:"discountedPrice" gorm:"type:decimal(10,2)"`
	CategoryID      string              `json:"category" gorm:"type:varchar(36);index;not null"`
	SubcategoryID   *string             `json:"subcategory" gorm:"type:varchar(36);index"`
	Images          []ProductImage      `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Sizes           []ProductSize       `json:"sizes" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Colors          []ProductColor      `json:"colors" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Stock           int                 `json:"stock" gorm:"not null"`
	IsActive        bool                `json:"isActive" gorm:"not null"`
	Featured        bool                `json:"featured" gorm:"not null"`
}

// EffectivePrice is the discounted price when one is set and positive, else the list price.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.DiscountedPrice.Valid && p.DiscountedPrice.Decimal.IsPositive() {
		return p.DiscountedPrice.Decimal
	}
	return p.Price
}

// ProductSize is one entry of a product's size set.
type ProductSize struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID string `gorm:"type:varchar(36);index;not null"`
	Value     string `gorm:"type:varchar(50);not null"`
}

// ProductColor is one entry of a product's color set.
type ProductColor struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID string `gorm:"type:varchar(36);index;not null"`
	Value     string `gorm:"type:varchar(50);not null"`
}

// ProductImage is an image URL; Position keeps the list order.
type ProductImage struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID string `gorm:"type:varchar(36);index;not null"`
	URL       string `gorm:"type:varchar(1000);not null"`
	Position  int    `gorm:"not null"`
}

// The child rows travel over JSON as plain strings.

func (s ProductSize) MarshalJSON() ([]byte, error) { return json.Marshal(s.Value) }

func (s *ProductSize) UnmarshalJSON(b []byte) error { return json.Unmarshal(b, &s.Value) }

func (c ProductColor) MarshalJSON() ([]byte, error) { return json.Marshal(c.Value) }

func (c *ProductColor) UnmarshalJSON(b []byte) error { return json.Unmarshal(b, &c.Value) }

func (i ProductImage) MarshalJSON() ([]byte, error) { return json.Marshal(i.URL) }

func (i *ProductImage) UnmarshalJSON(b []byte) error { return json.Unmarshal(b, &i.URL) }

// NewSizes turns plain values into size rows, dropping blanks and duplicates.
func NewSizes(values []string) []ProductSize {
	out := make([]ProductSize, 0, len(values))
	for _, v := range dedupe(values) {
		out = append(out, ProductSize{Value: v})
	}
	return out
}

// NewColors turns plain values into color rows, dropping blanks and duplicates.
func NewColors(values []string) []ProductColor {
	out := make([]ProductColor, 0, len(values))
	for _, v := range dedupe(values) {
		out = append(out, ProductColor{Value: v})
	}
	return out
}

// NewImages keeps the given order.
func NewImages(urls []string) []ProductImage {
	out := make([]ProductImage, 0, len(urls))
	for i, u := range urls {
		if u == "" {
			continue
		}
		out = append(out, ProductImage{URL: u, Position: i})
	}
	return out
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
