package models_test

import (
	"encoding/json"
	"testing"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	legal := map[models.OrderStatus][]models.OrderStatus{
		models.OrderPlaced:         {models.OrderConfirmed, models.OrderCancelled},
		models.OrderConfirmed:      {models.OrderShipped, models.OrderCancelled},
		models.OrderShipped:        {models.OrderOutForDelivery, models.OrderCancelled},
		models.OrderOutForDelivery: {models.OrderDelivered, models.OrderCancelled},
		models.OrderDelivered:      {},
		models.OrderCancelled:      {},
	}

	for _, from := range models.OrderStatuses() {
		for _, to := range models.OrderStatuses() {
			want := false
			for _, l := range legal[from] {
				if l == to {
					want = true
				}
			}
			assert.Equalf(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}

	assert.False(t, models.OrderStatus("BOGUS").CanTransitionTo(models.OrderCancelled))
	assert.False(t, models.OrderPlaced.CanTransitionTo("BOGUS"))
}

func TestParseOrderStatus(t *testing.T) {
	st, err := models.ParseOrderStatus("SHIPPED")
	require.NoError(t, err)
	assert.Equal(t, models.OrderShipped, st)

	_, err = models.ParseOrderStatus("shipped")
	assert.Error(t, err)
}

func TestComputeTotals(t *testing.T) {
	items := []models.CartItem{
		{Quantity: 2, Price: dec("20"), DiscountedPrice: dec("16")},
		{Quantity: 3, Price: dec("15"), DiscountedPrice: dec("14")},
	}
	totals := models.ComputeTotals(items)

	assert.True(t, dec("35").Equal(totals.TotalPrice))
	assert.True(t, dec("30").Equal(totals.TotalDiscountedPrice))
	assert.True(t, dec("5").Equal(totals.Discount))
	assert.Equal(t, 5, totals.TotalItem)

	empty := models.ComputeTotals(nil)
	assert.True(t, empty.TotalPrice.IsZero())
	assert.Equal(t, 0, empty.TotalItem)
}

func TestProduct_EffectivePrice(t *testing.T) {
	p := models.Product{Price: dec("100")}
	assert.True(t, dec("100").Equal(p.EffectivePrice()))

	p.DiscountedPrice = decimal.NewNullDecimal(dec("80"))
	assert.True(t, dec("80").Equal(p.EffectivePrice()))

	p.DiscountedPrice = decimal.NewNullDecimal(decimal.Zero)
	assert.True(t, dec("100").Equal(p.EffectivePrice()))
}

func TestProduct_JSON(t *testing.T) {
	p := models.Product{
		Name:            "Shirt",
		Price:           dec("19.99"),
		DiscountedPrice: decimal.NewNullDecimal(dec("15")),
		CategoryID:      "c1",
		Sizes:           models.NewSizes([]string{"S", "M", "S", ""}),
		Colors:          models.NewColors([]string{"Red"}),
		Images:          models.NewImages([]string{"a.png", "b.png"}),
	}
	b, err := json.Marshal(p)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, 19.99, raw["price"])
	assert.Equal(t, 15.0, raw["discountedPrice"])
	assert.Equal(t, []any{"S", "M"}, raw["sizes"])
	assert.Equal(t, []any{"Red"}, raw["colors"])
	assert.Equal(t, []any{"a.png", "b.png"}, raw["images"])
	assert.Nil(t, raw["subcategory"])

	var back models.Product
	require.NoError(t, json.Unmarshal(b, &back))
	require.Len(t, back.Sizes, 2)
	assert.Equal(t, "M", back.Sizes[1].Value)
	assert.Equal(t, "b.png", back.Images[1].URL)
}

func TestNewProductPage(t *testing.T) {
	q := models.ProductQuery{PageNumber: 2, PageSize: 10}
	page := models.NewProductPage(nil, q, 21)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)
	assert.NotNil(t, page.Content)
	assert.Equal(t, 10, q.Offset())

	assert.Equal(t, 0, models.NewProductPage(nil, q, 0).TotalPages)
	assert.Equal(t, 1, models.NewProductPage(nil, q, 10).TotalPages)
}

func TestSnapshotCart(t *testing.T) {
	cart := &models.Cart{Items: []models.CartItem{
		{ProductID: "p1", Product: &models.Product{Name: "Mug"}, Quantity: 2, Size: "L", Price: dec("20"), DiscountedPrice: dec("16")},
		{ProductID: "p2", Quantity: 3, Price: dec("15"), DiscountedPrice: dec("14")},
	}}
	order := models.SnapshotCart(cart, "u1", "a1")

	assert.Equal(t, models.OrderPlaced, order.OrderStatus)
	assert.Equal(t, models.PaymentPending, order.PaymentDetails.Status)
	assert.Equal(t, "a1", order.ShippingAddressID)
	assert.True(t, dec("35").Equal(order.TotalPrice))
	assert.True(t, dec("5").Equal(order.Discount))
	assert.Equal(t, 5, order.TotalItem)
	require.Len(t, order.OrderItems, 2)
	assert.Equal(t, "Mug", order.OrderItems[0].ProductName)
	assert.Equal(t, "u1", order.OrderItems[1].UserID)

	cart.Items[0].Price = dec("999")
	assert.True(t, dec("20").Equal(order.OrderItems[0].Price))
}
