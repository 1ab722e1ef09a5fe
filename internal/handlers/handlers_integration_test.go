package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"storefront/internal/app"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/metrics"
	"storefront/internal/models"
	"storefront/internal/services"
	"storefront/pkg/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, routingKey)
	return nil
}

func (p *recordingPublisher) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

type fakeProvider struct {
	fail bool
}

func (f *fakeProvider) CreateIntent(_ context.Context, req payment.IntentRequest) (*payment.Intent, error) {
	if f.fail {
		return nil, errors.New("provider unavailable")
	}
	return &payment.Intent{ID: "pi_test", ClientSecret: "pi_test_secret_" + req.Currency}, nil
}

type testEnv struct {
	app       *fiber.App
	publisher *recordingPublisher
	provider  *fakeProvider
}

// setupApp builds the full app over a private in-memory SQLite database.
func setupApp(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.OpenSQLiteMemory(uuid.NewString())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	env := &testEnv{publisher: &recordingPublisher{}, provider: &fakeProvider{}}
	env.app = app.New(app.Deps{
		Config: &config.Config{
			Server:  config.ServerConfig{Env: "test", CORSAllowOrigins: "*"},
			JWT:     config.JWTConfig{Secret: "test_jwt_secret", Expiration: time.Hour},
			Payment: config.PaymentConfig{Currency: "usd"},
		},
		DB:        db,
		Metrics:   metrics.New("test"),
		Publisher: env.publisher,
		Payments:  env.provider,
	})
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// expect asserts the status and decodes the body into dst when non-nil.
func (e *testEnv) expect(t *testing.T, status int, method, path, token string, body, dst any) {
	t.Helper()
	resp := e.do(t, method, path, token, body)
	defer resp.Body.Close()
	require.Equal(t, status, resp.StatusCode, "%s %s", method, path)
	if dst != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
	}
}

func (e *testEnv) register(t *testing.T, email string) string {
	t.Helper()
	var out struct {
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}
	e.expect(t, http.StatusCreated, http.MethodPost, "/auth/register", "", fiber.Map{
		"firstName": "Test",
		"lastName":  "User",
		"email":     email,
		"password":  "password123",
	}, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	creds := fiber.Map{"firstName": "Site", "lastName": "Admin", "email": "admin@example.com", "password": "adminpass"}
	e.expect(t, http.StatusCreated, http.MethodPost, "/api/admin/first-admin", "", creds, nil)

	var out struct {
		Token string `json:"token"`
	}
	e.expect(t, http.StatusOK, http.MethodPost, "/api/admin/login", "",
		fiber.Map{"email": "admin@example.com", "password": "adminpass"}, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func (e *testEnv) category(t *testing.T, token, name string, parent *string) string {
	t.Helper()
	var c models.Category
	e.expect(t, http.StatusCreated, http.MethodPost, "/api/categories", token,
		fiber.Map{"name": name, "parentCategory": parent}, &c)
	return c.ID
}

func (e *testEnv) product(t *testing.T, token string, body fiber.Map) *models.Product {
	t.Helper()
	var p models.Product
	e.expect(t, http.StatusCreated, http.MethodPost, "/api/products", token, body, &p)
	return &p
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestHealthAndMetrics(t *testing.T) {
	env := setupApp(t)

	var health map[string]string
	env.expect(t, http.StatusOK, http.MethodGet, "/health", "", nil, &health)
	assert.Equal(t, "healthy", health["status"])

	resp := env.do(t, http.MethodGet, "/metrics", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthRegisterAndLogin(t *testing.T) {
	env := setupApp(t)
	env.register(t, "test@example.com")

	var errBody map[string]any
	env.expect(t, http.StatusConflict, http.MethodPost, "/auth/register", "", fiber.Map{
		"firstName": "Other", "lastName": "User", "email": "TEST@example.com", "password": "password123",
	}, &errBody)
	assert.NotEmpty(t, errBody["error"])

	var login struct {
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}
	env.expect(t, http.StatusOK, http.MethodPost, "/auth/login", "",
		fiber.Map{"email": "test@example.com", "password": "password123"}, &login)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, models.RoleCustomer, login.User.Role)

	env.expect(t, http.StatusUnauthorized, http.MethodPost, "/auth/login", "",
		fiber.Map{"email": "test@example.com", "password": "wrong-password"}, nil)

	var verr struct {
		Error  string            `json:"error"`
		Errors map[string]string `json:"errors"`
	}
	env.expect(t, http.StatusBadRequest, http.MethodPost, "/auth/register", "",
		fiber.Map{"email": "not-an-email"}, &verr)
	assert.Equal(t, "validation failed", verr.Error)
	assert.Contains(t, verr.Errors, "email")
	assert.Contains(t, verr.Errors, "password")
}

func TestRouteGuards(t *testing.T) {
	env := setupApp(t)
	customer := env.register(t, "guard@example.com")

	env.expect(t, http.StatusUnauthorized, http.MethodGet, "/api/cart", "", nil, nil)
	env.expect(t, http.StatusUnauthorized, http.MethodGet, "/api/cart", "not-a-jwt", nil, nil)
	env.expect(t, http.StatusOK, http.MethodGet, "/api/cart", customer, nil, nil)

	// Customers cannot reach admin routes.
	env.expect(t, http.StatusForbidden, http.MethodPost, "/api/products", customer, fiber.Map{"name": "x"}, nil)
	env.expect(t, http.StatusForbidden, http.MethodGet, "/api/admin/orders", customer, nil, nil)
	env.expect(t, http.StatusForbidden, http.MethodGet, "/api/admin/analytics/summary", customer, nil, nil)
	env.expect(t, http.StatusForbidden, http.MethodPost, "/api/admin/login", "",
		fiber.Map{"email": "guard@example.com", "password": "password123"}, nil)

	admin := env.adminToken(t)
	env.expect(t, http.StatusOK, http.MethodGet, "/api/admin/analytics/summary", admin, nil, nil)

	// Only one admin may bootstrap itself.
	env.expect(t, http.StatusConflict, http.MethodPost, "/api/admin/first-admin", "",
		fiber.Map{"firstName": "Second", "lastName": "Admin", "email": "second@example.com", "password": "adminpass"}, nil)
}

func TestProductFilterScenario(t *testing.T) {
	env := setupApp(t)
	admin := env.adminToken(t)

	c1 := env.category(t, admin, "Clothing", nil)
	c2 := env.category(t, admin, "Shirts", &c1)
	other := env.category(t, admin, "Shoes", nil)

	p := env.product(t, admin, fiber.Map{
		"name": "Linen Shirt", "price": 100, "discountedPrice": 80,
		"category": c1, "subcategory": c2, "sizes": []string{"M", "L"}, "colors": []string{"White"}, "stock": 5,
	})
	cheap := env.product(t, admin, fiber.Map{
		"name": "Basic Tee", "price": 50, "category": c1, "sizes": []string{"S"}, "colors": []string{"Black"}, "stock": 0,
	})
	env.product(t, admin, fiber.Map{"name": "Runner", "price": 60, "category": other, "stock": 3})

	var page models.ProductPage
	env.expect(t, http.StatusOK, http.MethodGet, fmt.Sprintf("/api/products?category=%s&minPrice=0&maxPrice=90", c1), "", nil, &page)
	ids := productIDs(page.Content)
	assert.Contains(t, ids, p.ID)
	assert.Contains(t, ids, cheap.ID)
	assert.EqualValues(t, 2, page.TotalProducts)

	env.expect(t, http.StatusOK, http.MethodGet, fmt.Sprintf("/api/products?category=%s&minPrice=0&maxPrice=70", c1), "", nil, &page)
	assert.Equal(t, []string{cheap.ID}, productIDs(page.Content))

	// totalProducts counts the whole match, not the page.
	env.expect(t, http.StatusOK, http.MethodGet, fmt.Sprintf("/api/products?category=%s&pageSize=1", c1), "", nil, &page)
	assert.Len(t, page.Content, 1)
	assert.EqualValues(t, 2, page.TotalProducts)
	assert.Equal(t, 2, page.TotalPages)

	env.expect(t, http.StatusOK, http.MethodGet, "/api/products?sizes=M,XL&stock=in_stock", "", nil, &page)
	assert.Equal(t, []string{p.ID}, productIDs(page.Content))

	env.expect(t, http.StatusOK, http.MethodGet, "/api/products?color=whi", "", nil, &page)
	assert.Equal(t, []string{p.ID}, productIDs(page.Content))

	env.expect(t, http.StatusOK, http.MethodGet, "/api/products?sort=price_high", "", nil, &page)
	require.Len(t, page.Content, 3)
	for i := 1; i < len(page.Content); i++ {
		prev, cur := page.Content[i-1].EffectivePrice(), page.Content[i].EffectivePrice()
		assert.True(t, prev.GreaterThanOrEqual(cur), "%s before %s", prev, cur)
	}

	var verr struct {
		Errors map[string]string `json:"errors"`
	}
	env.expect(t, http.StatusBadRequest, http.MethodGet, "/api/products?minPrice=abc&maxPrice=10&sort=newest", "", nil, &verr)
	assert.Contains(t, verr.Errors, "minPrice")
	assert.Contains(t, verr.Errors, "sort")

	// A page number whose offset would overflow is rejected, not wrapped to page 1.
	verr.Errors = nil
	env.expect(t, http.StatusBadRequest, http.MethodGet, "/api/products?pageNumber=1844674407370955162&pageSize=10", "", nil, &verr)
	assert.Contains(t, verr.Errors, "pageNumber")

	env.expect(t, http.StatusOK, http.MethodGet, "/api/products?pageNumber=9&pageSize=10", "", nil, &page)
	assert.Empty(t, page.Content)
	assert.EqualValues(t, 3, page.TotalProducts)

	var got models.Product
	env.expect(t, http.StatusOK, http.MethodGet, "/api/products/id/"+p.ID, "", nil, &got)
	assert.Equal(t, "Linen Shirt", got.Name)
	env.expect(t, http.StatusNotFound, http.MethodGet, "/api/products/id/"+uuid.NewString(), "", nil, nil)
}

func productIDs(products []models.Product) []string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestCartScenario(t *testing.T) {
	env := setupApp(t)
	admin := env.adminToken(t)
	cat := env.category(t, admin, "Accessories", nil)
	socks := env.product(t, admin, fiber.Map{"name": "Socks", "price": 10, "category": cat, "stock": 10})
	capProduct := env.product(t, admin, fiber.Map{"name": "Cap", "price": 5, "category": cat, "stock": 10})

	alice := env.register(t, "alice@example.com")
	bob := env.register(t, "bob@example.com")

	var msg map[string]string
	env.expect(t, http.StatusOK, http.MethodPost, "/api/cart_items", alice, fiber.Map{"productId": socks.ID, "quantity": 2}, &msg)
	assert.Equal(t, services.ItemAddedMessage, msg["message"])
	env.expect(t, http.StatusOK, http.MethodPost, "/api/cart_items", alice, fiber.Map{"productId": capProduct.ID, "quantity": 3}, nil)
	// Adding the same product again leaves a single line.
	env.expect(t, http.StatusOK, http.MethodPost, "/api/cart_items", alice, fiber.Map{"productId": socks.ID, "quantity": 4}, &msg)
	assert.Equal(t, services.ItemAddedMessage, msg["message"])

	var cart models.Cart
	env.expect(t, http.StatusOK, http.MethodGet, "/api/cart", alice, nil, &cart)
	require.Len(t, cart.Items, 2)
	assert.True(t, dec("35").Equal(cart.TotalPrice), "totalPrice %s", cart.TotalPrice)
	assert.Equal(t, 5, cart.TotalItem)
	assert.True(t, cart.Discount.IsZero())

	itemID := cart.Items[0].ID
	before := cart.Items[0]

	// Another user can neither update nor remove the item.
	env.expect(t, http.StatusForbidden, http.MethodPut, "/api/cart_items/"+itemID, bob, fiber.Map{"quantity": 9}, nil)
	env.expect(t, http.StatusForbidden, http.MethodDelete, "/api/cart_items/"+itemID, bob, nil, nil)

	env.expect(t, http.StatusOK, http.MethodGet, "/api/cart", alice, nil, &cart)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, before.Quantity, cart.Items[0].Quantity)
	assert.True(t, before.Price.Equal(cart.Items[0].Price))

	var updated models.CartItem
	env.expect(t, http.StatusOK, http.MethodPut, "/api/cart_items/"+itemID, alice, fiber.Map{"quantity": 1}, &updated)
	assert.Equal(t, 1, updated.Quantity)

	env.expect(t, http.StatusOK, http.MethodDelete, "/api/cart_items/"+itemID, alice, nil, nil)
	env.expect(t, http.StatusOK, http.MethodGet, "/api/cart", alice, nil, &cart)
	assert.Len(t, cart.Items, 1)

	env.expect(t, http.StatusBadRequest, http.MethodPost, "/api/cart_items", alice, fiber.Map{"productId": capProduct.ID, "quantity": 0}, nil)
	env.expect(t, http.StatusNotFound, http.MethodPost, "/api/cart_items", alice, fiber.Map{"productId": uuid.NewString(), "quantity": 1}, nil)
}

func TestOrderLifecycle(t *testing.T) {
	env := setupApp(t)
	admin := env.adminToken(t)
	cat := env.category(t, admin, "Outerwear", nil)
	jacket := env.product(t, admin, fiber.Map{
		"name": "Rain Jacket", "price": 100, "discountedPrice": 80, "category": cat, "sizes": []string{"L"}, "stock": 4,
	})

	alice := env.register(t, "alice@example.com")
	bob := env.register(t, "bob@example.com")
	address := fiber.Map{
		"firstName": "Alice", "lastName": "Doe", "streetAddress": "1 Main St",
		"city": "Springfield", "state": "IL", "zipCode": "62701", "mobile": "555-0100",
	}

	// An empty cart cannot be checked out.
	env.expect(t, http.StatusBadRequest, http.MethodPost, "/api/orders", alice, fiber.Map{"shippingAddress": address}, nil)

	env.expect(t, http.StatusOK, http.MethodPost, "/api/cart_items", alice,
		fiber.Map{"productId": jacket.ID, "quantity": 2, "size": "L"}, nil)

	var order models.Order
	env.expect(t, http.StatusCreated, http.MethodPost, "/api/orders", alice, fiber.Map{"shippingAddress": address}, &order)
	assert.Equal(t, models.OrderPlaced, order.OrderStatus)
	assert.NotEmpty(t, order.ShippingAddressID)
	require.Len(t, order.OrderItems, 1)
	assert.True(t, dec("200").Equal(order.TotalPrice))
	assert.True(t, dec("160").Equal(order.TotalDiscountedPrice))
	assert.True(t, dec("40").Equal(order.Discount))
	assert.Equal(t, 2, order.TotalItem)

	// Repricing the product does not touch the placed order.
	env.expect(t, http.StatusOK, http.MethodPut, "/api/products/"+jacket.ID, admin,
		fiber.Map{"name": "Rain Jacket", "price": 150, "category": cat, "stock": 4}, nil)

	var fetched models.Order
	env.expect(t, http.StatusOK, http.MethodGet, "/api/orders/"+order.ID, alice, nil, &fetched)
	require.Len(t, fetched.OrderItems, 1)
	assert.True(t, dec("200").Equal(fetched.OrderItems[0].Price), "price %s", fetched.OrderItems[0].Price)
	assert.Equal(t, 2, fetched.OrderItems[0].Quantity)
	assert.Equal(t, "L", fetched.OrderItems[0].Size)

	env.expect(t, http.StatusForbidden, http.MethodGet, "/api/orders/"+order.ID, bob, nil, nil)
	env.expect(t, http.StatusOK, http.MethodGet, "/api/orders/"+order.ID, admin, nil, nil)

	var history []models.Order
	env.expect(t, http.StatusOK, http.MethodGet, "/api/orders/user", alice, nil, &history)
	assert.Len(t, history, 1)
	env.expect(t, http.StatusOK, http.MethodGet, "/api/orders", bob, nil, &history)
	assert.Empty(t, history)

	// Cancel, then a delivery attempt is rejected and the status stays.
	var cancelled models.Order
	env.expect(t, http.StatusOK, http.MethodPut, "/api/admin/orders/"+order.ID+"/cancel", admin, nil, &cancelled)
	assert.Equal(t, models.OrderCancelled, cancelled.OrderStatus)

	var errBody map[string]any
	env.expect(t, http.StatusConflict, http.MethodPut, "/api/admin/orders/"+order.ID+"/deliver", admin, nil, &errBody)
	assert.NotEmpty(t, errBody["error"])

	env.expect(t, http.StatusOK, http.MethodGet, "/api/orders/"+order.ID, alice, nil, &fetched)
	assert.Equal(t, models.OrderCancelled, fetched.OrderStatus)
	assert.Nil(t, fetched.DeliveryDate)

	assert.Equal(t, []string{services.EventOrderCreated, services.EventOrderStatusChanged}, env.publisher.Keys())

	var all []models.Order
	env.expect(t, http.StatusOK, http.MethodGet, "/api/admin/orders", admin, nil, &all)
	assert.Len(t, all, 1)
	env.expect(t, http.StatusOK, http.MethodDelete, "/api/admin/orders/"+order.ID, admin, nil, nil)
	env.expect(t, http.StatusNotFound, http.MethodGet, "/api/orders/"+order.ID, alice, nil, nil)
}

func TestOrderDeliveryPath(t *testing.T) {
	env := setupApp(t)
	admin := env.adminToken(t)
	cat := env.category(t, admin, "Bags", nil)
	bag := env.product(t, admin, fiber.Map{"name": "Tote", "price": 30, "category": cat, "stock": 2})

	alice := env.register(t, "alice@example.com")
	var addr models.Address
	env.expect(t, http.StatusCreated, http.MethodPost, "/api/users/addresses", alice, fiber.Map{
		"firstName": "Alice", "lastName": "Doe", "streetAddress": "1 Main St",
		"city": "Springfield", "state": "IL", "zipCode": "62701", "mobile": "555-0100",
	}, &addr)
	env.expect(t, http.StatusOK, http.MethodPost, "/api/cart_items", alice, fiber.Map{"productId": bag.ID, "quantity": 1}, nil)

	var order models.Order
	env.expect(t, http.StatusCreated, http.MethodPost, "/api/orders", alice, fiber.Map{"addressId": addr.ID}, &order)
	assert.Equal(t, addr.ID, order.ShippingAddressID)

	// Skipping a step is rejected.
	env.expect(t, http.StatusConflict, http.MethodPut, "/api/admin/orders/"+order.ID+"/ship", admin, nil, nil)

	for _, step := range []struct {
		path string
		want models.OrderStatus
	}{
		{"confirmed", models.OrderConfirmed},
		{"ship", models.OrderShipped},
		{"out-for-delivery", models.OrderOutForDelivery},
		{"deliver", models.OrderDelivered},
	} {
		var got models.Order
		env.expect(t, http.StatusOK, http.MethodPut, "/api/admin/orders/"+order.ID+"/"+step.path, admin, nil, &got)
		assert.Equal(t, step.want, got.OrderStatus)
	}

	var delivered models.Order
	env.expect(t, http.StatusOK, http.MethodGet, "/api/orders/"+order.ID, alice, nil, &delivered)
	assert.NotNil(t, delivered.DeliveryDate)

	env.expect(t, http.StatusConflict, http.MethodPut, "/api/admin/orders/"+order.ID+"/cancel", admin, nil, nil)
	env.expect(t, http.StatusNotFound, http.MethodPut, "/api/admin/orders/"+uuid.NewString()+"/ship", admin, nil, nil)

	var top []models.TopProduct
	env.expect(t, http.StatusOK, http.MethodGet, "/api/admin/analytics/top-products", admin, nil, &top)
	require.NotEmpty(t, top)
	assert.Equal(t, bag.ID, top[0].ProductID)

	env.expect(t, http.StatusBadRequest, http.MethodGet, "/api/admin/analytics/sales?year=abc", admin, nil, nil)
	var sales []models.MonthlySales
	env.expect(t, http.StatusOK, http.MethodGet, "/api/admin/analytics/sales", admin, nil, &sales)
	assert.Len(t, sales, 12)
}

func TestEngagementRoutes(t *testing.T) {
	env := setupApp(t)
	admin := env.adminToken(t)
	cat := env.category(t, admin, "Hats", nil)
	hat := env.product(t, admin, fiber.Map{"name": "Beanie", "price": 15, "category": cat, "stock": 7})
	alice := env.register(t, "alice@example.com")

	var wl struct {
		Wishlist []models.WishlistItem `json:"wishlist"`
	}
	env.expect(t, http.StatusOK, http.MethodPost, "/api/wishlist/add", alice, fiber.Map{"productId": hat.ID}, &wl)
	assert.Len(t, wl.Wishlist, 1)
	env.expect(t, http.StatusOK, http.MethodDelete, "/api/wishlist/remove/"+hat.ID, alice, nil, &wl)
	assert.Empty(t, wl.Wishlist)

	env.expect(t, http.StatusUnauthorized, http.MethodPost, "/api/reviews", "", fiber.Map{"productId": hat.ID, "review": "Warm"}, nil)
	env.expect(t, http.StatusCreated, http.MethodPost, "/api/reviews", alice, fiber.Map{"productId": hat.ID, "review": "Warm"}, nil)
	env.expect(t, http.StatusBadRequest, http.MethodPost, "/api/ratings", alice, fiber.Map{"productId": hat.ID, "rating": 6}, nil)
	env.expect(t, http.StatusCreated, http.MethodPost, "/api/ratings", alice, fiber.Map{"productId": hat.ID, "rating": 4}, nil)

	var reviews []models.Review
	env.expect(t, http.StatusOK, http.MethodGet, "/api/reviews/product/"+hat.ID, "", nil, &reviews)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Warm", reviews[0].Review)

	var ratings []models.Rating
	env.expect(t, http.StatusOK, http.MethodGet, "/api/ratings/product/"+hat.ID, "", nil, &ratings)
	require.Len(t, ratings, 1)
	assert.Equal(t, 4, ratings[0].Rating)
}

func TestPaymentIntent(t *testing.T) {
	env := setupApp(t)
	alice := env.register(t, "alice@example.com")

	var out map[string]string
	env.expect(t, http.StatusOK, http.MethodPost, "/api/payment/create-payment-intent", alice, fiber.Map{"amount": 49.99}, &out)
	assert.Equal(t, "pi_test", out["paymentIntentId"])
	assert.Equal(t, "pi_test_secret_usd", out["clientSecret"])

	env.expect(t, http.StatusBadRequest, http.MethodPost, "/api/payment/create-payment-intent", alice, fiber.Map{"amount": 0}, nil)

	env.provider.fail = true
	env.expect(t, http.StatusBadGateway, http.MethodPost, "/api/payment/create-payment-intent", alice, fiber.Map{"amount": 10}, nil)
}
