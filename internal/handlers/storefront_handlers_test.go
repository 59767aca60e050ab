package handlers

import (
	"net/http"
	"testing"

	"canvas_shop_backend/internal/models"
	"canvas_shop_backend/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutBody(email string) map[string]interface{} {
	return map[string]interface{}{
		"customer": map[string]string{
			"name": "Ana Pop", "email": email, "phone": "0722000000",
			"street": "Str. Lunga 1", "city": "Brasov", "county": "Brasov",
		},
		"items":          []map[string]interface{}{{"type": "painting", "paintingId": "p1", "sizeId": "s-30x40", "quantity": 1}},
		"deliveryMethod": "standard",
		"paymentMethod":  "cash",
	}
}

func storefrontRouter(svc *stubOrderService) http.Handler {
	h := NewStorefrontHandler(nil, nil, svc)
	r := newEngine()
	r.POST("/shop/orders", h.Checkout)
	return r
}

func TestCheckout(t *testing.T) {
	svc := &stubOrderService{order: &models.Order{
		ID: "o1", OrderNumber: "CV-240501-ABCDEF", Total: decimal.RequireFromString("100"), Status: models.OrderStatusNew,
	}}
	r := storefrontRouter(svc)

	w := perform(r, http.MethodPost, "/shop/orders", checkoutBody("ana@example.com"))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":"o1","orderNumber":"CV-240501-ABCDEF","total":"100","status":"new"}`, w.Body.String())
	require.NotNil(t, svc.checkout)
	assert.Equal(t, "p1", svc.checkout.Items[0].PaintingID)
}

func TestCheckoutRejectsBadInput(t *testing.T) {
	svc := &stubOrderService{}
	r := storefrontRouter(svc)

	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodPost, "/shop/orders", checkoutBody("nope")).Code)

	body := checkoutBody("ana@example.com")
	body["items"] = []interface{}{}
	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodPost, "/shop/orders", body).Code)
	assert.Nil(t, svc.checkout)
}

func TestCheckoutErrors(t *testing.T) {
	cases := map[error]int{
		services.ErrCheckoutTimeout: http.StatusGatewayTimeout,
		services.ErrValidation:      http.StatusBadRequest,
	}
	for err, code := range cases {
		r := storefrontRouter(&stubOrderService{err: err})
		assert.Equal(t, code, perform(r, http.MethodPost, "/shop/orders", checkoutBody("ana@example.com")).Code, err.Error())
	}
}
