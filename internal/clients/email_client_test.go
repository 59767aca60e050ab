package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"canvas_shop_backend/internal/config"
	"canvas_shop_backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() *models.Order {
	return &models.Order{
		ID:          "o1",
		OrderNumber: "CV-240502-A1B2C3",
		Customer: models.Customer{
			Name: "Ana Pop", Email: "ana@example.com", Phone: "0722000000",
			Street: "Str. Lunga 1", City: "Brasov", County: "Brasov",
		},
		Items: models.LineItems{
			&models.PaintingItem{PaintingTitle: "Sea", SizeID: "s1", Quantity: 2, Price: decimal.NewFromInt(125)},
			&models.PersonalizedItem{Size: "30x40", Price: decimal.NewFromInt(90)},
		},
		Subtotal:     decimal.NewFromInt(340),
		DeliveryCost: decimal.NewFromInt(20),
		Total:        decimal.NewFromInt(360),
	}
}

func TestSendOrderConfirmationPostsOrder(t *testing.T) {
	var got OrderEmail
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewEmailClient(&config.EmailConfig{OrderConfirmationURL: srv.URL, APIKey: "k", Timeout: time.Second})
	require.NoError(t, c.SendOrderConfirmation(context.Background(), sampleOrder()))

	assert.Equal(t, "Bearer k", auth)
	assert.Equal(t, "CV-240502-A1B2C3", got.OrderNumber)
	assert.Equal(t, "Ana Pop", got.CustomerName)
	assert.Equal(t, "ana@example.com", got.CustomerEmail)
	assert.Equal(t, "360.00 lei", got.Total)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "30x40", got.Items[1].Size)
	assert.Equal(t, "Str. Lunga 1, Brasov, Brasov", got.Address)
}

func TestSendShippedNoticeNotConfigured(t *testing.T) {
	c := NewEmailClient(&config.EmailConfig{Timeout: time.Second})
	err := c.SendShippedNotice(context.Background(), sampleOrder())
	assert.ErrorIs(t, err, ErrEmailNotConfigured)
}

func TestSendEmailProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewEmailClient(&config.EmailConfig{ShippedURL: srv.URL, Timeout: time.Second})
	err := c.SendShippedNotice(context.Background(), sampleOrder())

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
}

func TestSendEmailTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewEmailClient(&config.EmailConfig{OrderConfirmationURL: srv.URL, Timeout: 20 * time.Millisecond})
	err := c.SendOrderConfirmation(context.Background(), sampleOrder())
	assert.ErrorIs(t, err, ErrTimeout)
}
