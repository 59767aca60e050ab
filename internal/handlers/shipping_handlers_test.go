package handlers

import (
	"context"
	"net/http"
	"testing"

	"canvas_shop_backend/internal/clients"
	"canvas_shop_backend/internal/models"
	"canvas_shop_backend/internal/services"

	"github.com/stretchr/testify/assert"
)

type stubShippingService struct {
	err error
}

func (s *stubShippingService) GenerateAWB(context.Context, string, services.GenerateAWBRequest, models.Actor) (*models.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Order{ID: "o1", Shipping: &models.Shipping{AWBNumber: "AWB1"}}, nil
}

func (s *stubShippingService) UpdateAWBTracking(context.Context, string) (*models.Order, error) {
	return nil, s.err
}

func (s *stubShippingService) DownloadAWBLabel(context.Context, string) ([]byte, string, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	return []byte("%PDF"), "AWB-AWB1.pdf", nil
}

func shippingRouter(svc services.ShippingService) http.Handler {
	h := NewShippingHandler(svc)
	r := newEngine(asStaff("Paul", models.RoleProduction))
	r.POST("/orders/:id/awb", h.GenerateAWB)
	r.POST("/orders/:id/awb/tracking", h.UpdateTracking)
	r.GET("/orders/:id/awb/label", h.DownloadLabel)
	return r
}

func TestDownloadLabel(t *testing.T) {
	w := perform(shippingRouter(&stubShippingService{}), http.MethodGet, "/orders/o1/awb/label", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "AWB-AWB1.pdf")
	assert.Equal(t, "%PDF", w.Body.String())
}

func TestShippingErrorMapping(t *testing.T) {
	parcel := map[string]interface{}{"weightKg": "2.5", "lengthCm": 60, "widthCm": 50, "heightCm": 8}

	w := perform(shippingRouter(&stubShippingService{}), http.MethodPost, "/orders/o1/awb", parcel)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = perform(shippingRouter(&stubShippingService{err: clients.ErrCourierNotConfigured}), http.MethodPost, "/orders/o1/awb", parcel)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = perform(shippingRouter(&stubShippingService{err: services.ErrNoAWB}), http.MethodPost, "/orders/o1/awb/tracking", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = perform(shippingRouter(&stubShippingService{err: &clients.StatusError{Service: "courier", StatusCode: 500}}), http.MethodGet, "/orders/o1/awb/label", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
