package services

import (
	"context"
	"testing"

	"canvas_shop_backend/internal/clients"
	"canvas_shop_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCourier struct {
	last   clients.AWBRequest
	calls  int
	status string
	err    error
}

func (c *fakeCourier) GenerateAWB(_ context.Context, req clients.AWBRequest) (*clients.AWBResult, error) {
	c.calls++
	c.last = req
	if c.err != nil {
		return nil, c.err
	}
	return &clients.AWBResult{AWBNumber: "AWB123", Status: "created", TrackingURL: "https://track/AWB123"}, nil
}

func (c *fakeCourier) TrackAWB(_ context.Context, awb string) (*clients.AWBTracking, error) {
	return &clients.AWBTracking{AWBNumber: awb, Status: c.status}, nil
}

func (c *fakeCourier) DownloadLabel(context.Context, string) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

func newShippingFixture(t *testing.T, orders ...*models.Order) (*testEnv, ShippingService, *fakeCourier) {
	t.Helper()
	env := newTestEnv(orders...)
	require.NoError(t, env.state.Init(context.Background()))
	courier := &fakeCourier{status: "in transit"}
	return env, NewShippingService(env.state, courier, &fakeAudit{}), courier
}

func parcel() GenerateAWBRequest {
	return GenerateAWBRequest{WeightKg: d("2.5"), LengthCm: 60, WidthCm: 50, HeightCm: 8}
}

func TestGenerateAWBStoresShipping(t *testing.T) {
	o := newOrder("o1", models.OrderStatusInProduction)
	o.PaymentMethod = models.PaymentCash
	o.PaymentStatus = models.PaymentUnpaid
	env, svc, courier := newShippingFixture(t, o)

	updated, err := svc.GenerateAWB(context.Background(), "o1", parcel(), production)
	env.state.tasks.Wait()

	require.NoError(t, err)
	require.NotNil(t, updated.Shipping)
	assert.Equal(t, "AWB123", updated.Shipping.AWBNumber)
	assert.Equal(t, "created", updated.Shipping.AWBStatus)
	assert.NotNil(t, updated.Shipping.AWBGeneratedAt)
	assert.Equal(t, "100.00", courier.last.CashOnDelivery.StringFixed(2))
	assert.Equal(t, o.OrderNumber, courier.last.Reference)
	assert.Equal(t, "AWB123", env.orders.orders["o1"].Shipping.AWBNumber)

	_, err = svc.GenerateAWB(context.Background(), "o1", parcel(), production)
	assert.ErrorIs(t, err, ErrAWBExists)
	assert.Equal(t, 1, courier.calls)
}

func TestGenerateAWBPaidOrderHasNoCashOnDelivery(t *testing.T) {
	o := newOrder("o1", models.OrderStatusInProduction)
	o.PaymentMethod = models.PaymentCard
	o.PaymentStatus = models.PaymentPaid
	env, svc, courier := newShippingFixture(t, o)

	_, err := svc.GenerateAWB(context.Background(), "o1", parcel(), production)
	env.state.tasks.Wait()

	require.NoError(t, err)
	assert.True(t, courier.last.CashOnDelivery.IsZero())
}

func TestGenerateAWBFailures(t *testing.T) {
	env, svc, courier := newShippingFixture(t, newOrder("o1", models.OrderStatusInProduction))
	ctx := context.Background()

	_, err := svc.GenerateAWB(ctx, "ghost", parcel(), production)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	bad := parcel()
	bad.WeightKg = d("0")
	_, err = svc.GenerateAWB(ctx, "o1", bad, production)
	assert.ErrorIs(t, err, ErrValidation)

	courier.err = clients.ErrCourierNotConfigured
	_, err = svc.GenerateAWB(ctx, "o1", parcel(), production)
	assert.ErrorIs(t, err, clients.ErrCourierNotConfigured)
	assert.Nil(t, env.state.Orders.snapshot("o1").Shipping)
}

func TestTrackingAndLabelRequireAWB(t *testing.T) {
	env, svc, _ := newShippingFixture(t, newOrder("o1", models.OrderStatusInProduction))
	ctx := context.Background()

	_, err := svc.UpdateAWBTracking(ctx, "o1")
	assert.ErrorIs(t, err, ErrNoAWB)
	_, _, err = svc.DownloadAWBLabel(ctx, "o1")
	assert.ErrorIs(t, err, ErrNoAWB)

	_, err = svc.GenerateAWB(ctx, "o1", parcel(), production)
	require.NoError(t, err)
	env.state.tasks.Wait()

	tracked, err := svc.UpdateAWBTracking(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, "in transit", tracked.Shipping.AWBStatus)

	pdf, name, err := svc.DownloadAWBLabel(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, "AWB-AWB123.pdf", name)
	assert.Equal(t, []byte("%PDF-1.4"), pdf)
}
