package clients

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"canvas_shop_backend/internal/config"

	"github.com/shopspring/decimal"
)

var ErrCourierNotConfigured = errors.New("courier integration not configured")

// AWBRecipient is the delivery address printed on the label.
type AWBRecipient struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email,omitempty"`
	Street     string `json:"street"`
	City       string `json:"city"`
	County     string `json:"county"`
	PostalCode string `json:"postalCode,omitempty"`
	Company    string `json:"company,omitempty"`
}

type AWBParcel struct {
	WeightKg decimal.Decimal `json:"weightKg"`
	LengthCm int             `json:"lengthCm"`
	WidthCm  int             `json:"widthCm"`
	HeightCm int             `json:"heightCm"`
}

// AWBRequest asks the courier for a new airway bill.
type AWBRequest struct {
	ClientID       string          `json:"clientId"`
	Reference      string          `json:"reference"`
	Recipient      AWBRecipient    `json:"recipient"`
	Parcel         AWBParcel       `json:"parcel"`
	CashOnDelivery decimal.Decimal `json:"cashOnDelivery"`
	Service        string          `json:"service,omitempty"`
}

type AWBResult struct {
	AWBNumber   string `json:"awbNumber"`
	Status      string `json:"status"`
	TrackingURL string `json:"trackingUrl"`
}

type TrackingEvent struct {
	Status    string `json:"status"`
	Location  string `json:"location,omitempty"`
	Timestamp string `json:"timestamp"`
}

type AWBTracking struct {
	AWBNumber string          `json:"awbNumber"`
	Status    string          `json:"status"`
	Events    []TrackingEvent `json:"events"`
}

// CourierClient talks to the courier's AWB REST API with basic auth.
type CourierClient struct {
	cfg        *config.CourierConfig
	httpClient *http.Client
}

func NewCourierClient(cfg *config.CourierConfig) *CourierClient {
	return &CourierClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Configured reports whether credentials and an endpoint are set.
func (c *CourierClient) Configured() bool {
	return c.cfg.BaseURL != "" && c.cfg.Username != "" && c.cfg.Password != ""
}

func (c *CourierClient) GenerateAWB(ctx context.Context, req AWBRequest) (*AWBResult, error) {
	if !c.Configured() {
		return nil, ErrCourierNotConfigured
	}
	if req.ClientID == "" {
		req.ClientID = c.cfg.ClientID
	}
	var res AWBResult
	if err := doJSON(ctx, c.httpClient, "courier", http.MethodPost, c.endpoint("awb"), c.headers(), req, &res); err != nil {
		return nil, err
	}
	if res.AWBNumber == "" {
		return nil, fmt.Errorf("courier returned no AWB number for %s", req.Reference)
	}
	return &res, nil
}

func (c *CourierClient) TrackAWB(ctx context.Context, awb string) (*AWBTracking, error) {
	if !c.Configured() {
		return nil, ErrCourierNotConfigured
	}
	var res AWBTracking
	path := "awb/" + url.PathEscape(awb) + "/tracking"
	if err := doJSON(ctx, c.httpClient, "courier", http.MethodGet, c.endpoint(path), c.headers(), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// DownloadLabel returns the label PDF for awb.
func (c *CourierClient) DownloadLabel(ctx context.Context, awb string) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrCourierNotConfigured
	}
	headers := c.headers()
	headers["Accept"] = "application/pdf"
	path := "awb/" + url.PathEscape(awb) + "/label?format=pdf"
	return doRequest(ctx, c.httpClient, "courier", http.MethodGet, c.endpoint(path), headers, nil)
}

func (c *CourierClient) endpoint(path string) string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + "/" + path
}

func (c *CourierClient) headers() map[string]string {
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	h := map[string]string{"Authorization": req.Header.Get("Authorization")}
	if c.cfg.ClientID != "" {
		h["X-Client-Id"] = c.cfg.ClientID
	}
	return h
}
