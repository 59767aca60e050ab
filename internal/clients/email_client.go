package clients

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"canvas_shop_backend/internal/config"
	"canvas_shop_backend/internal/models"
	"canvas_shop_backend/pkg/utils"
)

var ErrEmailNotConfigured = errors.New("email endpoint not configured")

// EmailItem is one order line as shown in a notification email.
type EmailItem struct {
	Title    string `json:"title"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

// OrderEmail is the body posted to the email function.
type OrderEmail struct {
	OrderNumber    string      `json:"orderNumber"`
	CustomerName   string      `json:"customerName"`
	CustomerEmail  string      `json:"customerEmail"`
	CustomerPhone  string      `json:"customerPhone,omitempty"`
	Address        string      `json:"address,omitempty"`
	Items          []EmailItem `json:"items,omitempty"`
	Subtotal       string      `json:"subtotal,omitempty"`
	DeliveryCost   string      `json:"deliveryCost,omitempty"`
	Total          string      `json:"total"`
	DeliveryMethod string      `json:"deliveryMethod,omitempty"`
	PaymentMethod  string      `json:"paymentMethod,omitempty"`
	AWBNumber      string      `json:"awbNumber,omitempty"`
	TrackingURL    string      `json:"trackingUrl,omitempty"`
}

// EmailClient posts transactional notices to the hosted email functions.
type EmailClient struct {
	cfg        *config.EmailConfig
	httpClient *http.Client
}

func NewEmailClient(cfg *config.EmailConfig) *EmailClient {
	return &EmailClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *EmailClient) SendOrderConfirmation(ctx context.Context, order *models.Order) error {
	return c.send(ctx, c.cfg.OrderConfirmationURL, "order confirmation", buildOrderEmail(order))
}

func (c *EmailClient) SendShippedNotice(ctx context.Context, order *models.Order) error {
	return c.send(ctx, c.cfg.ShippedURL, "shipped notice", buildOrderEmail(order))
}

func (c *EmailClient) send(ctx context.Context, url, kind string, body OrderEmail) error {
	if url == "" {
		return fmt.Errorf("%w: %s", ErrEmailNotConfigured, kind)
	}
	headers := map[string]string{}
	if c.cfg.APIKey != "" {
		headers["Authorization"] = "Bearer " + c.cfg.APIKey
	}
	if err := doJSON(ctx, c.httpClient, "email "+kind, http.MethodPost, url, headers, body, nil); err != nil {
		return err
	}
	utils.LogInfo("Email sent", map[string]interface{}{"kind": kind, "order_number": body.OrderNumber})
	return nil
}

func buildOrderEmail(o *models.Order) OrderEmail {
	e := OrderEmail{
		OrderNumber:    o.OrderNumber,
		CustomerName:   o.Customer.Name,
		CustomerEmail:  o.Customer.Email,
		CustomerPhone:  o.Customer.Phone,
		Address:        formatAddress(o.Customer),
		Subtotal:       utils.FormatLei(o.Subtotal),
		DeliveryCost:   utils.FormatLei(o.DeliveryCost),
		Total:          utils.FormatLei(o.Total),
		DeliveryMethod: string(o.DeliveryMethod),
		PaymentMethod:  string(o.PaymentMethod),
	}
	for _, item := range o.Items {
		switch it := item.(type) {
		case *models.PaintingItem:
			e.Items = append(e.Items, EmailItem{Title: it.PaintingTitle, Size: it.SizeID, Quantity: it.Quantity, Price: utils.FormatLei(it.Price)})
		case *models.PersonalizedItem:
			e.Items = append(e.Items, EmailItem{Title: "Tablou personalizat", Size: it.Size, Quantity: 1, Price: utils.FormatLei(it.Price)})
		}
	}
	if o.Shipping != nil {
		e.AWBNumber = o.Shipping.AWBNumber
		e.TrackingURL = o.Shipping.TrackingURL
	}
	return e
}

func formatAddress(c models.Customer) string {
	parts := []string{}
	for _, p := range []string{c.Street, c.City, c.County, c.PostalCode} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
