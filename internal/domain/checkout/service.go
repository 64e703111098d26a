// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// ErrEmptyCart is returned when checkout is attempted with no line items
var ErrEmptyCart = fmt.Errorf("checkout: cart is empty")

// ErrOrderNotFound is returned when a confirmation record is missing or
// has expired
var ErrOrderNotFound = fmt.Errorf("checkout: order not found")

// Service handles checkout business logic. There is no payment and no
// order lifecycle: checkout composes a pre-filled WhatsApp message from
// the cart, records an ephemeral confirmation order in memory, and clears
// the cart. Orders disappear when their TTL elapses.
type Service struct {
	carts    *cart.Manager
	catalog  *catalog.Client
	orderTTL time.Duration
	log      *logrus.Entry

	mu     sync.Mutex
	orders map[string]Order
}

// NewService creates a new checkout service
func NewService(carts *cart.Manager, catalogClient *catalog.Client, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		carts:    carts,
		catalog:  catalogClient,
		orderTTL: cfg.Checkout.OrderTTL,
		log:      logger.WithField("component", "checkout"),
		orders:   make(map[string]Order),
	}
}

// CheckoutRequest represents the customer details collected at checkout
type CheckoutRequest struct {
	CustomerName string `json:"customer_name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Address      string `json:"address" binding:"required"`
	Note         string `json:"note"`
}

// Order is the ephemeral confirmation record shown once after checkout
type Order struct {
	ID           string          `json:"id"`
	TenantSlug   string          `json:"tenant_slug"`
	Items        []cart.LineItem `json:"items"`
	Subtotal     int64           `json:"subtotal"`
	CustomerName string          `json:"customer_name"`
	Phone        string          `json:"phone"`
	Address      string          `json:"address"`
	Note         string          `json:"note,omitempty"`
	WhatsAppURL  string          `json:"whatsapp_url"`
	CreatedAt    time.Time       `json:"created_at"`

	expiresAt time.Time
}

// Checkout snapshots the tenant's cart, composes the order message and
// deep link, records the confirmation order and clears the cart
func (s *Service) Checkout(ctx context.Context, tenantSlug string, req *CheckoutRequest) (*Order, error) {
	store := s.carts.Store(tenantSlug)
	snap := store.Snapshot()
	if len(snap.Items) == 0 {
		return nil, ErrEmptyCart
	}

	company, err := s.catalog.GetCompany(ctx, tenantSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to load company profile: %w", err)
	}

	now := time.Now().UTC()
	order := Order{
		ID:           uuid.New().String(),
		TenantSlug:   tenantSlug,
		Items:        snap.Items,
		Subtotal:     snap.Subtotal,
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Address:      req.Address,
		Note:         req.Note,
		CreatedAt:    now,
		expiresAt:    now.Add(s.orderTTL),
	}
	order.WhatsAppURL = DeepLink(company.WhatsAppNumber, ComposeMessage(company, &order))

	s.mu.Lock()
	s.pruneLocked(now)
	s.orders[order.ID] = order
	s.mu.Unlock()

	store.Clear()

	s.log.WithFields(logrus.Fields{
		"tenant":   tenantSlug,
		"order_id": order.ID,
		"items":    len(order.Items),
	}).Info("checkout completed")

	return &order, nil
}

// GetOrder returns a confirmation record while it is still live
func (s *Service) GetOrder(orderID string) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok || time.Now().UTC().After(order.expiresAt) {
		delete(s.orders, orderID)
		return nil, ErrOrderNotFound
	}
	return &order, nil
}

// pruneLocked drops expired confirmation records. Caller holds the mutex.
func (s *Service) pruneLocked(now time.Time) {
	for id, order := range s.orders {
		if now.After(order.expiresAt) {
			delete(s.orders, id)
		}
	}
}

// ComposeMessage renders the human-readable order summary sent over the
// messaging deep link
func ComposeMessage(company *catalog.Company, order *Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "New order for %s\n\n", company.Name)
	for i, item := range order.Items {
		fmt.Fprintf(&b, "%d. %s x%d — %s\n",
			i+1, item.DisplayName, item.Quantity,
			FormatPrice(item.UnitPrice*int64(item.Quantity), company.Currency))
	}
	fmt.Fprintf(&b, "\nSubtotal: %s\n", FormatPrice(order.Subtotal, company.Currency))
	fmt.Fprintf(&b, "\nName: %s\nPhone: %s\nAddress: %s\n",
		order.CustomerName, order.Phone, order.Address)
	if order.Note != "" {
		fmt.Fprintf(&b, "Note: %s\n", order.Note)
	}

	return b.String()
}

// DeepLink builds the wa.me link that opens a chat pre-filled with the
// order message
func DeepLink(whatsAppNumber, message string) string {
	number := strings.NewReplacer("+", "", " ", "", "-", "").Replace(whatsAppNumber)
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(message))
}

// FormatPrice renders minor units with a currency code
func FormatPrice(minorUnits int64, currency string) string {
	return fmt.Sprintf("%s %d.%02d", currency, minorUnits/100, minorUnits%100)
}
