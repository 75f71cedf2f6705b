package payment

import (
	"context"
	"errors"
	"fmt"

	"bookcourier/internal/config"
	"bookcourier/internal/logger"
	"bookcourier/internal/models"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

var (
	ErrStripeAPIError         = errors.New("stripe API error")
	ErrStripeClientInitFailed = errors.New("failed to initialize Stripe client")
)

// Session is the provider-side checkout state the confirmation flow
// consumes. It is the source of truth for payment status; the client's
// claim is never trusted.
type Session struct {
	ID            string
	TransactionID string
	OrderID       string
	CustomerEmail string
	Currency      string
	AmountTotal   int64
	Paid          bool
}

// Provider abstracts the checkout provider so the confirmation flow can be
// exercised without Stripe.
type Provider interface {
	CreateSession(ctx context.Context, order *models.Order, book *models.Book) (*models.CheckoutResponse, error)
	GetSession(ctx context.Context, sessionID string) (*Session, error)
}

// StripeProvider drives Stripe Checkout sessions.
type StripeProvider struct {
	client *client.API
	cfg    config.StripeConfig
	log    *logger.Logger
}

func NewStripeProvider(cfg config.StripeConfig, log *logger.Logger) (*StripeProvider, error) {
	if cfg.SecretKey == "" {
		log.Error("STRIPE", "STRIPE_SECRET_KEY environment variable not set")
		return nil, ErrStripeClientInitFailed
	}

	sc := client.New(cfg.SecretKey, nil)
	log.Info("STRIPE", "Stripe client initialized successfully")
	return &StripeProvider{client: sc, cfg: cfg, log: log}, nil
}

// CreateSession opens a Stripe Checkout session for one order. The order id
// rides along in the session metadata so the confirmation flow can find the
// order again.
func (p *StripeProvider) CreateSession(ctx context.Context, order *models.Order, book *models.Book) (*models.CheckoutResponse, error) {
	amountInCents := int64(order.Price * 100)

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:    stripe.String(p.cfg.SuccessURL),
		CancelURL:     stripe.String(p.cfg.CancelURL),
		CustomerEmail: stripe.String(order.CustomerEmail),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(p.cfg.Currency),
					UnitAmount: stripe.Int64(amountInCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(book.BookName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("order_id", order.ID)

	sess, err := p.client.CheckoutSessions.New(params)
	if err != nil {
		p.log.Error("STRIPE", fmt.Sprintf("Failed to create checkout session for order %s: %v", order.ID, err))
		return nil, fmt.Errorf("%w: %v", ErrStripeAPIError, err)
	}

	p.log.LogPayment("SESSION_CREATED", sess.ID, fmt.Sprintf("order %s, amount %d %s", order.ID, amountInCents, p.cfg.Currency))
	return &models.CheckoutResponse{SessionID: sess.ID, URL: sess.URL}, nil
}

// GetSession retrieves the authoritative session state from Stripe.
func (p *StripeProvider) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	params.AddExpand("payment_intent")

	sess, err := p.client.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		p.log.Error("STRIPE", fmt.Sprintf("Failed to retrieve checkout session %s: %v", sessionID, err))
		return nil, fmt.Errorf("%w: %v", ErrStripeAPIError, err)
	}

	out := &Session{
		ID:          sess.ID,
		OrderID:     sess.Metadata["order_id"],
		Currency:    string(sess.Currency),
		AmountTotal: sess.AmountTotal,
		Paid:        sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
	}
	if sess.PaymentIntent != nil {
		out.TransactionID = sess.PaymentIntent.ID
	}
	if sess.CustomerDetails != nil && sess.CustomerDetails.Email != "" {
		out.CustomerEmail = sess.CustomerDetails.Email
	} else {
		out.CustomerEmail = sess.CustomerEmail
	}
	return out, nil
}
