package integrations

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cowork-booking/internal/wizard"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	bookingsPath         = "/api/bookings"
	IdempotencyKeyHeader = "Idempotency-Key"
	UserIDHeader         = "X-User-ID"
)

type BookingClient struct {
	client jsonClient
	log    *zap.Logger
}

func NewBookingClient(baseURL string, timeout time.Duration, log *zap.Logger) *BookingClient {
	log = log.With(zap.String("client", "booking"))
	return &BookingClient{
		client: newJSONClient(baseURL, timeout, log),
		log:    log,
	}
}

type bookingResponse struct {
	PaymentURL string `json:"paymentUrl"`
	Booking    *struct {
		ID         string  `json:"id"`
		TotalPrice float64 `json:"totalPrice"`
	} `json:"booking"`
}

// Create submits a booking on behalf of userID. Retries with the same
// idempotency key must not create a second booking upstream.
func (c *BookingClient) Create(ctx context.Context, sub wizard.Submission, idempotencyKey string, userID uuid.UUID) (wizard.Receipt, error) {
	headers := http.Header{}
	if idempotencyKey != "" {
		headers.Set(IdempotencyKeyHeader, idempotencyKey)
	}
	headers.Set(UserIDHeader, userID.String())

	var resp bookingResponse
	if err := c.client.post(ctx, bookingsPath, headers, sub, &resp); err != nil {
		return wizard.Receipt{}, fmt.Errorf("create booking for space %s: %w", sub.SpaceID, err)
	}

	receipt := wizard.Receipt{PaymentURL: resp.PaymentURL}
	if resp.Booking != nil {
		receipt.BookingID = resp.Booking.ID
		receipt.Amount = resp.Booking.TotalPrice
	}

	c.log.Info("Booking created upstream",
		zap.String("space_id", sub.SpaceID),
		zap.String("booking_id", receipt.BookingID),
		zap.Bool("payment_redirect", receipt.PaymentURL != ""),
	)
	return receipt, nil
}
