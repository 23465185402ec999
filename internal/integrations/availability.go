package integrations

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const availabilityPath = "/api/bookings/check-availability"

type AvailabilityClient struct {
	client jsonClient
	log    *zap.Logger
}

func NewAvailabilityClient(baseURL string, timeout time.Duration, log *zap.Logger) *AvailabilityClient {
	log = log.With(zap.String("client", "availability"))
	return &AvailabilityClient{
		client: newJSONClient(baseURL, timeout, log),
		log:    log,
	}
}

type availabilityRequest struct {
	SpaceID   string `json:"spaceId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
}

type availabilityResponse struct {
	Available bool `json:"available"`
}

// Check asks whether spaceID can be booked on date from startTime.
func (c *AvailabilityClient) Check(ctx context.Context, spaceID uuid.UUID, date time.Time, startTime string) (bool, error) {
	req := availabilityRequest{
		SpaceID:   spaceID.String(),
		Date:      date.Format(time.DateOnly),
		StartTime: startTime,
	}

	var resp availabilityResponse
	if err := c.client.post(ctx, availabilityPath, nil, req, &resp); err != nil {
		return false, fmt.Errorf("check availability of space %s on %s %s: %w", req.SpaceID, req.Date, startTime, err)
	}

	c.log.Debug("Availability checked",
		zap.String("space_id", req.SpaceID),
		zap.String("date", req.Date),
		zap.String("start_time", startTime),
		zap.Bool("available", resp.Available),
	)
	return resp.Available, nil
}
