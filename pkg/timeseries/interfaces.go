// Package timeseries pkg/timeseries/interfaces.go
package timeseries

import (
	"context"
	"time"

	"github.com/ukparliament/outage-importer/pkg/models"
)

//go:generate mockgen -destination=mock_store.go -package=timeseries github.com/ukparliament/outage-importer/pkg/timeseries Service

// EndpointStatus pairs an endpoint's identity with its latest recorded
// interval.
type EndpointStatus struct {
	Endpoint models.Endpoint `json:"endpoint"`
	Last     models.Interval `json:"last"`
}

// Service represents all interval store operations. The measurement name
// selects the logical series; the importer writes to "outages".
type Service interface {
	// LastInterval returns the most recent interval for an endpoint,
	// or nil when the endpoint has no recorded data.
	LastInterval(ctx context.Context, measurement string, endpointID int) (*models.Interval, error)

	// WriteIntervals persists the ordered interval set for one endpoint,
	// tagged with its identity. Writes are upserts keyed on start time.
	WriteIntervals(ctx context.Context, measurement string, endpoint models.Endpoint, intervals []models.Interval) error

	// TruncateTail shortens an already stored interval to a new duration.
	TruncateTail(ctx context.Context, measurement string, endpointID int, start time.Time, duration time.Duration) error

	// Read surface for the API.

	Endpoints(ctx context.Context, measurement string) ([]EndpointStatus, error)
	EndpointOutages(ctx context.Context, measurement string, endpointID, limit int) ([]models.Interval, error)

	// Maintenance operations.

	CleanOldData(ctx context.Context, measurement string, retention time.Duration) error
	Close() error
}
