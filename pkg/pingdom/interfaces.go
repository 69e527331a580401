// Package pingdom pkg/pingdom/interfaces.go
package pingdom

import (
	"context"
	"time"

	"github.com/ukparliament/outage-importer/pkg/models"
)

//go:generate mockgen -destination=mock_source.go -package=pingdom github.com/ukparliament/outage-importer/pkg/pingdom Source

// Source supplies monitored endpoints and their outage events for a
// time window.
type Source interface {
	Checks(ctx context.Context) ([]models.Endpoint, error)
	Outages(ctx context.Context, endpointID int, from, to time.Time) ([]models.Event, error)
}
