// Package importer orchestrates one import run per endpoint: read the
// stored tail, fetch the upstream window, reconcile, persist the result.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ukparliament/outage-importer/pkg/alerts"
	"github.com/ukparliament/outage-importer/pkg/models"
	"github.com/ukparliament/outage-importer/pkg/pingdom"
	"github.com/ukparliament/outage-importer/pkg/reconcile"
	"github.com/ukparliament/outage-importer/pkg/timeseries"
)

// Broadcaster pushes written intervals to live listeners. Satisfied by
// stream.Hub; nil disables streaming.
type Broadcaster interface {
	Broadcast(v any)
}

// Importer drives import runs. Endpoints are independent, so runs fan
// out across a bounded worker pool; within one endpoint the fold is
// strictly sequential.
type Importer struct {
	cfg      Config
	source   pingdom.Source
	store    timeseries.Service
	alerters []alerts.AlertService
	hub      Broadcaster

	mu          sync.RWMutex
	lastSummary *RunSummary
}

// RunSummary reports what one import run did.
type RunSummary struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Endpoints  int       `json:"endpoints"`
	Written    int       `json:"written"`
	Discarded  int       `json:"discarded"`
	Truncated  int       `json:"truncated"`
	Failed     int       `json:"failed"`
}

// WrittenInterval is the stream payload for one persisted interval.
type WrittenInterval struct {
	Endpoint models.Endpoint `json:"endpoint"`
	Interval models.Interval `json:"interval"`
}

// New validates the config and builds an importer.
func New(cfg Config, source pingdom.Source, store timeseries.Service,
	alerters []alerts.AlertService, hub Broadcaster) (*Importer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Importer{
		cfg:      cfg,
		source:   source,
		store:    store,
		alerters: alerters,
		hub:      hub,
	}, nil
}

// Run performs one import pass over every monitored endpoint.
func (i *Importer) Run(ctx context.Context) (*RunSummary, error) {
	summary := &RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}

	endpoints, err := i.source.Checks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list checks: %w", err)
	}

	summary.Endpoints = len(endpoints)
	log.Printf("INFO: run %s importing outages for %d endpoints", summary.RunID, len(endpoints))

	jobs := make(chan models.Endpoint)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for w := 0; w < i.cfg.Concurrency; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for endpoint := range jobs {
				result, err := i.importEndpoint(ctx, endpoint)

				mu.Lock()
				if err != nil {
					// One endpoint failing must not sink the run.
					summary.Failed++
					log.Printf("WARN: run %s endpoint %d (%s): %v",
						summary.RunID, endpoint.ID, endpoint.Name, err)
				} else {
					summary.Written += len(result.Writes)
					summary.Discarded += result.Discarded
					if result.Truncated != nil {
						summary.Truncated++
					}
				}
				mu.Unlock()
			}
		}()
	}

feed:
	for _, endpoint := range endpoints {
		select {
		case jobs <- endpoint:
		case <-ctx.Done():
			break feed
		}
	}

	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary.FinishedAt = time.Now()

	i.mu.Lock()
	i.lastSummary = summary
	i.mu.Unlock()

	log.Printf("INFO: run %s finished: written=%d discarded=%d truncated=%d failed=%d",
		summary.RunID, summary.Written, summary.Discarded, summary.Truncated, summary.Failed)

	return summary, nil
}

func (i *Importer) importEndpoint(ctx context.Context, endpoint models.Endpoint) (reconcile.Result, error) {
	tail, err := i.store.LastInterval(ctx, i.cfg.Measurement, endpoint.ID)
	if err != nil {
		return reconcile.Result{}, fmt.Errorf("read last interval: %w", err)
	}

	to := time.Now()
	from := to.Add(-time.Duration(i.cfg.Window))

	events, err := i.source.Outages(ctx, endpoint.ID, from, to)
	if err != nil {
		return reconcile.Result{}, fmt.Errorf("fetch outages: %w", err)
	}

	candidates, err := i.toCandidates(endpoint, events)
	if err != nil {
		return reconcile.Result{}, err
	}

	result := reconcile.Reconcile(tail, candidates)

	if len(result.Writes) > 0 {
		if err := i.store.WriteIntervals(ctx, i.cfg.Measurement, endpoint, result.Writes); err != nil {
			return reconcile.Result{}, fmt.Errorf("write intervals: %w", err)
		}
	}

	if result.Truncated != nil && i.cfg.ExplicitTruncate {
		if err := i.store.TruncateTail(ctx, i.cfg.Measurement, endpoint.ID,
			result.Truncated.Start, result.Truncated.Duration); err != nil {
			return reconcile.Result{}, fmt.Errorf("truncate tail: %w", err)
		}
	}

	i.notify(ctx, endpoint, result.Writes)

	return result, nil
}

// toCandidates converts the raw events to intervals sorted ascending by
// start. Malformed events are skipped or abort the batch per config.
func (i *Importer) toCandidates(endpoint models.Endpoint, events []models.Event) ([]models.Interval, error) {
	candidates := make([]models.Interval, 0, len(events))

	for _, event := range events {
		interval, err := event.Interval()
		if err != nil {
			if i.cfg.StrictEvents {
				return nil, fmt.Errorf("malformed event: %w", err)
			}

			log.Printf("WARN: skipping malformed event for endpoint %d (%s): %v",
				endpoint.ID, endpoint.Name, err)

			continue
		}

		candidates = append(candidates, interval)
	}

	sort.Slice(candidates, func(a, b int) bool {
		return candidates[a].Start.Before(candidates[b].Start)
	})

	return candidates, nil
}

func (i *Importer) notify(ctx context.Context, endpoint models.Endpoint, writes []models.Interval) {
	for _, interval := range writes {
		if i.hub != nil {
			i.hub.Broadcast(WrittenInterval{Endpoint: endpoint, Interval: interval})
		}

		if interval.Status != models.StatusDown {
			continue
		}

		alert := &alerts.WebhookAlert{
			Level:      alerts.Warning,
			Title:      "Endpoint Down",
			Message: fmt.Sprintf(
				"Endpoint '%s' (%s) was down for %v starting %s",
				endpoint.Name, endpoint.Hostname, interval.Duration,
				interval.Start.UTC().Format(time.RFC3339)),
			EndpointID: endpoint.ID,
			Details: map[string]any{
				"hostname":         endpoint.Hostname,
				"duration_seconds": int64(interval.Duration / time.Second),
			},
		}

		for _, alerter := range i.alerters {
			if err := alerter.Alert(ctx, alert); err != nil {
				if errors.Is(err, alerts.ErrWebhookCooldown) || errors.Is(err, alerts.ErrWebhookDisabled) {
					continue
				}

				log.Printf("WARN: failed to send down alert for endpoint %d: %v", endpoint.ID, err)
			}
		}
	}
}

// LastSummary returns the most recent completed run summary, or nil.
func (i *Importer) LastSummary() *RunSummary {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return i.lastSummary
}

// Start runs the import loop until the context is canceled. Implements
// lifecycle.Service.
func (i *Importer) Start(ctx context.Context) error {
	ticker := time.NewTicker(time.Duration(i.cfg.PollInterval))
	defer ticker.Stop()

	log.Printf("Starting importer with interval %v", time.Duration(i.cfg.PollInterval))

	// Do an initial import immediately.
	if _, err := i.Run(ctx); err != nil {
		log.Printf("Error during initial import: %v", err)
	}

	i.maybeClean(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := i.Run(ctx); err != nil {
				log.Printf("Error during import: %v", err)
			}

			i.maybeClean(ctx)
		}
	}
}

// Stop implements lifecycle.Service; the importer has no resources of
// its own to release.
func (i *Importer) Stop(context.Context) error {
	return nil
}

func (i *Importer) maybeClean(ctx context.Context) {
	if i.cfg.Retention <= 0 {
		return
	}

	if err := i.store.CleanOldData(ctx, i.cfg.Measurement, time.Duration(i.cfg.Retention)); err != nil {
		log.Printf("WARN: failed to clean old data: %v", err)
	}
}
