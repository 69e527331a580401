package importer

import (
	"errors"
	"time"

	"github.com/ukparliament/outage-importer/pkg/alerts"
	"github.com/ukparliament/outage-importer/pkg/config"
)

const (
	defaultMeasurement  = "outages"
	defaultListenAddr   = ":8090"
	defaultWindow       = 7 * 24 * time.Hour
	defaultPollInterval = time.Hour
	defaultConcurrency  = 4
)

var (
	errMissingDBPath = errors.New("db_path is required")
	errMissingAPIURL = errors.New("api_url is required")
)

// Config is the importer service configuration.
type Config struct {
	ListenAddr  string `json:"listen_addr"`
	DBPath      string `json:"db_path"`
	APIURL      string `json:"api_url"`
	Measurement string `json:"measurement,omitempty"`

	PollInterval config.Duration `json:"poll_interval,omitempty"`
	Window       config.Duration `json:"window,omitempty"`
	Concurrency  int             `json:"concurrency,omitempty"`

	// StrictEvents aborts an endpoint's batch on a malformed event
	// instead of skipping it.
	StrictEvents bool `json:"strict_events,omitempty"`

	// ExplicitTruncate issues a close-out write when a status change
	// supersedes part of the stored tail. When unset, the next
	// interval's start implicitly bounds the previous one.
	ExplicitTruncate bool `json:"explicit_truncate,omitempty"`

	Retention config.Duration        `json:"retention,omitempty"`
	Webhooks  []alerts.WebhookConfig `json:"webhooks,omitempty"`
}

// Validate applies defaults and checks the required settings.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return errMissingDBPath
	}

	if c.APIURL == "" {
		return errMissingAPIURL
	}

	if c.Measurement == "" {
		c.Measurement = defaultMeasurement
	}

	if c.Window <= 0 {
		c.Window = config.Duration(defaultWindow)
	}

	if c.PollInterval <= 0 {
		c.PollInterval = config.Duration(defaultPollInterval)
	}

	if c.Concurrency <= 0 {
		c.Concurrency = defaultConcurrency
	}

	if c.ListenAddr == "" {
		c.ListenAddr = defaultListenAddr
	}

	return nil
}
