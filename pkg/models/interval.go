// Package models defines the value types shared by the importer packages.
package models

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNegativeDuration = errors.New("interval duration is negative")
	ErrMalformedEvent   = errors.New("event ends before it starts")
	ErrUnknownStatus    = errors.New("unknown status")
)

// Status is the state an endpoint held for the length of an interval.
type Status string

const (
	StatusUp          Status = "up"
	StatusDown        Status = "down"
	StatusUnconfirmed Status = "unconfirmed_down"
	StatusUnknown     Status = "unknown"
)

// ParseStatus validates a status value received from the wire.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusUp, StatusDown, StatusUnconfirmed, StatusUnknown:
		return Status(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// Interval is one contiguous span during which an endpoint held a status.
// Intervals are immutable values; construct them with NewInterval or
// Event.Interval so the duration invariant holds.
type Interval struct {
	Start    time.Time     `json:"start"`
	Duration time.Duration `json:"duration"`
	Status   Status        `json:"status"`
}

// NewInterval builds an interval, rejecting negative durations.
func NewInterval(start time.Time, duration time.Duration, status Status) (Interval, error) {
	if duration < 0 {
		return Interval{}, fmt.Errorf("%w: %v", ErrNegativeDuration, duration)
	}

	return Interval{Start: start, Duration: duration, Status: status}, nil
}

// End returns the instant the interval closes.
func (i Interval) End() time.Time {
	return i.Start.Add(i.Duration)
}

// Equal compares two intervals by value.
func (i Interval) Equal(other Interval) bool {
	return i.Start.Equal(other.Start) &&
		i.Duration == other.Duration &&
		i.Status == other.Status
}

// Endpoint identifies a monitored target. Name and Hostname are carried
// through to storage as tags; reconciliation never looks at them.
type Endpoint struct {
	ID       int    `json:"endpoint_id"`
	Name     string `json:"endpoint"`
	Hostname string `json:"hostname"`
}

// Event is a raw status span as reported by the upstream source.
type Event struct {
	From   time.Time `json:"from"`
	To     time.Time `json:"to"`
	Status Status    `json:"status"`
}

// Interval converts the event to an interval, rejecting malformed spans
// and unrecognized statuses. The caller decides whether a rejected event
// is skipped or aborts its batch.
func (e Event) Interval() (Interval, error) {
	if e.To.Before(e.From) {
		return Interval{}, fmt.Errorf("%w: from=%v to=%v", ErrMalformedEvent, e.From, e.To)
	}

	status, err := ParseStatus(string(e.Status))
	if err != nil {
		return Interval{}, err
	}

	return NewInterval(e.From, e.To.Sub(e.From), status)
}
