package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	// The upstream vocabulary, including Pingdom's unconfirmed_down.
	for _, s := range []string{"up", "down", "unconfirmed_down", "unknown"} {
		status, err := ParseStatus(s)
		require.NoError(t, err, s)
		assert.Equal(t, Status(s), status)
	}

	_, err := ParseStatus("unconfirmed")
	assert.ErrorIs(t, err, ErrUnknownStatus)

	_, err = ParseStatus("sideways")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestEventInterval(t *testing.T) {
	event := Event{
		From:   time.Unix(1521032518, 0),
		To:     time.Unix(1521032638, 0),
		Status: StatusUnconfirmed,
	}

	interval, err := event.Interval()
	require.NoError(t, err)
	assert.Equal(t, StatusUnconfirmed, interval.Status)
	assert.Equal(t, 120*time.Second, interval.Duration)
}

func TestEventInterval_Rejections(t *testing.T) {
	backwards := Event{From: time.Unix(2000, 0), To: time.Unix(1000, 0), Status: StatusDown}
	_, err := backwards.Interval()
	assert.ErrorIs(t, err, ErrMalformedEvent)

	badStatus := Event{From: time.Unix(1000, 0), To: time.Unix(2000, 0), Status: Status("sideways")}
	_, err = badStatus.Interval()
	assert.ErrorIs(t, err, ErrUnknownStatus)
}
