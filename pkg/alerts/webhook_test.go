package alerts

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookAlerter_Alert(t *testing.T) {
	var received WebhookAlert

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "secret", r.Header.Get("X-Auth"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))
	}))
	defer server.Close()

	alerter := NewWebhookAlerter(WebhookConfig{
		Enabled: true,
		URL:     server.URL,
		Headers: []Header{{Key: "X-Auth", Value: "secret"}},
	})

	err := alerter.Alert(context.Background(), &WebhookAlert{
		Level:      Warning,
		Title:      "Endpoint Down",
		Message:    "Current DDP is down",
		EndpointID: 3603211,
	})
	require.NoError(t, err)

	assert.Equal(t, Warning, received.Level)
	assert.Equal(t, 3603211, received.EndpointID)
	assert.NotEmpty(t, received.Timestamp)
}

func TestWebhookAlerter_Disabled(t *testing.T) {
	alerter := NewWebhookAlerter(WebhookConfig{Enabled: false, URL: "http://unused.example.org"})

	err := alerter.Alert(context.Background(), &WebhookAlert{Title: "x"})
	assert.ErrorIs(t, err, ErrWebhookDisabled)
}

func TestWebhookAlerter_Cooldown(t *testing.T) {
	var calls int

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		calls++
	}))
	defer server.Close()

	alerter := NewWebhookAlerter(WebhookConfig{
		Enabled:  true,
		URL:      server.URL,
		Cooldown: time.Hour,
	})

	first := &WebhookAlert{Title: "Endpoint Down", EndpointID: 1}
	require.NoError(t, alerter.Alert(context.Background(), first))

	err := alerter.Alert(context.Background(), &WebhookAlert{Title: "Endpoint Down", EndpointID: 1})
	assert.ErrorIs(t, err, ErrWebhookCooldown)

	// A different endpoint is not rate limited.
	require.NoError(t, alerter.Alert(context.Background(), &WebhookAlert{Title: "Endpoint Down", EndpointID: 2}))

	assert.Equal(t, 2, calls)
}

func TestWebhookAlerter_Template(t *testing.T) {
	var body []byte

	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
	}))
	defer server.Close()

	alerter := NewWebhookAlerter(WebhookConfig{
		Enabled:  true,
		URL:      server.URL,
		Template: `{"text": {{quote .alert.Message}}}`,
	})

	require.NoError(t, alerter.Alert(context.Background(), &WebhookAlert{
		Message:    "Search is down",
		EndpointID: 7,
	}))

	assert.JSONEq(t, `{"text": "Search is down"}`, string(body))
}

func TestWebhookAlerter_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "broken", http.StatusInternalServerError)
	}))
	defer server.Close()

	alerter := NewWebhookAlerter(WebhookConfig{Enabled: true, URL: server.URL})

	err := alerter.Alert(context.Background(), &WebhookAlert{Title: "x", EndpointID: 1})
	assert.ErrorIs(t, err, errWebhookStatus)
}
