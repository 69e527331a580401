package timeseries

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukparliament/outage-importer/pkg/models"
)

const testMeasurement = "outages"

func newTestStore(t *testing.T) Service {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "outages.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}

func TestStore_LastInterval_Empty(t *testing.T) {
	store := newTestStore(t)

	last, err := store.LastInterval(context.Background(), testMeasurement, 3603211)
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestStore_WriteAndReadBack(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	endpoint := models.Endpoint{ID: 3603211, Name: "Current DDP", Hostname: "lda.data.parliament.uk"}
	intervals := []models.Interval{
		{Start: time.Unix(1000, 0), Duration: 500 * time.Second, Status: models.StatusUp},
		{Start: time.Unix(1500, 0), Duration: 200 * time.Second, Status: models.StatusDown},
		{Start: time.Unix(1700, 0), Duration: 800 * time.Second, Status: models.StatusUp},
	}

	require.NoError(t, store.WriteIntervals(ctx, testMeasurement, endpoint, intervals))

	last, err := store.LastInterval(ctx, testMeasurement, endpoint.ID)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.True(t, intervals[2].Equal(*last))

	outages, err := store.EndpointOutages(ctx, testMeasurement, endpoint.ID, 10)
	require.NoError(t, err)
	require.Len(t, outages, 3)

	// Most recent first.
	assert.True(t, intervals[2].Equal(outages[0]))
	assert.True(t, intervals[0].Equal(outages[2]))
}

func TestStore_UpsertExtendsExistingRow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	endpoint := models.Endpoint{ID: 1, Name: "api", Hostname: "api.example.org"}

	first := models.Interval{Start: time.Unix(1000, 0), Duration: 500 * time.Second, Status: models.StatusUp}
	require.NoError(t, store.WriteIntervals(ctx, testMeasurement, endpoint, []models.Interval{first}))

	// The reconciler merges a later candidate into the same tail: same
	// start, longer duration. The write must land on the existing row.
	merged := models.Interval{Start: time.Unix(1000, 0), Duration: 2000 * time.Second, Status: models.StatusUp}
	require.NoError(t, store.WriteIntervals(ctx, testMeasurement, endpoint, []models.Interval{merged}))

	outages, err := store.EndpointOutages(ctx, testMeasurement, endpoint.ID, 10)
	require.NoError(t, err)
	require.Len(t, outages, 1)
	assert.True(t, merged.Equal(outages[0]))
}

func TestStore_TruncateTail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	endpoint := models.Endpoint{ID: 1, Name: "api", Hostname: "api.example.org"}
	interval := models.Interval{Start: time.Unix(1000, 0), Duration: 1000 * time.Second, Status: models.StatusUp}

	require.NoError(t, store.WriteIntervals(ctx, testMeasurement, endpoint, []models.Interval{interval}))

	require.NoError(t, store.TruncateTail(ctx, testMeasurement, endpoint.ID, interval.Start, 500*time.Second))

	last, err := store.LastInterval(ctx, testMeasurement, endpoint.ID)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, 500*time.Second, last.Duration)
}

func TestStore_TruncateTail_MissingRow(t *testing.T) {
	store := newTestStore(t)

	err := store.TruncateTail(context.Background(), testMeasurement, 42, time.Unix(1000, 0), time.Second)
	assert.ErrorIs(t, err, ErrIntervalNotFound)
}

func TestStore_Endpoints(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := models.Endpoint{ID: 1, Name: "api", Hostname: "api.example.org"}
	second := models.Endpoint{ID: 2, Name: "www", Hostname: "www.example.org"}

	require.NoError(t, store.WriteIntervals(ctx, testMeasurement, first, []models.Interval{
		{Start: time.Unix(1000, 0), Duration: 100 * time.Second, Status: models.StatusUp},
		{Start: time.Unix(2000, 0), Duration: 100 * time.Second, Status: models.StatusDown},
	}))
	require.NoError(t, store.WriteIntervals(ctx, testMeasurement, second, []models.Interval{
		{Start: time.Unix(1500, 0), Duration: 100 * time.Second, Status: models.StatusUp},
	}))

	statuses, err := store.Endpoints(ctx, testMeasurement)
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	assert.Equal(t, first, statuses[0].Endpoint)
	assert.Equal(t, models.StatusDown, statuses[0].Last.Status)
	assert.Equal(t, second, statuses[1].Endpoint)
	assert.Equal(t, models.StatusUp, statuses[1].Last.Status)
}

func TestStore_MeasurementsAreIsolated(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	endpoint := models.Endpoint{ID: 1, Name: "api", Hostname: "api.example.org"}
	interval := models.Interval{Start: time.Unix(1000, 0), Duration: 100 * time.Second, Status: models.StatusUp}

	require.NoError(t, store.WriteIntervals(ctx, "outages", endpoint, []models.Interval{interval}))

	last, err := store.LastInterval(ctx, "maintenance", endpoint.ID)
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestStore_CleanOldData(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	endpoint := models.Endpoint{ID: 1, Name: "api", Hostname: "api.example.org"}
	old := models.Interval{Start: time.Unix(1000, 0), Duration: 100 * time.Second, Status: models.StatusUp}
	recent := models.Interval{Start: time.Now(), Duration: 100 * time.Second, Status: models.StatusDown}

	require.NoError(t, store.WriteIntervals(ctx, testMeasurement, endpoint, []models.Interval{old, recent}))

	require.NoError(t, store.CleanOldData(ctx, testMeasurement, 24*time.Hour))

	outages, err := store.EndpointOutages(ctx, testMeasurement, endpoint.ID, 10)
	require.NoError(t, err)
	require.Len(t, outages, 1)
	assert.Equal(t, models.StatusDown, outages[0].Status)
}
