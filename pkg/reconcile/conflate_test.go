package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ukparliament/outage-importer/pkg/models"
)

func ts(sec int64) time.Time {
	return time.Unix(sec, 0)
}

func iv(start, duration int64, status models.Status) models.Interval {
	return models.Interval{
		Start:    ts(start),
		Duration: time.Duration(duration) * time.Second,
		Status:   status,
	}
}

func TestConflate(t *testing.T) {
	tests := []struct {
		name       string
		old        *models.Interval
		candidate  models.Interval
		wantAction Action
		want       models.Interval
	}{
		{
			name:       "cold_start_keeps_candidate",
			old:        nil,
			candidate:  iv(1000, 500, models.StatusDown),
			wantAction: Keep,
			want:       iv(1000, 500, models.StatusDown),
		},
		{
			name:       "non_overlapping_different_status",
			old:        ptr(iv(1000, 500, models.StatusDown)),
			candidate:  iv(2000, 1000, models.StatusUp),
			wantAction: Keep,
			want:       iv(2000, 1000, models.StatusUp),
		},
		{
			name:       "touching_different_status",
			old:        ptr(iv(1000, 1000, models.StatusDown)),
			candidate:  iv(2000, 1000, models.StatusUp),
			wantAction: Keep,
			want:       iv(2000, 1000, models.StatusUp),
		},
		{
			name:       "touching_same_status_merges",
			old:        ptr(iv(1000, 1000, models.StatusUp)),
			candidate:  iv(2000, 1000, models.StatusUp),
			wantAction: Merge,
			want:       iv(1000, 2000, models.StatusUp),
		},
		{
			name:       "late_overlap_same_status_merges",
			old:        ptr(iv(1000, 1500, models.StatusUp)),
			candidate:  iv(2000, 1000, models.StatusUp),
			wantAction: Merge,
			want:       iv(1000, 2000, models.StatusUp),
		},
		{
			name:       "late_overlap_different_status_replaces",
			old:        ptr(iv(1000, 1500, models.StatusUp)),
			candidate:  iv(2000, 1000, models.StatusDown),
			wantAction: Keep,
			want:       iv(2000, 1000, models.StatusDown),
		},
		{
			name:       "sub_interval_same_status_discarded",
			old:        ptr(iv(1000, 2000, models.StatusUp)),
			candidate:  iv(1500, 500, models.StatusUp),
			wantAction: Discard,
		},
		{
			name:       "sub_interval_different_status_discarded",
			old:        ptr(iv(2000, 1000, models.StatusDown)),
			candidate:  iv(1000, 1500, models.StatusDown),
			wantAction: Discard,
		},
		{
			name:       "equal_end_same_status_merges",
			old:        ptr(iv(1000, 1000, models.StatusUp)),
			candidate:  iv(1500, 500, models.StatusUp),
			wantAction: Merge,
			want:       iv(1000, 1000, models.StatusUp),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Conflate(tt.old, tt.candidate)

			assert.Equal(t, tt.wantAction, got.Action)

			if tt.wantAction != Discard {
				assert.True(t, tt.want.Equal(got.Interval),
					"want %+v, got %+v", tt.want, got.Interval)
			}
		})
	}
}

// A merge always anchors at the tail's start and ends at the later of the
// two ends.
func TestConflate_MergeMonotonicity(t *testing.T) {
	olds := []models.Interval{
		iv(1000, 500, models.StatusUp),
		iv(1000, 1500, models.StatusUp),
		iv(1000, 3000, models.StatusUp),
	}

	for _, old := range olds {
		candidate := iv(2000, 1000, models.StatusUp)

		got := Conflate(&old, candidate)
		if got.Action != Merge {
			assert.Equal(t, Discard, got.Action)
			continue
		}

		assert.True(t, got.Interval.Start.Equal(old.Start))

		wantEnd := old.End()
		if candidate.End().After(wantEnd) {
			wantEnd = candidate.End()
		}

		assert.True(t, got.Interval.End().Equal(wantEnd))
	}
}

func ptr(i models.Interval) *models.Interval {
	return &i
}
