package reconcile

import "github.com/ukparliament/outage-importer/pkg/models"

// Result is the outcome of reconciling one endpoint's candidate batch.
type Result struct {
	// Writes is the ordered, minimal set of intervals to persist.
	Writes []models.Interval
	// Truncated is set when a status change cut into the persisted tail:
	// its value is the stored tail shortened to end at the replacement's
	// start. Whether that becomes an explicit write is caller policy.
	Truncated *models.Interval
	// Discarded counts candidates dropped as already covered.
	Discarded int
}

// Reconcile folds a time-ordered candidate batch against the stored tail.
// storedTail may be nil on cold start. Candidates must be sorted ascending
// by start time.
//
// The fold keeps exactly one interval open at any point: Merge outcomes
// absorb candidates into it, and a Keep outcome finalizes it before opening
// the candidate. That is why, when several same-status candidates overlap
// the tail, only the last merged value is ever emitted.
func Reconcile(storedTail *models.Interval, candidates []models.Interval) Result {
	var res Result

	current := storedTail

	for _, candidate := range candidates {
		outcome := Conflate(current, candidate)

		switch outcome.Action {
		case Discard:
			res.Discarded++

		case Keep:
			if current != nil {
				if storedTail != nil && current.Equal(*storedTail) {
					// The persisted tail is being superseded without a
					// rewrite; record the implied truncation when the
					// replacement literally overlaps it.
					if current.End().After(candidate.Start) {
						truncated := models.Interval{
							Start:    current.Start,
							Duration: candidate.Start.Sub(current.Start),
							Status:   current.Status,
						}
						res.Truncated = &truncated
					}
				} else {
					res.Writes = append(res.Writes, *current)
				}
			}

			kept := outcome.Interval
			current = &kept

		case Merge:
			merged := outcome.Interval
			current = &merged
		}
	}

	// Flush the still-open tail unless it is the unchanged stored tail.
	if current != nil && (storedTail == nil || !current.Equal(*storedTail)) {
		res.Writes = append(res.Writes, *current)
	}

	return res
}
