// Package reconcile merges batches of candidate status intervals into an
// endpoint's stored interval series, producing the minimal set of writes
// needed to keep the series accurate and free of duplicates.
package reconcile

import (
	"log"

	"github.com/ukparliament/outage-importer/pkg/models"
)

// Action classifies how a candidate interval relates to the stored tail.
type Action int

const (
	// Discard drops the candidate: it carries no information beyond
	// what the tail already records.
	Discard Action = iota
	// Keep finalizes the tail and opens the candidate as the new tail.
	Keep
	// Merge extends the tail to cover the candidate.
	Merge
)

func (a Action) String() string {
	switch a {
	case Discard:
		return "discard"
	case Keep:
		return "keep"
	case Merge:
		return "merge"
	default:
		return "unknown"
	}
}

// Outcome is the result of conflating one candidate against the tail.
// Interval holds the new tail for Keep and Merge; it is zero for Discard.
type Outcome struct {
	Action   Action
	Interval models.Interval
}

// Conflate decides how candidate relates to the stored tail old. Callers
// guarantee candidate.Start >= old.Start by feeding candidates in ascending
// start order. A nil old (cold start) always keeps the candidate. Pure
// apart from logging; never fails for well-formed input.
func Conflate(old *models.Interval, candidate models.Interval) Outcome {
	if old == nil {
		return Outcome{Action: Keep, Interval: candidate}
	}

	// A candidate that ends inside the tail adds nothing, whatever its
	// status claims. The upstream window overlap produces these routinely.
	if candidate.End().Before(old.End()) {
		if old.Status == candidate.Status {
			log.Printf("WARN: discarding duplicate %s interval start=%v end=%v, tail already ends %v",
				candidate.Status, candidate.Start.Unix(), candidate.End().Unix(), old.End().Unix())
		} else {
			log.Printf("WARN: discarding contradicted sub-interval start=%v end=%v status=%s inside %s tail ending %v",
				candidate.Start.Unix(), candidate.End().Unix(), candidate.Status, old.Status, old.End().Unix())
		}

		return Outcome{Action: Discard}
	}

	// On a status change the candidate is authoritative from its own
	// start; the tail's effective end becomes the candidate's start.
	if old.Status != candidate.Status {
		if old.End().After(candidate.Start) {
			log.Printf("WARN: status change %s->%s at %v overlaps tail ending %v, truncating tail",
				old.Status, candidate.Status, candidate.Start.Unix(), old.End().Unix())
		} else {
			log.Printf("INFO: status change %s->%s at %v after clean gap",
				old.Status, candidate.Status, candidate.Start.Unix())
		}

		return Outcome{Action: Keep, Interval: candidate}
	}

	// Same status, candidate ends at or past the tail: extend the tail.
	if candidate.Start.Before(old.Start) {
		log.Printf("WARN: merge candidate starts %v before tail start %v",
			candidate.Start.Unix(), old.Start.Unix())
	} else {
		log.Printf("INFO: extending %s interval starting %v to end %v",
			old.Status, old.Start.Unix(), candidate.End().Unix())
	}

	merged := models.Interval{
		Start:    old.Start,
		Duration: candidate.End().Sub(old.Start),
		Status:   old.Status,
	}

	return Outcome{Action: Merge, Interval: merged}
}
