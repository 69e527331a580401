package pingdom

// checksResponse is one page of the checks listing.
type checksResponse struct {
	Checks []check `json:"checks"`
}

type check struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Hostname string `json:"hostname"`
	Status   string `json:"status"`
}

// outageSummaryResponse is the summary.outage payload: the sequence of
// status states the check held inside the requested window.
type outageSummaryResponse struct {
	Summary outageSummary `json:"summary"`
}

type outageSummary struct {
	States []outageState `json:"states"`
}

type outageState struct {
	Status   string `json:"status"`
	TimeFrom int64  `json:"timefrom"`
	TimeTo   int64  `json:"timeto"`
}
