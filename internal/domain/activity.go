package domain

import "time"

// PullRequest is the boundary representation of a pull request. All
// timestamps are UTC instants; ClosedAt is nil while the PR is still open,
// and Merged is set from the merge timestamp at the boundary.
type PullRequest struct {
	Number    int
	State     string
	Author    string
	CreatedAt time.Time
	UpdatedAt time.Time
	ClosedAt  *time.Time
	Merged    bool
}

// Review is a single code review submitted on a pull request.
type Review struct {
	Author      string
	SubmittedAt time.Time
}

// Issue is the boundary representation of an issue. The issues API conflates
// pull requests and issues; IsPullRequest marks the former so walks can skip
// them.
type Issue struct {
	Number        int
	State         string
	Author        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ClosedAt      *time.Time
	Labels        []string
	IsPullRequest bool
}

// Window is the shared lookback window for one metrics run, both bounds UTC.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWeekWindow returns the rolling 7-day window ending at now.
func NewWeekWindow(now time.Time) Window {
	now = now.UTC()
	return Window{Start: now.AddDate(0, 0, -7), End: now}
}

// Contains reports whether t falls inside the window, bounds inclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// StartDate returns the ISO date of the window start.
func (w Window) StartDate() string {
	return w.Start.Format(time.DateOnly)
}

// EndDate returns the ISO date of the window end.
func (w Window) EndDate() string {
	return w.End.Format(time.DateOnly)
}
