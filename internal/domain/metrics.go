package domain

// RawTeamMetrics is the mutable accumulator filled during a single team's
// repository walk. It is discarded once a TeamReport has been derived from
// it; counts only ever grow during the walk.
type RawTeamMetrics struct {
	VelocityMergedPRs           int
	VelocityIssuesClosed        int
	VelocityCycleTimes          []float64
	ParticipationPRAuthors      map[string]struct{}
	ParticipationNonLeadReviews int
	NPOFeaturesClosed           int
	NPOTimeToClose              []float64
	AlertsStalePRs              []string
	AlertsStaleIssues           []string
}

// NewRawTeamMetrics returns an empty accumulator ready for one walk.
func NewRawTeamMetrics() *RawTeamMetrics {
	return &RawTeamMetrics{
		ParticipationPRAuthors: make(map[string]struct{}),
		AlertsStalePRs:         []string{},
		AlertsStaleIssues:      []string{},
	}
}

// MemberActivity tracks one member's raw per-run counters. Computed during
// the walk for observability; not surfaced in the report.
type MemberActivity struct {
	PRsOpened int
	PRsMerged int
	Reviews   int
}

// VelocityMetrics is the velocity block of a team report.
type VelocityMetrics struct {
	MergedPRs    int     `json:"merged_prs"`
	AvgCycleTime float64 `json:"avg_cycle_time"`
	IssuesClosed int     `json:"issues_closed"`
}

// ParticipationMetrics is the participation block of a team report.
type ParticipationMetrics struct {
	ActiveContributors int     `json:"active_contributors"`
	TotalMembers       int     `json:"total_members"`
	ParticipationRate  float64 `json:"participation_rate"`
	NonLeadReviews     int     `json:"non_lead_reviews"`
}

// NPOMetrics is the NPO-impact block of a team report.
type NPOMetrics struct {
	FeaturesShipped  int     `json:"features_shipped"`
	AvgTimeToDeliver float64 `json:"avg_time_to_deliver"`
}

// AlertMetrics carries the staleness alerts raised during the walk.
type AlertMetrics struct {
	StalePRs    []string `json:"stale_prs"`
	StaleIssues []string `json:"stale_issues"`
}

// TeamReport is the immutable weekly report for one team. It is constructed
// once after the team's walk completes and never mutated.
type TeamReport struct {
	TeamName      string               `json:"team_name"`
	Velocity      VelocityMetrics      `json:"velocity"`
	Participation ParticipationMetrics `json:"participation"`
	NPOImpact     NPOMetrics           `json:"npo_impact"`
	Alerts        AlertMetrics         `json:"alerts"`
	StartDate     string               `json:"start_date"`
	EndDate       string               `json:"end_date"`
}
