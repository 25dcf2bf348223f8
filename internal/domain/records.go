package domain

// FinanceSummaryRecord is the parsed "Dashboard" key/value range.
type FinanceSummaryRecord struct {
	TotalBudget           float64 `json:"total_budget"`
	TotalSpent            float64 `json:"total_spent"`
	CurrentUtilization    float64 `json:"current_utilization"`
	PendingReimbursements float64 `json:"pending_reimbursements"`
}

// FinanceTrajectoryRow is one week of the spend-trajectory range.
type FinanceTrajectoryRow struct {
	Week                int     `json:"week"`
	WeekEnding          string  `json:"week_ending"`
	ActualSpend         float64 `json:"actual_spend"`
	ProjectedSpend      float64 `json:"projected_spend"`
	Variance            float64 `json:"variance"`
	TopSpendingCategory string  `json:"top_spending_category"`
}

// TransactionRecord is one row of the transactions range.
type TransactionRecord struct {
	Date          string  `json:"date"`
	TransactionID string  `json:"transaction_id"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	Stakeholder   string  `json:"stakeholder"`
	Amount        float64 `json:"amount"`
	Type          string  `json:"type"`
	Status        string  `json:"status"`
	ReceiptLink   string  `json:"receipt_link"`
}

// CurrentGoalInt pairs a running value with its target.
type CurrentGoalInt struct {
	Current int `json:"current"`
	Goal    int `json:"goal"`
}

// CurrentGoalFloat pairs a running value with its target.
type CurrentGoalFloat struct {
	Current float64 `json:"current"`
	Goal    float64 `json:"goal"`
}

// RecruitmentSummaryRecord is the parsed recruitment dashboard range.
type RecruitmentSummaryRecord struct {
	NPOsContacted        CurrentGoalInt   `json:"npos_contacted"`
	NPOsRecruited        CurrentGoalInt   `json:"npos_recruited"`
	SponsorsContacted    CurrentGoalInt   `json:"sponsors_contacted"`
	SponsorshipSecured   CurrentGoalFloat `json:"sponsorship_secured"`
	ApplicationsReceived CurrentGoalInt   `json:"applications_received"`
	ChallengesSubmitted  CurrentGoalInt   `json:"challenges_submitted"`
}

// RecruitmentNPORecord is one row of the NPO CRM range.
type RecruitmentNPORecord struct {
	NPOName            string `json:"npo_name"`
	ContactName        string `json:"contact_name"`
	Email              string `json:"email"`
	Status             string `json:"status"`
	InitialContactDate string `json:"initial_contact_date"`
	LastContactDate    string `json:"last_contact_date"`
	Source             string `json:"source"`
	Website            string `json:"website"`
	LinkedIn           string `json:"linkedin"`
	LinkToNotes        string `json:"link_to_notes"`
}

// SponsorRecord is one row of the sponsor CRM range.
type SponsorRecord struct {
	Company            string  `json:"company"`
	Source             string  `json:"source"`
	EventSponsored     string  `json:"event_sponsored"`
	ContactName        string  `json:"contact_name"`
	ContactEmail       string  `json:"contact_email"`
	LinkedIn           string  `json:"linkedin"`
	InitialContactDate string  `json:"initial_contact_date"`
	LastContactDate    string  `json:"last_contact_date"`
	Pledged            float64 `json:"pledged"`
	StevensEventDate   string  `json:"stevens_event_date"`
	LinkToNotes        string  `json:"link_to_notes"`
}
