package parser

import (
	"strings"

	"github.com/stevens-blueprint/weekly-metrics/internal/domain"
)

// ParseRecruitmentSummary parses the recruitment dashboard range, a
// label/current/goal table like ["NPOs Contacted", "50", "100"]. The goal
// column is optional per row.
func ParseRecruitmentSummary(rows [][]string) domain.RecruitmentSummaryRecord {
	type pair struct{ current, goal string }
	kv := make(map[string]pair)
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		p := pair{current: row[1]}
		if len(row) >= 3 {
			p.goal = row[2]
		}
		kv[strings.ToLower(strings.TrimSpace(row[0]))] = p
	}

	currentGoal := func(label string) domain.CurrentGoalInt {
		p := kv[label]
		return domain.CurrentGoalInt{
			Current: asInt(p.current, 0),
			Goal:    asInt(p.goal, 0),
		}
	}
	currentGoalFloat := func(label string) domain.CurrentGoalFloat {
		p := kv[label]
		return domain.CurrentGoalFloat{
			Current: asFloat(p.current, 0),
			Goal:    asFloat(p.goal, 0),
		}
	}

	return domain.RecruitmentSummaryRecord{
		NPOsContacted:        currentGoal("npos contacted"),
		NPOsRecruited:        currentGoal("npos recruited"),
		SponsorsContacted:    currentGoal("sponsors contacted"),
		SponsorshipSecured:   currentGoalFloat("sponsorship secured"),
		ApplicationsReceived: currentGoal("applications received"),
		ChallengesSubmitted:  currentGoal("challenges submitted"),
	}
}

// ParseRecruitmentNPOCRM parses the NPO CRM range.
// Expected columns:
// NPO Name | Contact Name | Email | Status | Initial Contact Date | Last Contact Date | Source | LinkedIn | Website | Link to Notes
// Incomplete rows are skipped.
func ParseRecruitmentNPOCRM(rows [][]string) []domain.RecruitmentNPORecord {
	npos := make([]domain.RecruitmentNPORecord, 0, len(rows))
	for _, row := range rows {
		if len(row) < 10 {
			continue
		}
		npos = append(npos, domain.RecruitmentNPORecord{
			NPOName:            strings.TrimSpace(row[0]),
			ContactName:        strings.TrimSpace(row[1]),
			Email:              strings.TrimSpace(row[2]),
			Status:             strings.TrimSpace(row[3]),
			InitialContactDate: strings.TrimSpace(row[4]),
			LastContactDate:    strings.TrimSpace(row[5]),
			Source:             strings.TrimSpace(row[6]),
			LinkedIn:           strings.TrimSpace(row[7]),
			Website:            strings.TrimSpace(row[8]),
			LinkToNotes:        strings.TrimSpace(row[9]),
		})
	}
	return npos
}

// ParseSponsorCRM parses the sponsor CRM range.
// Expected columns:
// Company | Source | Event Sponsored | Contact Name | Contact Email | LinkedIn | Initial Contact Date | Last Contact Date | Pledged ($) | Stevens Event Date | Link to Notes
// Incomplete rows are skipped.
func ParseSponsorCRM(rows [][]string) []domain.SponsorRecord {
	sponsors := make([]domain.SponsorRecord, 0, len(rows))
	for _, row := range rows {
		if len(row) < 11 {
			continue
		}
		sponsors = append(sponsors, domain.SponsorRecord{
			Company:            strings.TrimSpace(row[0]),
			Source:             strings.TrimSpace(row[1]),
			EventSponsored:     strings.TrimSpace(row[2]),
			ContactName:        strings.TrimSpace(row[3]),
			ContactEmail:       strings.TrimSpace(row[4]),
			LinkedIn:           strings.TrimSpace(row[5]),
			InitialContactDate: strings.TrimSpace(row[6]),
			LastContactDate:    strings.TrimSpace(row[7]),
			Pledged:            toFloat(row[8]),
			StevensEventDate:   strings.TrimSpace(row[9]),
			LinkToNotes:        strings.TrimSpace(row[10]),
		})
	}
	return sponsors
}
