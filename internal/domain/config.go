// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"fmt"
	"strings"
)

// SheetKey identifies one named range inside a spreadsheet config section.
type SheetKey string

// Finance sheet keys.
const (
	FinanceSummary      SheetKey = "summary"
	FinanceTrajectory   SheetKey = "trajectory"
	FinanceTransactions SheetKey = "transactions"
)

// Recruitment sheet keys.
const (
	RecruitmentSummary    SheetKey = "summary"
	RecruitmentNPOCRM     SheetKey = "npo_crm"
	RecruitmentSponsorCRM SheetKey = "sponsors_crm"
)

// FinanceSheets lists the finance sheet keys in processing order.
func FinanceSheets() []SheetKey {
	return []SheetKey{FinanceSummary, FinanceTrajectory, FinanceTransactions}
}

// RecruitmentSheets lists the recruitment sheet keys in processing order.
func RecruitmentSheets() []SheetKey {
	return []SheetKey{RecruitmentSummary, RecruitmentNPOCRM, RecruitmentSponsorCRM}
}

// SheetConfig names a single sheet and the A1 range to read from it.
type SheetConfig struct {
	SheetName  string `json:"sheet_name"`
	SheetRange string `json:"sheet_range"`
}

// Validate enforces the constraints a sheet config must satisfy before use.
func (c SheetConfig) Validate() error {
	if strings.Contains(c.SheetName, "!") {
		return fmt.Errorf("sheet_name %q must not contain '!'", c.SheetName)
	}
	if c.SheetRange == "" {
		return fmt.Errorf("sheet_range cannot be empty for sheet %q", c.SheetName)
	}
	return nil
}

// FullRange returns the A1 reference including the sheet name, e.g. "Dashboard!A1:D20".
func (c SheetConfig) FullRange() string {
	return c.SheetName + "!" + c.SheetRange
}

// SpreadsheetConfig holds the spreadsheet id and the ranges configured for
// one spreadsheet-backed domain (finance or recruitment).
type SpreadsheetConfig struct {
	SpreadsheetID string
	Sheets        map[SheetKey]SheetConfig
}

// FullRange resolves the full A1 reference for a sheet key.
func (c SpreadsheetConfig) FullRange(key SheetKey) (string, error) {
	sheet, ok := c.Sheets[key]
	if !ok {
		return "", fmt.Errorf("no sheet config for key %q", key)
	}
	return sheet.FullRange(), nil
}

// GithubSettings holds the tunables of the weekly GitHub metrics run.
type GithubSettings struct {
	NPOLabel       string `json:"npo_label"`
	StalePRDays    int    `json:"stale_pr_days"`
	StaleIssueDays int    `json:"stale_issue_days"`
}

// TeamConfig describes one team: its repositories and its roster.
// Repos keep configuration order and are not deduplicated. TechLeads is
// expected to be a subset of Members but that is not enforced.
type TeamConfig struct {
	Repos     []string `json:"repos"`
	Members   []string `json:"members"`
	TechLeads []string `json:"tech_leads"`
}

// Team pairs a team name with its config, preserving configuration order.
type Team struct {
	Name string
	TeamConfig
}

// GithubConfig is the full GitHub section of the application config.
type GithubConfig struct {
	Organization string
	Teams        []Team
	Settings     GithubSettings
}

// Config is the parsed application configuration.
type Config struct {
	Recruitment SpreadsheetConfig
	Finance     SpreadsheetConfig
	Github      GithubConfig
}
