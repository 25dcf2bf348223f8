package parser

import (
	"strings"

	"github.com/stevens-blueprint/weekly-metrics/internal/domain"
)

// keyValueTable turns two-column rows into a label -> value map, with labels
// trimmed and lowercased.
func keyValueTable(rows [][]string) map[string]string {
	kv := make(map[string]string)
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		kv[strings.ToLower(strings.TrimSpace(row[0]))] = row[1]
	}
	return kv
}

// ParseFinanceSummary parses the finance dashboard range, a key/value table
// like ["Total Budget", "1234.56"].
func ParseFinanceSummary(rows [][]string) domain.FinanceSummaryRecord {
	kv := keyValueTable(rows)

	totalBudget := toFloat(kv["total budget"])
	totalSpent := toFloat(kv["total spent"])

	utilization := 0.0
	if totalBudget != 0 {
		utilization = totalSpent / totalBudget
	}

	return domain.FinanceSummaryRecord{
		TotalBudget:           totalBudget,
		TotalSpent:            totalSpent,
		CurrentUtilization:    utilization,
		PendingReimbursements: toFloat(kv["pending reimbursements"]),
	}
}

// ParseFinanceTrajectory parses the weekly spend trajectory range.
// Expected columns:
// Week | Week Ending | Actual Spend | Projected Spend | Variance | Top Spending Category
// Incomplete or malformed rows are skipped.
func ParseFinanceTrajectory(rows [][]string) []domain.FinanceTrajectoryRow {
	trajectories := make([]domain.FinanceTrajectoryRow, 0, len(rows))
	for _, row := range rows {
		if len(row) < 6 {
			continue
		}
		week := asInt(row[0], -1)
		if week < 0 {
			continue
		}
		trajectories = append(trajectories, domain.FinanceTrajectoryRow{
			Week:                week,
			WeekEnding:          strings.TrimSpace(row[1]),
			ActualSpend:         toFloat(row[2]),
			ProjectedSpend:      toFloat(row[3]),
			Variance:            toFloat(row[4]),
			TopSpendingCategory: strings.TrimSpace(row[5]),
		})
	}
	return trajectories
}

// ParseFinanceTransactions parses the transactions range.
// Expected columns:
// Date | Transaction ID | Description | Category | Stakeholder/Team | Amount | Type | Status | Receipt Link
// The trailing columns are optional; incomplete rows are skipped.
func ParseFinanceTransactions(rows [][]string) []domain.TransactionRecord {
	transactions := make([]domain.TransactionRecord, 0, len(rows))
	for _, row := range rows {
		if len(row) < 6 {
			continue
		}
		record := domain.TransactionRecord{
			Date:          strings.TrimSpace(row[0]),
			TransactionID: strings.TrimSpace(row[1]),
			Description:   strings.TrimSpace(row[2]),
			Category:      strings.TrimSpace(row[3]),
			Stakeholder:   strings.TrimSpace(row[4]),
			Amount:        toFloat(row[5]),
		}
		if len(row) > 6 {
			record.Type = strings.TrimSpace(row[6])
		}
		if len(row) > 7 {
			record.Status = strings.TrimSpace(row[7])
		}
		if len(row) > 8 {
			record.ReceiptLink = strings.TrimSpace(row[8])
		}
		transactions = append(transactions, record)
	}
	return transactions
}
