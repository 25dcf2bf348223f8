package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/stevens-blueprint/weekly-metrics/internal/domain"
	"github.com/stevens-blueprint/weekly-metrics/internal/gateway"
	"github.com/stevens-blueprint/weekly-metrics/internal/parser"
)

// ResultSink receives pipeline results keyed for the notification fan-out.
type ResultSink interface {
	Put(key string, value any)
}

type rowParser func(rows [][]string) any

// Parser registries keyed by sheet. Adding a sheet means adding a key, a
// config entry and a parser here.
var financeParsers = map[domain.SheetKey]rowParser{
	domain.FinanceSummary:      func(rows [][]string) any { return parser.ParseFinanceSummary(rows) },
	domain.FinanceTrajectory:   func(rows [][]string) any { return parser.ParseFinanceTrajectory(rows) },
	domain.FinanceTransactions: func(rows [][]string) any { return parser.ParseFinanceTransactions(rows) },
}

var recruitmentParsers = map[domain.SheetKey]rowParser{
	domain.RecruitmentSummary:    func(rows [][]string) any { return parser.ParseRecruitmentSummary(rows) },
	domain.RecruitmentNPOCRM:     func(rows [][]string) any { return parser.ParseRecruitmentNPOCRM(rows) },
	domain.RecruitmentSponsorCRM: func(rows [][]string) any { return parser.ParseSponsorCRM(rows) },
}

// SheetsService runs the spreadsheet-backed pipelines: it fetches each
// configured range and parses the rows into typed records.
type SheetsService struct {
	fetcher     gateway.RangeFetcher
	finance     domain.SpreadsheetConfig
	recruitment domain.SpreadsheetConfig
	logger      *log.Logger
}

// NewSheetsService creates a new SheetsService instance.
func NewSheetsService(fetcher gateway.RangeFetcher, finance, recruitment domain.SpreadsheetConfig, logger *log.Logger) *SheetsService {
	return &SheetsService{
		fetcher:     fetcher,
		finance:     finance,
		recruitment: recruitment,
		logger:      logger,
	}
}

// CollectFinance fetches and parses every finance range into the sink.
func (s *SheetsService) CollectFinance(ctx context.Context, sink ResultSink) error {
	return s.collect(ctx, "finance", s.finance, domain.FinanceSheets(), financeParsers, sink)
}

// CollectRecruitment fetches and parses every recruitment range into the sink.
func (s *SheetsService) CollectRecruitment(ctx context.Context, sink ResultSink) error {
	return s.collect(ctx, "recruitment", s.recruitment, domain.RecruitmentSheets(), recruitmentParsers, sink)
}

func (s *SheetsService) collect(
	ctx context.Context,
	pipeline string,
	cfg domain.SpreadsheetConfig,
	keys []domain.SheetKey,
	parsers map[domain.SheetKey]rowParser,
	sink ResultSink,
) error {
	for _, key := range keys {
		s.logger.Printf("Processing %s sheet: %s", pipeline, key)
		record, err := s.fetchAndParse(ctx, cfg, key, parsers)
		if err != nil {
			return err
		}
		// Keys are namespaced per pipeline; finance and recruitment both
		// have a "summary" sheet.
		sink.Put(pipeline+"/"+string(key), record)
		s.logger.Printf("Completed %s sheet: %s", pipeline, key)
	}
	return nil
}

func (s *SheetsService) fetchAndParse(ctx context.Context, cfg domain.SpreadsheetConfig, key domain.SheetKey, parsers map[domain.SheetKey]rowParser) (any, error) {
	fullRange, err := cfg.FullRange(key)
	if err != nil {
		return nil, err
	}
	rows, err := s.fetcher.FetchRange(ctx, cfg.SpreadsheetID, fullRange)
	if err != nil {
		return nil, err
	}
	parse, ok := parsers[key]
	if !ok {
		return nil, fmt.Errorf("no parser registered for sheet %q", key)
	}
	return parse(rows), nil
}
