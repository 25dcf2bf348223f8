// Package config loads and validates the application configuration. The
// config is a single JSON document, read from a local file during
// development and from AWS Secrets Manager in production. Validation is
// strict and happens before any fetching starts: a missing section, sheet
// key or spreadsheet id aborts the whole run.
package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/stevens-blueprint/weekly-metrics/internal/domain"
)

// SecretARNEnv names the environment variable holding the Secrets Manager
// ARN of the production config.
const SecretARNEnv = "METRICS_CONFIG_SECRET_ARN"

// Default GitHub settings, applied when the config omits them.
const (
	DefaultNPOLabel       = "NPO-Feature"
	DefaultStalePRDays    = 7
	DefaultStaleIssueDays = 10
)

// Load reads the configuration from Secrets Manager when PROD is set in the
// environment, or from the given file path otherwise.
func Load(ctx context.Context, path string, logger *log.Logger) (domain.Config, error) {
	var (
		raw []byte
		err error
	)
	if _, prod := os.LookupEnv("PROD"); prod {
		raw, err = loadFromSecrets(ctx, logger)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return domain.Config{}, err
	}
	return Parse(raw)
}

func loadFromSecrets(ctx context.Context, logger *log.Logger) ([]byte, error) {
	secretARN := os.Getenv(SecretARNEnv)
	if secretARN == "" {
		return nil, fmt.Errorf("environment variable %s not set", SecretARNEnv)
	}
	logger.Printf("Fetching config secret %s...", secretARN)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := secretsmanager.NewFromConfig(awsCfg)
	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretARN),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch config secret: %w", err)
	}
	if out.SecretString == nil {
		return nil, fmt.Errorf("config secret %s has no string value", secretARN)
	}
	logger.Println("Loaded configuration from Secrets Manager.")
	return []byte(*out.SecretString), nil
}

// Parse decodes and validates the full JSON config document.
func Parse(raw []byte) (domain.Config, error) {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sections); err != nil {
		return domain.Config{}, fmt.Errorf("config is not valid JSON: %w", err)
	}

	recruitmentRaw, ok := sections["recruitment"]
	if !ok {
		return domain.Config{}, fmt.Errorf("config must contain a 'recruitment' section")
	}
	financeRaw, ok := sections["finance"]
	if !ok {
		return domain.Config{}, fmt.Errorf("config must contain a 'finance' section")
	}
	githubRaw, ok := sections["github"]
	if !ok {
		return domain.Config{}, fmt.Errorf("config must contain a 'github' section")
	}

	recruitment, err := parseSpreadsheetSection("recruitment", recruitmentRaw, domain.RecruitmentSheets())
	if err != nil {
		return domain.Config{}, err
	}
	finance, err := parseSpreadsheetSection("finance", financeRaw, domain.FinanceSheets())
	if err != nil {
		return domain.Config{}, err
	}
	github, err := parseGithubSection(githubRaw)
	if err != nil {
		return domain.Config{}, err
	}

	return domain.Config{
		Recruitment: recruitment,
		Finance:     finance,
		Github:      github,
	}, nil
}

func parseSpreadsheetSection(section string, raw json.RawMessage, keys []domain.SheetKey) (domain.SpreadsheetConfig, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return domain.SpreadsheetConfig{}, fmt.Errorf("invalid %s section: %w", section, err)
	}

	idRaw, ok := fields["spreadsheet_id"]
	if !ok {
		return domain.SpreadsheetConfig{}, fmt.Errorf("missing spreadsheet_id in %s section", section)
	}
	var spreadsheetID string
	if err := json.Unmarshal(idRaw, &spreadsheetID); err != nil || spreadsheetID == "" {
		return domain.SpreadsheetConfig{}, fmt.Errorf("invalid spreadsheet_id in %s section", section)
	}

	sheets := make(map[domain.SheetKey]domain.SheetConfig, len(keys))
	for _, key := range keys {
		sheetRaw, ok := fields[string(key)]
		if !ok {
			return domain.SpreadsheetConfig{}, fmt.Errorf("missing sheet config %q in %s section", key, section)
		}
		var sheet domain.SheetConfig
		if err := json.Unmarshal(sheetRaw, &sheet); err != nil {
			return domain.SpreadsheetConfig{}, fmt.Errorf("invalid sheet config %q in %s section: %w", key, section, err)
		}
		if sheet.SheetName == "" || sheet.SheetRange == "" {
			return domain.SpreadsheetConfig{}, fmt.Errorf("sheet config %q in %s section must set sheet_name and sheet_range", key, section)
		}
		if err := sheet.Validate(); err != nil {
			return domain.SpreadsheetConfig{}, fmt.Errorf("invalid sheet config %q in %s section: %w", key, section, err)
		}
		sheets[key] = sheet
	}

	// Reject unknown keys so typos fail loudly instead of silently skipping a sheet.
	allowed := map[string]struct{}{"spreadsheet_id": {}}
	for _, key := range keys {
		allowed[string(key)] = struct{}{}
	}
	for field := range fields {
		if _, ok := allowed[field]; !ok {
			return domain.SpreadsheetConfig{}, fmt.Errorf("unknown sheet key %q in %s section", field, section)
		}
	}

	return domain.SpreadsheetConfig{SpreadsheetID: spreadsheetID, Sheets: sheets}, nil
}

func parseGithubSection(raw json.RawMessage) (domain.GithubConfig, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return domain.GithubConfig{}, fmt.Errorf("invalid github section: %w", err)
	}
	for _, required := range []string{"organization", "settings", "teams"} {
		if _, ok := fields[required]; !ok {
			return domain.GithubConfig{}, fmt.Errorf("missing required key %q in github section", required)
		}
	}

	var organization string
	if err := json.Unmarshal(fields["organization"], &organization); err != nil || organization == "" {
		return domain.GithubConfig{}, fmt.Errorf("invalid organization in github section")
	}

	settings := domain.GithubSettings{
		NPOLabel:       DefaultNPOLabel,
		StalePRDays:    DefaultStalePRDays,
		StaleIssueDays: DefaultStaleIssueDays,
	}
	if err := json.Unmarshal(fields["settings"], &settings); err != nil {
		return domain.GithubConfig{}, fmt.Errorf("invalid settings in github section: %w", err)
	}

	teams, err := parseTeams(fields["teams"])
	if err != nil {
		return domain.GithubConfig{}, err
	}

	return domain.GithubConfig{
		Organization: organization,
		Teams:        teams,
		Settings:     settings,
	}, nil
}

// parseTeams decodes the teams object token by token so that the reports are
// later produced in configuration order, which a plain map would not keep.
func parseTeams(raw json.RawMessage) ([]domain.Team, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("invalid teams in github section: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("teams in github section must be an object")
	}

	var teams []domain.Team
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("invalid teams in github section: %w", err)
		}
		name := keyTok.(string)
		var cfg domain.TeamConfig
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("malformed team entry %q: %w", name, err)
		}
		teams = append(teams, domain.Team{Name: name, TeamConfig: cfg})
	}
	return teams, nil
}
