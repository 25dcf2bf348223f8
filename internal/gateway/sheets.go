package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// RangeFetcher defines the behavior of a gateway for reading spreadsheet
// ranges as rows of strings.
type RangeFetcher interface {
	FetchRange(ctx context.Context, spreadsheetID, a1Range string) ([][]string, error)
}

// SheetsGateway is the concrete implementation of the RangeFetcher
// interface, backed by the Google Sheets API.
type SheetsGateway struct {
	service *sheets.Service
	logger  *log.Logger
}

// NewSheetsGateway builds a Sheets client authenticated through AWS to
// Google workload identity federation, the same credential exchange the
// deployed job uses. No service-account key is ever present in the
// environment.
func NewSheetsGateway(ctx context.Context, logger *log.Logger) (*SheetsGateway, error) {
	credsJSON, err := workloadIdentityCredentials()
	if err != nil {
		return nil, err
	}
	creds, err := google.CredentialsFromJSON(ctx, credsJSON, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to build workload identity credentials: %w", err)
	}
	service, err := sheets.NewService(ctx, option.WithTokenSource(creds.TokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &SheetsGateway{service: service, logger: logger}, nil
}

// FetchRange reads one A1 range and stringifies every cell at the boundary,
// so parsers only ever see rows of strings.
func (g *SheetsGateway) FetchRange(ctx context.Context, spreadsheetID, a1Range string) ([][]string, error) {
	g.logger.Printf("Fetching range %q...", a1Range)
	resp, err := g.service.Spreadsheets.Values.Get(spreadsheetID, a1Range).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch range %q: %w", a1Range, err)
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprint(cell))
		}
		rows = append(rows, cells)
	}
	g.logger.Printf("Fetched %d rows for range %q.", len(rows), a1Range)
	return rows, nil
}

// workloadIdentityCredentials assembles the external_account credential
// document for the AWS -> Google STS token exchange from the environment.
func workloadIdentityCredentials() ([]byte, error) {
	audience := os.Getenv("GOOGLE_WORKLOADIDENTITY_AUDIENCE")
	serviceAccount := os.Getenv("GOOGLE_WORKLOADIDENTITY_SERVICEACCOUNT")
	if audience == "" || serviceAccount == "" {
		return nil, fmt.Errorf("GOOGLE_WORKLOADIDENTITY_AUDIENCE and GOOGLE_WORKLOADIDENTITY_SERVICEACCOUNT must be set")
	}
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = os.Getenv("AWS_DEFAULT_REGION")
	}
	if region == "" {
		return nil, fmt.Errorf("AWS_REGION or AWS_DEFAULT_REGION must be set")
	}

	info := map[string]any{
		"type":               "external_account",
		"audience":           audience,
		"subject_token_type": "urn:ietf:params:aws:token-type:aws4_request",
		"token_url":          "https://sts.googleapis.com/v1/token",
		"credential_source": map[string]any{
			"environment_id": "aws1",
			"regional_cred_verification_url": fmt.Sprintf(
				"https://sts.%s.amazonaws.com?Action=GetCallerIdentity&Version=2011-06-15", region),
		},
		"service_account_impersonation_url": fmt.Sprintf(
			"https://iamcredentials.googleapis.com/v1/projects/-/serviceAccounts/%s:generateAccessToken", serviceAccount),
	}
	return json.Marshal(info)
}
