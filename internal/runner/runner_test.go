package runner

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevens-blueprint/weekly-metrics/internal/domain"
	"github.com/stevens-blueprint/weekly-metrics/internal/gateway"
	"github.com/stevens-blueprint/weekly-metrics/internal/usecase"
)

type fakeFetcher struct {
	errOn map[string]error // keyed by spreadsheet id
}

func (f *fakeFetcher) FetchRange(ctx context.Context, spreadsheetID, a1Range string) ([][]string, error) {
	if err := f.errOn[spreadsheetID]; err != nil {
		return nil, err
	}
	return [][]string{{"Total Budget", "100"}}, nil
}

type fakeSource struct {
	panics bool
}

func (f *fakeSource) VisitPullRequests(ctx context.Context, owner, repo string, visit gateway.PullRequestVisitor) error {
	if f.panics {
		panic("github client exploded")
	}
	return nil
}

func (f *fakeSource) ListReviews(ctx context.Context, owner, repo string, number int) ([]domain.Review, error) {
	return nil, nil
}

func (f *fakeSource) ListIssuesSince(ctx context.Context, owner, repo string, since time.Time) ([]domain.Issue, error) {
	return nil, nil
}

type fakeNotifier struct {
	messages []string
	err      error
}

func (f *fakeNotifier) Notify(ctx context.Context, message string) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, message)
	return nil
}

func spreadsheetConfig(id string, keys []domain.SheetKey) domain.SpreadsheetConfig {
	sheets := make(map[domain.SheetKey]domain.SheetConfig, len(keys))
	for _, key := range keys {
		sheets[key] = domain.SheetConfig{SheetName: "Sheet", SheetRange: "A1:B2"}
	}
	return domain.SpreadsheetConfig{SpreadsheetID: id, Sheets: sheets}
}

func newTestRunner(fetcher *fakeFetcher, source *fakeSource, notifier gateway.Notifier) *Runner {
	logger := log.New(io.Discard, "", 0)
	sheetsService := usecase.NewSheetsService(
		fetcher,
		spreadsheetConfig("fin-id", domain.FinanceSheets()),
		spreadsheetConfig("rec-id", domain.RecruitmentSheets()),
		logger,
	)
	githubService := usecase.NewGithubService(source, domain.GithubConfig{
		Organization: "blueprint",
		Teams:        []domain.Team{{Name: "platform", TeamConfig: domain.TeamConfig{Repos: []string{"api"}, Members: []string{"alice"}}}},
		Settings:     domain.GithubSettings{NPOLabel: "NPO-Feature", StalePRDays: 7, StaleIssueDays: 10},
	}, logger)
	return New(sheetsService, githubService, notifier, logger)
}

func decodeBody(t *testing.T, response Response) responseBody {
	t.Helper()
	var body responseBody
	require.NoError(t, json.Unmarshal([]byte(response.Body), &body))
	return body
}

func TestRunner_AllPipelinesSucceed(t *testing.T) {
	notifier := &fakeNotifier{}
	run := newTestRunner(&fakeFetcher{}, &fakeSource{}, notifier)

	response := run.Run(context.Background())

	assert.Equal(t, http.StatusOK, response.StatusCode)
	body := decodeBody(t, response)
	assert.Equal(t, map[string]string{
		"finance":     "success",
		"recruitment": "success",
		"github":      "success",
	}, body.Results)
	assert.Empty(t, body.Errors)

	// One message per stored result, delivered in key order: three finance
	// sheets, one team report, three recruitment sheets.
	require.Len(t, notifier.messages, 7)
	assert.Contains(t, notifier.messages[0], "**finance/summary**")
	assert.Contains(t, notifier.messages[3], "**github/platform**")
	assert.Contains(t, notifier.messages[6], "**recruitment/summary**")
}

func TestRunner_PipelineFailureIsIsolated(t *testing.T) {
	notifier := &fakeNotifier{}
	fetcher := &fakeFetcher{errOn: map[string]error{"fin-id": errors.New("quota exceeded")}}
	run := newTestRunner(fetcher, &fakeSource{}, notifier)

	response := run.Run(context.Background())

	assert.Equal(t, http.StatusInternalServerError, response.StatusCode)
	body := decodeBody(t, response)
	assert.Equal(t, "failed", body.Results["finance"])
	assert.Equal(t, "success", body.Results["recruitment"])
	assert.Equal(t, "success", body.Results["github"])
	require.Len(t, body.Errors, 1)
	assert.Contains(t, body.Errors[0], "quota exceeded")

	// The surviving pipelines still deliver their results.
	require.Len(t, notifier.messages, 4)
}

func TestRunner_PanicIsContainedToOnePipeline(t *testing.T) {
	run := newTestRunner(&fakeFetcher{}, &fakeSource{panics: true}, &fakeNotifier{})

	response := run.Run(context.Background())

	assert.Equal(t, http.StatusInternalServerError, response.StatusCode)
	body := decodeBody(t, response)
	assert.Equal(t, "success", body.Results["finance"])
	assert.Equal(t, "success", body.Results["recruitment"])
	assert.Equal(t, "failed", body.Results["github"])
	require.Len(t, body.Errors, 1)
	assert.Contains(t, body.Errors[0], "panicked")
}

func TestRunner_NotificationFailure(t *testing.T) {
	run := newTestRunner(&fakeFetcher{}, &fakeSource{}, &fakeNotifier{err: errors.New("webhook down")})

	response := run.Run(context.Background())

	assert.Equal(t, http.StatusInternalServerError, response.StatusCode)
	body := decodeBody(t, response)
	// Pipelines succeeded; only delivery failed.
	assert.Equal(t, "success", body.Results["finance"])
	require.Len(t, body.Errors, 1)
	assert.Contains(t, body.Errors[0], "webhook down")
}

func TestRunner_NilNotifierSkipsDelivery(t *testing.T) {
	run := newTestRunner(&fakeFetcher{}, &fakeSource{}, nil)

	response := run.Run(context.Background())

	assert.Equal(t, http.StatusOK, response.StatusCode)
}
