package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/stevens-blueprint/weekly-metrics/internal/gateway"
	"github.com/stevens-blueprint/weekly-metrics/internal/usecase"
)

// Response is the structured result of one run, Lambda-shaped: statusCode is
// 200 when all three pipelines succeeded, 500 otherwise.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

type responseBody struct {
	Message string            `json:"message"`
	Results map[string]string `json:"results,omitempty"`
	Errors  []string          `json:"errors,omitempty"`
}

// pipeline is one independently fallible unit of work.
type pipeline struct {
	name string
	run  func(ctx context.Context, sink usecase.ResultSink) error
}

// Runner executes the three metric pipelines concurrently and delivers the
// results. A failure in one pipeline never cancels or corrupts the others.
type Runner struct {
	sheets   *usecase.SheetsService
	github   *usecase.GithubService
	notifier gateway.Notifier
	logger   *log.Logger
}

// New creates a Runner. A nil notifier skips delivery (dry runs).
func New(sheets *usecase.SheetsService, github *usecase.GithubService, notifier gateway.Notifier, logger *log.Logger) *Runner {
	return &Runner{
		sheets:   sheets,
		github:   github,
		notifier: notifier,
		logger:   logger,
	}
}

// Run executes all pipelines, fans the stored results out to the notifier
// and returns the structured response. It never panics past this boundary.
func (r *Runner) Run(ctx context.Context) Response {
	r.logger.Println("Starting metrics collection...")
	store := NewStore(r.logger)

	pipelines := []pipeline{
		{name: "finance", run: r.collectFinance},
		{name: "recruitment", run: r.collectRecruitment},
		{name: "github", run: r.collectGithub},
	}

	failures := make([]error, len(pipelines))
	var eg errgroup.Group
	for i, p := range pipelines {
		i, p := i, p
		eg.Go(func() error {
			err := runIsolated(ctx, p, store)
			failures[i] = err
			if err != nil {
				r.logger.Printf("Task '%s' failed: %v", p.name, err)
			} else {
				r.logger.Printf("Task '%s' completed successfully", p.name)
			}
			return err
		})
	}
	// Wait reports only the first failure; the per-pipeline slots above keep
	// them all.
	_ = eg.Wait()

	results := make(map[string]string, len(pipelines))
	var errs []string
	for i, p := range pipelines {
		if failures[i] != nil {
			results[p.name] = "failed"
			errs = append(errs, fmt.Sprintf("Task '%s' failed: %v", p.name, failures[i]))
		} else {
			results[p.name] = "success"
		}
	}

	if err := r.notifyAll(ctx, store); err != nil {
		r.logger.Printf("Notification failed: %v", err)
		errs = append(errs, fmt.Sprintf("Notification failed: %v", err))
	}

	status := http.StatusOK
	if len(errs) > 0 {
		status = http.StatusInternalServerError
	}
	body, err := json.Marshal(responseBody{
		Message: "Metrics collection completed",
		Results: results,
		Errors:  errs,
	})
	if err != nil {
		return Response{StatusCode: http.StatusInternalServerError, Body: `{"message":"An error occurred"}`}
	}
	r.logger.Println("Finished metrics collection.")
	return Response{StatusCode: status, Body: string(body)}
}

func (r *Runner) collectFinance(ctx context.Context, sink usecase.ResultSink) error {
	return r.sheets.CollectFinance(ctx, sink)
}

func (r *Runner) collectRecruitment(ctx context.Context, sink usecase.ResultSink) error {
	return r.sheets.CollectRecruitment(ctx, sink)
}

func (r *Runner) collectGithub(ctx context.Context, sink usecase.ResultSink) error {
	r.logger.Println("Generating weekly GitHub metrics")
	for _, report := range r.github.GenerateWeeklyMetrics(ctx) {
		r.logger.Printf("Metrics computed for team: %s", report.TeamName)
		sink.Put("github/"+report.TeamName, report)
	}
	r.logger.Println("Completed GitHub metrics generation")
	return nil
}

// runIsolated converts a pipeline panic into that pipeline's failure so the
// other pipelines keep running to completion.
func runIsolated(ctx context.Context, p pipeline, sink usecase.ResultSink) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pipeline %s panicked: %v", p.name, rec)
		}
	}()
	return p.run(ctx, sink)
}

// notifyAll sends one message per stored result, in key order. Delivery is
// not retried; the first error aborts the remaining messages.
func (r *Runner) notifyAll(ctx context.Context, store *Store) error {
	if r.notifier == nil {
		r.logger.Println("No notifier configured, skipping delivery.")
		return nil
	}
	snapshot := store.Snapshot()
	keys := make([]string, 0, len(snapshot))
	for key := range snapshot {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		message := fmt.Sprintf("**%s**: %+v", key, snapshot[key])
		if err := r.notifier.Notify(ctx, message); err != nil {
			return fmt.Errorf("failed to notify result %q: %w", key, err)
		}
	}
	return nil
}
