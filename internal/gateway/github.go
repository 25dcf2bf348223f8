// Package gateway provides gateways to the external collaborators of the
// job: the GitHub API, the Google Sheets API, and the Discord webhook.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/stevens-blueprint/weekly-metrics/internal/domain"
)

// PullRequestVisitor receives pull requests in descending last-updated order.
// Returning false stops the walk for the current repository; the stream is
// sorted, so nothing older can still matter to the caller.
type PullRequestVisitor func(pr domain.PullRequest) (bool, error)

// ActivitySource defines the behavior of a gateway supplying repository
// activity: pull requests with their reviews, and recently-updated issues.
type ActivitySource interface {
	VisitPullRequests(ctx context.Context, owner, repo string, visit PullRequestVisitor) error
	ListReviews(ctx context.Context, owner, repo string, number int) ([]domain.Review, error)
	ListIssuesSince(ctx context.Context, owner, repo string, since time.Time) ([]domain.Issue, error)
}

// GitHubGateway is the concrete implementation of the ActivitySource
// interface, backed by the GitHub REST API.
type GitHubGateway struct {
	client *github.Client
	logger *log.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, logger *log.Logger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		client: github.NewClient(httpClient),
		logger: logger,
	}, nil
}

// VisitPullRequests pages through a repository's pull requests sorted by
// last-updated descending, feeding each one to visit until visit declines to
// continue or the stream is exhausted.
func (g *GitHubGateway) VisitPullRequests(ctx context.Context, owner, repo string, visit PullRequestVisitor) error {
	opts := &github.PullRequestListOptions{
		State:       "all",
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	for {
		prs, resp, err := g.client.PullRequests.List(ctx, owner, repo, opts)
		if err != nil {
			return fmt.Errorf("failed to list pull requests for %s/%s: %w", owner, repo, err)
		}
		for _, pr := range prs {
			converted, err := convertPullRequest(owner, repo, pr)
			if err != nil {
				return err
			}
			keepGoing, err := visit(converted)
			if err != nil {
				return err
			}
			if !keepGoing {
				return nil
			}
		}
		if resp.NextPage == 0 {
			return nil
		}
		opts.Page = resp.NextPage
		g.logger.Printf("  Fetching next page of pull requests for %s/%s...", owner, repo)
	}
}

// ListReviews fetches every review submitted on a single pull request.
func (g *GitHubGateway) ListReviews(ctx context.Context, owner, repo string, number int) ([]domain.Review, error) {
	opts := &github.ListOptions{PerPage: 100}
	var reviews []domain.Review
	for {
		page, resp, err := g.client.PullRequests.ListReviews(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list reviews for %s/%s#%d: %w", owner, repo, number, err)
		}
		for _, review := range page {
			converted, err := convertReview(owner, repo, number, review)
			if err != nil {
				return nil, err
			}
			reviews = append(reviews, converted)
		}
		if resp.NextPage == 0 {
			return reviews, nil
		}
		opts.Page = resp.NextPage
	}
}

// ListIssuesSince fetches every issue updated at or after since. The issues
// API also returns pull requests; those entries are flagged, not dropped, so
// the caller decides how to treat them.
func (g *GitHubGateway) ListIssuesSince(ctx context.Context, owner, repo string, since time.Time) ([]domain.Issue, error) {
	opts := &github.IssueListByRepoOptions{
		State:       "all",
		Since:       since.UTC(),
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var issues []domain.Issue
	for {
		page, resp, err := g.client.Issues.ListByRepo(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list issues for %s/%s: %w", owner, repo, err)
		}
		for _, issue := range page {
			converted, err := convertIssue(owner, repo, issue)
			if err != nil {
				return nil, err
			}
			issues = append(issues, converted)
		}
		if resp.NextPage == 0 {
			return issues, nil
		}
		opts.Page = resp.NextPage
		g.logger.Printf("  Fetching next page of issues for %s/%s...", owner, repo)
	}
}

// convertPullRequest normalizes an API pull request into the boundary type.
// Every timestamp is converted to UTC here; a missing created or updated
// timestamp is a validation error, not a silently tolerated zero value.
func convertPullRequest(owner, repo string, pr *github.PullRequest) (domain.PullRequest, error) {
	createdAt := pr.GetCreatedAt().Time
	updatedAt := pr.GetUpdatedAt().Time
	if createdAt.IsZero() || updatedAt.IsZero() {
		return domain.PullRequest{}, fmt.Errorf("pull request %s/%s#%d has missing timestamps", owner, repo, pr.GetNumber())
	}
	converted := domain.PullRequest{
		Number:    pr.GetNumber(),
		State:     pr.GetState(),
		Author:    pr.GetUser().GetLogin(),
		CreatedAt: createdAt.UTC(),
		UpdatedAt: updatedAt.UTC(),
		// The list endpoint never populates the merged flag, only merged_at.
		Merged: pr.MergedAt != nil,
	}
	if pr.ClosedAt != nil {
		closedAt := pr.ClosedAt.Time.UTC()
		converted.ClosedAt = &closedAt
	}
	return converted, nil
}

func convertReview(owner, repo string, number int, review *github.PullRequestReview) (domain.Review, error) {
	submittedAt := review.GetSubmittedAt().Time
	if submittedAt.IsZero() {
		return domain.Review{}, fmt.Errorf("review on %s/%s#%d has no submitted_at timestamp", owner, repo, number)
	}
	return domain.Review{
		Author:      review.GetUser().GetLogin(),
		SubmittedAt: submittedAt.UTC(),
	}, nil
}

func convertIssue(owner, repo string, issue *github.Issue) (domain.Issue, error) {
	createdAt := issue.GetCreatedAt().Time
	updatedAt := issue.GetUpdatedAt().Time
	if createdAt.IsZero() || updatedAt.IsZero() {
		return domain.Issue{}, fmt.Errorf("issue %s/%s#%d has missing timestamps", owner, repo, issue.GetNumber())
	}
	labels := make([]string, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		labels = append(labels, label.GetName())
	}
	converted := domain.Issue{
		Number:        issue.GetNumber(),
		State:         issue.GetState(),
		Author:        issue.GetUser().GetLogin(),
		CreatedAt:     createdAt.UTC(),
		UpdatedAt:     updatedAt.UTC(),
		Labels:        labels,
		IsPullRequest: issue.IsPullRequest(),
	}
	if issue.ClosedAt != nil {
		closedAt := issue.ClosedAt.Time.UTC()
		converted.ClosedAt = &closedAt
	}
	return converted, nil
}
