// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/stevens-blueprint/weekly-metrics/internal/domain"
	"github.com/stevens-blueprint/weekly-metrics/internal/gateway"
)

// GithubService computes the weekly per-team metrics from repository
// activity streams.
type GithubService struct {
	source gateway.ActivitySource
	config domain.GithubConfig
	logger *log.Logger
	now    func() time.Time
}

// NewGithubService creates a new GithubService instance.
func NewGithubService(source gateway.ActivitySource, config domain.GithubConfig, logger *log.Logger) *GithubService {
	return &GithubService{
		source: source,
		config: config,
		logger: logger,
		now:    time.Now,
	}
}

// GenerateWeeklyMetrics computes the shared 7-day window once, walks every
// configured team in configuration order and returns one report per team.
// Fetch failures are isolated per repository inside the walk; no team is
// ever dropped.
func (s *GithubService) GenerateWeeklyMetrics(ctx context.Context) []domain.TeamReport {
	window := domain.NewWeekWindow(s.now())
	s.logger.Printf("Generating report: %s to %s", window.StartDate(), window.EndDate())

	reports := make([]domain.TeamReport, 0, len(s.config.Teams))
	for _, team := range s.config.Teams {
		metrics, activity := s.teamMetrics(ctx, team, window)
		s.logMemberActivity(team.Name, activity)
		reports = append(reports, buildTeamReport(team, metrics, window))
	}
	return reports
}

// teamMetrics walks every repository of one team and accumulates raw counts.
// The accumulator is mutated strictly sequentially and discarded after the
// report is built from it.
func (s *GithubService) teamMetrics(ctx context.Context, team domain.Team, window domain.Window) (*domain.RawTeamMetrics, map[string]*domain.MemberActivity) {
	s.logger.Printf("--- Processing %s ---", team.Name)

	members := toSet(team.Members)
	leads := toSet(team.TechLeads)
	metrics := domain.NewRawTeamMetrics()
	activity := make(map[string]*domain.MemberActivity, len(team.Members))
	for _, member := range team.Members {
		activity[member] = &domain.MemberActivity{}
	}
	now := s.now().UTC()

	for _, repoRef := range team.Repos {
		owner, repo := splitRepo(s.config.Organization, repoRef)
		if err := s.walkPullRequests(ctx, owner, repo, window, now, members, leads, metrics, activity); err != nil {
			s.logger.Printf("Error processing PRs for %s: %v", repo, err)
		}
		if err := s.walkIssues(ctx, owner, repo, window, now, metrics); err != nil {
			s.logger.Printf("Error processing issues for %s: %v", repo, err)
		}
	}
	return metrics, activity
}

// walkPullRequests visits a repository's pull requests in descending
// last-updated order and stops as soon as one falls behind the window start;
// the stream is sorted, so nothing older can be in-window. Stale-PR alerts
// are judged against the current instant, not the window end.
func (s *GithubService) walkPullRequests(
	ctx context.Context,
	owner, repo string,
	window domain.Window,
	now time.Time,
	members, leads map[string]struct{},
	metrics *domain.RawTeamMetrics,
	activity map[string]*domain.MemberActivity,
) error {
	return s.source.VisitPullRequests(ctx, owner, repo, func(pr domain.PullRequest) (bool, error) {
		if pr.UpdatedAt.Before(window.Start) {
			return false, nil
		}

		_, isMemberPR := members[pr.Author]

		if pr.State == "open" {
			daysOpen := int(now.Sub(pr.CreatedAt).Hours() / 24)
			if daysOpen > s.config.Settings.StalePRDays {
				metrics.AlertsStalePRs = append(metrics.AlertsStalePRs,
					fmt.Sprintf("%s#%d (%d days)", repo, pr.Number, daysOpen))
			}
		}

		if window.Contains(pr.CreatedAt) && isMemberPR {
			activity[pr.Author].PRsOpened++
			metrics.ParticipationPRAuthors[pr.Author] = struct{}{}
		}

		if pr.Merged && pr.ClosedAt != nil && window.Contains(*pr.ClosedAt) {
			metrics.VelocityMergedPRs++
			if isMemberPR {
				activity[pr.Author].PRsMerged++
			}
			metrics.VelocityCycleTimes = append(metrics.VelocityCycleTimes,
				pr.ClosedAt.Sub(pr.CreatedAt).Hours())
		}

		reviews, err := s.source.ListReviews(ctx, owner, repo, pr.Number)
		if err != nil {
			return false, err
		}
		for _, review := range reviews {
			if !window.Contains(review.SubmittedAt) {
				continue
			}
			if _, isMember := members[review.Author]; isMember {
				if _, isLead := leads[review.Author]; !isLead {
					metrics.ParticipationNonLeadReviews++
				}
				activity[review.Author].Reviews++
			}
		}
		return true, nil
	})
}

// walkIssues scans the issues updated since the window start. The issues API
// conflates issues and pull requests; PR entries are skipped.
func (s *GithubService) walkIssues(
	ctx context.Context,
	owner, repo string,
	window domain.Window,
	now time.Time,
	metrics *domain.RawTeamMetrics,
) error {
	issues, err := s.source.ListIssuesSince(ctx, owner, repo, window.Start)
	if err != nil {
		return err
	}
	for _, issue := range issues {
		if issue.IsPullRequest {
			continue
		}

		if issue.State == "open" {
			daysInactive := int(now.Sub(issue.UpdatedAt).Hours() / 24)
			if daysInactive > s.config.Settings.StaleIssueDays {
				metrics.AlertsStaleIssues = append(metrics.AlertsStaleIssues,
					fmt.Sprintf("%s#%d", repo, issue.Number))
			}
		}

		if issue.ClosedAt != nil && window.Contains(*issue.ClosedAt) {
			metrics.VelocityIssuesClosed++
			if slices.Contains(issue.Labels, s.config.Settings.NPOLabel) {
				metrics.NPOFeaturesClosed++
				metrics.NPOTimeToClose = append(metrics.NPOTimeToClose,
					issue.ClosedAt.Sub(issue.CreatedAt).Hours())
			}
		}
	}
	return nil
}

// buildTeamReport derives the immutable report from a completed accumulator.
// It is a pure function: identical input always yields an identical report.
func buildTeamReport(team domain.Team, metrics *domain.RawTeamMetrics, window domain.Window) domain.TeamReport {
	participationRate := 0.0
	if len(team.Members) > 0 {
		participationRate = float64(len(metrics.ParticipationPRAuthors)) / float64(len(team.Members)) * 100
	}

	return domain.TeamReport{
		TeamName: team.Name,
		Velocity: domain.VelocityMetrics{
			MergedPRs:    metrics.VelocityMergedPRs,
			AvgCycleTime: meanOrZero(metrics.VelocityCycleTimes),
			IssuesClosed: metrics.VelocityIssuesClosed,
		},
		Participation: domain.ParticipationMetrics{
			ActiveContributors: len(metrics.ParticipationPRAuthors),
			TotalMembers:       len(team.Members),
			ParticipationRate:  participationRate,
			NonLeadReviews:     metrics.ParticipationNonLeadReviews,
		},
		NPOImpact: domain.NPOMetrics{
			FeaturesShipped:  metrics.NPOFeaturesClosed,
			AvgTimeToDeliver: meanOrZero(metrics.NPOTimeToClose),
		},
		Alerts: domain.AlertMetrics{
			StalePRs:    metrics.AlertsStalePRs,
			StaleIssues: metrics.AlertsStaleIssues,
		},
		StartDate: window.StartDate(),
		EndDate:   window.EndDate(),
	}
}

// logMemberActivity emits the per-member counters through the logger. They
// are not part of the report yet.
// TODO: surface member activity in TeamReport once the notification format
// has room for a per-member breakdown.
func (s *GithubService) logMemberActivity(teamName string, activity map[string]*domain.MemberActivity) {
	names := make([]string, 0, len(activity))
	for name := range activity {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		a := activity[name]
		s.logger.Printf("  %s/%s: opened=%d merged=%d reviews=%d", teamName, name, a.PRsOpened, a.PRsMerged, a.Reviews)
	}
}

// meanOrZero is the arithmetic mean of values, or 0.0 for an empty sequence.
func meanOrZero(values []float64) float64 {
	mean, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return mean
}

// splitRepo resolves a configured repository reference. References may be
// fully qualified ("owner/name") or bare names under the configured
// organization.
func splitRepo(organization, ref string) (string, string) {
	if owner, name, ok := strings.Cut(ref, "/"); ok {
		return owner, name
	}
	return organization, ref
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
