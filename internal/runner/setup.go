package runner

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/stevens-blueprint/weekly-metrics/internal/config"
	"github.com/stevens-blueprint/weekly-metrics/internal/gateway"
	"github.com/stevens-blueprint/weekly-metrics/internal/usecase"
)

// Setup loads the configuration and wires every client and service into a
// ready Runner. Clients are constructed exactly once here and passed down by
// reference; nothing holds global state. A config problem is fatal and
// surfaces before any fetching starts.
func Setup(ctx context.Context, configPath string, dryRun bool, logger *log.Logger) (*Runner, error) {
	cfg, err := config.Load(ctx, configPath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("GITHUB_TOKEN environment variable is not set")
	}
	githubGateway, err := gateway.NewGitHubGateway(token, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	sheetsGateway, err := gateway.NewSheetsGateway(ctx, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets gateway: %w", err)
	}

	var notifier gateway.Notifier
	if !dryRun {
		webhookURL := os.Getenv("DISCORD_WEBHOOK_URL")
		if webhookURL == "" {
			return nil, fmt.Errorf("DISCORD_WEBHOOK_URL environment variable is not set")
		}
		notifier = gateway.NewDiscordNotifier(webhookURL, logger)
	}

	sheetsService := usecase.NewSheetsService(sheetsGateway, cfg.Finance, cfg.Recruitment, logger)
	githubService := usecase.NewGithubService(githubGateway, cfg.Github, logger)
	return New(sheetsService, githubService, notifier, logger), nil
}
