// Package main is the entry point for the usagewatch terminal monitor.
// It initializes configuration, services, and runs either the Bubble Tea
// dashboard or the plain streaming presenter.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/p-reiter/usagewatch/internal/app"
	"github.com/p-reiter/usagewatch/internal/config"
	"github.com/p-reiter/usagewatch/internal/render"
	"github.com/p-reiter/usagewatch/internal/services"
	"github.com/p-reiter/usagewatch/internal/services/poller"
	"github.com/p-reiter/usagewatch/internal/ui/tabs/dashboard"
	"github.com/p-reiter/usagewatch/internal/ui/tabs/history"
	"github.com/p-reiter/usagewatch/internal/ui/tabs/info"
	"github.com/p-reiter/usagewatch/internal/usage"
	"github.com/p-reiter/usagewatch/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	plain := flag.Bool("plain", false, "stream cycle summaries to stdout instead of the dashboard")
	noNotify := flag.Bool("no-notify", false, "disable desktop spike notifications")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	if err := run(*plain, *noNotify); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run(plain, noNotify bool) error {
	// 1. Load configuration from .env files and environment variables
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if plain {
		return runPlain(cfg)
	}

	// 2. Initialize the service manager with the live usage API client
	svcManager, err := services.NewManager(cfg, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer svcManager.Close()

	if noNotify {
		svcManager.SetNotifications(false)
	}

	return runTUI(cfg, svcManager)
}

// runPlain drives the poll loop on the calling goroutine, printing each
// cycle to stdout until interrupted. No manager, history, or desktop
// notifications are involved in this mode.
func runPlain(cfg *config.Config) error {
	pol := poller.New(poller.Config{
		KeyID:                cfg.KeyID,
		Tier:                 cfg.Tier,
		BucketWidth:          cfg.BucketWidth,
		LookbackHours:        cfg.LookbackHours,
		Interval:             cfg.PollInterval,
		TokenRateThreshold:   cfg.TokenRateThreshold,
		RequestRateThreshold: cfg.RequestRateThreshold,
	}, usage.NewClient(cfg.AdminKey), render.NewText(os.Stdout), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	pol.Run(ctx)
	return nil
}

func runTUI(cfg *config.Config, svcManager *services.Manager) error {
	// 3. Create the root Bubble Tea model
	model := app.NewModel(svcManager)

	// 4. Initialize tabs with shared state and services
	state := model.GetState()
	tabs := []app.Tab{
		dashboard.New(state),
		history.New(state, svcManager),
		info.New(state, cfg),
	}
	model.SetTabs(tabs)

	// 5. Start polling before the UI comes up so the first cycle is already
	// in flight when the dashboard renders
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svcManager.Start(ctx)

	// 6. Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
