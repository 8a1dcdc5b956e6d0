package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinytelemetry/statview/internal/clock"
	"github.com/tinytelemetry/statview/internal/controller"
	"github.com/tinytelemetry/statview/internal/model"
	"github.com/tinytelemetry/statview/internal/registry"
	"github.com/tinytelemetry/statview/internal/statsapi"
	"github.com/tinytelemetry/statview/internal/tui"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	var configPath string
	var serverURL string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/statview/config.yml)")
	flag.StringVar(&serverURL, "server", "", "override report server URL")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("statview - Report Dashboard\n")
		fmt.Printf("  Version: %s\n", version)
		fmt.Printf("  Commit:  %s\n", commit)
		fmt.Printf("  Built:   %s\n", buildTime)
		return
	}

	cfg, err := loadCLIConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if serverURL != "" {
		cfg.ServerURL = serverURL
	}

	if err := runTUI(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cfg cliConfig) error {
	client := statsapi.NewClient(cfg.ServerURL)

	listCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	reports, err := client.ListReports(listCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("cannot reach report server at %s: %w\nIs statviewd running?", cfg.ServerURL, err)
	}

	ctrl := controller.New(
		controller.Config{
			DefaultStartTime: model.DefaultStartTime(time.Now()),
			DefaultDuration:  model.OneWeekSeconds,
		},
		registry.NewAPI(client),
		client,
		clock.NewWall(),
	)
	defer ctrl.Close()

	dashboard := tui.NewDashboardModel(ctrl, reports, cfg.UpdateInterval)

	p := tea.NewProgram(dashboard, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("the dashboard requires a real terminal")
		}
		return fmt.Errorf("error running dashboard: %w", err)
	}

	return nil
}
