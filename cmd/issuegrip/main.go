package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"issuegrip/internal/config"
	"issuegrip/internal/eventbus"
	"issuegrip/internal/issues"
	"issuegrip/internal/logging"
	"issuegrip/internal/metrics"
	"issuegrip/internal/ui"
)

// options holds the command line; flags left unset keep the config file value
type options struct {
	configPath  string
	endpoint    string
	backend     string
	repo        string
	preset      string
	debounce    string
	maxResults  int
	filterPanel bool
	metricsAddr string
	logLevel    string
	writeConfig bool
}

func parseFlags() (options, map[string]bool) {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Config file (.toml or .yaml)")
	flag.StringVar(&opts.configPath, "c", "", "Config file (shorthand)")
	flag.StringVar(&opts.endpoint, "endpoint", "", "Issue search endpoint")
	flag.StringVar(&opts.backend, "backend", "", "Search backend (proxy|github)")
	flag.StringVar(&opts.repo, "repo", "", "GitHub repository owner/name for the github backend")
	flag.StringVar(&opts.preset, "preset", "", "Widget preset (instant|filtered|slow)")
	flag.StringVar(&opts.debounce, "debounce", "", "Quiet period before searching, e.g. 350ms")
	flag.IntVar(&opts.maxResults, "max-results", 0, "Show at most this many results (0 = all)")
	flag.BoolVar(&opts.filterPanel, "filters", false, "Show the filter panel")
	flag.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug|info|warn|error)")
	flag.BoolVar(&opts.writeConfig, "write-config", false, "Write the effective config and exit")
	flag.Parse()

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return opts, set
}

// applyFlags overrides config values with the flags that were given
func applyFlags(cfg *config.Config, opts options, set map[string]bool) error {
	if set["endpoint"] {
		cfg.Endpoint = opts.endpoint
	}
	if set["backend"] {
		cfg.Backend = opts.backend
	}
	if set["repo"] {
		cfg.GitHub.Repo = opts.repo
	}
	if set["preset"] {
		// The preset decides whatever the other flags leave open
		cfg.Preset = opts.preset
		cfg.RawDebounce = ""
		cfg.MaxResults = 0
		cfg.ShowFilterPanel = false
	}
	if set["debounce"] {
		cfg.RawDebounce = opts.debounce
	}
	if set["max-results"] {
		cfg.MaxResults = opts.maxResults
	}
	if set["metrics-addr"] {
		cfg.Metrics.Addr = opts.metricsAddr
	}
	if set["log-level"] {
		cfg.Log.Level = opts.logLevel
	}

	if err := cfg.ApplyDefaults(); err != nil {
		return err
	}
	// After defaults, so an explicit flag beats the preset
	if set["filters"] {
		cfg.ShowFilterPanel = opts.filterPanel
	}
	return cfg.Validate()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "issuegrip: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	opts, set := parseFlags()

	configSvc := config.NewConfigService()
	if opts.configPath != "" {
		configSvc = config.NewConfigServiceAt(opts.configPath)
	}
	cfg, err := configSvc.Load()
	if err != nil {
		return err
	}
	if err := applyFlags(cfg, opts, set); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// --write-config never starts the UI, so its logs also go to stderr
	logger, closer, err := logging.Setup(cfg.Log.File, cfg.Log.Level, !opts.writeConfig)
	if err != nil {
		return err
	}
	defer closer.Close()
	slog.SetDefault(logger)

	if opts.writeConfig {
		if err := configSvc.Save(cfg); err != nil {
			return err
		}
		logger.Info("wrote config", "path", configSvc.Path(), "preset", cfg.Preset)
		return nil
	}

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	bus := eventbus.New(logger)

	var provider metrics.Provider = metrics.NoopProvider{}
	if cfg.Metrics.Addr != "" {
		prom := metrics.NewPrometheusProvider()
		provider = prom
		server := metrics.NewServer(cfg.Metrics.Addr, logger, prom.Handler())
		if err := server.Start(); err != nil {
			return fmt.Errorf("start metrics server: %w", err)
		}
		defer server.Stop()
	}

	client := issues.NewHTTPClient(cfg.HTTP, cfg.RequestTimeout, provider, http.DefaultTransport)
	searcher, err := issues.NewSearcher(cfg, client)
	if err != nil {
		return err
	}
	unsubscribe := metrics.Subscribe(bus, provider, searcher.Backend())
	defer unsubscribe()

	logger.Info("starting issuegrip",
		"backend", searcher.Backend(),
		"endpoint", cfg.Endpoint,
		"debounce", cfg.Debounce,
		"max_results", cfg.MaxResults,
		"filter_panel", cfg.ShowFilterPanel)

	model := ui.NewModel(cfg, searcher, bus, ui.NewOpener(), logger)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if os.Getenv("ISSUEGRIP_E2E_TEST") == "1" {
		fmt.Println("__READY__")
	}

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			logger.Info("terminated by signal")
			return nil
		}
		logger.Error("error running program", "error", err)
		return err
	}
	logger.Info("UI exited normally")
	return nil
}
