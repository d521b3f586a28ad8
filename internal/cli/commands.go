package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tradepulse/tradepulse/config"
	"github.com/tradepulse/tradepulse/internal/orchestration"
	"github.com/tradepulse/tradepulse/internal/server"
	"github.com/tradepulse/tradepulse/models"
)

const version = "v0.1.0"

// NewRootCmd creates the root command. Running it without a subcommand starts
// the interactive session.
func NewRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "tradepulse",
		Short: "TradePulse - multi-agent trading analysis",
		Long: `TradePulse orchestrates a team of LLM agents through market analysis,
a bull/bear research debate, trade planning, and risk review, and distills
the run into a report and a BUY/SELL/HOLD decision.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				cfg.Debug = true
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("create directories: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunInteractive(signalContext(), cfg)
		},
	}

	rootCmd.AddCommand(newAnalyzeCmd(cfg))
	rootCmd.AddCommand(newServeCmd(cfg))
	rootCmd.AddCommand(newConfigCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	return rootCmd
}

func newAnalyzeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze TICKER",
		Short: "Run one analysis non-interactively",
		Long: `Run a full analysis for a ticker and print the live feed, the final
report, and the decision.
Example: tradepulse analyze NVDA --date 2026-05-10 --analysts market,news`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, _ := cmd.Flags().GetString("date")
			if date == "" {
				date = time.Now().Format("2006-01-02")
			}
			analysts, _ := cmd.Flags().GetString("analysts")
			depth, _ := cmd.Flags().GetInt("depth")
			provider, _ := cmd.Flags().GetString("provider")
			quick, _ := cmd.Flags().GetString("quick-model")
			deep, _ := cmd.Flags().GetString("deep-model")

			req := &models.AnalysisRequest{
				Ticker:         args[0],
				AnalysisDate:   date,
				Analysts:       orchestration.SplitAnalysts(analysts),
				ResearchDepth:  depth,
				LLMProvider:    provider,
				ShallowThinker: quick,
				DeepThinker:    deep,
			}
			rc, err := orchestration.BuildRunConfig(req, cfg)
			if err != nil {
				return err
			}

			displaySummary(rc)
			return runLive(signalContext(), cfg, rc)
		},
	}

	cmd.Flags().String("date", "", "Analysis date in YYYY-MM-DD format (today if omitted)")
	cmd.Flags().String("analysts", strings.Join([]string{"market", "social", "news", "fundamentals"}, ","), "Comma-separated analyst team")
	cmd.Flags().Int("depth", 1, "Research depth (debate and risk rounds)")
	cmd.Flags().String("provider", "", "LLM provider (defaults to configuration)")
	cmd.Flags().String("quick-model", "", "Quick-thinking model override")
	cmd.Flags().String("deep-model", "", "Deep-thinking model override")

	return cmd
}

func newServeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the streaming web frontend",
		Long: `Serve the static front page and the POST /analyze streaming endpoint.
The persisted config file is watched and hot-reloaded while serving.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			staticDir, _ := cmd.Flags().GetString("static")

			mgr, err := config.NewManager(config.WithInitialConfig(cfg))
			if err != nil {
				return fmt.Errorf("load persisted config: %w", err)
			}

			ctx := signalContext()
			if err := mgr.Watch(ctx, func(c config.Config) {
				fmt.Printf("Configuration reloaded from %s\n", mgr.Path())
			}); err != nil {
				return fmt.Errorf("watch config: %w", err)
			}

			srv := server.New(cfg,
				server.WithStaticDir(staticDir),
				server.WithConfigSource(func() *config.Config {
					c := mgr.Get()
					return &c
				}))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().String("addr", ":8000", "Listen address")
	cmd.Flags().String("static", "static", "Directory with the web frontend")

	return cmd
}

func newConfigCmd(cfg *config.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		Run: func(cmd *cobra.Command, args []string) {
			showConfig(cfg)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration values",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			fmt.Println("Configuration is valid.")
			return nil
		},
	})

	return configCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("TradePulse %s\n", version)
		},
	}
}

func showConfig(cfg *config.Config) {
	fmt.Println("Current TradePulse configuration:")
	fmt.Printf("Project directory:    %s\n", cfg.ProjectDir)
	fmt.Printf("Results directory:    %s\n", cfg.ResultsDir)
	fmt.Printf("Cache directory:      %s\n", cfg.DataCacheDir)
	fmt.Println()
	fmt.Printf("LLM provider:         %s\n", cfg.LLMProvider)
	fmt.Printf("Deep think model:     %s\n", cfg.DeepThinkLLM)
	fmt.Printf("Quick think model:    %s\n", cfg.QuickThinkLLM)
	fmt.Printf("Backend URL:          %s\n", cfg.BackendURL)
	fmt.Println()
	fmt.Printf("Max debate rounds:    %d\n", cfg.MaxDebateRounds)
	fmt.Printf("Max risk rounds:      %d\n", cfg.MaxRiskDiscussRounds)
	fmt.Printf("Max recursion limit:  %d\n", cfg.MaxRecurLimit)
	fmt.Println()
	fmt.Printf("Debug mode:           %t\n", cfg.Debug)
	fmt.Printf("Log level:            %s\n", cfg.LogLevel)
	fmt.Println()

	fmt.Println("API keys:")
	printKeyStatus("OpenAI", cfg.OpenAIAPIKey)
	printKeyStatus("Anthropic", cfg.AnthropicAPIKey)
	printKeyStatus("Google", cfg.GoogleAPIKey)
	printKeyStatus("OpenRouter", cfg.OpenRouterAPIKey)
	printKeyStatus("DeepSeek", cfg.DeepSeekAPIKey)
}

func printKeyStatus(name, key string) {
	status := "not configured"
	if key != "" {
		status = "configured"
	}
	fmt.Printf("  %-12s %s\n", name+":", status)
}

// signalContext cancels on SIGINT/SIGTERM so a streaming run shuts down
// cleanly.
func signalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx
}
