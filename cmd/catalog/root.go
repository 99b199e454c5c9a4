package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"catalog-browser/internal/common/pagination"
	"catalog-browser/internal/config"
	"catalog-browser/internal/infra/productapi"
	"catalog-browser/internal/observability/logging"
	"catalog-browser/internal/usecase/browse"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Output formats accepted by --output.
const (
	outputText = "text"
	outputJSON = "json"
)

// rootFlags holds the persistent flag values.
type rootFlags struct {
	configPath      string
	output          string
	logFormat       string
	metricsPort     int
	refreshSchedule string
}

// app carries what every subcommand needs once PersistentPreRunE has run.
type app struct {
	flags rootFlags

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	cfg         *config.BrowseConfig
	logger      *slog.Logger
	client      *productapi.Client
	stopMetrics context.CancelFunc
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "catalog",
		Short: "Browse a remote product catalog",
		Long: `catalog loads products from a public product API and lets you page,
refresh, filter, sort and search them the way a list screen would.

Settings come from built-in defaults, an optional YAML file (--config),
environment variables (a .env file is loaded if present) and flags.`,
		Version:            version,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "YAML config file")
	pf.StringVarP(&a.flags.output, "output", "o", outputText, "output format: text or json")
	pf.StringVar(&a.flags.logFormat, "log-format", "", "log format on stderr: text or json")
	pf.IntVar(&a.flags.metricsPort, "metrics-port", 0, "serve /metrics and /health on this port")
	pf.StringVar(&a.flags.refreshSchedule, "refresh-schedule", "", "cron spec for periodic refreshes in shell mode")

	root.AddCommand(newPagesCmd(a))
	root.AddCommand(newBrowseCmd(a))
	root.AddCommand(newShellCmd(a))
	root.AddCommand(newSearchCmd(a))

	return root
}

// setup loads configuration, applies flag overrides and builds the client.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.flags.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("log-format") {
		cfg.Log.Format = a.flags.logFormat
	}
	if flags.Changed("metrics-port") {
		cfg.Metrics.Port = a.flags.metricsPort
	}
	if flags.Changed("refresh-schedule") {
		cfg.RefreshSchedule = a.flags.refreshSchedule
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	if a.flags.output != outputText && a.flags.output != outputJSON {
		return fmt.Errorf("unknown output format %q (valid: text, json)", a.flags.output)
	}

	a.cfg = cfg
	a.logger = logging.New(a.errOut, cfg.Log.Format)
	slog.SetDefault(a.logger)
	a.client = productapi.NewClient(cfg.API, productapi.WithLogger(a.logger))

	if cfg.Metrics.Port > 0 {
		ctx, cancel := context.WithCancel(cmd.Context())
		a.stopMetrics = cancel
		startMetricsServer(ctx, a.logger, cfg.Metrics.Port, a.client)
	}
	return nil
}

func (a *app) teardown(*cobra.Command, []string) error {
	if a.stopMetrics != nil {
		a.stopMetrics()
	}
	return nil
}

// session starts a logging session and builds a coordinator for mode.
func (a *app) session(ctx context.Context, mode pagination.Mode, pageSize int) (context.Context, *browse.Coordinator) {
	ctx, logger := logging.WithSession(ctx, a.logger)
	if pageSize <= 0 {
		pageSize = a.cfg.PageSize()
	}
	opts := browse.Options{
		PageSize:   pagination.ClampPageSize(pageSize, a.cfg.Pagination),
		QueryDelay: a.cfg.QueryDelay,
		Logger:     logger,
	}
	logger.Info("Session started",
		slog.String("mode", mode.String()),
		slog.Int("page_size", opts.PageSize))

	if mode == pagination.ModeClient {
		return ctx, browse.NewClientCoordinator(a.client, opts)
	}
	return ctx, browse.NewCursorCoordinator(a.client, opts)
}

func (a *app) print(snap browse.Snapshot) error {
	return renderSnapshot(a.out, snap, a.flags.output)
}
