// Package main provides the CLI entrypoint for the migration dashboard.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/migdash/internal/config"
	"github.com/JonMunkholm/migdash/internal/core"
	"github.com/JonMunkholm/migdash/internal/dataset"
	"github.com/JonMunkholm/migdash/internal/export"
	"github.com/JonMunkholm/migdash/internal/logging"
	"github.com/JonMunkholm/migdash/internal/web"
)

var (
	exportOut string

	summaryCountry string
	summaryYear    int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "migdash",
		Short:         "Global migration dashboard",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runServeCmd,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newSummaryCmd())

	return rootCmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP (default)",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the derived aggregate tables to a workbook",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVarP(&exportOut, "out", "o", "aggregates.xlsx", "output workbook path")
	return cmd
}

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the summary and top-10 origins for a country and year",
		Args:  cobra.NoArgs,
		RunE:  runSummaryCmd,
	}
	cmd.Flags().StringVar(&summaryCountry, "country", "", "country (default: DASHBOARD_DEFAULT_COUNTRY)")
	cmd.Flags().IntVar(&summaryYear, "year", 0, "year (default: DASHBOARD_DEFAULT_YEAR)")
	return cmd
}

// app is the loaded configuration, dataset source and service.
type app struct {
	cfg     *config.Config
	source  dataset.Source
	service *core.Service
	close   func()
}

// bootstrap loads .env and configuration, sets up logging, opens the
// dataset source and builds the snapshot.
func bootstrap(ctx context.Context) (*app, error) {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Debug("configuration loaded", "config", cfg.String())

	panels, err := config.LoadPanels(cfg.Dashboard.PanelsFile)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.Options(panels)
	if err != nil {
		return nil, fmt.Errorf("panels file %s: %w", cfg.Dashboard.PanelsFile, err)
	}

	src, closeSrc, err := openSource(ctx, cfg.Data)
	if err != nil {
		return nil, err
	}

	loadCtx, cancel := context.WithTimeout(ctx, cfg.Data.LoadTimeout)
	defer cancel()
	service, err := core.Load(loadCtx, src, opts)
	if err != nil {
		closeSrc()
		return nil, err
	}

	return &app{cfg: cfg, source: src, service: service, close: closeSrc}, nil
}

// openSource returns the configured dataset source and a function that
// releases it.
func openSource(ctx context.Context, dc config.DataConfig) (dataset.Source, func(), error) {
	switch dc.Source {
	case config.SourcePostgres:
		poolConfig, err := pgxpool.ParseConfig(dc.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse database URL: %w", err)
		}
		poolConfig.MaxConns = int32(dc.MaxConns)

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ping database: %w", err)
		}
		slog.Info("connected to database", "database", poolConfig.ConnConfig.Database)

		return dataset.PostgresSource{
			Pool:            pool,
			FlowsTable:      dc.FlowsTable,
			IndicatorsTable: dc.IndicatorsTable,
		}, pool.Close, nil
	default:
		return dataset.XLSXSource{
			FlowsPath:       dc.FlowsPath,
			FlowsSheet:      dc.FlowsSheet,
			IndicatorsPath:  dc.IndicatorsPath,
			IndicatorsSheet: dc.IndicatorsSheet,
		}, func() {}, nil
	}
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap(cmd.Context())
	if err != nil {
		slog.Error("startup failed", "error", err)
		return err
	}
	defer a.close()

	lo, hi := a.service.YearBounds()
	slog.Info("dashboard ready",
		"countries", len(a.service.Countries()),
		"years", fmt.Sprintf("%d-%d", lo, hi),
		"source", a.cfg.Data.Source,
		"rate_limit_enabled", a.cfg.Rate.Enabled,
	)

	server := web.NewServer(a.service, a.cfg)

	// SIGHUP reloads the dataset; SIGINT/SIGTERM shut down gracefully.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
		for sig := range sigCh {
			if sig == syscall.SIGHUP {
				reload(a)
				continue
			}

			slog.Info("shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
			if err := server.Shutdown(shutdownCtx); err != nil {
				slog.Error("shutdown error", "error", err)
			}
			cancel()
			return
		}
	}()

	if err := server.Start(a.cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		return err
	}
	slog.Info("server stopped")
	return nil
}

// reload rebuilds the snapshot from the source. A failed reload keeps the
// current snapshot.
func reload(a *app) {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Data.LoadTimeout)
	defer cancel()
	if err := a.service.Reload(ctx, a.source); err != nil {
		slog.Error("reload failed, keeping current data", "error", err)
		return
	}
	snap := a.service.Snapshot()
	slog.Info("dataset reloaded",
		"countries", len(snap.Countries()),
		"flow_rows", len(snap.Flows()),
		"indicator_rows", len(snap.Indicators()),
	)
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	if err := export.WriteFile(exportOut, a.service.Snapshot()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", exportOut)
	return nil
}

func runSummaryCmd(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	sel, err := summarySelection(a.service, summaryCountry, summaryYear)
	if err != nil {
		return err
	}
	return printSummary(cmd.OutOrStdout(), a.service, sel)
}

// summarySelection overrides the default selection with the flags. An
// invalid result is returned as a *core.UserError.
func summarySelection(svc *core.Service, country string, year int) (core.Selection, error) {
	sel := svc.DefaultSelection()
	if country != "" {
		sel.Country = country
	}
	if year != 0 {
		sel.Year = year
	}
	if err := svc.Validate(sel); err != nil {
		return core.Selection{}, core.NewUserError(err)
	}
	return sel, nil
}

// printSummary writes the text boxes and both top-10 origin lists.
func printSummary(w io.Writer, svc *core.Service, sel core.Selection) error {
	summary, err := svc.Summary(sel)
	if err != nil {
		return err
	}
	in, out, err := svc.TopOriginLists(sel)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, summary.Heading)
	fmt.Fprintf(w, "Inflow:  %s\n", summary.Inflow)
	fmt.Fprintf(w, "Outflow: %s\n", summary.Outflow)
	fmt.Fprintln(w, summary.Sentence)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\nTop inflow origins\tMigrants")
	for _, f := range in {
		fmt.Fprintf(tw, "%s\t%s\n", f.Origin, core.FormatCount(f.Inflow))
	}
	fmt.Fprintln(tw, "\nTop outflow destinations\tMigrants")
	for _, f := range out {
		fmt.Fprintf(tw, "%s\t%s\n", f.Origin, core.FormatCount(f.Outflow))
	}
	return tw.Flush()
}
