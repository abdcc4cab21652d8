package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"ea-sentinel/internal/analytics"
	"ea-sentinel/internal/broker/myfxbook"
	"ea-sentinel/internal/interfaces"
	"ea-sentinel/internal/llm"
	"ea-sentinel/internal/logger"
	"ea-sentinel/internal/reportlog"
	"ea-sentinel/internal/server"
	"ea-sentinel/internal/store"
	"ea-sentinel/internal/trace"
	"ea-sentinel/internal/types"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "sentinel",
		Usage: "trade-performance analytics for EA trade logs",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to config file"},
		},
		Commands: []*cli.Command{
			{
				Name:  "analyze",
				Usage: "analyze a CSV trade log",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Required: true, Usage: "path to CSV trade log"},
					&cli.BoolFlag{Name: "commentary", Usage: "request AI commentary"},
					&cli.BoolFlag{Name: "save", Usage: "append the report to the archive"},
				},
				Action: runAnalyze,
			},
			{
				Name:  "fetch",
				Usage: "fetch broker history via the Myfxbook proxy and analyze it",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Usage: "Myfxbook email (defaults to MYFXBOOK_EMAIL)"},
					&cli.StringFlag{Name: "password", Usage: "Myfxbook password (defaults to MYFXBOOK_PASSWORD)"},
					&cli.IntFlag{Name: "account", Required: true, Usage: "Myfxbook account id"},
					&cli.BoolFlag{Name: "commentary", Usage: "request AI commentary"},
					&cli.BoolFlag{Name: "save", Usage: "append the report to the archive"},
				},
				Action: runFetch,
			},
			{
				Name:  "serve",
				Usage: "run the HTTP analysis API",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "listen address (overrides config)"},
				},
				Action: runServe,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setup(c *cli.Context) (*store.Config, error) {
	logger.Init()
	if err := trace.Init(); err != nil {
		return nil, err
	}

	cfg, err := store.LoadConfig(c.String("config"))
	if errors.Is(err, os.ErrNotExist) {
		cfg = store.Default()
		err = nil
	}
	return cfg, err
}

func runAnalyze(c *cli.Context) error {
	cfg, err := setup(c)
	if err != nil {
		return err
	}
	ctx := c.Context
	defer shutdownTrace()

	raw, err := os.ReadFile(c.String("file"))
	if err != nil {
		return err
	}

	trades, skipped := analytics.ParseCSV(string(raw))
	report := analytics.Analyze(trades, "csv", len(skipped))

	return emit(ctx, cfg, report, c.Bool("commentary"), c.Bool("save"))
}

func runFetch(c *cli.Context) error {
	cfg, err := setup(c)
	if err != nil {
		return err
	}
	ctx := c.Context
	defer shutdownTrace()

	email := c.String("email")
	if email == "" {
		email = os.Getenv("MYFXBOOK_EMAIL")
	}
	password := c.String("password")
	if password == "" {
		password = os.Getenv("MYFXBOOK_PASSWORD")
	}
	if email == "" || password == "" {
		return errors.New("myfxbook credentials missing: pass --email/--password or set MYFXBOOK_EMAIL/MYFXBOOK_PASSWORD")
	}

	client := myfxbook.NewClient(cfg.Myfxbook.BaseURL, cfg.ProxyTimeout())
	session, err := client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	records, err := client.History(ctx, session, c.Int("account"))
	if err != nil {
		return err
	}

	trades := analytics.ConvertHistory(analytics.ClosedTrades(records))
	report := analytics.Analyze(trades, "myfxbook", 0)

	return emit(ctx, cfg, report, c.Bool("commentary"), c.Bool("save"))
}

func runServe(c *cli.Context) error {
	cfg, err := setup(c)
	if err != nil {
		return err
	}
	defer shutdownTrace()

	addr := cfg.Server.Addr
	if v := c.String("addr"); v != "" {
		addr = v
	}

	var history interfaces.HistorySource = myfxbook.NewClient(cfg.Myfxbook.BaseURL, cfg.ProxyTimeout())
	archive := reportlog.New(cfg.Reports.Dir)
	if cfg.Reports.RetentionDays > 0 {
		if err := archive.CompressOlder(cfg.Reports.RetentionDays); err != nil {
			logger.Warn(c.Context, "Report archive compression failed", "error", err)
		}
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: server.New(history, llm.NewCommentator(cfg), archive).Router(),
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	logger.Info(c.Context, "Sentinel API listening", "addr", addr)
	select {
	case err := <-errc:
		return err
	case <-sigc:
		logger.Info(c.Context, "Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

// emit attaches optional commentary, optionally archives, and prints the
// report as JSON.
func emit(ctx context.Context, cfg *store.Config, report types.AnalysisReport, commentary, save bool) error {
	if commentary {
		text, err := llm.NewCommentator(cfg).Comment(ctx, report)
		if err != nil {
			logger.Warn(ctx, "Commentary generation failed", "error", err)
		} else {
			report.Commentary = text
		}
	}

	if save {
		archive := reportlog.New(cfg.Reports.Dir)
		if err := archive.Append(report); err != nil {
			return fmt.Errorf("failed to archive report: %w", err)
		}
		if cfg.Reports.RetentionDays > 0 {
			_ = archive.CompressOlder(cfg.Reports.RetentionDays)
		}
	}

	logger.Report(ctx, report.Source, report.TradeCount, report.SkippedRows, len(report.RiskFlags))

	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func shutdownTrace() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = trace.Shutdown(ctx)
}
