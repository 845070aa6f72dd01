package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/signtide/signtide/pkg/account"
	"github.com/signtide/signtide/pkg/batch"
	"github.com/signtide/signtide/pkg/cohort"
	"github.com/signtide/signtide/pkg/config"
	"github.com/signtide/signtide/pkg/drive"
	"github.com/signtide/signtide/pkg/health"
	"github.com/signtide/signtide/pkg/log"
	"github.com/signtide/signtide/pkg/metrics"
	"github.com/signtide/signtide/pkg/notify"
	"github.com/signtide/signtide/pkg/report"
	"github.com/signtide/signtide/pkg/task"
)

const reportTitle = "cloud drive check-in"

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one check-in run over the configured account list",
	Long: `Run the full batch: every configured account is processed once, in
order, and the aggregated run log is dispatched to the configured
notification channels afterwards.

Configuration comes from a YAML file (-c) with environment variables
layered on top; see the config package documentation for the variable
names. A run without a config file is fine as long as the environment
carries the account list and gateway URL.`,
	RunE: runBatch,
}

func init() {
	runCmd.Flags().StringP("config", "c", "", "Path to the YAML config file")
	runCmd.Flags().String("log-level", "", "Override the configured log level")
}

func runBatch(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	logLevel, _ := cmd.Flags().GetString("log-level")

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	log.Init(log.Config{
		Level:      log.Level(cfg.LogLevel),
		JSONOutput: cfg.JSONLog,
		Output:     os.Stdout,
	})

	creds, dropped := account.ParseList(cfg.Accounts)
	if dropped > 0 {
		log.Warn("account list has a trailing entry without a password, skipping it")
	}
	if len(creds) == 0 {
		return fmt.Errorf("account list contains no usable credentials")
	}

	if cfg.MetricsAddr != "" {
		metrics.Serve(cfg.MetricsAddr)
		mlog := log.WithComponent("metrics")
		mlog.Info().Str("addr", cfg.MetricsAddr).Msg("metrics endpoint up")
	}

	// advisory preflight; a dead gateway shows up once here instead of as a
	// wall of identical login timeouts
	if probe := health.NewGatewayChecker(cfg.Gateway).Check(cmd.Context()); !probe.Healthy {
		hlog := log.WithComponent("health")
		hlog.Warn().
			Str("detail", probe.Message).
			Dur("took", probe.Duration).
			Msg("gateway preflight failed, proceeding anyway")
	}

	recorder := report.NewRecorder()
	reporter := report.NewReporter(recorder, buildDispatcher(cfg))

	dial := drive.NewDialer(cfg.Gateway, cfg.GatewayRequestTimeout())
	runner := task.NewRunner(dial, task.Config{
		PersonalConcurrency: cfg.PersonalConcurrency,
		FamilyConcurrency:   cfg.FamilyConcurrency,
		PersonalFirstOnly:   cfg.PersonalFirstOnly,
		FamilySingleFirst:   cfg.FamilySingleFirst,
	}, recorder, cfg.BusinessPolicy())

	resolver := cohort.NewResolver(cfg.FamilyIDs, cfg.CohortSize)
	engine := batch.NewEngine(dial, runner, resolver, recorder, cfg.BusinessPolicy(), cfg.FatalAuthTimeout)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	title := fmt.Sprintf("%s %s", reportTitle, time.Now().Format("2006-01-02"))

	// The report must go out on every path except the fatal abort, which by
	// contract terminates immediately without it.
	skipReport := false
	defer func() {
		if skipReport {
			return
		}
		// detached from ctx: a cancelled run still reports what it did
		flushCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		reporter.Flush(flushCtx, title)
	}()

	summary, err := engine.Run(ctx, creds)
	if err != nil {
		var fatal *batch.FatalError
		if errors.As(err, &fatal) {
			skipReport = true
		}
		return err
	}

	log.Logger.Info().
		Str("run_id", summary.RunID).
		Int("accounts", summary.Accounts).
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Int("cohorts", summary.Cohorts).
		Int("reconciled", summary.Reconciled).
		Msg("batch finished")
	return nil
}

// buildDispatcher assembles the configured push channels. A channel exists
// only when both members of its credential pair are present.
func buildDispatcher(cfg config.Config) *notify.Dispatcher {
	var notifiers []notify.Notifier
	if wx := notify.NewWxPusher(cfg.WxPusherAppToken, cfg.WxPusherUID); wx != nil {
		notifiers = append(notifiers, wx)
	}
	if tg := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID); tg != nil {
		notifiers = append(notifiers, tg)
	}

	d := notify.NewDispatcher(cfg.NotifyPolicy(), notifiers...)
	if len(d.Channels()) == 0 {
		log.Warn("no notification channel configured, the report will only reach the console log")
	}
	return d
}
