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
	"go.uber.org/zap"

	"github.com/cory-johannsen/society/internal/config"
	"github.com/cory-johannsen/society/internal/observability"
	"github.com/cory-johannsen/society/internal/oracle"
	"github.com/cory-johannsen/society/internal/sim/action"
	"github.com/cory-johannsen/society/internal/sim/dice"
	"github.com/cory-johannsen/society/internal/sim/society"
)

var runFlags struct {
	ticks     int
	narrative string
	markdown  bool
	quiet     bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Advance the society and print each tick's actions",
	RunE:  runRun,
}

func init() {
	f := runCmd.Flags()
	f.IntVar(&runFlags.ticks, "ticks", 0, "number of ticks to run (0 = simulation.ticks)")
	f.StringVar(&runFlags.narrative, "narrative", "", "global narrative (overrides simulation.narrative)")
	f.BoolVar(&runFlags.markdown, "markdown", false, "render tables as Markdown")
	f.BoolVar(&runFlags.quiet, "quiet", false, "print only the final agent table")
}

func runRun(cmd *cobra.Command, _ []string) error {
	start := time.Now()
	cfg, err := config.Load(rootFlags.config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if runFlags.narrative != "" {
		cfg.Simulation.Narrative = runFlags.narrative
	}
	ticks := cfg.Simulation.Ticks
	if runFlags.ticks > 0 {
		ticks = runFlags.ticks
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src := dice.NewCryptoSource()
	o, err := oracle.New(ctx, cfg.Oracle, src, logger)
	if err != nil {
		return fmt.Errorf("creating oracle: %w", err)
	}
	defer func() { _ = o.Close() }()

	s, err := society.Load(cfg.Simulation, o, src, logger)
	if err != nil {
		return fmt.Errorf("loading society: %w", err)
	}
	logger.Info("society loaded",
		zap.String("run", s.RunID()),
		zap.Int("agents", s.Agents().Len()),
		zap.Int("areas", len(s.Location().Areas())),
		zap.String("time", s.Clock().Now()),
		zap.Duration("elapsed", time.Since(start)),
	)

	out := cmd.OutOrStdout()
	mode := modeFor(runFlags.markdown)
	runner := society.NewRunner(s, cfg.Simulation.TickInterval, func(label string, actions []action.Action) {
		if !runFlags.quiet {
			fmt.Fprintln(out, tickTable(label, actions, mode))
		}
	})

	done, err := runner.Run(ctx, ticks)
	fmt.Fprintln(out, agentTable(s.Agents().All(), s.Location(), mode))
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("run finished", zap.Int("ticks", done), zap.String("time", s.Clock().Now()))
	return nil
}
