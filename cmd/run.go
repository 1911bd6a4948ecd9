package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/fleetsim/app"
	"github.com/kilianp07/fleetsim/core/batch"
	"github.com/kilianp07/fleetsim/core/metrics"
	"github.com/kilianp07/fleetsim/infra/logger"
	"github.com/kilianp07/fleetsim/pkg/export"
)

var runOpts struct {
	seed   int64
	router string
	delay  time.Duration
	out    string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate one world until every manifest is delivered",
	RunE:  runOnce,
}

func init() {
	f := runCmd.Flags()
	f.Int64Var(&runOpts.seed, "seed", 0, "world seed")
	f.StringVar(&runOpts.router, "router", "", "routing strategy (see `fleetsim routers`)")
	f.DurationVar(&runOpts.delay, "delay", 0, "pause between ticks")
	f.StringVarP(&runOpts.out, "out", "o", "", "write the summary to a .json, .yaml or .csv file")
	rootCmd.AddCommand(runCmd)
}

func runOnce(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		cfg.World.Seed = runOpts.seed
	}
	if runOpts.router != "" {
		cfg.World.Router.Type = runOpts.router
		cfg.World.Router.Conf = nil
	}
	if cmd.Flags().Changed("delay") {
		cfg.Engine.TickDelay = runOpts.delay
	}

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	sum, err := svc.Run(ctx)
	if err != nil {
		return err
	}

	runs := []metrics.RunSummary{sum}
	doc := export.Document{Report: batch.Aggregate(runs, cfg.World.Capacity()), Runs: runs}
	if runOpts.out != "" {
		if err := export.WriteFile(runOpts.out, doc); err != nil {
			return err
		}
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "run %s (seed %d, router %s)\n", sum.RunID, sum.Seed, sum.Router)
	fmt.Fprintf(w, "  vehicles %d  depots %d  orders %d\n", sum.Vehicles, sum.Depots, sum.Orders)
	fmt.Fprintf(w, "  ticks %d  cargo ticks %d  utilization %.3f\n", sum.Ticks, sum.CargoTicks, doc.Report.Utilization)
	fmt.Fprintf(w, "  router time %s  active %s  idle %s\n", sum.RouterTime, sum.ActiveTime, sum.IdleTime)
	return nil
}
