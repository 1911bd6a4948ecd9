package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/fleetsim/app"
	"github.com/kilianp07/fleetsim/infra/logger"
	"github.com/kilianp07/fleetsim/pkg/export"
)

var batchOpts struct {
	runs     int
	parallel int
	out      string
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Repeat the simulation over consecutive seeds and aggregate the results",
	RunE:  runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.IntVar(&batchOpts.runs, "runs", 0, "number of runs")
	f.IntVar(&batchOpts.parallel, "parallel", 0, "runs executed at once")
	f.StringVarP(&batchOpts.out, "out", "o", "", "write the results to a .json, .yaml or .csv file")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if batchOpts.runs > 0 {
		cfg.Batch.Runs = batchOpts.runs
	}
	if batchOpts.parallel > 0 {
		cfg.Batch.Parallelism = batchOpts.parallel
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
	res, err := svc.Batch(ctx)
	if err != nil {
		return err
	}
	doc := export.Document{Report: res.Report, Runs: res.Runs}
	if batchOpts.out != "" {
		return export.WriteFile(batchOpts.out, doc)
	}
	return export.WriteYAML(cmd.OutOrStdout(), export.Document{Report: res.Report})
}
