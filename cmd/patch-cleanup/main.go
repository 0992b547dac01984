// patch-cleanup removes the recurring patching resources a setup run
// (or an equivalent one) created: patching tasks, maintenance windows
// that carry nothing but patching tasks or no tasks at all, every
// baseline-to-patch-group registration, and every custom patch
// baseline. Windows with unrecognized tasks are left alone.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opstools/ssm-patching/internal/config"
	"github.com/opstools/ssm-patching/internal/decommission"
	"github.com/opstools/ssm-patching/internal/output"
	"github.com/opstools/ssm-patching/internal/ssmops"
)

var (
	flagRegion   string
	flagLogLevel string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "patch-cleanup",
		Short:        "Delete patching maintenance windows, registrations and custom baselines",
		SilenceUsage: true,
		RunE:         run,
	}
	cmd.Flags().StringVarP(&flagRegion, "region", "r", "", "region override (default: ambient AWS configuration)")
	cmd.Flags().StringVarP(&flagLogLevel, "log-level", "l", "info", "log verbosity: debug, info, warn, error")
	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	config.SetupLogging(cfg.LogFormat, flagLogLevel)

	ctx := cmd.Context()
	awsCfg, err := ssmops.ResolveConfig(ctx, flagRegion)
	if err != nil {
		return err
	}

	d := &decommission.Decommissioner{Client: ssmops.New(awsCfg)}
	sum, runErr := d.Run(ctx)
	if sum != nil {
		output.CleanupSummary(sum)
	}
	if runErr != nil {
		return runErr
	}
	if sum.Failed > 0 {
		return fmt.Errorf("%d operation(s) failed", sum.Failed)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
