// patch-setup provisions the recurring patching resources: a custom
// patch baseline, its patch-group registration, and one maintenance
// window with a patching task per (week, weekday, hour) combination.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opstools/ssm-patching/internal/baseline"
	"github.com/opstools/ssm-patching/internal/config"
	"github.com/opstools/ssm-patching/internal/models"
	"github.com/opstools/ssm-patching/internal/output"
	"github.com/opstools/ssm-patching/internal/provision"
	"github.com/opstools/ssm-patching/internal/schedule"
	"github.com/opstools/ssm-patching/internal/ssmops"
)

var (
	flagWeeks    []int
	flagDays     []string
	flagHours    []int
	flagTimezone string
	flagRegion   string
	flagBaseline string
	flagLogLevel string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "patch-setup",
		Short:        "Create maintenance windows and a patch baseline for scheduled patching",
		SilenceUsage: true,
		RunE:         run,
	}
	cmd.Flags().IntSliceVarP(&flagWeeks, "week", "w", []int{1, 2}, "Nth weekday-of-month occurrences to patch on (1-5)")
	cmd.Flags().StringSliceVarP(&flagDays, "day", "d", []string{"tue", "wed"}, "weekdays to patch on")
	cmd.Flags().IntSliceVarP(&flagHours, "hour", "H", []int{3, 4}, "hours of day to patch at (0-23)")
	cmd.Flags().StringVarP(&flagTimezone, "timezone", "t", "", "IANA timezone for the windows (default: remote scheduler default)")
	cmd.Flags().StringVarP(&flagRegion, "region", "r", "", "region override (default: ambient AWS configuration)")
	cmd.Flags().StringVarP(&flagBaseline, "baseline-file", "b", "baseline.yaml", "path to the baseline descriptor document")
	cmd.Flags().StringVarP(&flagLogLevel, "log-level", "l", "info", "log verbosity: debug, info, warn, error")
	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	config.SetupLogging(cfg.LogFormat, flagLogLevel)

	days := make([]models.Weekday, 0, len(flagDays))
	for _, s := range flagDays {
		d, err := models.ParseWeekday(s)
		if err != nil {
			return err
		}
		days = append(days, d)
	}

	specs, err := schedule.Expand(schedule.Request{
		Weeks:    flagWeeks,
		Days:     days,
		Hours:    flagHours,
		Timezone: flagTimezone,
	})
	if err != nil {
		return err
	}

	descriptor, err := baseline.Load(flagBaseline)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	awsCfg, err := ssmops.ResolveConfig(ctx, flagRegion)
	if err != nil {
		return err
	}

	p := &provision.Provisioner{Client: ssmops.New(awsCfg), Settings: cfg}
	rep, runErr := p.Run(ctx, specs, descriptor)
	output.ProvisionReport(rep)
	if runErr != nil {
		return runErr
	}
	if rep.Failed > 0 {
		return fmt.Errorf("%d operation(s) failed", rep.Failed)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
