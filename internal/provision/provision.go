// Package provision creates the remote patching resources for a set of
// recurrence specs: one custom baseline and one patch-group
// registration per run, then one window + target + task per spec.
package provision

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/opstools/ssm-patching/internal/config"
	"github.com/opstools/ssm-patching/internal/models"
	"github.com/opstools/ssm-patching/internal/ssmops"
)

// Client is the slice of ssmops.Client the provisioner uses.
type Client interface {
	CreateBaseline(ctx context.Context, d *models.BaselineDescriptor) (string, error)
	RegisterBaseline(ctx context.Context, baselineID, patchGroup string) error
	CreateWindow(ctx context.Context, name string, spec models.RecurrenceSpec, duration, cutoff int32) (string, error)
	RegisterTarget(ctx context.Context, windowID, patchGroup string) (string, error)
	RegisterTask(ctx context.Context, windowID, targetID, maxConcurrency, maxErrors string) (string, error)
}

// Report accumulates the outcome of one provisioning run. Individual
// failures are recorded and counted; they never abort the run.
type Report struct {
	BaselineID string
	Registered bool
	Windows    []models.ProvisionResult
	Failed     int
}

// Provisioner drives one provisioning run.
type Provisioner struct {
	Client   Client
	Settings config.Settings
}

// Run creates the baseline and registration, then one window, target
// and task per spec. Remote failures are recorded per resource and the
// run continues best-effort. A non-nil error is returned only when the
// context is cancelled; resources created before that point stand, and
// no new calls are dispatched after cancellation is observed.
func (p *Provisioner) Run(ctx context.Context, specs []models.RecurrenceSpec, d *models.BaselineDescriptor) (*Report, error) {
	rep := &Report{}

	baselineID, err := p.Client.CreateBaseline(ctx, d)
	if err != nil {
		slog.Error("create baseline failed", "name", d.Name, "error", err)
		rep.Failed++
	} else {
		rep.BaselineID = baselineID
		slog.Info("created patch baseline", "baseline_id", baselineID, "name", d.Name)
	}

	// The registration is created at most once per run and shared by
	// every window through the patch group tag.
	if rep.BaselineID != "" {
		if err := p.Client.RegisterBaseline(ctx, rep.BaselineID, d.PatchGroup); err != nil {
			slog.Error("register baseline failed", "baseline_id", rep.BaselineID, "patch_group", d.PatchGroup, "error", err)
			rep.Failed++
		} else {
			rep.Registered = true
			slog.Info("registered baseline for patch group", "baseline_id", rep.BaselineID, "patch_group", d.PatchGroup)
		}
	}

	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		res := p.provisionWindow(ctx, spec, d.PatchGroup)
		rep.Windows = append(rep.Windows, res)
		if res.Err != nil {
			rep.Failed++
		}
	}
	return rep, nil
}

func (p *Provisioner) provisionWindow(ctx context.Context, spec models.RecurrenceSpec, patchGroup string) models.ProvisionResult {
	res := models.ProvisionResult{Name: WindowName(spec), Spec: spec}

	windowID, err := p.Client.CreateWindow(ctx, res.Name, spec,
		int32(p.Settings.WindowDurationHours), int32(p.Settings.WindowCutoffHours))
	if err != nil {
		slog.Error("create window failed", "name", res.Name, "error", err)
		res.Err = err
		return res
	}
	res.WindowID = windowID
	slog.Info("created maintenance window", "window_id", windowID, "name", res.Name,
		"schedule", ssmops.CronExpression(spec), "timezone", spec.Timezone)

	targetID, err := p.Client.RegisterTarget(ctx, windowID, patchGroup)
	if err != nil {
		slog.Error("register target failed", "window_id", windowID, "patch_group", patchGroup, "error", err)
		res.Err = err
		return res
	}
	res.TargetID = targetID
	slog.Info("registered patch group target", "window_id", windowID, "target_id", targetID)

	taskID, err := p.Client.RegisterTask(ctx, windowID, targetID,
		p.Settings.TaskMaxConcurrency, p.Settings.TaskMaxErrors)
	if err != nil {
		slog.Error("register task failed", "window_id", windowID, "target_id", targetID, "error", err)
		res.Err = err
		return res
	}
	res.TaskID = taskID
	slog.Info("registered patching task", "window_id", windowID, "task_id", taskID)
	return res
}

// WindowName derives the window name from its recurrence spec, e.g.
// "patching-week1-tue-0300".
func WindowName(spec models.RecurrenceSpec) string {
	return fmt.Sprintf("patching-week%d-%.3s-%02d00", spec.Week, spec.Day, spec.Hour)
}
