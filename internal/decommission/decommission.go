// Package decommission removes the patching resources this tool's
// conventions own: tasks and windows that carry only recognized
// patching actions, every baseline-to-patch-group registration, and
// every custom baseline. Windows with any unrecognized task are left
// untouched.
package decommission

import (
	"context"
	"log/slog"

	"github.com/opstools/ssm-patching/internal/models"
	"github.com/opstools/ssm-patching/internal/ownership"
)

// Client is the slice of ssmops.Client the decommissioner uses.
type Client interface {
	ListWindows(ctx context.Context) ([]models.WindowRecord, error)
	ListWindowTasks(ctx context.Context, windowID string) ([]models.TaskRecord, error)
	ListRegistrations(ctx context.Context) ([]models.RegistrationRecord, error)
	ListCustomBaselines(ctx context.Context) ([]models.BaselineRecord, error)
	DeregisterTask(ctx context.Context, windowID, taskID string) error
	DeleteWindow(ctx context.Context, windowID string) error
	DeregisterBaseline(ctx context.Context, baselineID, patchGroup string) error
	DeleteBaseline(ctx context.Context, baselineID string) error
}

// Inventory is the read-only snapshot deletions are decided from. It is
// captured in full before the first delete call.
type Inventory struct {
	Windows       []models.WindowRecord
	Tasks         map[string][]models.TaskRecord
	Registrations []models.RegistrationRecord
	Baselines     []models.BaselineRecord
}

// Summary accumulates the outcome of one decommission run.
type Summary struct {
	Results []models.DeletionResult
	Deleted int
	Skipped int
	Failed  int
}

func (s *Summary) record(r models.DeletionResult) {
	s.Results = append(s.Results, r)
	switch r.Action {
	case "deleted":
		s.Deleted++
	case "skipped":
		s.Skipped++
	case "failed":
		s.Failed++
	}
}

// Decommissioner drives one cleanup run.
type Decommissioner struct {
	Client Client
}

// Run captures the inventory, classifies window ownership, and deletes
// eligible resources. Per-resource failures are recorded and the run
// continues; the returned error is non-nil only when the snapshot could
// not be captured or the context was cancelled mid-run. For each
// deletable window, all of its tasks are deleted before the window
// itself.
func (d *Decommissioner) Run(ctx context.Context) (*Summary, error) {
	inv, err := d.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	sum := &Summary{}
	verdicts := ownership.Classify(inv.Windows, inv.Tasks)

	for _, w := range inv.Windows {
		if err := d.removeWindow(ctx, sum, w, verdicts[w.ID], inv.Tasks[w.ID]); err != nil {
			return sum, err
		}
	}

	for _, reg := range ownership.RegistrationsToRemove(inv.Registrations) {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		d.removeRegistration(ctx, sum, reg)
	}

	for _, b := range inv.Baselines {
		if b.Default {
			slog.Info("skipping default baseline", "baseline_id", b.ID, "name", b.Name)
			sum.record(models.DeletionResult{Kind: "baseline", ID: b.ID, Name: b.Name,
				Action: "skipped", Reason: "current default for its operating system"})
		}
	}
	for _, b := range ownership.BaselinesToRemove(inv.Baselines) {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		d.removeBaseline(ctx, sum, b)
	}

	return sum, nil
}

// snapshot lists the full inventory up front. Deletions are never
// decided from a partially-refreshed view, so any listing failure
// aborts the run before the first delete.
func (d *Decommissioner) snapshot(ctx context.Context) (*Inventory, error) {
	windows, err := d.Client.ListWindows(ctx)
	if err != nil {
		return nil, err
	}
	tasks := make(map[string][]models.TaskRecord, len(windows))
	for _, w := range windows {
		list, err := d.Client.ListWindowTasks(ctx, w.ID)
		if err != nil {
			return nil, err
		}
		tasks[w.ID] = list
	}
	regs, err := d.Client.ListRegistrations(ctx)
	if err != nil {
		return nil, err
	}
	baselines, err := d.Client.ListCustomBaselines(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("captured inventory", "windows", len(windows),
		"registrations", len(regs), "custom_baselines", len(baselines))
	return &Inventory{Windows: windows, Tasks: tasks, Registrations: regs, Baselines: baselines}, nil
}

func (d *Decommissioner) removeWindow(ctx context.Context, sum *Summary, w models.WindowRecord, v models.Verdict, tasks []models.TaskRecord) error {
	if v == models.VerdictForeign {
		slog.Info("leaving window alone", "window_id", w.ID, "name", w.Name, "verdict", v.String())
		sum.record(models.DeletionResult{Kind: "window", ID: w.ID, Name: w.Name,
			Action: "skipped", Reason: "window has non-patching tasks"})
		return nil
	}

	// Tasks strictly before the window; a window with live tasks cannot
	// be deleted.
	for _, t := range tasks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.Client.DeregisterTask(ctx, w.ID, t.ID); err != nil {
			slog.Error("deregister task failed", "window_id", w.ID, "task_id", t.ID, "error", err)
			sum.record(models.DeletionResult{Kind: "task", ID: t.ID, Action: "failed", Err: err})
			continue
		}
		slog.Info("deregistered task", "window_id", w.ID, "task_id", t.ID, "task_arn", t.TaskArn)
		sum.record(models.DeletionResult{Kind: "task", ID: t.ID, Action: "deleted"})
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.Client.DeleteWindow(ctx, w.ID); err != nil {
		slog.Error("delete window failed", "window_id", w.ID, "error", err)
		sum.record(models.DeletionResult{Kind: "window", ID: w.ID, Name: w.Name, Action: "failed", Err: err})
		return nil
	}
	slog.Info("deleted maintenance window", "window_id", w.ID, "name", w.Name, "verdict", v.String())
	sum.record(models.DeletionResult{Kind: "window", ID: w.ID, Name: w.Name, Action: "deleted", Reason: v.String()})
	return nil
}

func (d *Decommissioner) removeRegistration(ctx context.Context, sum *Summary, reg models.RegistrationRecord) {
	if err := d.Client.DeregisterBaseline(ctx, reg.BaselineID, reg.PatchGroup); err != nil {
		slog.Error("deregister baseline failed", "baseline_id", reg.BaselineID, "patch_group", reg.PatchGroup, "error", err)
		sum.record(models.DeletionResult{Kind: "registration", ID: reg.BaselineID, Name: reg.PatchGroup, Action: "failed", Err: err})
		return
	}
	slog.Info("deregistered baseline from patch group", "baseline_id", reg.BaselineID, "patch_group", reg.PatchGroup)
	sum.record(models.DeletionResult{Kind: "registration", ID: reg.BaselineID, Name: reg.PatchGroup, Action: "deleted"})
}

func (d *Decommissioner) removeBaseline(ctx context.Context, sum *Summary, b models.BaselineRecord) {
	if err := d.Client.DeleteBaseline(ctx, b.ID); err != nil {
		slog.Error("delete baseline failed", "baseline_id", b.ID, "error", err)
		sum.record(models.DeletionResult{Kind: "baseline", ID: b.ID, Name: b.Name, Action: "failed", Err: err})
		return
	}
	slog.Info("deleted custom baseline", "baseline_id", b.ID, "name", b.Name)
	sum.record(models.DeletionResult{Kind: "baseline", ID: b.ID, Name: b.Name, Action: "deleted"})
}
