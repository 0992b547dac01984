package decommission

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/opstools/ssm-patching/internal/models"
	"github.com/opstools/ssm-patching/internal/ownership"
)

type fakeClient struct {
	windows   []models.WindowRecord
	tasks     map[string][]models.TaskRecord
	regs      []models.RegistrationRecord
	baselines []models.BaselineRecord

	listWindowsErr error
	taskErr        map[string]error // by task id
	windowErr      map[string]error // by window id
	regErr         map[string]error // by baseline id
	baselineErr    map[string]error // by baseline id

	calls []string
}

func (f *fakeClient) ListWindows(context.Context) ([]models.WindowRecord, error) {
	return f.windows, f.listWindowsErr
}

func (f *fakeClient) ListWindowTasks(_ context.Context, windowID string) ([]models.TaskRecord, error) {
	return f.tasks[windowID], nil
}

func (f *fakeClient) ListRegistrations(context.Context) ([]models.RegistrationRecord, error) {
	return f.regs, nil
}

func (f *fakeClient) ListCustomBaselines(context.Context) ([]models.BaselineRecord, error) {
	return f.baselines, nil
}

func (f *fakeClient) DeregisterTask(_ context.Context, windowID, taskID string) error {
	f.calls = append(f.calls, fmt.Sprintf("deregister-task %s %s", windowID, taskID))
	return f.taskErr[taskID]
}

func (f *fakeClient) DeleteWindow(_ context.Context, windowID string) error {
	f.calls = append(f.calls, "delete-window "+windowID)
	return f.windowErr[windowID]
}

func (f *fakeClient) DeregisterBaseline(_ context.Context, baselineID, patchGroup string) error {
	f.calls = append(f.calls, fmt.Sprintf("deregister-baseline %s %s", baselineID, patchGroup))
	return f.regErr[baselineID]
}

func (f *fakeClient) DeleteBaseline(_ context.Context, baselineID string) error {
	f.calls = append(f.calls, "delete-baseline "+baselineID)
	return f.baselineErr[baselineID]
}

// fixture: W1 wholly-owned (one patching task), W2 partially-foreign
// (patching + custom task), W3 empty.
func fixture() *fakeClient {
	return &fakeClient{
		windows: []models.WindowRecord{
			{ID: "mw-1", Name: "patching-week1-tue-0300"},
			{ID: "mw-2", Name: "team-window"},
			{ID: "mw-3", Name: "leftover"},
		},
		tasks: map[string][]models.TaskRecord{
			"mw-1": {{ID: "t-1", WindowID: "mw-1", TaskArn: ownership.ApplyBaselineTask}},
			"mw-2": {
				{ID: "t-2", WindowID: "mw-2", TaskArn: ownership.ApplyBaselineTask},
				{ID: "t-3", WindowID: "mw-2", TaskArn: "custom-report"},
			},
		},
		regs: []models.RegistrationRecord{
			{BaselineID: "pb-1", PatchGroup: "Production"},
		},
		baselines: []models.BaselineRecord{
			{ID: "pb-1", Name: "linux-security"},
			{ID: "pb-9", Name: "os-default", Default: true},
		},
	}
}

func indexOf(calls []string, call string) int {
	for i, c := range calls {
		if c == call {
			return i
		}
	}
	return -1
}

func TestRun_OwnedWindowTasksBeforeWindow(t *testing.T) {
	f := fixture()
	d := &Decommissioner{Client: f}

	if _, err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	taskIdx := indexOf(f.calls, "deregister-task mw-1 t-1")
	winIdx := indexOf(f.calls, "delete-window mw-1")
	if taskIdx == -1 || winIdx == -1 {
		t.Fatalf("missing calls for mw-1: %v", f.calls)
	}
	if taskIdx > winIdx {
		t.Errorf("window deleted before its task: %v", f.calls)
	}
}

func TestRun_ForeignWindowUntouched(t *testing.T) {
	f := fixture()
	d := &Decommissioner{Client: f}

	sum, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, c := range f.calls {
		if strings.Contains(c, "mw-2") || strings.Contains(c, "t-2") || strings.Contains(c, "t-3") {
			t.Errorf("foreign window touched: %q", c)
		}
	}
	found := false
	for _, r := range sum.Results {
		if r.Kind == "window" && r.ID == "mw-2" {
			found = true
			if r.Action != "skipped" {
				t.Errorf("mw-2 action = %q", r.Action)
			}
		}
	}
	if !found {
		t.Error("no result recorded for skipped window mw-2")
	}
}

func TestRun_EmptyWindowDeletedWithoutTaskCalls(t *testing.T) {
	f := fixture()
	d := &Decommissioner{Client: f}

	if _, err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if indexOf(f.calls, "delete-window mw-3") == -1 {
		t.Errorf("empty window not deleted: %v", f.calls)
	}
	for _, c := range f.calls {
		if strings.HasPrefix(c, "deregister-task mw-3") {
			t.Errorf("task deletion issued for empty window: %q", c)
		}
	}
}

func TestRun_RegistrationsAndBaselines(t *testing.T) {
	f := fixture()
	d := &Decommissioner{Client: f}

	sum, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if indexOf(f.calls, "deregister-baseline pb-1 Production") == -1 {
		t.Errorf("registration not removed: %v", f.calls)
	}
	if indexOf(f.calls, "delete-baseline pb-1") == -1 {
		t.Errorf("custom baseline not deleted: %v", f.calls)
	}
	if indexOf(f.calls, "delete-baseline pb-9") != -1 {
		t.Errorf("default baseline deleted: %v", f.calls)
	}
	skippedDefault := false
	for _, r := range sum.Results {
		if r.Kind == "baseline" && r.ID == "pb-9" && r.Action == "skipped" {
			skippedDefault = true
		}
	}
	if !skippedDefault {
		t.Error("default baseline skip not recorded")
	}
	if sum.Failed != 0 {
		t.Errorf("expected 0 failures, got %d", sum.Failed)
	}
}

func TestRun_TaskFailureDoesNotBlockOthers(t *testing.T) {
	f := fixture()
	f.taskErr = map[string]error{"t-1": errors.New("throttled")}
	// The window delete will be rejected remotely too; simulate that.
	f.windowErr = map[string]error{"mw-1": errors.New("window has tasks")}
	d := &Decommissioner{Client: f}

	sum, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Failed != 2 {
		t.Errorf("expected 2 failures, got %d", sum.Failed)
	}
	// The window deletion is still attempted, and unrelated resources
	// are still processed.
	if indexOf(f.calls, "delete-window mw-1") == -1 {
		t.Errorf("window deletion not attempted: %v", f.calls)
	}
	if indexOf(f.calls, "delete-window mw-3") == -1 || indexOf(f.calls, "delete-baseline pb-1") == -1 {
		t.Errorf("unrelated deletions blocked: %v", f.calls)
	}
}

func TestRun_SnapshotFailureAbortsBeforeDeletes(t *testing.T) {
	f := fixture()
	f.listWindowsErr = errors.New("access denied")
	d := &Decommissioner{Client: f}

	if _, err := d.Run(context.Background()); err == nil {
		t.Fatal("expected error from failed snapshot")
	}
	if len(f.calls) != 0 {
		t.Errorf("deletes issued despite failed snapshot: %v", f.calls)
	}
}

func TestRun_CancelledContextStopsDispatch(t *testing.T) {
	f := fixture()
	d := &Decommissioner{Client: f}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sum, err := d.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	for _, c := range sum.Results {
		if c.Action == "deleted" {
			t.Errorf("deletion dispatched after cancellation: %+v", c)
		}
	}
	if len(f.calls) != 0 {
		t.Errorf("calls dispatched after cancellation: %v", f.calls)
	}
}

func TestRun_ClassificationMatchesOwnershipRules(t *testing.T) {
	f := fixture()
	d := &Decommissioner{Client: f}

	sum, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// 1 task + 2 windows + 1 registration + 1 baseline deleted;
	// 1 window + 1 default baseline skipped.
	if sum.Deleted != 5 {
		t.Errorf("expected 5 deletions, got %d (%+v)", sum.Deleted, sum.Results)
	}
	if sum.Skipped != 2 {
		t.Errorf("expected 2 skips, got %d (%+v)", sum.Skipped, sum.Results)
	}
}
