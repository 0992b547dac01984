package models

import "fmt"

// WindowRecord is one maintenance window from the inventory scan.
type WindowRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Enabled     bool   `json:"enabled"`
}

// TaskRecord is one task registered with a maintenance window.
type TaskRecord struct {
	ID       string `json:"id"`
	WindowID string `json:"window_id"`
	TaskArn  string `json:"task_arn"`
	Type     string `json:"type,omitempty"`
}

// RegistrationRecord is one baseline-to-patch-group registration.
type RegistrationRecord struct {
	BaselineID string `json:"baseline_id"`
	PatchGroup string `json:"patch_group"`
}

// BaselineRecord is one custom (account-owned) patch baseline.
// Default marks the account's current default baseline for its
// operating system, which the control plane refuses to delete.
type BaselineRecord struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	OperatingSystem string `json:"operating_system,omitempty"`
	Default         bool   `json:"default"`
}

// Verdict is the ownership classification of one maintenance window.
type Verdict int

const (
	// VerdictOwned: every task on the window is a recognized patching
	// task. The window and all its tasks may be deleted.
	VerdictOwned Verdict = iota
	// VerdictForeign: at least one task is not a patching task. The
	// window and all its tasks, including the patching ones, are left
	// untouched.
	VerdictForeign
	// VerdictEmpty: the window has no tasks and may be deleted on its own.
	VerdictEmpty
)

func (v Verdict) String() string {
	switch v {
	case VerdictOwned:
		return "wholly-owned"
	case VerdictForeign:
		return "partially-foreign"
	case VerdictEmpty:
		return "empty"
	}
	return fmt.Sprintf("Verdict(%d)", int(v))
}
