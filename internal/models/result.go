package models

// ProvisionResult records the outcome of provisioning one maintenance
// window with its target and task. Err is set on the first remote call
// that failed for this window; the identifiers before it remain valid.
type ProvisionResult struct {
	Name     string
	Spec     RecurrenceSpec
	WindowID string
	TargetID string
	TaskID   string
	Err      error
}

// DeletionResult records one decommission decision or call.
type DeletionResult struct {
	Kind   string // window, task, registration, baseline
	ID     string
	Name   string
	Action string // deleted, skipped, failed
	Reason string
	Err    error
}
