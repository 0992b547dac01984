// Package ownership decides which inventory resources this tool owns
// and may therefore delete. Everything here is a pure function over an
// inventory snapshot; nothing mutates the snapshot or depends on call
// order. The governing rule is conservative: a window with any
// unrecognized task is left entirely alone, patching tasks included.
package ownership

import "github.com/opstools/ssm-patching/internal/models"

// The two task actions this tool recognizes as its own. Any other
// action on a window marks the window partially-foreign.
const (
	ApplyBaselineTask = "AWS-ApplyPatchBaseline"
	RunBaselineTask   = "AWS-RunPatchBaseline"
)

// IsPatchingTask reports whether t invokes one of the recognized
// patching actions.
func IsPatchingTask(t models.TaskRecord) bool {
	return t.TaskArn == ApplyBaselineTask || t.TaskArn == RunBaselineTask
}

// Classify returns a verdict for every window in the snapshot. tasks
// maps window ID to the tasks registered with that window; windows
// absent from the map are treated as having none.
func Classify(windows []models.WindowRecord, tasks map[string][]models.TaskRecord) map[string]models.Verdict {
	verdicts := make(map[string]models.Verdict, len(windows))
	for _, w := range windows {
		verdicts[w.ID] = classifyWindow(tasks[w.ID])
	}
	return verdicts
}

func classifyWindow(tasks []models.TaskRecord) models.Verdict {
	if len(tasks) == 0 {
		return models.VerdictEmpty
	}
	for _, t := range tasks {
		if !IsPatchingTask(t) {
			return models.VerdictForeign
		}
	}
	return models.VerdictOwned
}

// RegistrationsToRemove returns every baseline-to-patch-group
// registration. Registrations have no sub-resources a foreign tool
// could own, so all of them are eligible.
func RegistrationsToRemove(regs []models.RegistrationRecord) []models.RegistrationRecord {
	out := make([]models.RegistrationRecord, len(regs))
	copy(out, regs)
	return out
}

// BaselinesToRemove returns the custom baselines eligible for
// deletion. A baseline currently set as the account default for its
// operating system is excluded; the control plane refuses to delete it.
func BaselinesToRemove(baselines []models.BaselineRecord) []models.BaselineRecord {
	out := make([]models.BaselineRecord, 0, len(baselines))
	for _, b := range baselines {
		if b.Default {
			continue
		}
		out = append(out, b)
	}
	return out
}
