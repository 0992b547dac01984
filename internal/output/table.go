// Package output renders run summaries as tables on stdout.
package output

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/opstools/ssm-patching/internal/decommission"
	"github.com/opstools/ssm-patching/internal/provision"
	"github.com/opstools/ssm-patching/internal/ssmops"
)

func render(header table.Row, rows []table.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(header)
	t.AppendRows(rows)
	t.Render()
}

// ProvisionReport prints one row per provisioned window plus the
// baseline line.
func ProvisionReport(rep *provision.Report) {
	if rep.BaselineID != "" {
		fmt.Printf("Baseline %s (registration created: %v)\n", rep.BaselineID, rep.Registered)
	}

	rows := make([]table.Row, 0, len(rep.Windows))
	for _, w := range rep.Windows {
		status := "ok"
		if w.Err != nil {
			status = "FAILED: " + w.Err.Error()
		}
		rows = append(rows, table.Row{
			w.Name, ssmops.CronExpression(w.Spec), w.Spec.Timezone,
			w.WindowID, w.TargetID, w.TaskID, status,
		})
	}
	render(table.Row{"Name", "Schedule", "Timezone", "Window", "Target", "Task", "Status"}, rows)
	fmt.Printf("%d window(s), %d failure(s)\n", len(rep.Windows), rep.Failed)
}

// CleanupSummary prints one row per decommission decision.
func CleanupSummary(sum *decommission.Summary) {
	rows := make([]table.Row, 0, len(sum.Results))
	for _, r := range sum.Results {
		detail := r.Reason
		if r.Err != nil {
			detail = r.Err.Error()
		}
		rows = append(rows, table.Row{r.Kind, r.ID, r.Name, r.Action, detail})
	}
	render(table.Row{"Kind", "ID", "Name", "Action", "Detail"}, rows)
	fmt.Printf("%d deleted, %d skipped, %d failed\n", sum.Deleted, sum.Skipped, sum.Failed)
}
