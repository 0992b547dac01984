package ssmops

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"

	"github.com/opstools/ssm-patching/internal/models"
)

// Client exposes the remote operations as single-purpose methods on
// the shared data model. It holds no state beyond the underlying API
// client; every method is one remote call (listings follow pagination
// to exhaustion).
type Client struct {
	api API
}

// New returns a Client backed by the real SSM service.
func New(cfg aws.Config) *Client {
	return &Client{api: ssm.NewFromConfig(cfg)}
}

// NewFromAPI returns a Client backed by any API implementation.
func NewFromAPI(api API) *Client {
	return &Client{api: api}
}

// CreateBaseline creates the custom patch baseline described by d and
// returns its ID.
func (c *Client) CreateBaseline(ctx context.Context, d *models.BaselineDescriptor) (string, error) {
	rules := make([]types.PatchRule, 0, len(d.ApprovalRules))
	for _, r := range d.ApprovalRules {
		rules = append(rules, patchRule(r))
	}
	out, err := c.api.CreatePatchBaseline(ctx, &ssm.CreatePatchBaselineInput{
		Name:            aws.String(d.Name),
		Description:     stringOrNil(d.Description),
		OperatingSystem: types.OperatingSystem(d.OperatingSystem),
		ApprovalRules:   &types.PatchRuleGroup{PatchRules: rules},
	})
	if err != nil {
		return "", fmt.Errorf("create patch baseline %q: %w", d.Name, err)
	}
	return aws.ToString(out.BaselineId), nil
}

func patchRule(r models.ApprovalRule) types.PatchRule {
	var filters []types.PatchFilter
	if len(r.Products) > 0 {
		filters = append(filters, types.PatchFilter{Key: types.PatchFilterKeyProduct, Values: r.Products})
	}
	if len(r.Classifications) > 0 {
		filters = append(filters, types.PatchFilter{Key: types.PatchFilterKeyClassification, Values: r.Classifications})
	}
	if len(r.Severities) > 0 {
		filters = append(filters, types.PatchFilter{Key: types.PatchFilterKeySeverity, Values: r.Severities})
	}
	rule := types.PatchRule{
		ApproveAfterDays: aws.Int32(int32(r.ApproveAfterDays)),
		PatchFilterGroup: &types.PatchFilterGroup{PatchFilters: filters},
	}
	if r.ComplianceLevel != "" {
		rule.ComplianceLevel = types.PatchComplianceLevel(r.ComplianceLevel)
	}
	return rule
}

// RegisterBaseline registers the baseline for a patch group.
func (c *Client) RegisterBaseline(ctx context.Context, baselineID, patchGroup string) error {
	_, err := c.api.RegisterPatchBaselineForPatchGroup(ctx, &ssm.RegisterPatchBaselineForPatchGroupInput{
		BaselineId: aws.String(baselineID),
		PatchGroup: aws.String(patchGroup),
	})
	if err != nil {
		return fmt.Errorf("register baseline %s for patch group %q: %w", baselineID, patchGroup, err)
	}
	return nil
}

// CreateWindow creates one maintenance window for spec and returns its
// ID. Duration and cutoff are hours.
func (c *Client) CreateWindow(ctx context.Context, name string, spec models.RecurrenceSpec, duration, cutoff int32) (string, error) {
	in := &ssm.CreateMaintenanceWindowInput{
		Name:                     aws.String(name),
		Description:              aws.String(fmt.Sprintf("Patching window: week %d, %s, %02d:00", spec.Week, spec.Day, spec.Hour)),
		Schedule:                 aws.String(CronExpression(spec)),
		Duration:                 aws.Int32(duration),
		Cutoff:                   cutoff,
		AllowUnassociatedTargets: false,
	}
	if spec.Timezone != "" {
		in.ScheduleTimezone = aws.String(spec.Timezone)
	}
	out, err := c.api.CreateMaintenanceWindow(ctx, in)
	if err != nil {
		return "", fmt.Errorf("create maintenance window %q: %w", name, err)
	}
	return aws.ToString(out.WindowId), nil
}

// RegisterTarget registers the patch group as an instance target of the
// window and returns the target ID.
func (c *Client) RegisterTarget(ctx context.Context, windowID, patchGroup string) (string, error) {
	out, err := c.api.RegisterTargetWithMaintenanceWindow(ctx, &ssm.RegisterTargetWithMaintenanceWindowInput{
		WindowId:     aws.String(windowID),
		ResourceType: types.MaintenanceWindowResourceTypeInstance,
		Targets: []types.Target{{
			Key:    aws.String("tag:Patch Group"),
			Values: []string{patchGroup},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("register target on window %s: %w", windowID, err)
	}
	return aws.ToString(out.WindowTargetId), nil
}

// RegisterTask registers an AWS-RunPatchBaseline run-command task on
// the window against an already-registered target and returns the task
// ID. maxConcurrency and maxErrors take the service's count-or-percent
// forms, e.g. "50%".
func (c *Client) RegisterTask(ctx context.Context, windowID, targetID, maxConcurrency, maxErrors string) (string, error) {
	out, err := c.api.RegisterTaskWithMaintenanceWindow(ctx, &ssm.RegisterTaskWithMaintenanceWindowInput{
		WindowId: aws.String(windowID),
		TaskArn:  aws.String("AWS-RunPatchBaseline"),
		TaskType: types.MaintenanceWindowTaskTypeRunCommand,
		Targets: []types.Target{{
			Key:    aws.String("WindowTargetIds"),
			Values: []string{targetID},
		}},
		MaxConcurrency: aws.String(maxConcurrency),
		MaxErrors:      aws.String(maxErrors),
		TaskInvocationParameters: &types.MaintenanceWindowTaskInvocationParameters{
			RunCommand: &types.MaintenanceWindowRunCommandParameters{
				Parameters: map[string][]string{"Operation": {"Install"}},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("register task on window %s: %w", windowID, err)
	}
	return aws.ToString(out.WindowTaskId), nil
}

// ListWindows returns every maintenance window in the region.
func (c *Client) ListWindows(ctx context.Context) ([]models.WindowRecord, error) {
	var out []models.WindowRecord
	p := ssm.NewDescribeMaintenanceWindowsPaginator(c.api, &ssm.DescribeMaintenanceWindowsInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe maintenance windows: %w", err)
		}
		for _, w := range page.WindowIdentities {
			out = append(out, models.WindowRecord{
				ID:          aws.ToString(w.WindowId),
				Name:        aws.ToString(w.Name),
				Description: aws.ToString(w.Description),
				Enabled:     w.Enabled,
			})
		}
	}
	return out, nil
}

// ListWindowTasks returns every task registered with the window.
func (c *Client) ListWindowTasks(ctx context.Context, windowID string) ([]models.TaskRecord, error) {
	var out []models.TaskRecord
	p := ssm.NewDescribeMaintenanceWindowTasksPaginator(c.api, &ssm.DescribeMaintenanceWindowTasksInput{
		WindowId: aws.String(windowID),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe tasks of window %s: %w", windowID, err)
		}
		for _, t := range page.Tasks {
			out = append(out, models.TaskRecord{
				ID:       aws.ToString(t.WindowTaskId),
				WindowID: aws.ToString(t.WindowId),
				TaskArn:  aws.ToString(t.TaskArn),
				Type:     string(t.Type),
			})
		}
	}
	return out, nil
}

// ListRegistrations returns every baseline-to-patch-group registration.
func (c *Client) ListRegistrations(ctx context.Context) ([]models.RegistrationRecord, error) {
	var out []models.RegistrationRecord
	p := ssm.NewDescribePatchGroupsPaginator(c.api, &ssm.DescribePatchGroupsInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe patch groups: %w", err)
		}
		for _, m := range page.Mappings {
			rec := models.RegistrationRecord{PatchGroup: aws.ToString(m.PatchGroup)}
			if m.BaselineIdentity != nil {
				rec.BaselineID = aws.ToString(m.BaselineIdentity.BaselineId)
			}
			out = append(out, rec)
		}
	}
	return out, nil
}

// ListCustomBaselines returns the account's own (non-predefined) patch
// baselines.
func (c *Client) ListCustomBaselines(ctx context.Context) ([]models.BaselineRecord, error) {
	var out []models.BaselineRecord
	p := ssm.NewDescribePatchBaselinesPaginator(c.api, &ssm.DescribePatchBaselinesInput{
		Filters: []types.PatchOrchestratorFilter{{
			Key:    aws.String("OWNER"),
			Values: []string{"Self"},
		}},
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe patch baselines: %w", err)
		}
		for _, b := range page.BaselineIdentities {
			out = append(out, models.BaselineRecord{
				ID:              aws.ToString(b.BaselineId),
				Name:            aws.ToString(b.BaselineName),
				OperatingSystem: string(b.OperatingSystem),
				Default:         b.DefaultBaseline,
			})
		}
	}
	return out, nil
}

// DeregisterTask removes one task from a window.
func (c *Client) DeregisterTask(ctx context.Context, windowID, taskID string) error {
	_, err := c.api.DeregisterTaskFromMaintenanceWindow(ctx, &ssm.DeregisterTaskFromMaintenanceWindowInput{
		WindowId:     aws.String(windowID),
		WindowTaskId: aws.String(taskID),
	})
	if err != nil {
		return fmt.Errorf("deregister task %s from window %s: %w", taskID, windowID, err)
	}
	return nil
}

// DeleteWindow deletes a maintenance window. The control plane rejects
// this while the window still has registered tasks.
func (c *Client) DeleteWindow(ctx context.Context, windowID string) error {
	_, err := c.api.DeleteMaintenanceWindow(ctx, &ssm.DeleteMaintenanceWindowInput{
		WindowId: aws.String(windowID),
	})
	if err != nil {
		return fmt.Errorf("delete window %s: %w", windowID, err)
	}
	return nil
}

// DeregisterBaseline removes a baseline-to-patch-group registration.
func (c *Client) DeregisterBaseline(ctx context.Context, baselineID, patchGroup string) error {
	_, err := c.api.DeregisterPatchBaselineForPatchGroup(ctx, &ssm.DeregisterPatchBaselineForPatchGroupInput{
		BaselineId: aws.String(baselineID),
		PatchGroup: aws.String(patchGroup),
	})
	if err != nil {
		return fmt.Errorf("deregister baseline %s from patch group %q: %w", baselineID, patchGroup, err)
	}
	return nil
}

// DeleteBaseline deletes a custom patch baseline.
func (c *Client) DeleteBaseline(ctx context.Context, baselineID string) error {
	_, err := c.api.DeletePatchBaseline(ctx, &ssm.DeletePatchBaselineInput{
		BaselineId: aws.String(baselineID),
	})
	if err != nil {
		return fmt.Errorf("delete baseline %s: %w", baselineID, err)
	}
	return nil
}

func stringOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}
