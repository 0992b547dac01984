package models

// ApprovalRule is one auto-approval rule of a patch baseline. At least
// one of Products, Classifications or Severities must be set.
type ApprovalRule struct {
	Products         []string `yaml:"products"`
	Classifications  []string `yaml:"classifications"`
	Severities       []string `yaml:"severities"`
	ApproveAfterDays int      `yaml:"approve_after_days"`
	ComplianceLevel  string   `yaml:"compliance_level"`
}

// BaselineDescriptor is the declarative description of the custom patch
// baseline to create and the patch group it targets. Loaded from a YAML
// document by the baseline package.
type BaselineDescriptor struct {
	Name            string         `yaml:"name"`
	Description     string         `yaml:"description"`
	OperatingSystem string         `yaml:"operating_system"`
	PatchGroup      string         `yaml:"patch_group"`
	ApprovalRules   []ApprovalRule `yaml:"approval_rules"`
}
