// Package baseline loads the declarative patch-baseline descriptor.
package baseline

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/opstools/ssm-patching/internal/models"
)

// ErrInvalid means the descriptor document violates the expected schema.
var ErrInvalid = errors.New("invalid baseline descriptor")

// Load reads a BaselineDescriptor from the YAML document at path.
func Load(path string) (*models.BaselineDescriptor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read baseline file: %w", err)
	}

	var d models.BaselineDescriptor
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if err := validate(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

func validate(d *models.BaselineDescriptor) error {
	if d.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if d.OperatingSystem == "" {
		return fmt.Errorf("%w: operating_system is required", ErrInvalid)
	}
	if d.PatchGroup == "" {
		return fmt.Errorf("%w: patch_group is required", ErrInvalid)
	}
	if len(d.ApprovalRules) == 0 {
		return fmt.Errorf("%w: at least one approval rule is required", ErrInvalid)
	}
	for i, r := range d.ApprovalRules {
		if len(r.Products) == 0 && len(r.Classifications) == 0 && len(r.Severities) == 0 {
			return fmt.Errorf("%w: approval rule %d has no patch filters", ErrInvalid, i)
		}
		if r.ApproveAfterDays < 0 || r.ApproveAfterDays > 360 {
			return fmt.Errorf("%w: approval rule %d: approve_after_days %d not in [0,360]", ErrInvalid, i, r.ApproveAfterDays)
		}
	}
	return nil
}
