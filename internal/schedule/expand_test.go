package schedule

import (
	"errors"
	"testing"

	"github.com/opstools/ssm-patching/internal/models"
)

func TestExpand_Cardinality(t *testing.T) {
	specs, err := Expand(Request{
		Weeks: []int{1, 2, 3},
		Days:  []models.Weekday{models.Monday, models.Friday},
		Hours: []int{0, 12, 23},
	})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(specs) != 18 {
		t.Fatalf("expected 18 specs, got %d", len(specs))
	}
	seen := make(map[models.RecurrenceSpec]bool)
	for _, s := range specs {
		if seen[s] {
			t.Errorf("duplicate spec %+v", s)
		}
		seen[s] = true
	}
}

func TestExpand_WeekGrouping(t *testing.T) {
	// Default schedule: weeks 1-2, Tue/Wed, 03:00 and 04:00.
	specs, err := Expand(Request{
		Weeks: []int{2, 1},
		Days:  []models.Weekday{models.Tuesday, models.Wednesday},
		Hours: []int{3, 4},
	})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(specs) != 8 {
		t.Fatalf("expected 8 specs, got %d", len(specs))
	}
	for i, s := range specs[:4] {
		if s.Week != 1 {
			t.Errorf("spec %d: expected week 1, got %d", i, s.Week)
		}
	}
	for i, s := range specs[4:] {
		if s.Week != 2 {
			t.Errorf("spec %d: expected week 2, got %d", i+4, s.Week)
		}
	}
}

func TestExpand_WeekGroupsAscend(t *testing.T) {
	specs, err := Expand(Request{
		Weeks: []int{5, 3, 1},
		Days:  []models.Weekday{models.Sunday},
		Hours: []int{6},
	})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	last := 0
	for i, s := range specs {
		if s.Week < last {
			t.Fatalf("spec %d: week %d after week %d", i, s.Week, last)
		}
		last = s.Week
	}
}

func TestExpand_Dedup(t *testing.T) {
	specs, err := Expand(Request{
		Weeks: []int{1, 1, 2, 2},
		Days:  []models.Weekday{models.Tuesday, models.Tuesday},
		Hours: []int{3, 3, 3},
	})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(specs) != 2 {
		t.Fatalf("expected 2 specs after dedup, got %d", len(specs))
	}
}

func TestExpand_TimezoneCarried(t *testing.T) {
	specs, err := Expand(Request{
		Weeks:    []int{1},
		Days:     []models.Weekday{models.Monday},
		Hours:    []int{4},
		Timezone: "Europe/London",
	})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if specs[0].Timezone != "Europe/London" {
		t.Errorf("timezone not carried: %+v", specs[0])
	}
}

func TestExpand_EmptyInputs(t *testing.T) {
	cases := []Request{
		{Weeks: nil, Days: []models.Weekday{models.Monday}, Hours: []int{1}},
		{Weeks: []int{1}, Days: nil, Hours: []int{1}},
		{Weeks: []int{1}, Days: []models.Weekday{models.Monday}, Hours: nil},
	}
	for i, req := range cases {
		if _, err := Expand(req); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("case %d: expected ErrEmptyInput, got %v", i, err)
		}
	}
}

func TestExpand_OutOfRange(t *testing.T) {
	cases := []Request{
		{Weeks: []int{0}, Days: []models.Weekday{models.Monday}, Hours: []int{1}},
		{Weeks: []int{6}, Days: []models.Weekday{models.Monday}, Hours: []int{1}},
		{Weeks: []int{1}, Days: []models.Weekday{models.Monday}, Hours: []int{24}},
		{Weeks: []int{1}, Days: []models.Weekday{models.Monday}, Hours: []int{-1}},
		{Weeks: []int{1}, Days: []models.Weekday{models.Weekday(7)}, Hours: []int{1}},
	}
	for i, req := range cases {
		if _, err := Expand(req); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("case %d: expected ErrOutOfRange, got %v", i, err)
		}
	}
}
