// Package schedule expands a compact schedule description into the full
// set of recurrence specs to provision.
package schedule

import (
	"errors"
	"fmt"
	"sort"

	"github.com/opstools/ssm-patching/internal/models"
)

var (
	// ErrEmptyInput means one of the week/weekday/hour sets is empty.
	ErrEmptyInput = errors.New("empty input set")
	// ErrOutOfRange means a week, weekday or hour value is outside its
	// valid range.
	ErrOutOfRange = errors.New("value out of range")
)

// Request is the input to Expand. The slices may contain duplicates;
// they are deduplicated before expansion. Timezone may be empty.
type Request struct {
	Weeks    []int
	Days     []models.Weekday
	Hours    []int
	Timezone string
}

// Expand returns one RecurrenceSpec per (week, weekday, hour)
// combination. The result is grouped by week ascending: every spec for
// week N precedes every spec for week N+1. Within one week the
// (weekday, hour) order is unspecified, because "Nth weekday of month"
// windows in the same week do not calendar-order by weekday anyway.
func Expand(req Request) ([]models.RecurrenceSpec, error) {
	weeks, err := dedupInts(req.Weeks, "week", 1, 5)
	if err != nil {
		return nil, err
	}
	hours, err := dedupInts(req.Hours, "hour", 0, 23)
	if err != nil {
		return nil, err
	}
	days, err := dedupDays(req.Days)
	if err != nil {
		return nil, err
	}

	// Week grouping is the one ordering callers may rely on.
	sort.Ints(weeks)

	specs := make([]models.RecurrenceSpec, 0, len(weeks)*len(days)*len(hours))
	for _, w := range weeks {
		for _, d := range days {
			for _, h := range hours {
				specs = append(specs, models.RecurrenceSpec{
					Week:     w,
					Day:      d,
					Hour:     h,
					Timezone: req.Timezone,
				})
			}
		}
	}
	return specs, nil
}

func dedupInts(in []int, what string, min, max int) ([]int, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: no %ss given", ErrEmptyInput, what)
	}
	seen := make(map[int]bool, len(in))
	out := make([]int, 0, len(in))
	for _, v := range in {
		if v < min || v > max {
			return nil, fmt.Errorf("%w: %s %d not in [%d,%d]", ErrOutOfRange, what, v, min, max)
		}
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out, nil
}

func dedupDays(in []models.Weekday) ([]models.Weekday, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: no weekdays given", ErrEmptyInput)
	}
	seen := make(map[models.Weekday]bool, len(in))
	out := make([]models.Weekday, 0, len(in))
	for _, d := range in {
		if !d.Valid() {
			return nil, fmt.Errorf("%w: weekday %d", ErrOutOfRange, int(d))
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out, nil
}
