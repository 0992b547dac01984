package ssmops

import (
	"fmt"

	"github.com/opstools/ssm-patching/internal/models"
)

// awsDays maps the canonical weekday (Monday=0) to the scheduler's
// day-of-week names.
var awsDays = [...]string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"}

// CronExpression renders a recurrence spec in the six-field cron form
// the maintenance-window scheduler evaluates: minute, hour, day-of-month
// ("?"), month, day-of-week with a "#" ordinal, year. The spec's
// timezone is not part of the expression; it travels separately on the
// window resource.
func CronExpression(s models.RecurrenceSpec) string {
	return fmt.Sprintf("cron(0 %d ? * %s#%d *)", s.Hour, awsDays[s.Day], s.Week)
}
