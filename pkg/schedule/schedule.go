// Package schedule resolves payment schedule names to payments per year.
package schedule

import (
	"fmt"
	"strings"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
)

// Schedule is a canonical (lower-case) payment schedule name.
type Schedule string

const (
	Weekly   Schedule = constants.ScheduleWeekly
	Biweekly Schedule = constants.ScheduleBiweekly
	Monthly  Schedule = constants.ScheduleMonthly
)

var paymentsPerYear = map[Schedule]int{
	Weekly:   constants.WeeklyPaymentsPerYear,
	Biweekly: constants.BiweeklyPaymentsPerYear,
	Monthly:  constants.MonthlyPaymentsPerYear,
}

// ordered for messages
var names = []Schedule{Weekly, Biweekly, Monthly}

// Normalize trims and lower-cases a schedule name without checking it.
func Normalize(name string) Schedule {
	return Schedule(strings.ToLower(strings.TrimSpace(name)))
}

// Parse returns the canonical schedule for name, ignoring case.
func Parse(name string) (Schedule, error) {
	s := Normalize(name)
	if _, ok := paymentsPerYear[s]; !ok {
		return "", fmt.Errorf("unknown payment schedule %q, must be one of %s", name, strings.Join(Names(), ", "))
	}
	return s, nil
}

// Known reports whether name is a known schedule, ignoring case.
func Known(name string) bool {
	_, ok := paymentsPerYear[Normalize(name)]
	return ok
}

// PaymentsPerYear returns the exact number of payments per year for name.
func PaymentsPerYear(name string) (int, error) {
	s, err := Parse(name)
	if err != nil {
		return 0, err
	}
	return s.PaymentsPerYear(), nil
}

// PaymentsPerYear returns 0 for an unknown schedule.
func (s Schedule) PaymentsPerYear() int {
	return paymentsPerYear[s]
}

func (s Schedule) String() string {
	return string(s)
}

// Names lists the known schedules in display order.
func Names() []string {
	out := make([]string, len(names))
	for i, s := range names {
		out[i] = string(s)
	}
	return out
}
