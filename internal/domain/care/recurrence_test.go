package care

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextDueDate(t *testing.T) {
	five := 5
	zero := 0

	cases := []struct {
		name string
		task Task
		now  time.Time
		want time.Time
	}{
		{"daily", Task{IntervalType: IntervalDaily}, time.Date(2024, 3, 10, 22, 15, 0, 0, time.UTC), date(2024, 3, 11)},
		{"weekly", Task{IntervalType: IntervalWeekly}, date(2024, 12, 28), date(2025, 1, 4)},
		{"monthly jan31 non-leap", Task{IntervalType: IntervalMonthly}, date(2023, 1, 31), date(2023, 2, 28)},
		{"monthly jan31 leap", Task{IntervalType: IntervalMonthly}, date(2024, 1, 31), date(2024, 2, 29)},
		{"monthly december rolls year", Task{IntervalType: IntervalMonthly}, date(2024, 12, 15), date(2025, 1, 15)},
		{"monthly mar31 to apr30", Task{IntervalType: IntervalMonthly}, date(2024, 3, 31), date(2024, 4, 30)},
		{"custom 5 ignores previous due", Task{IntervalType: IntervalCustomDays, IntervalDays: &five, NextDueDate: date(2020, 1, 1)}, date(2024, 6, 10), date(2024, 6, 15)},
		{"custom unset defaults to 1", Task{IntervalType: IntervalCustomDays}, date(2024, 6, 10), date(2024, 6, 11)},
		{"custom zero defaults to 1", Task{IntervalType: IntervalCustomDays, IntervalDays: &zero}, date(2024, 6, 10), date(2024, 6, 11)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NextDueDate(tc.task, tc.now))
		})
	}
}

func TestNextDueDate_LateCompletionHasNoDrift(t *testing.T) {
	task := Task{IntervalType: IntervalWeekly, NextDueDate: date(2024, 1, 1)}
	got := NextDueDate(task, date(2024, 1, 20))
	assert.Equal(t, date(2024, 1, 27), got)
}
