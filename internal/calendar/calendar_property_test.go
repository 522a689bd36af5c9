package calendar

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: the resolved expiry is always a Friday or earlier in the same
// week as the nominal third Friday, never shifted forward, and always a
// business day.
func TestThirdFridayProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("back-shifted within a week onto a business day", prop.ForAll(
		func(year, month int) bool {
			m := time.Month(month)
			resolved := ThirdFriday(year, m)

			nominal := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
			for nominal.Weekday() != time.Friday {
				nominal = nominal.AddDate(0, 0, 1)
			}
			nominal = nominal.AddDate(0, 0, 14)

			shift := int(nominal.Sub(resolved).Hours() / 24)
			if shift < 0 || shift >= 7 {
				return false
			}
			return !isWeekend(resolved) && !BankHolidays(year)[resolved]
		},
		gen.IntRange(1900, 2200),
		gen.IntRange(1, 12),
	))

	properties.Property("business days between a date and itself is zero", prop.ForAll(
		func(daysOffset int) bool {
			d := date(2024, time.January, 1).AddDate(0, 0, daysOffset)
			return BusinessDaysBetween(d, d) == 0
		},
		gen.IntRange(0, 3650),
	))

	properties.Property("reversed ranges count zero", prop.ForAll(
		func(start, span int) bool {
			from := date(2024, time.January, 1).AddDate(0, 0, start)
			to := from.AddDate(0, 0, -span)
			return BusinessDaysBetween(from, to) == 0
		},
		gen.IntRange(0, 3650),
		gen.IntRange(0, 365),
	))

	properties.TestingRun(t)
}
