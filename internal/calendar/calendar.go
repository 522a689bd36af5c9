// Package calendar computes B3 option expiry dates and business-day
// distances, honoring the exchange holiday calendar.
package calendar

import "time"

// monthLabels are the pt-BR three-letter month abbreviations used on
// expiry selectors.
var monthLabels = [12]string{
	"jan", "fev", "mar", "abr", "mai", "jun",
	"jul", "ago", "set", "out", "nov", "dez",
}

// Expiry is one monthly expiry of a given year.
type Expiry struct {
	Label string    `json:"label"`
	Date  time.Time `json:"date"`
	Month int       `json:"month"` // 1..12
}

// easter returns Easter Sunday for the given Gregorian year, using the
// anonymous Gregorian computus (Gauss/Meeus variant). Valid for any
// Gregorian year; computed from scratch on every call.
func easter(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// BankHolidays returns the B3 bank holidays of a year: nine fixed dates
// plus the four Easter-relative ones (Carnival Monday and Tuesday, Good
// Friday, Corpus Christi).
func BankHolidays(year int) map[time.Time]bool {
	fixed := []struct {
		month time.Month
		day   int
	}{
		{time.January, 1},    // Confraternização Universal
		{time.April, 21},     // Tiradentes
		{time.May, 1},        // Dia do Trabalho
		{time.September, 7},  // Independência
		{time.October, 12},   // Nossa Senhora Aparecida
		{time.November, 2},   // Finados
		{time.November, 15},  // Proclamação da República
		{time.November, 20},  // Consciência Negra
		{time.December, 25},  // Natal
	}

	holidays := make(map[time.Time]bool, len(fixed)+4)
	for _, h := range fixed {
		holidays[time.Date(year, h.month, h.day, 0, 0, 0, 0, time.UTC)] = true
	}

	e := easter(year)
	holidays[e.AddDate(0, 0, -48)] = true // Carnival Monday
	holidays[e.AddDate(0, 0, -47)] = true // Carnival Tuesday
	holidays[e.AddDate(0, 0, -2)] = true  // Good Friday
	holidays[e.AddDate(0, 0, 60)] = true  // Corpus Christi
	return holidays
}

// IsBankHoliday reports whether the date falls on a B3 holiday.
func IsBankHoliday(date time.Time) bool {
	return BankHolidays(date.Year())[dateOnly(date)]
}

// isWeekend reports whether the date falls on Saturday or Sunday.
func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// ThirdFriday returns the option expiry date for a month: the third
// Friday, shifted backward one day at a time while it lands on a weekend
// or bank holiday. The exchange convention shifts backward only, never
// forward.
func ThirdFriday(year int, month time.Month) time.Time {
	date := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for date.Weekday() != time.Friday {
		date = date.AddDate(0, 0, 1)
	}
	date = date.AddDate(0, 0, 14)

	holidays := BankHolidays(year)
	for isWeekend(date) || holidays[date] {
		date = date.AddDate(0, 0, -1)
	}
	return date
}

// ExpiryOptions returns the twelve monthly expiries of a year, each with
// its localized month label and resolved date.
func ExpiryOptions(year int) []Expiry {
	expiries := make([]Expiry, 0, 12)
	for m := 1; m <= 12; m++ {
		expiries = append(expiries, Expiry{
			Label: monthLabels[m-1],
			Date:  ThirdFriday(year, time.Month(m)),
			Month: m,
		})
	}
	return expiries
}

// BusinessDaysBetween counts weekdays that are not bank holidays between
// the two dates, exclusive of from and inclusive of to. Returns 0 when
// to is not after from. Comparison is at day granularity.
func BusinessDaysBetween(from, to time.Time) int {
	from = dateOnly(from)
	to = dateOnly(to)
	if !to.After(from) {
		return 0
	}

	// Holiday sets are fetched lazily per year so ranges spanning year
	// boundaries stay correct.
	holidaysByYear := make(map[int]map[time.Time]bool)
	count := 0
	for d := from.AddDate(0, 0, 1); !d.After(to); d = d.AddDate(0, 0, 1) {
		if isWeekend(d) {
			continue
		}
		holidays, ok := holidaysByYear[d.Year()]
		if !ok {
			holidays = BankHolidays(d.Year())
			holidaysByYear[d.Year()] = holidays
		}
		if holidays[d] {
			continue
		}
		count++
	}
	return count
}

// dateOnly truncates a time to day granularity in UTC so time-of-day
// never affects date comparisons.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
