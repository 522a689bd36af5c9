package calendar

import (
	"testing"
	"time"

	"b3-analyzer/internal/models"
)

func TestLetterRoundTrip(t *testing.T) {
	for i, letter := range callLetters {
		kind, ok := OptionKindFromLetter(letter)
		if !ok || kind != models.KindCall {
			t.Errorf("OptionKindFromLetter(%c) = %v, %v; want call", letter, kind, ok)
		}
		month, ok := ExpiryMonthFromLetter(letter)
		if !ok || month != time.Month(i+1) {
			t.Errorf("ExpiryMonthFromLetter(%c) = %v, %v; want %d", letter, month, ok, i+1)
		}
	}
	for i, letter := range putLetters {
		kind, ok := OptionKindFromLetter(letter)
		if !ok || kind != models.KindPut {
			t.Errorf("OptionKindFromLetter(%c) = %v, %v; want put", letter, kind, ok)
		}
		month, ok := ExpiryMonthFromLetter(letter)
		if !ok || month != time.Month(i+1) {
			t.Errorf("ExpiryMonthFromLetter(%c) = %v, %v; want %d", letter, month, ok, i+1)
		}
	}
}

func TestLetterRejectsOthers(t *testing.T) {
	for _, letter := range []rune{'Y', 'Z', '1', '4', ' ', 'é'} {
		if _, ok := OptionKindFromLetter(letter); ok {
			t.Errorf("OptionKindFromLetter(%c) unexpectedly matched", letter)
		}
		if _, ok := ExpiryMonthFromLetter(letter); ok {
			t.Errorf("ExpiryMonthFromLetter(%c) unexpectedly matched", letter)
		}
	}
}

func TestExpiryFromTicker(t *testing.T) {
	now := date(2024, time.June, 1)

	tests := []struct {
		name   string
		ticker string
		want   time.Time
		ok     bool
	}{
		// C = March call; March 2024 already passed, resolve for 2025.
		{"passed month rolls to next year", "PETRC405", date(2025, time.March, 21), true},
		// L = December call; still ahead in 2024.
		{"future month stays in current year", "PETRL38", date(2024, time.December, 20), true},
		// M = January put; January 2024 passed.
		{"put letter", "VALEM40", date(2025, time.January, 17), true},
		{"lowercase ticker accepted", "petrl38", date(2024, time.December, 20), true},
		{"too short", "PETR", time.Time{}, false},
		{"digit at series position", "PETR4", time.Time{}, false},
		{"letter outside both alphabets", "PETRZ40", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := expiryFromTickerAt(tt.ticker, now)
			if ok != tt.ok {
				t.Fatalf("expiryFromTickerAt(%q) ok = %v, want %v", tt.ticker, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("expiryFromTickerAt(%q) = %v, want %v",
					tt.ticker, got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
		})
	}
}

func TestExpiryFromTickerOnExpiryDay(t *testing.T) {
	// On the expiry date itself the contract has not passed yet; the
	// current year's date is returned even late in the day.
	now := time.Date(2024, time.December, 20, 17, 0, 0, 0, time.UTC)
	got, ok := expiryFromTickerAt("PETRL38", now)
	if !ok || !got.Equal(date(2024, time.December, 20)) {
		t.Errorf("expected current-year expiry on expiry day, got %v, %v", got, ok)
	}
}

func TestUnderlyingRoot(t *testing.T) {
	tests := []struct {
		ticker string
		want   string
	}{
		{"PETRC405", "PETR"},
		{"petr4", "PETR"},
		{"VALE3", "VALE"},
		{"AB", "AB"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := UnderlyingRoot(tt.ticker); got != tt.want {
			t.Errorf("UnderlyingRoot(%q) = %q, want %q", tt.ticker, got, tt.want)
		}
	}
}
