package calendar

import (
	"strings"
	"time"

	"b3-analyzer/internal/models"
)

// B3 option series letters: A-L are the call months, M-X the put months,
// both January through December.
const (
	callLetters = "ABCDEFGHIJKL"
	putLetters  = "MNOPQRSTUVWX"
)

// expiryLetterIndex is the position of the series letter within a B3
// option ticker (e.g. the 'C' in PETRC405).
const expiryLetterIndex = 4

// OptionKindFromLetter maps a series letter to the option kind. Letters
// outside A-L and M-X yield ok=false.
func OptionKindFromLetter(letter rune) (models.Kind, bool) {
	switch {
	case strings.ContainsRune(callLetters, letter):
		return models.KindCall, true
	case strings.ContainsRune(putLetters, letter):
		return models.KindPut, true
	default:
		return "", false
	}
}

// ExpiryMonthFromLetter maps a series letter to its expiry month (1..12)
// within its side's alphabet.
func ExpiryMonthFromLetter(letter rune) (time.Month, bool) {
	if i := strings.IndexRune(callLetters, letter); i >= 0 {
		return time.Month(i + 1), true
	}
	if i := strings.IndexRune(putLetters, letter); i >= 0 {
		return time.Month(i + 1), true
	}
	return 0, false
}

// ExpiryFromTicker resolves the expiry date encoded in an option ticker.
// The series letter at index 4 selects the month; the third Friday is
// resolved for the current year, or for next year if that date has
// already passed. Returns ok=false for short tickers or unknown letters.
func ExpiryFromTicker(ticker string) (time.Time, bool) {
	return expiryFromTickerAt(ticker, time.Now())
}

func expiryFromTickerAt(ticker string, now time.Time) (time.Time, bool) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if len(ticker) <= expiryLetterIndex {
		return time.Time{}, false
	}

	month, ok := ExpiryMonthFromLetter(rune(ticker[expiryLetterIndex]))
	if !ok {
		return time.Time{}, false
	}

	expiry := ThirdFriday(now.Year(), month)
	if expiry.Before(dateOnly(now)) {
		expiry = ThirdFriday(now.Year()+1, month)
	}
	return expiry, true
}

// UnderlyingRoot returns the four-character underlying root of a ticker,
// uppercased. Shorter input is returned whole; empty input yields "".
func UnderlyingRoot(ticker string) string {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if len(ticker) > 4 {
		return ticker[:4]
	}
	return ticker
}
