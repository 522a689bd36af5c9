// Package models defines the value types shared by the analytics engine.
package models

// Side represents the direction of a position leg.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Kind represents the instrument type of a leg.
type Kind string

const (
	KindCall  Kind = "CALL"
	KindPut   Kind = "PUT"
	KindStock Kind = "STOCK"
)

// Leg is one component of a multi-leg options structure. For stock legs
// Strike holds the entry price of the underlying and Premium is zero.
// Legs are immutable value objects; a structure is an ordered list of them.
type Leg struct {
	Side     Side    `json:"side"`
	Kind     Kind    `json:"kind"`
	Ticker   string  `json:"ticker"`
	Strike   float64 `json:"strike"`
	Premium  float64 `json:"premium"`
	Quantity int     `json:"quantity"`
}

// IsOption reports whether the leg is a call or a put.
func (l Leg) IsOption() bool {
	return l.Kind == KindCall || l.Kind == KindPut
}

// Direction returns +1 for a bought leg and -1 for a sold leg.
func (l Leg) Direction() float64 {
	if l.Side == SideSell {
		return -1
	}
	return 1
}
