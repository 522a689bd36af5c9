// Package extract normalizes weakly-typed leg candidates coming from the
// image-extraction collaborator into valid engine legs. A candidate that
// fails any validation step is dropped, never defaulted.
package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"b3-analyzer/internal/calendar"
	"b3-analyzer/internal/models"
	"b3-analyzer/pkg/utils"
)

// RawLeg is one candidate row as extracted from a brokerage screenshot.
// Every field is free text; nothing is trusted until normalized.
type RawLeg struct {
	Side     string `json:"side"`
	Kind     string `json:"kind"`
	Ticker   string `json:"ticker"`
	Strike   string `json:"strike"`
	Premium  string `json:"premium"`
	Quantity string `json:"quantity"`
}

// UnmarshalJSON accepts numeric or string field values, since the vision
// model emits either. Everything lands as text for Normalize to judge.
func (r *RawLeg) UnmarshalJSON(data []byte) error {
	var loose map[string]any
	if err := json.Unmarshal(data, &loose); err != nil {
		return err
	}
	r.Side = looseString(loose["side"])
	r.Kind = looseString(loose["kind"])
	r.Ticker = looseString(loose["ticker"])
	r.Strike = looseString(loose["strike"])
	r.Premium = looseString(loose["premium"])
	r.Quantity = looseString(loose["quantity"])
	return nil
}

func looseString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// sideTokens maps accepted side literals to the canonical enum. Unmatched
// tokens reject the row; there is no default side.
var sideTokens = map[string]models.Side{
	"buy":      models.SideBuy,
	"compra":   models.SideBuy,
	"comprada": models.SideBuy,
	"long":     models.SideBuy,
	"c":        models.SideBuy,
	"sell":     models.SideSell,
	"venda":    models.SideSell,
	"vendida":  models.SideSell,
	"short":    models.SideSell,
	"v":        models.SideSell,
}

// kindTokens maps accepted instrument literals to the canonical enum.
var kindTokens = map[string]models.Kind{
	"call":            models.KindCall,
	"opcao de compra": models.KindCall,
	"put":             models.KindPut,
	"opcao de venda":  models.KindPut,
	"stock":           models.KindStock,
	"acao":            models.KindStock,
	"ativo":           models.KindStock,
	"papel":           models.KindStock,
}

var (
	// B3 stock tickers: 4-letter root plus a type digit (PETR4, VALE3)
	// or the 11 suffix for units.
	stockTickerRe = regexp.MustCompile(`^[A-Z]{4}(3|4|5|6|11)$`)

	// B3 option tickers: 4-letter root, series letter, strike digits
	// (PETRC405).
	optionTickerRe = regexp.MustCompile(`^[A-Z]{4}[A-X][0-9]{1,4}$`)
)

// Normalize converts candidate rows into engine legs, dropping every row
// that fails a validation step. The caller compares input and output
// counts to surface extraction losses.
func Normalize(raws []RawLeg) []models.Leg {
	legs := make([]models.Leg, 0, len(raws))
	for _, raw := range raws {
		if leg, ok := NormalizeLeg(raw); ok {
			legs = append(legs, leg)
		}
	}
	return legs
}

// NormalizeLeg validates and converts a single candidate row. Steps run
// in order: side token, ticker shape, kind token (with expiry-letter
// inference when the token is absent), numeric parsing, invariants.
func NormalizeLeg(raw RawLeg) (models.Leg, bool) {
	side, ok := sideTokens[normalizeToken(raw.Side)]
	if !ok {
		return models.Leg{}, false
	}

	ticker := strings.ToUpper(strings.TrimSpace(raw.Ticker))
	kind, ok := resolveKind(raw.Kind, ticker)
	if !ok {
		return models.Leg{}, false
	}

	switch kind {
	case models.KindStock:
		if !stockTickerRe.MatchString(ticker) {
			return models.Leg{}, false
		}
	default:
		if !optionTickerRe.MatchString(ticker) {
			return models.Leg{}, false
		}
	}

	strike := utils.ParseBRLNumber(raw.Strike)
	premium := utils.ParseBRLNumber(raw.Premium)
	quantity := int(utils.ParseBRLNumber(raw.Quantity))

	if quantity <= 0 {
		return models.Leg{}, false
	}
	if strike <= 0 {
		return models.Leg{}, false
	}
	if premium < 0 {
		return models.Leg{}, false
	}
	if kind == models.KindStock {
		premium = 0
	}

	return models.Leg{
		Side:     side,
		Kind:     kind,
		Ticker:   ticker,
		Strike:   strike,
		Premium:  premium,
		Quantity: quantity,
	}, true
}

// resolveKind maps the kind token, falling back to the ticker's series
// letter when the extractor left the kind blank.
func resolveKind(token, ticker string) (models.Kind, bool) {
	if t := normalizeToken(token); t != "" {
		kind, ok := kindTokens[t]
		return kind, ok
	}
	if len(ticker) >= 5 {
		if kind, ok := calendar.OptionKindFromLetter(rune(ticker[4])); ok {
			return kind, true
		}
	}
	if stockTickerRe.MatchString(ticker) {
		return models.KindStock, true
	}
	return "", false
}

// normalizeToken lowercases a token and strips the accents the vision
// model sometimes preserves ("opção", "ação").
func normalizeToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	replacer := strings.NewReplacer(
		"ç", "c", "ã", "a", "á", "a", "â", "a",
		"é", "e", "ê", "e", "í", "i", "ó", "o", "õ", "o",
	)
	return replacer.Replace(s)
}
