package extract

import (
	"encoding/json"
	"testing"

	"b3-analyzer/internal/models"
)

func TestNormalizeLegValid(t *testing.T) {
	raw := RawLeg{
		Side:     "venda",
		Kind:     "call",
		Ticker:   "petrc405",
		Strike:   "39,65",
		Premium:  "R$ 0,80",
		Quantity: "100",
	}

	leg, ok := NormalizeLeg(raw)
	if !ok {
		t.Fatal("expected a valid leg")
	}
	want := models.Leg{
		Side:     models.SideSell,
		Kind:     models.KindCall,
		Ticker:   "PETRC405",
		Strike:   39.65,
		Premium:  0.80,
		Quantity: 100,
	}
	if leg != want {
		t.Errorf("leg = %+v, want %+v", leg, want)
	}
}

func TestNormalizeLegStock(t *testing.T) {
	raw := RawLeg{
		Side:     "compra",
		Kind:     "ação",
		Ticker:   "PETR4",
		Strike:   "39,61",
		Premium:  "1,00", // extractor noise: stock legs carry no premium
		Quantity: "100",
	}

	leg, ok := NormalizeLeg(raw)
	if !ok {
		t.Fatal("expected a valid stock leg")
	}
	if leg.Kind != models.KindStock || leg.Premium != 0 {
		t.Errorf("stock leg = %+v, want premium forced to 0", leg)
	}
}

func TestNormalizeLegKindInference(t *testing.T) {
	tests := []struct {
		ticker string
		want   models.Kind
	}{
		{"PETRC405", models.KindCall},
		{"PETRO28", models.KindPut},
		{"PETR4", models.KindStock},
	}
	for _, tt := range tests {
		raw := RawLeg{Side: "compra", Ticker: tt.ticker, Strike: "30,00", Premium: "0,50", Quantity: "100"}
		leg, ok := NormalizeLeg(raw)
		if !ok {
			t.Fatalf("ticker %s: expected inference to succeed", tt.ticker)
		}
		if leg.Kind != tt.want {
			t.Errorf("ticker %s: kind = %v, want %v", tt.ticker, leg.Kind, tt.want)
		}
	}
}

func TestNormalizeLegRejections(t *testing.T) {
	valid := RawLeg{
		Side:     "compra",
		Kind:     "call",
		Ticker:   "PETRC405",
		Strike:   "39,65",
		Premium:  "0,80",
		Quantity: "100",
	}

	tests := []struct {
		name   string
		mutate func(*RawLeg)
	}{
		{"unknown side token", func(r *RawLeg) { r.Side = "talvez" }},
		{"empty side", func(r *RawLeg) { r.Side = "" }},
		{"unknown kind token", func(r *RawLeg) { r.Kind = "futuro" }},
		{"malformed ticker", func(r *RawLeg) { r.Ticker = "PETROBRAS" }},
		{"option ticker on stock kind", func(r *RawLeg) { r.Kind = "ação" }},
		{"zero quantity", func(r *RawLeg) { r.Quantity = "0" }},
		{"malformed quantity", func(r *RawLeg) { r.Quantity = "cem" }},
		{"malformed strike normalizes to zero", func(r *RawLeg) { r.Strike = "abc" }},
		{"negative strike", func(r *RawLeg) { r.Strike = "-5,00" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := valid
			tt.mutate(&raw)
			if _, ok := NormalizeLeg(raw); ok {
				t.Errorf("expected %+v to be dropped", raw)
			}
		})
	}
}

func TestNormalizeDropsInvalidRowsOnly(t *testing.T) {
	raws := []RawLeg{
		{Side: "venda", Kind: "call", Ticker: "PETRC405", Strike: "39,65", Premium: "0,80", Quantity: "100"},
		{Side: "???", Kind: "call", Ticker: "PETRC405", Strike: "39,65", Premium: "0,80", Quantity: "100"},
		{Side: "compra", Kind: "ação", Ticker: "PETR4", Strike: "39,61", Premium: "0", Quantity: "100"},
	}

	legs := Normalize(raws)
	if len(legs) != 2 {
		t.Fatalf("expected 2 surviving legs, got %d", len(legs))
	}
}

func TestRawLegUnmarshalToleratesNumbers(t *testing.T) {
	payload := `[{"side":"venda","kind":"call","ticker":"PETRC405","strike":39.65,"premium":0.8,"quantity":100}]`

	var raws []RawLeg
	if err := json.Unmarshal([]byte(payload), &raws); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(raws) != 1 {
		t.Fatalf("expected 1 row, got %d", len(raws))
	}

	leg, ok := NormalizeLeg(raws[0])
	if !ok {
		t.Fatal("expected numeric fields to normalize")
	}
	if leg.Strike != 39.65 || leg.Premium != 0.8 || leg.Quantity != 100 {
		t.Errorf("leg = %+v", leg)
	}
}

func TestParseRawLegsCodeFence(t *testing.T) {
	content := "```json\n[{\"side\":\"compra\",\"kind\":\"put\",\"ticker\":\"PETRO28\",\"strike\":\"28,00\",\"premium\":\"0,10\",\"quantity\":\"100\"}]\n```"

	raws, err := parseRawLegs(content)
	if err != nil {
		t.Fatalf("parseRawLegs failed: %v", err)
	}
	if len(raws) != 1 || raws[0].Ticker != "PETRO28" {
		t.Errorf("raws = %+v", raws)
	}
}

func TestParseRawLegsMalformed(t *testing.T) {
	if _, err := parseRawLegs("nenhuma posição encontrada"); err == nil {
		t.Error("expected an error for non-JSON content")
	}
}
