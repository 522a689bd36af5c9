package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"b3-analyzer/internal/models"
)

func TestParseLegSpec(t *testing.T) {
	leg, err := parseLegSpec("sell:call:petrc405:39.65:0.80:100")
	if err != nil {
		t.Fatalf("parseLegSpec failed: %v", err)
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

func TestParseLegSpecPortugueseTokens(t *testing.T) {
	leg, err := parseLegSpec("compra:acao:PETR4:39.61:0:100")
	if err != nil {
		t.Fatalf("parseLegSpec failed: %v", err)
	}
	if leg.Side != models.SideBuy || leg.Kind != models.KindStock {
		t.Errorf("leg = %+v", leg)
	}
}

func TestParseLegSpecErrors(t *testing.T) {
	tests := []string{
		"buy:call:PETRC30:30:1.50",       // missing field
		"hold:call:PETRC30:30:1.50:100",  // bad side
		"buy:future:PETRC30:30:1.50:100", // bad kind
		"buy:call:PETRC30:abc:1.50:100",  // bad strike
		"buy:call:PETRC30:30:xyz:100",    // bad premium
		"buy:call:PETRC30:30:1.50:0",     // zero quantity
		"buy:call:PETRC30:30:1.50:-10",   // negative quantity
		"buy:call:PETRC30:0:1.50:100",    // zero strike on an option
		"buy:call:PETRC30:30:-1:100",     // negative premium
	}
	for _, spec := range tests {
		if _, err := parseLegSpec(spec); err == nil {
			t.Errorf("expected error for %q", spec)
		}
	}
}

func TestCollectLegsFromFile(t *testing.T) {
	legs := []models.Leg{
		{Side: models.SideBuy, Kind: models.KindCall, Ticker: "PETRC30", Strike: 30, Premium: 1.50, Quantity: 100},
	}
	data, err := json.Marshal(legs)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "legs.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := collectLegs([]string{"sell:call:PETRC32:32:0.50:100"}, path)
	if err != nil {
		t.Fatalf("collectLegs failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(got))
	}
	if got[0].Ticker != "PETRC32" || got[1].Ticker != "PETRC30" {
		t.Errorf("legs = %+v", got)
	}
}

func TestCollectLegsMissingFile(t *testing.T) {
	if _, err := collectLegs(nil, "/does/not/exist.json"); err == nil {
		t.Error("expected an error for a missing file")
	}
}
