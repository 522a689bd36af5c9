package advisor

import (
	"context"
	"strings"
	"testing"

	"b3-analyzer/internal/models"
)

type mockLLM struct {
	lastSystem string
	lastUser   string
	response   string
}

func (m *mockLLM) Complete(ctx context.Context, prompt string) (string, error) {
	m.lastUser = prompt
	return m.response, nil
}

func (m *mockLLM) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.lastSystem = systemPrompt
	m.lastUser = userPrompt
	return m.response, nil
}

func sampleReview() Review {
	return Review{
		Legs: []models.Leg{
			{Side: models.SideBuy, Kind: models.KindStock, Ticker: "PETR4", Strike: 39.61, Quantity: 100},
			{Side: models.SideSell, Kind: models.KindCall, Ticker: "PETRC405", Strike: 39.65, Premium: 0.80, Quantity: 100},
		},
		Metrics: models.AnalysisMetrics{
			MaxGain:       84.00,
			MaxLoss:       -3881.00,
			NetCost:       80.00,
			StrategyType:  models.StrategyCoveredCall,
			StrategyLabel: "Venda Coberta",
			MontageTotal:  3881.00,
			Breakeven:     38.81,
		},
		BenchmarkRate: 10.65,
		BenchmarkGain: 42.35,
		BusinessDays:  21,
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(sampleReview())

	for _, want := range []string{
		"PETR4", "PETRC405",
		"Venda Coberta",
		"R$ 3.881,00", // montage
		"R$ 38,81",    // breakeven
		"R$ 84,00",    // max gain
		"10.65",       // CDI rate
		"21 dias úteis",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildPromptUnboundedSides(t *testing.T) {
	review := Review{
		Legs: []models.Leg{
			{Side: models.SideBuy, Kind: models.KindCall, Ticker: "PETRC30", Strike: 30, Premium: 1.50, Quantity: 100},
		},
		Metrics: models.AnalysisMetrics{MaxGainUnbounded: true, MaxLoss: -150, NetCost: -150},
	}

	prompt := BuildPrompt(review)
	if !strings.Contains(prompt, "ilimitado") {
		t.Errorf("prompt missing unbounded gain marker:\n%s", prompt)
	}
}

func TestOpinion(t *testing.T) {
	mock := &mockLLM{response: "Estrutura defensiva com retorno limitado."}
	a := New(mock)

	opinion, err := a.Opinion(context.Background(), sampleReview())
	if err != nil {
		t.Fatalf("Opinion failed: %v", err)
	}
	if opinion != mock.response {
		t.Errorf("opinion = %q", opinion)
	}
	if mock.lastSystem == "" {
		t.Error("expected a system prompt")
	}
	if !strings.Contains(mock.lastUser, "PETR4") {
		t.Error("user prompt missing the structure")
	}
}

func TestOpinionWithoutClient(t *testing.T) {
	a := New(nil)
	if _, err := a.Opinion(context.Background(), sampleReview()); err == nil {
		t.Error("expected an error without a client")
	}
}
