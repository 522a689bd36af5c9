// Package advisor produces a natural-language opinion on an analyzed
// structure. It consumes already-computed metrics only; nothing here
// feeds back into the engine's math.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"b3-analyzer/internal/models"
	"b3-analyzer/pkg/utils"
)

// LLMClient abstracts the language-model collaborator.
type LLMClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

const systemPrompt = `Você é um analista de opções da B3. Avalie a estrutura descrita usando
apenas os números fornecidos. Seja direto: riscos, cenários de resultado e
comparação com o CDI. Não recalcule nada e não recomende compra ou venda.`

// Review is the input handed to the advisor: the structure, its computed
// metrics and the fixed-income comparison figure.
type Review struct {
	Legs          []models.Leg
	Metrics       models.AnalysisMetrics
	BenchmarkRate float64
	BenchmarkGain float64
	BusinessDays  int
}

// Advisor builds prompts from computed numbers and relays the model's
// opinion text.
type Advisor struct {
	client LLMClient
}

// New creates an advisor over the given LLM client.
func New(client LLMClient) *Advisor {
	return &Advisor{client: client}
}

// Opinion returns the model's narrative assessment of the structure.
func (a *Advisor) Opinion(ctx context.Context, review Review) (string, error) {
	if a.client == nil {
		return "", fmt.Errorf("no LLM client configured")
	}
	return a.client.CompleteWithSystem(ctx, systemPrompt, BuildPrompt(review))
}

// BuildPrompt renders the review as the text context sent to the model.
func BuildPrompt(review Review) string {
	var b strings.Builder

	b.WriteString("Estrutura:\n")
	for _, leg := range review.Legs {
		b.WriteString(fmt.Sprintf("- %s %s %s strike %s premio %s qtd %d\n",
			sideLabel(leg.Side), kindLabel(leg.Kind), leg.Ticker,
			utils.FormatBRL(leg.Strike), utils.FormatBRL(leg.Premium), leg.Quantity))
	}

	m := review.Metrics
	b.WriteString("\nMétricas:\n")
	if m.StrategyLabel != "" {
		b.WriteString(fmt.Sprintf("- Estratégia: %s\n", m.StrategyLabel))
		b.WriteString(fmt.Sprintf("- Custo de montagem: %s\n", utils.FormatBRL(m.MontageTotal)))
		b.WriteString(fmt.Sprintf("- Breakeven: %s\n", utils.FormatBRL(m.Breakeven)))
		b.WriteString(fmt.Sprintf("- Operação sem risco: %v\n", m.IsRiskFree))
	}
	if m.MaxGainUnbounded {
		b.WriteString("- Ganho máximo: ilimitado\n")
	} else {
		b.WriteString(fmt.Sprintf("- Ganho máximo: %s\n", utils.FormatBRL(m.MaxGain)))
	}
	if m.MaxLossUnbounded {
		b.WriteString("- Perda máxima: ilimitada\n")
	} else {
		b.WriteString(fmt.Sprintf("- Perda máxima: %s\n", utils.FormatBRL(m.MaxLoss)))
	}
	b.WriteString(fmt.Sprintf("- Custo líquido: %s\n", utils.FormatBRL(m.NetCost)))

	if review.BenchmarkRate > 0 {
		b.WriteString(fmt.Sprintf("\nComparativo CDI: %.2f%% a.a. renderia %s em %d dias úteis.\n",
			review.BenchmarkRate, utils.FormatBRL(review.BenchmarkGain), review.BusinessDays))
	}
	return b.String()
}

func sideLabel(s models.Side) string {
	if s == models.SideSell {
		return "venda"
	}
	return "compra"
}

func kindLabel(k models.Kind) string {
	switch k {
	case models.KindCall:
		return "call"
	case models.KindPut:
		return "put"
	default:
		return "ação"
	}
}
