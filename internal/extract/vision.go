package extract

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"b3-analyzer/pkg/utils"
)

// visionPrompt instructs the model to return candidate legs as a JSON
// array matching the RawLeg contract. The model supplies text only; all
// validation happens in Normalize.
const visionPrompt = `Você receberá a imagem de uma tela de corretora com uma ou mais posições
de opções e ações da B3. Extraia cada linha como um objeto JSON com os
campos: side (compra/venda), kind (call/put/ação, se visível), ticker,
strike, premium e quantity. Responda apenas com um array JSON, sem texto
adicional.`

// VisionExtractor extracts candidate legs from brokerage screenshots via
// the OpenAI vision API.
type VisionExtractor struct {
	client *openai.Client
	model  string
	retry  utils.RetryConfig
}

// NewVisionExtractor creates a vision extractor for the given model.
func NewVisionExtractor(apiKey, model string) *VisionExtractor {
	return &VisionExtractor{
		client: openai.NewClient(apiKey),
		model:  model,
		retry:  utils.DefaultRetryConfig(),
	}
}

// ExtractLegs sends a screenshot to the vision model and returns the raw
// candidate rows it reports. The result is untrusted extractor output;
// callers pass it through Normalize before the engine sees it.
func (e *VisionExtractor) ExtractLegs(ctx context.Context, image []byte, mimeType string) ([]RawLeg, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	content, err := utils.RetryWithResult(ctx, e.retry, func() (string, error) {
		resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: e.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role: openai.ChatMessageRoleUser,
					MultiContent: []openai.ChatMessagePart{
						{Type: openai.ChatMessagePartTypeText, Text: visionPrompt},
						{
							Type:     openai.ChatMessagePartTypeImageURL,
							ImageURL: &openai.ChatMessageImageURL{URL: dataURL},
						},
					},
				},
			},
		})
		if err != nil {
			return "", fmt.Errorf("vision completion failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("no response from vision model")
		}
		return resp.Choices[0].Message.Content, nil
	})
	if err != nil {
		return nil, err
	}

	return parseRawLegs(content)
}

// parseRawLegs decodes the model's JSON array, tolerating a markdown
// code fence around it.
func parseRawLegs(content string) ([]RawLeg, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var raws []RawLeg
	if err := json.Unmarshal([]byte(content), &raws); err != nil {
		return nil, fmt.Errorf("malformed extraction payload: %w", err)
	}
	return raws, nil
}
