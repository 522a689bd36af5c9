package advisor

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"b3-analyzer/pkg/utils"
)

// OpenAIClient implements LLMClient over the OpenAI chat API.
type OpenAIClient struct {
	client *openai.Client
	model  string
	retry  utils.RetryConfig
}

// NewOpenAIClient creates an OpenAI-backed LLM client.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
		retry:  utils.DefaultRetryConfig(),
	}
}

// Complete sends a bare prompt and returns the model's response.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	return c.chat(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	})
}

// CompleteWithSystem sends a prompt with a system message.
func (c *OpenAIClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return c.chat(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: userPrompt},
	})
}

func (c *OpenAIClient) chat(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	return utils.RetryWithResult(ctx, c.retry, func() (string, error) {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    c.model,
			Messages: messages,
		})
		if err != nil {
			return "", fmt.Errorf("openai completion failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("no response from openai")
		}
		return resp.Choices[0].Message.Content, nil
	})
}
