package tutor

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAILLMClient implements LLMClient against any OpenAI-compatible
// chat-completion endpoint (OpenAI, Groq, ...)
type OpenAILLMClient struct {
	client *openai.Client
	model  string
}

// NewOpenAILLMClient creates a client for apiKey; an empty baseURL keeps the OpenAI default
func NewOpenAILLMClient(apiKey, baseURL, model string) *OpenAILLMClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAILLMClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// GenerateContent generates a chat completion
func (c *OpenAILLMClient) GenerateContent(ctx context.Context, system, user string, temperature float32, maxOutputTokens int32) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: user,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   int(maxOutputTokens),
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
