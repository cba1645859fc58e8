package agent

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go/v3"

	"github.com/rog05/voice-agent/internal/clinic"
	"github.com/rog05/voice-agent/internal/intent"
	"github.com/rog05/voice-agent/internal/lang"
)

// OpenAIGenerator produces replies through the chat completions API.
type OpenAIGenerator struct {
	client openai.Client
	model  openai.ChatModel
	system string
}

func NewOpenAIGenerator(client openai.Client, model string, cfg *clinic.Config) *OpenAIGenerator {
	system := systemPrompt
	if cfg != nil {
		system += cfg.PromptContext()
	}
	return &OpenAIGenerator{
		client: client,
		model:  openai.ChatModel(model),
		system: system,
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, transcript string, language lang.Tag, it intent.Intent) (string, error) {
	task := fmt.Sprintf(`User said (in %s): %q

Respond appropriately in %s. Keep your response short, polite, and helpful.
Remember: you can ONLY help with appointments and clinic information. Nothing else.`,
		language, transcript, language)

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(g.system),
			openai.UserMessage(task),
		},
		Model: g.model,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty message content")
	}
	return content, nil
}
