package translator

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/cloudwego/eino-ext/components/model/openai"

	"ghana-translator/internal/types"
)

// defaultLLMModel is used when no model name is configured.
const defaultLLMModel = "gpt-4o-mini"

// LLMClient translates text through an OpenAI-compatible chat model.
// The system prompt pins the language pair and instructs the model to
// leave placeholder tokens untouched; the output is still treated as
// an uncontrolled transform by the restoration step.
type LLMClient struct {
	chatModel *openai.ChatModel
	modelName string
}

// NewLLMClient creates an LLM translation client. An empty API key is
// a CONFIG_ERROR since the client cannot work without one.
func NewLLMClient(ctx context.Context, apiKey, baseURL, model string) (*LLMClient, error) {
	if apiKey == "" {
		return nil, types.NewAppError(types.ErrConfig,
			"LLM engine requires an API key (set GT_LLM_API_KEY or OPENAI_API_KEY)", nil)
	}
	if model == "" {
		model = defaultLLMModel
	}

	chatModelConfig := &openai.ChatModelConfig{
		Model:  model,
		APIKey: apiKey,
	}
	if baseURL != "" {
		chatModelConfig.BaseURL = baseURL
	}

	chatModel, err := openai.NewChatModel(ctx, chatModelConfig)
	if err != nil {
		return nil, types.NewAppError(types.ErrConfig, "failed to create chat model", err)
	}

	return &LLMClient{chatModel: chatModel, modelName: model}, nil
}

// Name returns the client name for logs and results.
func (c *LLMClient) Name() string {
	return "llm"
}

// buildSystemPrompt produces the translation instruction for a
// language pair.
func buildSystemPrompt(srcLang, destLang string) string {
	return fmt.Sprintf(`You are a professional translator. Translate the user's text from %s to %s.

Rules:
1. Tokens of the form <0>, <1>, <2> are placeholders. Keep every placeholder exactly as it appears, in the position where its content belongs.
2. Output only the translated text, with no explanations or quotes.
3. Preserve the line structure of the input.`, srcLang, destLang)
}

// Translate sends text to the chat model and returns the translated
// text.
func (c *LLMClient) Translate(ctx context.Context, text, srcLang, destLang string) (string, error) {
	messages := []*schema.Message{
		schema.SystemMessage(buildSystemPrompt(srcLang, destLang)),
		schema.UserMessage(text),
	}

	response, err := c.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", types.NewAppError(types.ErrService, "chat model request failed", err)
	}

	return strings.TrimSpace(response.Content), nil
}
