package llmsvc

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/pkg/errors"

	"github.com/trezcool/trackademics/core"
	"github.com/trezcool/trackademics/core/assistant"
)

var errEmptyResponse = errors.New("the assistant returned an empty response")

type anthropicProvider struct {
	client      anthropic.Client
	model       string
	maxTokens   int64
	temperature float64
}

var _ assistant.Provider = (*anthropicProvider)(nil)

func NewAnthropicProvider(conf *core.Config) assistant.Provider {
	opts := []option.RequestOption{
		option.WithAPIKey(conf.Assistant.APIKey),
		option.WithMaxRetries(0),
	}
	if conf.Assistant.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(conf.Assistant.BaseURL))
	}
	if conf.Assistant.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(conf.Assistant.Timeout))
	}
	return &anthropicProvider{
		client:      anthropic.NewClient(opts...),
		model:       conf.Assistant.Model,
		maxTokens:   conf.Assistant.MaxTokens,
		temperature: conf.Assistant.Temperature,
	}
}

// Ask sends `background` as the system prompt and `question` as the user message.
// Provider errors are returned unwrapped so that their message reaches the user verbatim.
func (p *anthropicProvider) Ask(ctx context.Context, background, question string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(p.model),
		MaxTokens:   p.maxTokens,
		Temperature: anthropic.Float(p.temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(question)),
		},
	}
	if background != "" {
		params.System = []anthropic.TextBlockParam{{Text: background}}
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}

	var answer strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			answer.WriteString(block.Text)
		}
	}
	if answer.Len() == 0 {
		return "", errEmptyResponse
	}
	return answer.String(), nil
}
