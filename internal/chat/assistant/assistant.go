package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/acai-travel/global-time-agent/internal/chat/model"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

const (
	AgentName        = "global_time_agent"
	AgentDescription = "Tells the current time anywhere in the world."
	Instruction      = "You are a helpful assistant that provides the local time for any country or city using the get_current_time tool."

	DefaultModel = openai.ChatModelGPT4_1

	maxToolRounds = 15
)

type Tool interface {
	Name() string
	Description() string
	Parameters() openai.FunctionParameters
	Execute(ctx context.Context, arguments string) (string, error)
}

// Config selects the model endpoint. Empty fields fall back to openai-go
// defaults (OPENAI_API_KEY, api.openai.com).
type Config struct {
	Model   string
	BaseURL string
	APIKey  string
}

type Assistant struct {
	cli   openai.Client
	model openai.ChatModel
	tools map[string]Tool
}

func New(cfg Config, tools ...Tool) *Assistant {
	var opts []option.RequestOption
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}

	chatModel := openai.ChatModel(cfg.Model)
	if cfg.Model == "" {
		chatModel = DefaultModel
	}

	a := &Assistant{
		cli:   openai.NewClient(opts...),
		model: chatModel,
		tools: map[string]Tool{},
	}
	for _, t := range tools {
		a.registerTool(t)
	}

	return a
}

func (a *Assistant) registerTool(tool Tool) {
	a.tools[tool.Name()] = tool
}

// Model returns the chat model the assistant talks to.
func (a *Assistant) Model() string {
	return string(a.model)
}

// ToolNames lists the registered tools in name order.
func (a *Assistant) ToolNames() []string {
	names := make([]string, 0, len(a.tools))
	for name := range a.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (a *Assistant) toolDefinitions() []openai.ChatCompletionToolUnionParam {
	defs := make([]openai.ChatCompletionToolUnionParam, 0, len(a.tools))
	for _, name := range a.ToolNames() {
		tool := a.tools[name]
		defs = append(defs, openai.ChatCompletionFunctionTool(
			openai.FunctionDefinitionParam{
				Name:        tool.Name(),
				Description: openai.String(tool.Description()),
				Parameters:  tool.Parameters(),
			},
		))
	}
	return defs
}

func (a *Assistant) executeTool(ctx context.Context, name, args string) (string, error) {
	tool, ok := a.tools[name]
	if !ok {
		return "", fmt.Errorf("unknown tool: %s", name)
	}
	return tool.Execute(ctx, args)
}

func (a *Assistant) Reply(ctx context.Context, conv *model.Conversation) (string, error) {
	if len(conv.Messages) == 0 {
		return "", errors.New("conversation has no messages")
	}

	slog.InfoContext(ctx, "Generating reply for conversation", "conversation_id", conv.ID)

	msgs := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(Instruction),
	}

	for _, m := range conv.Messages {
		switch m.Role {
		case model.RoleUser:
			msgs = append(msgs, openai.UserMessage(m.Content))
		case model.RoleAssistant:
			msgs = append(msgs, openai.AssistantMessage(m.Content))
		}
	}

	for i := 0; i < maxToolRounds; i++ {
		resp, err := a.cli.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model:    a.model,
			Messages: msgs,
			Tools:    a.toolDefinitions(),
		})

		if err != nil {
			return "", err
		}

		if len(resp.Choices) == 0 {
			return "", errors.New("no choices returned by model")
		}

		message := resp.Choices[0].Message

		if len(message.ToolCalls) > 0 {
			msgs = append(msgs, message.ToParam())

			for _, call := range message.ToolCalls {
				slog.InfoContext(ctx, "Tool call received",
					"name", call.Function.Name,
					"args", call.Function.Arguments)

				result, err := a.executeTool(ctx, call.Function.Name, call.Function.Arguments)
				if err != nil {
					slog.ErrorContext(ctx, "Tool execution failed",
						"tool", call.Function.Name,
						"error", err)
					result = fmt.Sprintf("Tool execution failed: %v", err)
				}

				msgs = append(msgs, openai.ToolMessage(result, call.ID))
			}
			continue
		}

		return message.Content, nil
	}

	return "", errors.New("too many tool calls, unable to generate reply")
}
