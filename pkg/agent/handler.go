package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kelvinlabs/dyntrade/pkg/types"
)

// extractionPrompt asks the model for exactly one number so the reply can be
// parsed without a schema round-trip.
const extractionPrompt = `You extract trade sizing from user requests.
Reply with ONLY the trade amount as a decimal number in native currency units.
If the request names no amount, reply with the single word "default".`

// TaskHandler turns free-form agent tasks into invocations of the trading
// tool. Structured tasks ({"amount": 2.5}) are handled locally; natural
// language falls back to an LLM extraction pass when a client is configured,
// and to the tool's default amount otherwise.
type TaskHandler struct {
	tool  types.Tool
	llm   *openai.Client
	model string
	log   *zap.Logger
}

func NewTaskHandler(p types.Plugin, openaiKey, model string, log *zap.Logger) (*TaskHandler, error) {
	tools := p.Tools()
	if len(tools) == 0 {
		return nil, fmt.Errorf("plugin %s exposes no tools", p.Name())
	}
	h := &TaskHandler{tool: tools[0], model: model, log: log}
	if openaiKey != "" {
		h.llm = openai.NewClient(openaiKey)
		if h.model == "" {
			h.model = openai.GPT4oMini
		}
	}
	return h, nil
}

// ProcessTask processes a single task and returns the result.
func (h *TaskHandler) ProcessTask(ctx context.Context, task string) (string, error) {
	args := map[string]interface{}{}

	if amount, ok := parseStructured(task); ok {
		args["amount"] = amount
	} else if h.llm != nil {
		if amount, ok := h.extractAmount(ctx, task); ok {
			args["amount"] = amount
		}
	}

	return h.tool.Handler(ctx, args)
}

// parseStructured accepts tasks that are already JSON of the form
// {"amount": 2.5}.
func parseStructured(task string) (float64, bool) {
	trimmed := strings.TrimSpace(task)
	if !strings.HasPrefix(trimmed, "{") {
		return 0, false
	}
	var payload struct {
		Amount float64 `json:"amount"`
	}
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return 0, false
	}
	if payload.Amount <= 0 {
		return 0, false
	}
	return payload.Amount, true
}

func (h *TaskHandler) extractAmount(ctx context.Context, task string) (float64, bool) {
	resp, err := h.llm.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: h.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: extractionPrompt},
			{Role: openai.ChatMessageRoleUser, Content: task},
		},
		MaxTokens: 16,
	})
	if err != nil {
		h.log.Warn("amount extraction failed, using default", zap.Error(err))
		return 0, false
	}
	if len(resp.Choices) == 0 {
		return 0, false
	}
	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if strings.EqualFold(reply, "default") {
		return 0, false
	}
	amount, err := strconv.ParseFloat(reply, 64)
	if err != nil || amount <= 0 {
		h.log.Warn("unparseable extraction reply, using default", zap.String("reply", reply))
		return 0, false
	}
	return amount, true
}
