package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"

	"listloop-server/internal/ai/parsers"
)

// ErrMalformedOutput means the model answered but the answer could not
// be decoded into a plan. Distinct from transport failures so callers
// can report it separately.
var ErrMalformedOutput = errors.New("model output could not be parsed")

// ErrNoAction means the command model declined to pick any action for
// the prompt.
var ErrNoAction = errors.New("no action resolved for prompt")

// Planner turns natural language into list plans and single list
// actions using an LLM.
type Planner struct {
	llm    llms.Model
	logger *zap.Logger
}

// New creates a Planner on top of any langchaingo model.
func New(llm llms.Model, logger *zap.Logger) *Planner {
	return &Planner{llm: llm, logger: logger}
}

// NewGoogleAI creates a Planner backed by the Gemini API.
func NewGoogleAI(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Planner, error) {
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return New(llm, logger), nil
}

const generatePromptTemplate = `You are a planning assistant. Break the goal below into a todo list.

Respond with ONLY a JSON object, no prose, in exactly this shape:
{"title": "short list title", "tasks": [{"content": "task text", "subTasks": ["subtask text"]}]}

Rules:
- 3 to 8 tasks, each actionable and concrete.
- Subtasks only where a task genuinely splits into steps; otherwise use an empty array.
- Keep the original language of the goal.

Goal: %s`

// Generate produces a full list plan from a free-form description.
func (p *Planner) Generate(ctx context.Context, description string) (*GeneratedList, error) {
	output, err := llms.GenerateFromSinglePrompt(ctx, p.llm,
		fmt.Sprintf(generatePromptTemplate, description))
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}

	raw, err := parsers.ExtractJSONObject(output)
	if err != nil {
		p.logger.Warn("model output had no JSON object",
			zap.String("output", truncate(output, 500)))
		return nil, ErrMalformedOutput
	}

	var plan GeneratedList
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		p.logger.Warn("model output failed to decode",
			zap.String("output", truncate(raw, 500)),
			zap.Error(err))
		return nil, ErrMalformedOutput
	}
	if strings.TrimSpace(plan.Title) == "" || len(plan.Tasks) == 0 {
		return nil, ErrMalformedOutput
	}
	return &plan, nil
}

const commandPromptTemplate = `You manage a todo list on behalf of the user. Pick exactly one tool call that fulfils the request. Item IDs must come from the current list state below; never invent IDs.

Current list state:
%s

Request: %s`

// Command resolves a natural-language request against the current list
// state into exactly one action from the fixed menu.
func (p *Planner) Command(ctx context.Context, prompt string, state []ContextItem) (*Action, error) {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to encode list state: %w", err)
	}

	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman,
			fmt.Sprintf(commandPromptTemplate, string(stateJSON), prompt)),
	}
	resp, err := p.llm.GenerateContent(ctx, content, llms.WithTools(commandTools))
	if err != nil {
		return nil, fmt.Errorf("command request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrNoAction
	}

	for _, call := range resp.Choices[0].ToolCalls {
		if call.FunctionCall == nil {
			continue
		}
		action, err := decodeToolCall(call.FunctionCall.Name, call.FunctionCall.Arguments)
		if err != nil {
			p.logger.Warn("tool call arguments failed to decode",
				zap.String("tool", call.FunctionCall.Name),
				zap.Error(err))
			return nil, ErrMalformedOutput
		}
		return action, nil
	}
	return nil, ErrNoAction
}

// commandTools is the fixed action menu offered to the model.
var commandTools = []llms.Tool{
	functionTool("createTask", "Create a new task at the end of the list.", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"content": map[string]any{"type": "string", "description": "Text of the new task."},
		},
		"required": []string{"content"},
	}),
	functionTool("createSubTask", "Create a new subtask under an existing task.", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"parentTaskId":   map[string]any{"type": "string", "description": "ID of the parent task."},
			"subTaskContent": map[string]any{"type": "string", "description": "Text of the new subtask."},
		},
		"required": []string{"parentTaskId", "subTaskContent"},
	}),
	functionTool("completeTask", "Mark a task or subtask as completed.", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"itemId":   map[string]any{"type": "string"},
			"itemType": map[string]any{"type": "string", "enum": []string{"task", "subtask"}},
		},
		"required": []string{"itemId", "itemType"},
	}),
	functionTool("deleteTask", "Delete a task or subtask.", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"itemId":   map[string]any{"type": "string"},
			"itemType": map[string]any{"type": "string", "enum": []string{"task", "subtask"}},
		},
		"required": []string{"itemId", "itemType"},
	}),
	functionTool("updateTaskContent", "Rewrite the text of a task or subtask.", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"itemId":     map[string]any{"type": "string"},
			"itemType":   map[string]any{"type": "string", "enum": []string{"task", "subtask"}},
			"newContent": map[string]any{"type": "string"},
		},
		"required": []string{"itemId", "itemType", "newContent"},
	}),
	functionTool("moveTask", "Move a task or subtask to a new position.", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"itemId":   map[string]any{"type": "string"},
			"itemType": map[string]any{"type": "string", "enum": []string{"task", "subtask"}},
			"newOrder": map[string]any{"type": "integer", "description": "Zero-based target position."},
		},
		"required": []string{"itemId", "itemType", "newOrder"},
	}),
}

func functionTool(name, description string, parameters map[string]any) llms.Tool {
	return llms.Tool{
		Type: "function",
		Function: &llms.FunctionDefinition{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
	}
}

func decodeToolCall(name, arguments string) (*Action, error) {
	var args struct {
		Content        string `json:"content"`
		ParentTaskID   string `json:"parentTaskId"`
		SubTaskContent string `json:"subTaskContent"`
		ItemID         string `json:"itemId"`
		ItemType       string `json:"itemType"`
		NewContent     string `json:"newContent"`
		NewOrder       int    `json:"newOrder"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return nil, err
	}

	action := Action{
		Type:         ActionType(name),
		ItemID:       args.ItemID,
		ItemType:     args.ItemType,
		ParentTaskID: args.ParentTaskID,
		NewOrder:     args.NewOrder,
	}
	switch action.Type {
	case ActionCreateTask:
		action.Content = args.Content
	case ActionCreateSubTask:
		action.Content = args.SubTaskContent
	case ActionRenameItem:
		action.Content = args.NewContent
	case ActionCompleteItem, ActionDeleteItem, ActionReorderItem:
	default:
		return nil, fmt.Errorf("unknown tool %q", name)
	}
	return &action, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
