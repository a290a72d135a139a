package planner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"

	"listloop-server/internal/ai/planner"
)

// fakeModel returns canned responses so planner behavior can be tested
// without a live completion service.
type fakeModel struct {
	response *llms.ContentResponse
	err      error
}

func (f *fakeModel) GenerateContent(_ context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	return f.response, f.err
}

func (f *fakeModel) Call(_ context.Context, _ string, _ ...llms.CallOption) (string, error) {
	return "", nil
}

func textResponse(text string) *llms.ContentResponse {
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: text}},
	}
}

func toolResponse(name, arguments string) *llms.ContentResponse {
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{
			ToolCalls: []llms.ToolCall{{
				Type:         "function",
				FunctionCall: &llms.FunctionCall{Name: name, Arguments: arguments},
			}},
		}},
	}
}

func TestPlannerGenerate(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("parses a plan wrapped in prose", func(t *testing.T) {
		model := &fakeModel{response: textResponse(
			"Here you go!\n" +
				`{"title":"Birthday Party","tasks":[{"content":"Book venue","subTasks":["Call three places"]},{"content":"Send invites","subTasks":[]}]}` +
				"\nHave fun!")}
		p := planner.New(model, logger)

		plan, err := p.Generate(ctx, "plan a birthday party")
		assert.NoError(t, err)
		assert.Equal(t, "Birthday Party", plan.Title)
		assert.Len(t, plan.Tasks, 2)
		assert.Equal(t, []string{"Call three places"}, plan.Tasks[0].SubTasks)
	})

	t.Run("malformed output is its own failure", func(t *testing.T) {
		model := &fakeModel{response: textResponse("I cannot help with that.")}
		p := planner.New(model, logger)

		_, err := p.Generate(ctx, "plan something")
		assert.ErrorIs(t, err, planner.ErrMalformedOutput)
	})

	t.Run("undecodable JSON is malformed", func(t *testing.T) {
		model := &fakeModel{response: textResponse(`{"title": "x", "tasks": [}`)}
		p := planner.New(model, logger)

		_, err := p.Generate(ctx, "plan something")
		assert.ErrorIs(t, err, planner.ErrMalformedOutput)
	})

	t.Run("empty plan is malformed", func(t *testing.T) {
		model := &fakeModel{response: textResponse(`{"title":"","tasks":[]}`)}
		p := planner.New(model, logger)

		_, err := p.Generate(ctx, "plan something")
		assert.ErrorIs(t, err, planner.ErrMalformedOutput)
	})

	t.Run("transport failure is not malformed output", func(t *testing.T) {
		model := &fakeModel{err: assert.AnError}
		p := planner.New(model, logger)

		_, err := p.Generate(ctx, "plan something")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, planner.ErrMalformedOutput)
	})
}

func TestPlannerCommand(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	state := []planner.ContextItem{
		{ID: "TK0A1B2C3D4E5", Type: "task", Content: "Buy groceries", Order: 0},
	}

	t.Run("create task", func(t *testing.T) {
		model := &fakeModel{response: toolResponse("createTask", `{"content":"Walk the dog"}`)}
		p := planner.New(model, logger)

		action, err := p.Command(ctx, "add walking the dog", state)
		assert.NoError(t, err)
		assert.Equal(t, planner.ActionCreateTask, action.Type)
		assert.Equal(t, "Walk the dog", action.Content)
	})

	t.Run("create subtask maps its own content field", func(t *testing.T) {
		model := &fakeModel{response: toolResponse("createSubTask",
			`{"parentTaskId":"TK0A1B2C3D4E5","subTaskContent":"Buy milk"}`)}
		p := planner.New(model, logger)

		action, err := p.Command(ctx, "add buy milk under groceries", state)
		assert.NoError(t, err)
		assert.Equal(t, planner.ActionCreateSubTask, action.Type)
		assert.Equal(t, "TK0A1B2C3D4E5", action.ParentTaskID)
		assert.Equal(t, "Buy milk", action.Content)
	})

	t.Run("complete item", func(t *testing.T) {
		model := &fakeModel{response: toolResponse("completeTask",
			`{"itemId":"TK0A1B2C3D4E5","itemType":"task"}`)}
		p := planner.New(model, logger)

		action, err := p.Command(ctx, "mark groceries done", state)
		assert.NoError(t, err)
		assert.Equal(t, planner.ActionCompleteItem, action.Type)
		assert.Equal(t, "TK0A1B2C3D4E5", action.ItemID)
		assert.Equal(t, "task", action.ItemType)
	})

	t.Run("move item carries the target order", func(t *testing.T) {
		model := &fakeModel{response: toolResponse("moveTask",
			`{"itemId":"TK0A1B2C3D4E5","itemType":"task","newOrder":3}`)}
		p := planner.New(model, logger)

		action, err := p.Command(ctx, "move groceries to fourth", state)
		assert.NoError(t, err)
		assert.Equal(t, planner.ActionReorderItem, action.Type)
		assert.Equal(t, 3, action.NewOrder)
	})

	t.Run("plain text answer resolves no action", func(t *testing.T) {
		model := &fakeModel{response: textResponse("I am not sure what you mean.")}
		p := planner.New(model, logger)

		_, err := p.Command(ctx, "do the thing", state)
		assert.ErrorIs(t, err, planner.ErrNoAction)
	})

	t.Run("unknown tool is malformed", func(t *testing.T) {
		model := &fakeModel{response: toolResponse("explodeList", `{}`)}
		p := planner.New(model, logger)

		_, err := p.Command(ctx, "explode", state)
		assert.ErrorIs(t, err, planner.ErrMalformedOutput)
	})

	t.Run("broken arguments are malformed", func(t *testing.T) {
		model := &fakeModel{response: toolResponse("createTask", `{"content":`)}
		p := planner.New(model, logger)

		_, err := p.Command(ctx, "add something", state)
		assert.ErrorIs(t, err, planner.ErrMalformedOutput)
	})
}
