package logics

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"listloop-server/internal/ai/planner"
	"listloop-server/internal/models"
	"listloop-server/pkg/errors"
)

// PlannerService bridges the language planner and the list mutations.
// Every AI-driven change goes through the same services the HTTP
// handlers use, so access checks and broadcasts apply unchanged.
type PlannerService struct {
	db            *gorm.DB
	planner       *planner.Planner
	accessService *AccessService
	listService   *ListService
	itemService   *ItemService
	logger        *zap.Logger
}

// NewPlannerService creates a new PlannerService.
func NewPlannerService(db *gorm.DB, p *planner.Planner, accessService *AccessService, listService *ListService, itemService *ItemService, logger *zap.Logger) *PlannerService {
	return &PlannerService{
		db:            db,
		planner:       p,
		accessService: accessService,
		listService:   listService,
		itemService:   itemService,
		logger:        logger,
	}
}

// GenerateList plans a list from a description and persists the whole
// tree for the caller.
func (s *PlannerService) GenerateList(ctx context.Context, userID, description string) (*models.TodoList, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, errors.Invalid("description must not be empty")
	}

	plan, err := s.planner.Generate(ctx, description)
	if err != nil {
		if errors.Is(err, planner.ErrMalformedOutput) {
			return nil, errors.Upstream("the model returned an unusable plan", err)
		}
		return nil, errors.Upstream("list generation failed", err)
	}

	input := &GeneratedListInput{
		Title:       plan.Title,
		Description: description,
	}
	for _, t := range plan.Tasks {
		input.Tasks = append(input.Tasks, GeneratedTaskInput{
			Content:  t.Content,
			SubTasks: t.SubTasks,
		})
	}

	list, err := s.listService.CreateGeneratedList(ctx, userID, input)
	if err != nil {
		return nil, err
	}

	s.logger.Info("list generated",
		zap.String("list_id", list.ID),
		zap.String("owner_id", userID),
		zap.Int("tasks", len(plan.Tasks)))
	return list, nil
}

// CommandResult reports which action a command resolved to and what it
// produced.
type CommandResult struct {
	Action planner.ActionType `json:"action"`
	Item   interface{}        `json:"item,omitempty"`
}

// ExecuteCommand resolves a natural-language prompt into exactly one
// list mutation and applies it.
func (s *PlannerService) ExecuteCommand(ctx context.Context, listID, userID, socketID, prompt string) (*CommandResult, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, errors.Invalid("prompt must not be empty")
	}

	if err := s.accessService.RequireListAccess(ctx, listID, userID); err != nil {
		return nil, err
	}

	state, err := s.contextSnapshot(ctx, listID)
	if err != nil {
		return nil, err
	}

	action, err := s.planner.Command(ctx, prompt, state)
	if err != nil {
		switch {
		case errors.Is(err, planner.ErrNoAction):
			return nil, errors.Invalid("could not map the prompt to a list action")
		case errors.Is(err, planner.ErrMalformedOutput):
			return nil, errors.Upstream("the model returned an unusable action", err)
		default:
			return nil, errors.Upstream("command resolution failed", err)
		}
	}

	result := &CommandResult{Action: action.Type}
	switch action.Type {
	case planner.ActionCreateTask:
		result.Item, err = s.itemService.Append(ctx, listID, userID, socketID, AppendInput{
			ItemType: models.ItemTypeTask,
			Content:  action.Content,
		})
	case planner.ActionCreateSubTask:
		result.Item, err = s.itemService.Append(ctx, listID, userID, socketID, AppendInput{
			ItemType: models.ItemTypeSubTask,
			Content:  action.Content,
			ParentID: action.ParentTaskID,
		})
	case planner.ActionCompleteItem:
		completed := true
		result.Item, err = s.itemService.Patch(ctx, listID, userID, socketID,
			action.ItemType, action.ItemID, models.ItemPatch{Completed: &completed})
	case planner.ActionDeleteItem:
		err = s.itemService.Delete(ctx, listID, userID, socketID, action.ItemType, action.ItemID)
	case planner.ActionRenameItem:
		result.Item, err = s.itemService.Patch(ctx, listID, userID, socketID,
			action.ItemType, action.ItemID, models.ItemPatch{Content: &action.Content})
	case planner.ActionReorderItem:
		result.Item, err = s.itemService.Patch(ctx, listID, userID, socketID,
			action.ItemType, action.ItemID, models.ItemPatch{Order: &action.NewOrder})
	default:
		return nil, errors.Upstream("the model chose an unknown action", nil)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("command executed",
		zap.String("list_id", listID),
		zap.String("action", string(action.Type)))
	return result, nil
}

// contextSnapshot flattens the list into the id, content, state tuples
// the command planner resolves references against.
func (s *PlannerService) contextSnapshot(ctx context.Context, listID string) ([]planner.ContextItem, error) {
	var tasks []models.Task
	err := s.db.WithContext(ctx).
		Preload("SubTasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("sub_tasks.item_order ASC")
		}).
		Where("todo_list_id = ?", listID).
		Order("tasks.item_order ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, errors.Internal("failed to load list state", err)
	}

	items := make([]planner.ContextItem, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, planner.ContextItem{
			ID:        t.ID,
			Type:      models.ItemTypeTask,
			Content:   t.Content,
			Completed: t.Completed,
			Order:     t.Order,
		})
		for _, st := range t.SubTasks {
			items = append(items, planner.ContextItem{
				ID:        st.ID,
				Type:      models.ItemTypeSubTask,
				Content:   st.Content,
				Completed: st.Completed,
				Order:     st.Order,
				ParentID:  t.ID,
			})
		}
	}
	return items, nil
}
