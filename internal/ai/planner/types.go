package planner

// GeneratedList is the plan produced from a free-form description.
type GeneratedList struct {
	Title string          `json:"title"`
	Tasks []GeneratedTask `json:"tasks"`
}

// GeneratedTask is one planned task with optional subtask contents.
type GeneratedTask struct {
	Content  string   `json:"content"`
	SubTasks []string `json:"subTasks"`
}

// ActionType names the list mutations the command planner may choose
// from. The menu is fixed; the model cannot invent new actions.
type ActionType string

const (
	ActionCreateTask    ActionType = "createTask"
	ActionCreateSubTask ActionType = "createSubTask"
	ActionCompleteItem  ActionType = "completeTask"
	ActionDeleteItem    ActionType = "deleteTask"
	ActionRenameItem    ActionType = "updateTaskContent"
	ActionReorderItem   ActionType = "moveTask"
)

// Action is one resolved command against a list.
type Action struct {
	Type         ActionType `json:"type"`
	Content      string     `json:"content,omitempty"`
	ParentTaskID string     `json:"parentTaskId,omitempty"`
	ItemID       string     `json:"itemId,omitempty"`
	ItemType     string     `json:"itemType,omitempty"`
	NewOrder     int        `json:"newOrder,omitempty"`
}

// ContextItem is one existing item handed to the command planner so it
// can resolve references like "the second task".
type ContextItem struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Content   string `json:"content"`
	Completed bool   `json:"completed"`
	Order     int    `json:"order"`
	ParentID  string `json:"parentId,omitempty"`
}
