package realtime

// Event names on list channels.
const (
	EventItemAdded     = "item-added"
	EventItemUpdated   = "item-updated"
	EventItemDeleted   = "item-deleted"
	EventCommentAdded  = "comment-added"
	EventListReordered = "list-reordered"
)

// Event names on user channels.
const (
	EventInvitationNew = "invitation-new"
	EventNewMessage    = "new-message"
)

// ItemAdded announces a new task or subtask. Item is the full created entity.
type ItemAdded struct {
	Item     interface{} `json:"item"`
	ItemType string      `json:"itemType"`
	ParentID string      `json:"parentId,omitempty"`
}

// ItemUpdated is a field-scoped patch: only non-nil fields were changed and
// receivers must merge nothing else.
type ItemUpdated struct {
	ItemID    string  `json:"itemId"`
	ItemType  string  `json:"itemType"`
	Completed *bool   `json:"completed,omitempty"`
	Content   *string `json:"content,omitempty"`
	Order     *int    `json:"order,omitempty"`
}

// ItemDeleted announces a removal. ParentID is set for subtasks.
type ItemDeleted struct {
	ItemID   string `json:"itemId"`
	ItemType string `json:"itemType"`
	ParentID string `json:"parentId,omitempty"`
}

// CommentAdded announces a new comment on a task or subtask.
type CommentAdded struct {
	Comment  interface{} `json:"comment"`
	ItemType string      `json:"itemType"`
	ItemID   string      `json:"itemId"`
}
