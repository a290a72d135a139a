package listview

import "sort"

// SubTaskNode is one subtask as held by the view.
type SubTaskNode struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Completed bool   `json:"completed"`
	Order     int    `json:"order"`
	Comments  int    `json:"comments"`
}

// TaskNode is one task with its subtasks as held by the view.
type TaskNode struct {
	ID        string        `json:"id"`
	Content   string        `json:"content"`
	Completed bool          `json:"completed"`
	Order     int           `json:"order"`
	Comments  int           `json:"comments"`
	SubTasks  []SubTaskNode `json:"subTasks"`
}

// ListTree is the full task tree of one list as presented to the
// rendering layer. Stale marks trees whose sibling ordering is known
// to be outdated; a refetch clears it.
type ListTree struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	OwnerID     string     `json:"ownerId"`
	Tasks       []TaskNode `json:"tasks"`
	Stale       bool       `json:"-"`
}

// Clone deep-copies the tree. Rollback restores one of these, so the
// copy must share no slices with the original.
func (t *ListTree) Clone() *ListTree {
	if t == nil {
		return nil
	}
	clone := *t
	clone.Tasks = make([]TaskNode, len(t.Tasks))
	for i, task := range t.Tasks {
		clone.Tasks[i] = task
		clone.Tasks[i].SubTasks = make([]SubTaskNode, len(task.SubTasks))
		copy(clone.Tasks[i].SubTasks, task.SubTasks)
	}
	return &clone
}

func (t *ListTree) findTask(id string) *TaskNode {
	for i := range t.Tasks {
		if t.Tasks[i].ID == id {
			return &t.Tasks[i]
		}
	}
	return nil
}

// findSubTask returns the subtask and its parent task.
func (t *ListTree) findSubTask(id string) (*TaskNode, *SubTaskNode) {
	for i := range t.Tasks {
		for j := range t.Tasks[i].SubTasks {
			if t.Tasks[i].SubTasks[j].ID == id {
				return &t.Tasks[i], &t.Tasks[i].SubTasks[j]
			}
		}
	}
	return nil, nil
}

func (t *ListTree) removeTask(id string) bool {
	for i := range t.Tasks {
		if t.Tasks[i].ID == id {
			t.Tasks = append(t.Tasks[:i], t.Tasks[i+1:]...)
			return true
		}
	}
	return false
}

func (t *ListTree) removeSubTask(id string) bool {
	for i := range t.Tasks {
		subs := t.Tasks[i].SubTasks
		for j := range subs {
			if subs[j].ID == id {
				t.Tasks[i].SubTasks = append(subs[:j], subs[j+1:]...)
				return true
			}
		}
	}
	return false
}

// sortByOrder restores display order after an order field merge.
func (t *ListTree) sortByOrder() {
	sort.SliceStable(t.Tasks, func(i, j int) bool {
		return t.Tasks[i].Order < t.Tasks[j].Order
	})
	for i := range t.Tasks {
		subs := t.Tasks[i].SubTasks
		sort.SliceStable(subs, func(a, b int) bool {
			return subs[a].Order < subs[b].Order
		})
	}
}

// maxTaskOrder returns the highest task order, or -1 for an empty list.
func (t *ListTree) maxTaskOrder() int {
	max := -1
	for i := range t.Tasks {
		if t.Tasks[i].Order > max {
			max = t.Tasks[i].Order
		}
	}
	return max
}

func maxSubTaskOrder(task *TaskNode) int {
	max := -1
	for i := range task.SubTasks {
		if task.SubTasks[i].Order > max {
			max = task.SubTasks[i].Order
		}
	}
	return max
}
