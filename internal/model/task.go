package model

// Due is the structured due date Todoist attaches to a task. Date is always
// set when Due is present; Datetime and Timezone only when the task has a
// time of day.
type Due struct {
	Date     string `json:"date"`
	String   string `json:"string,omitempty"`
	Datetime string `json:"datetime,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// Task is one to-do item as known to Todoist. ParentID empty means root task.
type Task struct {
	ID          string `json:"id"`
	Content     string `json:"content"`
	Priority    int    `json:"priority"`
	Due         *Due   `json:"due,omitempty"`
	IsCompleted bool   `json:"is_completed"`
	ParentID    string `json:"parent_id,omitempty"`
}

// CreateTaskArgs carries the optional fields of a task creation. Zero values
// are omitted from the upstream request body.
type CreateTaskArgs struct {
	Content   string `json:"content"`
	DueString string `json:"due_string,omitempty"`
	Priority  int    `json:"priority,omitempty"`
	ParentID  string `json:"parent_id,omitempty"`
}

// TaskNode is a task plus its resolved children, for nested rendering.
type TaskNode struct {
	Task
	Completed bool       `json:"completed"`
	Children  []TaskNode `json:"children"`
}
