package service

import "github.com/aditraka/go-taskpilot-backend/internal/model"

// ChildTasks filters the flat task list to the direct children of parentID,
// preserving relative order. parentID == "" selects roots; a task whose
// parent is missing from the collection is treated as a root instead of
// being dropped. Each task lands in exactly one parent's child set.
func ChildTasks(tasks []model.Task, parentID string) []model.Task {
	present := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		present[t.ID] = true
	}

	var children []model.Task
	for _, t := range tasks {
		effective := t.ParentID
		if effective != "" && !present[effective] {
			effective = ""
		}
		if effective == parentID {
			children = append(children, t)
		}
	}
	return children
}

// BuildTree nests the flat list into root nodes with recursive children.
// Cycles are not defended against; Todoist forbids a task being its own
// ancestor.
func BuildTree(tasks []model.Task) []model.TaskNode {
	return subtree(tasks, "")
}

func subtree(tasks []model.Task, parentID string) []model.TaskNode {
	children := ChildTasks(tasks, parentID)
	nodes := make([]model.TaskNode, 0, len(children))
	for _, c := range children {
		nodes = append(nodes, model.TaskNode{
			Task:      c,
			Completed: c.IsCompleted,
			Children:  subtree(tasks, c.ID),
		})
	}
	return nodes
}
