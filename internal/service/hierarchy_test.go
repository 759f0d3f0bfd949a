package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aditraka/go-taskpilot-backend/internal/model"
)

func task(id, parentID, content string) model.Task {
	return model.Task{ID: id, ParentID: parentID, Content: content, Priority: 1}
}

func TestChildTasks_RootsOnly(t *testing.T) {
	tasks := []model.Task{
		task("1", "", "groceries"),
		task("2", "1", "buy milk"),
		task("3", "", "taxes"),
		task("4", "3", "collect receipts"),
	}

	roots := ChildTasks(tasks, "")
	require.Len(t, roots, 2)
	assert.Equal(t, "1", roots[0].ID)
	assert.Equal(t, "3", roots[1].ID)
}

func TestChildTasks_PreservesRelativeOrder(t *testing.T) {
	tasks := []model.Task{
		task("10", "1", "third in file, first child"),
		task("1", "", "parent"),
		task("11", "1", "second child"),
		task("12", "1", "last child"),
	}

	children := ChildTasks(tasks, "1")
	require.Len(t, children, 3)
	assert.Equal(t, []string{"10", "11", "12"}, []string{children[0].ID, children[1].ID, children[2].ID})
}

func TestChildTasks_OrphanTreatedAsRoot(t *testing.T) {
	tasks := []model.Task{
		task("1", "", "real root"),
		task("2", "missing", "orphan"),
	}

	roots := ChildTasks(tasks, "")
	require.Len(t, roots, 2)
	assert.Equal(t, "2", roots[1].ID)

	// The orphan must not also show up under its dangling parent id.
	assert.Empty(t, ChildTasks(tasks, "missing"))
}

func TestChildTasks_EachTaskInExactlyOneChildSet(t *testing.T) {
	tasks := []model.Task{
		task("1", "", "a"),
		task("2", "1", "b"),
		task("3", "1", "c"),
		task("4", "2", "d"),
		task("5", "gone", "e"),
	}

	seen := map[string]int{}
	parents := []string{"", "1", "2", "3", "4", "5", "gone"}
	for _, p := range parents {
		for _, c := range ChildTasks(tasks, p) {
			seen[c.ID]++
		}
	}
	for id, n := range seen {
		assert.Equalf(t, 1, n, "task %s appeared in %d child sets", id, n)
	}
	assert.Len(t, seen, len(tasks))
}

func TestBuildTree_Nesting(t *testing.T) {
	tasks := []model.Task{
		task("1", "", "project"),
		task("2", "1", "phase one"),
		task("3", "2", "step"),
		task("4", "", "standalone"),
	}

	tree := BuildTree(tasks)
	require.Len(t, tree, 2)
	require.Len(t, tree[0].Children, 1)
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, "3", tree[0].Children[0].Children[0].ID)
	assert.Empty(t, tree[1].Children)
}

func TestBuildTree_CreatedChildAppearsUnderParent(t *testing.T) {
	// Round-trip shape: a task created with parent_id=1 shows up as a child
	// of 1 after the next fetch.
	tasks := []model.Task{
		task("1", "", "parent"),
		task("2", "", "other root"),
	}
	tasks = append(tasks, task("99", "1", "freshly created subtask"))

	children := ChildTasks(tasks, "1")
	require.Len(t, children, 1)
	assert.Equal(t, "99", children[0].ID)
}
