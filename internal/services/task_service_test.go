package services

import (
	"context"
	"testing"
	"time"

	"github.com/isdelr/taskdesk-be/internal/database/dbtest"
	"github.com/isdelr/taskdesk-be/internal/models"
	"gotest.tools/v3/assert"
)

func mustDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	assert.NilError(t, err)
	return d
}

func TestGetAllTasksEmpty(t *testing.T) {
	svc := NewTaskService(dbtest.New(t))

	tasks, err := svc.GetAllTasks(context.Background())
	assert.NilError(t, err)
	assert.Assert(t, tasks != nil)
	assert.Equal(t, len(tasks), 0)
}

func TestCreateThenList(t *testing.T) {
	svc := NewTaskService(dbtest.New(t))
	ctx := context.Background()

	in := models.Task{
		Title:       "Buy milk",
		Description: "2%",
		Date:        mustDate(t, "2024-01-01"),
		Completed:   false,
		Important:   true,
	}
	created, err := svc.CreateTask(ctx, in)
	assert.NilError(t, err)
	assert.Assert(t, created.ID > 0)

	second, err := svc.CreateTask(ctx, models.Task{Title: "Walk dog"})
	assert.NilError(t, err)
	assert.Assert(t, second.ID > created.ID)

	tasks, err := svc.GetAllTasks(ctx)
	assert.NilError(t, err)
	assert.Equal(t, len(tasks), 2)

	got := tasks[0]
	assert.Equal(t, got.ID, created.ID)
	assert.Equal(t, got.Title, "Buy milk")
	assert.Equal(t, got.Description, "2%")
	assert.Equal(t, got.Date.String(), "2024-01-01")
	assert.Equal(t, got.Completed, false)
	assert.Equal(t, got.Important, true)

	assert.Equal(t, tasks[1].Title, "Walk dog")
	assert.Assert(t, tasks[1].Date.IsZero())
}

func TestCreateWithOffsetDateThenList(t *testing.T) {
	svc := NewTaskService(dbtest.New(t))
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, models.Task{Title: "New year", Date: mustDate(t, "2024-01-01T00:00:00+02:00")})
	assert.NilError(t, err)

	tasks, err := svc.GetAllTasks(ctx)
	assert.NilError(t, err)
	assert.Equal(t, len(tasks), 1)
	assert.Assert(t, tasks[0].Date.Equal(time.Date(2023, 12, 31, 22, 0, 0, 0, time.UTC)))
	assert.Equal(t, tasks[0].Date.String(), "2023-12-31T22:00:00Z")
}

func TestUpdateTaskOverwritesAllFields(t *testing.T) {
	svc := NewTaskService(dbtest.New(t))
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, models.Task{
		Title:       "Buy milk",
		Description: "2%",
		Date:        mustDate(t, "2024-01-01"),
		Important:   true,
	})
	assert.NilError(t, err)

	n, err := svc.UpdateTask(ctx, created.ID, models.Task{
		Title:     "Buy oat milk",
		Date:      mustDate(t, "2024-02-03"),
		Completed: true,
	})
	assert.NilError(t, err)
	assert.Equal(t, n, int64(1))

	tasks, err := svc.GetAllTasks(ctx)
	assert.NilError(t, err)
	assert.Equal(t, len(tasks), 1)
	assert.DeepEqual(t, []string{tasks[0].Title, tasks[0].Description, tasks[0].Date.String()},
		[]string{"Buy oat milk", "", "2024-02-03"})
	assert.Equal(t, tasks[0].Completed, true)
	assert.Equal(t, tasks[0].Important, false)
}

func TestUpdateMissingTaskIsNotAnError(t *testing.T) {
	svc := NewTaskService(dbtest.New(t))

	n, err := svc.UpdateTask(context.Background(), 999, models.Task{Title: "ghost"})
	assert.NilError(t, err)
	assert.Equal(t, n, int64(0))
}

func TestDeleteTask(t *testing.T) {
	svc := NewTaskService(dbtest.New(t))
	ctx := context.Background()

	keep, err := svc.CreateTask(ctx, models.Task{Title: "keep"})
	assert.NilError(t, err)
	drop, err := svc.CreateTask(ctx, models.Task{Title: "drop"})
	assert.NilError(t, err)

	n, err := svc.DeleteTask(ctx, drop.ID)
	assert.NilError(t, err)
	assert.Equal(t, n, int64(1))

	n, err = svc.DeleteTask(ctx, drop.ID)
	assert.NilError(t, err)
	assert.Equal(t, n, int64(0))

	tasks, err := svc.GetAllTasks(ctx)
	assert.NilError(t, err)
	assert.Equal(t, len(tasks), 1)
	assert.Equal(t, tasks[0].ID, keep.ID)
}

func TestTaskServiceSurfacesStoreFailures(t *testing.T) {
	db := dbtest.New(t)
	svc := NewTaskService(db)
	ctx := context.Background()
	assert.NilError(t, db.Close())

	_, err := svc.GetAllTasks(ctx)
	assert.ErrorContains(t, err, "failed to list tasks")

	_, err = svc.CreateTask(ctx, models.Task{Title: "x"})
	assert.ErrorContains(t, err, "failed to create task")

	_, err = svc.UpdateTask(ctx, 1, models.Task{Title: "x"})
	assert.ErrorContains(t, err, "failed to update task 1")

	_, err = svc.DeleteTask(ctx, 1)
	assert.ErrorContains(t, err, "failed to delete task 1")
}
