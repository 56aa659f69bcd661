package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/isdelr/taskdesk-be/internal/database"
	"github.com/isdelr/taskdesk-be/internal/models"
)

// TaskServiceProvider defines the interface for task services.
type TaskServiceProvider interface {
	GetAllTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)
	UpdateTask(ctx context.Context, id int64, task models.Task) (int64, error)
	DeleteTask(ctx context.Context, id int64) (int64, error)
}

// TaskService provides business logic for task management.
type TaskService struct {
	db *database.DB
}

// NewTaskService creates a new TaskService.
func NewTaskService(db *database.DB) *TaskService {
	return &TaskService{db: db}
}

// scanTask is a helper to scan a task from a row or rows object.
func scanTask(scanner interface{ Scan(...any) error }) (models.Task, error) {
	var task models.Task
	var title, description sql.NullString
	var completed, important sql.NullBool

	err := scanner.Scan(&task.ID, &title, &description, &task.Date, &completed, &important)
	if err != nil {
		return task, err
	}

	task.Title = title.String
	task.Description = description.String
	task.Completed = completed.Bool
	task.Important = important.Bool
	return task, nil
}

// GetAllTasks retrieves every task in insertion order.
func (s *TaskService) GetAllTasks(ctx context.Context) ([]models.Task, error) {
	const query = "SELECT id, title, description, date, completed, important FROM tasks ORDER BY id"
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask adds a new task and returns it with its generated id.
func (s *TaskService) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	const query = `
		INSERT INTO tasks (title, description, date, completed, important)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := s.db.QueryRowContext(ctx, s.db.Rebind(query),
		task.Title, task.Description, task.Date, task.Completed, task.Important,
	).Scan(&task.ID)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// UpdateTask overwrites every mutable field of the task with the given id.
// It reports how many rows matched; zero is not an error.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, task models.Task) (int64, error) {
	const query = `
		UPDATE tasks SET title = $1, description = $2, date = $3, completed = $4, important = $5
		WHERE id = $6`
	res, err := s.db.ExecContext(ctx, s.db.Rebind(query),
		task.Title, task.Description, task.Date, task.Completed, task.Important, id,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update task %d: %w", id, err)
	}
	return rowsAffected(res)
}

// DeleteTask removes a task. It reports how many rows matched; zero is not an error.
func (s *TaskService) DeleteTask(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM tasks WHERE id = $1"), id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	return rowsAffected(res)
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}
