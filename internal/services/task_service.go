package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/isdelr/tasklist/internal/models"
)

// TaskServiceProvider defines the interface for task services.
type TaskServiceProvider interface {
	CreateTask(ctx context.Context, userID int64, text string) (int64, error)
	GetTasksForUser(ctx context.Context, userID int64) ([]models.Task, error)
	DeleteTask(ctx context.Context, taskID, userID int64) (bool, error)
}

// TaskService reads and writes the tasks table. Every query is scoped by user_id.
type TaskService struct {
	db *sql.DB
}

// NewTaskService creates a new TaskService.
func NewTaskService(db *sql.DB) *TaskService {
	return &TaskService{db: db}
}

// CreateTask inserts a task for the user and returns its ID.
func (s *TaskService) CreateTask(ctx context.Context, userID int64, text string) (int64, error) {
	res, err := s.db.ExecContext(ctx, "INSERT INTO tasks (user_id, task) VALUES (?, ?)", userID, text)
	if err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}
	return res.LastInsertId()
}

// GetTasksForUser returns the user's tasks, newest first.
func (s *TaskService) GetTasksForUser(ctx context.Context, userID int64) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, task, strftime('%Y-%m-%d %H:%M:%S', created_at)
		FROM tasks WHERE user_id = ? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var task models.Task
		var createdAt sql.NullString
		if err := rows.Scan(&task.ID, &task.UserID, &task.Task, &createdAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		task.CreatedAt = createdAt.String
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// DeleteTask removes the task only if it belongs to userID. It reports whether a row was deleted.
func (s *TaskService) DeleteTask(ctx context.Context, taskID, userID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ? AND user_id = ?", taskID, userID)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return n > 0, nil
}
