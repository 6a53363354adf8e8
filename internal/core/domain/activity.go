package domain

import "time"

// TaskEvent is one entry in a task's activity trail. From is empty for the
// creation event.
type TaskEvent struct {
	TaskID    string     `json:"task_id"`
	ProjectID string     `json:"project_id"`
	From      TaskStatus `json:"from,omitempty"`
	To        TaskStatus `json:"to"`
	At        time.Time  `json:"at"`
}
