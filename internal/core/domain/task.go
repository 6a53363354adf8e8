package domain

import (
	"strings"
	"time"
)

// TaskStatus is the workflow state of a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusInReview   TaskStatus = "IN_REVIEW"
	StatusDone       TaskStatus = "DONE"
)

// TaskStatuses lists every status in board order.
var TaskStatuses = []TaskStatus{StatusTodo, StatusInProgress, StatusInReview, StatusDone}

// Valid reports whether s is one of the enumerated statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusInReview, StatusDone:
		return true
	}
	return false
}

// ParseTaskStatus validates raw input as a status.
func ParseTaskStatus(field, raw string) (TaskStatus, error) {
	s := TaskStatus(raw)
	if !s.Valid() {
		return "", Invalid(field, "must be one of "+joinStatuses())
	}
	return s, nil
}

func joinStatuses() string {
	parts := make([]string, len(TaskStatuses))
	for i, s := range TaskStatuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

// TaskPriority ranks how urgent a task is.
type TaskPriority string

const (
	PriorityLow      TaskPriority = "LOW"
	PriorityMedium   TaskPriority = "MEDIUM"
	PriorityHigh     TaskPriority = "HIGH"
	PriorityCritical TaskPriority = "CRITICAL"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// ParseTaskPriority validates raw input; empty input means MEDIUM.
func ParseTaskPriority(field, raw string) (TaskPriority, error) {
	if raw == "" {
		return PriorityMedium, nil
	}
	p := TaskPriority(raw)
	if !p.Valid() {
		return "", Invalid(field, "must be one of LOW, MEDIUM, HIGH, CRITICAL")
	}
	return p, nil
}

// Task is a unit of work inside a project.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	ProjectID   string       `json:"project_id"`
	AssignedTo  *string      `json:"assigned_to"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	CompletedAt *time.Time   `json:"completed_at"`
}

// NewTask builds a validated task in the TODO state.
func NewTask(id, title, description, projectID string, assignedTo *string, priority TaskPriority, now time.Time) (*Task, error) {
	if err := FirstError(
		RequireText("title", title),
		RequireText("description", description),
		RequireText("project_id", projectID),
	); err != nil {
		return nil, err
	}
	if !priority.Valid() {
		return nil, Invalid("priority", "must be one of LOW, MEDIUM, HIGH, CRITICAL")
	}
	if assignedTo != nil && *assignedTo == "" {
		assignedTo = nil
	}
	return &Task{
		ID:          id,
		Title:       title,
		Description: description,
		ProjectID:   projectID,
		AssignedTo:  assignedTo,
		Status:      StatusTodo,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// References lists the foreign keys a task holds.
func (t *Task) References() []Reference {
	refs := []Reference{{Field: "project_id", Kind: KindProject, ID: t.ProjectID}}
	if t.AssignedTo != nil {
		refs = append(refs, Reference{Field: "assigned_to", Kind: KindUser, ID: *t.AssignedTo})
	}
	return refs
}

// TransitionTo moves the task to next. Every status is reachable from every
// other. CompletedAt is stamped on entering DONE, kept on DONE -> DONE and
// cleared on leaving DONE. It returns the previous status.
func (t *Task) TransitionTo(next TaskStatus, now time.Time) (TaskStatus, error) {
	if !next.Valid() {
		return "", Invalid("status", "must be one of "+joinStatuses())
	}
	prev := t.Status
	switch {
	case next == StatusDone && prev != StatusDone:
		at := now
		t.CompletedAt = &at
	case next != StatusDone:
		t.CompletedAt = nil
	}
	t.Status = next
	t.UpdatedAt = now
	return prev, nil
}

// CompletionDays is the elapsed time between creation and completion in
// fractional days, or false when the task has no completion timestamp.
func (t *Task) CompletionDays() (float64, bool) {
	if t.CompletedAt == nil {
		return 0, false
	}
	return t.CompletedAt.Sub(t.CreatedAt).Hours() / 24, true
}

// TaskPatch carries a partial update. An AssignedTo pointing at "" clears
// the assignee.
type TaskPatch struct {
	Title       *string
	Description *string
	AssignedTo  *string
	Status      *TaskStatus
	Priority    *TaskPriority
}

func (p TaskPatch) Validate() error {
	if err := FirstError(
		OptionalText("title", p.Title),
		OptionalText("description", p.Description),
	); err != nil {
		return err
	}
	if p.Status != nil && !p.Status.Valid() {
		return Invalid("status", "must be one of "+joinStatuses())
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return Invalid("priority", "must be one of LOW, MEDIUM, HIGH, CRITICAL")
	}
	return nil
}

// Apply writes the patch onto t. A status change goes through TransitionTo
// so the completion timestamp follows the same rules as the status endpoint.
// It returns the previous status when the status was part of the patch.
func (p TaskPatch) Apply(t *Task, now time.Time) (prev TaskStatus, statusChanged bool) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.AssignedTo != nil {
		if *p.AssignedTo == "" {
			t.AssignedTo = nil
		} else {
			id := *p.AssignedTo
			t.AssignedTo = &id
		}
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	t.UpdatedAt = now
	if p.Status != nil {
		prev, _ = t.TransitionTo(*p.Status, now)
		return prev, prev != *p.Status
	}
	return "", false
}

// AssigneeChanged reports whether applying the patch sets a new, non-empty
// assignee that must be checked for existence.
func (p TaskPatch) AssigneeChanged() bool {
	return p.AssignedTo != nil && *p.AssignedTo != ""
}
