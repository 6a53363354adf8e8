package domain

import "time"

// Comment is a note left by a user on a task.
type Comment struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func NewComment(id, taskID, userID, text string, now time.Time) (*Comment, error) {
	if err := FirstError(
		RequireText("task_id", taskID),
		RequireText("user_id", userID),
		RequireText("text", text),
	); err != nil {
		return nil, err
	}
	return &Comment{ID: id, TaskID: taskID, UserID: userID, Text: text, CreatedAt: now}, nil
}

func (c *Comment) References() []Reference {
	return []Reference{
		{Field: "task_id", Kind: KindTask, ID: c.TaskID},
		{Field: "user_id", Kind: KindUser, ID: c.UserID},
	}
}
