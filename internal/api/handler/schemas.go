package handler

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Field  string `json:"field,omitempty"`
}

type createUserRequest struct {
	Name        string `json:"name"         validate:"required"`
	Email       string `json:"email"        validate:"required,email"`
	AvatarColor string `json:"avatar_color"`
}

type updateUserRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	AvatarColor *string `json:"avatar_color"`
}

type createProjectRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description" validate:"required"`
	OwnerID     string `json:"owner_id"    validate:"required"`
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	OwnerID     *string `json:"owner_id"`
}

type createTaskRequest struct {
	Title       string  `json:"title"       validate:"required"`
	Description string  `json:"description" validate:"required"`
	ProjectID   string  `json:"project_id"  validate:"required"`
	AssignedTo  *string `json:"assigned_to"`
	Priority    string  `json:"priority"    validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
}

// updateTaskRequest is a partial update; "assigned_to": "" unassigns.
type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	AssignedTo  *string `json:"assigned_to"`
	Status      *string `json:"status"   validate:"omitempty,oneof=TODO IN_PROGRESS IN_REVIEW DONE"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=TODO IN_PROGRESS IN_REVIEW DONE"`
}

type createCommentRequest struct {
	TaskID string `json:"task_id" validate:"required"`
	UserID string `json:"user_id" validate:"required"`
	Text   string `json:"text"    validate:"required"`
}
