package domain

import "time"

// DefaultAvatarColor is applied when a user is created without one.
const DefaultAvatarColor = "#3b82f6"

// User is a person that can own projects and be assigned tasks.
type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	AvatarColor string    `json:"avatar_color"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewUser builds a validated user. id and now are supplied by the caller.
func NewUser(id, name, email, avatarColor string, now time.Time) (*User, error) {
	if err := FirstError(
		RequireText("name", name),
		RequireEmail("email", email),
	); err != nil {
		return nil, err
	}
	if avatarColor == "" {
		avatarColor = DefaultAvatarColor
	}
	return &User{
		ID:          id,
		Name:        name,
		Email:       email,
		AvatarColor: avatarColor,
		CreatedAt:   now,
	}, nil
}

// UserPatch carries a partial update; nil fields are left unchanged.
type UserPatch struct {
	Name        *string
	Email       *string
	AvatarColor *string
}

// Validate checks every field that is being changed.
func (p UserPatch) Validate() error {
	if err := OptionalText("name", p.Name); err != nil {
		return err
	}
	if p.Email != nil {
		if err := RequireEmail("email", *p.Email); err != nil {
			return err
		}
	}
	return nil
}

// Apply writes the patch onto u. Callers validate first.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.AvatarColor != nil && *p.AvatarColor != "" {
		u.AvatarColor = *p.AvatarColor
	}
}
