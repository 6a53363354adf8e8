package domain

import "time"

// Project groups tasks under a single owning user.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProject builds a validated project. The owner's existence is checked by
// the repository when the project is persisted.
func NewProject(id, name, description, ownerID string, now time.Time) (*Project, error) {
	if err := FirstError(
		RequireText("name", name),
		RequireText("description", description),
		RequireText("owner_id", ownerID),
	); err != nil {
		return nil, err
	}
	return &Project{
		ID:          id,
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// References lists the foreign keys a project holds.
func (p *Project) References() []Reference {
	return []Reference{{Field: "owner_id", Kind: KindUser, ID: p.OwnerID}}
}

// ProjectPatch carries a partial update. OwnerID is accepted only so a
// client echoing the full entity back is not rejected; it may not change.
type ProjectPatch struct {
	Name        *string
	Description *string
	OwnerID     *string
}

func (p ProjectPatch) Validate() error {
	return FirstError(
		OptionalText("name", p.Name),
		OptionalText("description", p.Description),
	)
}

// Apply writes the patch onto pr, refusing an owner change.
func (p ProjectPatch) Apply(pr *Project, now time.Time) error {
	if p.OwnerID != nil && *p.OwnerID != pr.OwnerID {
		return &IntegrityViolation{Field: "owner_id", Reason: "is immutable after creation"}
	}
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.Description != nil {
		pr.Description = *p.Description
	}
	pr.UpdatedAt = now
	return nil
}
