package models

// ChildProfile is a guardian-managed record of one monitored child.
//
// Profiles are soft-deleted only: archiving sets IsArchived and keeps the row
// for audit, so alarm events that reference the profile stay resolvable.
type ChildProfile struct {
	// ID is the guardian-chosen unique identifier of the profile.
	ID string `json:"id"`

	// Name is the display name of the child.
	Name string `json:"name"`

	// IsArchived marks the profile as retired. Archived profiles no longer
	// take part in alarm triggering but remain listed and linkable history.
	IsArchived bool `json:"isArchived"`
}

// TableName returns the name of the database table
// associated with the ChildProfile model.
func (c ChildProfile) TableName() string {
	return "child_profiles"
}

// PrincipalLink associates one caller principal with one child profile.
// A principal has at most one link; linking again overwrites the previous
// association, unlinking removes the row entirely.
type PrincipalLink struct {
	// Principal is the opaque caller credential being linked.
	Principal string `json:"principal"`

	// ChildID is the identifier of the linked child profile. The profile may
	// be archived; the link survives archiving for audit purposes.
	ChildID string `json:"childId"`
}

// TableName returns the name of the database table
// associated with the PrincipalLink model.
func (p PrincipalLink) TableName() string {
	return "principal_links"
}
