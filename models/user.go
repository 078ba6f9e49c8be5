package models

// Role is the authorization level attached to a caller's profile.
// The role decides which operations the access gate lets through.
type Role string

const (
	// RoleAdmin marks a guardian. Admins manage child profiles, records,
	// principal links, and the guardian PIN.
	RoleAdmin Role = "admin"

	// RoleUser marks a regular registered caller, typically a child device.
	RoleUser Role = "user"

	// RoleGuest is the implicit role of any caller without a stored profile.
	// Guests get read-mostly access and are rejected on every admin operation.
	RoleGuest Role = "guest"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleGuest:
		return true
	}
	return false
}

// UserProfile is the stored profile of one caller principal.
// A profile is created on the caller's first self-registration and is never
// deleted, only overwritten.
type UserProfile struct {
	// Principal is the opaque, globally unique caller credential the profile
	// belongs to. It is observed on each request, never minted by the server.
	Principal string `json:"principal"`

	// Name is the display name chosen by the caller.
	Name string `json:"name"`

	// Role is the caller's authorization level. Owners may not change their
	// own role through profile saves; role changes go through role assignment
	// by an admin.
	Role Role `json:"role"`
}

// TableName returns the name of the database table
// associated with the UserProfile model.
func (u UserProfile) TableName() string {
	return "user_profiles"
}
