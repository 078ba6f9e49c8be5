package models

// GuardianPin is the single stored guardian PIN for a deployment.
//
// Only the salted key-derivation output is ever persisted. The plaintext PIN
// exists in memory just long enough to be hashed and is never returned by any
// operation.
type GuardianPin struct {
	// Hash is the PBKDF2-SHA256 output derived from the PIN and Salt.
	Hash []byte `json:"-"`

	// Salt is the random salt generated when the PIN was set. A new salt is
	// generated on every overwrite.
	Salt []byte `json:"-"`
}

// TableName returns the name of the database table
// associated with the GuardianPin model.
func (g GuardianPin) TableName() string {
	return "guardian_pin"
}
