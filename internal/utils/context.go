// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, PIN hashing,
// HTTP response writing, JWT token generation and validation,
// and other common operations.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// PrincipalCtxKey is the key used to store the caller principal in the
// context. Used together with GetPrincipalFromContext for type-safe
// retrieval of the caller identity from context.Context.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.PrincipalCtxKey, "w7x5v-...-cai")
var PrincipalCtxKey = contextKey("principal")

// GetPrincipalFromContext retrieves the caller principal from the context.
//
// Returns the principal string and an ok flag:
//   - ok == true  — value is found, has the correct string type, and is
//     non-empty
//   - ok == false — value is missing, empty, or has an unexpected type
//
// Example usage:
//
//	principal, ok := utils.GetPrincipalFromContext(ctx)
//	if !ok {
//	    // caller is an unauthenticated guest
//	}
func GetPrincipalFromContext(ctx context.Context) (string, bool) {
	principal, ok := ctx.Value(PrincipalCtxKey).(string)
	if !ok || principal == "" {
		return "", false
	}
	return principal, true
}
