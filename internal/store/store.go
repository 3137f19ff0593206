package store

import "strings"

// IsUniqueViolation reports whether err comes from a UNIQUE constraint.
// The sqlite driver exposes no typed error for this.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
