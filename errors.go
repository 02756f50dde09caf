package forma

import "errors"

// Contract errors shared by every GraphSource, VersionStore and
// RuleSource implementation. Implementations wrap or alias these so
// callers can match with errors.Is without knowing the backing store.
var (
	// ErrNotFound is returned when a requested diagram or version does
	// not exist.
	ErrNotFound = errors.New("forma: not found")

	// ErrConflict is returned when a version number was taken by a
	// concurrent writer.
	ErrConflict = errors.New("forma: version conflict")

	// ErrUnchanged is returned by Snapshot when the current graph is
	// structurally identical to the latest stored version.
	ErrUnchanged = errors.New("forma: diagram unchanged")
)

// IsNotFound reports whether err represents a missing diagram or
// version.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict reports whether err represents a lost version race.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsUnchanged reports whether err represents a skipped snapshot.
func IsUnchanged(err error) bool {
	return errors.Is(err, ErrUnchanged)
}
