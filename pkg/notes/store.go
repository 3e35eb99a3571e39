// Package notes stores free-form per-user notes. Entries are append-only:
// the only operations are adding a line and reading every line back in the
// order it was added.
package notes

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrNoNotes is returned by ReadAll when the user has never saved a note.
var ErrNoNotes = errors.New("no notes found")

type Store interface {
	Append(userID, line string) error
	ReadAll(userID string) ([]string, error)
}

var userIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func validateUserID(userID string) error {
	if !userIDRegex.MatchString(userID) {
		return fmt.Errorf("invalid user id: %q", userID)
	}
	return nil
}
