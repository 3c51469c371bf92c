package keyway

import (
	"fmt"
	"strings"
)

// ErrKeywayNotFound is returned when a keyway is not in the table
type ErrKeywayNotFound struct {
	Name        string
	Suggestions []string
}

func (e *ErrKeywayNotFound) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("keyway not found: %s", e.Name)
	}
	return fmt.Sprintf("keyway not found: %s (did you mean %s?)", e.Name, strings.Join(e.Suggestions, ", "))
}
