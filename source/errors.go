package source

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmpty is returned when an export has no data row.
var ErrEmpty = errors.New("no data")

// MissingColumnsError reports the required columns an export lacks.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}
