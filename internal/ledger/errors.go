package ledger

import (
	"errors"
	"sort"
	"strings"
)

// ErrNotFound is returned when an id does not resolve to a transaction or goal.
var ErrNotFound = errors.New("not found")

// FieldErrors maps input field names to human-readable problems. An operation
// that returns FieldErrors has not touched the ledger state.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "invalid input"
	}
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, "; ")
}

// AsFieldErrors unwraps err into FieldErrors if possible.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
