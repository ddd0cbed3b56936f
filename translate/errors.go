package translate

import (
	"errors"
	"fmt"
)

// ErrConflictingCollections is returned when an explicit collections query
// parameter is combined with a path-scoped collection identifier. The two
// scopes cannot be reconciled without silently dropping one, so the request
// is rejected as addressing a resource that does not exist.
var ErrConflictingCollections = errors.New("translate: collections parameter conflicts with path collection")

// TranslationError describes a query parameter whose value violates its
// expected shape. It is a client fault, not a service fault.
type TranslationError struct {
	Param  string
	Reason string
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("translate: parameter %q %s", e.Param, e.Reason)
}

func translationErrorf(param, format string, args ...any) *TranslationError {
	return &TranslationError{Param: param, Reason: fmt.Sprintf(format, args...)}
}

// InvalidSortPropertyError reports a sortby property outside the supported
// set. It is distinguished from TranslationError so callers can map it to
// a stricter response status.
type InvalidSortPropertyError struct {
	Property string
}

func (e *InvalidSortPropertyError) Error() string {
	return fmt.Sprintf("translate: unsupported sort property %q", e.Property)
}
