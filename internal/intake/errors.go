package intake

import "fmt"

// ValidationError reports a profile that cannot be scored. Nothing is persisted
// when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("intake: invalid %s: %s", e.Field, e.Reason)
}
