package lessons

import (
	"encoding/json"
	"fmt"
)

// ParseError indicates the generation response did not decode into a
// complete lesson.
type ParseError struct {
	Content json.RawMessage
	Reason  string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse lesson response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("parse lesson response: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }
