package reminder

import (
	"fmt"

	"github.com/Dias221467/Reminder_Manager/internal/models"
)

// ConfigurationError means a user's settings cannot be interpreted.
// The user is skipped for the tick.
type ConfigurationError struct {
	UserID string
	Field  string
	Value  string
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("user %s: invalid %s %q: %v", e.UserID, e.Field, e.Value, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// DataAccessError wraps a store failure scoped to one user.
type DataAccessError struct {
	UserID string
	Op     string
	Type   models.ReminderType
	Err    error
}

func (e *DataAccessError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("user %s: %s (%s): %v", e.UserID, e.Op, e.Type, e.Err)
	}
	return fmt.Sprintf("user %s: %s: %v", e.UserID, e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error { return e.Err }

// DeliveryError is returned when a transport refuses or fails a message.
type DeliveryError struct {
	Channel models.Channel
	Err     error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver via %s: %v", e.Channel, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// EnumerationError aborts a whole tick: the eligible users could not be listed.
type EnumerationError struct {
	Err error
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("list eligible users: %v", e.Err)
}

func (e *EnumerationError) Unwrap() error { return e.Err }
