package reminder

import (
	"fmt"

	"github.com/Dias221467/Reminder_Manager/internal/models"
)

type State string

const (
	StatePending    State = "pending"
	StateDue        State = "due"
	StateSuppressed State = "suppressed"
	StateAttempted  State = "attempted"
	StateSent       State = "sent"
	StateFailed     State = "failed"
)

var transitions = map[State][]State{
	StatePending:   {StateDue},
	StateDue:       {StateSuppressed, StateAttempted},
	StateAttempted: {StateSent, StateFailed},
}

// Instance tracks one (user, type, day) reminder through a tick.
type Instance struct {
	UserID string
	Type   models.ReminderType
	Day    string
	State  State
}

func NewInstance(userID string, t models.ReminderType, day string) *Instance {
	return &Instance{UserID: userID, Type: t, Day: day, State: StatePending}
}

// Transition moves the instance to next, rejecting moves the lifecycle forbids.
func (i *Instance) Transition(next State) error {
	for _, allowed := range transitions[i.State] {
		if allowed == next {
			i.State = next
			return nil
		}
	}
	return fmt.Errorf("reminder %s/%s/%s: invalid transition %s -> %s", i.UserID, i.Type, i.Day, i.State, next)
}

// Terminal reports whether no further transitions are possible.
func (i *Instance) Terminal() bool {
	return len(transitions[i.State]) == 0
}
