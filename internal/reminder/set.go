package reminder

import "github.com/Dias221467/Reminder_Manager/internal/models"

// Set is an unordered collection of reminder types.
type Set map[models.ReminderType]struct{}

func NewSet(types ...models.ReminderType) Set {
	s := make(Set, len(types))
	for _, t := range types {
		s.Add(t)
	}
	return s
}

func (s Set) Add(t models.ReminderType) { s[t] = struct{}{} }

func (s Set) Has(t models.ReminderType) bool {
	_, ok := s[t]
	return ok
}

func (s Set) Len() int { return len(s) }

// Sorted returns the members in evaluation order.
func (s Set) Sorted() []models.ReminderType {
	out := make([]models.ReminderType, 0, len(s))
	for _, t := range models.ReminderTypes {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

// Due maps each due reminder type to the local day (YYYY-MM-DD) of the
// window that matched. That day keys both the ledger checks and the log.
type Due map[models.ReminderType]string

func (d Due) add(t models.ReminderType, day string) { d[t] = day }

func (d Due) Has(t models.ReminderType) bool {
	_, ok := d[t]
	return ok
}

// Day returns the window day for t, or "" when t is not due.
func (d Due) Day(t models.ReminderType) string { return d[t] }

func (d Due) Len() int { return len(d) }

func (d Due) Sorted() []models.ReminderType {
	out := make([]models.ReminderType, 0, len(d))
	for _, t := range models.ReminderTypes {
		if d.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

// ByDay groups the due types by window day.
func (d Due) ByDay() map[string]Set {
	out := make(map[string]Set)
	for t, day := range d {
		if out[day] == nil {
			out[day] = NewSet()
		}
		out[day].Add(t)
	}
	return out
}
