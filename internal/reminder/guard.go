package reminder

import (
	"context"
	"time"

	"github.com/Dias221467/Reminder_Manager/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityLedger answers whether a user recorded something between two
// calendar days, inclusive. An empty kind matches any record.
type ActivityLedger interface {
	HasRecordBetween(ctx context.Context, userID primitive.ObjectID, kind models.RecordKind, fromDay, toDay string) (bool, error)
}

// SentLog answers whether a reminder was already delivered on a day.
type SentLog interface {
	HasSent(ctx context.Context, userID primitive.ObjectID, t models.ReminderType, day string) (bool, error)
}

// Guard drops reminders that are moot or were already delivered.
type Guard struct {
	ledger ActivityLedger
	log    SentLog
}

func NewGuard(ledger ActivityLedger, log SentLog) *Guard {
	return &Guard{ledger: ledger, log: log}
}

type FilterResult struct {
	Kept       Set
	Suppressed Set
	// Failed holds types whose checks could not be completed.
	Failed map[models.ReminderType]error
}

// Filter splits candidates for userID on day (YYYY-MM-DD, user-local).
// A failed lookup only affects the type being checked.
func (g *Guard) Filter(ctx context.Context, userID primitive.ObjectID, candidates Set, day string) FilterResult {
	res := FilterResult{
		Kept:       NewSet(),
		Suppressed: NewSet(),
		Failed:     map[models.ReminderType]error{},
	}
	for _, t := range candidates.Sorted() {
		moot, err := g.recorded(ctx, userID, t, day)
		if err != nil {
			res.Failed[t] = &DataAccessError{UserID: userID.Hex(), Op: "check activity ledger", Type: t, Err: err}
			continue
		}
		if moot {
			res.Suppressed.Add(t)
			continue
		}

		sent, err := g.log.HasSent(ctx, userID, t, day)
		if err != nil {
			res.Failed[t] = &DataAccessError{UserID: userID.Hex(), Op: "check notification log", Type: t, Err: err}
			continue
		}
		if sent {
			res.Suppressed.Add(t)
			continue
		}
		res.Kept.Add(t)
	}
	return res
}

func (g *Guard) recorded(ctx context.Context, userID primitive.ObjectID, t models.ReminderType, day string) (bool, error) {
	switch t {
	case models.ReminderPlan:
		return g.ledger.HasRecordBetween(ctx, userID, models.RecordKindPlan, day, day)
	case models.ReminderReflection:
		from, err := previousDay(day)
		if err != nil {
			return false, err
		}
		return g.ledger.HasRecordBetween(ctx, userID, models.RecordKindReflection, from, day)
	case models.ReminderStreakRisk:
		return g.ledger.HasRecordBetween(ctx, userID, "", day, day)
	default:
		return false, nil
	}
}

func previousDay(day string) (string, error) {
	d, err := models.ParseDay(day)
	if err != nil {
		return "", err
	}
	return d.Add(-24 * time.Hour).Format(models.DayLayout), nil
}
