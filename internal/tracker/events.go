package tracker

// EventKind names a committed state change.
type EventKind string

const (
	HabitCreated EventKind = "habit_created"
	HabitUpdated EventKind = "habit_updated"
	HabitDeleted EventKind = "habit_deleted"
	GoalCreated  EventKind = "goal_created"
	GoalUpdated  EventKind = "goal_updated"
	GoalDeleted  EventKind = "goal_deleted"
)

// Event describes a change after it has been committed. Cascaded is the
// number of goals removed along with a deleted habit.
type Event struct {
	Kind     EventKind
	HabitID  string
	GoalID   string
	Cascaded int
}

// Subscribe registers fn to receive every event. Handlers run synchronously
// on the mutating goroutine after the store lock is released, so they may
// read from the tracker.
func (t *Tracker) Subscribe(fn func(Event)) {
	t.eventsMu.Lock()
	defer t.eventsMu.Unlock()
	t.handlers = append(t.handlers, fn)
}

func (t *Tracker) emit(ev Event) {
	t.eventsMu.RLock()
	handlers := t.handlers
	t.eventsMu.RUnlock()

	for _, fn := range handlers {
		fn(ev)
	}
}
