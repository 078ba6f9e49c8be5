package models

// AlarmEvent is one immutable entry in the alarm audit log.
//
// An event is appended when the alarm transitions from idle to active and is
// marked acknowledged when a PIN-verified guardian silences the alarm.
// Events are never deleted.
type AlarmEvent struct {
	// ID is the server-assigned identifier of the event.
	ID int64 `json:"-"`

	// ChildProfileID identifies the child whose linked principal triggered
	// the alarm. The referenced profile existed at trigger time but may have
	// been archived since.
	ChildProfileID string `json:"childProfileId"`

	// Acknowledged reports whether a guardian has silenced this alarm.
	Acknowledged bool `json:"acknowledged"`

	// Timestamp is the trigger time in nanoseconds since the Unix epoch.
	Timestamp int64 `json:"timestamp"`
}

// TableName returns the name of the database table
// associated with the AlarmEvent model.
func (a AlarmEvent) TableName() string {
	return "alarm_events"
}
