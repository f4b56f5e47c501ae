package booking

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCompleted, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusNoShow, StatusCancelled},
}

// OccupyingStatuses are the statuses whose interval blocks other bookings.
var OccupyingStatuses = []string{
	string(StatusPending),
	string(StatusConfirmed),
	string(StatusCompleted),
}

func ParseStatus(s string) (Status, bool) {
	switch st := Status(s); st {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return st, true
	}
	return "", false
}

// Occupies reports whether a booking in this status holds its interval.
func (s Status) Occupies() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCompleted
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// ===============================
// Validations
// ===============================

// CanTransition reports whether from -> to is in the lifecycle table.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// RequiresReason reports whether moving into to needs a cancel reason.
func RequiresReason(to Status) bool {
	return to == StatusCancelled || to == StatusNoShow
}

func InitialStatus() Status {
	return StatusPending
}
