package service

// Status is an application's position in the hiring funnel. Statuses are
// ordered; an application only ever moves forward along statusOrder.
type Status string

const (
	StatusPending     Status = "pending"
	StatusReviewed    Status = "reviewed"
	StatusShortlisted Status = "shortlisted"
	StatusFulfilled   Status = "fulfilled"
	StatusSelected    Status = "selected"
)

var statusOrder = []Status{
	StatusPending,
	StatusReviewed,
	StatusShortlisted,
	StatusFulfilled,
	StatusSelected,
}

// index returns the status position in statusOrder, or -1 for an
// unrecognized value.
func (s Status) index() int {
	for i, v := range statusOrder {
		if v == s {
			return i
		}
	}
	return -1
}

func (s Status) Valid() bool {
	return s.index() >= 0
}

// Terminal reports whether the hiring funnel ends at s. A terminal
// application admits no further transition, not even to a later status.
func (s Status) Terminal() bool {
	return s == StatusFulfilled || s == StatusSelected
}

// CanTransition reports whether an application currently at s may be set to
// target. Setting the current status again is allowed; moving backward is
// not, and terminal statuses admit no move at all.
func (s Status) CanTransition(target Status) bool {
	if !s.Valid() || !target.Valid() {
		return false
	}
	if target == s {
		return true
	}
	if s.Terminal() {
		return false
	}
	return target.index() > s.index()
}
