package order

import "fmt"

// transitions lists the statuses each status may move to. Delivered and
// Cancelled are terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusDelivered, StatusCancelled},
}

// TransitionError rejects a status change outside the order lifecycle.
type TransitionError struct {
	From, To Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move order from %s to %s", e.From, e.To)
}

// CheckTransition allows staying on the same status so the payment status can
// change alone.
func CheckTransition(from, to Status) error {
	if !to.Valid() {
		return ErrInvalidStatus
	}
	if from == to {
		return nil
	}
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return &TransitionError{From: from, To: to}
}
