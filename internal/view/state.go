// Package view holds the pure presentation logic: form validation, list
// projections, carousel arithmetic and submit-state machines. Nothing in
// here performs I/O; handlers feed it input and render its output.
package view

// Status is where a submit/fetch flow currently stands.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

// State is one view's flow state plus the message to display, if any.
type State struct {
	Status  Status
	Message string
}

// Failed and Succeeded exist for templates, which branch on the outcome
// without caring about the intermediate states.
func (s State) Failed() bool    { return s.Status == StatusError }
func (s State) Succeeded() bool { return s.Status == StatusSuccess }

// EventKind drives the reducer.
type EventKind int

const (
	EventSubmit EventKind = iota
	EventSucceed
	EventFail
	EventReset
)

// Event is something that happened to a view.
type Event struct {
	Kind    EventKind
	Message string
}

// Reduce is the pure transition function. Loading ignores further submits
// (the debounce-by-disable policy); Success is terminal until an explicit
// reset; a failure leaves the form editable for retry.
func Reduce(s State, e Event) State {
	switch e.Kind {
	case EventSubmit:
		if s.Status == StatusLoading {
			return s
		}
		return State{Status: StatusLoading}
	case EventSucceed:
		return State{Status: StatusSuccess, Message: e.Message}
	case EventFail:
		return State{Status: StatusError, Message: e.Message}
	case EventReset:
		return State{Status: StatusIdle}
	}
	return s
}
