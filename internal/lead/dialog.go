package lead

import (
	"context"
	"sync"

	"edenstone/internal/metrics"
)

type State int

const (
	StateClosed State = iota
	StateIdle
	StateValidating
	StateRejected
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateRejected:
		return "rejected"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Dialog is the callback request surface:
//
//	Idle → Validating → Rejected → Idle (with error)
//	                  → Submitting → Succeeded → Closed (form reset)
//	                               → Failed → Idle (with error)
type Dialog struct {
	svc Service

	// OnTransition, when set, observes every state change.
	OnTransition func(from, to State)

	mu    sync.Mutex
	state State
	form  Form
	err   error
}

func NewDialog(svc Service) *Dialog {
	return &Dialog{svc: svc, state: StateClosed}
}

func (d *Dialog) Open() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == StateClosed {
		d.setLocked(StateIdle)
	}
}

// Close hides the dialog and keeps whatever the user typed.
func (d *Dialog) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != StateSubmitting {
		d.setLocked(StateClosed)
	}
}

func (d *Dialog) SetForm(f Form) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.form = f
}

func (d *Dialog) Form() Form {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.form
}

func (d *Dialog) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Err is the message shown in the dialog, nil when there is none.
func (d *Dialog) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Submit runs the form through validation and, when it passes, the
// service. Validation failures are returned as-is; delivery failures are
// reported as ErrSubmitFailed.
func (d *Dialog) Submit(ctx context.Context) error {
	d.mu.Lock()
	switch d.state {
	case StateClosed:
		d.mu.Unlock()
		return ErrDialogClosed
	case StateSubmitting, StateValidating:
		d.mu.Unlock()
		return ErrAlreadySubmitting
	}
	d.err = nil
	d.setLocked(StateValidating)
	form := d.form

	if err := form.Validate(); err != nil {
		metrics.LeadsRejected.Inc()
		d.setLocked(StateRejected)
		d.err = err
		d.setLocked(StateIdle)
		d.mu.Unlock()
		return err
	}
	d.setLocked(StateSubmitting)
	d.mu.Unlock()

	err := d.svc.Submit(ctx, form)

	d.mu.Lock()
	defer d.mu.Unlock()

	if err != nil {
		d.setLocked(StateFailed)
		d.err = ErrSubmitFailed
		d.setLocked(StateIdle)
		return ErrSubmitFailed
	}

	d.setLocked(StateSucceeded)
	d.form = Form{}
	d.setLocked(StateClosed)
	return nil
}

func (d *Dialog) setLocked(to State) {
	from := d.state
	d.state = to
	if d.OnTransition != nil {
		d.OnTransition(from, to)
	}
}
