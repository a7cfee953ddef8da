package checkout

import (
	"sync"

	pkgerrors "github.com/batoolapp/lenses-backend/pkg/errors"
)

// State names one position in the checkout flow.
type State string

const (
	StateCart       State = "cart"
	StateSummary    State = "summary"
	StateContact    State = "contact"
	StatePayment    State = "payment"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
)

// String implements fmt.Stringer.
func (s State) String() string {
	return string(s)
}

// Workflow drives one shopper through the fixed step sequence. Transitions
// are guarded so illegal states cannot be reached: advancing past the contact
// step requires valid contact fields, and submission requires the full form.
type Workflow struct {
	mu    sync.Mutex
	state State
	form  Form
}

// NewWorkflow starts at the cart view.
func NewWorkflow() *Workflow {
	return &Workflow{state: StateCart}
}

// State returns the current position.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Form returns a copy of the collected fields.
func (w *Workflow) Form() Form {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form
}

// SetReceipt attaches the uploaded receipt file to the form. Only allowed in
// interactive states.
func (w *Workflow) SetReceipt(receipt *ReceiptFile) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StateSubmitting || w.state == StateSucceeded {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "checkout is no longer accepting input")
	}
	w.form.Receipt = receipt
	return nil
}

// Advance moves one step forward, merging the provided fields into the form
// first. The summary step advances unconditionally; leaving the contact step
// validates the contact fields; the payment step cannot be advanced past
// (submission is a separate operation).
func (w *Workflow) Advance(fields Form) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.mergeFields(fields)

	switch w.state {
	case StateCart:
		w.state = StateSummary
		return nil
	case StateSummary:
		w.state = StateContact
		return nil
	case StateContact:
		if err := ValidateContact(&w.form); err != nil {
			return err
		}
		w.state = StatePayment
		return nil
	case StatePayment:
		return pkgerrors.New(pkgerrors.CodeStateConflict, "payment is the final step; submit to complete")
	default:
		return pkgerrors.New(pkgerrors.CodeStateConflict, "cannot advance from state "+string(w.state))
	}
}

// Back moves one step backward without re-validating the step being left.
// Disallowed while submitting and after success.
func (w *Workflow) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.state {
	case StateSummary:
		w.state = StateCart
		return nil
	case StateContact:
		w.state = StateSummary
		return nil
	case StatePayment:
		w.state = StateContact
		return nil
	case StateCart:
		return nil
	default:
		return pkgerrors.New(pkgerrors.CodeStateConflict, "cannot go back from state "+string(w.state))
	}
}

// BeginSubmit validates the complete form and locks the workflow into the
// submitting state. Callers must follow up with FinishSubmit.
func (w *Workflow) BeginSubmit(fields Form) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StateSubmitting {
		return pkgerrors.New(pkgerrors.CodeConflict, "a submission is already in flight")
	}
	if w.state != StatePayment {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "submission requires completing the payment step")
	}

	w.mergeFields(fields)

	if err := ValidateFull(&w.form); err != nil {
		return err
	}
	w.state = StateSubmitting
	return nil
}

// FinishSubmit resolves the in-flight submission. Success clears the form and
// parks the workflow at the succeeded state; failure returns the shopper to
// the payment step for a retry.
func (w *Workflow) FinishSubmit(success bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateSubmitting {
		return
	}
	if success {
		w.state = StateSucceeded
		return
	}
	w.state = StatePayment
}

// Dismissable reports whether the checkout UI may be closed right now. The
// flow must not be abandoned while a write is in flight.
func (w *Workflow) Dismissable() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state != StateSubmitting
}

// Reset returns the workflow to the cart view with a cleared form. Used after
// the shopper acknowledges a successful order, or abandons the flow.
func (w *Workflow) Reset() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StateSubmitting {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "cannot reset while submitting")
	}
	w.state = StateCart
	w.form = Form{}
	return nil
}

func (w *Workflow) mergeFields(fields Form) {
	if fields.CustomerName != "" {
		w.form.CustomerName = fields.CustomerName
	}
	if fields.Phone != "" {
		w.form.Phone = fields.Phone
	}
	if fields.Governorate != "" {
		w.form.Governorate = fields.Governorate
	}
	if fields.City != "" {
		w.form.City = fields.City
	}
	if fields.Receipt != nil {
		w.form.Receipt = fields.Receipt
	}
}
