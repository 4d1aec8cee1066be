// Package quote coordinates the vendor quote-request flow as an
// explicit state machine: Idle -> Open -> Sending -> Idle. Ad hoc
// boolean flags are how double-draft and double-submit bugs happen,
// so every transition is checked here instead of at call sites.
package quote

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/shotweave/shotweave/internal/breakdown"
	"github.com/shotweave/shotweave/internal/catalog"
)

// Scale is the production scale attached to a quote request.
type Scale string

const (
	ScaleRegional    Scale = "Regional"
	ScaleNational    Scale = "National"
	ScaleIndependent Scale = "Independent"
)

// Scales lists the valid scales in form order.
func Scales() []Scale {
	return []Scale{ScaleRegional, ScaleNational, ScaleIndependent}
}

// Phase is the workflow state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseOpen
	PhaseSending
)

func (p Phase) String() string {
	switch p {
	case PhaseOpen:
		return "open"
	case PhaseSending:
		return "sending"
	default:
		return "idle"
	}
}

// Fixed defaults when no breakdown hint is available.
const (
	DefaultDays         = 7
	DefaultRequirements = "Standard package"
)

var (
	ErrAlreadyOpen = errors.New("quote: a draft is already open; close or complete it first")
	ErrNotOpen     = errors.New("quote: no open draft")
	ErrSending     = errors.New("quote: submission already in flight")
	ErrInvalidDays = errors.New("quote: days must be at least 1")
)

// Draft is the in-progress request. It lives only while the workflow
// is open and is never persisted.
type Draft struct {
	Vendor       catalog.Vendor
	Days         int
	Scale        Scale
	Requirements string
}

// Submission is the payload for exactly one outbound request.
type Submission struct {
	RequestID     string
	VendorName    string
	VendorContact string
	Days          int
	Scale         Scale
	Requirements  string
}

// Workflow is the state machine. Confined to the update loop.
type Workflow struct {
	phase Phase
	draft Draft
}

// Phase returns the current state.
func (w *Workflow) Phase() Phase { return w.phase }

// Draft returns the open draft. The second return is false in Idle.
func (w *Workflow) Draft() (Draft, bool) {
	if w.phase == PhaseIdle {
		return Draft{}, false
	}
	return w.draft, true
}

// OpenFor starts a draft for vendor. Legal only from Idle: a second
// open while a draft exists is rejected so two vendors' drafts can
// never merge. Days and requirements prefill from the breakdown hint
// when one is available, otherwise fixed defaults apply.
func (w *Workflow) OpenFor(vendor catalog.Vendor, hint *breakdown.Hint) error {
	switch w.phase {
	case PhaseOpen:
		return ErrAlreadyOpen
	case PhaseSending:
		return ErrSending
	}
	d := Draft{
		Vendor:       vendor,
		Days:         DefaultDays,
		Scale:        ScaleRegional,
		Requirements: DefaultRequirements,
	}
	if hint != nil {
		if hint.EstimatedShootDays >= 1 {
			d.Days = hint.EstimatedShootDays
		}
		if hint.VisualElements != "" {
			d.Requirements = hint.VisualElements
		}
	}
	w.draft = d
	w.phase = PhaseOpen
	return nil
}

// SetDays updates the draft day count. Values below 1 are rejected at
// this boundary and never stored.
func (w *Workflow) SetDays(days int) error {
	if w.phase != PhaseOpen {
		return w.notOpen()
	}
	if days < 1 {
		return ErrInvalidDays
	}
	w.draft.Days = days
	return nil
}

// SetScale updates the draft scale.
func (w *Workflow) SetScale(s Scale) error {
	if w.phase != PhaseOpen {
		return w.notOpen()
	}
	switch s {
	case ScaleRegional, ScaleNational, ScaleIndependent:
		w.draft.Scale = s
		return nil
	}
	return fmt.Errorf("quote: unknown scale %q", s)
}

// SetRequirements updates the free-text requirements.
func (w *Workflow) SetRequirements(text string) error {
	if w.phase != PhaseOpen {
		return w.notOpen()
	}
	w.draft.Requirements = text
	return nil
}

// BeginSubmit transitions Open -> Sending and returns the payload for
// the single outbound request. A second call while Sending is rejected,
// not queued.
func (w *Workflow) BeginSubmit() (Submission, error) {
	switch w.phase {
	case PhaseIdle:
		return Submission{}, ErrNotOpen
	case PhaseSending:
		return Submission{}, ErrSending
	}
	w.phase = PhaseSending
	return Submission{
		RequestID:     uuid.NewString(),
		VendorName:    w.draft.Vendor.Name,
		VendorContact: w.draft.Vendor.Contact,
		Days:          w.draft.Days,
		Scale:         w.draft.Scale,
		Requirements:  w.draft.Requirements,
	}, nil
}

// Complete resolves the in-flight submission. On success the draft is
// discarded and the workflow returns to Idle; on failure the draft is
// retained and the workflow reopens so the user can retry without
// re-entering data.
func (w *Workflow) Complete(sendErr error) {
	if w.phase != PhaseSending {
		return
	}
	if sendErr != nil {
		w.phase = PhaseOpen
		return
	}
	w.draft = Draft{}
	w.phase = PhaseIdle
}

// Cancel discards the draft with no network call. Legal from Open only.
func (w *Workflow) Cancel() error {
	switch w.phase {
	case PhaseIdle:
		return ErrNotOpen
	case PhaseSending:
		return ErrSending
	}
	w.draft = Draft{}
	w.phase = PhaseIdle
	return nil
}

func (w *Workflow) notOpen() error {
	if w.phase == PhaseSending {
		return ErrSending
	}
	return ErrNotOpen
}
