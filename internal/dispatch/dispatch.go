// Package dispatch maps a user's role onto the dashboard view that
// serves it. Adding a role means adding one case here, nowhere else.
package dispatch

import "github.com/shotweave/shotweave/internal/session"

// ViewID names a dashboard surface.
type ViewID int

const (
	// ViewRequireReauth is the fallback for any role outside the enum,
	// e.g. corrupted or pre-migration persisted data. The caller clears
	// the session and returns to the auth screen.
	ViewRequireReauth ViewID = iota
	ViewProducer
	ViewLineProducer
	ViewExecutor
	ViewCreative
)

func (v ViewID) String() string {
	switch v {
	case ViewProducer:
		return "producer"
	case ViewLineProducer:
		return "line-producer"
	case ViewExecutor:
		return "executor"
	case ViewCreative:
		return "creative"
	default:
		return "require-reauth"
	}
}

// Resolve selects the view for a user. Total and pure: every input maps
// to exactly one view and the same input always maps to the same view.
// Never cache the result across a session change.
func Resolve(u session.User) ViewID {
	switch u.Role {
	case session.RoleProducerCEO:
		return ViewProducer
	case session.RoleLineProducer:
		return ViewLineProducer
	case session.RoleUnitManager:
		return ViewExecutor
	case session.RoleVFXSupervisor:
		return ViewCreative
	default:
		return ViewRequireReauth
	}
}
