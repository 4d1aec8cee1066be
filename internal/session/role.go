package session

// Role is the closed set of production roles the backend issues.
// The wire strings are fixed by the login/signup contract.
type Role string

const (
	RoleProducerCEO   Role = "Producer/CEO"
	RoleLineProducer  Role = "Line Producer"
	RoleUnitManager   Role = "1st AD/Unit Manager"
	RoleVFXSupervisor Role = "VFX Supervisor/Director"

	// RoleUnknown marks any value outside the enum, e.g. a stale
	// pre-migration string read back from the session slot.
	RoleUnknown Role = ""
)

// Roles lists every valid role in signup-form order.
func Roles() []Role {
	return []Role{RoleProducerCEO, RoleLineProducer, RoleUnitManager, RoleVFXSupervisor}
}

// ParseRole maps a wire string onto the enum. Anything unrecognized
// comes back as RoleUnknown; callers decide whether that is corruption
// (session restore) or a hard error (login response).
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleProducerCEO, RoleLineProducer, RoleUnitManager, RoleVFXSupervisor:
		return Role(s)
	}
	return RoleUnknown
}

// Valid reports whether r is inside the closed enum.
func (r Role) Valid() bool {
	return ParseRole(string(r)) != RoleUnknown
}
