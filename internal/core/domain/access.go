package domain

// Capability is what an actor may do by virtue of its role.
type Capability uint8

const (
	CapNone Capability = iota
	CapAdmin
	CapEmployee
	CapJobSeeker
)

// CapabilityOf maps a stored role to its capability. Unknown roles get CapNone.
func CapabilityOf(r Role) Capability {
	switch r {
	case RoleAdmin:
		return CapAdmin
	case RoleEmployee:
		return CapEmployee
	case RoleJobSeeker:
		return CapJobSeeker
	}
	return CapNone
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID         string
	Capability Capability
}

// ActorFor builds the actor for a loaded user.
func ActorFor(u *User) Actor {
	return Actor{ID: u.ID, Capability: CapabilityOf(u.Role)}
}

// Gate is an access-control predicate evaluated against an actor.
type Gate func(Actor) bool

// Has passes actors holding capability c.
func Has(c Capability) Gate {
	return func(a Actor) bool { return a.Capability == c }
}

// Owns passes the actor whose id equals ownerID.
func Owns(ownerID string) Gate {
	return func(a Actor) bool { return ownerID != "" && a.ID == ownerID }
}

// AnyOf passes when at least one gate passes.
func AnyOf(gates ...Gate) Gate {
	return func(a Actor) bool {
		for _, g := range gates {
			if g(a) {
				return true
			}
		}
		return false
	}
}

// AllOf passes when every gate passes.
func AllOf(gates ...Gate) Gate {
	return func(a Actor) bool {
		for _, g := range gates {
			if !g(a) {
				return false
			}
		}
		return len(gates) > 0
	}
}

var (
	AdminOnly       = Has(CapAdmin)
	EmployeeOnly    = Has(CapEmployee)
	JobSeekerOnly   = Has(CapJobSeeker)
	AdminOrEmployee = AnyOf(AdminOnly, EmployeeOnly)
)

// OwnerOrAdmin passes the resource owner and any admin.
func OwnerOrAdmin(ownerID string) Gate {
	return AnyOf(Owns(ownerID), AdminOnly)
}

// Allow returns ErrUnauthorized unless g passes for a.
func (a Actor) Allow(g Gate) error {
	if !g(a) {
		return ErrUnauthorized
	}
	return nil
}
