package models

// Role is a staff capability. The set is closed: only the constants below
// are valid.
type Role string

const (
	RoleManager      Role = "manager"
	RoleDeliveryCrew Role = "delivery-crew"
)

var AllRoles = []Role{RoleManager, RoleDeliveryCrew}

// ParseRole accepts the role slug used in URLs.
func ParseRole(slug string) (Role, bool) {
	for _, r := range AllRoles {
		if string(r) == slug {
			return r, true
		}
	}
	return "", false
}

func (r Role) DisplayName() string {
	switch r {
	case RoleManager:
		return "Manager"
	case RoleDeliveryCrew:
		return "Delivery crew"
	}
	return string(r)
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID   uint
	Username string
	IsAdmin  bool
	Roles    []Role
}

func (p Principal) Has(role Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsManager is true for members of the manager role and for admins.
func (p Principal) IsManager() bool {
	return p.IsAdmin || p.Has(RoleManager)
}

func (p Principal) IsDeliveryCrew() bool {
	return p.Has(RoleDeliveryCrew)
}
