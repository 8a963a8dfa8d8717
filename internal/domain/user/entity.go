package user

// Role is the side of the marketplace an authenticated user acts from.
// It arrives inside the verified identity token and is never derived
// from request data.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCandidate:
		return RoleCandidate, true
	case RoleRecruiter:
		return RoleRecruiter, true
	default:
		return "", false
	}
}

func (r Role) Valid() bool {
	return r == RoleCandidate || r == RoleRecruiter
}
