package jobboard

// RoleValidator defines role-based checks performed against an acting identity
type RoleValidator interface {
	// CanPostJobs checks if the role may create and manage job postings
	CanPostJobs() bool

	// CanReviewApplications checks if the role may change application status
	CanReviewApplications() bool

	// HasRole checks if the user has a specific role
	HasRole(role string) bool
}

// IsValid checks if the role is one of the predefined valid roles
func (r UserRole) IsValid() bool {
	switch r {
	case RoleApplicant, RoleEmployer:
		return true
	default:
		return false
	}
}

// CanPostJobs checks if this role may create and manage job postings
func (r UserRole) CanPostJobs() bool {
	return r == RoleEmployer
}

// CanReviewApplications checks if this role may move applications through review
func (r UserRole) CanReviewApplications() bool {
	return r == RoleEmployer
}

// GetAllRoles returns all predefined roles
func GetAllRoles() []UserRole {
	return []UserRole{
		RoleApplicant,
		RoleEmployer,
	}
}

// ParseRole safely parses a string into a UserRole type
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(roleStr)
	return role, role.IsValid()
}
