package credentials

// IsValidRole checks if the role is one of the predefined valid roles
func IsValidRole(r UserRole) bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// RoleAtLeast checks if role meets the minimum required level
func RoleAtLeast(r, minRole UserRole) bool {
	roleHierarchy := map[UserRole]int{
		RoleUser:  0,
		RoleAdmin: 1,
	}

	currentLevel, exists := roleHierarchy[r]
	if !exists {
		return false
	}

	minLevel, exists := roleHierarchy[minRole]
	if !exists {
		return false
	}

	return currentLevel >= minLevel
}

// AllRoles returns all predefined roles in hierarchical order
func AllRoles() []UserRole {
	return []UserRole{
		RoleUser,
		RoleAdmin,
	}
}

// ParseRole safely parses a string into a UserRole type
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(roleStr)
	return role, IsValidRole(role)
}

// Authorize is the role policy: it allows access when the identity's role
// matches requiredRole exactly, denying with ErrInsufficientRole otherwise.
// It is a pure function with no side effects.
func Authorize(claims AuthClaims, requiredRole UserRole) error {
	if claims == nil {
		return ErrMissingToken
	}

	if claims.HasRole(string(requiredRole)) {
		return nil
	}

	return ErrInsufficientRole.Clone().WithMetadata(map[string]any{
		"required_role": requiredRole,
		"role":          claims.Role(),
	})
}
