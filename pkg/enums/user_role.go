package enums

import "fmt"

// UserRole is the department a shop-floor user belongs to. The set is closed:
// handlers and the transition guard switch over it exhaustively.
type UserRole string

const (
	UserRoleAdmin        UserRole = "admin"
	UserRoleFrameCutting UserRole = "frame_cutting"
	UserRoleMeshCutting  UserRole = "mesh_cutting"
	UserRoleQuality      UserRole = "quality"
)

var validUserRoles = []UserRole{
	UserRoleAdmin,
	UserRoleFrameCutting,
	UserRoleMeshCutting,
	UserRoleQuality,
}

// String implements fmt.Stringer.
func (u UserRole) String() string {
	return string(u)
}

// IsValid reports whether the value is a known UserRole.
func (u UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == u {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the role bypasses department transition rules.
func (u UserRole) IsAdmin() bool {
	return u == UserRoleAdmin
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
