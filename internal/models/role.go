package models

// UserRole represents a caller persona resolved by the authorization layer.
type UserRole string

const (
	RoleProvider    UserRole = "provider"     // upstream cost-basis vendor (legacy ingestion path)
	RoleBrokerAdmin UserRole = "broker_admin" // broker-side operator
	RoleInternalOps UserRole = "internal_ops" // internal operations/compliance
	RoleAPIClient   UserRole = "api_client"   // programmatic upload client
	RoleTaxEngine   UserRole = "tax_engine"   // downstream filing vendor
)

// AllRoles lists every supported role, in the order reported by /roles.
var AllRoles = []UserRole{
	RoleProvider,
	RoleBrokerAdmin,
	RoleInternalOps,
	RoleAPIClient,
	RoleTaxEngine,
}

// ParseRole resolves a role label. The second return is false when the
// label is outside the closed role set.
func ParseRole(label string) (UserRole, bool) {
	role := UserRole(label)
	for _, known := range AllRoles {
		if role == known {
			return role, true
		}
	}
	return "", false
}
