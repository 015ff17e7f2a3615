package auth

// Permissions held by any signed-in user, each limited to records the
// user owns.
const (
	PermBusinessUpdate = "businesses:write:self"
	PermBusinessDelete = "businesses:delete:self"
)

var userPermissions = map[string]bool{
	PermBusinessUpdate: true,
	PermBusinessDelete: true,
}

// HasPermission reports whether a signed-in user holds permission at all.
func HasPermission(permission string) bool {
	return userPermissions[permission]
}

// CanPerformAction checks permission for userID on a record owned by ownerID.
func CanPerformAction(userID, ownerID, permission string) bool {
	if userID == "" || !HasPermission(permission) {
		return false
	}
	return ownerID == userID
}
