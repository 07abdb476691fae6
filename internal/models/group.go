package models

// Member roles within a group.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Member is one user's membership in a group.
type Member struct {
	// UserID references the member's user account.
	UserID string

	// Role is either "admin" or "member". The creator is always an admin.
	Role string

	// JoinedAt is the Unix timestamp when the user joined the group.
	JoinedAt int64
}

// Group represents a set of users who share expenses.
//
// A group's balances are computed only from records tagged with the group's
// ID: an expense without a GroupID never contributes to a group balance, and
// a group expense never contributes to a 1:1 balance.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Work Lunch").
	Name string

	// Members is the list of group memberships, in join order.
	Members []Member

	// CreatedBy is the user ID of the group's creator.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether the given user belongs to the group.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// MemberIDs returns the member user IDs in join order.
func (g *Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.UserID
	}
	return ids
}
