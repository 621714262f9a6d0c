package models

// Role is the closed set of user roles. Kept as a dedicated type so the
// authorization rules can switch over it exhaustively instead of comparing
// free-form strings.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// Moderates reports whether the role carries moderation rights over other
// authors' reviews and comments.
func (r Role) Moderates() bool {
	return r == RoleModerator || r == RoleAdmin
}
